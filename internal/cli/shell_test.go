package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/effects"
	"github.com/noah-isme/coursesync/internal/form"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/session"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/internal/store"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

var (
	intro    = models.Course{ID: "c1", Subject: "CS", Number: 101, Name: "Intro to Programming", Credits: 3}
	discrete = models.Course{ID: "c2", Subject: "MATH", Number: 210, Name: "Discrete Math", Credits: 4}
	grace    = models.User{ID: "u1", Username: "grace", Role: models.RoleTeacher}
)

type stubClient struct {
	mu       sync.Mutex
	calls    []string
	courses  []models.Course
	schedule []models.Course
	listErr  error
}

func (c *stubClient) record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

func (c *stubClient) ListCourses(context.Context) ([]models.Course, error) {
	c.record("ListCourses")
	return c.courses, c.listErr
}

func (c *stubClient) CreateCourse(_ context.Context, _ string, req dto.CourseRequest) (models.Course, error) {
	c.record("CreateCourse")
	return models.Course{ID: "c3", Subject: req.Subject, Number: req.Number, Name: req.Name, Credits: req.Credits}, nil
}

func (c *stubClient) UpdateCourse(_ context.Context, _ string, id string, req dto.CourseRequest) (models.Course, error) {
	c.record("UpdateCourse")
	return models.Course{ID: id, Subject: req.Subject, Number: req.Number, Name: req.Name, Credits: req.Credits}, nil
}

func (c *stubClient) DeleteCourse(context.Context, string, string) error {
	c.record("DeleteCourse")
	return nil
}

func (c *stubClient) Login(_ context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	c.record("Login")
	return dto.AuthResponse{Token: "tok", User: grace}, nil
}

func (c *stubClient) Register(context.Context, dto.RegisterRequest) (dto.AuthResponse, error) {
	c.record("Register")
	return dto.AuthResponse{Token: "tok", User: grace}, nil
}

func (c *stubClient) Schedule(context.Context, string) ([]models.Course, error) {
	c.record("Schedule")
	return c.schedule, nil
}

func (c *stubClient) Enroll(_ context.Context, _ string, courseID string) ([]models.Course, error) {
	c.record("Enroll")
	for _, course := range c.courses {
		if course.ID == courseID {
			c.schedule = append(c.schedule, course)
		}
	}
	return c.schedule, nil
}

func (c *stubClient) Drop(context.Context, string, string) ([]models.Course, error) {
	c.record("Drop")
	c.schedule = nil
	return c.schedule, nil
}

func (c *stubClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type noopScheduler struct{}

func (noopScheduler) AfterFunc(time.Duration, func()) {}

func newShell(t *testing.T, client *stubClient) (*Shell, *store.Store, *bytes.Buffer) {
	t.Helper()
	logger := zerolog.Nop()
	st := store.New(state.Initial(), logger)
	sessions := session.NewStore(session.NewMemoryKV(), logger)
	out := &bytes.Buffer{}
	sh := NewShell(Deps{
		Store:    st,
		Auth:     effects.NewAuthCoordinator(st, client, sessions, logger),
		Catalog:  effects.NewCatalogCoordinator(st, client, logger),
		Courses:  effects.NewCourseCoordinator(st, client, nil, noopScheduler{}, time.Second, logger),
		Schedule: effects.NewScheduleCoordinator(st, client, noopScheduler{}, time.Second, logger),
		Form:     form.NewController(st, logger),
	}, out, logger)
	return sh, st, out
}

func exec(t *testing.T, sh *Shell, line string) {
	t.Helper()
	quit, err := sh.Execute(context.Background(), line)
	require.NoError(t, err)
	require.False(t, quit)
}

func TestCoursesAndSearchRenderCatalog(t *testing.T) {
	client := &stubClient{courses: []models.Course{intro, discrete}}
	sh, st, out := newShell(t, client)

	exec(t, sh, "courses")
	require.Contains(t, out.String(), "CS 101")
	require.Contains(t, out.String(), "Discrete Math")
	require.Contains(t, out.String(), "Not signed in")

	out.Reset()
	exec(t, sh, "search  math ")
	require.Equal(t, "math", st.State().SearchTerm)
	require.NotContains(t, out.String(), "CS 101")
	require.Contains(t, out.String(), "MATH 210")

	out.Reset()
	exec(t, sh, "search nothing-matches")
	require.Contains(t, out.String(), "No courses found.")
}

func TestCoursesShowsFetchFailure(t *testing.T) {
	client := &stubClient{listErr: apperrors.Clone(apperrors.ErrNetwork, "")}
	sh, st, out := newShell(t, client)

	exec(t, sh, "courses")
	require.Equal(t, apperrors.ErrNetwork.Message, st.State().Error)
	require.Contains(t, out.String(), "[error] "+apperrors.ErrNetwork.Message)

	history := st.History()
	require.Equal(t, state.KindCatalogFetchFailed, history[len(history)-1].Kind())
}

func TestLoginFetchesScheduleAndEnablesManagement(t *testing.T) {
	client := &stubClient{courses: []models.Course{intro}, schedule: []models.Course{intro}}
	sh, st, out := newShell(t, client)
	exec(t, sh, "courses")

	out.Reset()
	exec(t, sh, "login grace secret")
	require.True(t, st.State().Authenticated())
	require.Equal(t, []string{"ListCourses", "Login", "Schedule"}, client.Calls())
	require.Contains(t, out.String(), "Signed in as grace (teacher)")
	require.Contains(t, out.String(), "[enrolled]")
	require.Contains(t, out.String(), "delete <id>")

	out.Reset()
	exec(t, sh, "view schedule")
	require.Contains(t, out.String(), "Total credits: 3")

	exec(t, sh, "logout")
	require.False(t, st.State().Authenticated())
}

func TestFormCommandsCreateCourse(t *testing.T) {
	client := &stubClient{}
	sh, st, out := newShell(t, client)
	exec(t, sh, "login grace secret")

	exec(t, sh, "add")
	exec(t, sh, "set name Data Structures")
	exec(t, sh, "set subject cs")
	exec(t, sh, "set number 201")
	out.Reset()
	exec(t, sh, "submit")

	require.Len(t, st.State().Courses, 1)
	require.Equal(t, "Data Structures", st.State().Courses[0].Name)
	require.Contains(t, out.String(), `Course "Data Structures" added successfully!`)

	_, err := sh.Execute(context.Background(), "set colour blue")
	require.Error(t, err)

	exec(t, sh, "close")
	require.Nil(t, st.State().Form)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	client := &stubClient{courses: []models.Course{intro}}
	sh, st, _ := newShell(t, client)
	exec(t, sh, "courses")
	exec(t, sh, "login grace secret")

	sh.confirm = func(string) bool { return false }
	exec(t, sh, "delete c1")
	require.Len(t, st.State().Courses, 1)

	sh.confirm = func(string) bool { return true }
	exec(t, sh, "delete c1")
	require.Empty(t, st.State().Courses)
	require.Contains(t, client.Calls(), "DeleteCourse")

	_, err := sh.Execute(context.Background(), "delete c9")
	require.Error(t, err)
}

func TestUsageAndUnknownCommands(t *testing.T) {
	sh, _, _ := newShell(t, &stubClient{})

	_, err := sh.Execute(context.Background(), "login onlyuser")
	require.ErrorIs(t, err, ErrUsage)

	_, err = sh.Execute(context.Background(), "view elsewhere")
	require.ErrorIs(t, err, ErrUsage)

	_, err = sh.Execute(context.Background(), "frobnicate")
	require.Error(t, err)

	quit, err := sh.Execute(context.Background(), "quit")
	require.NoError(t, err)
	require.True(t, quit)
}

func TestRunReadsUntilQuitAndConfirmsFromInput(t *testing.T) {
	client := &stubClient{courses: []models.Course{intro}}
	sh, st, out := newShell(t, client)

	input := strings.Join([]string{
		"courses",
		"login grace secret",
		"delete c1",
		"y",
		"quit",
		"courses",
	}, "\n")
	require.NoError(t, sh.Run(context.Background(), strings.NewReader(input)))

	require.Empty(t, st.State().Courses)
	require.Contains(t, out.String(), "This action cannot be undone.")
	require.Equal(t, 1, strings.Count(strings.Join(client.Calls(), ","), "ListCourses"))
}
