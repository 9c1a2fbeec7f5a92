package effects

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/models"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []string

	courses    []models.Course
	created    models.Course
	updated    models.Course
	auth       dto.AuthResponse
	schedule   []models.Course
	err        error
	lastToken  string
	lastCourse dto.CourseRequest
}

func (f *fakeClient) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.lastToken = token
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) ListCourses(context.Context) ([]models.Course, error) {
	f.record("ListCourses", "")
	return f.courses, f.err
}

func (f *fakeClient) CreateCourse(_ context.Context, token string, req dto.CourseRequest) (models.Course, error) {
	f.record("CreateCourse", token)
	f.lastCourse = req
	return f.created, f.err
}

func (f *fakeClient) UpdateCourse(_ context.Context, token, _ string, req dto.CourseRequest) (models.Course, error) {
	f.record("UpdateCourse", token)
	f.lastCourse = req
	return f.updated, f.err
}

func (f *fakeClient) DeleteCourse(_ context.Context, token, _ string) error {
	f.record("DeleteCourse", token)
	return f.err
}

func (f *fakeClient) Login(context.Context, dto.LoginRequest) (dto.AuthResponse, error) {
	f.record("Login", "")
	return f.auth, f.err
}

func (f *fakeClient) Register(context.Context, dto.RegisterRequest) (dto.AuthResponse, error) {
	f.record("Register", "")
	return f.auth, f.err
}

func (f *fakeClient) Schedule(_ context.Context, token string) ([]models.Course, error) {
	f.record("Schedule", token)
	return f.schedule, f.err
}

func (f *fakeClient) Enroll(_ context.Context, token, _ string) ([]models.Course, error) {
	f.record("Enroll", token)
	return f.schedule, f.err
}

func (f *fakeClient) Drop(_ context.Context, token, _ string) ([]models.Course, error) {
	f.record("Drop", token)
	return f.schedule, f.err
}

// manualScheduler collects deferred work so tests decide when it runs.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) Fire() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, f := range pending {
		f()
	}
}
