package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/repository"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CourseRecord{}, &models.UserRecord{}, &models.Enrollment{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func TestCourseServiceLifecycle(t *testing.T) {
	db := setupDB(t)
	svc := NewCourseService(repository.NewCourseRepository(db), newValidator(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", dto.CourseRequest{
		Name:        "Algorithms<script>x</script>",
		Subject:     " cs ",
		Number:      301,
		Credits:     4,
		Description: "<b>Graphs</b>",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Algorithms", created.Name)
	require.Equal(t, "CS", created.Subject)
	require.Equal(t, "Graphs", created.Description)
	require.Equal(t, "u1", created.CreatedBy)

	updated, err := svc.Update(ctx, created.ID, dto.CourseRequest{Name: "Advanced Algorithms", Subject: "CS", Number: 401, Credits: 4})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, 401, updated.Number)

	courses, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrCourseNotFound)
	_, err = svc.Update(ctx, created.ID, dto.CourseRequest{Name: "X", Subject: "CS", Number: 1, Credits: 1})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseServiceRejectsInvalidInput(t *testing.T) {
	db := setupDB(t)
	svc := NewCourseService(repository.NewCourseRepository(db), newValidator(), zerolog.Nop())

	_, err := svc.Create(context.Background(), "u1", dto.CourseRequest{Name: "Intro", Subject: "CS", Number: 101, Credits: 9})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 400, apperrors.FromError(err).Status)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), newValidator(), "secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{Username: " ada ", Password: "lovelace", Role: models.RoleTeacher})
	require.NoError(t, err)
	require.Equal(t, "ada", registered.User.Username)
	require.Equal(t, models.RoleTeacher, registered.User.Role)

	claims := &TokenClaims{}
	_, err = jwt.ParseWithClaims(registered.Token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, claims.Subject)
	require.Equal(t, models.RoleTeacher, claims.Role)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "ada", Password: "another", Role: models.RoleStudent})
	require.ErrorIs(t, err, ErrUsernameTaken)

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{Username: "ada", Password: "lovelace"})
	require.NoError(t, err)
	require.Equal(t, registered.User, loggedIn.User)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "ada", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceRejectsUnknownRole(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), newValidator(), "secret", time.Hour, zerolog.Nop())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "ada", Password: "lovelace", Role: "admin"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestScheduleServiceReturnsFullSchedule(t *testing.T) {
	db := setupDB(t)
	courses := repository.NewCourseRepository(db)
	svc := NewScheduleService(courses, repository.NewEnrollmentRepository(db), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, courses.Create(ctx, &models.CourseRecord{ID: "c1", Subject: "CS", Number: 101, Name: "Intro", Credits: 3}))

	schedule, err := svc.Add(ctx, "u1", "c1")
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	require.Equal(t, "c1", schedule[0].ID)

	_, err = svc.Add(ctx, "u1", "missing")
	require.ErrorIs(t, err, ErrCourseNotFound)

	schedule, err = svc.Drop(ctx, "u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, schedule)
	require.Empty(t, schedule)

	_, err = svc.Drop(ctx, "u1", " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeedServiceOnlySeedsEmptyCatalog(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewCourseRepository(db)
	svc := NewSeedService(repo, zerolog.Nop())

	seeded, err := svc.SeedCourses(context.Background(), DefaultCatalog)
	require.NoError(t, err)
	require.Equal(t, len(DefaultCatalog), seeded)

	seeded, err = svc.SeedCourses(context.Background(), DefaultCatalog)
	require.NoError(t, err)
	require.Zero(t, seeded)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(len(DefaultCatalog)), total)
}
