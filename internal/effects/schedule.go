package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/api"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// ScheduleCoordinator keeps the signed-in user's enrollments in sync.
type ScheduleCoordinator interface {
	Fetch(ctx context.Context) error
	Enroll(ctx context.Context, courseID string) error
	Drop(ctx context.Context, courseID string) error
}

type scheduleCoordinator struct {
	store    Dispatcher
	client   api.Client
	messages flasher
	logger   zerolog.Logger
}

// NewScheduleCoordinator constructs the schedule coordinator.
func NewScheduleCoordinator(store Dispatcher, client api.Client, scheduler Scheduler, clearDelay time.Duration, logger zerolog.Logger) ScheduleCoordinator {
	return &scheduleCoordinator{
		store:    store,
		client:   client,
		messages: newFlasher(store, scheduler, clearDelay),
		logger:   logger.With().Str("component", "schedule_coordinator").Logger(),
	}
}

func (c *scheduleCoordinator) Fetch(ctx context.Context) error {
	c.store.Dispatch(state.ScheduleFetchStarted{})

	tok, ok := token(c.store)
	if !ok {
		return c.fetchFailed(apperrors.ErrUnauthorized)
	}

	courses, err := c.client.Schedule(ctx, tok)
	if err != nil {
		return c.fetchFailed(err)
	}

	c.store.Dispatch(state.ScheduleFetchSucceeded{Courses: courses})
	return nil
}

func (c *scheduleCoordinator) Enroll(ctx context.Context, courseID string) error {
	tok, ok := token(c.store)
	if !ok {
		return c.fail("enroll", apperrors.ErrUnauthorized, "")
	}

	schedule, err := c.client.Enroll(ctx, tok, courseID)
	if err != nil {
		return c.fail("enroll", err, "Enrollment failed: ")
	}

	c.store.Dispatch(state.Enrolled{Schedule: schedule})
	c.messages.flash(state.MessageSuccess, fmt.Sprintf("Course \"%s\" added to your schedule.", c.courseName(courseID)))
	c.logger.Info().Str("course_id", courseID).Int("schedule_size", len(schedule)).Msg("enrolled")
	return nil
}

func (c *scheduleCoordinator) Drop(ctx context.Context, courseID string) error {
	tok, ok := token(c.store)
	if !ok {
		return c.fail("drop", apperrors.ErrUnauthorized, "")
	}

	name := c.courseName(courseID)
	schedule, err := c.client.Drop(ctx, tok, courseID)
	if err != nil {
		return c.fail("drop", err, "Drop failed: ")
	}

	c.store.Dispatch(state.Dropped{Schedule: schedule})
	c.messages.flash(state.MessageSuccess, fmt.Sprintf("Course \"%s\" dropped from your schedule.", name))
	c.logger.Info().Str("course_id", courseID).Int("schedule_size", len(schedule)).Msg("dropped")
	return nil
}

// courseName prefers the catalog name, then the schedule's, then the id.
func (c *scheduleCoordinator) courseName(courseID string) string {
	s := c.store.State()
	if course, ok := s.FindCourse(courseID); ok {
		return course.Name
	}
	for _, course := range s.Schedule {
		if course.ID == courseID {
			return course.Name
		}
	}
	return courseID
}

func (c *scheduleCoordinator) fetchFailed(err error) error {
	appErr := apperrors.FromError(err)
	logFailure(c.logger, "fetch_schedule", err)
	c.store.Dispatch(state.ScheduleFetchFailed{Message: appErr.Message})
	return appErr
}

func (c *scheduleCoordinator) fail(op string, err error, prefix string) error {
	appErr := apperrors.FromError(err)
	logFailure(c.logger, op, err)
	c.messages.set(state.MessageError, prefix+appErr.Message)
	return appErr
}
