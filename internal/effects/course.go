package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/api"
	"github.com/noah-isme/coursesync/internal/form"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// CourseCoordinator submits the open form and deletes courses.
type CourseCoordinator interface {
	Submit(ctx context.Context) error
	Delete(ctx context.Context, courseID, courseName string) error
}

type courseCoordinator struct {
	store     Dispatcher
	client    api.Client
	validator *validator.Validate
	messages  flasher
	logger    zerolog.Logger
}

// NewCourseCoordinator constructs the course CRUD coordinator. A nil scheduler
// falls back to real timers and a non-positive delay to the default.
func NewCourseCoordinator(store Dispatcher, client api.Client, validate *validator.Validate, scheduler Scheduler, clearDelay time.Duration, logger zerolog.Logger) CourseCoordinator {
	return &courseCoordinator{
		store:     store,
		client:    client,
		validator: validate,
		messages:  newFlasher(store, scheduler, clearDelay),
		logger:    logger.With().Str("component", "course_coordinator").Logger(),
	}
}

func (c *courseCoordinator) Submit(ctx context.Context) error {
	current := c.store.State()
	if current.Form == nil {
		return nil
	}
	editing := current.Form.Mode == state.FormEdit

	tok, ok := token(c.store)
	if !ok {
		return c.fail("submit_course", apperrors.ErrUnauthorized, "")
	}

	req, err := form.Validate(c.validator, current.Form.Draft)
	if err != nil {
		return c.fail("submit_course", err, "")
	}

	if editing {
		c.messages.set(state.MessageLoading, "Updating course...")
		course, err := c.client.UpdateCourse(ctx, tok, current.Form.TargetID, req)
		if err != nil {
			return c.fail("update_course", err, "Failed to update course: ")
		}
		c.store.Dispatch(state.CourseUpdated{Course: course})
		c.messages.set(state.MessageSuccess, fmt.Sprintf("Course \"%s\" updated successfully!", course.Name))
		c.logger.Info().Str("course_id", course.ID).Msg("course updated")
		return nil
	}

	c.messages.set(state.MessageLoading, "Adding course...")
	course, err := c.client.CreateCourse(ctx, tok, req)
	if err != nil {
		return c.fail("create_course", err, "Failed to add course: ")
	}
	c.store.Dispatch(state.CourseAdded{Course: course})
	c.messages.set(state.MessageSuccess, fmt.Sprintf("Course \"%s\" added successfully!", course.Name))
	c.logger.Info().Str("course_id", course.ID).Msg("course created")
	return nil
}

func (c *courseCoordinator) Delete(ctx context.Context, courseID, courseName string) error {
	tok, ok := token(c.store)
	if !ok {
		return c.fail("delete_course", apperrors.ErrUnauthorized, "")
	}

	if err := c.client.DeleteCourse(ctx, tok, courseID); err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			if apperrors.FromServer(err) {
				return c.fail("delete_course", err, "")
			}
			return c.fail("delete_course", apperrors.Wrap(err, apperrors.CodeNotFound, apperrors.ErrNotFound.Status, apperrors.ErrNotFound.Message), "")
		}
		return c.fail("delete_course", err, "Deletion failed: ")
	}

	message := fmt.Sprintf("Course \"%s\" deleted successfully.", courseName)
	c.store.Dispatch(state.CourseDeleted{CourseID: courseID, Message: message})
	c.messages.expire(state.MessageSuccess, message)
	c.logger.Info().Str("course_id", courseID).Msg("course deleted")
	return nil
}

// fail surfaces err as the shared error message, optionally prefixed.
func (c *courseCoordinator) fail(op string, err error, prefix string) error {
	appErr := apperrors.FromError(err)
	logFailure(c.logger, op, err)
	c.messages.set(state.MessageError, prefix+appErr.Message)
	return appErr
}
