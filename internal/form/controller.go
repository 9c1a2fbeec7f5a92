package form

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// Dispatcher is the part of the store the controller needs.
type Dispatcher interface {
	Dispatch(state.Action)
	State() state.State
}

// Controller drives the create/edit overlay.
type Controller struct {
	store  Dispatcher
	logger zerolog.Logger
}

// NewController builds a form controller over the store.
func NewController(store Dispatcher, logger zerolog.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: logger.With().Str("component", "form_controller").Logger(),
	}
}

// OpenCreate opens an empty create form, replacing any open form.
func (c *Controller) OpenCreate() {
	c.store.Dispatch(state.AddFormOpened{})
}

// OpenEdit opens the form seeded from the catalog entry with the given id.
func (c *Controller) OpenEdit(courseID string) error {
	course, ok := c.store.State().FindCourse(courseID)
	if !ok {
		c.logger.Debug().Str("course_id", courseID).Msg("edit requested for unknown course")
		return apperrors.ErrNotFound
	}
	c.store.Dispatch(state.EditFormOpened{Course: course})
	return nil
}

// SetField records one field edit. Unknown field names are rejected.
func (c *Controller) SetField(field, value string) error {
	f := state.Field(strings.ToLower(strings.TrimSpace(field)))
	for _, known := range state.Fields {
		if f == known {
			c.store.Dispatch(state.FormFieldSet{Field: f, Value: value})
			return nil
		}
	}
	return apperrors.Clone(apperrors.ErrValidation, "Unknown field \""+field+"\".")
}

// Close discards the draft and any submission message.
func (c *Controller) Close() {
	c.store.Dispatch(state.FormClosed{})
}
