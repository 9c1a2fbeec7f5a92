package effects

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// DefaultMessageClearDelay is how long a success message stays visible.
const DefaultMessageClearDelay = 3 * time.Second

// Dispatcher is the part of the store coordinators depend on.
type Dispatcher interface {
	Dispatch(state.Action)
	State() state.State
}

// SessionStore persists the authenticated session between runs.
type SessionStore interface {
	Save(ctx context.Context, sess models.Session) error
	Erase(ctx context.Context) error
	Restore(ctx context.Context) (*models.Session, error)
}

// Scheduler runs f once after d. Implementations must not block.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules work on the runtime timer.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// flasher writes the shared message and arranges for it to be cleared.
type flasher struct {
	store     Dispatcher
	scheduler Scheduler
	delay     time.Duration
}

func newFlasher(store Dispatcher, scheduler Scheduler, delay time.Duration) flasher {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	if delay <= 0 {
		delay = DefaultMessageClearDelay
	}
	return flasher{store: store, scheduler: scheduler, delay: delay}
}

func (f flasher) set(kind state.MessageKind, text string) {
	f.store.Dispatch(state.FormMessageSet{Level: kind, Text: text})
}

// flash sets the message and schedules its expiry. The expiry carries the
// generation of this write, so a newer message survives it.
func (f flasher) flash(kind state.MessageKind, text string) {
	f.set(kind, text)
	f.expire(kind, text)
}

// expire schedules the clear of the current message if it is still the one
// just written.
func (f flasher) expire(kind state.MessageKind, text string) {
	current := f.store.State().Message
	if current.Kind != kind || current.Text != text {
		return
	}
	generation := current.Generation
	f.scheduler.AfterFunc(f.delay, func() {
		f.store.Dispatch(state.FormMessageExpired{Generation: generation})
	})
}

// token reads the bearer token from the live state at call time.
func token(store Dispatcher) (string, bool) {
	return store.State().Token()
}

func logFailure(logger zerolog.Logger, op string, err error) {
	appErr := apperrors.FromError(err)
	event := logger.Warn()
	switch appErr.Code {
	case apperrors.CodeValidation, apperrors.CodeUnauthorized:
		event = logger.Debug()
	}
	event.Err(err).Str("op", op).Str("code", appErr.Code).Msg("operation failed")
}
