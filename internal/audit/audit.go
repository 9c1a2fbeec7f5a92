package audit

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/internal/store"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "coursesync.actions"

// Publisher sends one message on a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Source is anything whose dispatched actions can be observed.
type Source interface {
	Subscribe(store.Listener) func()
}

// Event is the audit record emitted for every dispatched action. Session
// tokens are never part of it.
type Event struct {
	Source   string          `json:"source"`
	Sequence uint64          `json:"sequence"`
	Kind     string          `json:"kind"`
	Action   json.RawMessage `json:"action,omitempty"`
	User     string          `json:"user,omitempty"`
	View     state.View      `json:"view"`
	SentAt   time.Time       `json:"sent_at"`
}

// Recorder mirrors the action log onto a message subject.
type Recorder struct {
	publisher Publisher
	subject   string
	nodeID    string
	sequence  atomic.Uint64
	now       func() time.Time
	logger    zerolog.Logger
}

// NewRecorder builds a recorder publishing on subject.
func NewRecorder(publisher Publisher, subject string, logger zerolog.Logger) *Recorder {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Recorder{
		publisher: publisher,
		subject:   subject,
		nodeID:    uuid.NewString(),
		now:       time.Now,
		logger:    logger.With().Str("component", "audit_recorder").Logger(),
	}
}

// Attach starts recording every action dispatched by src.
func (r *Recorder) Attach(src Source) func() {
	return src.Subscribe(r.Record)
}

// Record publishes a single action. Publish failures are logged and dropped.
func (r *Recorder) Record(s state.State, a state.Action) {
	if r.publisher == nil || a == nil {
		return
	}

	event := Event{
		Source:   r.nodeID,
		Sequence: r.sequence.Add(1),
		Kind:     a.Kind(),
		View:     s.View,
		SentAt:   r.now().UTC(),
	}
	if s.Session != nil {
		event.User = s.Session.User.Username
	}
	if body, err := json.Marshal(a); err == nil && string(body) != "{}" {
		event.Action = body
	}

	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn().Err(err).Str("kind", event.Kind).Msg("failed to encode audit event")
		return
	}
	if err := r.publisher.Publish(r.subject, payload); err != nil {
		r.logger.Warn().Err(err).Str("kind", event.Kind).Msg("failed to publish audit event")
	}
}

// Connect dials the NATS server used for audit events.
func Connect(url string, logger zerolog.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("coursesync-client"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("audit broker disconnected")
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return conn, nil
}
