package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/observability"
	"github.com/noah-isme/coursesync/internal/state"
)

// Listener observes every dispatched action together with the state it produced.
// Listeners run on the dispatching goroutine and must not call Dispatch.
type Listener func(state.State, state.Action)

// Store owns the client state and the ordered log of actions applied to it.
type Store struct {
	dispatchMu sync.Mutex
	mu         sync.RWMutex
	state      state.State
	history    []state.Action
	subs       []subscription
	nextID     int
	logger     zerolog.Logger
}

type subscription struct {
	id       int
	listener Listener
}

// New creates a store seeded with initial.
func New(initial state.State, logger zerolog.Logger) *Store {
	return &Store{
		state:  initial,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Dispatch reduces a into the current state. Concurrent callers are
// serialized, so reductions never overlap.
func (s *Store) Dispatch(a state.Action) {
	if a == nil {
		return
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next := state.Reduce(s.state, a)
	s.state = next
	s.history = append(s.history, a)
	listeners := make([]Listener, len(s.subs))
	for i, sub := range s.subs {
		listeners[i] = sub.listener
	}
	s.mu.Unlock()

	observability.ActionsDispatched().WithLabelValues(a.Kind()).Inc()
	s.logger.Debug().Str("action", a.Kind()).Msg("action dispatched")

	for _, l := range listeners {
		l(next, a)
	}
}

// State returns the current state.
func (s *Store) State() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// History returns a copy of every action dispatched so far, oldest first.
func (s *Store) History() []state.Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]state.Action, len(s.history))
	copy(out, s.history)
	return out
}

// Subscribe registers l and returns a function that removes it. Listeners are
// notified in subscription order.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, listener: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers reports how many listeners are currently registered.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
