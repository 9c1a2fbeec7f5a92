package store

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/state"
)

func TestDispatchReducesAndRecordsHistory(t *testing.T) {
	s := New(state.Initial(), zerolog.Nop())
	s.Dispatch(state.CatalogFetchStarted{})
	s.Dispatch(state.CatalogFetchSucceeded{Courses: []models.Course{{ID: "1", Name: "Intro"}}})
	s.Dispatch(nil)

	require.False(t, s.State().Loading)
	require.Len(t, s.State().Courses, 1)

	history := s.History()
	require.Len(t, history, 2)
	require.Equal(t, state.KindCatalogFetchStarted, history[0].Kind())

	// Replaying the log reproduces the live state.
	require.Equal(t, s.State(), state.Replay(state.Initial(), history))
}

func TestSubscribersSeeEveryActionInOrder(t *testing.T) {
	s := New(state.Initial(), zerolog.Nop())

	var kinds []string
	cancel := s.Subscribe(func(st state.State, a state.Action) {
		kinds = append(kinds, a.Kind())
	})

	s.Dispatch(state.SearchTermSet{Term: "cs"})
	s.Dispatch(state.ViewSelected{View: state.ViewSchedule})
	cancel()
	cancel()
	s.Dispatch(state.SearchTermSet{Term: "math"})

	require.Equal(t, []string{state.KindSearchTermSet, state.KindViewSelected}, kinds)
}

func TestConcurrentDispatchesAreSerialized(t *testing.T) {
	s := New(state.Initial(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(state.FormMessageSet{Level: state.MessageLoading, Text: "working"})
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(50), s.State().Message.Generation)
	require.Len(t, s.History(), 50)
}

func TestCancelledSubscriptionsAreReleased(t *testing.T) {
	s := New(state.Initial(), zerolog.Nop())

	for i := 0; i < 100; i++ {
		cancel := s.Subscribe(func(state.State, state.Action) {})
		cancel()
		cancel()
	}
	require.Zero(t, s.Subscribers())

	var got []string
	cancelFirst := s.Subscribe(func(state.State, state.Action) { got = append(got, "first") })
	cancelSecond := s.Subscribe(func(state.State, state.Action) { got = append(got, "second") })
	s.Subscribe(func(state.State, state.Action) { got = append(got, "third") })
	require.Equal(t, 3, s.Subscribers())

	cancelSecond()
	s.Dispatch(state.SearchTermSet{Term: "cs"})
	require.Equal(t, []string{"first", "third"}, got)

	cancelFirst()
	got = nil
	s.Dispatch(state.SearchTermSet{Term: "math"})
	require.Equal(t, []string{"third"}, got)
	require.Equal(t, 1, s.Subscribers())
}
