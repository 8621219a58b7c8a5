package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Record(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func TestDispatcher_FansOutToEverySink(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{err: errors.New("broker down")}

	d := NewDispatcher(first, second)
	d.Dispatch(Event{Action: "reservation_created", EntityID: "a"})
	d.Dispatch(Event{Action: "reservation_deleted", EntityID: "a"})
	d.Close()

	assert.Equal(t, []string{"reservation_created", "reservation_deleted"}, first.actions())
	assert.Equal(t, []string{"reservation_created", "reservation_deleted"}, second.actions())
}

func TestDispatcher_StampsOccurredAt(t *testing.T) {
	sink := &recordingSink{}

	d := NewDispatcher(sink)
	d.Dispatch(Event{Action: "reservation_created"})
	d.Close()

	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].OccurredAt.IsZero())
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}

	d := NewDispatcher(sink)
	d.Close()
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "reservation_created"})
	})
	assert.Empty(t, sink.actions())
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "reservation_created"})
		d.Close()
	})
}
