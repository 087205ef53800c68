package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RunsEveryHandlerDespiteErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string
	d.Subscribe(EventTimeOffCreated, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.StafferID)
		return errors.New("orchestrator down")
	})
	d.Subscribe(EventTimeOffCreated, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.StafferID)
		return nil
	})
	d.Subscribe(EventStafferSaved, func(context.Context, Event) error {
		seen = append(seen, "other")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventTimeOffCreated, "st-1", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "orchestrator down")
	assert.Equal(t, []string{"first:st-1", "second:st-1"}, seen)
}

func TestDispatcher_PanickingHandlerBecomesError(t *testing.T) {
	d := NewInMemoryDispatcher()
	ran := false
	d.Subscribe(EventStafferSaved, func(context.Context, Event) error {
		panic("nil payload")
	})
	d.Subscribe(EventStafferSaved, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventStafferSaved, "st-1", nil))

	assert.EqualError(t, err, "staffer_saved handler panicked: nil payload")
	assert.True(t, ran)
}

func TestDispatcher_StopsOnCancelledContext(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	d.Subscribe(EventTimeOffCreated, func(context.Context, Event) error {
		calls++
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Publish(ctx, NewEvent(EventTimeOffCreated, "st-1", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventStafferSaved, nil)
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventStafferSaved, "st-1", nil)))
}

func TestNewEvent_StampsIdentity(t *testing.T) {
	a := NewEvent(EventStafferSaved, "st-1", StafferSavedPayload{Created: true})
	b := NewEvent(EventStafferSaved, "st-1", nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}
