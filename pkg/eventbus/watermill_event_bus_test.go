package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataflow/strataflow/pkg/events"
	"github.com/strataflow/strataflow/pkg/models"
)

func TestPublishSubscribeRoundTrip(t *testing.T) {
	bus := NewGoChannelEventBus(watermill.NopLogger{})
	defer bus.Close()

	received := make(chan *events.NodeExecuted, 1)

	err := bus.Handle(events.NodeExecutedEvent, func(_ context.Context, event any) error {
		decoded, ok := event.(*events.NodeExecuted)
		if !ok {
			t.Errorf("unexpected event payload %T", event)

			return nil
		}

		received <- decoded

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	sent := events.NodeExecuted{
		BaseEvent: events.BaseEvent{
			ID:          bus.GenerateID(),
			Type:        events.NodeExecutedEvent,
			Timestamp:   time.Now().UTC(),
			ExecutionID: "exec-1",
			BookingID:   "booking-1",
		},
		Entry: models.ExecutionLogEntry{
			NodeID:   "confirm",
			NodeType: models.NodeTypeStatusChange,
			Action:   "Status Changed",
			Details:  "Changed status to confirmed",
		},
	}
	require.NoError(t, bus.Publish(ctx, "exec-1", sent))

	select {
	case decoded := <-received:
		assert.Equal(t, "exec-1", decoded.ExecutionID)
		assert.Equal(t, "Status Changed", decoded.Entry.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestSubscribeDropsUnhandledEventTypes(t *testing.T) {
	bus := NewGoChannelEventBus(watermill.NopLogger{})
	defer bus.Close()

	received := make(chan struct{}, 1)

	err := bus.Handle(events.ExecutionCompletedEvent, func(_ context.Context, _ any) error {
		received <- struct{}{}

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	started := events.ExecutionStarted{
		BaseEvent: events.BaseEvent{ID: bus.GenerateID(), Type: events.ExecutionStartedEvent},
	}
	require.NoError(t, bus.Publish(ctx, "exec-1", started))

	completed := events.ExecutionCompleted{
		BaseEvent: events.BaseEvent{ID: bus.GenerateID(), Type: events.ExecutionCompletedEvent},
	}
	require.NoError(t, bus.Publish(ctx, "exec-1", completed))

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("completed event never delivered")
	}
}

func TestGenerateIDIsUnique(t *testing.T) {
	bus := NewGoChannelEventBus(watermill.NopLogger{})
	defer bus.Close()

	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
