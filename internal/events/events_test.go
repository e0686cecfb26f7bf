package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = append(received, event)
		return nil
	})

	payload := BookingEventPayload{
		BookingID: 1,
		BookerID:  2,
		ItemID:    3,
		ItemName:  "drill",
		OwnerID:   4,
		Status:    "WAITING",
		Start:     time.Now(),
		End:       time.Now().Add(time.Hour),
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())

	var decoded BookingEventPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &decoded))
	assert.Equal(t, int64(1), decoded.BookingID)
	assert.Equal(t, "drill", decoded.ItemName)
}

func TestEventBus_TypeIsolation(t *testing.T) {
	bus := NewEventBus()

	var created, approved int
	bus.Subscribe(EventBookingCreated, func(*Event) error { created++; return nil })
	bus.Subscribe(EventBookingApproved, func(*Event) error { approved++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingApproved, BookingEventPayload{BookingID: 1}))

	assert.Zero(t, created)
	assert.Equal(t, 1, approved)
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	var first, second bool
	bus.Subscribe(EventBookingRejected, func(*Event) error { first = true; return nil })
	bus.Subscribe(EventBookingRejected, func(*Event) error { second = true; return errors.New("handler error is swallowed") })

	require.NoError(t, bus.PublishJSON(EventBookingRejected, BookingEventPayload{BookingID: 1}))
	assert.True(t, first)
	assert.True(t, second)
}

func TestEventBus_NilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{}))
}
