package live

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"backline/internal/domain"
)

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := NewHub()
	a := &connection{userID: 1, send: make(chan []byte, 8)}
	b := &connection{userID: 2, send: make(chan []byte, 8)}
	hub.register(a)
	hub.register(b)

	hub.BookingCreated(domain.Booking{ID: 42, Status: domain.BookingPending})

	for _, c := range []*connection{a, b} {
		var event Event
		assert.NoError(t, json.Unmarshal(<-c.send, &event))
		assert.Equal(t, EventBookingCreated, event.Type)
		assert.Equal(t, int64(42), event.Booking.ID)
	}
}

func TestHub_SlowClientSkipped(t *testing.T) {
	hub := NewHub()
	slow := &connection{userID: 1, send: make(chan []byte)} // unbuffered, no reader
	hub.register(slow)

	// Must not block.
	hub.BookingConfirmed(domain.Booking{ID: 7})

	assert.Empty(t, slow.send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	c := &connection{userID: 1, send: make(chan []byte, 1)}
	hub.register(c)
	hub.unregister(c)

	_, open := <-c.send
	assert.False(t, open)

	// Second unregister is a no-op.
	hub.unregister(c)
}
