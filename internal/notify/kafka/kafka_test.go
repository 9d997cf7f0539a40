package kafka

import (
	"encoding/json"
	"roombooker/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	occurred := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ev := models.BookingEvent{
		Type:       "booking.approved",
		BookingID:  "b-1",
		RoomID:     "r-1",
		Status:     models.StatusApproved,
		OccurredAt: occurred,
	}

	msg, err := newMessage(ev)
	require.NoError(t, err)

	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.Equal(t, occurred, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, []byte("booking.approved"), msg.Headers[0].Value)

	var decoded models.BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "b-1", decoded.BookingID)
	assert.Equal(t, models.StatusApproved, decoded.Status)
}

func TestNewRequiresBrokersAndTopic(t *testing.T) {
	t.Parallel()

	_, err := New(nil, "booking.events")
	assert.Error(t, err)

	_, err = New([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	p, err := New([]string{"localhost:9092"}, "booking.events")
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
