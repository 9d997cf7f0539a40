package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	t.Parallel()

	at := func(h int) time.Time { return time.Date(2026, 3, 2, h, 0, 0, 0, time.UTC) }

	testCases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "identical", a: Interval{at(10), at(12)}, b: Interval{at(10), at(12)}, want: true},
		{name: "inner", a: Interval{at(10), at(14)}, b: Interval{at(11), at(12)}, want: true},
		{name: "partial", a: Interval{at(10), at(12)}, b: Interval{at(11), at(13)}, want: true},
		{name: "touching end", a: Interval{at(10), at(12)}, b: Interval{at(12), at(13)}, want: false},
		{name: "touching start", a: Interval{at(12), at(13)}, b: Interval{at(10), at(12)}, want: false},
		{name: "disjoint", a: Interval{at(8), at(9)}, b: Interval{at(14), at(15)}, want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestBookingStatus(t *testing.T) {
	t.Parallel()

	for _, s := range ReservingStatuses {
		assert.True(t, s.Reserves(), s)
		assert.False(t, s.Terminal(), s)
	}
	for _, s := range []BookingStatus{StatusRejected, StatusCancelled, StatusCompleted} {
		assert.True(t, s.Terminal(), s)
		assert.False(t, s.Reserves(), s)
	}
	assert.False(t, BookingStatus("archived").Valid())
}

func TestStatusUpdateApply(t *testing.T) {
	t.Parallel()

	token := "tok"
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := StatusUpdate{Status: StatusApproved, QRToken: &token, UpdatedAt: now}.Apply(Booking{ID: "b1", Status: StatusPending})

	assert.Equal(t, StatusApproved, b.Status)
	assert.Equal(t, now, b.UpdatedAt)
	if assert.NotNil(t, b.QRToken) {
		assert.Equal(t, "tok", *b.QRToken)
	}
	assert.Nil(t, b.RejectionReason)
}
