package booking

import (
	"context"
	"fmt"
	"roombooker/internal/models"
	"time"
)

// conflicts is the single overlap test: every availability decision goes through it.
func conflicts(existing []models.Booking, window models.Interval) []models.Booking {
	var out []models.Booking
	for _, b := range existing {
		if b.Status.Reserves() && b.Interval().Overlaps(window) {
			out = append(out, b)
		}
	}
	return out
}

func available(ctx context.Context, r Reader, roomID string, window models.Interval) (bool, error) {
	existing, err := r.FindOverlapping(ctx, roomID, window, models.ReservingStatuses)
	if err != nil {
		return false, err
	}
	return len(conflicts(existing, window)) == 0, nil
}

// IsAvailable reports whether no pending, approved or checked-in booking of roomID
// overlaps [start, end).
func (e *Engine) IsAvailable(ctx context.Context, roomID string, start, end time.Time) (ok bool, err error) {
	const op = "booking.IsAvailable"
	defer e.track(op, time.Now(), &err)

	window := models.Interval{Start: start, End: end}
	if !window.Valid() {
		return false, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}

	ok, err = available(ctx, e.store, roomID, window)
	if err != nil {
		return false, classify(op, err)
	}

	return ok, nil
}

// WithinOperatingHours is the advisory operating-hours check.
func (e *Engine) WithinOperatingHours(start, end time.Time) bool {
	return e.policy.WithinOperatingHours(start, end)
}
