package booking

import (
	"context"
	"fmt"
	"roombooker/internal/models"
	"time"
)

type SlotQuery struct {
	RoomID          string
	Date            time.Time
	DurationMinutes int
	// IncludeBlocked keeps reserved candidates in the result marked unavailable
	// instead of omitting them.
	IncludeBlocked bool
}

// GenerateSlots enumerates start times within the operating hours of q.Date, stepping by
// the policy slot step. Candidates that would end after closing, or that already started,
// are never returned. It does not mutate state.
func (e *Engine) GenerateSlots(ctx context.Context, q SlotQuery) (slots []models.Slot, err error) {
	const op = "booking.GenerateSlots"
	defer e.track(op, time.Now(), &err)

	if q.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDuration)
	}

	if _, err = e.store.GetRoom(ctx, q.RoomID); err != nil {
		return nil, classify(op, err)
	}

	window := e.policy.OperatingWindow(q.Date)
	if int64(q.DurationMinutes) > int64(window.End.Sub(window.Start)/time.Minute) {
		return []models.Slot{}, nil
	}
	duration := time.Duration(q.DurationMinutes) * time.Minute

	reserved, err := e.store.FindOverlapping(ctx, q.RoomID, window, models.ReservingStatuses)
	if err != nil {
		return nil, classify(op, err)
	}

	step := e.policy.SlotStep
	if step <= 0 {
		step = time.Hour
	}

	now := e.clock.Now()
	slots = []models.Slot{}

	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		if start.Before(now) {
			continue
		}

		candidate := models.Interval{Start: start, End: start.Add(duration)}
		free := len(conflicts(reserved, candidate)) == 0

		if !free && !q.IncludeBlocked {
			continue
		}

		slots = append(slots, models.Slot{
			Time:      start.In(e.policy.location()).Format("15:04"),
			Available: free,
		})
	}

	return slots, nil
}
