package booking

import (
	"context"
	"errors"
	"fmt"
	"roombooker/internal/storage"
)

var (
	ErrInvalidRange      = errors.New("start time must be before end time")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrSlotConflict      = errors.New("room is already booked for the selected time slot")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidToken      = errors.New("invalid qr token")
	ErrAlreadyCheckedIn  = errors.New("already checked in")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidDecision   = errors.New("decision must be one of approved, rejected, cancelled")
	ErrRoomExists        = errors.New("room code already exists")

	// ErrTransient marks persistence failures (connection loss, aborted transaction).
	// Operations failing with it are safe to retry.
	ErrTransient = errors.New("temporary storage failure")
)

var domainErrors = []error{
	ErrInvalidRange,
	ErrInvalidDuration,
	ErrSlotConflict,
	ErrInvalidTransition,
	ErrInvalidToken,
	ErrAlreadyCheckedIn,
	ErrNotFound,
	ErrForbidden,
	ErrInvalidDecision,
	ErrRoomExists,
	ErrTransient,
}

func isDomain(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// classify maps storage failures onto the engine's error kinds.
// Errors that already carry an engine kind pass through untouched.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isDomain(err):
		return err
	case errors.Is(err, storage.ErrBookingNotFound), errors.Is(err, storage.ErrRoomNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, storage.ErrOverlap):
		return fmt.Errorf("%s: %w", op, ErrSlotConflict)
	case errors.Is(err, storage.ErrRoomExists):
		return fmt.Errorf("%s: %w", op, ErrRoomExists)
	case errors.Is(err, storage.ErrCheckinExists):
		return fmt.Errorf("%s: %w", op, ErrAlreadyCheckedIn)
	case errors.Is(err, storage.ErrStaleStatus):
		return fmt.Errorf("%s: %w", op, ErrInvalidTransition)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidDecision):
		return "invalid"
	case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrRoomExists):
		return "conflict"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrAlreadyCheckedIn):
		return "already_checked_in"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrTransient):
		return "transient"
	default:
		return "error"
	}
}
