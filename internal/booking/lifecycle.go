package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/metrics"
	"roombooker/internal/models"
	"roombooker/internal/storage"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	RoomID        string
	Purpose       string
	AudienceCount int
	StartTime     time.Time
	EndTime       time.Time
}

type Decision struct {
	Status          models.BookingStatus
	RejectionReason string
}

type ListFilter struct {
	// All lists every booking instead of the caller's own. Admin only.
	All bool
}

// Create reserves [req.StartTime, req.EndTime) for the caller as a pending booking.
// The overlap check and the insert run in one transaction holding the room lock.
func (e *Engine) Create(ctx context.Context, caller models.CallerIdentity, req CreateRequest) (b models.Booking, err error) {
	const op = "booking.Create"
	defer e.track(op, time.Now(), &err)

	if caller.ID == "" {
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	window := models.Interval{Start: req.StartTime, End: req.EndTime}
	if !window.Valid() {
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}

	if _, err = e.store.GetRoom(ctx, req.RoomID); err != nil {
		return models.Booking{}, classify(op, err)
	}

	now := e.clock.Now()
	b = models.Booking{
		ID:             uuid.NewString(),
		RoomID:         req.RoomID,
		RequesterID:    caller.ID,
		RequesterName:  caller.Name,
		RequesterEmail: caller.Email,
		Purpose:        req.Purpose,
		AudienceCount:  req.AudienceCount,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = e.store.InTx(ctx, func(tx Tx) error {
		if err := tx.LockRoom(ctx, req.RoomID); err != nil {
			return err
		}

		free, err := available(ctx, tx, req.RoomID, window)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%s: %w", op, ErrSlotConflict)
		}

		return tx.Insert(ctx, b)
	})
	if err != nil {
		return models.Booking{}, classify(op, err)
	}

	metrics.TrackTransition("none", string(models.StatusPending))

	e.log.Info("booking created",
		slog.String("booking_id", b.ID),
		slog.String("room_id", b.RoomID),
		slog.String("user_id", b.RequesterID),
		slog.Time("start_time", b.StartTime),
		slog.Time("end_time", b.EndTime),
	)

	e.publish("booking.created", b)

	return b, nil
}

// Process applies an admin decision to a pending booking. Approval mints the QR token,
// rejection stores the reason. The requester is emailed after the transition commits.
func (e *Engine) Process(ctx context.Context, caller models.CallerIdentity, id string, d Decision) (b models.Booking, err error) {
	const op = "booking.Process"
	defer e.track(op, time.Now(), &err)

	if !caller.IsAdmin() {
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	upd := models.StatusUpdate{Status: d.Status, UpdatedAt: e.clock.Now()}

	switch d.Status {
	case models.StatusApproved:
		token, err := e.newToken()
		if err != nil {
			return models.Booking{}, fmt.Errorf("%s: mint token: %w: %w", op, ErrTransient, err)
		}
		upd.QRToken = &token
	case models.StatusRejected:
		reason := strings.TrimSpace(d.RejectionReason)
		if reason == "" {
			reason = e.policy.DefaultRejectionReason
		}
		upd.RejectionReason = &reason
	case models.StatusCancelled:
	default:
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrInvalidDecision)
	}

	err = e.store.InTx(ctx, func(tx Tx) error {
		cur, err := tx.GetBookingForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if cur.Status != models.StatusPending {
			return fmt.Errorf("%s: cannot update booking status from %s: %w", op, cur.Status, ErrInvalidTransition)
		}

		if err := tx.UpdateStatus(ctx, id, models.StatusPending, upd); err != nil {
			return err
		}

		b = upd.Apply(cur)

		return nil
	})
	if err != nil {
		return models.Booking{}, classify(op, err)
	}

	metrics.TrackTransition(string(models.StatusPending), string(b.Status))

	e.log.Info("booking processed",
		slog.String("booking_id", b.ID),
		slog.String("status", string(b.Status)),
		slog.String("admin_id", caller.ID),
	)

	e.notify(b)
	e.publish("booking."+string(b.Status), b)

	return b, nil
}

// Cancel withdraws a pending or approved booking. Only the requester or an admin may cancel.
func (e *Engine) Cancel(ctx context.Context, caller models.CallerIdentity, id string) (b models.Booking, err error) {
	const op = "booking.Cancel"
	defer e.track(op, time.Now(), &err)

	var from models.BookingStatus

	err = e.store.InTx(ctx, func(tx Tx) error {
		cur, err := tx.GetBookingForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !caller.IsAdmin() && cur.RequesterID != caller.ID {
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		if cur.Status != models.StatusPending && cur.Status != models.StatusApproved {
			return fmt.Errorf("%s: cannot cancel booking with status %s: %w", op, cur.Status, ErrInvalidTransition)
		}

		upd := models.StatusUpdate{Status: models.StatusCancelled, UpdatedAt: e.clock.Now()}
		if err := tx.UpdateStatus(ctx, id, cur.Status, upd); err != nil {
			return err
		}

		from = cur.Status
		b = upd.Apply(cur)

		return nil
	})
	if err != nil {
		return models.Booking{}, classify(op, err)
	}

	metrics.TrackTransition(string(from), string(models.StatusCancelled))

	e.log.Info("booking cancelled",
		slog.String("booking_id", b.ID),
		slog.String("from", string(from)),
		slog.String("by", caller.ID),
	)

	e.notify(b)
	e.publish("booking.cancelled", b)

	return b, nil
}

// CheckIn consumes an approved booking's QR token. The token stays on the booking;
// repeated scans are refused by the checked_in status.
func (e *Engine) CheckIn(ctx context.Context, caller models.CallerIdentity, token string) (res models.CheckinResult, err error) {
	const op = "booking.CheckIn"
	defer e.track(op, time.Now(), &err)

	token = strings.TrimSpace(token)
	if token == "" {
		return models.CheckinResult{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	var b models.Booking

	err = e.store.InTx(ctx, func(tx Tx) error {
		cur, err := tx.GetBookingByTokenForUpdate(ctx, token)
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		if err != nil {
			return err
		}

		switch cur.Status {
		case models.StatusApproved:
		case models.StatusCheckedIn:
			return fmt.Errorf("%s: %w", op, ErrAlreadyCheckedIn)
		default:
			return fmt.Errorf("%s: cannot check in booking with status %s: %w", op, cur.Status, ErrInvalidTransition)
		}

		now := e.clock.Now()
		rec := models.CheckinRecord{
			ID:          uuid.NewString(),
			BookingID:   cur.ID,
			CheckinTime: now,
		}
		if caller.ID != "" {
			scannedBy := caller.ID
			rec.CheckedInBy = &scannedBy
		}

		if err := tx.InsertCheckin(ctx, rec); err != nil {
			return err
		}

		upd := models.StatusUpdate{Status: models.StatusCheckedIn, UpdatedAt: now}
		if err := tx.UpdateStatus(ctx, cur.ID, models.StatusApproved, upd); err != nil {
			return err
		}

		b = upd.Apply(cur)

		return nil
	})
	if err != nil {
		return models.CheckinResult{}, classify(op, err)
	}

	metrics.TrackTransition(string(models.StatusApproved), string(models.StatusCheckedIn))

	roomName := b.RoomID
	if room, err := e.store.GetRoom(ctx, b.RoomID); err != nil {
		e.log.Warn("failed to load room for checkin result", slog.String("booking_id", b.ID), sl.Err(err))
	} else {
		roomName = room.Name
	}

	user := b.RequesterName
	if user == "" {
		user = b.RequesterID
	}

	e.log.Info("booking checked in", slog.String("booking_id", b.ID), slog.String("scanned_by", caller.ID))

	e.publish("booking.checked_in", b)

	return models.CheckinResult{
		BookingID: b.ID,
		User:      user,
		Room:      roomName,
		Time:      b.StartTime,
	}, nil
}

// Complete closes a checked-in booking.
func (e *Engine) Complete(ctx context.Context, id string) (err error) {
	const op = "booking.Complete"
	defer e.track(op, time.Now(), &err)

	var b models.Booking

	err = e.store.InTx(ctx, func(tx Tx) error {
		cur, err := tx.GetBookingForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if cur.Status != models.StatusCheckedIn {
			return fmt.Errorf("%s: cannot complete booking with status %s: %w", op, cur.Status, ErrInvalidTransition)
		}

		upd := models.StatusUpdate{Status: models.StatusCompleted, UpdatedAt: e.clock.Now()}
		if err := tx.UpdateStatus(ctx, id, models.StatusCheckedIn, upd); err != nil {
			return err
		}

		b = upd.Apply(cur)

		return nil
	})
	if err != nil {
		return classify(op, err)
	}

	metrics.TrackTransition(string(models.StatusCheckedIn), string(models.StatusCompleted))
	e.publish("booking.completed", b)

	return nil
}

// CompleteElapsed completes every checked-in booking whose end time has passed.
func (e *Engine) CompleteElapsed(ctx context.Context) (int, error) {
	const op = "booking.CompleteElapsed"

	elapsed, err := e.store.ListBookings(ctx, models.BookingFilter{
		Statuses:    []models.BookingStatus{models.StatusCheckedIn},
		EndedBefore: e.clock.Now(),
	})
	if err != nil {
		return 0, classify(op, err)
	}

	completed := 0
	for _, b := range elapsed {
		err := e.Complete(ctx, b.ID)
		if errors.Is(err, ErrInvalidTransition) {
			continue
		}
		if err != nil {
			return completed, err
		}
		completed++
	}

	if completed > 0 {
		e.log.Info("completed elapsed bookings", slog.Int("count", completed))
	}

	return completed, nil
}

// FindAll lists the caller's own bookings, or every booking for admins when f.All is set.
func (e *Engine) FindAll(ctx context.Context, caller models.CallerIdentity, f ListFilter) (views []models.BookingView, err error) {
	const op = "booking.FindAll"
	defer e.track(op, time.Now(), &err)

	filter := models.BookingFilter{}

	switch {
	case f.All && !caller.IsAdmin():
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	case f.All:
	case caller.ID == "":
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	default:
		filter.RequesterID = caller.ID
	}

	views, err = e.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, classify(op, err)
	}

	return views, nil
}

func (e *Engine) GetByID(ctx context.Context, caller models.CallerIdentity, id string) (v models.BookingView, err error) {
	const op = "booking.GetByID"
	defer e.track(op, time.Now(), &err)

	v, err = e.store.GetBooking(ctx, id)
	if err != nil {
		return models.BookingView{}, classify(op, err)
	}

	if !caller.IsAdmin() && v.RequesterID != caller.ID {
		return models.BookingView{}, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return v, nil
}

// RoomSchedule returns the approved and checked-in bookings overlapping the local day
// of date, stripped of purpose and audience details.
func (e *Engine) RoomSchedule(ctx context.Context, roomID string, date time.Time) (entries []models.ScheduleEntry, err error) {
	const op = "booking.RoomSchedule"
	defer e.track(op, time.Now(), &err)

	if _, err = e.store.GetRoom(ctx, roomID); err != nil {
		return nil, classify(op, err)
	}

	day := e.policy.Day(date)

	bookings, err := e.store.FindOverlapping(ctx, roomID, day, []models.BookingStatus{models.StatusApproved, models.StatusCheckedIn})
	if err != nil {
		return nil, classify(op, err)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})

	entries = []models.ScheduleEntry{}
	for _, b := range bookings {
		if b.Status != models.StatusApproved && b.Status != models.StatusCheckedIn {
			continue
		}
		if !b.Interval().Overlaps(day) {
			continue
		}

		entry := models.ScheduleEntry{
			ID:     b.ID,
			Title:  "Booked",
			Start:  b.StartTime,
			End:    b.EndTime,
			Status: b.Status,
		}
		if e.policy.ShowOrganizer {
			entry.Organizer = b.RequesterName
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
