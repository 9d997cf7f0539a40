package booking

import (
	"context"
	"roombooker/internal/models"
	"time"
)

// Reader answers range-overlap queries. Implementations return every booking of roomID
// whose status is in statuses and whose [start, end) overlaps window.
type Reader interface {
	FindOverlapping(ctx context.Context, roomID string, window models.Interval, statuses []models.BookingStatus) ([]models.Booking, error)
}

// Tx is the read-then-write view the lifecycle operations run against.
// Everything done through a Tx commits or rolls back as a unit.
type Tx interface {
	Reader

	// LockRoom serializes writers of roomID until the transaction ends.
	LockRoom(ctx context.Context, roomID string) error
	GetBookingForUpdate(ctx context.Context, id string) (models.Booking, error)
	GetBookingByTokenForUpdate(ctx context.Context, token string) (models.Booking, error)
	Insert(ctx context.Context, b models.Booking) error
	// UpdateStatus fails with storage.ErrStaleStatus when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from models.BookingStatus, upd models.StatusUpdate) error
	InsertCheckin(ctx context.Context, rec models.CheckinRecord) error
}

type IntervalStore interface {
	Reader

	InTx(ctx context.Context, fn func(tx Tx) error) error
	SaveRoom(ctx context.Context, room models.Room) error
	GetRoom(ctx context.Context, id string) (models.Room, error)
	GetBooking(ctx context.Context, id string) (models.BookingView, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingView, error)
}

// Notifier delivers booking-status emails. Failures never affect a committed transition.
type Notifier interface {
	Send(ctx context.Context, to, subject, html string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev models.BookingEvent) error
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
