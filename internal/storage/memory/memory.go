package memory

import (
	"context"
	"fmt"
	"maps"
	"roombooker/internal/booking"
	"roombooker/internal/models"
	"roombooker/internal/storage"
	"slices"
	"sort"
	"sync"
)

// Storage is an in-process interval store. Transactions are serialized by a single
// mutex and rolled back by restoring a snapshot taken when they start.
type Storage struct {
	mu       sync.Mutex
	rooms    map[string]models.Room
	bookings map[string]models.Booking
	checkins map[string]models.CheckinRecord // by booking id
}

var _ booking.IntervalStore = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		rooms:    make(map[string]models.Room),
		bookings: make(map[string]models.Booking),
		checkins: make(map[string]models.CheckinRecord),
	}
}

func (s *Storage) SaveRoom(ctx context.Context, room models.Room) error {
	const op = "storage.memory.SaveRoom"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		if r.Code == room.Code && r.ID != room.ID {
			return fmt.Errorf("%s: %w", op, storage.ErrRoomExists)
		}
	}

	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	s.rooms[room.ID] = room

	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id string) (models.Room, error) {
	const op = "storage.memory.GetRoom"

	if err := ctx.Err(); err != nil {
		return models.Room{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return models.Room{}, fmt.Errorf("%s: %w", op, storage.ErrRoomNotFound)
	}

	return room, nil
}

func (s *Storage) FindOverlapping(ctx context.Context, roomID string, window models.Interval, statuses []models.BookingStatus) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findOverlapping(roomID, window, statuses), nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (models.BookingView, error) {
	const op = "storage.memory.GetBooking"

	if err := ctx.Err(); err != nil {
		return models.BookingView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.BookingView{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return s.view(b), nil
}

func (s *Storage) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	views := []models.BookingView{}
	for _, b := range s.bookings {
		if filter.RequesterID != "" && b.RequesterID != filter.RequesterID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, b.Status) {
			continue
		}
		if !filter.EndedBefore.IsZero() && b.EndTime.After(filter.EndedBefore) {
			continue
		}
		views = append(views, s.view(b))
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})

	return views, nil
}

// CheckinCount returns how many checkin records exist for bookingID.
func (s *Storage) CheckinCount(bookingID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checkins[bookingID]; ok {
		return 1
	}
	return 0
}

func (s *Storage) InTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := maps.Clone(s.bookings)
	checkins := maps.Clone(s.checkins)

	if err := fn(&tx{s: s}); err != nil {
		s.bookings = bookings
		s.checkins = checkins
		return err
	}

	if err := ctx.Err(); err != nil {
		s.bookings = bookings
		s.checkins = checkins
		return err
	}

	return nil
}

func (s *Storage) findOverlapping(roomID string, window models.Interval, statuses []models.BookingStatus) []models.Booking {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.RoomID != roomID || !slices.Contains(statuses, b.Status) {
			continue
		}
		if b.Interval().Overlaps(window) {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out
}

func (s *Storage) view(b models.Booking) models.BookingView {
	v := models.BookingView{Booking: b}
	if room, ok := s.rooms[b.RoomID]; ok {
		v.Room = &room
	}
	return v
}

// tx operates on the store while InTx holds its mutex.
type tx struct {
	s *Storage
}

// LockRoom is a no-op: InTx already serializes every transaction.
func (t *tx) LockRoom(ctx context.Context, _ string) error {
	return ctx.Err()
}

func (t *tx) FindOverlapping(ctx context.Context, roomID string, window models.Interval, statuses []models.BookingStatus) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.s.findOverlapping(roomID, window, statuses), nil
}

func (t *tx) GetBookingForUpdate(ctx context.Context, id string) (models.Booking, error) {
	const op = "storage.memory.GetBookingForUpdate"

	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}

	b, ok := t.s.bookings[id]
	if !ok {
		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return b, nil
}

func (t *tx) GetBookingByTokenForUpdate(ctx context.Context, token string) (models.Booking, error) {
	const op = "storage.memory.GetBookingByTokenForUpdate"

	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}

	for _, b := range t.s.bookings {
		if b.QRToken != nil && *b.QRToken == token {
			return b, nil
		}
	}

	return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
}

func (t *tx) Insert(ctx context.Context, b models.Booking) error {
	const op = "storage.memory.Insert"

	if err := ctx.Err(); err != nil {
		return err
	}

	if _, ok := t.s.rooms[b.RoomID]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrRoomNotFound)
	}

	// Mirrors the exclusion constraint of the postgres schema.
	if b.Status.Reserves() && len(t.s.findOverlapping(b.RoomID, b.Interval(), models.ReservingStatuses)) > 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrOverlap)
	}

	t.s.bookings[b.ID] = b

	return nil
}

func (t *tx) UpdateStatus(ctx context.Context, id string, from models.BookingStatus, upd models.StatusUpdate) error {
	const op = "storage.memory.UpdateStatus"

	if err := ctx.Err(); err != nil {
		return err
	}

	b, ok := t.s.bookings[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}
	if b.Status != from {
		return fmt.Errorf("%s: %w", op, storage.ErrStaleStatus)
	}

	if upd.QRToken != nil {
		for otherID, other := range t.s.bookings {
			if otherID != id && other.QRToken != nil && *other.QRToken == *upd.QRToken {
				return fmt.Errorf("%s: %w", op, storage.ErrTokenExists)
			}
		}
	}

	t.s.bookings[id] = upd.Apply(b)

	return nil
}

func (t *tx) InsertCheckin(ctx context.Context, rec models.CheckinRecord) error {
	const op = "storage.memory.InsertCheckin"

	if err := ctx.Err(); err != nil {
		return err
	}

	if _, ok := t.s.bookings[rec.BookingID]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}
	if _, ok := t.s.checkins[rec.BookingID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrCheckinExists)
	}

	t.s.checkins[rec.BookingID] = rec

	return nil
}
