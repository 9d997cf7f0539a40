package booking_test

import (
	"context"
	"errors"
	"roombooker/internal/booking"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"roombooker/internal/storage/memory"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const roomID = "room-lab-1"

var (
	day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	student = models.CallerIdentity{ID: "u-1", Role: "mahasiswa", Name: "Ana", Email: "ana@campus.local"}
	other   = models.CallerIdentity{ID: "u-2", Role: "mahasiswa", Name: "Budi", Email: "budi@campus.local"}
	admin   = models.CallerIdentity{ID: "admin-1", Role: models.RoleAdmin, Name: "Admin", Email: "admin@campus.local"}
)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type sentMail struct {
	to, subject, html string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, html string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, sentMail{to: to, subject: subject, html: html})
	return n.err
}

func (n *recordingNotifier) Sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]sentMail(nil), n.sent...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		types = append(types, ev.Type)
	}
	return types
}

type fixture struct {
	engine    *booking.Engine
	store     *memory.Storage
	notifier  *recordingNotifier
	publisher *recordingPublisher
	clock     *fixedClock
}

func newFixture(t *testing.T, tweak ...func(*booking.Policy)) *fixture {
	t.Helper()

	store := memory.New()
	require.NoError(t, store.SaveRoom(context.Background(), models.Room{
		ID:       roomID,
		Code:     "LAB-1",
		Name:     "Computer Lab 1",
		Capacity: 30,
		Status:   models.RoomAvailable,
	}))

	policy := booking.DefaultPolicy()
	policy.Location = time.UTC
	for _, fn := range tweak {
		fn(&policy)
	}

	f := &fixture{
		store:     store,
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		clock:     &fixedClock{now: at(6, 0)},
	}

	f.engine = booking.New(slogdiscard.NewDiscardLogger(), store, f.notifier, policy,
		booking.WithClock(f.clock),
		booking.WithPublisher(f.publisher),
	)

	t.Cleanup(f.engine.Wait)

	return f
}

func (f *fixture) create(t *testing.T, caller models.CallerIdentity, start, end time.Time) models.Booking {
	t.Helper()

	b, err := f.engine.Create(context.Background(), caller, booking.CreateRequest{
		RoomID:        roomID,
		Purpose:       "Seminar",
		AudienceCount: 25,
		StartTime:     start,
		EndTime:       end,
	})
	require.NoError(t, err)

	return b
}

func (f *fixture) approve(t *testing.T, id string) models.Booking {
	t.Helper()

	b, err := f.engine.Process(context.Background(), admin, id, booking.Decision{Status: models.StatusApproved})
	require.NoError(t, err)
	require.NotNil(t, b.QRToken)

	return b
}

func (f *fixture) status(t *testing.T, id string) models.BookingStatus {
	t.Helper()

	v, err := f.store.GetBooking(context.Background(), id)
	require.NoError(t, err)

	return v.Status
}

// failingStore fails every transaction as a dropped connection would.
type failingStore struct {
	*memory.Storage
}

var errConnLost = errors.New("connection reset by peer")

func (s failingStore) InTx(context.Context, func(tx booking.Tx) error) error {
	return errConnLost
}
