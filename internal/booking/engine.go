package booking

import (
	"log/slog"
	"roombooker/internal/metrics"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine allocates rooms across time windows and drives bookings through
// pending → approved → checked_in → completed.
type Engine struct {
	log       *slog.Logger
	store     IntervalStore
	notifier  Notifier
	publisher EventPublisher
	policy    Policy
	clock     Clock
	newToken  func() (string, error)

	wg sync.WaitGroup
}

type Option func(*Engine)

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

func WithPublisher(publisher EventPublisher) Option {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

func WithTokenSource(fn func() (string, error)) Option {
	return func(e *Engine) {
		e.newToken = fn
	}
}

func New(log *slog.Logger, store IntervalStore, notifier Notifier, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		log:      log.With(slog.String("component", "booking")),
		store:    store,
		notifier: notifier,
		policy:   policy,
		clock:    RealClock{},
		newToken: newToken,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Wait blocks until in-flight notifications and events have finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) track(op string, start time.Time, err *error) {
	metrics.TrackOperation(op, outcome(*err), time.Since(start))
}

// newToken mints a QR token from a random UUID. It is independent of the booking id.
func newToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
