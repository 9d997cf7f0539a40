package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Booking engine operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	bookingOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_operation_duration_seconds",
			Help:    "Duration of booking engine operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	bookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Committed booking status transitions",
		},
		[]string{"from", "to"},
	)

	sideEffects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_side_effects_total",
			Help: "Best-effort side effects (email, events) by result",
		},
		[]string{"channel", "status"},
	)
)

func TrackOperation(operation, outcome string, duration time.Duration) {
	bookingOperations.WithLabelValues(operation, outcome).Inc()
	bookingOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func TrackTransition(from, to string) {
	bookingTransitions.WithLabelValues(from, to).Inc()
}

func TrackSideEffect(channel string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	sideEffects.WithLabelValues(channel, status).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
