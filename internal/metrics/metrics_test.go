package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackOperation(t *testing.T) {
	before := testutil.ToFloat64(bookingOperations.WithLabelValues("metrics_test", "ok"))

	TrackOperation("metrics_test", "ok", 15*time.Millisecond)
	TrackOperation("metrics_test", "ok", 5*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(bookingOperations.WithLabelValues("metrics_test", "ok")))
}

func TestTrackSideEffect(t *testing.T) {
	okBefore := testutil.ToFloat64(sideEffects.WithLabelValues("metrics_test", "ok"))
	failedBefore := testutil.ToFloat64(sideEffects.WithLabelValues("metrics_test", "failed"))

	TrackSideEffect("metrics_test", nil)
	TrackSideEffect("metrics_test", errors.New("smtp down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(sideEffects.WithLabelValues("metrics_test", "ok")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(sideEffects.WithLabelValues("metrics_test", "failed")))
}

func TestTrackTransition(t *testing.T) {
	before := testutil.ToFloat64(bookingTransitions.WithLabelValues("pending", "metrics_test"))

	TrackTransition("pending", "metrics_test")

	assert.Equal(t, before+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("pending", "metrics_test")))
}
