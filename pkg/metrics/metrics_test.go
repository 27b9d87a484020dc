package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncBookingConflict("guard")
	m.IncBookingConflict("guard")
	m.IncBookingConflict("constraint")
	m.IncGuardFailure()
	m.ObserveHTTPRequest("GET", "/api/v1/establishments", 200, 10*time.Millisecond)
	m.ObserveDBQuery("select", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("guard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("constraint")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuardFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/establishments", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("select")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingConflict("guard")
		m.ObserveAvailability("union", 3)
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("select", time.Second, nil)
		m.IncInvalidation("ok")
		m.IncGuardFailure()
	})
}
