package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	AvailabilityComputations *prometheus.CounterVec
	AvailableSlots           *prometheus.HistogramVec
	BookingConflicts         *prometheus.CounterVec
	GuardFailures            prometheus.Counter
	InvalidationsPublished   *prometheus.CounterVec
}

// New registers collectors in the default Prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry registers collectors in reg.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		AvailabilityComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_computations_total",
			Help:        "Availability computations by mode (single resource or union)",
			ConstLabels: constLabels,
		}, []string{"mode"}),
		AvailableSlots: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_returned",
			Help:        "Number of start times returned per computation",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 4, 8, 16, 32, 64},
		}, []string{"mode"}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Rejected bookings by source (guard or constraint)",
			ConstLabels: constLabels,
		}, []string{"source"}),
		GuardFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_guard_failures_total",
			Help:        "Conflict checks that could not run before insert",
			ConstLabels: constLabels,
		}),
		InvalidationsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_invalidations_total",
			Help:        "Availability invalidation events by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.AvailabilityComputations,
		m.AvailableSlots,
		m.BookingConflicts,
		m.GuardFailures,
		m.InvalidationsPublished,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) ObserveAvailability(mode string, slots int) {
	if m == nil {
		return
	}
	m.AvailabilityComputations.WithLabelValues(mode).Inc()
	m.AvailableSlots.WithLabelValues(mode).Observe(float64(slots))
}

func (m *Metrics) IncBookingConflict(source string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(source).Inc()
}

func (m *Metrics) IncGuardFailure() {
	if m == nil {
		return
	}
	m.GuardFailures.Inc()
}

func (m *Metrics) IncInvalidation(result string) {
	if m == nil {
		return
	}
	m.InvalidationsPublished.WithLabelValues(result).Inc()
}
