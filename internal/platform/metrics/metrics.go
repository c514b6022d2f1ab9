package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the HTTP API.
// Tracks request throughput, latency, and entity mutation counts.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	EntitiesCreated *prometheus.CounterVec
	EntitiesDeleted *prometheus.CounterVec
	AuthFailures    prometheus.Counter
}

// New creates a Metrics instance with all collectors registered on reg.
// Production passes prometheus.DefaultRegisterer; tests pass a fresh
// registry so repeated construction never double-registers.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_http_requests_total",
			Help: "Total HTTP requests by route and status class",
		}, []string{"route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "academy_http_request_duration_seconds",
			Help:    "HTTP request duration by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		EntitiesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_entities_created_total",
			Help: "Total entities created by resource",
		}, []string{"resource"}),
		EntitiesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_entities_deleted_total",
			Help: "Total entities deleted by resource",
		}, []string{"resource"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "academy_auth_failures_total",
			Help: "Total failed authentication attempts",
		}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(route, status string, start time.Time) {
	m.RequestsTotal.WithLabelValues(route, status).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

// IncrementCreated records a successful entity creation.
func (m *Metrics) IncrementCreated(resource string) {
	m.EntitiesCreated.WithLabelValues(resource).Inc()
}

// IncrementDeleted records a successful entity deletion.
func (m *Metrics) IncrementDeleted(resource string) {
	m.EntitiesDeleted.WithLabelValues(resource).Inc()
}
