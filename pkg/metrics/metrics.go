package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds storage and publishing metrics
type Metrics struct {
	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Event publishing metrics
	EventsPublished *prometheus.CounterVec
}

// New creates the metrics and registers them with reg
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"collection", "operation", "status"}),
		DatabaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"collection", "operation"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events handed to the broker",
		}, []string{"type", "status"}),
	}

	if reg != nil {
		reg.MustRegister(m.DatabaseOperations, m.DatabaseLatency, m.EventsPublished)
	}
	return m
}

// ObserveDB records one database operation. A nil receiver is a no-op.
func (m *Metrics) ObserveDB(collection, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(collection, operation, status).Inc()
	m.DatabaseLatency.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}

// ObserveEvent records one publish attempt. A nil receiver is a no-op.
func (m *Metrics) ObserveEvent(eventType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}
