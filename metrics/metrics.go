// ABOUTME: Prometheus metrics for trigger handling and assessments
// ABOUTME: Counters per trigger outcome and strategy, plus handling latency

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markalston/migration-assessor/models"
)

// Metrics holds the assessor's collectors on a private registry.
type Metrics struct {
	registry          *prometheus.Registry
	eventCounter      *prometheus.CounterVec
	assessmentCounter *prometheus.CounterVec
	eventHistogram    *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "migration_events_total",
				Help: "Total number of handled triggers by kind and response status.",
			}, []string{"trigger", "status"}),
		assessmentCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "migration_assessments_total",
				Help: "Total number of persisted assessments by primary strategy.",
			}, []string{"strategy"}),
		eventHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "migration_event_duration_seconds",
			Help:    "Histogram of trigger handling time.",
			Buckets: prometheus.DefBuckets,
		}, []string{"trigger"}),
	}
	m.registry.MustRegister(m.eventCounter, m.assessmentCounter, m.eventHistogram)

	// Prepopulate so every strategy is exported at zero.
	for _, s := range models.Strategies {
		m.assessmentCounter.WithLabelValues(string(s))
	}
	return m
}

// HTTPHandler returns the scrape handler.
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordAssessment counts a persisted assessment.
func (m *Metrics) RecordAssessment(strategy models.Strategy) {
	m.assessmentCounter.WithLabelValues(string(strategy)).Inc()
}

// RecordEvent counts a handled trigger and observes its duration.
func (m *Metrics) RecordEvent(trigger string, status int, elapsed time.Duration) {
	m.eventCounter.WithLabelValues(trigger, strconv.Itoa(status)).Inc()
	m.eventHistogram.WithLabelValues(trigger).Observe(elapsed.Seconds())
}
