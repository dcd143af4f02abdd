package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"logveil-hq/logveil/pkg/redact"
)

// Metrics contains Prometheus metrics for the redaction engine.
type Metrics struct {
	registry *prometheus.Registry

	messagesScanned  prometheus.Counter
	messagesRedacted prometheus.Counter
	ruleApplications *prometheus.CounterVec
	loadFailures     prometheus.Counter
	redactDuration   prometheus.Histogram
}

// emptyTriggerLabel stands in for the empty always-on trigger, which
// Prometheus label values cannot usefully represent as "".
const emptyTriggerLabel = "(always)"

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		messagesScanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "logveil_messages_scanned_total",
			Help: "Total number of log messages passed through the redaction engine",
		}),

		messagesRedacted: factory.NewCounter(prometheus.CounterOpts{
			Name: "logveil_messages_redacted_total",
			Help: "Total number of log messages modified by at least one rule",
		}),

		ruleApplications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logveil_rule_applications_total",
			Help: "Total number of rule applications, by trigger",
		}, []string{"trigger"}),

		loadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "logveil_policy_load_failures_total",
			Help: "Total number of redaction policy load failures",
		}),

		redactDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "logveil_redact_duration_seconds",
			Help:    "Duration of single-message redaction calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
		}),
	}
}

// RecordRedaction records one pass of a message through the engine.
func (m *Metrics) RecordRedaction(matches []redact.Match, duration time.Duration) {
	m.messagesScanned.Inc()
	m.redactDuration.Observe(duration.Seconds())

	if len(matches) == 0 {
		return
	}
	m.messagesRedacted.Inc()
	for _, match := range matches {
		trigger := match.Trigger
		if trigger == "" {
			trigger = emptyTriggerLabel
		}
		m.ruleApplications.WithLabelValues(trigger).Add(float64(match.Count))
	}
}

// RecordLoadFailure records a failed policy load.
func (m *Metrics) RecordLoadFailure() {
	m.loadFailures.Inc()
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
