package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the checklist module.
type Metrics struct {
	// Overall resolution latency
	ResolveLatency prometheus.Histogram

	// Resolutions by result
	Resolutions *prometheus.CounterVec

	// Fail-open condition failures by reason
	ConditionFailures *prometheus.CounterVec

	// Payload classification outcomes
	DetectedFormats *prometheus.CounterVec
}

// New creates a Metrics instance with all checklist metrics registered.
func New() *Metrics {
	return &Metrics{
		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "visapath_checklist_resolve_duration_seconds",
			Help:    "Duration of full checklist resolution including rule set lookup",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visapath_checklist_resolutions_total",
			Help: "Total checklist resolutions by result",
		}, []string{"result"}), // result: "ok" or a domain error code

		ConditionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visapath_checklist_condition_failures_total",
			Help: "Total fail-open condition failures by reason",
		}, []string{"reason"}), // reason: "invalid_expression", "unknown_field", "type_mismatch"

		DetectedFormats: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visapath_checklist_detected_formats_total",
			Help: "Total externally supplied payloads by detected schema format",
		}, []string{"format"}),
	}
}

// ObserveResolveLatency records the duration of a resolution.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// IncrementResolution records a resolution outcome.
func (m *Metrics) IncrementResolution(result string) {
	if m != nil {
		m.Resolutions.WithLabelValues(result).Inc()
	}
}

// IncrementConditionFailure records one fail-open condition failure.
func (m *Metrics) IncrementConditionFailure(reason string) {
	if m != nil {
		m.ConditionFailures.WithLabelValues(reason).Inc()
	}
}

// IncrementDetectedFormat records one payload classification.
func (m *Metrics) IncrementDetectedFormat(format string) {
	if m != nil {
		m.DetectedFormats.WithLabelValues(format).Inc()
	}
}
