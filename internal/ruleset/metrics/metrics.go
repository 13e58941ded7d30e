package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the rule set module.
type Metrics struct {
	// Mutations by operation and result
	Mutations *prometheus.CounterVec

	// Active version lookup latency
	ActiveLookupLatency prometheus.Histogram
}

// New creates a Metrics instance with all rule set metrics registered.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "visapath_ruleset_mutations_total",
			Help: "Total rule set mutations by operation and result",
		}, []string{"operation", "result"}), // operation: "create_draft", "patch", "approve"

		ActiveLookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "visapath_ruleset_active_lookup_duration_seconds",
			Help:    "Duration of active rule set version lookups",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementMutation records a mutation attempt outcome.
func (m *Metrics) IncrementMutation(operation, result string) {
	if m != nil {
		m.Mutations.WithLabelValues(operation, result).Inc()
	}
}

// ObserveActiveLookup records the duration of an active version lookup.
func (m *Metrics) ObserveActiveLookup(d time.Duration) {
	if m != nil {
		m.ActiveLookupLatency.Observe(d.Seconds())
	}
}
