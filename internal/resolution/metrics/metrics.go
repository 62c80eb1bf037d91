package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the resolution module.
type Metrics struct {
	// Outcomes by resolution action
	ResolutionOutcome *prometheus.CounterVec

	// Full batch resolution latency
	ResolveLatency prometheus.Histogram

	// Rows archived by deduplication
	DedupedRows prometheus.Counter
}

// New creates a Metrics instance with all resolution metrics registered.
func New() *Metrics {
	return &Metrics{
		ResolutionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanroom_resolution_outcomes_total",
			Help: "Total resolution outcomes by action",
		}, []string{"action"}),

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleanroom_resolution_resolve_duration_seconds",
			Help:    "Duration of full batch resolution including deduplication",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		DedupedRows: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cleanroom_resolution_deduped_rows_total",
			Help: "Total rows archived by deduplication",
		}),
	}
}

// IncrementOutcome records one resolution outcome.
func (m *Metrics) IncrementOutcome(action string) {
	if m != nil {
		m.ResolutionOutcome.WithLabelValues(action).Inc()
	}
}

// ObserveResolveLatency records a full batch resolution duration.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// AddDedupedRows records rows archived during deduplication.
func (m *Metrics) AddDedupedRows(n int) {
	if m != nil {
		m.DedupedRows.Add(float64(n))
	}
}
