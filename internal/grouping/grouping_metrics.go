package grouping

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the grouping subsystem.
type Metrics struct {
	ComputationsTotal   *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	Items               prometheus.Histogram
	Groups              prometheus.Histogram
	MaximalCliques      prometheus.Histogram
	BatchSize           prometheus.Histogram
}

// NewMetrics registers and returns grouping metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ComputationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pairgroups_computations_total",
			Help: "Total grouping computations by outcome.",
		}, []string{"outcome"}),
		ComputationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pairgroups_computation_duration_seconds",
			Help:    "Duration of grouping computations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100us .. ~26s
		}, []string{"outcome"}),
		Items: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pairgroups_items",
			Help:    "Items per successful computation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 .. 2048
		}),
		Groups: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pairgroups_groups",
			Help:    "Homogeneous groups per successful computation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 .. 2048
		}),
		MaximalCliques: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pairgroups_maximal_cliques",
			Help:    "Maximal cliques found before reduction per successful computation.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 .. ~262144
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pairgroups_batch_size",
			Help:    "Requests per accepted batch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11), // 1 .. 1024
		}),
	}

	reg.MustRegister(
		m.ComputationsTotal,
		m.ComputationDuration,
		m.Items,
		m.Groups,
		m.MaximalCliques,
		m.BatchSize,
	)

	return m
}

// Hooks returns Hooks that update the corresponding metrics.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnCompute: func(e *ComputeEvent) {
			m.ComputationsTotal.WithLabelValues(string(e.Outcome)).Inc()
			m.ComputationDuration.WithLabelValues(string(e.Outcome)).Observe(e.Duration)
			if e.Outcome != OutcomeOK {
				return
			}
			m.Items.Observe(float64(e.Items))
			m.Groups.Observe(float64(e.Groups))
			m.MaximalCliques.Observe(float64(e.MaximalCliques))
		},
		OnBatch: func(size int) {
			m.BatchSize.Observe(float64(size))
		},
	}
}
