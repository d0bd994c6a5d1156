package observability

import (
	"github.com/hepworks/nllfit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	evaluations  prometheus.Counter
	evalErrors   *prometheus.CounterVec
	evalDuration prometheus.Histogram
	scanPoints   prometheus.Counter
}

// New creates and registers the engine metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nllfit_evaluations_total",
			Help: "Total number of likelihood evaluations",
		}),
		evalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nllfit_eval_errors_total",
			Help: "Total number of per-event evaluation errors",
		}, []string{"reason"}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nllfit_eval_duration_seconds",
			Help:    "Duration of likelihood evaluations",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		scanPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nllfit_scan_points_total",
			Help: "Total number of evaluated scan grid points",
		}),
	}
	reg.MustRegister(m.evaluations, m.evalErrors, m.evalDuration, m.scanPoints)
	return m
}

// Hooks returns lifecycle hooks that record into the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvalError: func(e domain.EvalError) {
			m.evalErrors.WithLabelValues(e.Reason).Inc()
		},
		OnEvalEnd: func(e domain.EvalEvent) {
			m.evaluations.Inc()
			m.evalDuration.Observe(e.Duration.Seconds())
		},
		OnScanPoint: func(e domain.ScanEvent) {
			m.scanPoints.Inc()
		},
	}
}
