package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for dispatch results.
const (
	OutcomeOK                = "ok"
	OutcomeNotApplicable     = "not_applicable"
	OutcomeUnknownCalculator = "unknown_calculator"
	OutcomeInvalidInput      = "invalid_input"
)

// Metrics provides observability for calculator dispatch.
type Metrics struct {
	// Dispatch outcomes by calculator and outcome
	Runs *prometheus.CounterVec

	// Compute latency by calculator
	RunLatency *prometheus.HistogramVec

	// Calls per batch request
	BatchSize prometheus.Histogram
}

// New registers the dispatch metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the dispatch metrics with reg. Tests pass a
// fresh registry so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medcalc_calculator_runs_total",
			Help: "Total calculator dispatches by calculator and outcome",
		}, []string{"calculator", "outcome"}),

		RunLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medcalc_calculator_run_duration_seconds",
			Help:    "Duration of a single calculator dispatch including validation and rounding",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"calculator"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "medcalc_calculator_batch_size",
			Help:    "Number of calls per batch dispatch",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
	}
}

// ObserveRun records one dispatch. Unknown identifiers are folded into a
// single label value so callers cannot grow the series set.
func (m *Metrics) ObserveRun(calculatorID, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	if outcome == OutcomeUnknownCalculator {
		calculatorID = "unknown"
	}
	m.Runs.WithLabelValues(calculatorID, outcome).Inc()
	m.RunLatency.WithLabelValues(calculatorID).Observe(d.Seconds())
}

// ObserveBatch records the size of a batch dispatch.
func (m *Metrics) ObserveBatch(size int) {
	if m != nil {
		m.BatchSize.Observe(float64(size))
	}
}
