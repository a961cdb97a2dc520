package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check outcomes.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

type Metrics struct {
	Checks      *prometheus.CounterVec
	StoreErrors prometheus.Counter
	Degraded    prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medcalc_ratelimit_checks_total",
			Help: "Rate limit checks by endpoint class and outcome",
		}, []string{"class", "outcome"}),
		StoreErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "medcalc_ratelimit_store_errors_total",
			Help: "Total number of rate limit store failures",
		}),
		Degraded: f.NewGauge(prometheus.GaugeOpts{
			Name: "medcalc_ratelimit_degraded",
			Help: "1 while checks are served by the in-memory fallback",
		}),
	}
}

func (m *Metrics) RecordCheck(class, outcome string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) IncrementStoreErrors() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.Degraded.Set(1)
		return
	}
	m.Degraded.Set(0)
}
