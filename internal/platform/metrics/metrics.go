package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process-level Prometheus metrics.
type Metrics struct {
	CatalogSize prometheus.Gauge
	BuildInfo   *prometheus.GaugeVec

	registry *prometheus.Registry
}

// New registers the process metrics, plus Go runtime and process collectors,
// on a fresh registry. Component metrics are registered on the same registry
// through Registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		CatalogSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "medcalc_catalog_calculators",
			Help: "Number of calculators registered at startup",
		}),
		BuildInfo: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "medcalc_build_info",
			Help: "Build metadata; always 1",
		}, []string{"version"}),
		registry: reg,
	}
}

// Registerer exposes the registry for component metrics.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registry
}

// SetCatalogSize records how many calculators the server exposes.
func (m *Metrics) SetCatalogSize(n int) {
	m.CatalogSize.Set(float64(n))
}

// SetBuildInfo publishes the running version.
func (m *Metrics) SetBuildInfo(version string) {
	m.BuildInfo.WithLabelValues(version).Set(1)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
