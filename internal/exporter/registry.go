package exporter

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/neox5/sonarbox/internal/catalog"
)

// metricPrefix is prepended verbatim to every catalog key to form the
// exported gauge name.
const metricPrefix = "sonarqube_"

// Labels identifies one project/branch time series within a gauge family.
type Labels struct {
	ProjectKey  string
	ProjectName string
	Branch      string
}

// Registry owns the live gauge collection: one GaugeVec per enabled metric,
// labeled by project key, project name and branch name. The whole collection
// is rebuilt from scratch at the start of each scrape cycle, so no stale
// gauges for disabled metrics or deleted projects ever survive.
type Registry struct {
	prom   *prometheus.Registry
	gauges map[string]*prometheus.GaugeVec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		prom:   prometheus.NewRegistry(),
		gauges: make(map[string]*prometheus.GaugeVec),
	}
}

// Rebuild clears the previous gauge collection and creates exactly one gauge
// family per enabled metric. Must be called before any SetValue of the same
// cycle.
func (r *Registry) Rebuild(enabled []catalog.Metric) {
	r.prom = prometheus.NewRegistry()
	r.gauges = make(map[string]*prometheus.GaugeVec, len(enabled))

	for _, m := range enabled {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: metricPrefix + m.Key,
			Help: m.Description,
		}, []string{"key", "name", "branch"})

		r.prom.MustRegister(g)
		r.gauges[m.Key] = g
	}
}

// SetValue records a value for one metric and label tuple. Later writes for
// the same tuple win. Keys absent from the current registry are ignored,
// keeping the registry robust to mismatches with the fetch step.
func (r *Registry) SetValue(metricKey string, labels Labels, value float64) {
	g, ok := r.gauges[metricKey]
	if !ok {
		return
	}
	g.WithLabelValues(labels.ProjectKey, labels.ProjectName, labels.Branch).Set(value)
}

// Gatherer exposes the current collection for serialization.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}
