package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neox5/sonarbox/internal/catalog"
)

// SettingsSource supplies the per-metric export flags and can refresh them
// from the configuration backing store.
type SettingsSource interface {
	catalog.FlagSource
	Reload() error
}

// Coordinator drives one full export cycle per scrape: refresh flags,
// recompute the enabled set, rebuild the gauge registry, pull all current
// values, render the snapshot. A single mutex spans the whole cycle so
// concurrent scrapes cannot interleave one request's rebuild with another's
// fetch or render.
type Coordinator struct {
	mu       sync.Mutex
	flags    SettingsSource
	fetcher  *Fetcher
	registry *Registry

	// self collects exporter-internal metrics; nil when disabled.
	self *prometheus.Registry
}

// NewCoordinator creates a coordinator. With internalMetrics set, the scrape
// handler additionally exposes promhttp handler metrics on a long-lived
// registry alongside the per-cycle gauges.
func NewCoordinator(flags SettingsSource, fetcher *Fetcher, internalMetrics bool) *Coordinator {
	c := &Coordinator{
		flags:    flags,
		fetcher:  fetcher,
		registry: NewRegistry(),
	}
	if internalMetrics {
		c.self = prometheus.NewRegistry()
	}
	return c
}

// Handler returns the scrape endpoint handler.
func (c *Coordinator) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(c.scrape)
	if c.self != nil {
		h = promhttp.InstrumentMetricHandler(c.self, h)
	}
	return h
}

// Collect runs one export cycle without rendering, for push-based export.
func (c *Coordinator) Collect(ctx context.Context) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectLocked(ctx)
}

// scrape handles one inbound request. The mutex is held from flag refresh
// through response rendering.
func (c *Coordinator) scrape(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	report, err := c.collectLocked(r.Context())
	if err != nil {
		// Gauges applied before the failure stay in the registry and
		// surface with the next successful scrape; there is no rollback.
		slog.Error("measurement collection failed", "error", err)
		http.Error(w, fmt.Sprintf("measurement source unavailable: %v", err), http.StatusBadGateway)
		return
	}

	slog.Debug("scrape complete",
		"projects", report.Projects,
		"samples", len(report.Samples),
		"dropped", len(report.Drops))

	promhttp.HandlerFor(c.gatherer(), promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	}).ServeHTTP(w, r)
}

// collectLocked runs select → rebuild → fetch. Callers hold c.mu.
func (c *Coordinator) collectLocked(ctx context.Context) (*Report, error) {
	if err := c.flags.Reload(); err != nil {
		// Absent or unreadable configuration is never a scrape failure;
		// the previous flags stay in effect.
		slog.Warn("settings reload failed, keeping previous flags", "error", err)
	}

	enabled := catalog.Enabled(c.flags)
	c.registry.Rebuild(enabled)

	if len(enabled) == 0 {
		return &Report{}, nil
	}

	return c.fetcher.Collect(ctx, catalog.Keys(enabled), c.registry)
}

func (c *Coordinator) gatherer() prometheus.Gatherer {
	if c.self != nil {
		return prometheus.Gatherers{c.registry.Gatherer(), c.self}
	}
	return c.registry.Gatherer()
}
