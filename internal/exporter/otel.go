package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/neox5/sonarbox/internal/catalog"
	"github.com/neox5/sonarbox/internal/config"
)

// OTELExporter pushes measurement snapshots to an OTLP collector. It runs
// the same collection cycle as the scrape endpoint on its own read interval
// and observes the latest snapshot through observable gauges. Instruments
// are created from the enabled set at startup; flag changes at runtime only
// affect the pull path until restart.
type OTELExporter struct {
	cfg           *config.OTELExportConfig
	coordinator   *Coordinator
	meterProvider *sdkmetric.MeterProvider
	meter         otelmetric.Meter
	gauges        map[string]otelmetric.Float64ObservableGauge

	mu     sync.Mutex
	latest *Report
}

// NewOTELExporter creates an OTLP push exporter for the given enabled set.
func NewOTELExporter(cfg *config.OTELExportConfig, coordinator *Coordinator, enabled []catalog.Metric) (*OTELExporter, error) {
	res, err := createOTELResource(cfg.Resource)
	if err != nil {
		return nil, err
	}

	meterProvider, err := createMeterProvider(cfg, res)
	if err != nil {
		return nil, err
	}

	e := &OTELExporter{
		cfg:           cfg,
		coordinator:   coordinator,
		meterProvider: meterProvider,
		meter:         meterProvider.Meter("sonarbox"),
		gauges:        make(map[string]otelmetric.Float64ObservableGauge, len(enabled)),
	}

	if err := registerOTELInstruments(e, enabled); err != nil {
		e.Stop()
		return nil, err
	}

	return e, nil
}

// Start runs the collection loop until the context is cancelled.
func (e *OTELExporter) Start(ctx context.Context) error {
	slog.Info("starting otel exporter",
		"endpoint", e.cfg.GetEndpoint(),
		"transport", e.cfg.Transport,
		"read_interval", e.cfg.Interval.Read,
		"push_interval", e.cfg.Interval.Push)

	ticker := time.NewTicker(e.cfg.Interval.Read)
	defer ticker.Stop()

	e.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return e.Stop()
		case <-ticker.C:
			e.refresh(ctx)
		}
	}
}

// Stop flushes and shuts down the meter provider.
func (e *OTELExporter) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down otel exporter")
	return e.meterProvider.Shutdown(ctx)
}

// refresh runs one collection cycle and stores the snapshot for the push
// callback. A failed cycle keeps the previous snapshot.
func (e *OTELExporter) refresh(ctx context.Context) {
	report, err := e.coordinator.Collect(ctx)
	if err != nil {
		slog.Error("otel collection failed, keeping previous snapshot", "error", err)
		return
	}

	e.mu.Lock()
	e.latest = report
	e.mu.Unlock()
}

// snapshot returns the most recent successfully collected report.
func (e *OTELExporter) snapshot() *Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest
}

// otelMetricName converts a catalog key into the dot-separated OTEL name.
func otelMetricName(key string) string {
	return fmt.Sprintf("sonarqube.%s", key)
}
