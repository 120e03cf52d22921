package app

import (
	"fmt"

	"github.com/neox5/sonarbox/internal/catalog"
	"github.com/neox5/sonarbox/internal/config"
	"github.com/neox5/sonarbox/internal/exporter"
	"github.com/neox5/sonarbox/internal/sonar"
)

// App holds initialized application components.
type App struct {
	Config             *config.Config
	Coordinator        *exporter.Coordinator
	PrometheusExporter *exporter.PrometheusExporter
	OTELExporter       *exporter.OTELExporter
}

// New initializes the application from a configuration file.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := config.NewProperties(configPath, cfg.Properties)
	client := sonar.NewClient(&cfg.Sonar)
	fetcher := exporter.NewFetcher(client)

	coordinator := exporter.NewCoordinator(flags, fetcher, cfg.Settings.InternalMetrics.Enabled)

	var promExporter *exporter.PrometheusExporter
	var otelExporter *exporter.OTELExporter

	if cfg.Export.Prometheus != nil && cfg.Export.Prometheus.Enabled {
		promExporter = exporter.NewPrometheusExporter(cfg.Export.Prometheus, coordinator.Handler())
	}

	if cfg.Export.OTEL != nil && cfg.Export.OTEL.Enabled {
		otelExporter, err = exporter.NewOTELExporter(cfg.Export.OTEL, coordinator, catalog.Enabled(flags))
		if err != nil {
			return nil, fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
	}

	return &App{
		Config:             cfg,
		Coordinator:        coordinator,
		PrometheusExporter: promExporter,
		OTELExporter:       otelExporter,
	}, nil
}
