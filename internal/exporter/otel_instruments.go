package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/neox5/sonarbox/internal/catalog"
)

// registerOTELInstruments creates one observable gauge per enabled metric.
func registerOTELInstruments(e *OTELExporter, enabled []catalog.Metric) error {
	for _, m := range enabled {
		name := otelMetricName(m.Key)

		gauge, err := e.meter.Float64ObservableGauge(
			name,
			otelmetric.WithDescription(m.Description),
		)
		if err != nil {
			return fmt.Errorf("failed to create gauge %q: %w", name, err)
		}
		e.gauges[m.Key] = gauge

		slog.Info("registered otel metric", "name", name)
	}

	return registerOTELCallback(e)
}

// registerOTELCallback registers the observation callback for all gauges.
// Each push observes every sample of the latest snapshot with its project
// and branch attributes.
func registerOTELCallback(e *OTELExporter) error {
	observables := make([]otelmetric.Observable, 0, len(e.gauges))
	for _, g := range e.gauges {
		observables = append(observables, g)
	}

	_, err := e.meter.RegisterCallback(
		func(_ context.Context, observer otelmetric.Observer) error {
			report := e.snapshot()
			if report == nil {
				return nil
			}

			slog.Debug("otel push", "samples", len(report.Samples))

			for _, s := range report.Samples {
				gauge, ok := e.gauges[s.MetricKey]
				if !ok {
					continue
				}
				observer.ObserveFloat64(gauge, s.Value, otelmetric.WithAttributes(
					attribute.String("key", s.ProjectKey),
					attribute.String("name", s.ProjectName),
					attribute.String("branch", s.Branch),
				))
			}
			return nil
		},
		observables...,
	)
	if err != nil {
		return fmt.Errorf("failed to register callback: %w", err)
	}

	return nil
}
