package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
sonarqube:
  url: http://sonar.local:9000
properties:
  prometheus.export.bugs: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://sonar.local:9000", cfg.Sonar.URL)
	assert.Equal(t, DefaultSonarTimeout, cfg.Sonar.Timeout)
	assert.Equal(t, DefaultMonitorInterval, cfg.Settings.MonitorInterval)

	// No export section defaults to Prometheus enabled
	require.NotNil(t, cfg.Export.Prometheus)
	assert.True(t, cfg.Export.Prometheus.Enabled)
	assert.Equal(t, DefaultPrometheusPort, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultPrometheusPath, cfg.Export.Prometheus.Path)

	assert.Equal(t, map[string]bool{"prometheus.export.bugs": true}, cfg.Properties)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
sonarqube:
  url: https://sonar.example.com
  token: squ_abc123
  timeout: 30s
export:
  prometheus:
    enabled: true
    port: 9344
    path: /api/prometheus/metrics
  otel:
    enabled: true
    transport: http
    host: collector.local
    interval: 2m
    headers:
      authorization: Bearer xyz
settings:
  internal_metrics:
    enabled: true
  monitor_interval: 1m
properties:
  prometheus.export.bugs: true
  prometheus.export.coverage: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "squ_abc123", cfg.Sonar.Token)
	assert.Equal(t, 30*time.Second, cfg.Sonar.Timeout)
	assert.Equal(t, 9344, cfg.Export.Prometheus.Port)

	require.NotNil(t, cfg.Export.OTEL)
	assert.Equal(t, "http", cfg.Export.OTEL.Transport)
	assert.Equal(t, DefaultOTELPortHTTP, cfg.Export.OTEL.Port)
	assert.Equal(t, "collector.local:4318", cfg.Export.OTEL.GetEndpoint())
	assert.Equal(t, 2*time.Minute, cfg.Export.OTEL.Interval.Read)
	assert.Equal(t, 2*time.Minute, cfg.Export.OTEL.Interval.Push)
	assert.Equal(t, DefaultServiceName, cfg.Export.OTEL.Resource["service.name"])

	assert.True(t, cfg.Settings.InternalMetrics.Enabled)
	assert.Equal(t, time.Minute, cfg.Settings.MonitorInterval)

	assert.True(t, cfg.Properties["prometheus.export.bugs"])
	assert.False(t, cfg.Properties["prometheus.export.coverage"])
}

func TestLoadDetailedInterval(t *testing.T) {
	path := writeConfig(t, `
sonarqube:
  url: http://sonar.local:9000
export:
  otel:
    enabled: true
    interval:
      read: 30s
      push: 5m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Export.OTEL.Interval.Read)
	assert.Equal(t, 5*time.Minute, cfg.Export.OTEL.Interval.Push)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing sonarqube url",
			content: "properties:\n  prometheus.export.bugs: true\n",
			errMsg:  "sonarqube url",
		},
		{
			name: "invalid prometheus port",
			content: `
sonarqube:
  url: http://sonar.local:9000
export:
  prometheus:
    enabled: true
    port: 70000
`,
			errMsg: "invalid prometheus port",
		},
		{
			name: "invalid otel transport",
			content: `
sonarqube:
  url: http://sonar.local:9000
export:
  otel:
    enabled: true
    transport: udp
`,
			errMsg: "invalid transport",
		},
		{
			name: "all exporters disabled",
			content: `
sonarqube:
  url: http://sonar.local:9000
export:
  prometheus:
    enabled: false
`,
			errMsg: "at least one exporter",
		},
		{
			name:    "not yaml",
			content: "{{{",
			errMsg:  "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
