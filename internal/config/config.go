package config

import (
	"fmt"
	"time"
)

const (
	// SonarQube defaults
	DefaultSonarTimeout = 10 * time.Second

	// Settings defaults
	DefaultMonitorInterval = 30 * time.Second
)

// Config holds the complete application configuration.
type Config struct {
	Sonar      SonarConfig     `yaml:"sonarqube"`
	Export     ExportConfig    `yaml:"export"`
	Settings   SettingsConfig  `yaml:"settings"`
	Properties map[string]bool `yaml:"properties"`
}

// SonarConfig defines how the SonarQube server is reached.
type SonarConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Validate applies defaults and validates the SonarQube connection settings.
func (s *SonarConfig) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("sonarqube url cannot be empty")
	}

	if s.Timeout == 0 {
		s.Timeout = DefaultSonarTimeout
	}
	if s.Timeout < 0 {
		return fmt.Errorf("sonarqube timeout must be positive")
	}

	return nil
}

// SettingsConfig holds general application settings.
type SettingsConfig struct {
	InternalMetrics InternalMetricsConfig `yaml:"internal_metrics"`
	MonitorInterval time.Duration         `yaml:"monitor_interval"`
}

// InternalMetricsConfig controls sonarbox's self-monitoring metrics.
type InternalMetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate applies defaults and validates settings configuration.
func (s *SettingsConfig) Validate() error {
	if s.MonitorInterval == 0 {
		s.MonitorInterval = DefaultMonitorInterval
	}
	if s.MonitorInterval < 0 {
		return fmt.Errorf("monitor interval must be positive")
	}
	return nil
}
