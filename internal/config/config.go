// Package config defines service configuration and how it is loaded.
//
// Conventions:
//   - New(ctx) builds a Config with defaults.
//   - Load(ctx) layers a .env file, an optional YAML file and environment
//     variables on top of the defaults.
//   - Errors returned from Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath replaces the embedded compensation dataset when set.
	DatasetPath string `koanf:"dataset_path"`

	// BaselineRaisePercent is the simulator's annual non-switch raise.
	BaselineRaisePercent float64 `koanf:"baseline_raise_percent"`

	// Projection hike percentages, capped at the target average.
	ItToItHikePercent       float64 `koanf:"it_to_it_hike_percent"`
	NonItToNonItHikePercent float64 `koanf:"nonit_to_nonit_hike_percent"`
	ItToNonItHikePercent    float64 `koanf:"it_to_nonit_hike_percent"`
	SameDomainHikePercent   float64 `koanf:"same_domain_hike_percent"`

	// Simulation defaults used when a request omits a value.
	DefaultSwitchHikePercent   float64 `koanf:"default_switch_hike_percent"`
	DefaultSimulationYears     int     `koanf:"default_simulation_years"`
	DefaultSwitchIntervalYears int     `koanf:"default_switch_interval_years"`

	// MaxSimulationYears caps the simulation horizon.
	MaxSimulationYears int `koanf:"max_simulation_years"`

	// Metrics settings for the Prometheus manager behind /healthz.
	MetricsEnabled         bool              `koanf:"metrics_enabled"`
	MetricsNamespace       string            `koanf:"metrics_namespace"`
	MetricsSubsystem       string            `koanf:"metrics_subsystem"`
	MetricsPrefix          string            `koanf:"metrics_prefix"`
	MetricsRefreshInterval time.Duration     `koanf:"metrics_refresh_interval"`
	MetricsLatencyBuckets  []float64         `koanf:"metrics_latency_buckets"`
	MetricsLabels          map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:                   "info",
		LogFormat:                  "text",
		Addr:                       ":9080",
		BaselineRaisePercent:       8,
		ItToItHikePercent:          20,
		NonItToNonItHikePercent:    15,
		ItToNonItHikePercent:       10,
		SameDomainHikePercent:      35,
		DefaultSwitchHikePercent:   30,
		DefaultSimulationYears:     5,
		DefaultSwitchIntervalYears: 2,
		MaxSimulationYears:         50,
		MetricsEnabled:             true,
		MetricsNamespace:           "pathwise",
		MetricsSubsystem:           "engine",
		MetricsRefreshInterval:     10 * time.Second,
	}
}
