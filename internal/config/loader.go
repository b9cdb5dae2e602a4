package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix  = "PATHWISE_"
	EnvConfig  = EnvPrefix + "CONFIG"
	EnvEnvFile = EnvPrefix + "ENV_FILE"

	defaultEnvFile = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if PATHWISE_CONFIG is set
//  3. env (prefix PATHWISE_), including values from a .env file
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	// .env never overrides variables already present in the environment.
	envFile := os.Getenv(EnvEnvFile)
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("%w: env file %s: %w", ErrLoadConfig, envFile, err)
		}
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PATHWISE_MAX_SIMULATION_YEARS -> max_simulation_years. Underscores are
	// kept to match the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.DefaultSwitchIntervalYears < 1 {
		errs = append(errs, fmt.Errorf("default_switch_interval_years must be at least 1, got %d", c.DefaultSwitchIntervalYears))
	}
	if c.MaxSimulationYears < 1 {
		errs = append(errs, fmt.Errorf("max_simulation_years must be at least 1, got %d", c.MaxSimulationYears))
	}
	if c.DefaultSimulationYears < 0 || c.DefaultSimulationYears > c.MaxSimulationYears {
		errs = append(errs, fmt.Errorf("default_simulation_years must be within 0..%d, got %d", c.MaxSimulationYears, c.DefaultSimulationYears))
	}
	percents := []struct {
		name string
		v    float64
	}{
		{"baseline_raise_percent", c.BaselineRaisePercent},
		{"it_to_it_hike_percent", c.ItToItHikePercent},
		{"nonit_to_nonit_hike_percent", c.NonItToNonItHikePercent},
		{"it_to_nonit_hike_percent", c.ItToNonItHikePercent},
		{"same_domain_hike_percent", c.SameDomainHikePercent},
		{"default_switch_hike_percent", c.DefaultSwitchHikePercent},
	}
	for _, p := range percents {
		if p.v < 0 || math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a non-negative number, got %v", p.name, p.v))
		}
	}
	if c.MetricsRefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("metrics_refresh_interval must be positive, got %s", c.MetricsRefreshInterval))
	}
	for i := 1; i < len(c.MetricsLatencyBuckets); i++ {
		if c.MetricsLatencyBuckets[i] <= c.MetricsLatencyBuckets[i-1] {
			errs = append(errs, fmt.Errorf("metrics_latency_buckets must be strictly increasing, got %v", c.MetricsLatencyBuckets))
			break
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
