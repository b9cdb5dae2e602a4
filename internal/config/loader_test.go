package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/pathwise/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		// Point at a missing .env so a developer's local file does not leak in.
		_ = os.Setenv(config.EnvEnvFile, filepath.Join(t.TempDir(), "missing.env"))
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.BaselineRaisePercent, convey.ShouldEqual, 8)
				convey.So(cfg.MaxSimulationYears, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PATHWISE_ADDR", ":8080")
			_ = os.Setenv("PATHWISE_BASELINE_RAISE_PERCENT", "5")
			_ = os.Setenv("PATHWISE_DEFAULT_SIMULATION_YEARS", "10")
			_ = os.Setenv("PATHWISE_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BaselineRaisePercent, convey.ShouldEqual, 5)
				convey.So(cfg.DefaultSimulationYears, convey.ShouldEqual, 10)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
dataset_path: "/etc/pathwise/roles.yaml"
it_to_it_hike_percent: 25
max_simulation_years: 30
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/etc/pathwise/roles.yaml")
				convey.So(cfg.ItToItHikePercent, convey.ShouldEqual, 25)
				convey.So(cfg.MaxSimulationYears, convey.ShouldEqual, 30)
				convey.So(cfg.SameDomainHikePercent, convey.ShouldEqual, 35)
			})
		})

		convey.Convey("When loading metrics settings from YAML and env", func() {
			tmpFile := createTempConfigFile(`
metrics_enabled: false
metrics_namespace: "careers"
metrics_prefix: "v2"
metrics_latency_buckets: [1, 5, 25]
metrics_labels:
  env: "staging"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)
			_ = os.Setenv("PATHWISE_METRICS_REFRESH_INTERVAL", "5s")

			cfg, err := config.Load(ctx)

			convey.Convey("Then every metrics field is populated", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "careers")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "engine")
				convey.So(cfg.MetricsPrefix, convey.ShouldEqual, "v2")
				convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 5*time.Second)
				convey.So(cfg.MetricsLatencyBuckets, convey.ShouldResemble, []float64{1, 5, 25})
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"env": "staging"})
			})
		})

		convey.Convey("When latency buckets are out of order", func() {
			tmpFile := createTempConfigFile(`metrics_latency_buckets: [10, 5]`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_latency_buckets")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
default_switch_hike_percent: 40
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)
			_ = os.Setenv("PATHWISE_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultSwitchHikePercent, convey.ShouldEqual, 40)
			})
		})

		convey.Convey("When a .env file is present", func() {
			envFile := filepath.Join(t.TempDir(), ".env")
			convey.So(os.WriteFile(envFile, []byte("PATHWISE_ADDR=:7070\nPATHWISE_LOG_LEVEL=debug\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv(config.EnvEnvFile, envFile)
			_ = os.Setenv("PATHWISE_LOG_LEVEL", "warn")

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values apply without overriding the real environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv(config.EnvConfig, "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PATHWISE_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid switch interval", func() {
			_ = os.Setenv("PATHWISE_DEFAULT_SWITCH_INTERVAL_YEARS", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PATHWISE_MAX_SIMULATION_YEARS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		config.EnvConfig,
		config.EnvEnvFile,
		"PATHWISE_ADDR",
		"PATHWISE_LOG_LEVEL",
		"PATHWISE_LOG_FORMAT",
		"PATHWISE_BASELINE_RAISE_PERCENT",
		"PATHWISE_DEFAULT_SIMULATION_YEARS",
		"PATHWISE_DEFAULT_SWITCH_INTERVAL_YEARS",
		"PATHWISE_MAX_SIMULATION_YEARS",
		"PATHWISE_METRICS_REFRESH_INTERVAL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pathwise-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
