package config

import (
	"fmt"
	"os"
	"strconv"

	"abplayground/domain/experiment"
	"abplayground/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig
	UI          UIConfig
	Experiments ExperimentConfig
	Batch       BatchConfig
	Profiling   ProfilingConfig
}

// ServerConfig holds JSON API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UIConfig holds playground server settings
type UIConfig struct {
	Port string
}

// ExperimentConfig holds defaults applied to experiments that leave them unset
type ExperimentConfig struct {
	DefaultAlpha       float64
	DefaultAlternative experiment.Alternative
}

// BatchConfig holds batch evaluation settings
type BatchConfig struct {
	MaxConcurrency int
	JSONDataPath   string
	Sheet          string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	alpha, err := getEnvFloat("AB_DEFAULT_ALPHA", experiment.DefaultAlpha)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load experiment configuration")
	}
	concurrency, err := getEnvInt("AB_BATCH_CONCURRENCY", 4)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load batch configuration")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		UI: UIConfig{
			Port: getEnvOrDefault("UI_PORT", "8090"),
		},
		Experiments: ExperimentConfig{
			DefaultAlpha:       alpha,
			DefaultAlternative: experiment.ParseAlternative(getEnvOrDefault("AB_DEFAULT_ALTERNATIVE", string(experiment.AlternativeTwoSided))),
		},
		Batch: BatchConfig{
			MaxConcurrency: concurrency,
			JSONDataPath:   getEnvOrDefault("AB_DATASET_JSON_PATH", "experiments"),
			Sheet:          getEnvOrDefault("AB_DATASET_SHEET", ""),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// ApplyDefaults fills unset alpha and alternative from the configured defaults
func (c *Config) ApplyDefaults(in experiment.Input) experiment.Input {
	if in.Alpha == 0 {
		in.Alpha = c.Experiments.DefaultAlpha
	}
	if in.Alternative == "" {
		in.Alternative = c.Experiments.DefaultAlternative
	}
	return in
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if a := config.Experiments.DefaultAlpha; !(a > 0 && a < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("AB_DEFAULT_ALPHA must be in (0, 1), got %v", a))
	}
	if !config.Experiments.DefaultAlternative.IsValid() {
		return errors.ConfigInvalid(fmt.Sprintf("AB_DEFAULT_ALTERNATIVE must be two-sided, larger or smaller, got %q", config.Experiments.DefaultAlternative))
	}
	if config.Batch.MaxConcurrency < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("AB_BATCH_CONCURRENCY must be at least 1, got %d", config.Batch.MaxConcurrency))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
