// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cancellarius/config.yaml",
	"/etc/cancellarius/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Mode:     ModeAll,
			DataPath: "data/bookings.csv",
			Seed:     42,
		},
		Database: DatabaseConfig{
			Path:                   "memory", // transient by default; nothing persists a run
			MaxMemory:              "2GB",
			Threads:                0, // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true,
		},
		Ingest: IngestConfig{
			BatchSize:     2000,
			Strict:        false,
			ProgressEvery: 10000,
		},
		EDA: EDAConfig{
			Suites:        nil, // nil = run every suite
			ReferenceYear: 2018,
			LeadTimeBins:  10,
		},
		Training: TrainingConfig{
			TestSize:       0.2,
			ValidationSize: 0.1,
			Models:         []string{"logistic", "tree", "forest"},
			Variants:       []string{"default", "tuned"},
			SweepMetric:    "f1",
			ThresholdMin:   0.05,
			ThresholdMax:   0.95,
			ThresholdStep:  0.05,
			Logistic: LogisticConfig{
				LearningRate: 0.1,
				Epochs:       50,
				L2:           0.0001,
			},
			Tree: TreeConfig{
				Criterion:       "gini",
				MaxDepth:        12,
				MinSamplesSplit: 2,
				MinSamplesLeaf:  1,
			},
			Forest: ForestConfig{
				Estimators:      100,
				Criterion:       "gini",
				MaxDepth:        12,
				MinSamplesSplit: 2,
				MinSamplesLeaf:  1,
				MaxFeatures:     0, // 0 = sqrt(feature count)
				Workers:         0, // 0 = one goroutine per tree
			},
		},
		Report: ReportConfig{
			Format: "text",
			Output: "",
		},
		Metrics: MetricsConfig{
			Enabled:        true,
			PushgatewayURL: "",
			Job:            "cancellarius",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// DUCKDB_PATH -> database.path
	// TRAIN_TEST_SIZE -> training.test_size
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"eda.suites",
	"training.models",
	"training.variants",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DATA_PATH -> app.data_path
//   - DUCKDB_PATH -> database.path
//   - TRAIN_TEST_SIZE -> training.test_size
//   - TRAIN_FOREST_ESTIMATORS -> training.forest.estimators
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// App mappings
		"mode":      "app.mode",
		"data_path": "app.data_path",
		"seed":      "app.seed",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// Ingest mappings
		"ingest_batch_size":     "ingest.batch_size",
		"ingest_strict":         "ingest.strict",
		"ingest_progress_every": "ingest.progress_every",

		// EDA mappings
		"eda_suites":         "eda.suites",
		"eda_reference_year": "eda.reference_year",
		"eda_lead_time_bins": "eda.lead_time_bins",

		// Training mappings
		"train_test_size":       "training.test_size",
		"train_validation_size": "training.validation_size",
		"train_models":          "training.models",
		"train_variants":        "training.variants",
		"train_sweep_metric":    "training.sweep_metric",
		"train_threshold_min":   "training.threshold_min",
		"train_threshold_max":   "training.threshold_max",
		"train_threshold_step":  "training.threshold_step",
		// Logistic regression settings
		"train_logistic_learning_rate": "training.logistic.learning_rate",
		"train_logistic_epochs":        "training.logistic.epochs",
		"train_logistic_l2":            "training.logistic.l2",
		// Decision tree settings
		"train_tree_criterion":         "training.tree.criterion",
		"train_tree_max_depth":         "training.tree.max_depth",
		"train_tree_min_samples_split": "training.tree.min_samples_split",
		"train_tree_min_samples_leaf":  "training.tree.min_samples_leaf",
		// Random forest settings
		"train_forest_estimators":        "training.forest.estimators",
		"train_forest_criterion":         "training.forest.criterion",
		"train_forest_max_depth":         "training.forest.max_depth",
		"train_forest_min_samples_split": "training.forest.min_samples_split",
		"train_forest_min_samples_leaf":  "training.forest.min_samples_leaf",
		"train_forest_max_features":      "training.forest.max_features",
		"train_forest_workers":           "training.forest.workers",

		// Report mappings
		"report_format": "report.format",
		"report_output": "report.output",

		// Metrics mappings
		"metrics_enabled":         "metrics.enabled",
		"metrics_pushgateway_url": "metrics.pushgateway_url",
		"metrics_job":             "metrics.job",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
// Useful for testing with mock configuration sources.
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}
