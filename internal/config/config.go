// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package config

import (
	"fmt"
	"strings"
)

// Config holds all application configuration loaded from environment variables and config files.
// Provides centralized configuration management for every pipeline stage: dataset
// ingest, the DuckDB analytical store, the exploratory analysis suites, classifier
// training/evaluation, report rendering, and observability.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	// cfg.App.DataPath, cfg.Database.Path, etc. are now populated
//
// Thread Safety:
// Config is immutable after LoadWithKoanf() and safe for concurrent read access.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	Ingest   IngestConfig   `koanf:"ingest"`
	EDA      EDAConfig      `koanf:"eda"`
	Training TrainingConfig `koanf:"training"`
	Report   ReportConfig   `koanf:"report"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// RunMode values accepted by AppConfig.Mode.
const (
	ModeEDA   = "eda"   // ingest + exploratory analysis suites only
	ModeTrain = "train" // ingest + feature pipeline + classifier training only
	ModeAll   = "all"   // full pipeline
)

// AppConfig holds top-level run settings.
//
// Environment Variables:
//   - MODE: Pipeline mode: eda, train, all (default: all)
//   - DATA_PATH: Path to the reservations CSV (default: data/bookings.csv)
//   - SEED: Seed for every randomized step; fixed for reproducible runs (default: 42)
type AppConfig struct {
	Mode     string `koanf:"mode"`      // Pipeline mode: eda, train, all (default: all)
	DataPath string `koanf:"data_path"` // Reservations CSV path
	Seed     int64  `koanf:"seed"`      // RNG seed shared by split and classifiers (default: 42)
}

// DatabaseConfig holds DuckDB settings for the analytical store.
// The store is transient by default: Path "memory" keeps the whole table
// in-process and nothing survives the run. Point Path at a file only when
// re-running analysis suites without re-ingesting is worth the disk state.
//
// Environment Variables:
//   - DUCKDB_PATH: "memory" or a .duckdb file path (default: memory)
//   - DUCKDB_MAX_MEMORY: Memory limit, e.g. "2GB" (default: 2GB)
//   - DUCKDB_THREADS: Worker threads, 0 = all cores (default: 0)
type DatabaseConfig struct {
	Path                   string `koanf:"path"`                     // "memory" or file path (default: memory)
	MaxMemory              string `koanf:"max_memory"`               // DuckDB memory limit (default: 2GB)
	Threads                int    `koanf:"threads"`                  // 0 = use runtime.NumCPU()
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // DuckDB default: true
}

// IngestConfig holds CSV loading behavior.
//
// Environment Variables:
//   - INGEST_BATCH_SIZE: Rows per insert transaction (default: 2000)
//   - INGEST_STRICT: Abort on the first malformed row instead of dropping it (default: false)
//   - INGEST_PROGRESS_EVERY: Log progress every N rows, 0 disables (default: 10000)
type IngestConfig struct {
	BatchSize     int  `koanf:"batch_size"`     // Rows per insert batch (default: 2000)
	Strict        bool `koanf:"strict"`         // Malformed row aborts the run (default: false)
	ProgressEvery int  `koanf:"progress_every"` // Progress log interval in rows (default: 10000)
}

// Suite names accepted by EDAConfig.Suites.
var ValidSuites = []string{
	"cancellation",
	"segments",
	"revenue",
	"repeat",
	"seasonality",
	"leadtime",
	"requests",
	"profile",
}

// EDAConfig holds exploratory-analysis settings.
//
// Environment Variables:
//   - EDA_SUITES: Comma-separated suite names, empty = all (default: all)
//   - EDA_REFERENCE_YEAR: Year for the monthly/seasonality views (default: 2018)
//   - EDA_LEAD_TIME_BINS: Bin count for lead-time breakdowns (default: 10)
type EDAConfig struct {
	Suites        []string `koanf:"suites"`         // Suites to run, empty = all
	ReferenceYear int      `koanf:"reference_year"` // Reference year for monthly views (default: 2018)
	LeadTimeBins  int      `koanf:"lead_time_bins"` // Lead-time histogram bins (default: 10)
}

// Model and variant names accepted by TrainingConfig.
var (
	ValidModels   = []string{"logistic", "tree", "forest"}
	ValidVariants = []string{"default", "tuned"}
	ValidMetrics  = []string{"precision", "recall", "f1", "accuracy"}
)

// TrainingConfig holds the supervised-learning workflow settings.
// Hyperparameters for the default variant can be overridden per model; the
// tuned variant always uses the shipped presets so reported numbers stay
// comparable across runs.
//
// Environment Variables:
//   - TRAIN_TEST_SIZE: Test split fraction (default: 0.2)
//   - TRAIN_VALIDATION_SIZE: Validation split fraction of the full set (default: 0.1)
//   - TRAIN_MODELS: Comma-separated: logistic, tree, forest (default: all)
//   - TRAIN_VARIANTS: Comma-separated: default, tuned (default: both)
//   - TRAIN_SWEEP_METRIC: Metric maximized by the threshold sweep (default: f1)
//   - TRAIN_THRESHOLD_MIN / _MAX / _STEP: Sweep grid (default: 0.05 / 0.95 / 0.05)
type TrainingConfig struct {
	TestSize       float64 `koanf:"test_size"`       // Test fraction of all rows (default: 0.2)
	ValidationSize float64 `koanf:"validation_size"` // Validation fraction of all rows (default: 0.1)

	Models   []string `koanf:"models"`   // Enabled classifiers (default: logistic, tree, forest)
	Variants []string `koanf:"variants"` // Hyperparameter variants to train (default: default, tuned)

	SweepMetric   string  `koanf:"sweep_metric"`   // precision, recall, f1, accuracy (default: f1)
	ThresholdMin  float64 `koanf:"threshold_min"`  // Sweep grid start (default: 0.05)
	ThresholdMax  float64 `koanf:"threshold_max"`  // Sweep grid end, inclusive (default: 0.95)
	ThresholdStep float64 `koanf:"threshold_step"` // Sweep grid step (default: 0.05)

	Logistic LogisticConfig `koanf:"logistic"`
	Tree     TreeConfig     `koanf:"tree"`
	Forest   ForestConfig   `koanf:"forest"`
}

// LogisticConfig overrides the default-variant logistic regression.
// Zero values keep the shipped defaults.
type LogisticConfig struct {
	LearningRate float64 `koanf:"learning_rate"` // SGD step size (default: 0.1)
	Epochs       int     `koanf:"epochs"`        // Passes over the training set (default: 50)
	L2           float64 `koanf:"l2"`            // L2 regularization strength (default: 0.0001)
}

// TreeConfig overrides the default-variant decision tree.
// Zero values keep the shipped defaults.
type TreeConfig struct {
	Criterion       string `koanf:"criterion"`         // gini or entropy (default: gini)
	MaxDepth        int    `koanf:"max_depth"`         // 0 = unlimited (default: 12)
	MinSamplesSplit int    `koanf:"min_samples_split"` // Minimum rows to split a node (default: 2)
	MinSamplesLeaf  int    `koanf:"min_samples_leaf"`  // Minimum rows per leaf (default: 1)
}

// ForestConfig overrides the default-variant random forest.
// Zero values keep the shipped defaults.
type ForestConfig struct {
	Estimators      int    `koanf:"estimators"`        // Number of trees (default: 100)
	Criterion       string `koanf:"criterion"`         // gini or entropy (default: gini)
	MaxDepth        int    `koanf:"max_depth"`         // 0 = unlimited (default: 12)
	MinSamplesSplit int    `koanf:"min_samples_split"` // Minimum rows to split a node (default: 2)
	MinSamplesLeaf  int    `koanf:"min_samples_leaf"`  // Minimum rows per leaf (default: 1)
	MaxFeatures     int    `koanf:"max_features"`      // Features per split, 0 = sqrt(total) (default: 0)
	Workers         int    `koanf:"workers"`           // Concurrent tree fits, 0 = one per tree (default: 0)
}

// ReportConfig holds report rendering settings.
//
// Environment Variables:
//   - REPORT_FORMAT: text, json, or both (default: text)
//   - REPORT_OUTPUT: JSON report path, empty = stdout (default: empty)
type ReportConfig struct {
	Format string `koanf:"format"` // text, json, both (default: text)
	Output string `koanf:"output"` // JSON output path, empty = stdout
}

// MetricsConfig holds Prometheus instrumentation settings. A batch run has no
// scrape endpoint, so metrics reach Prometheus through a Pushgateway at the
// end of the run when a URL is configured.
//
// Environment Variables:
//   - METRICS_ENABLED: Collect pipeline metrics (default: true)
//   - METRICS_PUSHGATEWAY_URL: Pushgateway base URL, empty disables pushing
//   - METRICS_JOB: Pushgateway job label (default: cancellarius)
type MetricsConfig struct {
	Enabled        bool   `koanf:"enabled"`         // Collect pipeline metrics (default: true)
	PushgatewayURL string `koanf:"pushgateway_url"` // Empty = never push
	Job            string `koanf:"job"`             // Pushgateway job label (default: cancellarius)
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`  // Minimum level (default: info)
	Format string `koanf:"format"` // json or console (default: json)
	Caller bool   `koanf:"caller"` // Include caller info (default: false)
}

// Validate checks that the loaded configuration is coherent.
func (c *Config) Validate() error {
	if err := c.validateApp(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateEDA(); err != nil {
		return err
	}
	if err := c.validateTraining(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateApp() error {
	switch c.App.Mode {
	case ModeEDA, ModeTrain, ModeAll:
	default:
		return fmt.Errorf("MODE must be one of eda, train, all (got %q)", c.App.Mode)
	}
	if strings.TrimSpace(c.App.DataPath) == "" {
		return fmt.Errorf("DATA_PATH is required")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH must be \"memory\" or a file path")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0 (got %d)", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("INGEST_BATCH_SIZE must be >= 1 (got %d)", c.Ingest.BatchSize)
	}
	if c.Ingest.ProgressEvery < 0 {
		return fmt.Errorf("INGEST_PROGRESS_EVERY must be >= 0 (got %d)", c.Ingest.ProgressEvery)
	}
	return nil
}

func (c *Config) validateEDA() error {
	for _, s := range c.EDA.Suites {
		if !containsString(ValidSuites, s) {
			return fmt.Errorf("EDA_SUITES contains unknown suite %q (valid: %s)",
				s, strings.Join(ValidSuites, ", "))
		}
	}
	if c.EDA.ReferenceYear < 1990 || c.EDA.ReferenceYear > 2100 {
		return fmt.Errorf("EDA_REFERENCE_YEAR must be between 1990 and 2100 (got %d)", c.EDA.ReferenceYear)
	}
	if c.EDA.LeadTimeBins < 2 || c.EDA.LeadTimeBins > 100 {
		return fmt.Errorf("EDA_LEAD_TIME_BINS must be between 2 and 100 (got %d)", c.EDA.LeadTimeBins)
	}
	return nil
}

func (c *Config) validateTraining() error {
	t := c.Training
	if t.TestSize <= 0 || t.TestSize >= 1 {
		return fmt.Errorf("TRAIN_TEST_SIZE must be in (0, 1) (got %g)", t.TestSize)
	}
	if t.ValidationSize <= 0 || t.ValidationSize >= 1 {
		return fmt.Errorf("TRAIN_VALIDATION_SIZE must be in (0, 1) (got %g)", t.ValidationSize)
	}
	if t.TestSize+t.ValidationSize >= 1 {
		return fmt.Errorf("TRAIN_TEST_SIZE + TRAIN_VALIDATION_SIZE must be < 1 (got %g)",
			t.TestSize+t.ValidationSize)
	}
	for _, m := range t.Models {
		if !containsString(ValidModels, m) {
			return fmt.Errorf("TRAIN_MODELS contains unknown model %q (valid: %s)",
				m, strings.Join(ValidModels, ", "))
		}
	}
	for _, v := range t.Variants {
		if !containsString(ValidVariants, v) {
			return fmt.Errorf("TRAIN_VARIANTS contains unknown variant %q (valid: %s)",
				v, strings.Join(ValidVariants, ", "))
		}
	}
	if !containsString(ValidMetrics, t.SweepMetric) {
		return fmt.Errorf("TRAIN_SWEEP_METRIC must be one of %s (got %q)",
			strings.Join(ValidMetrics, ", "), t.SweepMetric)
	}
	if t.ThresholdMin <= 0 || t.ThresholdMin >= 1 {
		return fmt.Errorf("TRAIN_THRESHOLD_MIN must be in (0, 1) (got %g)", t.ThresholdMin)
	}
	if t.ThresholdMax <= 0 || t.ThresholdMax >= 1 {
		return fmt.Errorf("TRAIN_THRESHOLD_MAX must be in (0, 1) (got %g)", t.ThresholdMax)
	}
	if t.ThresholdMax < t.ThresholdMin {
		return fmt.Errorf("TRAIN_THRESHOLD_MAX must be >= TRAIN_THRESHOLD_MIN")
	}
	if t.ThresholdStep <= 0 {
		return fmt.Errorf("TRAIN_THRESHOLD_STEP must be > 0 (got %g)", t.ThresholdStep)
	}
	if t.Tree.Criterion != "" && t.Tree.Criterion != "gini" && t.Tree.Criterion != "entropy" {
		return fmt.Errorf("TRAIN_TREE_CRITERION must be gini or entropy (got %q)", t.Tree.Criterion)
	}
	if t.Forest.Criterion != "" && t.Forest.Criterion != "gini" && t.Forest.Criterion != "entropy" {
		return fmt.Errorf("TRAIN_FOREST_CRITERION must be gini or entropy (got %q)", t.Forest.Criterion)
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Format {
	case "text", "json", "both":
		return nil
	default:
		return fmt.Errorf("REPORT_FORMAT must be text, json, or both (got %q)", c.Report.Format)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.Logging.Format)
	}
}

// SuiteEnabled reports whether the named analysis suite should run.
// An empty Suites list enables everything.
func (c *Config) SuiteEnabled(name string) bool {
	if len(c.EDA.Suites) == 0 {
		return true
	}
	return containsString(c.EDA.Suites, name)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
