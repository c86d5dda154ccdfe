// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string // empty = valid
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.App.Mode = "serve" },
			wantErr: "MODE",
		},
		{
			name:    "empty data path",
			mutate:  func(c *Config) { c.App.DataPath = "  " },
			wantErr: "DATA_PATH",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "DUCKDB_PATH",
		},
		{
			name:    "negative threads",
			mutate:  func(c *Config) { c.Database.Threads = -1 },
			wantErr: "DUCKDB_THREADS",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Ingest.BatchSize = 0 },
			wantErr: "INGEST_BATCH_SIZE",
		},
		{
			name:    "unknown suite",
			mutate:  func(c *Config) { c.EDA.Suites = []string{"cancellation", "horoscope"} },
			wantErr: "EDA_SUITES",
		},
		{
			name:    "reference year out of range",
			mutate:  func(c *Config) { c.EDA.ReferenceYear = 1887 },
			wantErr: "EDA_REFERENCE_YEAR",
		},
		{
			name:    "test size at 1",
			mutate:  func(c *Config) { c.Training.TestSize = 1.0 },
			wantErr: "TRAIN_TEST_SIZE",
		},
		{
			name:    "test size at 0",
			mutate:  func(c *Config) { c.Training.TestSize = 0 },
			wantErr: "TRAIN_TEST_SIZE",
		},
		{
			name: "splits sum past 1",
			mutate: func(c *Config) {
				c.Training.TestSize = 0.6
				c.Training.ValidationSize = 0.5
			},
			wantErr: "must be < 1",
		},
		{
			name:    "unknown model",
			mutate:  func(c *Config) { c.Training.Models = []string{"svm"} },
			wantErr: "TRAIN_MODELS",
		},
		{
			name:    "unknown variant",
			mutate:  func(c *Config) { c.Training.Variants = []string{"experimental"} },
			wantErr: "TRAIN_VARIANTS",
		},
		{
			name:    "unknown sweep metric",
			mutate:  func(c *Config) { c.Training.SweepMetric = "auc" },
			wantErr: "TRAIN_SWEEP_METRIC",
		},
		{
			name:    "threshold min out of range",
			mutate:  func(c *Config) { c.Training.ThresholdMin = 0 },
			wantErr: "TRAIN_THRESHOLD_MIN",
		},
		{
			name: "threshold max below min",
			mutate: func(c *Config) {
				c.Training.ThresholdMin = 0.7
				c.Training.ThresholdMax = 0.3
			},
			wantErr: "TRAIN_THRESHOLD_MAX",
		},
		{
			name:    "zero threshold step",
			mutate:  func(c *Config) { c.Training.ThresholdStep = 0 },
			wantErr: "TRAIN_THRESHOLD_STEP",
		},
		{
			name:    "bad tree criterion",
			mutate:  func(c *Config) { c.Training.Tree.Criterion = "chi2" },
			wantErr: "TRAIN_TREE_CRITERION",
		},
		{
			name:    "bad forest criterion",
			mutate:  func(c *Config) { c.Training.Forest.Criterion = "mse" },
			wantErr: "TRAIN_FOREST_CRITERION",
		},
		{
			name:    "bad report format",
			mutate:  func(c *Config) { c.Report.Format = "pdf" },
			wantErr: "REPORT_FORMAT",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "logfmt" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want error containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSuiteEnabled(t *testing.T) {
	tests := []struct {
		name   string
		suites []string
		query  string
		want   bool
	}{
		{"empty list enables all", nil, "revenue", true},
		{"listed suite enabled", []string{"revenue", "leadtime"}, "revenue", true},
		{"unlisted suite disabled", []string{"revenue"}, "segments", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			cfg.EDA.Suites = tt.suites
			if got := cfg.SuiteEnabled(tt.query); got != tt.want {
				t.Errorf("SuiteEnabled(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
