// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

/*
Package config provides centralized configuration management for Cancellarius.

Configuration is loaded through Koanf v2 with three layered sources, later
layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML config file (config.yaml, or CONFIG_PATH)
 3. Environment variables (explicit mapping, unknown vars ignored)

Configuration Sections:

  - App: run mode (eda/train/all), dataset path, RNG seed
  - Database: DuckDB path ("memory" by default), memory limit, threads
  - Ingest: CSV batch size, strict mode, progress interval
  - EDA: enabled analysis suites, reference year, lead-time bins
  - Training: split sizes, models, variants, threshold sweep grid,
    per-model hyperparameter overrides
  - Report: output format (text/json/both) and JSON destination
  - Metrics: Prometheus collection and optional Pushgateway push
  - Logging: level, format, caller info

Usage:

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(cfg.Database)
	loader := ingest.NewLoader(db, cfg.Ingest, cfg.App.DataPath)

Validation:

LoadWithKoanf validates the assembled configuration and fails fast on
incoherent values (unknown run modes, split fractions outside (0,1),
threshold grids that cannot produce a single point). Error messages name
the environment variable that controls the offending field.

Thread Safety:

Config is immutable after loading and safe for concurrent reads.
*/
package config
