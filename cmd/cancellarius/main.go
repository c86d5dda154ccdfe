// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package main is the entry point for the Cancellarius pipeline.
//
// Cancellarius is a batch analytics tool for hotel reservation data. One run
// loads the bookings CSV into an in-process DuckDB store, executes the
// exploratory analysis suites, trains the cancellation classifiers, and
// renders a run report.
//
// # Pipeline Order
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML file, env vars)
//  2. Logging: zerolog, JSON by default
//  3. Database: DuckDB, in-memory unless DUCKDB_PATH points at a file
//  4. Ingest: CSV parse, validation, feature engineering, batch insert
//  5. EDA: enabled analysis suites (MODE=eda or all)
//  6. Training: stratified split, classifiers, threshold sweep (MODE=train or all)
//  7. Report: text tables and/or JSON document
//  8. Metrics: Pushgateway push when METRICS_PUSHGATEWAY_URL is set
//
// # Example Usage
//
// Full run against the bundled dataset layout:
//
//	export DATA_PATH=data/bookings.csv
//	./cancellarius
//
// Analysis only, selected suites, console logs:
//
//	export LOG_FORMAT=console
//	export EDA_SUITES=cancellation,leadtime
//	./cancellarius -mode eda
//
// Training only with a persistent store and JSON report:
//
//	export DUCKDB_PATH=cancellarius.duckdb
//	export REPORT_FORMAT=both
//	export REPORT_OUTPUT=report.json
//	./cancellarius -mode train
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run context; the current stage stops at its
// next cancellation point and the database is closed cleanly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cancellarius/internal/classify"
	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/database"
	"github.com/tomtom215/cancellarius/internal/eda"
	"github.com/tomtom215/cancellarius/internal/features"
	"github.com/tomtom215/cancellarius/internal/ingest"
	"github.com/tomtom215/cancellarius/internal/logging"
	"github.com/tomtom215/cancellarius/internal/metrics"
	"github.com/tomtom215/cancellarius/internal/models"
	"github.com/tomtom215/cancellarius/internal/report"
)

// Build information, set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (overrides the default search paths)")
	mode := flag.String("mode", "", "Pipeline mode: eda, train, all (overrides MODE)")
	dataPath := flag.String("data", "", "Path to the reservations CSV (overrides DATA_PATH)")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cancellarius %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	if *configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, *configPath); err != nil {
			logging.Fatal().Err(err).Msg("Failed to set config path")
		}
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Default logger: config (and its logging section) is not available.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *mode != "" {
		cfg.App.Mode = *mode
	}
	if *dataPath != "" {
		cfg.App.DataPath = *dataPath
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("commit", commit).
		Str("mode", cfg.App.Mode).
		Str("data_path", cfg.App.DataPath).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Cancellarius")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Every log line of the run carries the run ID via context.
	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)

	if err := run(ctx, cfg, runID); err != nil {
		logging.Fatal().Err(err).Str("run_id", runID).Msg("Run failed")
	}
}

// run executes the configured pipeline stages against one database handle.
func run(ctx context.Context, cfg *config.Config, runID string) error {
	start := time.Now().UTC()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Error closing database")
		}
	}()

	runReport := &models.RunReport{
		RunID:     runID,
		Version:   version,
		Mode:      cfg.App.Mode,
		DataPath:  cfg.App.DataPath,
		StartedAt: start,
	}

	if err := runIngest(ctx, cfg, db, runReport); err != nil {
		return err
	}

	if cfg.App.Mode == config.ModeEDA || cfg.App.Mode == config.ModeAll {
		if err := runEDA(ctx, cfg, db, runReport); err != nil {
			return err
		}
	}

	if cfg.App.Mode == config.ModeTrain || cfg.App.Mode == config.ModeAll {
		if err := runTraining(ctx, cfg, db, runReport); err != nil {
			return err
		}
	}

	runReport.FinishedAt = time.Now().UTC()
	runReport.DurationSeconds = runReport.FinishedAt.Sub(start).Seconds()

	renderStart := time.Now()
	if err := report.NewRenderer(&cfg.Report).Render(runReport); err != nil {
		return err
	}
	observeStage(cfg, "report", time.Since(renderStart))

	if cfg.Metrics.Enabled {
		if err := metrics.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			// Metrics delivery never fails the run.
			logging.Warn().Err(err).Msg("Metrics push failed")
		}
	}

	if !db.IsInMemory() {
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Checkpoint failed")
		}
	}

	logging.CtxInfo(ctx).
		Float64("duration_seconds", runReport.DurationSeconds).
		Msg("Run complete")
	return nil
}

func runIngest(ctx context.Context, cfg *config.Config, db *database.DB, runReport *models.RunReport) error {
	stageStart := time.Now()
	summary, err := ingest.NewLoader(cfg).Load(ctx, db)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	runReport.Ingest = summary

	if cfg.Metrics.Enabled {
		metrics.RecordIngest(summary)
	}
	observeStage(cfg, "ingest", time.Since(stageStart))
	return nil
}

func runEDA(ctx context.Context, cfg *config.Config, db *database.DB, runReport *models.RunReport) error {
	stageStart := time.Now()
	edaReport, err := eda.NewRunner(cfg, db).Run(ctx)
	if err != nil {
		return fmt.Errorf("eda: %w", err)
	}
	runReport.EDA = edaReport

	if cfg.Metrics.Enabled {
		metrics.RecordSuites(edaReport.Timings)
	}
	observeStage(cfg, "eda", time.Since(stageStart))
	return nil
}

func runTraining(ctx context.Context, cfg *config.Config, db *database.DB, runReport *models.RunReport) error {
	stageStart := time.Now()

	bookings, err := db.GetBookings(ctx)
	if err != nil {
		return fmt.Errorf("load bookings for training: %w", err)
	}
	matrix, err := features.Preprocess(bookings)
	if err != nil {
		return fmt.Errorf("preprocess: %w", err)
	}

	trainingReport, err := classify.NewEngine(cfg).Run(ctx, matrix)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}
	runReport.Training = trainingReport

	if cfg.Metrics.Enabled {
		metrics.RecordTraining(trainingReport)
	}
	observeStage(cfg, "train", time.Since(stageStart))
	return nil
}

func observeStage(cfg *config.Config, stage string, elapsed time.Duration) {
	if cfg.Metrics.Enabled {
		metrics.ObserveStage(stage, elapsed.Seconds())
	}
}
