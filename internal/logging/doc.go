// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package logging provides centralized zerolog-based structured logging for Cancellarius.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for unattended batch runs and
// human-readable console output for interactive use. Logs always go to
// stderr by default so stdout stays reserved for rendered reports.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for batch/cron runs (machine-parseable)
//   - Console output format for interactive runs (human-readable)
//   - Run-scoped logging with run ID propagation through context
//   - Component loggers for pipeline stages (ingest, eda, classify, report)
//
// # Quick Start
//
//	import "github.com/tomtom215/cancellarius/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Int("rows", rows).Msg("Ingest complete")
//	logging.Error().Err(err).Str("suite", name).Msg("Suite failed")
//
//	// Run-scoped logging
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
//	logging.Ctx(ctx).Info().Msg("Pipeline started")
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//	panic  - Panic conditions that crash the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("suite", name).
//	    Int("rows", rowCount).
//	    Dur("elapsed", duration).
//	    Msg("Suite complete")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("Suite %s produced %d rows in %v", name, rowCount, duration)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	ingestLogger := logging.WithComponent("ingest")
//	ingestLogger.Info().Msg("Load started")
//	ingestLogger.Error().Err(err).Msg("Load failed")
//
// # Output Formats
//
// JSON Format (batch):
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"Ingest complete","rows":36275}
//
// Console Format (interactive):
//
//	10:30:00 INF Ingest complete rows=36275
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
package logging
