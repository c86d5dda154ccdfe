// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// runIDKey is the context key for pipeline run IDs.
	runIDKey contextKey = "run_id"

	// loggerKey is the context key for storing a logger instance.
	loggerKey contextKey = "logger"
)

// GenerateRunID creates a new unique run ID.
// Returns a full UUID so runs stay distinguishable across report archives.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context with the given run ID.
//
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
// Useful for passing pre-configured loggers into pipeline stages.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext retrieves a logger from context.
// Returns the global logger if no logger is stored in context.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with the run ID automatically added when present.
// This is the recommended way to log inside pipeline stages.
//
//	logging.Ctx(ctx).Info().Msg("Suite complete")
//	// Output: {"level":"info","run_id":"uuid","message":"Suite complete"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := LoggerFromContext(ctx)

	contextLogger := logger.With().Logger()

	if runID := RunIDFromContext(ctx); runID != "" {
		contextLogger = contextLogger.With().Str("run_id", runID).Logger()
	}

	return &contextLogger
}

// CtxWith returns a logger context builder with the run ID pre-populated.
// Use this when you need to add additional fields beyond the run ID.
//
//	logger := logging.CtxWith(ctx).Str("suite", name).Logger()
//	logger.Info().Msg("Suite started")
func CtxWith(ctx context.Context) zerolog.Context {
	logger := LoggerFromContext(ctx)
	logCtx := logger.With()

	if runID := RunIDFromContext(ctx); runID != "" {
		logCtx = logCtx.Str("run_id", runID)
	}

	return logCtx
}

// CtxInfo starts an info level message with context fields.
// Shorthand for Ctx(ctx).Info().
func CtxInfo(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Info()
}

// CtxWarn starts a warn level message with context fields.
// Shorthand for Ctx(ctx).Warn().
func CtxWarn(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Warn()
}

// CtxErr starts an error level message with context fields and the error.
// Shorthand for Ctx(ctx).Err(err).
func CtxErr(ctx context.Context, err error) *zerolog.Event {
	return Ctx(ctx).Err(err)
}

// WithComponent creates a child logger with a component field.
// Use this to create stage-specific loggers.
//
//	ingestLogger := logging.WithComponent("ingest")
//	ingestLogger.Info().Msg("Load started")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
