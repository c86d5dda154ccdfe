// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"fmt"
	"time"
)

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the configured database path
func (db *DB) GetDatabasePath() string {
	return db.cfg.Path
}

// CountBookings returns the number of ingested bookings
func (db *DB) CountBookings(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// requireBookings returns ErrDatasetEmpty when no rows have been ingested.
// Analytics suites call this before running aggregations so callers get a
// single recognizable error instead of per-query empty results.
func (db *DB) requireBookings(ctx context.Context) error {
	count, err := db.CountBookings(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrDatasetEmpty
	}
	return nil
}
