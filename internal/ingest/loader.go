// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package ingest loads the reservations CSV into the DuckDB store.
//
// Each row is parsed, validated, and feature-engineered before insertion.
// Malformed or invalid rows are dropped with a warning by default; strict
// mode turns the first bad row into a run-aborting error. Duplicate booking
// IDs keep the first occurrence.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/database"
	"github.com/tomtom215/cancellarius/internal/features"
	"github.com/tomtom215/cancellarius/internal/logging"
	"github.com/tomtom215/cancellarius/internal/models"
	"github.com/tomtom215/cancellarius/internal/validation"
)

// ErrNoRows indicates the CSV contained a header but no data rows.
var ErrNoRows = errors.New("dataset contains no rows")

// Loader reads, validates, and stores the bookings dataset.
type Loader struct {
	cfg *config.Config
}

// NewLoader creates a CSV loader.
func NewLoader(cfg *config.Config) *Loader {
	return &Loader{cfg: cfg}
}

// Load reads the configured CSV and inserts the engineered bookings.
// Rows are sorted by arrival before insertion so the stored order is
// independent of the file order.
func (l *Loader) Load(ctx context.Context, db *database.DB) (*models.IngestSummary, error) {
	start := time.Now()

	bookings, summary, err := l.readFile(ctx)
	if err != nil {
		return nil, err
	}

	features.SortByArrival(bookings)

	inserted, err := db.InsertBookings(ctx, bookings, l.cfg.Ingest.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("insert bookings: %w", err)
	}
	summary.ValidRows = inserted
	summary.DurationSeconds = time.Since(start).Seconds()

	logging.CtxInfo(ctx).
		Int("total_rows", summary.TotalRows).
		Int("valid_rows", summary.ValidRows).
		Int("dropped_rows", summary.DroppedRows).
		Int("duplicate_rows", summary.DuplicateRows).
		Float64("duration_seconds", summary.DurationSeconds).
		Msg("Ingest complete")
	return summary, nil
}

// readFile parses and validates every row of the CSV.
func (l *Loader) readFile(ctx context.Context) ([]models.Booking, *models.IngestSummary, error) {
	path := l.cfg.App.DataPath
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Str("path", path).Msg("Failed to close dataset file")
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(expectedHeader)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if err := verifyHeader(header); err != nil {
		return nil, nil, fmt.Errorf("unexpected dataset header: %w", err)
	}

	logging.CtxInfo(ctx).Str("path", path).Msg("Ingest started")

	summary := &models.IngestSummary{}
	seen := make(map[string]struct{})
	var bookings []models.Booking

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			summary.TotalRows++
			if derr := l.dropRow(summary, parseErr.Line, err); derr != nil {
				return nil, nil, derr
			}
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read dataset: %w", err)
		}
		summary.TotalRows++
		line := summary.TotalRows + 1

		booking, err := l.buildBooking(record)
		if err != nil {
			if derr := l.dropRow(summary, line, err); derr != nil {
				return nil, nil, derr
			}
			continue
		}

		if _, dup := seen[booking.BookingID]; dup {
			summary.DuplicateRows++
			logging.Warn().
				Str("booking_id", booking.BookingID).
				Int("line", line).
				Msg("Duplicate booking ID, keeping first occurrence")
			continue
		}
		seen[booking.BookingID] = struct{}{}
		bookings = append(bookings, booking)

		if every := l.cfg.Ingest.ProgressEvery; every > 0 && summary.TotalRows%every == 0 {
			logging.CtxInfo(ctx).Int("rows", summary.TotalRows).Msg("Ingest progress")
		}
	}

	if summary.TotalRows == 0 {
		return nil, nil, ErrNoRows
	}
	return bookings, summary, nil
}

// buildBooking parses, validates, and engineers one record.
func (l *Loader) buildBooking(record []string) (models.Booking, error) {
	raw, err := parseRecord(record)
	if err != nil {
		return models.Booking{}, err
	}
	if verr := validation.ValidateStruct(&raw); verr != nil {
		return models.Booking{}, fmt.Errorf("booking %s: %w", raw.BookingID, verr)
	}

	booking, err := features.Engineer(raw)
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %s: %w", raw.BookingID, err)
	}
	booking.ID = BookingUUID(booking.BookingID)
	return booking, nil
}

// dropRow records a bad row, or turns it into an error in strict mode.
func (l *Loader) dropRow(summary *models.IngestSummary, line int, cause error) error {
	if l.cfg.Ingest.Strict {
		return fmt.Errorf("line %d: %w", line, cause)
	}
	summary.DroppedRows++
	logging.Warn().Int("line", line).Err(cause).Msg("Dropped malformed row")
	return nil
}
