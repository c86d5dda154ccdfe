// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/cancellarius/internal/logging"
)

// Sentinel errors returned by data access methods.
var (
	// ErrNilConnection indicates the DB was used after Close or before New.
	ErrNilConnection = errors.New("database connection is nil")

	// ErrDatasetEmpty indicates an analytics query ran before any bookings
	// were ingested.
	ErrDatasetEmpty = errors.New("bookings table is empty")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
