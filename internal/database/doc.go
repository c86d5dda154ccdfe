// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package database provides the DuckDB-backed analytical store for ingested
// hotel bookings and the exploratory-analysis aggregation suites that run
// over it.
//
// # Overview
//
// The store is transient by default (in-memory DuckDB); a file path can be
// configured when re-running analysis without re-ingesting is worth keeping
// disk state around.
//
// # Architecture
//
// Core operations:
//   - database.go: Connection lifecycle (DSN construction, open, close)
//   - schema.go: Bookings table and index creation
//   - insert.go: Batched transactional inserts of engineered bookings
//   - select.go: Ordered read-back of engineered bookings
//   - database_utils.go: Context defaults, row counts, checkpointing
//   - errors.go: Sentinel errors and close helpers
//
// Analysis suites (one file per suite, each method = one SQL aggregation
// returning typed model rows):
//   - analytics_cancellation.go: Cancellation rates across every dimension
//   - analytics_segments.go: Market-segment composition and behavior
//   - analytics_revenue.go: Realized and lost revenue breakdowns
//   - analytics_repeat.go: Returning-guest behavior
//   - analytics_seasonality.go: Monthly volume, price, and cancellation
//   - analytics_leadtime.go: Lead-time distribution and decile contrast
//   - analytics_requests.go: Special-request counts and cancellation
//
// # Thread Safety
//
// DB wraps database/sql which is safe for concurrent use; the batch pipeline
// itself runs suites sequentially.
package database
