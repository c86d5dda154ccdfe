// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

/*
Package models defines data structures for the Cancellarius application.

This package contains all data models used throughout the pipeline, from the
raw CSV row through engineered bookings, analytics suite outputs, training
results, and the final run report. It serves as the single source of truth
for data structure definitions.

Key Components:

  - RawBooking: One bookings CSV row as parsed (validation tags drive ingest)
  - Booking: Engineered record as stored in DuckDB (deterministic UUID,
    arrival/booked timestamps, derived stay and guest counts)
  - CancellationAnalytics and friends: One result type per analytics suite
  - TrainingReport: Split summary, per-model metrics, threshold sweep, ROC/AUC
  - RunReport: Envelope tying a run ID to ingest, EDA, and training outputs

Model Categories:

 1. Booking Models: RawBooking, Booking

 2. Analytics Models (one file per suite):
    CancellationAnalytics, SegmentAnalytics, RevenueAnalytics,
    RepeatAnalytics, SeasonalityAnalytics, LeadTimeAnalytics,
    RequestsAnalytics, DatasetProfile

 3. Training Models: SplitSummary, ConfusionMatrix, ModelMetrics,
    ThresholdPoint, ROCPoint, ModelResult, TrainingReport

 4. Report Models: IngestSummary, EDAReport, RunReport

JSON serialization uses goccy/go-json at the call sites; optional sections
use pointer fields with omitempty so disabled suites and skipped pipeline
stages disappear from the rendered report.

All types in this package are plain data carriers. Behavior lives in the
packages that produce them (internal/features, internal/database,
internal/classify) and consume them (internal/report).
*/
package models
