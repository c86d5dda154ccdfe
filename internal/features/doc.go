// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package features turns raw booking rows into engineered records, numeric
// design matrices, and dataset profiles.
//
// The package has three responsibilities:
//
//   - Engineering (engineer.go): derive deterministic fields from a raw CSV
//     row (arrival timestamp, total nights/guests, prior-stay count). The
//     same row always yields the same engineered record.
//   - Preprocessing (preprocess.go): encode engineered bookings into the
//     fixed-order feature matrix and label vector the classifiers train on.
//   - Profiling (profile.go): summary statistics over numeric columns,
//     categorical cardinalities, label balance, and per-feature label
//     correlations via gonum/stat.
//
// Nothing here touches the database or holds state; every function is a pure
// transformation over models types.
package features
