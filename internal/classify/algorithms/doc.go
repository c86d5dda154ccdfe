// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package algorithms implements the binary cancellation classifiers trained
// by the classify engine.
//
// Each classifier implements the Classifier interface and can be registered
// with the training engine.
//
// # Classifiers
//
//   - LogisticRegression: SGD on the cross-entropy gradient with L2
//     regularization and internal feature standardization
//   - DecisionTree: CART with gini or entropy impurity
//   - RandomForest: bootstrap-aggregated CART trees with per-split feature
//     subsampling, fit concurrently
//
// # Thread Safety
//
// All classifiers are safe for concurrent use. Fitting acquires an exclusive
// lock while prediction uses a shared lock.
//
// # Determinism
//
// Every randomized step (epoch shuffles, bootstrap samples, feature
// subsampling) derives from the configured seed, so a fixed seed reproduces
// the same fitted model.
package algorithms
