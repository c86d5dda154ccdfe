// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package classify runs the supervised cancellation-prediction workflow:
// stratified train/validation/test splitting, classifier training across
// model and hyperparameter variants, decision-threshold sweeps on the
// validation set, and final held-out test evaluation.
//
// # Components
//
//   - split.go: seeded stratified three-way partition
//   - evaluate.go: confusion matrix and derived binary metrics
//   - sweep.go: threshold grid sweep, ROC curve, and trapezoidal AUC
//   - engine.go: the training engine orchestrating models and variants
//
// The engine trains every enabled (model, variant) pair, picks each pair's
// decision threshold on the validation set, and only then evaluates the
// test set at that frozen threshold. A model failure is recorded on its
// result and the run continues with the remaining models.
package classify
