// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// SplitSummary describes the stratified train/validation/test partition
type SplitSummary struct {
	Seed               int64   `json:"seed"`
	TrainRows          int     `json:"train_rows"`
	ValidationRows     int     `json:"validation_rows"`
	TestRows           int     `json:"test_rows"`
	TrainPositive      float64 `json:"train_positive_share"`
	ValidationPositive float64 `json:"validation_positive_share"`
	TestPositive       float64 `json:"test_positive_share"`
}

// ConfusionMatrix holds raw binary classification counts with canceled
// bookings as the positive class
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// ModelMetrics holds the standard binary classification metrics derived from
// a confusion matrix. Ratios with a zero denominator are reported as 0.
type ModelMetrics struct {
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	Confusion ConfusionMatrix `json:"confusion"`
}

// ThresholdPoint is the validation metrics observed at one decision threshold
type ThresholdPoint struct {
	Threshold float64      `json:"threshold"`
	Metrics   ModelMetrics `json:"metrics"`
}

// ROCPoint is one (false positive rate, true positive rate) pair on the
// receiver operating characteristic curve
type ROCPoint struct {
	Threshold float64 `json:"threshold"`
	FPR       float64 `json:"fpr"`
	TPR       float64 `json:"tpr"`
}

// ModelResult is the complete training and evaluation outcome for one model
// variant. A failed model carries Error and empty metrics; the run continues
// with the remaining models.
type ModelResult struct {
	Model           string                 `json:"model"`
	Variant         string                 `json:"variant"`
	Params          map[string]interface{} `json:"params,omitempty"`
	TrainMetrics    ModelMetrics           `json:"train_metrics"`
	ValidationMetrics ModelMetrics         `json:"validation_metrics"`
	Sweep           []ThresholdPoint       `json:"sweep,omitempty"`
	BestThreshold   float64                `json:"best_threshold"`
	ROC             []ROCPoint             `json:"roc,omitempty"`
	AUC             float64                `json:"auc"`
	TestMetrics     *ModelMetrics          `json:"test_metrics,omitempty"`
	FitSeconds      float64                `json:"fit_seconds"`
	Error           string                 `json:"error,omitempty"`
}

// TrainingReport is the full output of the training pipeline
type TrainingReport struct {
	Split           SplitSummary  `json:"split"`
	SweepMetric     string        `json:"sweep_metric"`
	Results         []ModelResult `json:"results"`
	BestModel       string        `json:"best_model"`
	BestVariant     string        `json:"best_variant"`
	BestThreshold   float64       `json:"best_threshold"`
	DurationSeconds float64       `json:"duration_seconds"`
}
