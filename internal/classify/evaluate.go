// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package classify

import (
	"fmt"

	"github.com/tomtom215/cancellarius/internal/models"
)

// Confusion counts the four binary outcomes with canceled (label 1) as the
// positive class.
func Confusion(yTrue, yPred []int) (models.ConfusionMatrix, error) {
	if len(yTrue) != len(yPred) {
		return models.ConfusionMatrix{}, fmt.Errorf("labels (%d) and predictions (%d) differ", len(yTrue), len(yPred))
	}

	var cm models.ConfusionMatrix
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			cm.TruePositives++
		case yTrue[i] == 0 && yPred[i] == 1:
			cm.FalsePositives++
		case yTrue[i] == 0 && yPred[i] == 0:
			cm.TrueNegatives++
		default:
			cm.FalseNegatives++
		}
	}
	return cm, nil
}

// MetricsFrom derives accuracy, precision, recall, and F1 from a confusion
// matrix. Any ratio with a zero denominator is reported as 0.
func MetricsFrom(cm models.ConfusionMatrix) models.ModelMetrics {
	m := models.ModelMetrics{Confusion: cm}

	total := cm.TruePositives + cm.FalsePositives + cm.TrueNegatives + cm.FalseNegatives
	if total > 0 {
		m.Accuracy = float64(cm.TruePositives+cm.TrueNegatives) / float64(total)
	}
	if predicted := cm.TruePositives + cm.FalsePositives; predicted > 0 {
		m.Precision = float64(cm.TruePositives) / float64(predicted)
	}
	if actual := cm.TruePositives + cm.FalseNegatives; actual > 0 {
		m.Recall = float64(cm.TruePositives) / float64(actual)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// EvaluateAt binarizes the probabilities at the threshold (probability >=
// threshold is positive) and returns the resulting metrics.
func EvaluateAt(yTrue []int, probs []float64, threshold float64) (models.ModelMetrics, error) {
	if len(yTrue) != len(probs) {
		return models.ModelMetrics{}, fmt.Errorf("labels (%d) and probabilities (%d) differ", len(yTrue), len(probs))
	}

	yPred := make([]int, len(probs))
	for i, p := range probs {
		if p >= threshold {
			yPred[i] = 1
		}
	}

	cm, err := Confusion(yTrue, yPred)
	if err != nil {
		return models.ModelMetrics{}, err
	}
	return MetricsFrom(cm), nil
}

// MetricValue extracts the named metric used as a sweep objective.
func MetricValue(m models.ModelMetrics, name string) (float64, error) {
	switch name {
	case "accuracy":
		return m.Accuracy, nil
	case "precision":
		return m.Precision, nil
	case "recall":
		return m.Recall, nil
	case "f1":
		return m.F1, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", name)
	}
}
