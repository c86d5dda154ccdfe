// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Sentinel errors shared by all classifiers.
var (
	// ErrNotTrained indicates Predict/PredictProba was called before Fit.
	ErrNotTrained = errors.New("classifier is not trained")

	// ErrEmptyTrainingSet indicates Fit was called with no samples.
	ErrEmptyTrainingSet = errors.New("training set is empty")
)

// Classifier is a binary classifier over a fixed-order feature matrix.
// The positive class (label 1) is a canceled booking.
type Classifier interface {
	// Name returns the classifier identifier (e.g. "logistic", "tree", "forest").
	Name() string

	// Fit trains the classifier. X is row-major with one sample per row;
	// y holds 0/1 labels, one per sample. Fit honors context cancellation
	// between optimization steps.
	Fit(ctx context.Context, x [][]float64, y []int) error

	// PredictProba returns the positive-class probability for each sample,
	// each in [0, 1].
	PredictProba(x [][]float64) ([]float64, error)

	// Predict binarizes PredictProba at the given threshold: probability
	// >= threshold labels the sample positive.
	Predict(x [][]float64, threshold float64) ([]int, error)

	// IsTrained reports whether the classifier has been fit.
	IsTrained() bool

	// Params returns the effective hyperparameters for reporting.
	Params() map[string]interface{}
}

// BaseClassifier provides the shared identity and lock discipline.
type BaseClassifier struct {
	name     string
	trained  bool
	fittedAt time.Time
	mu       sync.RWMutex
}

// NewBaseClassifier creates a base with the given name.
func NewBaseClassifier(name string) BaseClassifier {
	return BaseClassifier{name: name}
}

// Name returns the classifier identifier.
func (b *BaseClassifier) Name() string {
	return b.name
}

// IsTrained reports whether the classifier has been fit.
func (b *BaseClassifier) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// FittedAt returns when the classifier was last fit.
func (b *BaseClassifier) FittedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fittedAt
}

// markTrained records a completed fit.
// Must be called while holding the training lock (acquireTrainLock).
func (b *BaseClassifier) markTrained() {
	b.trained = true
	b.fittedAt = time.Now()
}

// acquireTrainLock acquires the exclusive training lock.
func (b *BaseClassifier) acquireTrainLock() {
	b.mu.Lock()
}

// releaseTrainLock releases the exclusive training lock.
func (b *BaseClassifier) releaseTrainLock() {
	b.mu.Unlock()
}

// acquirePredictLock acquires the shared prediction lock.
func (b *BaseClassifier) acquirePredictLock() {
	b.mu.RLock()
}

// releasePredictLock releases the shared prediction lock.
func (b *BaseClassifier) releasePredictLock() {
	b.mu.RUnlock()
}

// validateTrainingSet checks the shape of a training set before fitting.
func validateTrainingSet(x [][]float64, y []int) error {
	if len(x) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ", len(x), len(y))
	}
	width := len(x[0])
	if width == 0 {
		return fmt.Errorf("feature rows are empty")
	}
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label %d at row %d is not binary", label, i)
		}
	}
	return nil
}

// binarize applies the decision threshold to probabilities.
// The boundary is inclusive: probability == threshold labels positive.
func binarize(probs []float64, threshold float64) []int {
	labels := make([]int, len(probs))
	for i, p := range probs {
		if p >= threshold {
			labels[i] = 1
		}
	}
	return labels
}

// contextCancelled checks whether the context has been canceled.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Ensure all classifiers implement the interface.
var (
	_ Classifier = (*LogisticRegression)(nil)
	_ Classifier = (*DecisionTree)(nil)
	_ Classifier = (*RandomForest)(nil)
)
