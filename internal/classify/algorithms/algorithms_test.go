// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"
)

// separableSet returns a two-feature set where the first feature fully
// determines the label and the second is constant noise.
func separableSet() (x [][]float64, y []int) {
	for i := 0; i < 20; i++ {
		v := float64(i)
		label := 0
		if i >= 10 {
			label = 1
		}
		x = append(x, []float64{v, 1})
		y = append(y, label)
	}
	return x, y
}

func fitOrFatal(t *testing.T, c Classifier, x [][]float64, y []int) {
	t.Helper()
	if err := c.Fit(context.Background(), x, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !c.IsTrained() {
		t.Fatal("IsTrained = false after Fit")
	}
}

func TestValidateTrainingSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		x       [][]float64
		y       []int
		wantErr bool
	}{
		{"valid", [][]float64{{1, 2}, {3, 4}}, []int{0, 1}, false},
		{"empty", nil, nil, true},
		{"length mismatch", [][]float64{{1}}, []int{0, 1}, true},
		{"empty row", [][]float64{{}}, []int{0}, true},
		{"ragged rows", [][]float64{{1, 2}, {3}}, []int{0, 1}, true},
		{"non-binary label", [][]float64{{1}}, []int{2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTrainingSet(tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTrainingSet() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := validateTrainingSet(nil, nil); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("Empty set error = %v, want ErrEmptyTrainingSet", err)
	}
}

func TestBinarize(t *testing.T) {
	t.Parallel()

	got := binarize([]float64{0.1, 0.5, 0.9}, 0.5)
	want := []int{0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("binarize[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLogisticRegression_Separable(t *testing.T) {
	t.Parallel()

	x, y := separableSet()
	lr := NewLogisticRegression(DefaultLogisticConfig())
	fitOrFatal(t, lr, x, y)

	labels, err := lr.Predict(x, 0.5)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := range y {
		if labels[i] != y[i] {
			t.Errorf("Prediction[%d] = %d, want %d", i, labels[i], y[i])
		}
	}

	probs, err := lr.PredictProba([][]float64{{0, 1}, {19, 1}})
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	if probs[0] >= probs[1] {
		t.Errorf("Probabilities not ordered: low=%g high=%g", probs[0], probs[1])
	}
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("Probability %g outside [0, 1]", p)
		}
	}
}

func TestLogisticRegression_Deterministic(t *testing.T) {
	t.Parallel()

	x, y := separableSet()
	a := NewLogisticRegression(DefaultLogisticConfig())
	b := NewLogisticRegression(DefaultLogisticConfig())
	fitOrFatal(t, a, x, y)
	fitOrFatal(t, b, x, y)

	pa, _ := a.PredictProba(x)
	pb, _ := b.PredictProba(x)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("Refit with the same seed diverged at row %d: %g vs %g", i, pa[i], pb[i])
		}
	}
}

func TestLogisticRegression_NotTrained(t *testing.T) {
	t.Parallel()

	lr := NewLogisticRegression(DefaultLogisticConfig())
	if _, err := lr.PredictProba([][]float64{{1, 2}}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("PredictProba error = %v, want ErrNotTrained", err)
	}
}

func TestLogisticRegression_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	x, y := separableSet()
	lr := NewLogisticRegression(DefaultLogisticConfig())
	if err := lr.Fit(ctx, x, y); !errors.Is(err, context.Canceled) {
		t.Errorf("Fit error = %v, want context.Canceled", err)
	}
	if lr.IsTrained() {
		t.Error("Classifier trained despite cancelled context")
	}
}

func TestDecisionTree_Separable(t *testing.T) {
	t.Parallel()

	x, y := separableSet()
	dt := NewDecisionTree(DefaultTreeConfig())
	fitOrFatal(t, dt, x, y)

	labels, err := dt.Predict(x, 0.5)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := range y {
		if labels[i] != y[i] {
			t.Errorf("Prediction[%d] = %d, want %d", i, labels[i], y[i])
		}
	}
}

func TestDecisionTree_XOR(t *testing.T) {
	t.Parallel()

	// XOR needs depth 2; a single linear split cannot separate it.
	x := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	y := []int{0, 1, 1, 0}

	dt := NewDecisionTree(DefaultTreeConfig())
	fitOrFatal(t, dt, x, y)

	labels, err := dt.Predict(x, 0.5)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := range y {
		if labels[i] != y[i] {
			t.Errorf("Prediction[%d] = %d, want %d", i, labels[i], y[i])
		}
	}
}

func TestDecisionTree_PureLeaf(t *testing.T) {
	t.Parallel()

	// Single-class set collapses to one leaf with probability 0.
	x := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	y := []int{0, 0, 0}

	dt := NewDecisionTree(DefaultTreeConfig())
	fitOrFatal(t, dt, x, y)

	probs, err := dt.PredictProba([][]float64{{2, 3}})
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	if probs[0] != 0 {
		t.Errorf("Pure negative leaf probability = %g, want 0", probs[0])
	}
}

func TestDecisionTree_MaxDepth(t *testing.T) {
	t.Parallel()

	x, y := separableSet()
	dt := NewDecisionTree(TreeConfig{
		Criterion:       CriterionEntropy,
		MaxDepth:        1,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	})
	fitOrFatal(t, dt, x, y)

	// Depth 1 still suffices for a single separating split.
	labels, err := dt.Predict(x, 0.5)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := range y {
		if labels[i] != y[i] {
			t.Errorf("Prediction[%d] = %d, want %d", i, labels[i], y[i])
		}
	}
}

func TestTreeConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     TreeConfig
		wantErr bool
	}{
		{"defaults", DefaultTreeConfig(), false},
		{"entropy", TreeConfig{Criterion: CriterionEntropy, MinSamplesSplit: 2, MinSamplesLeaf: 1}, false},
		{"bad criterion", TreeConfig{Criterion: "mse", MinSamplesSplit: 2, MinSamplesLeaf: 1}, true},
		{"bad min split", TreeConfig{Criterion: CriterionGini, MinSamplesSplit: 1, MinSamplesLeaf: 1}, true},
		{"bad min leaf", TreeConfig{Criterion: CriterionGini, MinSamplesSplit: 2, MinSamplesLeaf: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestImpurity(t *testing.T) {
	t.Parallel()

	if got := giniImpurity(0, 10); got != 0 {
		t.Errorf("gini(0/10) = %g, want 0", got)
	}
	if got := giniImpurity(5, 10); got != 0.5 {
		t.Errorf("gini(5/10) = %g, want 0.5", got)
	}
	if got := entropyImpurity(5, 10); got != 1 {
		t.Errorf("entropy(5/10) = %g, want 1", got)
	}
	if got := entropyImpurity(10, 10); got != 0 {
		t.Errorf("entropy(10/10) = %g, want 0", got)
	}
}

func TestRandomForest_Separable(t *testing.T) {
	t.Parallel()

	x, y := separableSet()
	cfg := DefaultForestConfig()
	cfg.NEstimators = 25
	rf := NewRandomForest(cfg)
	fitOrFatal(t, rf, x, y)

	labels, err := rf.Predict(x, 0.5)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	misses := 0
	for i := range y {
		if labels[i] != y[i] {
			misses++
		}
	}
	// Bootstrap sampling may blur the boundary rows, not the bulk.
	if misses > 2 {
		t.Errorf("Forest missed %d of %d separable samples", misses, len(y))
	}
}

func TestRandomForest_Deterministic(t *testing.T) {
	t.Parallel()

	x, y := separableSet()

	cfg := DefaultForestConfig()
	cfg.NEstimators = 10
	cfg.Workers = 4

	a := NewRandomForest(cfg)
	fitOrFatal(t, a, x, y)

	cfg.Workers = 1
	b := NewRandomForest(cfg)
	fitOrFatal(t, b, x, y)

	pa, _ := a.PredictProba(x)
	pb, _ := b.PredictProba(x)
	for i := range pa {
		if math.Abs(pa[i]-pb[i]) > 1e-12 {
			t.Fatalf("Worker count changed predictions at row %d: %g vs %g", i, pa[i], pb[i])
		}
	}
}

func TestRandomForest_NotTrained(t *testing.T) {
	t.Parallel()

	rf := NewRandomForest(DefaultForestConfig())
	if _, err := rf.Predict([][]float64{{1, 2}}, 0.5); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Predict error = %v, want ErrNotTrained", err)
	}
}

func TestForestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultForestConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}

	cfg.NEstimators = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Zero estimators accepted")
	}
}

func TestClassifier_DimensionMismatch(t *testing.T) {
	t.Parallel()

	x, y := separableSet()
	classifiers := []Classifier{
		NewLogisticRegression(DefaultLogisticConfig()),
		NewDecisionTree(DefaultTreeConfig()),
		NewRandomForest(ForestConfig{NEstimators: 5}),
	}

	for _, c := range classifiers {
		t.Run(c.Name(), func(t *testing.T) {
			fitOrFatal(t, c, x, y)
			if _, err := c.PredictProba([][]float64{{1, 2, 3}}); err == nil {
				t.Error("Mismatched feature width accepted")
			}
		})
	}
}
