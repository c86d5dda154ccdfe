// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package classify

import (
	"math"
	"testing"
)

func TestGrid_Thresholds(t *testing.T) {
	t.Parallel()

	got, err := DefaultGrid().Thresholds()
	if err != nil {
		t.Fatalf("Thresholds failed: %v", err)
	}
	if len(got) != 19 {
		t.Fatalf("Default grid has %d thresholds, want 19", len(got))
	}
	if got[0] != 0.05 {
		t.Errorf("First threshold = %g, want 0.05", got[0])
	}
	// The inclusive max survives float drift.
	if math.Abs(got[len(got)-1]-0.95) > 1e-9 {
		t.Errorf("Last threshold = %g, want 0.95", got[len(got)-1])
	}
}

func TestGrid_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := (Grid{Min: 0.1, Max: 0.9, Step: 0}).Thresholds(); err == nil {
		t.Error("Zero step accepted")
	}
	if _, err := (Grid{Min: 0.9, Max: 0.1, Step: 0.1}).Thresholds(); err == nil {
		t.Error("Inverted bounds accepted")
	}
}

func TestSweep(t *testing.T) {
	t.Parallel()

	yTrue := []int{1, 1, 0, 0}
	probs := []float64{0.9, 0.6, 0.4, 0.1}
	grid := Grid{Min: 0.25, Max: 0.75, Step: 0.25}

	points, err := Sweep(yTrue, probs, grid)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Sweep produced %d points, want 3", len(points))
	}

	// t=0.25: predicts 1,1,1,0 -> one false positive.
	if points[0].Metrics.Confusion.FalsePositives != 1 {
		t.Errorf("FP at 0.25 = %d, want 1", points[0].Metrics.Confusion.FalsePositives)
	}
	// t=0.50: perfect separation.
	if points[1].Metrics.F1 != 1 {
		t.Errorf("F1 at 0.50 = %g, want 1", points[1].Metrics.F1)
	}
	// t=0.75: misses the 0.6 positive.
	if points[2].Metrics.Confusion.FalseNegatives != 1 {
		t.Errorf("FN at 0.75 = %d, want 1", points[2].Metrics.Confusion.FalseNegatives)
	}
}

func TestBestThreshold(t *testing.T) {
	t.Parallel()

	yTrue := []int{1, 1, 0, 0}
	probs := []float64{0.9, 0.6, 0.4, 0.1}
	points, err := Sweep(yTrue, probs, Grid{Min: 0.25, Max: 0.75, Step: 0.25})
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	best, err := BestThreshold(points, "f1")
	if err != nil {
		t.Fatalf("BestThreshold failed: %v", err)
	}
	if best.Threshold != 0.5 {
		t.Errorf("Best threshold = %g, want 0.5", best.Threshold)
	}
}

func TestBestThreshold_TieKeepsLowest(t *testing.T) {
	t.Parallel()

	// Probabilities at 0.9 and 0.1 make every grid threshold equally perfect.
	yTrue := []int{1, 1, 0, 0}
	probs := []float64{0.9, 0.9, 0.1, 0.1}
	points, err := Sweep(yTrue, probs, Grid{Min: 0.25, Max: 0.75, Step: 0.25})
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	best, err := BestThreshold(points, "f1")
	if err != nil {
		t.Fatalf("BestThreshold failed: %v", err)
	}
	if best.Threshold != 0.25 {
		t.Errorf("Tied sweep picked %g, want the lowest threshold 0.25", best.Threshold)
	}
}

func TestROC_PerfectClassifier(t *testing.T) {
	t.Parallel()

	yTrue := []int{1, 1, 0, 0}
	probs := []float64{0.9, 0.9, 0.1, 0.1}

	points, err := ROC(yTrue, probs, DefaultGrid())
	if err != nil {
		t.Fatalf("ROC failed: %v", err)
	}

	first, last := points[0], points[len(points)-1]
	if first.FPR != 0 || first.TPR != 0 {
		t.Errorf("Curve starts at (%g, %g), want (0, 0)", first.FPR, first.TPR)
	}
	if last.FPR != 1 || last.TPR != 1 {
		t.Errorf("Curve ends at (%g, %g), want (1, 1)", last.FPR, last.TPR)
	}
	for i := 1; i < len(points); i++ {
		if points[i].FPR < points[i-1].FPR {
			t.Fatalf("FPR not monotonic at point %d", i)
		}
	}

	if auc := AUC(points); auc != 1 {
		t.Errorf("AUC = %g, want 1 for a perfect classifier", auc)
	}
}

func TestROC_SingleClass(t *testing.T) {
	t.Parallel()

	if _, err := ROC([]int{1, 1}, []float64{0.9, 0.8}, DefaultGrid()); err == nil {
		t.Error("Single-class labels accepted")
	}
}

func TestAUC_Degenerate(t *testing.T) {
	t.Parallel()

	if got := AUC(nil); got != 0 {
		t.Errorf("AUC(nil) = %g, want 0", got)
	}
}
