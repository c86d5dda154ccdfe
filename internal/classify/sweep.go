// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package classify

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"

	"github.com/tomtom215/cancellarius/internal/models"
)

// Grid is an inclusive threshold grid for the decision sweep.
type Grid struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultGrid returns the standard sweep grid.
func DefaultGrid() Grid {
	return Grid{Min: 0.05, Max: 0.95, Step: 0.05}
}

// Thresholds enumerates the grid. Max is included when it lands on a step,
// allowing for floating point drift.
func (g Grid) Thresholds() ([]float64, error) {
	if g.Step <= 0 {
		return nil, fmt.Errorf("grid step must be > 0 (got %g)", g.Step)
	}
	if g.Max < g.Min {
		return nil, fmt.Errorf("grid max %g below min %g", g.Max, g.Min)
	}

	var thresholds []float64
	for i := 0; ; i++ {
		t := g.Min + float64(i)*g.Step
		if t > g.Max+1e-9 {
			break
		}
		thresholds = append(thresholds, t)
	}
	return thresholds, nil
}

// Sweep evaluates the validation probabilities at every grid threshold.
func Sweep(yTrue []int, probs []float64, grid Grid) ([]models.ThresholdPoint, error) {
	thresholds, err := grid.Thresholds()
	if err != nil {
		return nil, err
	}

	points := make([]models.ThresholdPoint, 0, len(thresholds))
	for _, t := range thresholds {
		m, err := EvaluateAt(yTrue, probs, t)
		if err != nil {
			return nil, err
		}
		points = append(points, models.ThresholdPoint{Threshold: t, Metrics: m})
	}
	return points, nil
}

// BestThreshold picks the sweep point maximizing the named metric. Ties keep
// the lowest threshold, favoring recall when the objective cannot decide.
func BestThreshold(points []models.ThresholdPoint, metric string) (models.ThresholdPoint, error) {
	if len(points) == 0 {
		return models.ThresholdPoint{}, fmt.Errorf("sweep produced no points")
	}

	best := points[0]
	bestValue, err := MetricValue(best.Metrics, metric)
	if err != nil {
		return models.ThresholdPoint{}, err
	}

	for _, p := range points[1:] {
		v, err := MetricValue(p.Metrics, metric)
		if err != nil {
			return models.ThresholdPoint{}, err
		}
		if v > bestValue {
			best = p
			bestValue = v
		}
	}
	return best, nil
}

// ROC builds the receiver operating characteristic over the grid thresholds
// plus the (0,0) and (1,1) endpoints, sorted by false positive rate.
func ROC(yTrue []int, probs []float64, grid Grid) ([]models.ROCPoint, error) {
	thresholds, err := grid.Thresholds()
	if err != nil {
		return nil, err
	}

	pos, neg := 0, 0
	for _, label := range yTrue {
		if label == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, ErrSingleClass
	}

	points := make([]models.ROCPoint, 0, len(thresholds)+2)
	points = append(points,
		models.ROCPoint{Threshold: 1, FPR: 0, TPR: 0},
		models.ROCPoint{Threshold: 0, FPR: 1, TPR: 1},
	)
	for _, t := range thresholds {
		tp, fp := 0, 0
		for i, p := range probs {
			if p < t {
				continue
			}
			if yTrue[i] == 1 {
				tp++
			} else {
				fp++
			}
		}
		points = append(points, models.ROCPoint{
			Threshold: t,
			FPR:       float64(fp) / float64(neg),
			TPR:       float64(tp) / float64(pos),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].FPR != points[j].FPR {
			return points[i].FPR < points[j].FPR
		}
		return points[i].TPR < points[j].TPR
	})
	return points, nil
}

// AUC integrates the ROC curve with the trapezoidal rule.
func AUC(points []models.ROCPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.FPR
		ys[i] = p.TPR
	}
	return integrate.Trapezoidal(xs, ys)
}
