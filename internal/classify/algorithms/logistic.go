// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// LogisticConfig contains configuration for logistic regression.
type LogisticConfig struct {
	// LearningRate is the SGD step size.
	// Default: 0.1.
	LearningRate float64

	// Epochs is the number of passes over the training set.
	// Default: 50.
	Epochs int

	// L2 is the L2 regularization strength applied to the weights
	// (the bias is not regularized).
	// Default: 0.0001.
	L2 float64

	// Seed drives the per-epoch sample shuffle.
	// Default: 42.
	Seed int64
}

// DefaultLogisticConfig returns default logistic regression configuration.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{
		LearningRate: 0.1,
		Epochs:       50,
		L2:           0.0001,
		Seed:         42,
	}
}

// Validate checks the configuration.
func (c LogisticConfig) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Epochs < 1 {
		return fmt.Errorf("epochs must be >= 1 (got %d)", c.Epochs)
	}
	if c.L2 < 0 {
		return fmt.Errorf("l2 must be >= 0 (got %g)", c.L2)
	}
	return nil
}

// LogisticRegression is a binary logistic regression fit with stochastic
// gradient descent on the cross-entropy loss.
//
// Features are standardized internally (per-column mean/std from the
// training set) before optimization so columns on very different scales,
// like lead time next to binary flags, do not dominate the gradient. The
// stored standardization is applied again at prediction time.
type LogisticRegression struct {
	BaseClassifier
	config LogisticConfig

	weights *mat.VecDense
	bias    float64

	// Standardization fit on the training set.
	means []float64
	stds  []float64
}

// NewLogisticRegression creates a logistic regression classifier.
// Zero-valued config fields fall back to defaults.
func NewLogisticRegression(cfg LogisticConfig) *LogisticRegression {
	def := DefaultLogisticConfig()
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = def.Epochs
	}
	if cfg.L2 < 0 {
		cfg.L2 = def.L2
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}

	return &LogisticRegression{
		BaseClassifier: NewBaseClassifier("logistic"),
		config:         cfg,
	}
}

// Params returns the effective hyperparameters.
func (l *LogisticRegression) Params() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate": l.config.LearningRate,
		"epochs":        l.config.Epochs,
		"l2":            l.config.L2,
		"seed":          l.config.Seed,
	}
}

// Fit trains the model with SGD. Samples are visited in a freshly shuffled
// order each epoch; the shuffle derives from the configured seed so fits are
// reproducible.
func (l *LogisticRegression) Fit(ctx context.Context, x [][]float64, y []int) error {
	if err := validateTrainingSet(x, y); err != nil {
		return err
	}

	l.acquireTrainLock()
	defer l.releaseTrainLock()

	dims := len(x[0])
	l.means, l.stds = fitStandardization(x)
	l.weights = mat.NewVecDense(dims, nil)
	l.bias = 0

	rng := rand.New(rand.NewSource(l.config.Seed))
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}

	scaled := mat.NewVecDense(dims, nil)
	for epoch := 0; epoch < l.config.Epochs; epoch++ {
		if contextCancelled(ctx) {
			return ctx.Err()
		}

		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, idx := range order {
			l.standardizeInto(scaled, x[idx])

			p := sigmoid(mat.Dot(l.weights, scaled) + l.bias)
			grad := p - float64(y[idx])

			// w -= lr * (grad * x + l2 * w); b -= lr * grad
			l.weights.AddScaledVec(l.weights, -l.config.LearningRate*l.config.L2, l.weights)
			l.weights.AddScaledVec(l.weights, -l.config.LearningRate*grad, scaled)
			l.bias -= l.config.LearningRate * grad
		}
	}

	l.markTrained()
	return nil
}

// PredictProba returns the positive-class probability for each sample.
func (l *LogisticRegression) PredictProba(x [][]float64) ([]float64, error) {
	l.acquirePredictLock()
	defer l.releasePredictLock()

	if !l.trained {
		return nil, ErrNotTrained
	}

	dims := l.weights.Len()
	scaled := mat.NewVecDense(dims, nil)
	probs := make([]float64, len(x))
	for i, row := range x {
		if len(row) != dims {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), dims)
		}
		l.standardizeInto(scaled, row)
		probs[i] = sigmoid(mat.Dot(l.weights, scaled) + l.bias)
	}
	return probs, nil
}

// Predict binarizes PredictProba at the threshold.
func (l *LogisticRegression) Predict(x [][]float64, threshold float64) ([]int, error) {
	probs, err := l.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return binarize(probs, threshold), nil
}

// standardizeInto writes the standardized row into dst.
func (l *LogisticRegression) standardizeInto(dst *mat.VecDense, row []float64) {
	for i, v := range row {
		dst.SetVec(i, (v-l.means[i])/l.stds[i])
	}
}

// fitStandardization computes per-column mean and standard deviation.
// Constant columns get std 1 so they standardize to zero instead of NaN.
func fitStandardization(x [][]float64) (means, stds []float64) {
	n := float64(len(x))
	dims := len(x[0])
	means = make([]float64, dims)
	stds = make([]float64, dims)

	for _, row := range x {
		for i, v := range row {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= n
	}

	for _, row := range x {
		for i, v := range row {
			d := v - means[i]
			stds[i] += d * d
		}
	}
	for i := range stds {
		stds[i] = math.Sqrt(stds[i] / n)
		if stds[i] == 0 {
			stds[i] = 1
		}
	}
	return means, stds
}

// sigmoid is the logistic function, clamped to avoid overflow in Exp.
func sigmoid(z float64) float64 {
	if z < -500 {
		z = -500
	} else if z > 500 {
		z = 500
	}
	return 1 / (1 + math.Exp(-z))
}
