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
	"runtime"
	"sync"
)

// ForestConfig contains configuration for the random forest.
type ForestConfig struct {
	// NEstimators is the number of bootstrap trees.
	// Default: 100.
	NEstimators int

	// MaxFeatures is the number of features considered per split;
	// 0 means sqrt of the feature count.
	// Default: 0.
	MaxFeatures int

	// Tree configures the individual trees.
	Tree TreeConfig

	// Seed drives the bootstrap samples and feature subsampling. Tree i
	// uses seed Seed+i, so the fitted ensemble is reproducible.
	// Default: 42.
	Seed int64

	// Workers caps concurrent tree fits; 0 means GOMAXPROCS.
	// Default: 0.
	Workers int
}

// DefaultForestConfig returns default random forest configuration.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NEstimators: 100,
		MaxFeatures: 0,
		Tree:        DefaultTreeConfig(),
		Seed:        42,
		Workers:     0,
	}
}

// Validate checks the configuration.
func (c ForestConfig) Validate() error {
	if c.NEstimators < 1 {
		return fmt.Errorf("n estimators must be >= 1 (got %d)", c.NEstimators)
	}
	if c.MaxFeatures < 0 {
		return fmt.Errorf("max features must be >= 0 (got %d)", c.MaxFeatures)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	return c.Tree.Validate()
}

// RandomForest is a bootstrap aggregation of CART trees. Each tree trains on
// a bootstrap sample of the training set and considers a random feature
// subset at every split; the ensemble probability is the mean of the tree
// leaf probabilities.
type RandomForest struct {
	BaseClassifier
	config ForestConfig

	trees []*treeNode
	dims  int
}

// NewRandomForest creates a random forest classifier.
// Zero-valued config fields fall back to defaults.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	def := DefaultForestConfig()
	if cfg.NEstimators <= 0 {
		cfg.NEstimators = def.NEstimators
	}
	if cfg.Tree.Criterion == "" {
		cfg.Tree.Criterion = def.Tree.Criterion
	}
	if cfg.Tree.MinSamplesSplit < 2 {
		cfg.Tree.MinSamplesSplit = def.Tree.MinSamplesSplit
	}
	if cfg.Tree.MinSamplesLeaf < 1 {
		cfg.Tree.MinSamplesLeaf = def.Tree.MinSamplesLeaf
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}

	return &RandomForest{
		BaseClassifier: NewBaseClassifier("forest"),
		config:         cfg,
	}
}

// Params returns the effective hyperparameters.
func (f *RandomForest) Params() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      f.config.NEstimators,
		"max_features":      f.config.MaxFeatures,
		"criterion":         f.config.Tree.Criterion,
		"max_depth":         f.config.Tree.MaxDepth,
		"min_samples_split": f.config.Tree.MinSamplesSplit,
		"min_samples_leaf":  f.config.Tree.MinSamplesLeaf,
		"seed":              f.config.Seed,
	}
}

// Fit grows the ensemble. Trees fit concurrently, bounded by Workers, and
// tree i seeds its RNG with Seed+i so concurrency does not affect the result.
func (f *RandomForest) Fit(ctx context.Context, x [][]float64, y []int) error {
	if err := validateTrainingSet(x, y); err != nil {
		return err
	}
	if err := f.config.Validate(); err != nil {
		return err
	}

	f.acquireTrainLock()
	defer f.releaseTrainLock()

	dims := len(x[0])
	maxFeatures := f.config.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = int(math.Sqrt(float64(dims)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	workers := f.config.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]*treeNode, f.config.NEstimators)
	errs := make([]error, f.config.NEstimators)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := 0; i < f.config.NEstimators; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			trees[i], errs[i] = f.fitTree(ctx, x, y, f.config.Seed+int64(i), maxFeatures)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	f.trees = trees
	f.dims = dims
	f.markTrained()
	return nil
}

// fitTree grows one bootstrap tree.
func (f *RandomForest) fitTree(ctx context.Context, x [][]float64, y []int, seed int64, maxFeatures int) (*treeNode, error) {
	rng := rand.New(rand.NewSource(seed))

	sample := make([]int, len(x))
	for i := range sample {
		sample[i] = rng.Intn(len(x))
	}

	builder := &treeBuilder{
		x:           x,
		y:           y,
		config:      f.config.Tree,
		ctx:         ctx,
		criterion:   criterionFunc(f.config.Tree.Criterion),
		maxFeatures: maxFeatures,
		rng:         rng,
	}
	return builder.build(sample, 0)
}

// PredictProba returns the mean tree probability for each sample.
func (f *RandomForest) PredictProba(x [][]float64) ([]float64, error) {
	f.acquirePredictLock()
	defer f.releasePredictLock()

	if !f.trained {
		return nil, ErrNotTrained
	}

	probs := make([]float64, len(x))
	for i, row := range x {
		if len(row) != f.dims {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), f.dims)
		}
		sum := 0.0
		for _, tree := range f.trees {
			sum += tree.predict(row)
		}
		probs[i] = sum / float64(len(f.trees))
	}
	return probs, nil
}

// Predict binarizes PredictProba at the threshold.
func (f *RandomForest) Predict(x [][]float64, threshold float64) ([]int, error) {
	probs, err := f.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return binarize(probs, threshold), nil
}
