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
	"sort"
)

// Impurity criteria accepted by DecisionTree and RandomForest.
const (
	CriterionGini    = "gini"
	CriterionEntropy = "entropy"
)

// TreeConfig contains configuration for the CART decision tree.
type TreeConfig struct {
	// Criterion is the impurity measure: gini or entropy.
	// Default: gini.
	Criterion string

	// MaxDepth limits tree depth; 0 means unlimited.
	// Default: 12.
	MaxDepth int

	// MinSamplesSplit is the minimum number of samples a node needs to be
	// considered for splitting.
	// Default: 2.
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum number of samples each child of a
	// split must keep.
	// Default: 1.
	MinSamplesLeaf int
}

// DefaultTreeConfig returns default decision tree configuration.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		Criterion:       CriterionGini,
		MaxDepth:        12,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

// Validate checks the configuration.
func (c TreeConfig) Validate() error {
	if c.Criterion != CriterionGini && c.Criterion != CriterionEntropy {
		return fmt.Errorf("criterion must be gini or entropy (got %q)", c.Criterion)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0 (got %d)", c.MaxDepth)
	}
	if c.MinSamplesSplit < 2 {
		return fmt.Errorf("min samples split must be >= 2 (got %d)", c.MinSamplesSplit)
	}
	if c.MinSamplesLeaf < 1 {
		return fmt.Errorf("min samples leaf must be >= 1 (got %d)", c.MinSamplesLeaf)
	}
	return nil
}

// treeNode is one node of a fitted CART tree. Leaves carry the positive
// fraction of their training samples; internal nodes route on
// x[feature] <= threshold.
type treeNode struct {
	leaf      bool
	proba     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// DecisionTree is a CART binary classification tree. Split thresholds are
// midpoints between consecutive distinct feature values; leaf probabilities
// are the positive fraction of the samples that reached the leaf.
type DecisionTree struct {
	BaseClassifier
	config TreeConfig

	root *treeNode
	dims int
}

// NewDecisionTree creates a decision tree classifier.
// Zero-valued config fields fall back to defaults.
func NewDecisionTree(cfg TreeConfig) *DecisionTree {
	def := DefaultTreeConfig()
	if cfg.Criterion == "" {
		cfg.Criterion = def.Criterion
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = def.MinSamplesSplit
	}
	if cfg.MinSamplesLeaf < 1 {
		cfg.MinSamplesLeaf = def.MinSamplesLeaf
	}

	return &DecisionTree{
		BaseClassifier: NewBaseClassifier("tree"),
		config:         cfg,
	}
}

// Params returns the effective hyperparameters.
func (t *DecisionTree) Params() map[string]interface{} {
	return map[string]interface{}{
		"criterion":         t.config.Criterion,
		"max_depth":         t.config.MaxDepth,
		"min_samples_split": t.config.MinSamplesSplit,
		"min_samples_leaf":  t.config.MinSamplesLeaf,
	}
}

// Fit grows the tree on the full training set.
func (t *DecisionTree) Fit(ctx context.Context, x [][]float64, y []int) error {
	if err := validateTrainingSet(x, y); err != nil {
		return err
	}
	if err := t.config.Validate(); err != nil {
		return err
	}

	t.acquireTrainLock()
	defer t.releaseTrainLock()

	indices := make([]int, len(x))
	for i := range indices {
		indices[i] = i
	}

	builder := &treeBuilder{
		x:         x,
		y:         y,
		config:    t.config,
		ctx:       ctx,
		criterion: criterionFunc(t.config.Criterion),
	}
	root, err := builder.build(indices, 0)
	if err != nil {
		return err
	}

	t.root = root
	t.dims = len(x[0])
	t.markTrained()
	return nil
}

// PredictProba returns each sample's leaf probability.
func (t *DecisionTree) PredictProba(x [][]float64) ([]float64, error) {
	t.acquirePredictLock()
	defer t.releasePredictLock()

	if !t.trained {
		return nil, ErrNotTrained
	}

	probs := make([]float64, len(x))
	for i, row := range x {
		if len(row) != t.dims {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), t.dims)
		}
		probs[i] = t.root.predict(row)
	}
	return probs, nil
}

// Predict binarizes PredictProba at the threshold.
func (t *DecisionTree) Predict(x [][]float64, threshold float64) ([]int, error) {
	probs, err := t.PredictProba(x)
	if err != nil {
		return nil, err
	}
	return binarize(probs, threshold), nil
}

// predict routes one sample to its leaf.
func (n *treeNode) predict(row []float64) float64 {
	node := n
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.proba
}

// treeBuilder grows CART trees. The forest reuses it with a feature
// subsample per split (maxFeatures > 0) and a per-tree RNG.
type treeBuilder struct {
	x         [][]float64
	y         []int
	config    TreeConfig
	ctx       context.Context
	criterion func(pos, total int) float64

	// Feature subsampling for forests; 0 considers every feature.
	maxFeatures int
	rng         *rand.Rand
}

// build recursively grows the subtree over the given sample indices.
func (b *treeBuilder) build(indices []int, depth int) (*treeNode, error) {
	if contextCancelled(b.ctx) {
		return nil, b.ctx.Err()
	}

	pos := 0
	for _, i := range indices {
		pos += b.y[i]
	}
	proba := float64(pos) / float64(len(indices))

	if pos == 0 || pos == len(indices) ||
		len(indices) < b.config.MinSamplesSplit ||
		(b.config.MaxDepth > 0 && depth >= b.config.MaxDepth) {
		return &treeNode{leaf: true, proba: proba}, nil
	}

	feature, threshold, ok := b.bestSplit(indices, pos)
	if !ok {
		return &treeNode{leaf: true, proba: proba}, nil
	}

	var left, right []int
	for _, i := range indices {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	leftNode, err := b.build(left, depth+1)
	if err != nil {
		return nil, err
	}
	rightNode, err := b.build(right, depth+1)
	if err != nil {
		return nil, err
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      leftNode,
		right:     rightNode,
	}, nil
}

// bestSplit finds the (feature, threshold) pair with the lowest weighted
// child impurity. Candidate thresholds are midpoints between consecutive
// distinct values of each considered feature.
func (b *treeBuilder) bestSplit(indices []int, pos int) (feature int, threshold float64, ok bool) {
	total := len(indices)
	bestImpurity := math.Inf(1)

	type valueLabel struct {
		value float64
		label int
	}
	sorted := make([]valueLabel, total)

	for _, f := range b.candidateFeatures(len(b.x[0])) {
		for i, idx := range indices {
			sorted[i] = valueLabel{value: b.x[idx][f], label: b.y[idx]}
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })

		// Walk split positions left to right, tracking left-side counts.
		leftPos := 0
		for i := 1; i < total; i++ {
			leftPos += sorted[i-1].label
			if sorted[i].value == sorted[i-1].value {
				continue
			}
			if i < b.config.MinSamplesLeaf || total-i < b.config.MinSamplesLeaf {
				continue
			}

			impurity := (float64(i)*b.criterion(leftPos, i) +
				float64(total-i)*b.criterion(pos-leftPos, total-i)) / float64(total)
			if impurity < bestImpurity {
				bestImpurity = impurity
				feature = f
				threshold = (sorted[i-1].value + sorted[i].value) / 2
				ok = true
			}
		}
	}

	// Zero-gain splits are kept: both children are strictly smaller, and a
	// later split may still separate the classes (e.g. XOR-shaped data).
	return feature, threshold, ok
}

// candidateFeatures returns the features considered at one split: all of
// them, or a random subset of maxFeatures for forests.
func (b *treeBuilder) candidateFeatures(dims int) []int {
	features := make([]int, dims)
	for i := range features {
		features[i] = i
	}
	if b.maxFeatures <= 0 || b.maxFeatures >= dims || b.rng == nil {
		return features
	}
	b.rng.Shuffle(dims, func(i, j int) {
		features[i], features[j] = features[j], features[i]
	})
	return features[:b.maxFeatures]
}

// criterionFunc returns the impurity function for a node with pos positive
// samples out of total.
func criterionFunc(name string) func(pos, total int) float64 {
	if name == CriterionEntropy {
		return entropyImpurity
	}
	return giniImpurity
}

func giniImpurity(pos, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(pos) / float64(total)
	return 2 * p * (1 - p)
}

func entropyImpurity(pos, total int) float64 {
	if total == 0 || pos == 0 || pos == total {
		return 0
	}
	p := float64(pos) / float64(total)
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}
