// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package classify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/cancellarius/internal/classify/algorithms"
	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/features"
	"github.com/tomtom215/cancellarius/internal/logging"
	"github.com/tomtom215/cancellarius/internal/models"
)

// ErrTrainingInProgress indicates Run was called while a previous run on the
// same engine had not finished.
var ErrTrainingInProgress = errors.New("training already in progress")

// Hyperparameter variant names.
const (
	VariantDefault = "default"
	VariantTuned   = "tuned"
)

// trainMetricsThreshold is the fixed threshold used for the reference train
// and validation metrics; the swept threshold only governs test evaluation.
const trainMetricsThreshold = 0.5

// Engine trains and evaluates every enabled (model, variant) pair on one
// stratified partition of the feature matrix.
type Engine struct {
	cfg *config.Config
	mu  sync.Mutex
}

// NewEngine creates a training engine.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run executes the full training workflow and returns the report. A single
// model failure is recorded on its result and the run continues; context
// cancellation aborts the whole run.
func (e *Engine) Run(ctx context.Context, matrix *features.Matrix) (*models.TrainingReport, error) {
	if !e.mu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer e.mu.Unlock()

	start := time.Now()
	t := e.cfg.Training

	split, err := StratifiedSplit(matrix.X, matrix.Y, t.TestSize, t.ValidationSize, e.cfg.App.Seed)
	if err != nil {
		return nil, fmt.Errorf("stratified split: %w", err)
	}

	report := &models.TrainingReport{
		Split: models.SplitSummary{
			Seed:               split.Seed,
			TrainRows:          len(split.YTrain),
			ValidationRows:     len(split.YValidation),
			TestRows:           len(split.YTest),
			TrainPositive:      positiveShare(split.YTrain),
			ValidationPositive: positiveShare(split.YValidation),
			TestPositive:       positiveShare(split.YTest),
		},
		SweepMetric: t.SweepMetric,
	}

	logging.CtxInfo(ctx).
		Int("train_rows", report.Split.TrainRows).
		Int("validation_rows", report.Split.ValidationRows).
		Int("test_rows", report.Split.TestRows).
		Float64("train_positive_share", report.Split.TrainPositive).
		Msg("Dataset partitioned")

	grid := Grid{Min: t.ThresholdMin, Max: t.ThresholdMax, Step: t.ThresholdStep}

	for _, model := range e.enabledModels() {
		for _, variant := range e.enabledVariants() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			result := e.trainOne(ctx, model, variant, split, grid)
			if result.Error != "" {
				// Context errors abort the run; model errors do not.
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logging.Error().
					Str("model", model).
					Str("variant", variant).
					Str("error", result.Error).
					Msg("Model training failed, continuing with remaining models")
			}
			report.Results = append(report.Results, result)
		}
	}

	e.selectBest(report)
	report.DurationSeconds = time.Since(start).Seconds()

	logging.CtxInfo(ctx).
		Str("best_model", report.BestModel).
		Str("best_variant", report.BestVariant).
		Float64("best_threshold", report.BestThreshold).
		Float64("duration_seconds", report.DurationSeconds).
		Msg("Training complete")
	return report, nil
}

// trainOne fits a single (model, variant) pair and evaluates it end to end.
func (e *Engine) trainOne(ctx context.Context, model, variant string, split *Split, grid Grid) models.ModelResult {
	result := models.ModelResult{Model: model, Variant: variant}

	clf, err := e.buildClassifier(model, variant)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Params = clf.Params()

	logging.CtxInfo(ctx).Str("model", model).Str("variant", variant).Msg("Training model")

	fitStart := time.Now()
	if err := clf.Fit(ctx, split.XTrain, split.YTrain); err != nil {
		result.Error = fmt.Sprintf("fit: %v", err)
		return result
	}
	result.FitSeconds = time.Since(fitStart).Seconds()

	trainProbs, err := clf.PredictProba(split.XTrain)
	if err != nil {
		result.Error = fmt.Sprintf("train predictions: %v", err)
		return result
	}
	if result.TrainMetrics, err = EvaluateAt(split.YTrain, trainProbs, trainMetricsThreshold); err != nil {
		result.Error = err.Error()
		return result
	}

	valProbs, err := clf.PredictProba(split.XValidation)
	if err != nil {
		result.Error = fmt.Sprintf("validation predictions: %v", err)
		return result
	}
	if result.ValidationMetrics, err = EvaluateAt(split.YValidation, valProbs, trainMetricsThreshold); err != nil {
		result.Error = err.Error()
		return result
	}

	if result.Sweep, err = Sweep(split.YValidation, valProbs, grid); err != nil {
		result.Error = fmt.Sprintf("threshold sweep: %v", err)
		return result
	}
	best, err := BestThreshold(result.Sweep, e.cfg.Training.SweepMetric)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.BestThreshold = best.Threshold

	if result.ROC, err = ROC(split.YValidation, valProbs, grid); err != nil {
		result.Error = fmt.Sprintf("roc: %v", err)
		return result
	}
	result.AUC = AUC(result.ROC)

	// The test set is only ever scored at the threshold frozen on the
	// validation sweep.
	testProbs, err := clf.PredictProba(split.XTest)
	if err != nil {
		result.Error = fmt.Sprintf("test predictions: %v", err)
		return result
	}
	testMetrics, err := EvaluateAt(split.YTest, testProbs, best.Threshold)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.TestMetrics = &testMetrics

	logging.CtxInfo(ctx).
		Str("model", model).
		Str("variant", variant).
		Float64("best_threshold", best.Threshold).
		Float64("validation_f1", best.Metrics.F1).
		Float64("test_f1", testMetrics.F1).
		Float64("auc", result.AUC).
		Float64("fit_seconds", result.FitSeconds).
		Msg("Model evaluated")
	return result
}

// buildClassifier constructs the classifier for a (model, variant) pair.
// The default variant starts from shipped defaults with any configured
// overrides applied; the tuned variant always uses fixed presets so its
// numbers stay comparable across runs.
func (e *Engine) buildClassifier(model, variant string) (algorithms.Classifier, error) {
	seed := e.cfg.App.Seed

	switch model {
	case "logistic":
		cfg := algorithms.DefaultLogisticConfig()
		cfg.Seed = seed
		if variant == VariantTuned {
			cfg.LearningRate = 0.05
			cfg.Epochs = 200
			cfg.L2 = 0.001
		} else {
			o := e.cfg.Training.Logistic
			if o.LearningRate > 0 {
				cfg.LearningRate = o.LearningRate
			}
			if o.Epochs > 0 {
				cfg.Epochs = o.Epochs
			}
			if o.L2 > 0 {
				cfg.L2 = o.L2
			}
		}
		return algorithms.NewLogisticRegression(cfg), nil

	case "tree":
		cfg := algorithms.DefaultTreeConfig()
		if variant == VariantTuned {
			cfg.Criterion = algorithms.CriterionEntropy
			cfg.MaxDepth = 8
			cfg.MinSamplesSplit = 10
			cfg.MinSamplesLeaf = 5
		} else {
			o := e.cfg.Training.Tree
			if o.Criterion != "" {
				cfg.Criterion = o.Criterion
			}
			if o.MaxDepth > 0 {
				cfg.MaxDepth = o.MaxDepth
			}
			if o.MinSamplesSplit > 0 {
				cfg.MinSamplesSplit = o.MinSamplesSplit
			}
			if o.MinSamplesLeaf > 0 {
				cfg.MinSamplesLeaf = o.MinSamplesLeaf
			}
		}
		return algorithms.NewDecisionTree(cfg), nil

	case "forest":
		cfg := algorithms.DefaultForestConfig()
		cfg.Seed = seed
		if variant == VariantTuned {
			cfg.NEstimators = 200
			cfg.Tree.MaxDepth = 16
			cfg.Tree.MinSamplesLeaf = 2
		} else {
			o := e.cfg.Training.Forest
			if o.Estimators > 0 {
				cfg.NEstimators = o.Estimators
			}
			if o.Criterion != "" {
				cfg.Tree.Criterion = o.Criterion
			}
			if o.MaxDepth > 0 {
				cfg.Tree.MaxDepth = o.MaxDepth
			}
			if o.MinSamplesSplit > 0 {
				cfg.Tree.MinSamplesSplit = o.MinSamplesSplit
			}
			if o.MinSamplesLeaf > 0 {
				cfg.Tree.MinSamplesLeaf = o.MinSamplesLeaf
			}
			if o.MaxFeatures > 0 {
				cfg.MaxFeatures = o.MaxFeatures
			}
			if o.Workers > 0 {
				cfg.Workers = o.Workers
			}
		}
		return algorithms.NewRandomForest(cfg), nil

	default:
		return nil, fmt.Errorf("unknown model %q", model)
	}
}

// selectBest marks the result with the highest sweep-metric value at its best
// threshold; ties keep the earlier result. Failed models never win.
func (e *Engine) selectBest(report *models.TrainingReport) {
	bestValue := -1.0
	for _, r := range report.Results {
		if r.Error != "" {
			continue
		}
		best, err := BestThreshold(r.Sweep, report.SweepMetric)
		if err != nil {
			continue
		}
		v, err := MetricValue(best.Metrics, report.SweepMetric)
		if err != nil {
			continue
		}
		if v > bestValue {
			bestValue = v
			report.BestModel = r.Model
			report.BestVariant = r.Variant
			report.BestThreshold = r.BestThreshold
		}
	}
}

// enabledModels returns the configured models, defaulting to all of them.
func (e *Engine) enabledModels() []string {
	if len(e.cfg.Training.Models) > 0 {
		return e.cfg.Training.Models
	}
	return config.ValidModels
}

// enabledVariants returns the configured variants, defaulting to both.
func (e *Engine) enabledVariants() []string {
	if len(e.cfg.Training.Variants) > 0 {
		return e.cfg.Training.Variants
	}
	return config.ValidVariants
}
