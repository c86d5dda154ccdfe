// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/tomtom215/cancellarius/internal/models"
)

// registry keeps pipeline metrics separate from the default registry, so a
// push carries exactly the run's own series.
var (
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)
)

// Rejection reasons for RowsRejected.
const (
	ReasonDropped   = "dropped"
	ReasonDuplicate = "duplicate"
)

var (
	// Ingest Metrics
	RowsIngested = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "cancellarius_rows_ingested_total",
			Help: "Total number of rows stored in the analytical store",
		},
	)

	RowsRejected = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cancellarius_rows_rejected_total",
			Help: "Total number of source rows not stored",
		},
		[]string{"reason"}, // "dropped", "duplicate"
	)

	DatasetRows = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "cancellarius_dataset_rows",
			Help: "Number of bookings in the analytical store",
		},
	)

	// Pipeline Metrics
	StageDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cancellarius_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage"}, // "ingest", "eda", "train", "report"
	)

	SuiteDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cancellarius_suite_duration_seconds",
			Help:    "Duration of analysis suites in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"suite"},
	)

	// Training Metrics
	ModelAccuracy = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cancellarius_model_accuracy",
			Help: "Held-out test accuracy per trained model",
		},
		[]string{"model", "variant"},
	)

	ModelF1 = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cancellarius_model_f1",
			Help: "Held-out test F1 per trained model",
		},
		[]string{"model", "variant"},
	)

	ModelAUC = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cancellarius_model_auc",
			Help: "Validation ROC AUC per trained model",
		},
		[]string{"model", "variant"},
	)
)

// ObserveStage records one pipeline stage duration.
func ObserveStage(stage string, seconds float64) {
	StageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordIngest records the ingest counters from a load summary.
func RecordIngest(summary *models.IngestSummary) {
	if summary == nil {
		return
	}
	RowsIngested.Add(float64(summary.ValidRows))
	RowsRejected.WithLabelValues(ReasonDropped).Add(float64(summary.DroppedRows))
	RowsRejected.WithLabelValues(ReasonDuplicate).Add(float64(summary.DuplicateRows))
	DatasetRows.Set(float64(summary.ValidRows))
}

// RecordSuites records per-suite timings from the analysis report.
func RecordSuites(timings []models.SuiteTiming) {
	for _, t := range timings {
		SuiteDuration.WithLabelValues(t.Suite).Observe(t.DurationSeconds)
	}
}

// RecordTraining records per-model gauges. Failed models are skipped.
func RecordTraining(report *models.TrainingReport) {
	if report == nil {
		return
	}
	for _, r := range report.Results {
		if r.Error != "" {
			continue
		}
		ModelAUC.WithLabelValues(r.Model, r.Variant).Set(r.AUC)
		if r.TestMetrics != nil {
			ModelAccuracy.WithLabelValues(r.Model, r.Variant).Set(r.TestMetrics.Accuracy)
			ModelF1.WithLabelValues(r.Model, r.Variant).Set(r.TestMetrics.F1)
		}
	}
}

// Push sends the collected metrics to the Pushgateway. An empty URL is a
// no-op. Callers log the returned error; it must not abort the run.
func Push(url, job string) error {
	if url == "" {
		return nil
	}
	if job == "" {
		job = "cancellarius"
	}
	if err := push.New(url, job).Gatherer(registry).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

// Registry exposes the pipeline registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}
