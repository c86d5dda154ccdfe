// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

/*
Package metrics provides Prometheus instrumentation for the pipeline.

A batch run has no scrape endpoint to expose, so metrics are collected on a
package-private registry and pushed to a Pushgateway at the end of the run
when METRICS_PUSHGATEWAY_URL is configured. A push failure is reported to the
caller but must never fail the run itself.

# Available Metrics

Ingest:
  - cancellarius_rows_ingested_total: Rows stored (counter)
  - cancellarius_rows_rejected_total: Rows not stored (counter)
    Labels: reason (dropped, duplicate)
  - cancellarius_dataset_rows: Rows in the analytical store (gauge)

Pipeline:
  - cancellarius_stage_duration_seconds: Stage duration (histogram)
    Labels: stage (ingest, eda, train, report)
  - cancellarius_suite_duration_seconds: Analysis suite duration (histogram)
    Labels: suite

Training:
  - cancellarius_model_accuracy: Test accuracy per model (gauge)
    Labels: model, variant
  - cancellarius_model_f1: Test F1 per model (gauge)
    Labels: model, variant
  - cancellarius_model_auc: Validation ROC AUC per model (gauge)
    Labels: model, variant

# Usage

	metrics.RecordIngest(summary)
	metrics.ObserveStage("ingest", elapsed.Seconds())
	...
	if err := metrics.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
	    logging.Warn().Err(err).Msg("Metrics push failed")
	}

All recording functions are safe for concurrent use.
*/
package metrics
