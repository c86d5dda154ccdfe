// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

import (
	"time"
)

// IngestSummary condenses the CSV load for the run report
type IngestSummary struct {
	TotalRows       int     `json:"total_rows"`
	ValidRows       int     `json:"valid_rows"`
	DroppedRows     int     `json:"dropped_rows"`
	DuplicateRows   int     `json:"duplicate_rows"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// SuiteTiming records one analytics suite's execution
type SuiteTiming struct {
	Suite           string  `json:"suite"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// EDAReport collects the outputs of every enabled analytics suite. Disabled
// suites are nil and omitted from JSON output.
type EDAReport struct {
	ReferenceYear int                    `json:"reference_year"`
	Cancellation  *CancellationAnalytics `json:"cancellation,omitempty"`
	Segments      *SegmentAnalytics      `json:"segments,omitempty"`
	Revenue       *RevenueAnalytics      `json:"revenue,omitempty"`
	Repeat        *RepeatAnalytics       `json:"repeat,omitempty"`
	Seasonality   *SeasonalityAnalytics  `json:"seasonality,omitempty"`
	LeadTime      *LeadTimeAnalytics     `json:"lead_time,omitempty"`
	Requests      *RequestsAnalytics     `json:"requests,omitempty"`
	Profile       *DatasetProfile        `json:"profile,omitempty"`
	Timings       []SuiteTiming          `json:"timings,omitempty"`
}

// RunReport is the envelope for one complete pipeline run
type RunReport struct {
	RunID           string          `json:"run_id"`
	Version         string          `json:"version"`
	Mode            string          `json:"mode"`
	DataPath        string          `json:"data_path"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      time.Time       `json:"finished_at"`
	DurationSeconds float64         `json:"duration_seconds"`
	Ingest          *IngestSummary  `json:"ingest,omitempty"`
	EDA             *EDAReport      `json:"eda,omitempty"`
	Training        *TrainingReport `json:"training,omitempty"`
}
