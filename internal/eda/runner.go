// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package eda executes the exploratory analysis suites against the DuckDB
// store and assembles their results into a single report.
//
// Suites run sequentially in a fixed order so the text report reads the same
// way on every run. Each suite is timed; a suite failure aborts the run with
// the suite name attached to the error.
package eda

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/database"
	"github.com/tomtom215/cancellarius/internal/features"
	"github.com/tomtom215/cancellarius/internal/logging"
	"github.com/tomtom215/cancellarius/internal/models"
)

// Runner executes the enabled analysis suites.
type Runner struct {
	cfg *config.Config
	db  *database.DB
}

// NewRunner creates a suite runner over the given store.
func NewRunner(cfg *config.Config, db *database.DB) *Runner {
	return &Runner{cfg: cfg, db: db}
}

// Run executes every enabled suite in order and collects the report.
func (r *Runner) Run(ctx context.Context) (*models.EDAReport, error) {
	report := &models.EDAReport{ReferenceYear: r.cfg.EDA.ReferenceYear}

	suites := []struct {
		name string
		run  func(context.Context, *models.EDAReport) error
	}{
		{"cancellation", r.runCancellation},
		{"segments", r.runSegments},
		{"revenue", r.runRevenue},
		{"repeat", r.runRepeat},
		{"seasonality", r.runSeasonality},
		{"leadtime", r.runLeadTime},
		{"requests", r.runRequests},
		{"profile", r.runProfile},
	}

	for _, suite := range suites {
		if !r.cfg.SuiteEnabled(suite.name) {
			logging.Debug().Str("suite", suite.name).Msg("Suite disabled, skipping")
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := suite.run(ctx, report); err != nil {
			return nil, fmt.Errorf("suite %s: %w", suite.name, err)
		}
		elapsed := time.Since(start)

		report.Timings = append(report.Timings, models.SuiteTiming{
			Suite:           suite.name,
			DurationSeconds: elapsed.Seconds(),
		})
		logging.CtxInfo(ctx).
			Str("suite", suite.name).
			Dur("duration", elapsed).
			Msg("Suite complete")
	}

	return report, nil
}

func (r *Runner) runCancellation(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetCancellationAnalytics(ctx, r.cfg.EDA.ReferenceYear)
	if err != nil {
		return err
	}
	report.Cancellation = a
	return nil
}

func (r *Runner) runSegments(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetSegmentAnalytics(ctx)
	if err != nil {
		return err
	}
	report.Segments = a
	return nil
}

func (r *Runner) runRevenue(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetRevenueAnalytics(ctx, r.cfg.EDA.ReferenceYear)
	if err != nil {
		return err
	}
	report.Revenue = a
	return nil
}

func (r *Runner) runRepeat(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetRepeatAnalytics(ctx, r.cfg.EDA.ReferenceYear)
	if err != nil {
		return err
	}
	report.Repeat = a
	return nil
}

func (r *Runner) runSeasonality(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetSeasonalityAnalytics(ctx, r.cfg.EDA.ReferenceYear)
	if err != nil {
		return err
	}
	report.Seasonality = a
	return nil
}

func (r *Runner) runLeadTime(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetLeadTimeAnalytics(ctx, r.cfg.EDA.LeadTimeBins)
	if err != nil {
		return err
	}
	report.LeadTime = a
	return nil
}

func (r *Runner) runRequests(ctx context.Context, report *models.EDAReport) error {
	a, err := r.db.GetRequestsAnalytics(ctx)
	if err != nil {
		return err
	}
	report.Requests = a
	return nil
}

// runProfile reads the engineered rows back from the store so the profile
// covers exactly what the SQL suites saw.
func (r *Runner) runProfile(ctx context.Context, report *models.EDAReport) error {
	bookings, err := r.db.GetBookings(ctx)
	if err != nil {
		return err
	}
	report.Profile = features.Profile(bookings)
	return nil
}
