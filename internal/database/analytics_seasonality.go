// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/cancellarius/internal/models"
)

// GetSeasonalityAnalytics runs the seasonality suite: reference-year monthly
// volume, price, and cancellation behavior, plus all-years per-month stay
// averages.
func (db *DB) GetSeasonalityAnalytics(ctx context.Context, referenceYear int) (*models.SeasonalityAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}

	monthly, err := db.queryMonthlySeason(ctx, referenceYear)
	if err != nil {
		return nil, err
	}

	allYears, err := db.queryAllYearsMonthly(ctx)
	if err != nil {
		return nil, err
	}

	return &models.SeasonalityAnalytics{
		ReferenceYear: referenceYear,
		Monthly:       monthly,
		AllYears:      allYears,
	}, nil
}

func (db *DB) queryMonthlySeason(ctx context.Context, referenceYear int) ([]models.MonthlySeason, error) {
	query := `
	SELECT
		arrival_month,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled,
		AVG(avg_price_per_room) AS avg_price
	FROM bookings
	WHERE arrival_year = ?
	GROUP BY arrival_month
	ORDER BY arrival_month`

	rows, err := db.conn.QueryContext(ctx, query, referenceYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly seasonality: %w", err)
	}
	defer rows.Close()

	var results []models.MonthlySeason
	for rows.Next() {
		var m models.MonthlySeason
		if err := rows.Scan(&m.Month, &m.Bookings, &m.Canceled, &m.AvgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan monthly seasonality row: %w", err)
		}
		m.CancellationRate = rate(m.Canceled, m.Bookings)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly seasonality rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryAllYearsMonthly(ctx context.Context) ([]models.MonthlyAverages, error) {
	query := `
	SELECT
		arrival_month,
		AVG(total_nights) AS avg_total_nights,
		AVG(lead_time) AS avg_lead_time,
		AVG(no_of_special_requests) AS avg_requests
	FROM bookings
	GROUP BY arrival_month
	ORDER BY arrival_month`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all-years monthly averages: %w", err)
	}
	defer rows.Close()

	var results []models.MonthlyAverages
	for rows.Next() {
		var m models.MonthlyAverages
		if err := rows.Scan(&m.Month, &m.AvgTotalNights, &m.AvgLeadTime, &m.AvgSpecialRequests); err != nil {
			return nil, fmt.Errorf("failed to scan monthly averages row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly averages rows: %w", err)
	}
	return results, nil
}
