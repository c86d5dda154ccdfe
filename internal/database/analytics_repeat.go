// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/cancellarius/internal/models"
)

// GetRepeatAnalytics runs the repeated-guest suite: how large the returning
// population is, when it books, what it eats, which segments it comes
// through, and whether a longer history predicts cancellation.
func (db *DB) GetRepeatAnalytics(ctx context.Context, referenceYear int) (*models.RepeatAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}

	result := &models.RepeatAnalytics{}

	overviewQuery := `
	SELECT
		COUNT(*) AS total,
		SUM(repeated_guest) AS repeated
	FROM bookings`
	if err := db.conn.QueryRowContext(ctx, overviewQuery).Scan(&result.TotalBookings, &result.RepeatedBookings); err != nil {
		return nil, fmt.Errorf("failed to query repeat overview: %w", err)
	}
	result.RepeatedShare = rate(result.RepeatedBookings, result.TotalBookings)

	// Pearson correlation between prior-stay count and the cancellation
	// outcome among returning guests. NULL when either side has zero
	// variance (e.g. no returning guest ever canceled); reported as 0.
	corrQuery := `
	SELECT corr(
		CAST(previous_reservations AS DOUBLE),
		CASE WHEN booking_status = 'Canceled' THEN 1.0 ELSE 0.0 END
	)
	FROM bookings
	WHERE repeated_guest = 1`
	var corr sql.NullFloat64
	if err := db.conn.QueryRowContext(ctx, corrQuery).Scan(&corr); err != nil {
		return nil, fmt.Errorf("failed to query history correlation: %w", err)
	}
	if corr.Valid {
		result.HistoryCorrelation = corr.Float64
	}

	monthly, err := db.queryMonthlyRepeatShare(ctx, referenceYear)
	if err != nil {
		return nil, err
	}
	result.MonthlyShare = monthly

	mealPlans, err := db.queryRepeatMealPlans(ctx)
	if err != nil {
		return nil, err
	}
	result.MealPlans = mealPlans

	bySegment, err := db.queryRepeatSegments(ctx)
	if err != nil {
		return nil, err
	}
	result.BySegment = bySegment

	byPrevious, err := db.queryPreviousReservationsProfile(ctx)
	if err != nil {
		return nil, err
	}
	result.ByPreviousReservations = byPrevious

	return result, nil
}

func (db *DB) queryMonthlyRepeatShare(ctx context.Context, referenceYear int) ([]models.MonthlyRepeatShare, error) {
	query := `
	SELECT
		arrival_month,
		COUNT(*) AS bookings,
		SUM(repeated_guest) AS repeated
	FROM bookings
	WHERE arrival_year = ?
	GROUP BY arrival_month
	ORDER BY arrival_month`

	rows, err := db.conn.QueryContext(ctx, query, referenceYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly repeat share: %w", err)
	}
	defer rows.Close()

	var results []models.MonthlyRepeatShare
	for rows.Next() {
		var m models.MonthlyRepeatShare
		if err := rows.Scan(&m.Month, &m.Bookings, &m.Repeated); err != nil {
			return nil, fmt.Errorf("failed to scan monthly repeat row: %w", err)
		}
		m.Share = rate(m.Repeated, m.Bookings)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly repeat rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryRepeatMealPlans(ctx context.Context) ([]models.MealPlanShare, error) {
	query := `
	SELECT
		type_of_meal_plan,
		COUNT(*) AS bookings,
		COUNT(*) * 1.0 / SUM(COUNT(*)) OVER () AS share
	FROM bookings
	WHERE repeated_guest = 1
	GROUP BY type_of_meal_plan
	ORDER BY bookings DESC, type_of_meal_plan`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repeat meal plans: %w", err)
	}
	defer rows.Close()

	var results []models.MealPlanShare
	for rows.Next() {
		var m models.MealPlanShare
		if err := rows.Scan(&m.MealPlan, &m.Bookings, &m.Share); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meal plan rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryRepeatSegments(ctx context.Context) ([]models.SegmentShare, error) {
	query := `
	SELECT
		market_segment_type,
		COUNT(*) AS bookings,
		COUNT(*) * 1.0 / SUM(COUNT(*)) OVER () AS share
	FROM bookings
	WHERE repeated_guest = 1
	GROUP BY market_segment_type
	ORDER BY bookings DESC, market_segment_type`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repeat segments: %w", err)
	}
	defer rows.Close()

	var results []models.SegmentShare
	for rows.Next() {
		var s models.SegmentShare
		if err := rows.Scan(&s.Segment, &s.Bookings, &s.Share); err != nil {
			return nil, fmt.Errorf("failed to scan repeat segment row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repeat segment rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryPreviousReservationsProfile(ctx context.Context) ([]models.PreviousReservationsProfile, error) {
	query := `
	SELECT
		previous_reservations,
		COUNT(*) AS bookings,
		AVG(lead_time) AS avg_lead_time,
		AVG(avg_price_per_room) AS avg_price,
		AVG(total_nights) AS avg_total_nights
	FROM bookings
	WHERE repeated_guest = 1
	GROUP BY previous_reservations
	ORDER BY previous_reservations`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query previous reservations profile: %w", err)
	}
	defer rows.Close()

	var results []models.PreviousReservationsProfile
	for rows.Next() {
		var p models.PreviousReservationsProfile
		if err := rows.Scan(&p.PreviousReservations, &p.Bookings, &p.AvgLeadTime, &p.AvgPrice, &p.AvgTotalNights); err != nil {
			return nil, fmt.Errorf("failed to scan previous reservations row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating previous reservations rows: %w", err)
	}
	return results, nil
}
