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

// GetRequestsAnalytics runs the special-requests suite: cancellation behavior
// grouped by request count (0, 1, 2, 3+), the with/without split, and the mean
// request count per market segment.
func (db *DB) GetRequestsAnalytics(ctx context.Context) (*models.RequestsAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}

	byCount, err := db.queryRequestsByCount(ctx)
	if err != nil {
		return nil, err
	}

	split, err := db.queryRequestsSplit(ctx)
	if err != nil {
		return nil, err
	}

	bySegment, err := db.queryRequestsBySegment(ctx)
	if err != nil {
		return nil, err
	}

	return &models.RequestsAnalytics{
		ByCount:   byCount,
		Split:     split,
		BySegment: bySegment,
	}, nil
}

func (db *DB) queryRequestsByCount(ctx context.Context) ([]models.RequestCountProfile, error) {
	// Counts above two are folded into one "3+" bucket; sort_key keeps the
	// display buckets in natural order.
	query := `
	SELECT
		CASE WHEN no_of_special_requests >= 3 THEN '3+'
		     ELSE CAST(no_of_special_requests AS VARCHAR) END AS requests,
		LEAST(no_of_special_requests, 3) AS sort_key,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled,
		AVG(avg_price_per_room) AS avg_price,
		AVG(total_nights) AS avg_total_nights
	FROM bookings
	GROUP BY requests, sort_key
	ORDER BY sort_key`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests by count: %w", err)
	}
	defer rows.Close()

	var results []models.RequestCountProfile
	for rows.Next() {
		var p models.RequestCountProfile
		var sortKey int
		if err := rows.Scan(&p.Requests, &sortKey, &p.Bookings, &p.Canceled, &p.AvgPrice, &p.AvgTotalNights); err != nil {
			return nil, fmt.Errorf("failed to scan requests by count row: %w", err)
		}
		p.CancellationRate = rate(p.Canceled, p.Bookings)
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests by count rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryRequestsSplit(ctx context.Context) ([]models.RequestsSplit, error) {
	query := `
	SELECT
		no_of_special_requests > 0 AS with_requests,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY with_requests
	ORDER BY with_requests`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests split: %w", err)
	}
	defer rows.Close()

	var results []models.RequestsSplit
	for rows.Next() {
		var s models.RequestsSplit
		if err := rows.Scan(&s.WithRequests, &s.Bookings, &s.Canceled); err != nil {
			return nil, fmt.Errorf("failed to scan requests split row: %w", err)
		}
		s.CancellationRate = rate(s.Canceled, s.Bookings)
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests split rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryRequestsBySegment(ctx context.Context) ([]models.SegmentRequests, error) {
	query := `
	SELECT
		market_segment_type,
		COUNT(*) AS bookings,
		AVG(no_of_special_requests) AS avg_special_requests
	FROM bookings
	GROUP BY market_segment_type
	ORDER BY avg_special_requests DESC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests by segment: %w", err)
	}
	defer rows.Close()

	var results []models.SegmentRequests
	for rows.Next() {
		var s models.SegmentRequests
		if err := rows.Scan(&s.Segment, &s.Bookings, &s.AvgSpecialRequests); err != nil {
			return nil, fmt.Errorf("failed to scan requests by segment row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests by segment rows: %w", err)
	}
	return results, nil
}
