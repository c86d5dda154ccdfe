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

// topSegmentCount is how many leading segments by share get highlighted.
const topSegmentCount = 3

// GetSegmentAnalytics runs the market-segment suite: per-segment booking
// share, stay behavior averages, and cancellation rate, ordered by share
// descending.
func (db *DB) GetSegmentAnalytics(ctx context.Context) (*models.SegmentAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}

	query := `
	SELECT
		market_segment_type,
		COUNT(*) AS bookings,
		COUNT(*) * 1.0 / SUM(COUNT(*)) OVER () AS share,
		AVG(total_nights) AS avg_total_nights,
		AVG(lead_time) AS avg_lead_time,
		AVG(no_of_special_requests) AS avg_requests,
		AVG(no_of_weekend_nights) AS avg_weekend_nights,
		AVG(no_of_week_nights) AS avg_week_nights,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY market_segment_type
	ORDER BY share DESC, market_segment_type`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment profiles: %w", err)
	}
	defer rows.Close()

	var segments []models.SegmentProfile
	for rows.Next() {
		var s models.SegmentProfile
		var canceled int
		if err := rows.Scan(
			&s.Segment, &s.Bookings, &s.Share,
			&s.AvgTotalNights, &s.AvgLeadTime, &s.AvgSpecialRequests,
			&s.AvgWeekendNights, &s.AvgWeekNights, &canceled,
		); err != nil {
			return nil, fmt.Errorf("failed to scan segment profile row: %w", err)
		}
		s.CancellationRate = rate(canceled, s.Bookings)
		segments = append(segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment profile rows: %w", err)
	}

	top := make([]string, 0, topSegmentCount)
	for i := 0; i < len(segments) && i < topSegmentCount; i++ {
		top = append(top, segments[i].Segment)
	}

	return &models.SegmentAnalytics{
		Segments:    segments,
		TopSegments: top,
	}, nil
}
