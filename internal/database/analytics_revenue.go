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

// Booking revenue is avg_price_per_room multiplied by total_nights. Realized
// sums completed stays; lost sums canceled ones.
const revenueSelectSQL = `
	COUNT(*) AS bookings,
	SUM(CASE WHEN booking_status = 'Not_Canceled' THEN avg_price_per_room * total_nights ELSE 0 END) AS realized,
	SUM(CASE WHEN booking_status = 'Canceled' THEN avg_price_per_room * total_nights ELSE 0 END) AS lost`

// GetRevenueAnalytics runs the revenue suite: realized vs lost revenue in
// total, by segment, by children flag, by special-requests flag, by
// repeated-guest flag, and monthly within the reference year.
func (db *DB) GetRevenueAnalytics(ctx context.Context, referenceYear int) (*models.RevenueAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}

	result := &models.RevenueAnalytics{}

	totalQuery := "SELECT " + revenueSelectSQL + " FROM bookings"
	var totalBookings int
	if err := db.conn.QueryRowContext(ctx, totalQuery).Scan(&totalBookings, &result.TotalRealized, &result.TotalLost); err != nil {
		return nil, fmt.Errorf("failed to query total revenue: %w", err)
	}

	bySegment, err := db.querySegmentRevenue(ctx)
	if err != nil {
		return nil, err
	}
	result.BySegment = bySegment

	byChildren, err := db.queryFlagRevenue(ctx, "has_children")
	if err != nil {
		return nil, err
	}
	for _, r := range byChildren {
		result.ByChildren = append(result.ByChildren, models.ChildrenRevenue{
			WithChildren: r.flag, Bookings: r.bookings, Realized: r.realized, Lost: r.lost,
		})
	}

	byRequests, err := db.queryFlagRevenue(ctx, "no_of_special_requests > 0")
	if err != nil {
		return nil, err
	}
	for _, r := range byRequests {
		result.ByRequests = append(result.ByRequests, models.RequestsRevenue{
			WithRequests: r.flag, Bookings: r.bookings, Realized: r.realized, Lost: r.lost,
		})
	}

	byRepeat, err := db.queryFlagRevenue(ctx, "repeated_guest = 1")
	if err != nil {
		return nil, err
	}
	for _, r := range byRepeat {
		result.ByRepeatedGuest = append(result.ByRepeatedGuest, models.RepeatRevenue{
			RepeatedGuest: r.flag, Bookings: r.bookings, Realized: r.realized, Lost: r.lost,
		})
	}

	monthly, err := db.queryMonthlyRevenue(ctx, referenceYear)
	if err != nil {
		return nil, err
	}
	result.MonthlyRefYear = monthly

	return result, nil
}

func (db *DB) querySegmentRevenue(ctx context.Context) ([]models.SegmentRevenue, error) {
	query := `
	SELECT market_segment_type, ` + revenueSelectSQL + `
	FROM bookings
	GROUP BY market_segment_type
	ORDER BY realized DESC, market_segment_type`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment revenue: %w", err)
	}
	defer rows.Close()

	var results []models.SegmentRevenue
	for rows.Next() {
		var s models.SegmentRevenue
		if err := rows.Scan(&s.Segment, &s.Bookings, &s.Realized, &s.Lost); err != nil {
			return nil, fmt.Errorf("failed to scan segment revenue row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment revenue rows: %w", err)
	}
	return results, nil
}

// flagRevenue is a scan target for boolean-grouped revenue splits
type flagRevenue struct {
	flag     bool
	bookings int
	realized float64
	lost     float64
}

// queryFlagRevenue groups revenue by a boolean expression over the fixed
// schema. expr is interpolated, not bound; callers pass literals only.
func (db *DB) queryFlagRevenue(ctx context.Context, expr string) ([]flagRevenue, error) {
	query := fmt.Sprintf(`
	SELECT CAST(%s AS BOOLEAN) AS flag, %s
	FROM bookings
	GROUP BY flag
	ORDER BY flag`, expr, revenueSelectSQL)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by %s: %w", expr, err)
	}
	defer rows.Close()

	var results []flagRevenue
	for rows.Next() {
		var r flagRevenue
		if err := rows.Scan(&r.flag, &r.bookings, &r.realized, &r.lost); err != nil {
			return nil, fmt.Errorf("failed to scan revenue flag row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue flag rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryMonthlyRevenue(ctx context.Context, referenceYear int) ([]models.MonthlyRevenue, error) {
	query := `
	SELECT arrival_month, ` + revenueSelectSQL + `
	FROM bookings
	WHERE arrival_year = ?
	GROUP BY arrival_month
	ORDER BY arrival_month`

	rows, err := db.conn.QueryContext(ctx, query, referenceYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	var results []models.MonthlyRevenue
	for rows.Next() {
		var m models.MonthlyRevenue
		var bookings int
		if err := rows.Scan(&m.Month, &bookings, &m.Realized, &m.Lost); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly revenue rows: %w", err)
	}
	return results, nil
}
