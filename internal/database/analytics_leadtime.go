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

// decileBinCount is the bin count used for the top/bottom decile contrast.
const decileBinCount = 5

// GetLeadTimeAnalytics runs the lead-time suite: equal-width bins up to the
// 95th-percentile lead time, mean lead time by children/party size/month,
// and a short-notice vs far-ahead decile contrast.
//
// binCount controls the main histogram; the decile breakdowns always use
// five bins.
func (db *DB) GetLeadTimeAnalytics(ctx context.Context, binCount int) (*models.LeadTimeAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}
	if binCount < 2 {
		return nil, fmt.Errorf("lead time bin count must be >= 2 (got %d)", binCount)
	}

	p95, err := db.queryLeadTimeQuantile(ctx, 0.95)
	if err != nil {
		return nil, err
	}

	bins, err := db.queryLeadTimeBins(ctx, binCount, 0, p95)
	if err != nil {
		return nil, err
	}

	byChildren, err := db.queryLeadTimeByChildren(ctx)
	if err != nil {
		return nil, err
	}

	byGuests, err := db.queryLeadTimeByGuests(ctx)
	if err != nil {
		return nil, err
	}

	byMonth, err := db.queryLeadTimeByMonth(ctx)
	if err != nil {
		return nil, err
	}

	p10, err := db.queryLeadTimeQuantile(ctx, 0.10)
	if err != nil {
		return nil, err
	}
	p90, err := db.queryLeadTimeQuantile(ctx, 0.90)
	if err != nil {
		return nil, err
	}
	maxLead, err := db.queryLeadTimeQuantile(ctx, 1.0)
	if err != nil {
		return nil, err
	}

	bottom, err := db.queryLeadTimeBins(ctx, decileBinCount, 0, p10)
	if err != nil {
		return nil, err
	}
	top, err := db.queryLeadTimeBins(ctx, decileBinCount, p90, maxLead)
	if err != nil {
		return nil, err
	}

	return &models.LeadTimeAnalytics{
		P95LeadTime:    p95,
		Bins:           bins,
		ByChildren:     byChildren,
		ByTotalGuests:  byGuests,
		ByArrivalMonth: byMonth,
		BottomDecile:   bottom,
		TopDecile:      top,
	}, nil
}

// queryLeadTimeQuantile returns the continuous quantile of lead_time.
func (db *DB) queryLeadTimeQuantile(ctx context.Context, q float64) (float64, error) {
	var value float64
	err := db.conn.QueryRowContext(ctx,
		"SELECT quantile_cont(lead_time, ?) FROM bookings", q).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to query lead time quantile %g: %w", q, err)
	}
	return value, nil
}

// queryLeadTimeBins buckets bookings with lead_time in [low, high] into
// binCount equal-width bins and aggregates each bin.
func (db *DB) queryLeadTimeBins(ctx context.Context, binCount int, low, high float64) ([]models.LeadTimeBin, error) {
	bins := make([]models.LeadTimeBin, binCount)
	width := (high - low) / float64(binCount)
	for i := range bins {
		bins[i].Bin = i
		bins[i].LowDays = low + float64(i)*width
		bins[i].HighDays = low + float64(i+1)*width
		bins[i].ConversionRate = 1
	}

	if width == 0 {
		// Every in-range booking shares one lead time; everything lands in bin 0.
		query := `
		SELECT
			COUNT(*),
			SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END),
			COALESCE(AVG(avg_price_per_room), 0),
			COALESCE(AVG(total_nights), 0)
		FROM bookings
		WHERE lead_time = ?`

		var b models.LeadTimeBin
		err := db.conn.QueryRowContext(ctx, query, low).
			Scan(&b.Bookings, &b.Canceled, &b.AvgPrice, &b.AvgTotalNights)
		if err != nil {
			return nil, fmt.Errorf("failed to query degenerate lead time bin: %w", err)
		}
		bins[0].Bookings = b.Bookings
		bins[0].Canceled = b.Canceled
		bins[0].AvgPrice = b.AvgPrice
		bins[0].AvgTotalNights = b.AvgTotalNights
		bins[0].CancellationRate = rate(b.Canceled, b.Bookings)
		bins[0].ConversionRate = 1 - bins[0].CancellationRate
		return bins, nil
	}

	query := `
	SELECT
		LEAST(CAST(FLOOR((lead_time - ?) / ?) AS INTEGER), ?) AS bin,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled,
		AVG(avg_price_per_room) AS avg_price,
		AVG(total_nights) AS avg_total_nights
	FROM bookings
	WHERE lead_time >= ? AND lead_time <= ?
	GROUP BY bin
	ORDER BY bin`

	rows, err := db.conn.QueryContext(ctx, query, low, width, binCount-1, low, high)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead time bins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.LeadTimeBin
		if err := rows.Scan(&b.Bin, &b.Bookings, &b.Canceled, &b.AvgPrice, &b.AvgTotalNights); err != nil {
			return nil, fmt.Errorf("failed to scan lead time bin row: %w", err)
		}
		if b.Bin < 0 || b.Bin >= binCount {
			continue
		}
		bins[b.Bin].Bookings = b.Bookings
		bins[b.Bin].Canceled = b.Canceled
		bins[b.Bin].AvgPrice = b.AvgPrice
		bins[b.Bin].AvgTotalNights = b.AvgTotalNights
		bins[b.Bin].CancellationRate = rate(b.Canceled, b.Bookings)
		bins[b.Bin].ConversionRate = 1 - bins[b.Bin].CancellationRate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead time bin rows: %w", err)
	}
	return bins, nil
}

func (db *DB) queryLeadTimeByChildren(ctx context.Context) ([]models.ChildrenLeadTime, error) {
	query := `
	SELECT
		has_children,
		COUNT(*) AS bookings,
		AVG(lead_time) AS avg_lead_time
	FROM bookings
	GROUP BY has_children
	ORDER BY has_children`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead time by children: %w", err)
	}
	defer rows.Close()

	var results []models.ChildrenLeadTime
	for rows.Next() {
		var c models.ChildrenLeadTime
		if err := rows.Scan(&c.WithChildren, &c.Bookings, &c.AvgLeadTime); err != nil {
			return nil, fmt.Errorf("failed to scan lead time by children row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead time by children rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryLeadTimeByGuests(ctx context.Context) ([]models.GuestsLeadTime, error) {
	query := `
	SELECT
		total_guests,
		COUNT(*) AS bookings,
		AVG(lead_time) AS avg_lead_time
	FROM bookings
	GROUP BY total_guests
	ORDER BY total_guests`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead time by guests: %w", err)
	}
	defer rows.Close()

	var results []models.GuestsLeadTime
	for rows.Next() {
		var g models.GuestsLeadTime
		if err := rows.Scan(&g.TotalGuests, &g.Bookings, &g.AvgLeadTime); err != nil {
			return nil, fmt.Errorf("failed to scan lead time by guests row: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead time by guests rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryLeadTimeByMonth(ctx context.Context) ([]models.MonthLeadTime, error) {
	query := `
	SELECT
		arrival_month,
		COUNT(*) AS bookings,
		AVG(lead_time) AS avg_lead_time
	FROM bookings
	GROUP BY arrival_month
	ORDER BY arrival_month`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead time by month: %w", err)
	}
	defer rows.Close()

	var results []models.MonthLeadTime
	for rows.Next() {
		var m models.MonthLeadTime
		if err := rows.Scan(&m.Month, &m.Bookings, &m.AvgLeadTime); err != nil {
			return nil, fmt.Errorf("failed to scan lead time by month row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead time by month rows: %w", err)
	}
	return results, nil
}
