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

// leadTimeBinCount is the fixed number of equal-width lead-time bins used by
// the cancellation suite's lead-time breakdown.
const leadTimeBinCount = 10

// GetCancellationAnalytics runs the cancellation suite: the overall rate, the
// per-status driver means, and cancellation rates across every grouping the
// dataset supports (month of the reference year, segment, repeated-guest
// flag, lead-time bin, night counts, children).
func (db *DB) GetCancellationAnalytics(ctx context.Context, referenceYear int) (*models.CancellationAnalytics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.requireBookings(ctx); err != nil {
		return nil, err
	}

	overview, err := db.queryCancellationOverview(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := db.queryStatusMeans(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := db.queryMonthlyCancellation(ctx, referenceYear)
	if err != nil {
		return nil, err
	}

	bySegment, err := db.querySegmentCancellation(ctx)
	if err != nil {
		return nil, err
	}

	byRepeat, err := db.queryRepeatCancellation(ctx)
	if err != nil {
		return nil, err
	}

	byLeadBin, err := db.queryLeadTimeBinCancellation(ctx)
	if err != nil {
		return nil, err
	}

	byWeekNights, err := db.queryNightsCancellation(ctx, "no_of_week_nights")
	if err != nil {
		return nil, err
	}

	byWeekendNights, err := db.queryNightsCancellation(ctx, "no_of_weekend_nights")
	if err != nil {
		return nil, err
	}

	byChildren, err := db.queryChildrenCancellation(ctx)
	if err != nil {
		return nil, err
	}

	return &models.CancellationAnalytics{
		Overview:        overview,
		ByStatus:        byStatus,
		MonthlyRefYear:  monthly,
		BySegment:       bySegment,
		ByRepeatedGuest: byRepeat,
		ByLeadTimeBin:   byLeadBin,
		ByWeekNights:    byWeekNights,
		ByWeekendNights: byWeekendNights,
		ByChildren:      byChildren,
	}, nil
}

func (db *DB) queryCancellationOverview(ctx context.Context) (models.CancellationOverview, error) {
	query := `
	SELECT
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings`

	var overview models.CancellationOverview
	var canceled int
	if err := db.conn.QueryRowContext(ctx, query).Scan(&overview.TotalBookings, &canceled); err != nil {
		return overview, fmt.Errorf("failed to query cancellation overview: %w", err)
	}

	overview.Canceled = canceled
	overview.NotCanceled = overview.TotalBookings - canceled
	overview.CancellationRate = rate(canceled, overview.TotalBookings)
	return overview, nil
}

func (db *DB) queryStatusMeans(ctx context.Context) ([]models.StatusMeans, error) {
	query := `
	SELECT
		booking_status,
		COUNT(*) AS bookings,
		AVG(lead_time) AS mean_lead_time,
		AVG(no_of_special_requests) AS mean_requests,
		AVG(avg_price_per_room) AS mean_price
	FROM bookings
	GROUP BY booking_status
	ORDER BY booking_status`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query status means: %w", err)
	}
	defer rows.Close()

	var results []models.StatusMeans
	for rows.Next() {
		var m models.StatusMeans
		if err := rows.Scan(&m.Status, &m.Bookings, &m.MeanLeadTime, &m.MeanSpecialRequests, &m.MeanAvgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan status means row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status means rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryMonthlyCancellation(ctx context.Context, referenceYear int) ([]models.MonthlyCancellationRate, error) {
	query := `
	SELECT
		arrival_month,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	WHERE arrival_year = ?
	GROUP BY arrival_month
	ORDER BY arrival_month`

	rows, err := db.conn.QueryContext(ctx, query, referenceYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly cancellation: %w", err)
	}
	defer rows.Close()

	var results []models.MonthlyCancellationRate
	for rows.Next() {
		var m models.MonthlyCancellationRate
		if err := rows.Scan(&m.Month, &m.Bookings, &m.Canceled); err != nil {
			return nil, fmt.Errorf("failed to scan monthly cancellation row: %w", err)
		}
		m.Rate = rate(m.Canceled, m.Bookings)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly cancellation rows: %w", err)
	}
	return results, nil
}

func (db *DB) querySegmentCancellation(ctx context.Context) ([]models.SegmentCancellationRate, error) {
	query := `
	SELECT
		market_segment_type,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY market_segment_type
	ORDER BY bookings DESC, market_segment_type`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment cancellation: %w", err)
	}
	defer rows.Close()

	var results []models.SegmentCancellationRate
	for rows.Next() {
		var s models.SegmentCancellationRate
		if err := rows.Scan(&s.Segment, &s.Bookings, &s.Canceled); err != nil {
			return nil, fmt.Errorf("failed to scan segment cancellation row: %w", err)
		}
		s.Rate = rate(s.Canceled, s.Bookings)
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segment cancellation rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryRepeatCancellation(ctx context.Context) ([]models.RepeatCancellationRate, error) {
	query := `
	SELECT
		repeated_guest,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY repeated_guest
	ORDER BY repeated_guest`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repeat cancellation: %w", err)
	}
	defer rows.Close()

	var results []models.RepeatCancellationRate
	for rows.Next() {
		var flag int
		var r models.RepeatCancellationRate
		if err := rows.Scan(&flag, &r.Bookings, &r.Canceled); err != nil {
			return nil, fmt.Errorf("failed to scan repeat cancellation row: %w", err)
		}
		r.RepeatedGuest = flag == 1
		r.Rate = rate(r.Canceled, r.Bookings)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repeat cancellation rows: %w", err)
	}
	return results, nil
}

// queryLeadTimeBinCancellation splits the full lead-time range into
// leadTimeBinCount equal-width bins. Bins with no bookings are still
// returned so the histogram keeps its shape.
func (db *DB) queryLeadTimeBinCancellation(ctx context.Context) ([]models.LeadTimeBinCancellation, error) {
	var minLead, maxLead float64
	err := db.conn.QueryRowContext(ctx, "SELECT MIN(lead_time), MAX(lead_time) FROM bookings").Scan(&minLead, &maxLead)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead time range: %w", err)
	}

	bins := make([]models.LeadTimeBinCancellation, leadTimeBinCount)
	width := (maxLead - minLead) / float64(leadTimeBinCount)
	for i := range bins {
		bins[i].Bin = i
		bins[i].LowDays = minLead + float64(i)*width
		bins[i].HighDays = minLead + float64(i+1)*width
	}

	if width == 0 {
		// All bookings share one lead time; everything lands in bin 0.
		var bookings, canceled int
		query := `
		SELECT COUNT(*), SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END)
		FROM bookings`
		if err := db.conn.QueryRowContext(ctx, query).Scan(&bookings, &canceled); err != nil {
			return nil, fmt.Errorf("failed to query degenerate lead time bin: %w", err)
		}
		bins[0].Bookings = bookings
		bins[0].Canceled = canceled
		bins[0].Rate = rate(canceled, bookings)
		return bins, nil
	}

	query := `
	SELECT
		LEAST(CAST(FLOOR((lead_time - ?) / ?) AS INTEGER), ?) AS bin,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY bin
	ORDER BY bin`

	rows, err := db.conn.QueryContext(ctx, query, minLead, width, leadTimeBinCount-1)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead time bin cancellation: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bin, bookings, canceled int
		if err := rows.Scan(&bin, &bookings, &canceled); err != nil {
			return nil, fmt.Errorf("failed to scan lead time bin row: %w", err)
		}
		if bin < 0 || bin >= leadTimeBinCount {
			continue
		}
		bins[bin].Bookings = bookings
		bins[bin].Canceled = canceled
		bins[bin].Rate = rate(canceled, bookings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead time bin rows: %w", err)
	}
	return bins, nil
}

// queryNightsCancellation groups cancellation counts by a night-count column.
// column must be one of the fixed schema names; it is interpolated, not bound.
func (db *DB) queryNightsCancellation(ctx context.Context, column string) ([]models.NightsCancellationRate, error) {
	if column != "no_of_week_nights" && column != "no_of_weekend_nights" {
		return nil, fmt.Errorf("invalid nights column: %s", column)
	}

	query := fmt.Sprintf(`
	SELECT
		%s AS nights,
		COUNT(*) AS bookings,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY nights
	ORDER BY nights`, column)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nights cancellation: %w", err)
	}
	defer rows.Close()

	var results []models.NightsCancellationRate
	for rows.Next() {
		var n models.NightsCancellationRate
		if err := rows.Scan(&n.Nights, &n.Bookings, &n.Canceled); err != nil {
			return nil, fmt.Errorf("failed to scan nights cancellation row: %w", err)
		}
		n.Rate = rate(n.Canceled, n.Bookings)
		results = append(results, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nights cancellation rows: %w", err)
	}
	return results, nil
}

func (db *DB) queryChildrenCancellation(ctx context.Context) ([]models.ChildrenCancellationRate, error) {
	query := `
	SELECT
		has_children,
		COUNT(*) AS bookings,
		COUNT(*) * 1.0 / SUM(COUNT(*)) OVER () AS share,
		SUM(CASE WHEN booking_status = 'Canceled' THEN 1 ELSE 0 END) AS canceled
	FROM bookings
	GROUP BY has_children
	ORDER BY has_children`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query children cancellation: %w", err)
	}
	defer rows.Close()

	var results []models.ChildrenCancellationRate
	for rows.Next() {
		var c models.ChildrenCancellationRate
		if err := rows.Scan(&c.WithChildren, &c.Bookings, &c.Share, &c.Canceled); err != nil {
			return nil, fmt.Errorf("failed to scan children cancellation row: %w", err)
		}
		c.Rate = rate(c.Canceled, c.Bookings)
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating children cancellation rows: %w", err)
	}
	return results, nil
}

// rate divides canceled by total, returning 0 for an empty group
func rate(canceled, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(canceled) / float64(total)
}
