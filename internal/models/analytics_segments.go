// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// SegmentProfile aggregates booking behavior for one market segment
type SegmentProfile struct {
	Segment            string  `json:"segment"`
	Bookings           int     `json:"bookings"`
	Share              float64 `json:"share"`
	AvgTotalNights     float64 `json:"avg_total_nights"`
	AvgLeadTime        float64 `json:"avg_lead_time"`
	AvgSpecialRequests float64 `json:"avg_special_requests"`
	AvgWeekendNights   float64 `json:"avg_weekend_nights"`
	AvgWeekNights      float64 `json:"avg_week_nights"`
	CancellationRate   float64 `json:"cancellation_rate"`
}

// SegmentShare is a booking-count share for one market segment within some
// subpopulation (for example repeated guests)
type SegmentShare struct {
	Segment  string  `json:"segment"`
	Bookings int     `json:"bookings"`
	Share    float64 `json:"share"`
}

// SegmentAnalytics is the full output of the market-segment suite. Segments
// are ordered by booking share descending; TopSegments lists the three
// largest by share.
type SegmentAnalytics struct {
	Segments    []SegmentProfile `json:"segments"`
	TopSegments []string         `json:"top_segments"`
}
