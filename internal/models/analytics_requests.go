// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// RequestCountProfile aggregates bookings grouped by special-request count.
// Requests is a display bucket: "0", "1", "2", or "3+".
type RequestCountProfile struct {
	Requests         string  `json:"requests"`
	Bookings         int     `json:"bookings"`
	Canceled         int     `json:"canceled"`
	CancellationRate float64 `json:"cancellation_rate"`
	AvgPrice         float64 `json:"avg_price"`
	AvgTotalNights   float64 `json:"avg_total_nights"`
}

// RequestsSplit is the cancellation rate split by any special request present
type RequestsSplit struct {
	WithRequests     bool    `json:"with_requests"`
	Bookings         int     `json:"bookings"`
	Canceled         int     `json:"canceled"`
	CancellationRate float64 `json:"cancellation_rate"`
}

// SegmentRequests is the mean special-request count per market segment
type SegmentRequests struct {
	Segment            string  `json:"segment"`
	Bookings           int     `json:"bookings"`
	AvgSpecialRequests float64 `json:"avg_special_requests"`
}

// RequestsAnalytics is the full output of the special-requests suite
type RequestsAnalytics struct {
	ByCount   []RequestCountProfile `json:"by_count"`
	Split     []RequestsSplit       `json:"split"`
	BySegment []SegmentRequests     `json:"by_segment"`
}
