// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// Revenue figures use avg_price_per_room x total_nights per booking.
// Realized revenue counts completed stays only; lost revenue is the same
// figure summed over canceled bookings.

// SegmentRevenue is realized vs lost revenue for one market segment
type SegmentRevenue struct {
	Segment  string  `json:"segment"`
	Bookings int     `json:"bookings"`
	Realized float64 `json:"realized"`
	Lost     float64 `json:"lost"`
}

// ChildrenRevenue is realized vs lost revenue split by children on the booking
type ChildrenRevenue struct {
	WithChildren bool    `json:"with_children"`
	Bookings     int     `json:"bookings"`
	Realized     float64 `json:"realized"`
	Lost         float64 `json:"lost"`
}

// RequestsRevenue is realized vs lost revenue split by special requests present
type RequestsRevenue struct {
	WithRequests bool    `json:"with_requests"`
	Bookings     int     `json:"bookings"`
	Realized     float64 `json:"realized"`
	Lost         float64 `json:"lost"`
}

// RepeatRevenue is realized vs lost revenue split by returning-guest flag
type RepeatRevenue struct {
	RepeatedGuest bool    `json:"repeated_guest"`
	Bookings      int     `json:"bookings"`
	Realized      float64 `json:"realized"`
	Lost          float64 `json:"lost"`
}

// MonthlyRevenue is realized vs lost revenue for one arrival month of the
// reference year
type MonthlyRevenue struct {
	Month    int     `json:"month"`
	Realized float64 `json:"realized"`
	Lost     float64 `json:"lost"`
}

// RevenueAnalytics is the full output of the revenue suite
type RevenueAnalytics struct {
	TotalRealized   float64           `json:"total_realized"`
	TotalLost       float64           `json:"total_lost"`
	BySegment       []SegmentRevenue  `json:"by_segment"`
	ByChildren      []ChildrenRevenue `json:"by_children"`
	ByRequests      []RequestsRevenue `json:"by_requests"`
	ByRepeatedGuest []RepeatRevenue   `json:"by_repeated_guest"`
	MonthlyRefYear  []MonthlyRevenue  `json:"monthly_reference_year"`
}
