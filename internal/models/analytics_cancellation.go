// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// CancellationOverview summarizes cancellation behavior across the whole dataset
type CancellationOverview struct {
	TotalBookings    int     `json:"total_bookings"`
	Canceled         int     `json:"canceled"`
	NotCanceled      int     `json:"not_canceled"`
	CancellationRate float64 `json:"cancellation_rate"`
}

// StatusMeans holds per-booking-status means for the drivers most correlated
// with cancellation
type StatusMeans struct {
	Status              string  `json:"status"`
	Bookings            int     `json:"bookings"`
	MeanLeadTime        float64 `json:"mean_lead_time"`
	MeanSpecialRequests float64 `json:"mean_special_requests"`
	MeanAvgPrice        float64 `json:"mean_avg_price"`
}

// MonthlyCancellationRate is the cancellation rate for one arrival month of
// the reference year
type MonthlyCancellationRate struct {
	Month    int     `json:"month"`
	Bookings int     `json:"bookings"`
	Canceled int     `json:"canceled"`
	Rate     float64 `json:"rate"`
}

// SegmentCancellationRate is the cancellation rate within one market segment
type SegmentCancellationRate struct {
	Segment  string  `json:"segment"`
	Bookings int     `json:"bookings"`
	Canceled int     `json:"canceled"`
	Rate     float64 `json:"rate"`
}

// RepeatCancellationRate is the cancellation rate split by returning-guest flag
type RepeatCancellationRate struct {
	RepeatedGuest bool    `json:"repeated_guest"`
	Bookings      int     `json:"bookings"`
	Canceled      int     `json:"canceled"`
	Rate          float64 `json:"rate"`
}

// LeadTimeBinCancellation is the cancellation rate within one equal-width
// lead-time bin
type LeadTimeBinCancellation struct {
	Bin      int     `json:"bin"`
	LowDays  float64 `json:"low_days"`
	HighDays float64 `json:"high_days"`
	Bookings int     `json:"bookings"`
	Canceled int     `json:"canceled"`
	Rate     float64 `json:"rate"`
}

// NightsCancellationRate is the cancellation rate grouped by a night count
// (used for both week-night and weekend-night groupings)
type NightsCancellationRate struct {
	Nights   int     `json:"nights"`
	Bookings int     `json:"bookings"`
	Canceled int     `json:"canceled"`
	Rate     float64 `json:"rate"`
}

// ChildrenCancellationRate is the cancellation rate split by whether children
// are on the booking, with each group's share of all bookings
type ChildrenCancellationRate struct {
	WithChildren bool    `json:"with_children"`
	Bookings     int     `json:"bookings"`
	Share        float64 `json:"share"`
	Canceled     int     `json:"canceled"`
	Rate         float64 `json:"rate"`
}

// CancellationAnalytics is the full output of the cancellation suite
type CancellationAnalytics struct {
	Overview        CancellationOverview      `json:"overview"`
	ByStatus        []StatusMeans             `json:"by_status"`
	MonthlyRefYear  []MonthlyCancellationRate `json:"monthly_reference_year"`
	BySegment       []SegmentCancellationRate `json:"by_segment"`
	ByRepeatedGuest []RepeatCancellationRate  `json:"by_repeated_guest"`
	ByLeadTimeBin   []LeadTimeBinCancellation `json:"by_lead_time_bin"`
	ByWeekNights    []NightsCancellationRate  `json:"by_week_nights"`
	ByWeekendNights []NightsCancellationRate  `json:"by_weekend_nights"`
	ByChildren      []ChildrenCancellationRate `json:"by_children"`
}
