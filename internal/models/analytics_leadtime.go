// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// LeadTimeBin aggregates bookings whose lead time falls in one equal-width bin.
// ConversionRate is 1 minus the cancellation rate.
type LeadTimeBin struct {
	Bin              int     `json:"bin"`
	LowDays          float64 `json:"low_days"`
	HighDays         float64 `json:"high_days"`
	Bookings         int     `json:"bookings"`
	Canceled         int     `json:"canceled"`
	CancellationRate float64 `json:"cancellation_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	AvgPrice         float64 `json:"avg_price"`
	AvgTotalNights   float64 `json:"avg_total_nights"`
}

// ChildrenLeadTime is the mean lead time split by children on the booking
type ChildrenLeadTime struct {
	WithChildren bool    `json:"with_children"`
	Bookings     int     `json:"bookings"`
	AvgLeadTime  float64 `json:"avg_lead_time"`
}

// GuestsLeadTime is the mean lead time grouped by party size
type GuestsLeadTime struct {
	TotalGuests int     `json:"total_guests"`
	Bookings    int     `json:"bookings"`
	AvgLeadTime float64 `json:"avg_lead_time"`
}

// MonthLeadTime is the mean lead time grouped by arrival month
type MonthLeadTime struct {
	Month       int     `json:"month"`
	Bookings    int     `json:"bookings"`
	AvgLeadTime float64 `json:"avg_lead_time"`
}

// LeadTimeAnalytics is the full output of the lead-time suite.
//
// Bins covers lead times up to the 95th percentile cutoff so a handful of
// extreme advance bookings cannot stretch every bin. BottomDecile and
// TopDecile re-bin the shortest and longest tenth of lead times into five
// bins each for a short-notice vs far-ahead contrast.
type LeadTimeAnalytics struct {
	P95LeadTime    float64            `json:"p95_lead_time"`
	Bins           []LeadTimeBin      `json:"bins"`
	ByChildren     []ChildrenLeadTime `json:"by_children"`
	ByTotalGuests  []GuestsLeadTime   `json:"by_total_guests"`
	ByArrivalMonth []MonthLeadTime    `json:"by_arrival_month"`
	BottomDecile   []LeadTimeBin      `json:"bottom_decile"`
	TopDecile      []LeadTimeBin      `json:"top_decile"`
}
