// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// MonthlyRepeatShare is the returning-guest share of bookings for one month
// of the reference year
type MonthlyRepeatShare struct {
	Month    int     `json:"month"`
	Bookings int     `json:"bookings"`
	Repeated int     `json:"repeated"`
	Share    float64 `json:"share"`
}

// MealPlanShare is a booking-count share for one meal plan among repeated guests
type MealPlanShare struct {
	MealPlan string  `json:"meal_plan"`
	Bookings int     `json:"bookings"`
	Share    float64 `json:"share"`
}

// PreviousReservationsProfile aggregates bookings grouped by how many prior
// stays the guest had
type PreviousReservationsProfile struct {
	PreviousReservations int     `json:"previous_reservations"`
	Bookings             int     `json:"bookings"`
	AvgLeadTime          float64 `json:"avg_lead_time"`
	AvgPrice             float64 `json:"avg_price"`
	AvgTotalNights       float64 `json:"avg_total_nights"`
}

// RepeatAnalytics is the full output of the repeated-guest suite.
//
// HistoryCorrelation is the Pearson correlation between a returning guest's
// prior reservation count and the cancellation outcome (1 = canceled),
// computed over repeated-guest bookings only.
type RepeatAnalytics struct {
	TotalBookings          int                           `json:"total_bookings"`
	RepeatedBookings       int                           `json:"repeated_bookings"`
	RepeatedShare          float64                       `json:"repeated_share"`
	HistoryCorrelation     float64                       `json:"history_correlation"`
	MonthlyShare           []MonthlyRepeatShare          `json:"monthly_share"`
	MealPlans              []MealPlanShare               `json:"meal_plans"`
	BySegment              []SegmentShare                `json:"by_segment"`
	ByPreviousReservations []PreviousReservationsProfile `json:"by_previous_reservations"`
}
