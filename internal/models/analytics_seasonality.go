// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package models

// MonthlySeason is booking volume, price, and cancellation behavior for one
// arrival month of the reference year
type MonthlySeason struct {
	Month            int     `json:"month"`
	Bookings         int     `json:"bookings"`
	Canceled         int     `json:"canceled"`
	CancellationRate float64 `json:"cancellation_rate"`
	AvgPrice         float64 `json:"avg_price"`
}

// MonthlyAverages is per-arrival-month stay behavior averaged over all years
type MonthlyAverages struct {
	Month              int     `json:"month"`
	AvgTotalNights     float64 `json:"avg_total_nights"`
	AvgLeadTime        float64 `json:"avg_lead_time"`
	AvgSpecialRequests float64 `json:"avg_special_requests"`
}

// SeasonalityAnalytics is the full output of the seasonality suite
type SeasonalityAnalytics struct {
	ReferenceYear int               `json:"reference_year"`
	Monthly       []MonthlySeason   `json:"monthly"`
	AllYears      []MonthlyAverages `json:"all_years"`
}
