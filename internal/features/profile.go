// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/cancellarius/internal/models"
)

// numericColumns maps profiled column names to their extractors, in the
// order the profile reports them.
var numericColumns = []struct {
	name    string
	extract func(*models.Booking) float64
}{
	{"no_of_adults", func(b *models.Booking) float64 { return float64(b.NoOfAdults) }},
	{"no_of_children", func(b *models.Booking) float64 { return float64(b.NoOfChildren) }},
	{"no_of_weekend_nights", func(b *models.Booking) float64 { return float64(b.NoOfWeekendNights) }},
	{"no_of_week_nights", func(b *models.Booking) float64 { return float64(b.NoOfWeekNights) }},
	{"lead_time", func(b *models.Booking) float64 { return float64(b.LeadTime) }},
	{"avg_price_per_room", func(b *models.Booking) float64 { return b.AvgPricePerRoom }},
	{"no_of_special_requests", func(b *models.Booking) float64 { return float64(b.NoOfSpecialRequests) }},
	{"total_nights", func(b *models.Booking) float64 { return float64(b.TotalNights) }},
	{"total_guests", func(b *models.Booking) float64 { return float64(b.TotalGuests) }},
	{"previous_reservations", func(b *models.Booking) float64 { return float64(b.PreviousReservations) }},
}

// categoricalColumns maps profiled categorical column names to extractors.
var categoricalColumns = []struct {
	name    string
	extract func(*models.Booking) string
}{
	{"type_of_meal_plan", func(b *models.Booking) string { return b.TypeOfMealPlan }},
	{"room_type_reserved", func(b *models.Booking) string { return b.RoomTypeReserved }},
	{"market_segment_type", func(b *models.Booking) string { return b.MarketSegmentType }},
	{"arrival_weekday", func(b *models.Booking) string { return b.ArrivalWeekday }},
	{"booking_status", func(b *models.Booking) string { return b.BookingStatus }},
}

// Profile computes the dataset profile: per-numeric-column summary
// statistics, categorical value distributions, label balance, and each
// numeric column's Pearson correlation with the cancellation label.
func Profile(bookings []models.Booking) *models.DatasetProfile {
	profile := &models.DatasetProfile{
		Rows: len(bookings),
	}
	if len(bookings) == 0 {
		return profile
	}

	labels := make([]float64, len(bookings))
	for i := range bookings {
		if bookings[i].IsCanceled() {
			labels[i] = 1
			profile.Labels.Canceled++
		} else {
			profile.Labels.NotCanceled++
		}
	}
	profile.Labels.PositiveShare = float64(profile.Labels.Canceled) / float64(len(bookings))

	for _, col := range numericColumns {
		values := make([]float64, len(bookings))
		for i := range bookings {
			values[i] = col.extract(&bookings[i])
		}
		profile.Numeric = append(profile.Numeric, profileColumn(col.name, values))

		corr := stat.Correlation(values, labels, nil)
		if math.IsNaN(corr) {
			// Constant column or constant label; no linear relationship to report.
			corr = 0
		}
		profile.Correlations = append(profile.Correlations, models.FeatureCorrelation{
			Column:      col.name,
			Correlation: corr,
		})
	}

	for _, col := range categoricalColumns {
		profile.Categorical = append(profile.Categorical, profileCategorical(col.name, bookings, col.extract))
	}

	return profile
}

// profileColumn computes count/mean/std and the five-number spread for one
// numeric column. Quantiles interpolate linearly between order statistics,
// matching the conventional describe() view of a tabular dataset.
func profileColumn(name string, values []float64) models.ColumnProfile {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	std := stat.StdDev(values, nil)
	if math.IsNaN(std) {
		// StdDev of a single sample divides by n-1.
		std = 0
	}

	return models.ColumnProfile{
		Column: name,
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Std:    std,
		Min:    sorted[0],
		P25:    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		P50:    stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P75:    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// profileCategorical counts distinct values of one categorical column,
// ordered by count descending then value for a stable report.
func profileCategorical(name string, bookings []models.Booking, extract func(*models.Booking) string) models.CategoricalProfile {
	counts := make(map[string]int)
	for i := range bookings {
		counts[extract(&bookings[i])]++
	}

	values := make([]models.CategoryCount, 0, len(counts))
	for v, c := range counts {
		values = append(values, models.CategoryCount{Value: v, Count: c})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})

	return models.CategoricalProfile{
		Column:      name,
		Cardinality: len(values),
		Values:      values,
	}
}
