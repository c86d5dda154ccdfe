// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package features

import (
	"testing"
	"time"

	"github.com/tomtom215/cancellarius/internal/models"
)

func TestNormalizeSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{models.SegmentOnline, "Online"},
		{models.SegmentOffline, "Offline"},
		{models.SegmentCorporate, "Corporate"},
		{models.SegmentComplementary, "Other"},
		{models.SegmentAviation, "Other"},
		{"Something Unseen", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeSegment(tt.in); got != tt.want {
				t.Errorf("NormalizeSegment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegmentOrdinal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{models.SegmentOnline, 0},
		{models.SegmentOffline, 1},
		{models.SegmentCorporate, 2},
		{models.SegmentComplementary, 3},
		{models.SegmentAviation, 3},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SegmentOrdinal(tt.in)
			if err != nil {
				t.Fatalf("SegmentOrdinal(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("SegmentOrdinal(%q) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	if got, err := StatusLabel(models.BookingStatusCanceled); err != nil || got != 1 {
		t.Errorf("StatusLabel(Canceled) = %d, %v; want 1, nil", got, err)
	}
	if got, err := StatusLabel(models.BookingStatusNotCanceled); err != nil || got != 0 {
		t.Errorf("StatusLabel(Not_Canceled) = %d, %v; want 0, nil", got, err)
	}
	if _, err := StatusLabel("Maybe"); err == nil {
		t.Error("StatusLabel accepted an unknown status")
	}
}

func TestYearQuarter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1}, {time.March, 1},
		{time.April, 2}, {time.June, 2},
		{time.July, 3}, {time.September, 3},
		{time.October, 4}, {time.December, 4},
	}

	for _, tt := range tests {
		got := YearQuarter(time.Date(2018, tt.month, 15, 0, 0, 0, 0, time.UTC))
		if got != tt.want {
			t.Errorf("YearQuarter(%v) = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	t.Parallel()

	// 2018-07-09 was a Monday.
	monday := time.Date(2018, 7, 9, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		got := WeekdayIndex(monday.AddDate(0, 0, i))
		if got != i {
			t.Errorf("WeekdayIndex(Monday+%d) = %d, want %d", i, got, i)
		}
	}
}

func TestPreprocess(t *testing.T) {
	t.Parallel()

	raw := rawFixture()
	raw.RepeatedGuest = 1
	raw.RequiredCarParkingSpace = 1
	raw.MarketSegmentType = models.SegmentAviation
	raw.BookingStatus = models.BookingStatusCanceled

	b, err := Engineer(raw)
	if err != nil {
		t.Fatalf("Engineer failed: %v", err)
	}

	m, err := Preprocess([]models.Booking{b})
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if m.Rows() != 1 {
		t.Fatalf("Rows = %d, want 1", m.Rows())
	}
	if len(m.Columns) != len(FeatureOrder) {
		t.Fatalf("Columns = %d, want %d", len(m.Columns), len(FeatureOrder))
	}
	for i, c := range FeatureOrder {
		if m.Columns[i] != c {
			t.Errorf("Columns[%d] = %q, want %q", i, m.Columns[i], c)
		}
	}

	// July arrival, Aviation segment folded to Other (3), quarter 3.
	want := []float64{1, 1, 1, 30, 1, 3, 3, 7, 3, 3}
	for i, v := range want {
		if m.X[0][i] != v {
			t.Errorf("X[0][%d] (%s) = %g, want %g", i, m.Columns[i], m.X[0][i], v)
		}
	}

	if m.Y[0] != 1 {
		t.Errorf("Y[0] = %d, want 1", m.Y[0])
	}
	if m.PositiveShare() != 1 {
		t.Errorf("PositiveShare = %g, want 1", m.PositiveShare())
	}
}

func TestPreprocess_Empty(t *testing.T) {
	t.Parallel()

	if _, err := Preprocess(nil); err == nil {
		t.Error("Preprocess accepted an empty dataset")
	}
}

func TestPreprocess_NotEngineered(t *testing.T) {
	t.Parallel()

	b := models.Booking{RawBooking: rawFixture()} // ArrivalAt never set
	if _, err := Preprocess([]models.Booking{b}); err == nil {
		t.Error("Preprocess accepted a booking without engineered fields")
	}
}

func TestFeatureCategories_CoverFeatureOrder(t *testing.T) {
	t.Parallel()

	categorized := make(map[string]bool)
	for _, c := range BinaryFeatures {
		categorized[c] = true
	}
	for _, c := range NumericalFeatures {
		categorized[c] = true
	}
	for _, c := range CategoricalFeatures {
		categorized[c] = true
	}

	if len(categorized) != len(FeatureOrder) {
		t.Errorf("Categories name %d distinct features, FeatureOrder has %d", len(categorized), len(FeatureOrder))
	}
	for _, c := range FeatureOrder {
		if !categorized[c] {
			t.Errorf("Feature %q is missing from the category sets", c)
		}
	}
}
