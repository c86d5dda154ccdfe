// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package features

import (
	"fmt"
	"time"

	"github.com/tomtom215/cancellarius/internal/models"
)

// FeatureOrder is the fixed column order of the design matrix. Training,
// threshold sweeps, and reporting all rely on this order staying put.
var FeatureOrder = []string{
	"is_repeated_guest",
	"has_car",
	"has_special_requests",
	"lead_time",
	"has_children",
	"normalized_market_segment_value",
	"year_quarter",
	"arrival_month",
	"total_nights",
	"total_guests",
}

// Feature categories, for reporting and for anyone slicing the matrix by
// column kind. The arrival weekday index is computed during preprocessing
// but excluded from the default feature order; it carried no signal.
var (
	BinaryFeatures      = []string{"is_repeated_guest", "has_car", "has_special_requests", "has_children"}
	NumericalFeatures   = []string{"lead_time", "total_nights", "total_guests", "normalized_market_segment_value", "year_quarter"}
	CategoricalFeatures = []string{"arrival_month"}
)

// LabelColumn is the name of the binary target.
const LabelColumn = "cancelled"

// segmentOrdinals encodes the normalized market segment.
var segmentOrdinals = map[string]float64{
	models.SegmentOnline:    0,
	models.SegmentOffline:   1,
	models.SegmentCorporate: 2,
	models.SegmentOther:     3,
}

// Matrix is an immutable design matrix: one row of X per booking in
// FeatureOrder column order, and the matching cancellation labels.
type Matrix struct {
	Columns []string
	X       [][]float64
	Y       []int
}

// Rows returns the number of samples.
func (m *Matrix) Rows() int {
	return len(m.X)
}

// PositiveShare returns the fraction of canceled labels.
func (m *Matrix) PositiveShare() float64 {
	if len(m.Y) == 0 {
		return 0
	}
	pos := 0
	for _, y := range m.Y {
		pos += y
	}
	return float64(pos) / float64(len(m.Y))
}

// Preprocess encodes engineered bookings into the training matrix. Bookings
// must already be engineered (arrival timestamp present); a zero ArrivalAt
// or unknown segment/status value is an encoding bug and returns an error.
func Preprocess(bookings []models.Booking) (*Matrix, error) {
	if len(bookings) == 0 {
		return nil, fmt.Errorf("no bookings to preprocess")
	}

	m := &Matrix{
		Columns: FeatureOrder,
		X:       make([][]float64, 0, len(bookings)),
		Y:       make([]int, 0, len(bookings)),
	}

	for i := range bookings {
		b := &bookings[i]

		segment, err := SegmentOrdinal(b.MarketSegmentType)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.BookingID, err)
		}

		label, err := StatusLabel(b.BookingStatus)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.BookingID, err)
		}

		if b.ArrivalAt.IsZero() {
			return nil, fmt.Errorf("booking %s: not engineered (zero arrival time)", b.BookingID)
		}

		row := []float64{
			float64(b.RepeatedGuest),
			float64(b.RequiredCarParkingSpace),
			boolToFloat(b.NoOfSpecialRequests > 0),
			float64(b.LeadTime),
			boolToFloat(b.HasChildren),
			segment,
			float64(YearQuarter(b.ArrivalAt)),
			float64(b.ArrivalMonth),
			float64(b.TotalNights),
			float64(b.TotalGuests),
		}

		m.X = append(m.X, row)
		m.Y = append(m.Y, label)
	}

	return m, nil
}

// NormalizeSegment folds the small Complementary and Aviation segments into
// Other; the three major segments pass through unchanged.
func NormalizeSegment(segment string) string {
	switch segment {
	case models.SegmentOnline, models.SegmentOffline, models.SegmentCorporate:
		return segment
	default:
		return models.SegmentOther
	}
}

// SegmentOrdinal returns the ordinal encoding of a market segment after
// normalization.
func SegmentOrdinal(segment string) (float64, error) {
	normalized := NormalizeSegment(segment)
	v, ok := segmentOrdinals[normalized]
	if !ok {
		return 0, fmt.Errorf("unknown market segment %q", segment)
	}
	return v, nil
}

// StatusLabel maps booking status to the binary cancellation label.
func StatusLabel(status string) (int, error) {
	switch status {
	case models.BookingStatusCanceled:
		return 1, nil
	case models.BookingStatusNotCanceled:
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown booking status %q", status)
	}
}

// YearQuarter returns the calendar quarter (1-4) of the arrival time.
func YearQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// WeekdayIndex returns the weekday with Monday as 0 and Sunday as 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
