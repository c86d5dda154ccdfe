// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package models defines data structures used throughout the Cancellarius application.
// These models represent hotel bookings, analytics results, training outputs, and the
// run report envelope.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking status values as they appear in the source dataset.
const (
	BookingStatusCanceled    = "Canceled"
	BookingStatusNotCanceled = "Not_Canceled"
)

// Market segment values as they appear in the source dataset. Complementary
// and Aviation are folded into Other during preprocessing.
const (
	SegmentOnline        = "Online"
	SegmentOffline       = "Offline"
	SegmentCorporate     = "Corporate"
	SegmentComplementary = "Complementary"
	SegmentAviation      = "Aviation"
	SegmentOther         = "Other"
)

// RawBooking is a single row of the bookings CSV, parsed but not yet
// feature-engineered. Field order matches the source column order.
//
// Validation tags are enforced during ingest; rows that fail validation are
// dropped with a warning (or abort the run in strict mode).
type RawBooking struct {
	BookingID                  string  `json:"booking_id" validate:"required"`
	NoOfAdults                 int     `json:"no_of_adults" validate:"gte=0"`
	NoOfChildren               int     `json:"no_of_children" validate:"gte=0"`
	NoOfWeekendNights          int     `json:"no_of_weekend_nights" validate:"gte=0"`
	NoOfWeekNights             int     `json:"no_of_week_nights" validate:"gte=0"`
	TypeOfMealPlan             string  `json:"type_of_meal_plan" validate:"required"`
	RequiredCarParkingSpace    int     `json:"required_car_parking_space" validate:"oneof=0 1"`
	RoomTypeReserved           string  `json:"room_type_reserved" validate:"required"`
	LeadTime                   int     `json:"lead_time" validate:"gte=0"`
	ArrivalYear                int     `json:"arrival_year" validate:"gte=1900,lte=2200"`
	ArrivalMonth               int     `json:"arrival_month" validate:"gte=1,lte=12"`
	ArrivalDate                int     `json:"arrival_date" validate:"gte=1,lte=31"`
	MarketSegmentType          string  `json:"market_segment_type" validate:"required"`
	RepeatedGuest              int     `json:"repeated_guest" validate:"oneof=0 1"`
	NoOfPreviousCancellations  int     `json:"no_of_previous_cancellations" validate:"gte=0"`
	NoOfPreviousBookingsNotCanceled int `json:"no_of_previous_bookings_not_canceled" validate:"gte=0"`
	AvgPricePerRoom            float64 `json:"avg_price_per_room" validate:"gte=0"`
	NoOfSpecialRequests        int     `json:"no_of_special_requests" validate:"gte=0"`
	BookingStatus              string  `json:"booking_status" validate:"oneof=Canceled Not_Canceled"`
}

// Booking is a fully engineered booking record as stored in DuckDB and
// consumed by the analytics suites and the training pipeline.
//
// Key Fields:
//   - ID: Deterministic UUID derived from BookingID (stable across runs,
//     used for duplicate detection)
//   - ArrivalAt: Arrival timestamp assembled from (year, month, day);
//     records with impossible calendar dates never become Bookings
//   - BookedAt: ArrivalAt minus LeadTime days (when the reservation was placed)
//   - ArrivalWeekday: English weekday name of ArrivalAt
//   - TotalNights: Week nights plus weekend nights
//   - TotalGuests: Adults plus children
//   - PreviousReservations: Prior stay count (cancellations plus completed),
//     zero for first-time guests regardless of history columns
//
// Engineered fields are deterministic: the same RawBooking always produces
// the same Booking apart from insertion order.
type Booking struct {
	RawBooking

	ID uuid.UUID `json:"id"`

	ArrivalAt            time.Time `json:"arrival_at"`
	BookedAt             time.Time `json:"booked_at"`
	ArrivalWeekday       string    `json:"arrival_weekday"`
	HasChildren          bool      `json:"has_children"`
	TotalNights          int       `json:"total_nights"`
	TotalGuests          int       `json:"total_guests"`
	PreviousReservations int       `json:"previous_reservations"`
}

// IsCanceled reports whether the booking ended up canceled.
func (b *Booking) IsCanceled() bool {
	return b.BookingStatus == BookingStatusCanceled
}

// IsRepeatedGuest reports whether the booking was made by a returning guest.
func (b *Booking) IsRepeatedGuest() bool {
	return b.RepeatedGuest == 1
}
