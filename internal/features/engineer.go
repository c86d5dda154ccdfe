// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/cancellarius/internal/models"
)

// Engineer derives the engineered fields for one raw booking. It returns an
// error when (arrival_year, arrival_month, arrival_date) does not name a real
// calendar day (e.g. February 30); callers drop such rows.
//
// The booking ID (UUID) is not set here; the ingest mapper assigns it.
func Engineer(raw models.RawBooking) (models.Booking, error) {
	arrival, err := arrivalTime(raw.ArrivalYear, raw.ArrivalMonth, raw.ArrivalDate)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		RawBooking:     raw,
		ArrivalAt:      arrival,
		BookedAt:       arrival.AddDate(0, 0, -raw.LeadTime),
		ArrivalWeekday: arrival.Weekday().String(),
		HasChildren:    raw.NoOfChildren > 0,
		TotalNights:    raw.NoOfWeekNights + raw.NoOfWeekendNights,
		TotalGuests:    raw.NoOfAdults + raw.NoOfChildren,
	}

	// Guests marked as first-timers sometimes carry nonzero history columns
	// in the source data; the engineered count trusts the flag.
	if raw.RepeatedGuest == 1 {
		b.PreviousReservations = raw.NoOfPreviousCancellations + raw.NoOfPreviousBookingsNotCanceled
	}

	return b, nil
}

// arrivalTime assembles a UTC midnight timestamp and rejects impossible
// dates. time.Date normalizes out-of-range components (Feb 30 becomes
// Mar 1/2), so the check is a round-trip comparison.
func arrivalTime(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid arrival month %d", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid arrival day %d", day)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid calendar date %d-%02d-%02d", year, month, day)
	}
	return t, nil
}

// SortByArrival orders bookings by arrival time in place. The sort is stable
// so rows sharing an arrival date keep their ingest order.
func SortByArrival(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].ArrivalAt.Before(bookings[j].ArrivalAt)
	})
}
