// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package ingest

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/cancellarius/internal/models"
)

// expectedHeader is the source CSV column order. The loader rejects files
// whose header does not match, so a schema drift in the dataset fails fast
// instead of silently shifting columns.
var expectedHeader = []string{
	"Booking_ID",
	"no_of_adults",
	"no_of_children",
	"no_of_weekend_nights",
	"no_of_week_nights",
	"type_of_meal_plan",
	"required_car_parking_space",
	"room_type_reserved",
	"lead_time",
	"arrival_year",
	"arrival_month",
	"arrival_date",
	"market_segment_type",
	"repeated_guest",
	"no_of_previous_cancellations",
	"no_of_previous_bookings_not_canceled",
	"avg_price_per_room",
	"no_of_special_requests",
	"booking_status",
}

// BookingUUID derives a deterministic UUID from the source booking ID.
// The same booking always maps to the same UUID across runs, which is what
// makes re-ingesting into a file-backed store idempotent at the ID level.
func BookingUUID(bookingID string) uuid.UUID {
	hash := sha256.Sum256([]byte("booking:" + bookingID))

	var id uuid.UUID
	copy(id[:], hash[:16])

	// Stamp version 5 (name-based) and the RFC 4122 variant so the result
	// is a well-formed UUID rather than raw hash bytes.
	id[6] = (id[6] & 0x0f) | 0x50
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// verifyHeader checks the CSV header row against the expected columns.
// A UTF-8 byte order mark on the first column is tolerated.
func verifyHeader(header []string) error {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(expectedHeader))
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

// parseRecord converts one CSV record into a RawBooking. Numeric fields carry
// the column name in their parse errors so a dropped row is traceable.
func parseRecord(record []string) (models.RawBooking, error) {
	var raw models.RawBooking
	if len(record) != len(expectedHeader) {
		return raw, fmt.Errorf("record has %d columns, want %d", len(record), len(expectedHeader))
	}

	var err error
	atoi := func(column string, value string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(strings.TrimSpace(value)); err != nil {
			err = fmt.Errorf("column %s: %w", column, err)
		}
		return n
	}

	raw.BookingID = strings.TrimSpace(record[0])
	raw.NoOfAdults = atoi("no_of_adults", record[1])
	raw.NoOfChildren = atoi("no_of_children", record[2])
	raw.NoOfWeekendNights = atoi("no_of_weekend_nights", record[3])
	raw.NoOfWeekNights = atoi("no_of_week_nights", record[4])
	raw.TypeOfMealPlan = strings.TrimSpace(record[5])
	raw.RequiredCarParkingSpace = atoi("required_car_parking_space", record[6])
	raw.RoomTypeReserved = strings.TrimSpace(record[7])
	raw.LeadTime = atoi("lead_time", record[8])
	raw.ArrivalYear = atoi("arrival_year", record[9])
	raw.ArrivalMonth = atoi("arrival_month", record[10])
	raw.ArrivalDate = atoi("arrival_date", record[11])
	raw.MarketSegmentType = strings.TrimSpace(record[12])
	raw.RepeatedGuest = atoi("repeated_guest", record[13])
	raw.NoOfPreviousCancellations = atoi("no_of_previous_cancellations", record[14])
	raw.NoOfPreviousBookingsNotCanceled = atoi("no_of_previous_bookings_not_canceled", record[15])
	raw.NoOfSpecialRequests = atoi("no_of_special_requests", record[17])
	raw.BookingStatus = strings.TrimSpace(record[18])
	if err != nil {
		return raw, err
	}

	price, perr := strconv.ParseFloat(strings.TrimSpace(record[16]), 64)
	if perr != nil {
		return raw, fmt.Errorf("column avg_price_per_room: %w", perr)
	}
	raw.AvgPricePerRoom = price

	return raw, nil
}
