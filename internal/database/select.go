// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/cancellarius/internal/models"
)

const selectBookingsSQL = `
SELECT
	id, booking_id,
	no_of_adults, no_of_children, no_of_weekend_nights, no_of_week_nights,
	type_of_meal_plan, required_car_parking_space, room_type_reserved,
	lead_time, arrival_year, arrival_month, arrival_date,
	market_segment_type, repeated_guest,
	no_of_previous_cancellations, no_of_previous_bookings_not_canceled,
	avg_price_per_room, no_of_special_requests, booking_status,
	arrival_at, booked_at, arrival_weekday,
	has_children, total_nights, total_guests, previous_reservations
FROM bookings
ORDER BY arrival_at, booking_id`

// GetBookings returns every ingested booking ordered by arrival time (ties
// broken by booking ID so the order is stable across runs). The dataset
// profile and the training pipeline both consume this view, so a file-backed
// store can serve repeat runs without re-ingesting the CSV.
func (db *DB) GetBookings(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectBookingsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.BookingID,
			&b.NoOfAdults, &b.NoOfChildren, &b.NoOfWeekendNights, &b.NoOfWeekNights,
			&b.TypeOfMealPlan, &b.RequiredCarParkingSpace, &b.RoomTypeReserved,
			&b.LeadTime, &b.ArrivalYear, &b.ArrivalMonth, &b.ArrivalDate,
			&b.MarketSegmentType, &b.RepeatedGuest,
			&b.NoOfPreviousCancellations, &b.NoOfPreviousBookingsNotCanceled,
			&b.AvgPricePerRoom, &b.NoOfSpecialRequests, &b.BookingStatus,
			&b.ArrivalAt, &b.BookedAt, &b.ArrivalWeekday,
			&b.HasChildren, &b.TotalNights, &b.TotalGuests, &b.PreviousReservations,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}
