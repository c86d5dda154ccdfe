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

const insertBookingSQL = `
INSERT INTO bookings (
	id, booking_id,
	no_of_adults, no_of_children, no_of_weekend_nights, no_of_week_nights,
	type_of_meal_plan, required_car_parking_space, room_type_reserved,
	lead_time, arrival_year, arrival_month, arrival_date,
	market_segment_type, repeated_guest,
	no_of_previous_cancellations, no_of_previous_bookings_not_canceled,
	avg_price_per_room, no_of_special_requests, booking_status,
	arrival_at, booked_at, arrival_weekday,
	has_children, total_nights, total_guests, previous_reservations
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertBookings writes engineered bookings in batches, each batch inside its
// own transaction. Returns the number of rows inserted; on error the failed
// batch is rolled back and previously committed batches remain.
func (db *DB) InsertBookings(ctx context.Context, bookings []models.Booking, batchSize int) (int, error) {
	if len(bookings) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = len(bookings)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	inserted := 0
	for start := 0; start < len(bookings); start += batchSize {
		end := start + batchSize
		if end > len(bookings) {
			end = len(bookings)
		}

		if err := db.insertBatch(ctx, bookings[start:end]); err != nil {
			return inserted, fmt.Errorf("failed to insert batch starting at row %d: %w", start, err)
		}
		inserted += end - start
	}

	return inserted, nil
}

// insertBatch inserts one batch of bookings inside a transaction
func (db *DB) insertBatch(ctx context.Context, batch []models.Booking) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertBookingSQL)
	if err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	for i := range batch {
		b := &batch[i]
		_, err := stmt.ExecContext(ctx,
			b.ID, b.BookingID,
			b.NoOfAdults, b.NoOfChildren, b.NoOfWeekendNights, b.NoOfWeekNights,
			b.TypeOfMealPlan, b.RequiredCarParkingSpace, b.RoomTypeReserved,
			b.LeadTime, b.ArrivalYear, b.ArrivalMonth, b.ArrivalDate,
			b.MarketSegmentType, b.RepeatedGuest,
			b.NoOfPreviousCancellations, b.NoOfPreviousBookingsNotCanceled,
			b.AvgPricePerRoom, b.NoOfSpecialRequests, b.BookingStatus,
			b.ArrivalAt, b.BookedAt, b.ArrivalWeekday,
			b.HasChildren, b.TotalNights, b.TotalGuests, b.PreviousReservations,
		)
		if err != nil {
			closeQuietly(stmt)
			rollbackQuietly(tx)
			return fmt.Errorf("failed to insert booking %s: %w", b.BookingID, err)
		}
	}

	closeWithLog(stmt, "insert statement")

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// rollbackQuietly rolls back a transaction on an error path, ignoring the
// rollback result since the original error is what matters.
func rollbackQuietly(tx interface{ Rollback() error }) {
	_ = tx.Rollback()
}
