// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"fmt"
)

// createBookingsTableSQL defines the bookings table. Raw CSV columns keep
// their source names; engineered columns follow after booking_status.
const createBookingsTableSQL = `
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	booking_id VARCHAR NOT NULL UNIQUE,
	no_of_adults INTEGER NOT NULL,
	no_of_children INTEGER NOT NULL,
	no_of_weekend_nights INTEGER NOT NULL,
	no_of_week_nights INTEGER NOT NULL,
	type_of_meal_plan VARCHAR NOT NULL,
	required_car_parking_space INTEGER NOT NULL,
	room_type_reserved VARCHAR NOT NULL,
	lead_time INTEGER NOT NULL,
	arrival_year INTEGER NOT NULL,
	arrival_month INTEGER NOT NULL,
	arrival_date INTEGER NOT NULL,
	market_segment_type VARCHAR NOT NULL,
	repeated_guest INTEGER NOT NULL,
	no_of_previous_cancellations INTEGER NOT NULL,
	no_of_previous_bookings_not_canceled INTEGER NOT NULL,
	avg_price_per_room DOUBLE NOT NULL,
	no_of_special_requests INTEGER NOT NULL,
	booking_status VARCHAR NOT NULL,
	arrival_at TIMESTAMP NOT NULL,
	booked_at TIMESTAMP NOT NULL,
	arrival_weekday VARCHAR NOT NULL,
	has_children BOOLEAN NOT NULL,
	total_nights INTEGER NOT NULL,
	total_guests INTEGER NOT NULL,
	previous_reservations INTEGER NOT NULL
)`

// createSchema creates the bookings table if it does not exist
func (db *DB) createSchema(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, createBookingsTableSQL); err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}
	return nil
}

// createIndexes creates indexes for the grouping columns the analytics
// suites aggregate on
func (db *DB) createIndexes(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(booking_status)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_segment ON bookings(market_segment_type)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_arrival ON bookings(arrival_year, arrival_month)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_lead_time ON bookings(lead_time)",
	}

	for _, stmt := range indexes {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
