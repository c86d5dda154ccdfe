// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/models"
)

// setupTestDB opens an in-memory store with the schema created.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:                   "memory",
		MaxMemory:              "512MB",
		Threads:                2,
		PreserveInsertionOrder: true,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

// testBooking builds a fully engineered booking arriving in 2018. The mutate
// callback adjusts raw fields; engineered fields are derived afterwards so
// fixtures stay internally consistent.
func testBooking(id string, mutate func(*models.Booking)) models.Booking {
	b := models.Booking{
		RawBooking: models.RawBooking{
			BookingID:               id,
			NoOfAdults:              2,
			NoOfChildren:            0,
			NoOfWeekendNights:       1,
			NoOfWeekNights:          2,
			TypeOfMealPlan:          "Meal Plan 1",
			RequiredCarParkingSpace: 0,
			RoomTypeReserved:        "Room_Type 1",
			LeadTime:                30,
			ArrivalYear:             2018,
			ArrivalMonth:            7,
			ArrivalDate:             10,
			MarketSegmentType:       models.SegmentOnline,
			RepeatedGuest:           0,
			AvgPricePerRoom:         100,
			NoOfSpecialRequests:     0,
			BookingStatus:           models.BookingStatusNotCanceled,
		},
	}
	if mutate != nil {
		mutate(&b)
	}

	hash := sha256.Sum256([]byte("booking:" + b.BookingID))
	b.ID, _ = uuid.FromBytes(hash[:16])

	b.ArrivalAt = time.Date(b.ArrivalYear, time.Month(b.ArrivalMonth), b.ArrivalDate, 0, 0, 0, 0, time.UTC)
	b.BookedAt = b.ArrivalAt.AddDate(0, 0, -b.LeadTime)
	b.ArrivalWeekday = b.ArrivalAt.Weekday().String()
	b.HasChildren = b.NoOfChildren > 0
	b.TotalNights = b.NoOfWeekNights + b.NoOfWeekendNights
	b.TotalGuests = b.NoOfAdults + b.NoOfChildren
	if b.RepeatedGuest == 1 {
		b.PreviousReservations = b.NoOfPreviousCancellations + b.NoOfPreviousBookingsNotCanceled
	}
	return b
}

// fixtureBookings is the shared analytics fixture: ten bookings, four
// canceled, spread over segments, months, and request counts.
func fixtureBookings() []models.Booking {
	return []models.Booking{
		testBooking("INN00001", func(b *models.Booking) {
			b.BookingStatus = models.BookingStatusCanceled
			b.LeadTime = 10
		}),
		testBooking("INN00002", func(b *models.Booking) {
			b.LeadTime = 20
			b.AvgPricePerRoom = 120
			b.NoOfWeekNights = 1 // 2 total nights
			b.NoOfSpecialRequests = 1
		}),
		testBooking("INN00003", func(b *models.Booking) {
			b.BookingStatus = models.BookingStatusCanceled
			b.MarketSegmentType = models.SegmentOffline
			b.ArrivalMonth = 8
			b.LeadTime = 100
			b.AvgPricePerRoom = 80
			b.NoOfWeekNights = 3 // 4 total nights
			b.NoOfChildren = 1
		}),
		testBooking("INN00004", func(b *models.Booking) {
			b.MarketSegmentType = models.SegmentOffline
			b.ArrivalMonth = 8
			b.LeadTime = 50
			b.AvgPricePerRoom = 90
			b.NoOfSpecialRequests = 2
		}),
		testBooking("INN00005", func(b *models.Booking) {
			b.MarketSegmentType = models.SegmentCorporate
			b.ArrivalMonth = 1
			b.LeadTime = 5
			b.AvgPricePerRoom = 60
			b.NoOfWeekNights = 0 // 1 total night
			b.RepeatedGuest = 1
			b.NoOfPreviousBookingsNotCanceled = 3
		}),
		testBooking("INN00006", func(b *models.Booking) {
			b.MarketSegmentType = models.SegmentAviation
			b.ArrivalMonth = 2
			b.LeadTime = 15
			b.AvgPricePerRoom = 70
			b.NoOfWeekNights = 1 // 2 total nights
			b.NoOfSpecialRequests = 3
		}),
		testBooking("INN00007", func(b *models.Booking) {
			b.BookingStatus = models.BookingStatusCanceled
			b.ArrivalMonth = 12
			b.LeadTime = 200
			b.AvgPricePerRoom = 150
			b.NoOfWeekNights = 4 // 5 total nights
		}),
		testBooking("INN00008", func(b *models.Booking) {
			b.LeadTime = 30
			b.AvgPricePerRoom = 110
			b.NoOfSpecialRequests = 1
			b.RepeatedGuest = 1
			b.NoOfPreviousCancellations = 1
			b.NoOfPreviousBookingsNotCanceled = 2
		}),
		testBooking("INN00009", func(b *models.Booking) {
			b.MarketSegmentType = models.SegmentCorporate
			b.ArrivalMonth = 3
			b.LeadTime = 8
			b.AvgPricePerRoom = 65
			b.NoOfWeekNights = 1 // 2 total nights
			b.NoOfSpecialRequests = 4
		}),
		testBooking("INN00010", func(b *models.Booking) {
			b.BookingStatus = models.BookingStatusCanceled
			b.MarketSegmentType = models.SegmentOffline
			b.LeadTime = 60
			b.AvgPricePerRoom = 85
			b.NoOfChildren = 2
		}),
	}
}

// setupTestDBWithData opens an in-memory store seeded with the fixture.
func setupTestDBWithData(t *testing.T) *DB {
	t.Helper()

	db := setupTestDB(t)
	bookings := fixtureBookings()
	inserted, err := db.InsertBookings(context.Background(), bookings, 4)
	if err != nil {
		t.Fatalf("Failed to insert fixture bookings: %v", err)
	}
	if inserted != len(bookings) {
		t.Fatalf("Inserted %d bookings, want %d", inserted, len(bookings))
	}
	return db
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.CountBookings(context.Background())
	if err != nil {
		t.Fatalf("CountBookings failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountBookings = %d, want 0", count)
	}
	if got := db.GetDatabasePath(); got != "memory" {
		t.Errorf("GetDatabasePath = %q, want %q", got, "memory")
	}
}

func TestAnalytics_EmptyDataset(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetCancellationAnalytics(context.Background(), 2018)
	if !errors.Is(err, ErrDatasetEmpty) {
		t.Errorf("GetCancellationAnalytics on empty store: err = %v, want ErrDatasetEmpty", err)
	}

	_, err = db.GetRequestsAnalytics(context.Background())
	if !errors.Is(err, ErrDatasetEmpty) {
		t.Errorf("GetRequestsAnalytics on empty store: err = %v, want ErrDatasetEmpty", err)
	}
}

func TestInsertBookings_Batches(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		batchSize int
	}{
		{"single batch", 100},
		{"small batches", 3},
		{"zero batch size defaults to all", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.conn.ExecContext(ctx, "DELETE FROM bookings"); err != nil {
				t.Fatalf("Failed to reset bookings table: %v", err)
			}

			bookings := fixtureBookings()
			inserted, err := db.InsertBookings(ctx, bookings, tt.batchSize)
			if err != nil {
				t.Fatalf("InsertBookings failed: %v", err)
			}
			if inserted != len(bookings) {
				t.Errorf("inserted = %d, want %d", inserted, len(bookings))
			}

			count, err := db.CountBookings(ctx)
			if err != nil {
				t.Fatalf("CountBookings failed: %v", err)
			}
			if int(count) != len(bookings) {
				t.Errorf("CountBookings = %d, want %d", count, len(bookings))
			}
		})
	}
}

func TestInsertBookings_Empty(t *testing.T) {
	db := setupTestDB(t)

	inserted, err := db.InsertBookings(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("InsertBookings with no rows failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
}

func TestGetBookings_OrderedByArrival(t *testing.T) {
	db := setupTestDBWithData(t)

	bookings, err := db.GetBookings(context.Background())
	if err != nil {
		t.Fatalf("GetBookings failed: %v", err)
	}
	if len(bookings) != 10 {
		t.Fatalf("GetBookings returned %d rows, want 10", len(bookings))
	}

	for i := 1; i < len(bookings); i++ {
		prev, curr := bookings[i-1], bookings[i]
		if curr.ArrivalAt.Before(prev.ArrivalAt) {
			t.Errorf("Row %d arrives %v before row %d at %v", i, curr.ArrivalAt, i-1, prev.ArrivalAt)
		}
		if curr.ArrivalAt.Equal(prev.ArrivalAt) && curr.BookingID < prev.BookingID {
			t.Errorf("Tied arrivals out of booking ID order: %s before %s", prev.BookingID, curr.BookingID)
		}
	}

	// Earliest arrival in the fixture is the January corporate stay.
	if bookings[0].BookingID != "INN00005" {
		t.Errorf("First booking = %s, want INN00005", bookings[0].BookingID)
	}
}

func TestGetBookings_RoundTrip(t *testing.T) {
	db := setupTestDBWithData(t)

	bookings, err := db.GetBookings(context.Background())
	if err != nil {
		t.Fatalf("GetBookings failed: %v", err)
	}

	var got *models.Booking
	for i := range bookings {
		if bookings[i].BookingID == "INN00008" {
			got = &bookings[i]
			break
		}
	}
	if got == nil {
		t.Fatal("Booking INN00008 not returned")
	}

	if got.PreviousReservations != 3 {
		t.Errorf("PreviousReservations = %d, want 3", got.PreviousReservations)
	}
	if got.TotalNights != 3 {
		t.Errorf("TotalNights = %d, want 3", got.TotalNights)
	}
	if got.AvgPricePerRoom != 110 {
		t.Errorf("AvgPricePerRoom = %g, want 110", got.AvgPricePerRoom)
	}
	if got.HasChildren {
		t.Errorf("HasChildren = true for a booking with %d children", got.NoOfChildren)
	}
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDBWithData(t)

	if err := db.Checkpoint(context.Background()); err != nil {
		t.Errorf("Checkpoint failed: %v", err)
	}
}
