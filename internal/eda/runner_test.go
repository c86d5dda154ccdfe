// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package eda

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/database"
	"github.com/tomtom215/cancellarius/internal/features"
	"github.com/tomtom215/cancellarius/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Mode: config.ModeEDA, Seed: 42},
		Database: config.DatabaseConfig{
			Path:      "memory",
			MaxMemory: "512MB",
		},
		EDA: config.EDAConfig{
			ReferenceYear: 2018,
			LeadTimeBins:  5,
		},
	}
}

// seedStore opens an in-memory store with six engineered bookings, two of
// them canceled.
func seedStore(t *testing.T, cfg *config.Config) *database.DB {
	t.Helper()

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	specs := []struct {
		id       string
		leadTime int
		status   string
		segment  string
	}{
		{"INN00001", 10, models.BookingStatusNotCanceled, models.SegmentOnline},
		{"INN00002", 40, models.BookingStatusCanceled, models.SegmentOnline},
		{"INN00003", 5, models.BookingStatusNotCanceled, models.SegmentOffline},
		{"INN00004", 90, models.BookingStatusCanceled, models.SegmentOffline},
		{"INN00005", 20, models.BookingStatusNotCanceled, models.SegmentCorporate},
		{"INN00006", 60, models.BookingStatusNotCanceled, models.SegmentOnline},
	}

	bookings := make([]models.Booking, 0, len(specs))
	for _, s := range specs {
		raw := models.RawBooking{
			BookingID:               s.id,
			NoOfAdults:              2,
			NoOfWeekendNights:       1,
			NoOfWeekNights:          2,
			TypeOfMealPlan:          "Meal Plan 1",
			RoomTypeReserved:        "Room_Type 1",
			LeadTime:                s.leadTime,
			ArrivalYear:             2018,
			ArrivalMonth:            7,
			ArrivalDate:             10,
			MarketSegmentType:       s.segment,
			AvgPricePerRoom:         100,
			BookingStatus:           s.status,
		}
		b, err := features.Engineer(raw)
		if err != nil {
			t.Fatalf("Engineer failed for %s: %v", s.id, err)
		}
		b.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.id))
		bookings = append(bookings, b)
	}

	if _, err := db.InsertBookings(context.Background(), bookings, 0); err != nil {
		t.Fatalf("InsertBookings failed: %v", err)
	}
	return db
}

func TestRunner_AllSuites(t *testing.T) {
	cfg := testConfig()
	db := seedStore(t, cfg)

	report, err := NewRunner(cfg, db).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.ReferenceYear != 2018 {
		t.Errorf("ReferenceYear = %d, want 2018", report.ReferenceYear)
	}
	if report.Cancellation == nil || report.Segments == nil || report.Revenue == nil ||
		report.Repeat == nil || report.Seasonality == nil || report.LeadTime == nil ||
		report.Requests == nil || report.Profile == nil {
		t.Fatal("Some suites produced no output")
	}

	if len(report.Timings) != len(config.ValidSuites) {
		t.Errorf("Timings = %d entries, want %d", len(report.Timings), len(config.ValidSuites))
	}

	// Two of six canceled.
	if got := report.Cancellation.Overview.CancellationRate; got < 0.33 || got > 0.34 {
		t.Errorf("CancellationRate = %g, want 1/3", got)
	}
	if report.Profile.Rows != 6 {
		t.Errorf("Profile rows = %d, want 6", report.Profile.Rows)
	}
}

func TestRunner_SuiteSelection(t *testing.T) {
	cfg := testConfig()
	cfg.EDA.Suites = []string{"segments", "requests"}
	db := seedStore(t, cfg)

	report, err := NewRunner(cfg, db).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Segments == nil || report.Requests == nil {
		t.Error("Enabled suites produced no output")
	}
	if report.Cancellation != nil || report.Profile != nil || report.LeadTime != nil {
		t.Error("Disabled suites produced output")
	}
	if len(report.Timings) != 2 {
		t.Errorf("Timings = %d entries, want 2", len(report.Timings))
	}
}

func TestRunner_EmptyStore(t *testing.T) {
	cfg := testConfig()
	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = NewRunner(cfg, db).Run(context.Background())
	if err == nil {
		t.Fatal("Run succeeded on an empty store")
	}
	if !strings.Contains(err.Error(), "cancellation") {
		t.Errorf("error = %v, want the failing suite named", err)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	cfg := testConfig()
	db := seedStore(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRunner(cfg, db).Run(ctx); err == nil {
		t.Error("Run succeeded with a cancelled context")
	}
}
