// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/cancellarius/internal/models"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

func validRawBooking() models.RawBooking {
	return models.RawBooking{
		BookingID:               "INN00001",
		NoOfAdults:              2,
		NoOfChildren:            0,
		NoOfWeekendNights:       1,
		NoOfWeekNights:          2,
		TypeOfMealPlan:          "Meal Plan 1",
		RequiredCarParkingSpace: 0,
		RoomTypeReserved:        "Room_Type 1",
		LeadTime:                85,
		ArrivalYear:             2018,
		ArrivalMonth:            4,
		ArrivalDate:             20,
		MarketSegmentType:       models.SegmentOnline,
		RepeatedGuest:           0,
		AvgPricePerRoom:         106.68,
		NoOfSpecialRequests:     1,
		BookingStatus:           models.BookingStatusNotCanceled,
	}
}

func TestValidateStruct_ValidBooking(t *testing.T) {
	raw := validRawBooking()
	if err := ValidateStruct(&raw); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_InvalidBookings(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.RawBooking)
		wantField string
		wantTag   string
	}{
		{
			name:      "missing booking id",
			mutate:    func(r *models.RawBooking) { r.BookingID = "" },
			wantField: "BookingID",
			wantTag:   "required",
		},
		{
			name:      "negative adults",
			mutate:    func(r *models.RawBooking) { r.NoOfAdults = -1 },
			wantField: "NoOfAdults",
			wantTag:   "gte",
		},
		{
			name:      "negative lead time",
			mutate:    func(r *models.RawBooking) { r.LeadTime = -7 },
			wantField: "LeadTime",
			wantTag:   "gte",
		},
		{
			name:      "month out of range",
			mutate:    func(r *models.RawBooking) { r.ArrivalMonth = 13 },
			wantField: "ArrivalMonth",
			wantTag:   "lte",
		},
		{
			name:      "day out of range",
			mutate:    func(r *models.RawBooking) { r.ArrivalDate = 0 },
			wantField: "ArrivalDate",
			wantTag:   "gte",
		},
		{
			name:      "unknown booking status",
			mutate:    func(r *models.RawBooking) { r.BookingStatus = "Maybe" },
			wantField: "BookingStatus",
			wantTag:   "oneof",
		},
		{
			name:      "parking flag not binary",
			mutate:    func(r *models.RawBooking) { r.RequiredCarParkingSpace = 2 },
			wantField: "RequiredCarParkingSpace",
			wantTag:   "oneof",
		},
		{
			name:      "negative price",
			mutate:    func(r *models.RawBooking) { r.AvgPricePerRoom = -1.5 },
			wantField: "AvgPricePerRoom",
			wantTag:   "gte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawBooking()
			tt.mutate(&raw)

			verr := ValidateStruct(&raw)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			found := false
			for _, fe := range verr.Errors() {
				if fe.Field() == tt.wantField && fe.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("expected failure on field %s tag %s, got %v", tt.wantField, tt.wantTag, verr)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	raw := validRawBooking()
	raw.BookingID = ""
	raw.NoOfAdults = -1
	raw.BookingStatus = "Unknown"

	verr := ValidateStruct(&raw)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	if len(verr.Errors()) != 3 {
		t.Errorf("len(Errors()) = %d, want 3", len(verr.Errors()))
	}

	fields := verr.Fields()
	if len(fields) != 3 {
		t.Errorf("len(Fields()) = %d, want 3", len(fields))
	}

	msg := verr.Error()
	if !strings.Contains(msg, "BookingID is required") {
		t.Errorf("Error() = %q, want it to mention BookingID", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("Error() = %q, want messages joined with semicolons", msg)
	}
}

// ===================================================================================================
// Error Translation Tests
// ===================================================================================================

func TestTranslateError_Messages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RawBooking)
		wantMsg string
	}{
		{
			name:    "required message",
			mutate:  func(r *models.RawBooking) { r.MarketSegmentType = "" },
			wantMsg: "MarketSegmentType is required",
		},
		{
			name:    "gte message",
			mutate:  func(r *models.RawBooking) { r.NoOfSpecialRequests = -2 },
			wantMsg: "NoOfSpecialRequests must be greater than or equal to 0",
		},
		{
			name:    "lte message",
			mutate:  func(r *models.RawBooking) { r.ArrivalDate = 32 },
			wantMsg: "ArrivalDate must be less than or equal to 31",
		},
		{
			name:    "oneof message",
			mutate:  func(r *models.RawBooking) { r.RepeatedGuest = 3 },
			wantMsg: "RepeatedGuest must be one of: 0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawBooking()
			tt.mutate(&raw)

			verr := ValidateStruct(&raw)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Error(); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", got, tt.wantMsg)
			}
		})
	}
}
