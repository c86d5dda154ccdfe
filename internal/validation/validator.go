// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package validation provides struct validation using go-playground/validator v10.
// It provides a thread-safe singleton validator instance used for per-record
// validation during CSV ingest.
//
// Features:
//   - Singleton validator instance (thread-safe, caches struct info)
//   - Error translation to readable drop-warning messages
//   - Uses WithRequiredStructEnabled option (v11+ compatibility)
//
// Example usage:
//
//	raw := models.RawBooking{...}
//	if verr := validation.ValidateStruct(&raw); verr != nil {
//	    logging.Warn().
//	        Str("booking_id", raw.BookingID).
//	        Strs("fields", verr.Fields()).
//	        Msg("Dropping invalid row")
//	    continue
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError represents a single field validation error with structured information.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "12" for "lte=12").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RecordValidationError represents a collection of validation errors for one record.
type RecordValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RecordValidationError) Errors() []ValidationError {
	return ve.errors
}

// Fields returns the names of all fields that failed, for structured logging.
func (ve *RecordValidationError) Fields() []string {
	fields := make([]string, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = err.field
	}
	return fields
}

// Error implements the error interface, returning a combined error message.
func (ve *RecordValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	var messages []string
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once and is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// The built-in validators cover the booking record rules:
		// - required: non-empty identifiers and categorical values
		// - gte/lte: count and calendar bounds
		// - oneof: booking status and binary flag domains
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RecordValidationError if validation fails.
func ValidateStruct(s interface{}) *RecordValidationError {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Unexpected error type - wrap it
		return &RecordValidationError{
			errors: []ValidationError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RecordValidationError{errors: fieldErrors}
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	// Check simple templates (no param)
	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}

	// Check templates with param
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	// Handle min/max with type-specific messages
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind().String() == "string"

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
