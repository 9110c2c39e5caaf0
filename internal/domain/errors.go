package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPayload        = errors.New("malformed payload")
	ErrUnknownSource           = errors.New("unknown webhook source")
	ErrValidation              = errors.New("validation error")
	ErrInvalidPeriod           = errors.New("invalid period: end is before start")
	ErrNotFound                = errors.New("not found")
	ErrSaleAlreadyExists       = errors.New("sale already exists")
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")
	ErrGenerationInProgress    = errors.New("payment generation already in progress")
	ErrSalesAlreadyBatched     = errors.New("sales already included in another payment")
	ErrLockNotAcquired         = errors.New("lock not acquired")
	ErrNotificationSkipped     = errors.New("notification skipped")
)

// ValidationError describes the first rejected field of an input.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MalformedPayloadError carries the reason a webhook body could not be normalized.
type MalformedPayloadError struct {
	Source Source
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload: %s", e.Source, e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error {
	return ErrMalformedPayload
}
