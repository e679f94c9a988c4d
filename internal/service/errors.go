package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection means the requested plan or service id is unknown.
	ErrInvalidSelection = errors.New("unknown plan or service")
	// ErrUnconfigured means the id is valid but no Stripe price is set for it.
	ErrUnconfigured = errors.New("no price configured")
	// ErrOutOfRange means the requested hour count is outside the allowed bounds.
	ErrOutOfRange = errors.New("hours out of range")
	// ErrPayerNotFound means no Stripe customer matches the given email.
	ErrPayerNotFound = errors.New("no customer found for email")
	// ErrMissingIdentifier means neither a customer id nor an email was supplied.
	ErrMissingIdentifier = errors.New("customer id or email required")
	// ErrSessionNotPaid rejects invoice generation for an unpaid session.
	ErrSessionNotPaid = errors.New("session not paid")
)

// HourRangeError carries the allowed bounds so handlers can name them in the
// validation message. It unwraps to ErrOutOfRange.
type HourRangeError struct {
	Min int64
	Max int64
}

func (e *HourRangeError) Error() string {
	return fmt.Sprintf("le nombre d'heures doit être entre %d et %d", e.Min, e.Max)
}

func (e *HourRangeError) Unwrap() error {
	return ErrOutOfRange
}
