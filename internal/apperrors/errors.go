package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange indicates a report date range whose start is after its end.
var ErrInvalidRange = errors.New("invalid date range")

// ErrUnknownAccount indicates a referenced account is not in the chart of accounts.
var ErrUnknownAccount = errors.New("unknown account")

// ErrDataIntegrity indicates ledger data that breaks a double-entry invariant.
// Reports surface these as violations; the error is only returned where no
// report can be produced at all.
var ErrDataIntegrity = errors.New("data integrity violation")

// ErrUpstreamUnavailable indicates a ledger store or chart collaborator failure.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Upstream wraps a collaborator failure so callers can match ErrUpstreamUnavailable
// while keeping the original cause reachable.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUpstreamUnavailable, err)
}
