package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotCovered indicates that no delivery zone serves a postal code.
var ErrNotCovered = errors.New("not covered")

// ErrInvalidTransition indicates a rejected delivery status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrConfiguration indicates malformed or missing reference data.
var ErrConfiguration = errors.New("configuration error")

// ErrUnavailable indicates that storage kept failing after all retries.
var ErrUnavailable = errors.New("temporarily unavailable")

// ValidationError reports the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

// Validation returns a ValidationError for field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// TransitionError reports a rejected delivery status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NotCoveredError reports a postal code no active zone serves.
type NotCoveredError struct {
	PostalCode string
	ZoneType   string
}

func (e *NotCoveredError) Error() string {
	if e.ZoneType == "" {
		return fmt.Sprintf("no delivery service available for %s", e.PostalCode)
	}
	return fmt.Sprintf("no %s service available for %s", e.ZoneType, e.PostalCode)
}

func (e *NotCoveredError) Unwrap() error { return ErrNotCovered }

// ConfigurationError reports malformed reference data.
type ConfigurationError struct {
	Source string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration %s: %s", e.Source, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
