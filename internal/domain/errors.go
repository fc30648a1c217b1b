// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Callers classify failures with errors.Is
// against these sentinels; the concrete error types below wrap them.
var (
	// ErrValidation is returned when an inbound request is missing a required
	// field or a field has the wrong shape. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrProvider is returned when the external generation call fails or
	// returns an unusable result.
	ErrProvider = errors.New("generation provider failed")

	// ErrTransport is returned when a downstream collaborator cannot be reached.
	ErrTransport = errors.New("network error")

	// ErrInvalidMessages is returned when a message sequence breaks the
	// "non-empty, last message is a user message" invariant.
	ErrInvalidMessages = errors.New("invalid message sequence")
)

// ValidationError names the first required field that was missing or invalid.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field. When err is
// nil the error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation for every ValidationError, whatever its cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
