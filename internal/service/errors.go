package service

import "fmt"

// GenerationServiceError wraps failures that are not the provider's own.
type GenerationServiceError struct {
	// Operation is the operation that failed (e.g., "generate_article")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GenerationServiceError.
func (e *GenerationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// NewGenerationServiceError creates a new GenerationServiceError.
func NewGenerationServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &GenerationServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
