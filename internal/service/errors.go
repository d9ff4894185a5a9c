package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrClipNotFound is returned when neither the store nor the mirror has
	// the requested clip.
	ErrClipNotFound = errors.New("clip not found")
	// ErrBridgeUnavailable is returned when the workbook bridge controller
	// cannot be reached or answers with an error.
	ErrBridgeUnavailable = errors.New("bridge controller unavailable")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
