package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrInvalidEntity is returned when a stored record cannot be mapped
	// back to a valid domain entity.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpstream is returned when a backing service answers with a
	// non-success status. Use errors.As with *UpstreamError for the code.
	ErrUpstream = errors.New("upstream store failure")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "todo")
	Operation string // The operation that failed (e.g., "save", "list")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// UpstreamError carries the HTTP status returned by a remote backing store.
type UpstreamError struct {
	Operation  string
	StatusCode int
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s failed with status %d", ErrUpstream, e.Operation, e.StatusCode)
}

// Unwrap makes errors.Is(err, ErrUpstream) hold.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// IsUpstreamError reports whether err is, or wraps, a remote store failure.
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}
