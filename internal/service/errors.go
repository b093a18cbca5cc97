package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across the use cases.
// Callers check for them with errors.Is; the API layer maps them to status codes.
var (
	// ErrTodoNotFound indicates that no todo exists with the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTodoNotFound = errors.New("todo not found")
)

// NotFoundError reports which todo was missing.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("todo %s not found", e.ID)
}

// Unwrap makes errors.Is(err, ErrTodoNotFound) hold.
func (e *NotFoundError) Unwrap() error {
	return ErrTodoNotFound
}

// TodoServiceError wraps errors from the use cases with context.
type TodoServiceError struct {
	// Operation is the use case that failed (e.g., "add_todo", "toggle_todo")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TodoServiceError.
func (e *TodoServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("todo service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("todo service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TodoServiceError) Unwrap() error {
	return e.Err
}

// NewTodoServiceError creates a new TodoServiceError.
// Not-found errors are returned as they are so callers keep the ID.
func NewTodoServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound
	}

	return &TodoServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
