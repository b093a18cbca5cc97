package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	// Checked first: corrupt stored data may wrap a validation error too.
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusInternalServerError

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, service.ErrTodoNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrUpstream),
		errors.Is(err, generation.ErrUpstream):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var notFound *service.NotFoundError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, store.ErrInvalidEntity):
		return "An unexpected error occurred"

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.As(err, &maxBytes):
		return "Request body too large"

	case errors.As(err, &notFound):
		return fmt.Sprintf("Todo %s not found", notFound.ID)

	case errors.Is(err, service.ErrTodoNotFound):
		return "Todo not found"

	case errors.Is(err, store.ErrUpstream):
		return "Todo storage is unavailable"

	case errors.Is(err, generation.ErrUpstream):
		return "Title suggestion service is unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// jsonFieldName maps Go field names of request DTOs to their JSON names.
func jsonFieldName(field string) string {
	switch field {
	case "Title":
		return "title"
	case "Context":
		return "context"
	default:
		return field
	}
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
