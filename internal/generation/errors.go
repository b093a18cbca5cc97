package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrUpstream is returned when the LLM service answers with a non-success status
	ErrUpstream = errors.New("language model request failed")

	// ErrInvalidConfig is returned when the suggester configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// UpstreamError carries the HTTP status returned by an LLM provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s returned status %d", ErrUpstream, e.Provider, e.StatusCode)
}

// Unwrap makes errors.Is(err, ErrUpstream) hold.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
