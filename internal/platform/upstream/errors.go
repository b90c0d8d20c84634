package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an isbn, library or session yields nothing.
	ErrNotFound = errors.New("not found")

	// ErrTimeout is returned when a polling job exceeds its wall-clock budget.
	ErrTimeout = errors.New("upstream job timed out")

	// ErrStateCorruption is returned when in-process state can no longer be trusted.
	ErrStateCorruption = errors.New("state corruption")
)

// TransportError represents a network failure or an unexpected HTTP status
// from an external catalog service.
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a TransportError for provider.
func NewTransportError(provider string, err error) *TransportError {
	return &TransportError{Provider: provider, Err: err}
}

// NewStatusError creates a TransportError for an unexpected status code.
func NewStatusError(provider string, statusCode int) *TransportError {
	return &TransportError{Provider: provider, StatusCode: statusCode}
}

// IsTransportError checks if an error is a TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// ParseError represents a malformed or schema-mismatched payload.
type ParseError struct {
	Provider string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse response: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err as a ParseError for provider.
func NewParseError(provider string, err error) *ParseError {
	return &ParseError{Provider: provider, Err: err}
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}
