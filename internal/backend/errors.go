package backend

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNotAuthenticated = errors.New("no session token configured")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// TransportError is returned when no response was received, including timeouts.
type TransportError struct {
	Method string
	Path   string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}
func (e *TransportError) Unwrap() error { return e.Cause }

// DecodeError is returned when a 2xx response body is not the expected JSON.
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.Path, e.Cause)
}
func (e *DecodeError) Unwrap() error { return e.Cause }
