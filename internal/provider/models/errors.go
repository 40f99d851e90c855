package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common provider failures.
var (
	// Safety/Content errors
	ErrContentBlocked = errors.New("content blocked by safety filters")
	ErrEmptyResponse  = errors.New("model returned an empty response")

	// Rate limiting errors
	ErrRateLimit = errors.New("rate limit exceeded")

	// Authentication errors
	ErrAuthentication = errors.New("authentication failed")

	// Network errors
	ErrNetwork            = errors.New("network error")
	ErrTimeout            = errors.New("request timeout")
	ErrServiceUnavailable = errors.New("service unavailable")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrorCode represents a provider error code.
type ErrorCode string

const (
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeEmptyResponse  ErrorCode = "empty_response"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeTimeout        ErrorCode = "timeout"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
)

var sentinelByCode = map[ErrorCode]error{
	ErrorCodeContentBlocked: ErrContentBlocked,
	ErrorCodeEmptyResponse:  ErrEmptyResponse,
	ErrorCodeRateLimit:      ErrRateLimit,
	ErrorCodeAuth:           ErrAuthentication,
	ErrorCodeNetwork:        ErrNetwork,
	ErrorCodeTimeout:        ErrTimeout,
	ErrorCodeUnavailable:    ErrServiceUnavailable,
	ErrorCodeInvalidRequest: ErrInvalidRequest,
}

// ProviderError wraps errors with additional context.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Underlying error
	Retryable  bool
	RetryAfter *time.Duration
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// Is matches the sentinel for the error's code, so errors.Is(err, ErrRateLimit)
// works on a *ProviderError.
func (e *ProviderError) Is(target error) bool {
	return sentinelByCode[e.Code] == target
}

// HTTPStatus returns the upstream status code, or zero when there was none.
func (e *ProviderError) HTTPStatus() int {
	return e.StatusCode
}

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// FromStatus maps an HTTP status from a provider API into a ProviderError.
func FromStatus(status int, message string, err error) *ProviderError {
	pe := &ProviderError{StatusCode: status, Message: message, Underlying: err}
	switch {
	case status == 401 || status == 403:
		pe.Code = ErrorCodeAuth
		pe.Message = "authentication failed"
	case status == 429:
		pe.Code = ErrorCodeRateLimit
		pe.Message = "rate limit exceeded"
		pe.Retryable = true
	case status == 400:
		pe.Code = ErrorCodeInvalidRequest
		pe.Message = fmt.Sprintf("invalid request: %s", message)
	case status >= 500 && status <= 504:
		pe.Code = ErrorCodeUnavailable
		pe.Message = "service unavailable"
		pe.Retryable = true
	default:
		pe.Code = ErrorCodeNetwork
		pe.Message = fmt.Sprintf("API error: %s", message)
		pe.Retryable = true
	}
	return pe
}
