package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// -- Sentinels --

var (
	// ErrAuthenticationRequired is returned when an operation needs a
	// bound repository or session and has neither.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrNoTargetFiles is returned by RequestCode for an empty selection.
	ErrNoTargetFiles = errors.New("no target files selected")
)

// TransportError wraps a failed call to a remote strategy, timeouts included.
type TransportError struct {
	Strategy string
	Cause    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("strategy %s: transport failure: %v", e.Strategy, e.Cause)
}
func (e *TransportError) Unwrap() error { return e.Cause }

// ShapeValidationError is returned when a payload does not have the
// required shape.
type ShapeValidationError struct {
	Strategy string
	Cause    error
}

func (e *ShapeValidationError) Error() string {
	return fmt.Sprintf("strategy %s: invalid response shape: %v", e.Strategy, e.Cause)
}
func (e *ShapeValidationError) Unwrap() error { return e.Cause }

// CascadeExhaustedError is returned when every strategy in a plan failed.
type CascadeExhaustedError struct {
	Action   Action
	Attempts []error
}

func (e *CascadeExhaustedError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: all %d strategies failed: [%s]", e.Action, len(e.Attempts), strings.Join(msgs, "; "))
}

// Unwrap exposes every attempt error to errors.Is and errors.As.
func (e *CascadeExhaustedError) Unwrap() []error { return e.Attempts }

// Category groups failures into user-actionable kinds.
type Category string

const (
	CategoryExpiredSession Category = "expired_session"
	CategoryPermission     Category = "permission"
	CategoryNotFound       Category = "not_found"
	CategoryAuthRequired   Category = "auth_required"
	CategoryGeneric        Category = "generic"
)

// statusCoder is implemented by errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// Categorize maps an error from the code or pull request paths to a category.
// The first status-carrying error found in the chain decides.
func Categorize(err error) Category {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrAuthenticationRequired) {
		return CategoryAuthRequired
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		switch sc.HTTPStatus() {
		case 401:
			return CategoryExpiredSession
		case 403:
			return CategoryPermission
		case 404:
			return CategoryNotFound
		}
	}
	return CategoryGeneric
}

// UserMessage returns a short actionable message for err.
func UserMessage(err error) string {
	switch Categorize(err) {
	case "":
		return ""
	case CategoryExpiredSession:
		return "Your session has expired. Sign in again and retry."
	case CategoryPermission:
		return "You do not have permission to access this repository."
	case CategoryNotFound:
		return "The repository or file could not be found."
	case CategoryAuthRequired:
		return "This action needs a connected repository. Sign in or analyze a repository first."
	default:
		return "Test generation failed. Please try again."
	}
}
