package session

import "errors"

// -- Sentinels --

var (
	// ErrAlreadyInFlight is returned by Begin while the same action runs.
	ErrAlreadyInFlight = errors.New("action already in flight")

	// ErrStaleResult is returned when a result arrives for a context that
	// has since changed. The result is discarded.
	ErrStaleResult = errors.New("result is stale")

	// ErrUnknownTicket is returned for a ticket that is not in flight.
	ErrUnknownTicket = errors.New("unknown ticket")

	// ErrNoSuggestion is returned when code is requested without a suggestion.
	ErrNoSuggestion = errors.New("no suggestion selected")
)
