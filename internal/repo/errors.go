package repo

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrEmptyReference = errors.New("repository reference is empty")
)

// InvalidReferenceError is returned when a repository reference cannot be parsed.
type InvalidReferenceError struct {
	Input string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid repository reference %q: expected owner/repo or a github URL", e.Input)
}
