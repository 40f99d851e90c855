package gitlocal

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNoOrigin = errors.New("repository has no origin remote")
)

// OpenError is returned when a directory cannot be opened as a git repository.
type OpenError struct {
	Path  string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open git repository at %s: %v", e.Path, e.Cause)
}
func (e *OpenError) Unwrap() error { return e.Cause }

// FileNotFoundError is returned when a path is not present in the HEAD tree.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found at HEAD: %s", e.Path)
}
