package handoff

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	// ErrSnapshotMissing is returned by Take when no snapshot was published.
	ErrSnapshotMissing = errors.New("no working set snapshot; run analyze first")
)

// CorruptSnapshotError is returned when the stored slot cannot be decoded
// or fails validation. The slot is cleared either way.
type CorruptSnapshotError struct {
	Cause error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("stored snapshot is invalid: %v", e.Cause)
}
func (e *CorruptSnapshotError) Unwrap() error { return e.Cause }
