// Package handoff passes the analyzed working set from the analyze step to
// the generate step through a single persisted slot.
package handoff

import (
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/Cyclone1070/testgen/internal/selection"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WorkingSetSnapshot is the payload handed from producer to consumer.
type WorkingSetSnapshot struct {
	RepositoryReference string                `json:"repositoryReference" validate:"required"`
	Repository          *repo.Repository      `json:"repository,omitempty"`
	Files               []repo.RepositoryFile `json:"files" validate:"dive"`
	GenerateMode        selection.Mode        `json:"generateMode" validate:"required,oneof=selective all"`
	PreSelectedFiles    []string              `json:"preSelectedFiles,omitempty" validate:"dive,required"`
}

// Validate checks required fields and unique file paths.
func (s *WorkingSetSnapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.Files))
	for _, f := range s.Files {
		if f.Path == "" {
			return fmt.Errorf("file with empty path")
		}
		if seen[f.Path] {
			return fmt.Errorf("duplicate file path %q", f.Path)
		}
		seen[f.Path] = true
	}
	return nil
}

// Initial returns the selection a consumer should start from: the
// preselected files in "all" mode (every file when none were given),
// nothing in selective mode.
func (s *WorkingSetSnapshot) Initial() []string {
	if s.GenerateMode != selection.ModeAll {
		return nil
	}
	if len(s.PreSelectedFiles) > 0 {
		return append([]string(nil), s.PreSelectedFiles...)
	}
	return repo.Paths(s.Files)
}

// AutoGenerate reports whether the consumer must request suggestions
// without waiting for the user.
func (s *WorkingSetSnapshot) AutoGenerate() bool {
	return s.GenerateMode == selection.ModeAll
}

func encode(s *WorkingSetSnapshot) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return json.Marshal(s)
}

func decode(data []byte) (*WorkingSetSnapshot, error) {
	var s WorkingSetSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &CorruptSnapshotError{Cause: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &CorruptSnapshotError{Cause: err}
	}
	return &s, nil
}
