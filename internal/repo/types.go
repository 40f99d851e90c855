package repo

import "path"

// RepositoryFile is a single entry in a flat repository listing.
// Path is slash-delimited and unique within a listing.
type RepositoryFile struct {
	Path string `json:"path" yaml:"path"`
	Size *int64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// Name returns the final path segment.
func (f RepositoryFile) Name() string {
	return path.Base(f.Path)
}

// Repository describes the repository a listing belongs to.
type Repository struct {
	FullName      string `json:"full_name" yaml:"full_name"`
	Owner         string `json:"owner" yaml:"owner"`
	Name          string `json:"name" yaml:"name"`
	URL           string `json:"url,omitempty" yaml:"url,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Paths returns the paths of files in listing order.
func Paths(files []RepositoryFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

// SizeOf is a helper for building RepositoryFile literals.
func SizeOf(n int64) *int64 {
	return &n
}
