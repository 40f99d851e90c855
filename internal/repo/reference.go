package repo

import (
	"strings"
)

const githubHost = "github.com"

// Reference identifies a hosted repository by owner and name.
type Reference struct {
	Owner string
	Name  string
}

// FullName returns "owner/name".
func (r Reference) FullName() string {
	return r.Owner + "/" + r.Name
}

// URL returns the public https URL for the repository.
func (r Reference) URL() string {
	return "https://" + githubHost + "/" + r.FullName()
}

// ParseReference accepts "owner/repo", "github.com/owner/repo" and
// http(s) URLs, with or without a trailing ".git" or slash.
func ParseReference(input string) (Reference, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Reference{}, ErrEmptyReference
	}

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimPrefix(s, "git@"+githubHost+":")
	s = strings.TrimPrefix(s, githubHost+"/")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Reference{}, &InvalidReferenceError{Input: input}
	}
	// Anything after owner/repo (tree/main/...) is ignored.
	if strings.Contains(parts[0], ".") || strings.Contains(parts[0], ":") {
		return Reference{}, &InvalidReferenceError{Input: input}
	}

	return Reference{Owner: parts[0], Name: parts[1]}, nil
}

// ToRepository builds a Repository record for the reference.
func (r Reference) ToRepository() Repository {
	return Repository{
		FullName: r.FullName(),
		Owner:    r.Owner,
		Name:     r.Name,
		URL:      r.URL(),
	}
}
