package gitlocal

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreMatcher filters listing paths through .gitignore patterns.
// A nil matcher never ignores.
type ignoreMatcher struct {
	matcher gitignore.Matcher
}

func newIgnoreMatcher(content string) *ignoreMatcher {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &ignoreMatcher{}
	}
	return &ignoreMatcher{matcher: gitignore.NewMatcher(patterns)}
}

// shouldIgnore reports whether a slash-delimited path, or any of its
// parent directories, is matched.
func (m *ignoreMatcher) shouldIgnore(path string) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(path)
	for i := 1; i < len(segments); i++ {
		if m.matcher.Match(segments[:i], true) {
			return true
		}
	}
	return m.matcher.Match(segments, false)
}

// splitPath drops empty and "." segments.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
