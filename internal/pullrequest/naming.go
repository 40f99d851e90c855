// Package pullrequest prepares and opens pull requests carrying generated
// test code.
package pullrequest

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// maxSummaryLen bounds, in characters, the suggestion summary quoted in
// commit messages.
const maxSummaryLen = 50

// TestFilename derives a conventional test file name for source under framework.
func TestFilename(source, framework string) string {
	base := path.Base(source)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		base = "generated"
	}

	switch framework {
	case "pytest":
		return "test_" + base + ".py"
	case "jest":
		return base + ".test.js"
	case "vitest":
		return base + ".test.ts"
	case "mocha":
		return base + ".spec.js"
	case "cypress", "playwright":
		return base + ".spec.js"
	case "junit":
		return exportName(base) + "Test.java"
	case "testing":
		return base + "_test.go"
	case "rspec":
		return base + "_spec.rb"
	case "phpunit":
		return exportName(base) + "Test.php"
	case "nunit":
		return exportName(base) + "Tests.cs"
	case "xctest":
		return exportName(base) + "Tests.swift"
	default:
		return "test_" + base + ".py"
	}
}

func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var (
	invalidBranchChars = regexp.MustCompile(`[^a-zA-Z0-9\-_/]`)
	dashRuns           = regexp.MustCompile(`-+`)
)

// BranchName returns "testgen/<filename>-<unix millis>" made safe for git.
func BranchName(filename string, now time.Time) string {
	raw := fmt.Sprintf("testgen/%s-%d", strings.ReplaceAll(filename, ".", "-"), now.UnixMilli())
	return sanitizeBranch(raw)
}

func sanitizeBranch(name string) string {
	name = invalidBranchChars.ReplaceAllString(name, "-")
	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.TrimLeft(name, "/")
	name = strings.Trim(name, "-")
	if name == "" {
		return "test-branch"
	}
	return name
}

// CommitMessage returns the commit message for a generated test file.
func CommitMessage(filename, summary string) string {
	if r := []rune(summary); len(r) > maxSummaryLen {
		summary = string(r[:maxSummaryLen]) + "..."
	}
	return fmt.Sprintf("Add %s\n\nGenerated test for: %s", filename, summary)
}

// Preview renders the change to filename as a unified diff. existing is
// empty for a new file.
func Preview(filename, existing, generated string) string {
	from := "a/" + filename
	if existing == "" {
		from = "/dev/null"
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(existing),
		B:        difflib.SplitLines(generated),
		FromFile: from,
		ToFile:   "b/" + filename,
		Context:  3,
	}
	diff, _ := difflib.GetUnifiedDiffString(ud)
	return diff
}
