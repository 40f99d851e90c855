package framework

import (
	"path"
	"strings"
)

// DefaultTag is returned when nothing in the listing points anywhere else.
const DefaultTag = "selenium"

// Language describes a source language and its conventional test framework.
type Language struct {
	Name      string
	Family    string
	Framework string
}

var languagesByExtension = map[string]Language{
	".py":    {Name: "python", Family: "python", Framework: "pytest"},
	".js":    {Name: "javascript", Family: "javascript", Framework: "jest"},
	".jsx":   {Name: "javascript", Family: "javascript", Framework: "jest"},
	".ts":    {Name: "typescript", Family: "javascript", Framework: "jest"},
	".tsx":   {Name: "typescript", Family: "javascript", Framework: "jest"},
	".java":  {Name: "java", Family: "java", Framework: "junit"},
	".go":    {Name: "go", Family: "go", Framework: "testing"},
	".rb":    {Name: "ruby", Family: "ruby", Framework: "rspec"},
	".php":   {Name: "php", Family: "php", Framework: "phpunit"},
	".cs":    {Name: "csharp", Family: "csharp", Framework: "nunit"},
	".swift": {Name: "swift", Family: "swift", Framework: "xctest"},
	".cpp":   {Name: "cpp", Family: "cpp", Framework: "gtest"},
	".cc":    {Name: "cpp", Family: "cpp", Framework: "gtest"},
	".c":     {Name: "c", Family: "c", Framework: "unity"},
	".h":     {Name: "c", Family: "c", Framework: "unity"},
}

// LanguageOf returns the language for a file path, keyed by extension.
func LanguageOf(filePath string) (Language, bool) {
	lang, ok := languagesByExtension[Extension(filePath)]
	return lang, ok
}

// Extension returns the lower-cased extension including the dot.
func Extension(filePath string) string {
	return strings.ToLower(path.Ext(filePath))
}

// Marker is a well-known file whose presence implies a tooling convention.
type Marker struct {
	Tag string
	// Family is empty for end-to-end browser markers.
	Family string
	// Names match the lower-cased base name exactly.
	Names []string
	// Prefixes match the start of the lower-cased base name.
	Prefixes []string
	// Suffixes match the end of the lower-cased base name.
	Suffixes []string
	// Dirs match any lower-cased directory segment.
	Dirs []string
}

// E2E reports whether the marker belongs to a browser-automation tool.
func (m Marker) E2E() bool {
	return m.Family == ""
}

func (m Marker) matchName(base string) bool {
	for _, n := range m.Names {
		if base == n {
			return true
		}
	}
	for _, p := range m.Prefixes {
		if strings.HasPrefix(base, p) {
			return true
		}
	}
	for _, s := range m.Suffixes {
		if strings.HasSuffix(base, s) {
			return true
		}
	}
	return false
}

func (m Marker) matchDir(dir string) bool {
	for _, d := range m.Dirs {
		if dir == d {
			return true
		}
	}
	return false
}

// markers is in precedence order: end-to-end tools first, then
// language-specific configuration files.
var markers = []Marker{
	{Tag: "cypress", Prefixes: []string{"cypress.config", "cypress.json"}, Dirs: []string{"cypress"}},
	{Tag: "playwright", Prefixes: []string{"playwright.config"}, Dirs: []string{"playwright"}},
	{Tag: "selenium", Prefixes: []string{"selenium"}, Dirs: []string{"selenium"}},

	{Tag: "pytest", Family: "python", Names: []string{"conftest.py", "pytest.ini"}},
	{Tag: "jest", Family: "javascript", Prefixes: []string{"jest.config", "jest.setup"}},
	{Tag: "vitest", Family: "javascript", Prefixes: []string{"vitest.config"}},
	{Tag: "mocha", Family: "javascript", Prefixes: []string{".mocharc"}},
	{Tag: "junit", Family: "java", Names: []string{"pom.xml", "build.gradle", "build.gradle.kts"}},
	{Tag: "nunit", Family: "csharp", Suffixes: []string{".csproj"}},
	{Tag: "rspec", Family: "ruby", Names: []string{".rspec", "spec_helper.rb"}},
	{Tag: "phpunit", Family: "php", Names: []string{"phpunit.xml", "phpunit.xml.dist"}},
	{Tag: "testing", Family: "go", Names: []string{"go.mod"}},
}

// Markers returns the marker catalog in precedence order.
func Markers() []Marker {
	out := make([]Marker, len(markers))
	copy(out, markers)
	return out
}

// recognise returns the marker keys a path contributes. Keys are the
// lower-cased base name, or the directory segment with a trailing slash.
func recognise(filePath string) []string {
	lower := strings.ToLower(filePath)
	segments := strings.Split(lower, "/")
	base := segments[len(segments)-1]

	var keys []string
	for _, m := range markers {
		if m.matchName(base) {
			keys = append(keys, base)
			break
		}
	}
	for _, dir := range segments[:len(segments)-1] {
		for _, m := range markers {
			if m.matchDir(dir) {
				keys = append(keys, dir+"/")
				break
			}
		}
	}
	return keys
}

// markerFor maps a key produced by recognise back to its marker.
func markerFor(key string) (Marker, bool) {
	if dir, ok := strings.CutSuffix(key, "/"); ok {
		for _, m := range markers {
			if m.matchDir(dir) {
				return m, true
			}
		}
		return Marker{}, false
	}
	for _, m := range markers {
		if m.matchName(key) {
			return m, true
		}
	}
	return Marker{}, false
}

// Available lists frameworks applicable to filePath: the language default,
// the other frameworks of its family, then end-to-end tools.
func Available(filePath string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(tag string) {
		if tag != "" && !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}

	if lang, ok := LanguageOf(filePath); ok {
		add(lang.Framework)
		for _, m := range markers {
			if m.Family == lang.Family {
				add(m.Tag)
			}
		}
	}
	for _, m := range markers {
		if m.E2E() {
			add(m.Tag)
		}
	}
	return out
}
