package views

import (
	"testing"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState(t *testing.T) models.State {
	t.Helper()
	st := session.New("acme/shop", 5)
	st.SetFiles([]repo.RepositoryFile{{Path: "src/app.py"}, {Path: "src/util.py"}, {Path: "README.md"}})
	require.NoError(t, st.Toggle("src/app.py"))
	return models.State{
		Session:  st,
		Width:    100,
		Height:   30,
		Spinner:  spinner.New(),
		Viewport: viewport.New(60, 10),
	}
}

func TestRenderTree_ShowsSelectionAndCounts(t *testing.T) {
	s := testState(t)
	out := RenderTree(s, 10)

	assert.Contains(t, out, "▾ src/")
	assert.Contains(t, out, "(2)")
	assert.Contains(t, out, "[x] app.py")
	assert.Contains(t, out, "[ ] util.py")
	assert.Contains(t, out, "README.md")
}

func TestRenderTree_Empty(t *testing.T) {
	s := testState(t)
	s.Session = session.New("x", 5)
	assert.Contains(t, RenderTree(s, 10), "No files")
}

func TestWindow_KeepsCursorVisible(t *testing.T) {
	start, end := window(100, 50, 10)
	assert.Equal(t, 45, start)
	assert.Equal(t, 55, end)

	start, end = window(100, 99, 10)
	assert.Equal(t, 90, start)
	assert.Equal(t, 100, end)

	start, end = window(5, 3, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}

func TestRenderSuggestions_LabelsSynthesized(t *testing.T) {
	s := testState(t)
	s.Session.SetFramework("pytest")
	tk, err := s.Session.Begin(session.ActionSuggestions)
	require.NoError(t, err)
	require.NoError(t, s.Session.ApplySuggestions(tk, pipeline.SuggestionsResult{
		Suggestions: pipeline.Synthesize("src/app.py", "pytest"),
		Strategy:    pipeline.StrategySynthesis,
	}))

	out := RenderSuggestions(s)
	assert.Contains(t, out, "Template suggestions")
	assert.Contains(t, out, "1. Test function return values and data types in app.py")
}

func TestRenderSuggestions_EmptyPrompt(t *testing.T) {
	assert.Contains(t, RenderSuggestions(testState(t)), "press g")
}

func TestRenderHeader_ShowsFrameworkAndCount(t *testing.T) {
	s := testState(t)
	assert.Contains(t, RenderHeader(s), "detecting")

	tk, _ := s.Session.Begin(session.ActionFramework)
	_, err := s.Session.ApplyFramework(tk, framework.Decision{Tag: "pytest", Provenance: framework.ProvenanceMarker})
	require.NoError(t, err)

	out := RenderHeader(s)
	assert.Contains(t, out, "acme/shop")
	assert.Contains(t, out, "pytest (marker)")
	assert.Contains(t, out, "1/5 selected")
}

func TestRenderStatus_Phases(t *testing.T) {
	s := testState(t)
	assert.Contains(t, RenderStatus(s), "Ready")

	s.StatusPhase = models.PhaseWorking
	s.StatusMessage = "Generating suggestions"
	s.DotCount = 2
	assert.Contains(t, RenderStatus(s), "Generating suggestions..")

	s.StatusPhase = models.PhaseError
	s.StatusMessage = "boom"
	assert.Contains(t, RenderStatus(s), "✘ boom")

	s.StatusPhase = models.PhaseDone
	assert.Contains(t, RenderStatus(s), "✔ boom")
}

func TestRenderRoot_IncludesAllPanes(t *testing.T) {
	out := RenderRoot(testState(t))
	assert.Contains(t, out, "acme/shop")
	assert.Contains(t, out, "app.py")
	assert.Contains(t, out, "press g")
	assert.Contains(t, out, "Ready")
}

func TestFormatCodeContent_DiffToggle(t *testing.T) {
	code := &pipeline.CodeResult{TestCode: "x = 1", Filename: "test_a.py", Language: "python", Framework: "pytest"}
	assert.Contains(t, FormatCodeContent(code, 80, false, nil), "```python")
	assert.Contains(t, FormatCodeContent(code, 80, true, nil), "+x = 1")
	assert.Empty(t, FormatCodeContent(nil, 80, false, nil))
}

func TestUsePalette_RebuildsStyles(t *testing.T) {
	defer UsePalette(Palette{Primary: "63", Muted: "241", Success: "42", Error: "196"})
	UsePalette(Palette{Primary: "200"})
	assert.Equal(t, "200", string(ColorPrimary))
}
