package session

import (
	"errors"
	"testing"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/handoff"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/Cyclone1070/testgen/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func files(paths ...string) []repo.RepositoryFile {
	out := make([]repo.RepositoryFile, len(paths))
	for i, p := range paths {
		out[i] = repo.RepositoryFile{Path: p}
	}
	return out
}

func newState(t *testing.T) *State {
	t.Helper()
	s := New("acme/shop", 5)
	s.SetFiles(files("src/app.py", "src/util.py", "tests/conftest.py", "README.md"))
	return s
}

func suggestions(n int) pipeline.SuggestionsResult {
	out := make([]pipeline.Suggestion, n)
	for i := range out {
		out[i] = pipeline.Suggestion{ID: i + 1, Summary: "case", Framework: "pytest"}
	}
	return pipeline.SuggestionsResult{Suggestions: out, Strategy: pipeline.StrategyPublic}
}

// --- HAPPY PATH TESTS ---

func TestFromSnapshot_AllModeWithPreselected_SelectsAndArmsFollowUp(t *testing.T) {
	snap := &handoff.WorkingSetSnapshot{
		RepositoryReference: "acme/shop",
		Files:               files("a.py", "b.py", "c.py", "d.py", "e.py", "f.py"),
		GenerateMode:        selection.ModeAll,
		PreSelectedFiles:    []string{"a.py", "b.py", "c.py", "d.py", "e.py"},
	}
	s := FromSnapshot(snap, 5)

	assert.Equal(t, []string{"a.py", "b.py", "c.py", "d.py", "e.py"}, s.Selected())

	tk, err := s.Begin(ActionFramework)
	require.NoError(t, err)
	followUp, err := s.ApplyFramework(tk, framework.Decision{Tag: "pytest", Provenance: framework.ProvenanceExtensionMajority})
	require.NoError(t, err)
	assert.True(t, followUp)

	tk, err = s.Begin(ActionFramework)
	require.NoError(t, err)
	followUp, err = s.ApplyFramework(tk, framework.Decision{Tag: "pytest"})
	require.NoError(t, err)
	assert.False(t, followUp, "follow-up fires once")
}

func TestFromSnapshot_AllModeWithoutPreselected_SelectsEverything(t *testing.T) {
	snap := &handoff.WorkingSetSnapshot{
		RepositoryReference: "acme/shop",
		Files:               files("a.py", "b.py", "c.py", "d.py", "e.py", "f.py", "g.py"),
		GenerateMode:        selection.ModeAll,
	}
	s := FromSnapshot(snap, 5)

	assert.Len(t, s.Selected(), 7)
	assert.Equal(t, selection.ModeAll, s.Mode())
	assert.Len(t, s.Request().TargetFiles, pipeline.MaxTargetFiles)
}

func TestFromSnapshot_Selective_StartsEmptyWithoutFollowUp(t *testing.T) {
	snap := &handoff.WorkingSetSnapshot{
		RepositoryReference: "acme/shop",
		Files:               files("a.py"),
		GenerateMode:        selection.ModeSelective,
	}
	s := FromSnapshot(snap, 5)
	assert.Empty(t, s.Selected())

	require.NoError(t, s.Toggle("a.py"))
	tk, _ := s.Begin(ActionFramework)
	followUp, err := s.ApplyFramework(tk, framework.Decision{Tag: "pytest"})
	require.NoError(t, err)
	assert.False(t, followUp)
}

func TestApplySuggestions_MatchingContext_Applies(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.Toggle("src/app.py"))
	s.SetFramework("pytest")

	tk, err := s.Begin(ActionSuggestions)
	require.NoError(t, err)
	assert.Equal(t, StatusInFlight, s.Status(ActionSuggestions))
	assert.NotEmpty(t, tk.ID)

	require.NoError(t, s.ApplySuggestions(tk, suggestions(3)))
	assert.Equal(t, StatusSucceeded, s.Status(ActionSuggestions))
	assert.Len(t, s.Suggestions().Suggestions, 3)
}

func TestRequest_UsesFullNameWhenAuthenticated(t *testing.T) {
	snap := &handoff.WorkingSetSnapshot{
		RepositoryReference: "https://github.com/acme/shop",
		Repository:          &repo.Repository{FullName: "acme/shop"},
		Files:               files("a.py"),
		GenerateMode:        selection.ModeSelective,
	}
	s := FromSnapshot(snap, 5)
	require.NoError(t, s.Toggle("a.py"))
	s.SetFramework("pytest")

	assert.Equal(t, "https://github.com/acme/shop", s.Request().RepositoryReference)
	s.SetAuthenticated(true)
	req := s.Request()
	assert.Equal(t, "acme/shop", req.RepositoryReference)
	assert.True(t, req.Authenticated)
	assert.Equal(t, "pytest", req.Framework)
}

func TestApplyCode_SuccessAndFailure(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.Toggle("src/app.py"))
	s.SetFramework("pytest")
	tk, _ := s.Begin(ActionSuggestions)
	require.NoError(t, s.ApplySuggestions(tk, suggestions(2)))
	require.True(t, s.Choose(2))

	tk, err := s.Begin(ActionCode)
	require.NoError(t, err)
	code := &pipeline.CodeResult{TestCode: "x", Filename: "test_app.py", Language: "python", Framework: "pytest"}
	require.NoError(t, s.ApplyCode(tk, code, nil))
	assert.Equal(t, code, s.Code())

	tk, _ = s.Begin(ActionCode)
	boom := errors.New("boom")
	require.NoError(t, s.ApplyCode(tk, nil, boom))
	assert.Nil(t, s.Code())
	assert.Equal(t, StatusFailed, s.Status(ActionCode))
	assert.ErrorIs(t, s.Err(ActionCode), boom)
}

// --- UNHAPPY PATH TESTS ---

func TestBegin_InFlight_Rejected(t *testing.T) {
	s := newState(t)
	_, err := s.Begin(ActionSuggestions)
	require.NoError(t, err)

	_, err = s.Begin(ActionSuggestions)
	assert.ErrorIs(t, err, ErrAlreadyInFlight)

	_, err = s.Begin(ActionFramework)
	assert.NoError(t, err, "other actions are independent")
}

func TestApplySuggestions_SelectionChanged_DiscardsStale(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.Toggle("src/app.py"))
	s.SetFramework("pytest")
	tk, _ := s.Begin(ActionSuggestions)

	require.NoError(t, s.Toggle("src/util.py"))
	err := s.ApplySuggestions(tk, suggestions(3))

	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Empty(t, s.Suggestions().Suggestions)
	assert.Equal(t, StatusIdle, s.Status(ActionSuggestions))

	_, err = s.Begin(ActionSuggestions)
	assert.NoError(t, err)
}

func TestApplySuggestions_FrameworkChanged_DiscardsStale(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.Toggle("src/app.py"))
	s.SetFramework("pytest")
	tk, _ := s.Begin(ActionSuggestions)

	s.SetFramework("selenium")
	assert.ErrorIs(t, s.ApplySuggestions(tk, suggestions(1)), ErrStaleResult)
}

func TestApply_UnknownTicket_Rejected(t *testing.T) {
	s := newState(t)
	err := s.ApplySuggestions(Ticket{ID: "nope", Key: Key{Context: "acme/shop", Action: ActionSuggestions}}, suggestions(1))
	assert.ErrorIs(t, err, ErrUnknownTicket)
}

func TestChosen_NoSuggestion_ReturnsError(t *testing.T) {
	s := newState(t)
	_, err := s.Chosen()
	assert.ErrorIs(t, err, ErrNoSuggestion)
	assert.False(t, s.Choose(1))
}

// --- EDGE CASE TESTS ---

func TestFramework_PrimaryChanged_NotReady(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.Toggle("src/app.py"))
	tk, _ := s.Begin(ActionFramework)
	_, err := s.ApplyFramework(tk, framework.Decision{Tag: "pytest", Provenance: framework.ProvenanceExtensionMajority})
	require.NoError(t, err)

	require.NoError(t, s.Toggle("src/util.py"))
	_, ok := s.Framework()
	assert.True(t, ok, "primary is still src/app.py")

	require.NoError(t, s.Toggle("src/app.py"))
	d, ok := s.Framework()
	assert.False(t, ok)
	assert.Equal(t, "pytest", d.Tag)

	tk, _ = s.Begin(ActionFramework)
	_, err = s.ApplyFramework(tk, framework.Decision{Tag: "pytest"})
	require.NoError(t, err)
	_, ok = s.Framework()
	assert.True(t, ok)
}

func TestSetFiles_KeepsExpansionAndPrunesSelection(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.Toggle("src/util.py"))
	require.True(t, s.Tree().Toggle("src"))

	s.SetFiles(files("src/app.py", "src/new.py"))

	assert.Empty(t, s.Selected())
	assert.False(t, s.Tree().Find("src").Expanded)
}

func TestToggle_RespectsCap(t *testing.T) {
	s := New("r", 2)
	s.SetFiles(files("a", "b", "c"))
	require.NoError(t, s.Toggle("a"))
	require.NoError(t, s.Toggle("b"))
	assert.ErrorIs(t, s.Toggle("c"), selection.ErrSelectionLimit)
	assert.Equal(t, 2, s.MaxSelect())
}
