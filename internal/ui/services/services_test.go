package services

import (
	"errors"
	"testing"

	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockMarkdownRenderer struct {
	RenderFunc func(string, int) (string, error)
}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(content, width)
	}
	return content, nil
}

func sampleCode() *pipeline.CodeResult {
	return &pipeline.CodeResult{
		TestCode:  "def test_add():\n    assert add(1, 2) == 3\n",
		Filename:  "test_calc.py",
		Language:  "Python",
		Framework: "pytest",
	}
}

func TestCodeMarkdown_FencesCodeWithLanguage(t *testing.T) {
	md := CodeMarkdown(sampleCode())
	assert.Contains(t, md, "**test_calc.py** · pytest · Python")
	assert.Contains(t, md, "```python\ndef test_add():")
	assert.Contains(t, md, "== 3\n```")
}

func TestCodeMarkdown_NilIsEmpty(t *testing.T) {
	assert.Empty(t, CodeMarkdown(nil))
	assert.Empty(t, DiffMarkdown(nil))
}

func TestDiffMarkdown_ShowsAddedLines(t *testing.T) {
	md := DiffMarkdown(sampleCode())
	assert.Contains(t, md, "```diff")
	assert.Contains(t, md, "+++ b/test_calc.py")
	assert.Contains(t, md, "+def test_add():")
}

func TestRenderMarkdown_DelegatesAndFallsBack(t *testing.T) {
	out, err := RenderMarkdown("x", 80, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", out)

	r := &MockMarkdownRenderer{RenderFunc: func(s string, w int) (string, error) {
		assert.Equal(t, 40, w)
		return "<" + s + ">", nil
	}}
	out, err = RenderMarkdown("x", 40, r)
	require.NoError(t, err)
	assert.Equal(t, "<x>", out)

	failing := &MockMarkdownRenderer{RenderFunc: func(string, int) (string, error) { return "", errors.New("bad") }}
	_, err = RenderMarkdown("x", 40, failing)
	assert.Error(t, err)
}

func TestGlamourRenderer_RendersCodeFence(t *testing.T) {
	r := NewGlamourRenderer("notty")
	out, err := r.Render("```python\nprint(1)\n```", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "print(1)")
}
