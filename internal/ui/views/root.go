package views

import (
	"fmt"

	"github.com/Cyclone1070/testgen/internal/selection"
	"github.com/Cyclone1070/testgen/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderHeader shows the repository, framework and selection count.
func RenderHeader(s models.State) string {
	if s.Session == nil {
		return HeaderStyle.Render("testgen")
	}
	framework := "detecting..."
	if d, ok := s.Session.Framework(); ok {
		framework = fmt.Sprintf("%s (%s)", d.Tag, d.Provenance)
	}
	selected := len(s.Session.Selected())
	count := fmt.Sprintf("%d/%d selected", selected, s.Session.MaxSelect())
	if s.Session.Mode() == selection.ModeAll {
		count = fmt.Sprintf("%d selected (whole repository)", selected)
	}
	return HeaderStyle.Render(fmt.Sprintf("%s · %s · %s", s.Session.Reference(), framework, count))
}

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	width, height := s.Width, s.Height
	if width < 40 {
		width = 80
	}
	if height < 12 {
		height = 24
	}
	bodyHeight := height - 5
	leftWidth := width / 3
	rightWidth := width - leftWidth - 4

	left := paneStyle(s, models.FocusTree).
		Width(leftWidth).
		Height(bodyHeight).
		Render(RenderTree(s, bodyHeight))

	suggestionsHeight := bodyHeight / 3
	right := lipgloss.JoinVertical(lipgloss.Left,
		paneStyle(s, models.FocusSuggestions).Width(rightWidth).Height(suggestionsHeight).Render(RenderSuggestions(s)),
		paneStyle(s, models.FocusCode).Width(rightWidth).Height(bodyHeight-suggestionsHeight-2).Render(RenderCode(s)),
	)

	sections := []string{
		RenderHeader(s),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		RenderStatus(s),
		RenderHelp(),
	}
	if s.PullRequestURL != "" {
		sections = append(sections, SelectedStyle.Render("Pull request: "+s.PullRequestURL))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func paneStyle(s models.State, f models.Focus) lipgloss.Style {
	if s.Focus == f {
		return FocusedPaneStyle
	}
	return PaneStyle
}
