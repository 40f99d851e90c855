package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui/models"
)

// RenderSuggestions draws the suggestion list.
func RenderSuggestions(s models.State) string {
	if s.Session == nil {
		return ""
	}
	if s.Session.Status(session.ActionSuggestions) == session.StatusInFlight {
		return MutedStyle.Render("Generating suggestions...")
	}

	res := s.Session.Suggestions()
	if len(res.Suggestions) == 0 {
		return MutedStyle.Render("Select files and press g to generate suggestions.")
	}

	var lines []string
	if res.Synthesized() {
		lines = append(lines, SynthesizedBadge.Render("Template suggestions (generation service unavailable)"))
	}
	chosen, chosenErr := s.Session.Chosen()
	for i, sg := range res.Suggestions {
		marker := " "
		if chosenErr == nil && chosen.ID == sg.ID {
			marker = SelectedStyle.Render("●")
		}
		line := fmt.Sprintf("%s %d. %s", marker, sg.ID, sg.Summary)
		if i == s.SuggestionCursor && s.Focus == models.FocusSuggestions {
			line = CursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
