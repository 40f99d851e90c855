package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/testgen/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	switch s.StatusPhase {
	case models.PhaseWorking:
		dots := strings.Repeat(".", s.DotCount)
		return StatusWorkingStyle.Render(fmt.Sprintf("%s %s%s", s.Spinner.View(), s.StatusMessage, dots))
	case models.PhaseDone:
		return StatusDoneStyle.Render("✔ " + s.StatusMessage)
	case models.PhaseError:
		return StatusErrorStyle.Render("✘ " + s.StatusMessage)
	}
	if s.StatusMessage != "" {
		return StatusDefaultStyle.Render(s.StatusMessage)
	}
	return StatusDefaultStyle.Render("Ready")
}

// RenderHelp renders the key bindings line.
func RenderHelp() string {
	return MutedStyle.Render("↑/↓ move · space select · a all · f framework · g suggest · tab pane · enter open/generate · d diff · p pull request · q quit")
}
