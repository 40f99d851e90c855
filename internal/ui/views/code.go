package views

import (
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui/models"
	"github.com/Cyclone1070/testgen/internal/ui/services"
)

// RenderCode draws the code pane.
func RenderCode(s models.State) string {
	if s.Session == nil {
		return ""
	}
	switch s.Session.Status(session.ActionCode) {
	case session.StatusInFlight:
		return MutedStyle.Render("Generating test code...")
	case session.StatusFailed:
		return StatusErrorStyle.Render(pipeline.UserMessage(s.Session.Err(session.ActionCode)))
	}
	if s.Session.Code() == nil {
		return MutedStyle.Render("Choose a suggestion and press enter to generate code.")
	}
	return s.Viewport.View()
}

// FormatCodeContent renders code for the viewport, as a diff when showDiff is set.
func FormatCodeContent(code *pipeline.CodeResult, width int, showDiff bool, renderer services.MarkdownRenderer) string {
	if code == nil {
		return ""
	}
	md := services.CodeMarkdown(code)
	if showDiff {
		md = services.DiffMarkdown(code)
	}
	rendered, err := services.RenderMarkdown(md, width, renderer)
	if err != nil {
		return code.TestCode
	}
	return rendered
}
