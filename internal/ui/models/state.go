// Package models holds the workbench view state.
package models

import (
	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
)

// Focus is the pane receiving navigation keys.
type Focus int

const (
	FocusTree Focus = iota
	FocusSuggestions
	FocusCode
)

// Status phases shown in the status bar.
const (
	PhaseReady   = ""
	PhaseWorking = "working"
	PhaseDone    = "done"
	PhaseError   = "error"
)

// State is everything the views need to draw one frame.
type State struct {
	Session *session.State

	Width  int
	Height int

	Focus            Focus
	TreeCursor       int
	SuggestionCursor int

	Spinner  spinner.Model
	Viewport viewport.Model
	DotCount int
	ShowDiff bool

	StatusPhase   string
	StatusMessage string

	PullRequestURL string
}
