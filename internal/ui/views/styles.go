package views

import "github.com/charmbracelet/lipgloss"

// Palette holds the ANSI colors used by the workbench.
type Palette struct {
	Primary string
	Muted   string
	Success string
	Error   string
}

var (
	ColorPrimary = lipgloss.Color("63")
	ColorMuted   = lipgloss.Color("241")
	ColorSuccess = lipgloss.Color("42")
	ColorError   = lipgloss.Color("196")
)

var (
	HeaderStyle        lipgloss.Style
	PaneStyle          lipgloss.Style
	FocusedPaneStyle   lipgloss.Style
	CursorStyle        lipgloss.Style
	SelectedStyle      lipgloss.Style
	MutedStyle         lipgloss.Style
	StatusDefaultStyle lipgloss.Style
	StatusWorkingStyle lipgloss.Style
	StatusDoneStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	SynthesizedBadge   lipgloss.Style
)

func init() {
	buildStyles()
}

// UsePalette replaces the colors and rebuilds every style.
// Empty entries keep the current color.
func UsePalette(p Palette) {
	if p.Primary != "" {
		ColorPrimary = lipgloss.Color(p.Primary)
	}
	if p.Muted != "" {
		ColorMuted = lipgloss.Color(p.Muted)
	}
	if p.Success != "" {
		ColorSuccess = lipgloss.Color(p.Success)
	}
	if p.Error != "" {
		ColorError = lipgloss.Color(p.Error)
	}
	buildStyles()
}

func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	PaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorMuted).Padding(0, 1)
	FocusedPaneStyle = PaneStyle.BorderForeground(ColorPrimary)
	CursorStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusDefaultStyle = lipgloss.NewStyle().Padding(0, 1)
	StatusWorkingStyle = StatusDefaultStyle.Foreground(ColorPrimary)
	StatusDoneStyle = StatusDefaultStyle.Foreground(ColorSuccess)
	StatusErrorStyle = StatusDefaultStyle.Foreground(ColorError)
	SynthesizedBadge = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
}
