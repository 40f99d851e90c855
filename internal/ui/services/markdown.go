// Package services holds rendering helpers used by the workbench views.
package services

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour, caching one renderer per width.
type GlamourRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer using a standard glamour style
// ("dark", "light", "notty"). An empty style detects the terminal background.
func NewGlamourRenderer(style string) *GlamourRenderer {
	return &GlamourRenderer{style: style, renderers: map[int]*glamour.TermRenderer{}}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	r, ok := g.renderers[width]
	if !ok {
		styleOpt := glamour.WithAutoStyle()
		if g.style != "" {
			styleOpt = glamour.WithStandardStyle(g.style)
		}
		var err error
		r, err = glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return "", err
		}
		g.renderers[width] = r
	}
	return r.Render(content)
}

// RenderMarkdown renders content, returning it unchanged without a renderer.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if renderer == nil {
		return content, nil
	}
	return renderer.Render(content, width)
}
