package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/testgen/internal/tree"
	"github.com/Cyclone1070/testgen/internal/ui/models"
)

// RenderTree draws the visible part of the file tree, scrolled so the
// cursor stays within height lines.
func RenderTree(s models.State, height int) string {
	if s.Session == nil || s.Session.Tree().Empty() {
		return MutedStyle.Render("No files.")
	}

	nodes := s.Session.Tree().Visible()
	start, end := window(len(nodes), s.TreeCursor, height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, treeLine(s, nodes[i], i == s.TreeCursor))
	}
	return strings.Join(lines, "\n")
}

func treeLine(s models.State, n *tree.Node, cursor bool) string {
	indent := strings.Repeat("  ", n.Depth())

	var line string
	if n.IsDir() {
		arrow := "▸"
		if n.Expanded {
			arrow = "▾"
		}
		line = fmt.Sprintf("%s%s %s/ %s", indent, arrow, n.Name, MutedStyle.Render(fmt.Sprintf("(%d)", tree.FileCount(n))))
	} else {
		box := "[ ]"
		if s.Session.IsSelected(n.Path) {
			box = SelectedStyle.Render("[x]")
		}
		line = fmt.Sprintf("%s%s %s", indent, box, n.Name)
	}

	if cursor {
		return CursorStyle.Render("›") + line
	}
	return " " + line
}

// window returns the [start, end) range of n rows that keeps cursor visible.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
