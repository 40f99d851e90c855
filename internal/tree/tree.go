// Package tree projects a flat repository listing into a directory hierarchy.
package tree

import (
	"sort"
	"strings"

	"github.com/Cyclone1070/testgen/internal/repo"
)

// autoExpandDepth is the number of directory levels expanded after a build.
const autoExpandDepth = 2

// Node is either a directory or a file leaf.
type Node struct {
	Name     string
	Path     string
	Expanded bool

	// File is set for leaves only.
	File *repo.RepositoryFile

	dirs  map[string]*Node
	files map[string]*Node
	depth int
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.File == nil
}

// Depth is 0 for root-level nodes.
func (n *Node) Depth() int {
	return n.depth
}

// Children returns directories first, then files, each sorted by name.
func (n *Node) Children() []*Node {
	if !n.IsDir() {
		return nil
	}
	out := make([]*Node, 0, len(n.dirs)+len(n.files))
	out = append(out, sortedNodes(n.dirs)...)
	out = append(out, sortedNodes(n.files)...)
	return out
}

func sortedNodes(m map[string]*Node) []*Node {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Node, len(names))
	for i, name := range names {
		out[i] = m[name]
	}
	return out
}

func newDir(name, path string, depth int) *Node {
	return &Node{
		Name:     name,
		Path:     path,
		Expanded: depth < autoExpandDepth,
		dirs:     map[string]*Node{},
		files:    map[string]*Node{},
		depth:    depth,
	}
}

// Tree is the projected forest under a virtual root.
type Tree struct {
	root *Node
}

// Build projects files into a tree. Duplicate paths collapse to one leaf
// and the last occurrence wins.
func Build(files []repo.RepositoryFile) *Tree {
	root := newDir("", "", -1)

	for _, f := range files {
		segments := split(f.Path)
		if len(segments) == 0 {
			continue
		}

		current := root
		for i, segment := range segments[:len(segments)-1] {
			next, ok := current.dirs[segment]
			if !ok {
				next = newDir(segment, strings.Join(segments[:i+1], "/"), i)
				current.dirs[segment] = next
			}
			current = next
		}

		name := segments[len(segments)-1]
		file := repo.RepositoryFile{Path: strings.Join(segments, "/"), Size: f.Size}
		current.files[name] = &Node{
			Name:  name,
			Path:  file.Path,
			File:  &file,
			depth: len(segments) - 1,
		}
	}

	return &Tree{root: root}
}

func split(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Roots returns the root-level nodes in display order.
func (t *Tree) Roots() []*Node {
	return t.root.Children()
}

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool {
	return len(t.root.dirs) == 0 && len(t.root.files) == 0
}

// Find walks path segment by segment. Directories are preferred over files
// when both share a name. Returns nil when the path is absent.
func (t *Tree) Find(path string) *Node {
	segments := split(path)
	if len(segments) == 0 {
		return nil
	}
	current := t.root
	for i, segment := range segments {
		if next, ok := current.dirs[segment]; ok {
			current = next
			continue
		}
		if next, ok := current.files[segment]; ok && i == len(segments)-1 {
			return next
		}
		return nil
	}
	return current
}

// Toggle flips the expanded flag of the directory at path.
// It returns false and does nothing when no such directory exists.
func (t *Tree) Toggle(path string) bool {
	n := t.Find(path)
	if n == nil || !n.IsDir() {
		return false
	}
	n.Expanded = !n.Expanded
	return true
}

// FileCount counts the leaves under n, regardless of expansion.
func FileCount(n *Node) int {
	if n == nil {
		return 0
	}
	if !n.IsDir() {
		return 1
	}
	count := len(n.files)
	for _, d := range n.dirs {
		count += FileCount(d)
	}
	return count
}

// Leaves returns every file in display order.
func (t *Tree) Leaves() []repo.RepositoryFile {
	var out []repo.RepositoryFile
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children() {
			if c.IsDir() {
				walk(c)
			} else {
				out = append(out, *c.File)
			}
		}
	}
	walk(t.root)
	return out
}

// ExpandedPaths returns the paths of all expanded directories.
func (t *Tree) ExpandedPaths() map[string]bool {
	out := map[string]bool{}
	var walk func(*Node)
	walk = func(n *Node) {
		for _, d := range n.dirs {
			out[d.Path] = d.Expanded
			walk(d)
		}
	}
	walk(t.root)
	return out
}

// ApplyExpansion restores expansion flags captured with ExpandedPaths.
// Directories not present in state keep their depth-based default.
func (t *Tree) ApplyExpansion(state map[string]bool) {
	for path, expanded := range state {
		if n := t.Find(path); n != nil && n.IsDir() {
			n.Expanded = expanded
		}
	}
}

// Visible flattens the nodes reachable through expanded directories,
// in display order.
func (t *Tree) Visible() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children() {
			out = append(out, c)
			if c.IsDir() && c.Expanded {
				walk(c)
			}
		}
	}
	walk(t.root)
	return out
}
