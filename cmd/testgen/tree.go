package main

import (
	"fmt"
	"io"

	"github.com/Cyclone1070/testgen/internal/tree"
	"github.com/spf13/cobra"
)

// treeEntry is the serialized form of a tree node.
type treeEntry struct {
	Name     string      `json:"name" yaml:"name"`
	Path     string      `json:"path" yaml:"path"`
	Files    int         `json:"files,omitempty" yaml:"files,omitempty"`
	Children []treeEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

func newTreeCmd(a *app) *cobra.Command {
	var local string
	cmd := &cobra.Command{
		Use:   "tree [repository]",
		Short: "Print the directory tree of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.fetchWorkingSet(cmd.Context(), firstArg(args), local)
			if err != nil {
				return err
			}
			t := tree.Build(ws.Files)
			entries := toEntries(t.Roots())
			return a.write(entries, func(w io.Writer) error {
				fmt.Fprintf(w, "%s (%d files)\n", ws.Repository.FullName, len(ws.Files))
				writeTree(w, t.Roots(), "")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&local, "local", "", "Read a local git checkout instead of the service")
	return cmd
}

func toEntries(nodes []*tree.Node) []treeEntry {
	out := make([]treeEntry, 0, len(nodes))
	for _, n := range nodes {
		e := treeEntry{Name: n.Name, Path: n.Path}
		if n.IsDir() {
			e.Files = tree.FileCount(n)
			e.Children = toEntries(n.Children())
		}
		out = append(out, e)
	}
	return out
}

func writeTree(w io.Writer, nodes []*tree.Node, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		if n.IsDir() {
			fmt.Fprintf(w, "%s%s%s/ (%d)\n", prefix, branch, n.Name, tree.FileCount(n))
			writeTree(w, n.Children(), prefix+indent)
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.Name)
	}
}
