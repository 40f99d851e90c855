package main

import (
	"fmt"
	"io"

	"github.com/Cyclone1070/testgen/internal/handoff"
	"github.com/Cyclone1070/testgen/internal/selection"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	local       string
	all         bool
	selectFiles []string
}

type analyzeReport struct {
	Repository   string         `json:"repository" yaml:"repository"`
	Files        int            `json:"files" yaml:"files"`
	GenerateMode selection.Mode `json:"generate_mode" yaml:"generate_mode"`
	Selected     []string       `json:"selected,omitempty" yaml:"selected,omitempty"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [repository]",
		Short: "List a repository and hand it to generate",
		Long: `Analyze fetches the file listing of a repository and saves it for the next
"testgen generate". The repository may be owner/name or a GitHub URL; with
--local it is read from the origin remote of the checkout.

With --all (or --select) generate starts producing suggestions right away.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, firstArg(args), opts)
		},
	}
	cmd.Flags().StringVar(&opts.local, "local", "", "Read a local git checkout instead of the service")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Generate for the whole repository without waiting for a selection")
	cmd.Flags().StringSliceVar(&opts.selectFiles, "select", nil, "Files to preselect (implies --all)")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, input string, opts *analyzeOptions) error {
	ctx := cmd.Context()
	ws, err := a.fetchWorkingSet(ctx, input, opts.local)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(ws.Files))
	for _, f := range ws.Files {
		known[f.Path] = true
	}
	for _, p := range opts.selectFiles {
		if !known[p] {
			return fmt.Errorf("%s is not in the repository listing", p)
		}
	}

	mode := selection.ModeSelective
	if opts.all || len(opts.selectFiles) > 0 {
		mode = selection.ModeAll
	}
	repository := ws.Repository
	snap := &handoff.WorkingSetSnapshot{
		RepositoryReference: ws.Reference,
		Repository:          &repository,
		Files:               ws.Files,
		GenerateMode:        mode,
		PreSelectedFiles:    opts.selectFiles,
	}

	store, release, err := a.openStore()
	if err != nil {
		return err
	}
	defer release()
	if err := handoff.NewProducer(store, a.logger).Publish(ctx, snap); err != nil {
		return err
	}

	report := analyzeReport{
		Repository:   ws.Repository.FullName,
		Files:        len(ws.Files),
		GenerateMode: mode,
		Selected:     opts.selectFiles,
	}
	return a.write(report, func(w io.Writer) error {
		fmt.Fprintf(w, "Analyzed %s: %d files\n", report.Repository, report.Files)
		if mode == selection.ModeAll {
			fmt.Fprintln(w, "Run \"testgen generate\" to generate tests for the whole repository.")
		} else {
			fmt.Fprintln(w, "Run \"testgen generate\" to pick files and generate tests.")
		}
		return nil
	})
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
