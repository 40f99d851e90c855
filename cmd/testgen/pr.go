package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/pullrequest"
	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/spf13/cobra"
)

type pullRequestOptions struct {
	codeFile  string
	source    string
	summary   string
	framework string
	filename  string
	dryRun    bool
}

type pullRequestPlan struct {
	Repository    string `json:"repository" yaml:"repository"`
	Filename      string `json:"filename" yaml:"filename"`
	BranchName    string `json:"branch_name" yaml:"branch_name"`
	CommitMessage string `json:"commit_message" yaml:"commit_message"`
	Diff          string `json:"diff" yaml:"diff"`
}

func newPullRequestCmd(a *app) *cobra.Command {
	opts := &pullRequestOptions{}
	cmd := &cobra.Command{
		Use:   "pr <repository>",
		Short: "Open a pull request that adds a test file",
		Long: `pr commits a test file to a new branch and opens a pull request.
It needs TESTGEN_TOKEN. With --dry-run it prints the branch, commit message
and diff instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := repo.ParseReference(args[0])
			if err != nil {
				return err
			}
			content, err := os.ReadFile(opts.codeFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", opts.codeFile, err)
			}

			draft := pullrequest.Draft{
				RepositoryFullName: ref.FullName(),
				Code: pipeline.CodeResult{
					TestCode:  string(content),
					Filename:  opts.filename,
					Framework: opts.framework,
				},
				Suggestion: pipeline.Suggestion{Summary: opts.summary, Framework: opts.framework},
				SourceFile: opts.source,
			}

			if opts.dryRun {
				filename := draft.Filename()
				plan := pullRequestPlan{
					Repository:    draft.RepositoryFullName,
					Filename:      filename,
					BranchName:    pullrequest.BranchName(filename, time.Now()),
					CommitMessage: pullrequest.CommitMessage(filename, opts.summary),
					Diff:          pullrequest.Preview(filename, "", draft.Code.TestCode),
				}
				return a.write(plan, func(w io.Writer) error {
					fmt.Fprintf(w, "branch: %s\n\n%s\n\n%s", plan.BranchName, plan.CommitMessage, plan.Diff)
					return nil
				})
			}

			res, err := pullrequest.NewService(a.backend(), a.logger.Named("pullrequest")).Open(cmd.Context(), draft)
			if err != nil {
				return fmt.Errorf("%s: %w", pipeline.UserMessage(err), err)
			}
			return a.write(res, func(w io.Writer) error {
				fmt.Fprintf(w, "Pull request #%d: %s\n", res.Number, res.URL)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.codeFile, "code-file", "", "File holding the test code")
	cmd.Flags().StringVar(&opts.source, "source", "", "File under test, used to name the test file")
	cmd.Flags().StringVar(&opts.summary, "summary", "", "What the test covers")
	cmd.Flags().StringVar(&opts.framework, "framework", "", "Test framework of the code")
	cmd.Flags().StringVar(&opts.filename, "filename", "", "Test file name (derived from --source when empty)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the pull request instead of opening it")
	_ = cmd.MarkFlagRequired("code-file")
	return cmd
}
