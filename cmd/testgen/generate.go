package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/handoff"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/pullrequest"
	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui"
	"github.com/Cyclone1070/testgen/internal/ui/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNothingToGenerate = errors.New(`nothing to generate: run "testgen analyze <repository>" first`)

type generateOptions struct {
	headless    bool
	local       string
	selectFiles []string
	framework   string
	suggestion  int
	pullRequest bool
}

type generateReport struct {
	Repository  string                     `json:"repository" yaml:"repository"`
	Files       []string                   `json:"files" yaml:"files"`
	Framework   framework.Decision         `json:"framework" yaml:"framework"`
	Suggestions pipeline.SuggestionsResult `json:"suggestions" yaml:"suggestions"`
	Code        *pipeline.CodeResult       `json:"code,omitempty" yaml:"code,omitempty"`
	PullRequest *pullrequest.Result        `json:"pull_request,omitempty" yaml:"pull_request,omitempty"`
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test suggestions and code for the analyzed repository",
		Long: `Generate picks up the working set saved by "testgen analyze" and opens the
workbench: select up to five files, review suggestions, generate code and
open a pull request.

With --headless it runs once: infer the framework, print suggestions and,
given --suggestion, the generated code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Run without the workbench and print the result")
	cmd.Flags().StringVar(&opts.local, "local", "", "Read file contents for model prompts from this checkout")
	cmd.Flags().StringSliceVar(&opts.selectFiles, "select", nil, "Files to select (headless)")
	cmd.Flags().StringVar(&opts.framework, "framework", "", "Use this framework instead of inferring one (headless)")
	cmd.Flags().IntVar(&opts.suggestion, "suggestion", 0, "Generate code for the suggestion with this id (headless)")
	cmd.Flags().BoolVar(&opts.pullRequest, "pr", false, "Open a pull request with the generated code (headless)")
	return cmd
}

func (a *app) runGenerate(ctx context.Context, opts *generateOptions) error {
	st, err := a.takeSession(ctx)
	if err != nil {
		return err
	}

	client := a.backend()
	st.SetAuthenticated(client.Authenticated())
	svc, err := a.buildServices(ctx, client, st.Reference(), opts.local)
	if err != nil {
		return err
	}

	if !opts.headless {
		uiLogger := zap.NewNop()
		if a.verbose {
			uiLogger = a.logger.Named("ui")
		}
		return a.deps.RunUI(ctx, st, ui.Dependencies{
			Inferrer:     svc.engine,
			Generator:    svc.pipeline,
			Opener:       svc.opener,
			Renderer:     services.NewGlamourRenderer(""),
			Logger:       uiLogger,
			TickInterval: time.Duration(a.cfg.UI.TickIntervalMs) * time.Millisecond,
		})
	}
	return a.runHeadless(ctx, st, svc, opts)
}

// takeSession consumes the handed-off working set.
func (a *app) takeSession(ctx context.Context) (*session.State, error) {
	store, release, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := handoff.NewConsumer(store, a.logger).Take(ctx)
	if errors.Is(err, handoff.ErrSnapshotMissing) {
		return nil, errNothingToGenerate
	}
	var corrupt *handoff.CorruptSnapshotError
	if errors.As(err, &corrupt) {
		return nil, fmt.Errorf("the saved working set was unreadable and has been discarded; run \"testgen analyze\" again: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return session.FromSnapshot(snap, a.cfg.Selection.MaxSelect), nil
}

func (a *app) runHeadless(ctx context.Context, st *session.State, svc *services, opts *generateOptions) error {
	for _, p := range opts.selectFiles {
		if st.IsSelected(p) {
			continue
		}
		if err := st.Toggle(p); err != nil {
			return fmt.Errorf("cannot select %s: %w", p, err)
		}
	}
	if len(st.Selected()) == 0 {
		return errors.New(`no files selected: pass --select or analyze with --all`)
	}

	if opts.framework != "" {
		st.SetFramework(opts.framework)
	} else {
		t, err := st.Begin(session.ActionFramework)
		if err != nil {
			return err
		}
		if _, err := st.ApplyFramework(t, svc.engine.Infer(ctx, st.FrameworkInput())); err != nil {
			return err
		}
	}

	t, err := st.Begin(session.ActionSuggestions)
	if err != nil {
		return err
	}
	if err := st.ApplySuggestions(t, svc.pipeline.RequestSuggestions(ctx, st.Request())); err != nil {
		return err
	}

	decision, _ := st.Framework()
	report := generateReport{
		Repository:  st.Repository().FullName,
		Files:       st.Request().TargetFiles,
		Framework:   decision,
		Suggestions: st.Suggestions(),
	}

	if opts.suggestion != 0 {
		if err := a.headlessCode(ctx, st, svc, opts, &report); err != nil {
			return err
		}
	}
	return a.write(report, func(w io.Writer) error { return writeGenerateText(w, report) })
}

func (a *app) headlessCode(ctx context.Context, st *session.State, svc *services, opts *generateOptions, report *generateReport) error {
	if !st.Choose(opts.suggestion) {
		return fmt.Errorf("no suggestion with id %d", opts.suggestion)
	}
	chosen, err := st.Chosen()
	if err != nil {
		return err
	}

	t, err := st.Begin(session.ActionCode)
	if err != nil {
		return err
	}
	code, codeErr := svc.pipeline.RequestCode(ctx, st.Request(), chosen)
	if err := st.ApplyCode(t, code, codeErr); err != nil {
		return err
	}
	if codeErr != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(codeErr), codeErr)
	}
	report.Code = st.Code()

	if !opts.pullRequest {
		return nil
	}
	primary, _ := st.Primary()
	t, err = st.Begin(session.ActionPullRequest)
	if err != nil {
		return err
	}
	res, prErr := svc.opener.Open(ctx, pullrequest.Draft{
		RepositoryFullName: st.Repository().FullName,
		Code:               *report.Code,
		Suggestion:         chosen,
		SourceFile:         primary,
	})
	if err := st.CompletePullRequest(t, prErr); err != nil {
		return err
	}
	if prErr != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(prErr), prErr)
	}
	report.PullRequest = res
	return nil
}

func writeGenerateText(w io.Writer, r generateReport) error {
	fmt.Fprintf(w, "Repository: %s\n", r.Repository)
	fmt.Fprintf(w, "Framework:  %s (%s)\n", r.Framework.Tag, r.Framework.Provenance)
	fmt.Fprintf(w, "Files:      %d selected\n\n", len(r.Files))

	if r.Suggestions.Synthesized() {
		fmt.Fprintln(w, "Suggestions (templates, the generation service was unavailable):")
	} else {
		fmt.Fprintf(w, "Suggestions (%s):\n", r.Suggestions.Strategy)
	}
	for _, s := range r.Suggestions.Suggestions {
		fmt.Fprintf(w, "  %d. %s\n", s.ID, s.Summary)
	}

	if r.Code != nil {
		fmt.Fprintf(w, "\n--- %s (%s, %s) ---\n", r.Code.Filename, r.Code.Language, r.Code.Framework)
		fmt.Fprintln(w, r.Code.TestCode)
	}
	if r.PullRequest != nil {
		fmt.Fprintf(w, "\nPull request #%d: %s\n", r.PullRequest.Number, r.PullRequest.URL)
	}
	return nil
}
