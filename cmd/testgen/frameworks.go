package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type frameworksReport struct {
	Path      string   `json:"path" yaml:"path"`
	Language  string   `json:"language,omitempty" yaml:"language,omitempty"`
	Default   string   `json:"default_framework" yaml:"default_framework"`
	Available []string `json:"available_frameworks" yaml:"available_frameworks"`
	Source    string   `json:"source" yaml:"source"`
}

func newFrameworksCmd(a *app) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "frameworks <path>",
		Short: "List the test frameworks that apply to a file",
		Long: `Frameworks prints the frameworks offered for a file, its language's
conventional framework first. With --remote the generation service is asked
and the local catalog is used when it cannot answer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := localFrameworks(args[0])
			if remote {
				res, err := a.backend().Frameworks(cmd.Context(), args[0])
				switch {
				case err != nil:
					a.logger.Warn("remote framework lookup failed", zap.String("path", args[0]), zap.Error(err))
					fmt.Fprintf(a.deps.Stderr, "Warning: service lookup failed, using the local catalog: %v\n", err)
				case len(res.Available) > 0:
					report = frameworksReport{
						Path:      args[0],
						Language:  res.Language,
						Default:   res.Default,
						Available: res.Available,
						Source:    "service",
					}
					if report.Default == "" {
						report.Default = res.Available[0]
					}
				}
			}
			return a.write(report, func(w io.Writer) error {
				fmt.Fprintf(w, "%s", report.Path)
				if report.Language != "" {
					fmt.Fprintf(w, " (%s)", report.Language)
				}
				fmt.Fprintf(w, ": %s\n", strings.Join(report.Available, ", "))
				fmt.Fprintf(w, "default: %s\n", report.Default)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the generation service first")
	return cmd
}

func localFrameworks(path string) frameworksReport {
	report := frameworksReport{
		Path:      path,
		Available: framework.Available(path),
		Default:   framework.DefaultTag,
		Source:    "local",
	}
	if lang, ok := framework.LanguageOf(path); ok {
		report.Language = lang.Name
		report.Default = lang.Framework
	}
	return report
}
