package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Cyclone1070/testgen/internal/backend"
	"github.com/Cyclone1070/testgen/internal/config"
	"github.com/Cyclone1070/testgen/internal/handoff"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/ui/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the per-invocation state shared by every subcommand.
type app struct {
	deps Dependencies

	verbose     bool
	configPath  string
	output      string
	metricsAddr string

	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *pipeline.Metrics

	stopMetrics func()
}

func newRootCmd(deps Dependencies) *cobra.Command {
	a := &app{deps: deps, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "testgen",
		Short: "testgen - generate tests for the files you pick",
		Long: `testgen analyzes a GitHub repository (or a local checkout), lets you pick
up to five files and generates test suggestions and test code for them.

Run "testgen analyze <repository>" first, then "testgen generate".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML file applied over ~/.config/testgen/config.json")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "Output format: text, yaml or json")
	rootCmd.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(
		newAnalyzeCmd(a),
		newGenerateCmd(a),
		newTreeCmd(a),
		newFrameworksCmd(a),
		newPullRequestCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	switch a.output {
	case outputText, outputYAML, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q (want text, yaml or json)", a.output)
	}

	zapCfg := zap.NewProductionConfig()
	if a.verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	cfg, err := a.deps.LoadConfig(a.configPath)
	if err != nil {
		if a.configPath != "" {
			return err
		}
		fmt.Fprintf(a.deps.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(a.deps.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	views.UsePalette(views.Palette{
		Primary: cfg.UI.ColorPrimary,
		Muted:   cfg.UI.ColorMuted,
		Success: cfg.UI.ColorSuccess,
		Error:   cfg.UI.ColorError,
	})

	a.registry = prometheus.NewRegistry()
	a.metrics = pipeline.NewMetrics(a.registry)
	addr := a.metricsAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if addr != "" {
		a.stopMetrics = a.serveMetrics(addr)
	}
	return nil
}

func (a *app) teardown() {
	if a.stopMetrics != nil {
		a.stopMetrics()
	}
	_ = a.logger.Sync()
}

func (a *app) serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	a.logger.Debug("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// backend builds a service client. TESTGEN_TOKEN authenticates it.
func (a *app) backend() *backend.Client {
	opts := []backend.Option{
		backend.WithLogger(a.logger.Named("backend")),
		backend.WithUnauthorizedHook(func() {
			fmt.Fprintf(a.deps.Stderr, "Warning: session token was rejected; continuing without authentication\n")
		}),
	}
	if token := a.deps.Getenv("TESTGEN_TOKEN"); token != "" {
		opts = append(opts, backend.WithToken(token))
	}
	timeout := time.Duration(a.cfg.Backend.TimeoutSeconds) * time.Second
	return backend.New(a.cfg.Backend.BaseURL, timeout, opts...)
}

// openStore opens the configured handoff slot. The returned func releases it.
func (a *app) openStore() (handoff.Store, func(), error) {
	dir := a.cfg.Handoff.Path
	if dir == "" {
		d, err := a.deps.ConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		dir = d
	}

	if a.cfg.Handoff.Store == config.StoreBadger {
		store, err := handoff.OpenBadgerStore(filepath.Join(dir, "handoff"))
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("failed to close handoff store", zap.Error(err))
			}
		}, nil
	}
	return handoff.NewFileStore(dir), func() {}, nil
}
