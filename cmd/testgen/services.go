package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Cyclone1070/testgen/internal/backend"
	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	provider "github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/Cyclone1070/testgen/internal/pullrequest"
	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/Cyclone1070/testgen/internal/repo/gitlocal"
	"go.uber.org/zap"
)

// services are the collaborators of one generate run.
type services struct {
	engine   *framework.Engine
	pipeline *pipeline.Pipeline
	opener   *pullrequest.Service
}

// remoteContent reads files of one repository through the service.
type remoteContent struct {
	client *backend.Client
	ref    repo.Reference
}

func (r remoteContent) FileContent(ctx context.Context, path string) (string, error) {
	return r.client.FileContent(ctx, r.ref, path)
}

// buildServices wires the engine, pipeline and pull request service.
// localDir, when set, supplies file contents for model prompts.
func (a *app) buildServices(ctx context.Context, client *backend.Client, reference, localDir string) (*services, error) {
	opts := []pipeline.Option{
		pipeline.WithLogger(a.logger.Named("pipeline")),
		pipeline.WithMetrics(a.metrics),
		pipeline.WithTimeout(time.Duration(a.cfg.Backend.TimeoutSeconds) * time.Second),
		pipeline.WithLimits(a.cfg.Providers.MaxOutputTokens, a.cfg.Providers.MaxPromptFileSize),
	}

	if providers := a.providers(ctx); len(providers) > 0 {
		opts = append(opts, pipeline.WithProviders(providers...))
	}

	switch {
	case localDir != "":
		src, err := gitlocal.Open(localDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithContentSource(src))
	case client.Authenticated():
		if ref, err := repo.ParseReference(reference); err == nil {
			opts = append(opts, pipeline.WithContentSource(remoteContent{client: client, ref: ref}))
		}
	}

	return &services{
		engine:   framework.NewEngine(client, a.logger.Named("framework")),
		pipeline: pipeline.New(client, opts...),
		opener:   pullrequest.NewService(client, a.logger.Named("pullrequest")),
	}, nil
}

// providers builds every configured model provider. A provider that fails
// to initialize is skipped with a warning.
func (a *app) providers(ctx context.Context) []provider.Provider {
	var out []provider.Provider
	for _, factory := range a.deps.ProviderFactories {
		p, err := factory(ctx, a.cfg, a.deps.Getenv)
		if err != nil {
			fmt.Fprintf(a.deps.Stderr, "Warning: %v\n", err)
			continue
		}
		if p != nil {
			a.logger.Debug("model provider enabled", zap.String("provider", p.Name()))
			out = append(out, p)
		}
	}
	return out
}
