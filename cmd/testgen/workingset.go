package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/testgen/internal/backend"
	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/Cyclone1070/testgen/internal/repo/gitlocal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoRepository = errors.New("a repository reference or --local is required")

// workingSet is a repository and its flat listing.
type workingSet struct {
	Reference  string                `json:"reference" yaml:"reference"`
	Repository repo.Repository       `json:"repository" yaml:"repository"`
	Files      []repo.RepositoryFile `json:"files" yaml:"files"`
}

// fetchWorkingSet lists a repository from the service, or from a local
// checkout when localDir is set.
func (a *app) fetchWorkingSet(ctx context.Context, input, localDir string) (*workingSet, error) {
	if localDir != "" {
		return a.fetchLocal(ctx, input, localDir)
	}
	if input == "" {
		return nil, errNoRepository
	}
	ref, err := repo.ParseReference(input)
	if err != nil {
		return nil, err
	}

	client := a.backend()
	if client.Authenticated() {
		return a.fetchAuthenticated(ctx, client, ref)
	}

	res, err := client.AnalyzeRepository(ctx, ref.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", ref.FullName(), err)
	}
	ws := &workingSet{Reference: ref.URL(), Repository: res.Repository, Files: res.Files}
	if ws.Repository.FullName == "" {
		ws.Repository = ref.ToRepository()
	}
	return ws, nil
}

// fetchAuthenticated loads metadata and the listing in parallel.
func (a *app) fetchAuthenticated(ctx context.Context, client *backend.Client, ref repo.Reference) (*workingSet, error) {
	var (
		repos []repo.Repository
		files []repo.RepositoryFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := client.ListRepositories(gctx)
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}
		repos = r
		return nil
	})
	g.Go(func() error {
		f, err := client.ListFiles(gctx, ref)
		if err != nil {
			return fmt.Errorf("failed to list files of %s: %w", ref.FullName(), err)
		}
		files = f
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	repository, found := ref.ToRepository(), false
	for _, r := range repos {
		if strings.EqualFold(r.FullName, ref.FullName()) {
			repository, found = r, true
			break
		}
	}
	if !found {
		a.logger.Debug("repository not among the user's repositories", zap.String("repository", ref.FullName()))
	}
	return &workingSet{Reference: ref.URL(), Repository: repository, Files: files}, nil
}

// fetchLocal reads HEAD of a local checkout. input overrides the origin
// remote as the repository reference.
func (a *app) fetchLocal(ctx context.Context, input, dir string) (*workingSet, error) {
	src, err := gitlocal.Open(dir)
	if err != nil {
		return nil, err
	}

	var ref repo.Reference
	if input != "" {
		ref, err = repo.ParseReference(input)
	} else {
		ref, err = src.Reference()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot determine repository for %s (pass it as an argument): %w", dir, err)
	}

	files, err := src.Files(ctx)
	if err != nil {
		return nil, err
	}
	return &workingSet{Reference: ref.URL(), Repository: ref.ToRepository(), Files: files}, nil
}
