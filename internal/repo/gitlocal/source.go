// Package gitlocal reads a repository listing straight from a local git
// checkout, so a working set can be analysed without the hosting API.
package gitlocal

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const gitignoreFile = ".gitignore"

// Source lists files and contents of the HEAD commit.
type Source struct {
	repository *git.Repository
}

// Open opens the git repository at dir.
func Open(dir string) (*Source, error) {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return nil, &OpenError{Path: dir, Cause: err}
	}
	return New(r), nil
}

// New wraps an already opened repository.
func New(r *git.Repository) *Source {
	return &Source{repository: r}
}

func (s *Source) headTree() (*object.Tree, error) {
	head, err := s.repository.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := s.repository.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	return commit.Tree()
}

// Files returns every blob in the HEAD tree that is not excluded by the
// committed .gitignore, in tree order.
func (s *Source) Files(ctx context.Context) ([]repo.RepositoryFile, error) {
	tree, err := s.headTree()
	if err != nil {
		return nil, err
	}

	matcher := &ignoreMatcher{}
	if f, err := tree.File(gitignoreFile); err == nil {
		content, err := f.Contents()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", gitignoreFile, err)
		}
		matcher = newIgnoreMatcher(content)
	}

	var files []repo.RepositoryFile
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if matcher.shouldIgnore(f.Name) {
			return nil
		}
		files = append(files, repo.RepositoryFile{Path: f.Name, Size: repo.SizeOf(f.Size)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FileContent returns the content of path at HEAD.
func (s *Source) FileContent(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tree, err := s.headTree()
	if err != nil {
		return "", err
	}
	f, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", &FileNotFoundError{Path: path}
		}
		return "", err
	}
	return f.Contents()
}

// Reference parses the first URL of the origin remote.
func (s *Source) Reference() (repo.Reference, error) {
	remote, err := s.repository.Remote(git.DefaultRemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return repo.Reference{}, ErrNoOrigin
		}
		return repo.Reference{}, err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return repo.Reference{}, ErrNoOrigin
	}
	return repo.ParseReference(urls[0])
}
