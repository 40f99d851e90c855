package pullrequest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cyclone1070/testgen/internal/backend"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"go.uber.org/zap"
)

// ErrNoRepository is returned when a draft has no repository full name.
var ErrNoRepository = errors.New("pull request needs a repository full name")

// Creator opens pull requests on the hosting service.
type Creator interface {
	Authenticated() bool
	CreatePullRequest(ctx context.Context, pr backend.PullRequest) (*backend.PullRequestResult, error)
}

// Draft is generated code ready to be proposed.
type Draft struct {
	RepositoryFullName string
	Code               pipeline.CodeResult
	Suggestion         pipeline.Suggestion
	// SourceFile names the file under test; it is used when Code has no filename.
	SourceFile string
}

// Result describes an opened pull request.
type Result struct {
	URL        string `json:"pr_url" yaml:"pr_url"`
	Number     int    `json:"pr_number" yaml:"pr_number"`
	BranchName string `json:"branch_name" yaml:"branch_name"`
}

// Service opens pull requests for drafts.
type Service struct {
	creator Creator
	now     func() time.Time
	logger  *zap.Logger
}

// NewService creates a Service.
func NewService(creator Creator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{creator: creator, now: time.Now, logger: logger}
}

// Filename returns the file name a draft will be committed as.
func (d Draft) Filename() string {
	if d.Code.Filename != "" {
		return d.Code.Filename
	}
	return TestFilename(d.SourceFile, d.Code.Framework)
}

// Open requires an authenticated session and a repository.
func (s *Service) Open(ctx context.Context, d Draft) (*Result, error) {
	if s.creator == nil || !s.creator.Authenticated() {
		return nil, pipeline.ErrAuthenticationRequired
	}
	if d.RepositoryFullName == "" {
		return nil, ErrNoRepository
	}

	filename := d.Filename()
	pr := backend.PullRequest{
		RepositoryFullName: d.RepositoryFullName,
		TestCode:           d.Code.TestCode,
		TestFileName:       filename,
		BranchName:         BranchName(filename, s.now()),
		CommitMessage:      CommitMessage(filename, d.Suggestion.Summary),
	}

	res, err := s.creator.CreatePullRequest(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	if !res.Success || res.URL == "" {
		return nil, errors.New("pull request was not created")
	}

	branch := res.BranchName
	if branch == "" {
		branch = pr.BranchName
	}
	s.logger.Info("opened pull request",
		zap.String("repository", d.RepositoryFullName),
		zap.Int("number", res.Number),
		zap.String("branch", branch))
	return &Result{URL: res.URL, Number: res.Number, BranchName: branch}, nil
}
