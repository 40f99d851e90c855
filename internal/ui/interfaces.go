package ui

import (
	"context"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/pullrequest"
)

// FrameworkInferrer decides the framework for a selection.
type FrameworkInferrer interface {
	Infer(ctx context.Context, in framework.Input) framework.Decision
}

// Generator produces suggestions and code.
type Generator interface {
	RequestSuggestions(ctx context.Context, req pipeline.Request) pipeline.SuggestionsResult
	RequestCode(ctx context.Context, req pipeline.Request, s pipeline.Suggestion) (*pipeline.CodeResult, error)
}

// PullRequestOpener opens pull requests for generated code.
type PullRequestOpener interface {
	Open(ctx context.Context, d pullrequest.Draft) (*pullrequest.Result, error)
}
