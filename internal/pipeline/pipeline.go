// Package pipeline requests test suggestions and test code through an
// ordered cascade of strategies. Suggestions always succeed, falling back
// to local templates. Code generation fails explicitly instead.
package pipeline

import (
	"context"
	"time"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/Cyclone1070/testgen/internal/repo"
	"go.uber.org/zap"
)

// Strategy names of the backend endpoints.
const (
	StrategyAuthenticated = "authenticated-endpoint"
	StrategyDerivedPublic = "derived-public-endpoint"
	StrategyPublic        = "public-endpoint"
)

// DefaultTimeout bounds each remote attempt.
const DefaultTimeout = 30 * time.Second

// Backend is the generation service.
type Backend interface {
	PublicSuggestions(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error)
	AuthenticatedSuggestions(ctx context.Context, fullName string, files []string, framework string) (map[string]any, error)
	PublicCode(ctx context.Context, repoURL string, suggestionID int, summary string, files []string, framework string) (map[string]any, error)
	AuthenticatedCode(ctx context.Context, fullName string, suggestionID int, summary string, files []string, framework string) (map[string]any, error)
}

// Pipeline builds and runs strategy plans for generation requests.
type Pipeline struct {
	backend         Backend
	providers       []models.Provider
	contents        ContentSource
	timeout         time.Duration
	maxOutputTokens int
	maxFileSize     int
	logger          *zap.Logger
	metrics         *Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProviders adds direct model strategies, tried in order after the backend.
func WithProviders(providers ...models.Provider) Option {
	return func(p *Pipeline) { p.providers = append(p.providers, providers...) }
}

// WithContentSource supplies file contents for model prompts.
func WithContentSource(src ContentSource) Option {
	return func(p *Pipeline) { p.contents = src }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithLimits caps model output tokens and per-file prompt content.
func WithLimits(maxOutputTokens, maxFileSize int) Option {
	return func(p *Pipeline) {
		p.maxOutputTokens = maxOutputTokens
		p.maxFileSize = maxFileSize
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics sets the attempt counters.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New creates a Pipeline. backend may be nil, leaving only model and
// local strategies.
func New(backend Backend, opts ...Option) *Pipeline {
	p := &Pipeline{
		backend: backend,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// normalize caps the target files and fills in a missing framework.
func normalize(req Request) Request {
	if req.Framework == "" {
		req.Framework = framework.DefaultTag
	}
	if len(req.TargetFiles) > MaxTargetFiles {
		req.TargetFiles = append([]string(nil), req.TargetFiles[:MaxTargetFiles]...)
	}
	return req
}

// RequestSuggestions never fails and never returns an empty list.
func (p *Pipeline) RequestSuggestions(ctx context.Context, req Request) SuggestionsResult {
	req = normalize(req)
	if err := validate.Struct(req); err != nil {
		p.logger.Warn("invalid suggestions request, using local synthesis", zap.Error(err))
		return SuggestionsResult{Suggestions: Synthesize(req.Primary(), req.Framework), Strategy: StrategySynthesis}
	}

	plan := p.suggestionsPlan(req)
	c := cascade[[]Suggestion]{action: ActionSuggestions, timeout: p.timeout, logger: p.logger, metrics: p.metrics}
	suggestions, strategy, err := c.run(ctx, plan)
	if err != nil {
		// Unreachable while the plan ends with synthesis.
		return SuggestionsResult{Suggestions: Synthesize(req.Primary(), req.Framework), Strategy: StrategySynthesis}
	}
	return SuggestionsResult{Suggestions: suggestions, Strategy: strategy}
}

func (p *Pipeline) suggestionsPlan(req Request) []Strategy[[]Suggestion] {
	var plan []Strategy[[]Suggestion]
	ref, refErr := repo.ParseReference(req.RepositoryReference)

	if p.backend != nil && refErr == nil {
		validateFn := validateSuggestions(req.Framework)
		if req.Authenticated {
			plan = append(plan, Strategy[[]Suggestion]{
				Name: StrategyAuthenticated,
				Invoke: func(ctx context.Context) (any, error) {
					return p.backend.AuthenticatedSuggestions(ctx, ref.FullName(), req.TargetFiles, req.Framework)
				},
				Validate: validateFn,
			})
		}
		name := StrategyPublic
		if req.Authenticated {
			name = StrategyDerivedPublic
		}
		plan = append(plan, Strategy[[]Suggestion]{
			Name: name,
			Invoke: func(ctx context.Context) (any, error) {
				return p.backend.PublicSuggestions(ctx, ref.URL(), req.TargetFiles, req.Framework)
			},
			Validate: validateFn,
		})
	}

	for _, provider := range p.providers {
		plan = append(plan, p.modelSuggestionStrategy(req, provider))
	}
	return append(plan, synthesisStrategy(req))
}

// RequestCode returns generated code or an error. It never fabricates code.
func (p *Pipeline) RequestCode(ctx context.Context, req Request, s Suggestion) (*CodeResult, error) {
	req = normalize(req)
	if len(req.TargetFiles) == 0 {
		return nil, ErrNoTargetFiles
	}
	ref, err := repo.ParseReference(req.RepositoryReference)
	if err != nil {
		return nil, ErrAuthenticationRequired
	}

	var plan []Strategy[*CodeResult]
	if p.backend != nil {
		if req.Authenticated {
			plan = append(plan, Strategy[*CodeResult]{
				Name: StrategyAuthenticated,
				Invoke: func(ctx context.Context) (any, error) {
					return p.backend.AuthenticatedCode(ctx, ref.FullName(), s.ID, s.Summary, req.TargetFiles, req.Framework)
				},
				Validate: validateCode,
			})
		}
		name := StrategyPublic
		if req.Authenticated {
			name = StrategyDerivedPublic
		}
		plan = append(plan, Strategy[*CodeResult]{
			Name: name,
			Invoke: func(ctx context.Context) (any, error) {
				return p.backend.PublicCode(ctx, ref.URL(), s.ID, s.Summary, req.TargetFiles, req.Framework)
			},
			Validate: validateCode,
		})
	}
	for _, provider := range p.providers {
		plan = append(plan, p.modelCodeStrategy(req, s, provider))
	}

	c := cascade[*CodeResult]{action: ActionCode, timeout: p.timeout, logger: p.logger, metrics: p.metrics}
	result, _, err := c.run(ctx, plan)
	if err != nil {
		return nil, err
	}
	return result, nil
}
