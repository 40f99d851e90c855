package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionsPayloadOf(framework string, summaries ...string) map[string]any {
	items := make([]any, len(summaries))
	for i, s := range summaries {
		items[i] = map[string]any{"id": float64(i + 1), "summary": s, "framework": framework}
	}
	return map[string]any{"framework": framework, "suggestions": items}
}

func codePayload() map[string]any {
	return map[string]any{
		"test_code":          "def test_add(): assert add(1, 2) == 3",
		"suggested_filename": "test_calc.py",
		"language":           "python",
		"framework":          "pytest",
	}
}

var publicReq = Request{
	TargetFiles:         []string{"src/calc.py"},
	Framework:           "pytest",
	RepositoryReference: "https://github.com/acme/calc",
}

// --- HAPPY PATH TESTS ---

func TestRequestSuggestions_PublicEndpointSucceeds(t *testing.T) {
	backend := &MockBackend{
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			assert.Equal(t, "https://github.com/acme/calc", repoURL)
			assert.Equal(t, []string{"src/calc.py"}, files)
			return suggestionsPayloadOf("pytest", "adds numbers", "rejects strings"), nil
		},
	}
	p := New(backend)

	res := p.RequestSuggestions(context.Background(), publicReq)

	assert.Equal(t, StrategyPublic, res.Strategy)
	require.Len(t, res.Suggestions, 2)
	assert.Equal(t, 1, res.Suggestions[0].ID)
	assert.False(t, res.Synthesized())
}

func TestRequestSuggestions_AuthenticatedFailure_FallsToDerivedPublic(t *testing.T) {
	backend := &MockBackend{
		AuthenticatedSuggestionsFunc: func(ctx context.Context, fullName string, files []string, framework string) (map[string]any, error) {
			assert.Equal(t, "acme/calc", fullName)
			return nil, errors.New("timeout")
		},
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			assert.Equal(t, "https://github.com/acme/calc", repoURL)
			return suggestionsPayloadOf("pytest", "a", "b", "c"), nil
		},
	}
	p := New(backend)

	req := publicReq
	req.RepositoryReference = "acme/calc"
	req.Authenticated = true
	res := p.RequestSuggestions(context.Background(), req)

	assert.Equal(t, StrategyDerivedPublic, res.Strategy)
	assert.Len(t, res.Suggestions, 3)
	assert.Equal(t, []string{"AuthenticatedSuggestions", "PublicSuggestions"}, backend.Calls)
}

func TestRequestSuggestions_AllRemoteFail_Synthesizes(t *testing.T) {
	backend := &MockBackend{}
	provider := &MockProvider{NameValue: "gemini"}
	p := New(backend, WithProviders(provider))

	req := Request{
		TargetFiles:         []string{"lib/app.js"},
		Framework:           "jest",
		RepositoryReference: "acme/web",
		Authenticated:       true,
	}
	res := p.RequestSuggestions(context.Background(), req)

	assert.True(t, res.Synthesized())
	require.Len(t, res.Suggestions, 5)
	for i, s := range res.Suggestions {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, "jest", s.Framework)
		assert.True(t, s.Synthesized)
		assert.True(t, strings.HasSuffix(s.Summary, " in app.js"), s.Summary)
	}
}

func TestRequestSuggestions_TwoRemoteFailures_ThirdAttemptSynthesizes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	backend := &MockBackend{
		AuthenticatedSuggestionsFunc: func(ctx context.Context, fullName string, files []string, framework string) (map[string]any, error) {
			return nil, statusErr(502)
		},
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			return nil, errors.New("connection refused")
		},
	}
	p := New(backend, WithMetrics(metrics))

	req := Request{
		TargetFiles:         []string{"src/calc.py", "src/util.py"},
		Framework:           "pytest",
		RepositoryReference: "acme/calc",
		Authenticated:       true,
	}
	res := p.RequestSuggestions(context.Background(), req)

	assert.Equal(t, []string{"AuthenticatedSuggestions", "PublicSuggestions"}, backend.Calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.attempts.WithLabelValues("suggestions", StrategyAuthenticated, outcomeTransport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.attempts.WithLabelValues("suggestions", StrategyDerivedPublic, outcomeTransport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.attempts.WithLabelValues("suggestions", StrategySynthesis, outcomeSuccess)))
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.attempts), "exactly three attempts")

	assert.Equal(t, StrategySynthesis, res.Strategy)
	assert.Equal(t, Synthesize("src/calc.py", "pytest"), res.Suggestions)
}

func TestRequestSuggestions_ModelStrategyParsesFencedJSON(t *testing.T) {
	provider := &MockProvider{
		NameValue: "openai",
		CompleteFunc: func(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
			assert.True(t, req.JSON)
			assert.Contains(t, req.Prompt, "src/calc.py")
			assert.Contains(t, req.Prompt, "def add")
			return &models.CompletionResponse{Text: "```json\n{\"suggestions\": [{\"id\": \"1\", \"summary\": \"adds\"}]}\n```"}, nil
		},
	}
	src := &MockContentSource{Files: map[string]string{"src/calc.py": "def add(a, b): return a + b"}}
	p := New(nil, WithProviders(provider), WithContentSource(src))

	res := p.RequestSuggestions(context.Background(), publicReq)

	assert.Equal(t, "openai", res.Strategy)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "pytest", res.Suggestions[0].Framework)
}

func TestRequestCode_PublicEndpointSucceeds(t *testing.T) {
	backend := &MockBackend{
		PublicCodeFunc: func(ctx context.Context, repoURL string, id int, summary string, files []string, framework string) (map[string]any, error) {
			assert.Equal(t, 2, id)
			assert.Equal(t, "rejects strings", summary)
			return codePayload(), nil
		},
	}
	p := New(backend)

	code, err := p.RequestCode(context.Background(), publicReq, Suggestion{ID: 2, Summary: "rejects strings", Framework: "pytest"})

	require.NoError(t, err)
	assert.Equal(t, "test_calc.py", code.Filename)
	assert.Equal(t, "python", code.Language)
}

func TestPipeline_RecordsAttemptMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	backend := &MockBackend{
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			return map[string]any{"suggestions": []any{}}, nil
		},
	}
	p := New(backend, WithMetrics(metrics))

	p.RequestSuggestions(context.Background(), publicReq)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.attempts.WithLabelValues("suggestions", StrategyPublic, outcomeInvalidShape)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.attempts.WithLabelValues("suggestions", StrategySynthesis, outcomeSuccess)))
}

// --- UNHAPPY PATH TESTS ---

func TestRequestSuggestions_InvalidShape_AdvancesWithoutRetry(t *testing.T) {
	calls := 0
	backend := &MockBackend{
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			calls++
			return map[string]any{"suggestions": []any{map[string]any{"id": 1}}}, nil
		},
	}
	p := New(backend)

	res := p.RequestSuggestions(context.Background(), publicReq)

	assert.Equal(t, 1, calls)
	assert.True(t, res.Synthesized())
}

func TestRequestCode_AllFail_ReturnsExhaustedAndNoCode(t *testing.T) {
	backend := &MockBackend{
		AuthenticatedCodeFunc: func(ctx context.Context, fullName string, id int, summary string, files []string, framework string) (map[string]any, error) {
			return nil, statusErr(401)
		},
		PublicCodeFunc: func(ctx context.Context, repoURL string, id int, summary string, files []string, framework string) (map[string]any, error) {
			payload := codePayload()
			delete(payload, "language")
			return payload, nil
		},
	}
	p := New(backend)

	req := publicReq
	req.Authenticated = true
	code, err := p.RequestCode(context.Background(), req, Suggestion{ID: 1, Summary: "s"})

	assert.Nil(t, code)
	var exhausted *CascadeExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Len(t, exhausted.Attempts, 2)
	var shapeErr *ShapeValidationError
	assert.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, CategoryExpiredSession, Categorize(err))
}

func TestRequestCode_NoRepository_ReturnsAuthenticationRequired(t *testing.T) {
	p := New(&MockBackend{})

	req := publicReq
	req.RepositoryReference = ""
	code, err := p.RequestCode(context.Background(), req, Suggestion{ID: 1, Summary: "s"})

	assert.Nil(t, code)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestRequestCode_NoTargets_ReturnsError(t *testing.T) {
	p := New(&MockBackend{})

	_, err := p.RequestCode(context.Background(), Request{RepositoryReference: "a/b"}, Suggestion{ID: 1, Summary: "s"})

	assert.ErrorIs(t, err, ErrNoTargetFiles)
}

func TestRequestSuggestions_SlowStrategy_TimesOutAndAdvances(t *testing.T) {
	backend := &MockBackend{
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	p := New(backend, WithTimeout(10*time.Millisecond))

	res := p.RequestSuggestions(context.Background(), publicReq)

	assert.True(t, res.Synthesized())
}

// --- EDGE CASE TESTS ---

func TestRequestSuggestions_NeverEmpty(t *testing.T) {
	p := New(nil)
	inputs := []Request{
		{},
		{TargetFiles: []string{"a.py"}},
		{TargetFiles: []string{"a", "b", "c", "d", "e", "f", "g"}, Framework: "junit"},
		{TargetFiles: []string{""}, Framework: "x"},
	}
	for _, in := range inputs {
		res := p.RequestSuggestions(context.Background(), in)
		assert.NotEmpty(t, res.Suggestions)
	}
}

func TestRequestSuggestions_CapsTargetFiles(t *testing.T) {
	var got []string
	backend := &MockBackend{
		PublicSuggestionsFunc: func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
			got = files
			return suggestionsPayloadOf(framework, "x"), nil
		},
	}
	p := New(backend)

	req := publicReq
	req.TargetFiles = []string{"1.py", "2.py", "3.py", "4.py", "5.py", "6.py"}
	p.RequestSuggestions(context.Background(), req)

	assert.Len(t, got, MaxTargetFiles)
}

func TestSynthesize_Deterministic(t *testing.T) {
	a := Synthesize("pkg/util.go", "testing")
	b := Synthesize("pkg/util.go", "testing")
	assert.Equal(t, a, b)
	assert.Len(t, a, 5)
	assert.Equal(t, "Test core functionality and expected behavior in util.go", a[0].Summary)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		err  error
		want Category
	}{
		{statusErr(401), CategoryExpiredSession},
		{statusErr(403), CategoryPermission},
		{statusErr(404), CategoryNotFound},
		{statusErr(500), CategoryGeneric},
		{errors.New("boom"), CategoryGeneric},
		{ErrAuthenticationRequired, CategoryAuthRequired},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.err))
		assert.NotEmpty(t, UserMessage(tt.err))
	}
	assert.Equal(t, Category(""), Categorize(nil))
}
