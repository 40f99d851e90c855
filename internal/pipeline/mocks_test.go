package pipeline

import (
	"context"
	"errors"

	"github.com/Cyclone1070/testgen/internal/provider/models"
)

type MockBackend struct {
	PublicSuggestionsFunc        func(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error)
	AuthenticatedSuggestionsFunc func(ctx context.Context, fullName string, files []string, framework string) (map[string]any, error)
	PublicCodeFunc               func(ctx context.Context, repoURL string, id int, summary string, files []string, framework string) (map[string]any, error)
	AuthenticatedCodeFunc        func(ctx context.Context, fullName string, id int, summary string, files []string, framework string) (map[string]any, error)
	Calls                        []string
}

var errNotMocked = errors.New("not mocked")

func (m *MockBackend) PublicSuggestions(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
	m.Calls = append(m.Calls, "PublicSuggestions")
	if m.PublicSuggestionsFunc != nil {
		return m.PublicSuggestionsFunc(ctx, repoURL, files, framework)
	}
	return nil, errNotMocked
}

func (m *MockBackend) AuthenticatedSuggestions(ctx context.Context, fullName string, files []string, framework string) (map[string]any, error) {
	m.Calls = append(m.Calls, "AuthenticatedSuggestions")
	if m.AuthenticatedSuggestionsFunc != nil {
		return m.AuthenticatedSuggestionsFunc(ctx, fullName, files, framework)
	}
	return nil, errNotMocked
}

func (m *MockBackend) PublicCode(ctx context.Context, repoURL string, id int, summary string, files []string, framework string) (map[string]any, error) {
	m.Calls = append(m.Calls, "PublicCode")
	if m.PublicCodeFunc != nil {
		return m.PublicCodeFunc(ctx, repoURL, id, summary, files, framework)
	}
	return nil, errNotMocked
}

func (m *MockBackend) AuthenticatedCode(ctx context.Context, fullName string, id int, summary string, files []string, framework string) (map[string]any, error) {
	m.Calls = append(m.Calls, "AuthenticatedCode")
	if m.AuthenticatedCodeFunc != nil {
		return m.AuthenticatedCodeFunc(ctx, fullName, id, summary, files, framework)
	}
	return nil, errNotMocked
}

type MockProvider struct {
	NameValue    string
	CompleteFunc func(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error)
}

func (m *MockProvider) Name() string { return m.NameValue }

func (m *MockProvider) Complete(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return nil, errNotMocked
}

type MockContentSource struct {
	Files map[string]string
}

func (m *MockContentSource) FileContent(ctx context.Context, path string) (string, error) {
	c, ok := m.Files[path]
	if !ok {
		return "", errors.New("missing")
	}
	return c, nil
}

type statusErr int

func (e statusErr) Error() string   { return "status" }
func (e statusErr) HTTPStatus() int { return int(e) }
