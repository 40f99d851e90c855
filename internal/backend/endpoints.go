package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Cyclone1070/testgen/internal/repo"
)

// AnalyzeRepository fetches metadata and the file listing for a public URL.
func (c *Client) AnalyzeRepository(ctx context.Context, repoURL string) (*AnalyzeResult, error) {
	var out struct {
		Repository repositoryDTO `json:"repository"`
		Files      []fileDTO     `json:"files"`
	}
	if err := c.do(ctx, http.MethodPost, "/repo/analyze", map[string]any{"repo_url": repoURL}, &out); err != nil {
		return nil, err
	}
	return &AnalyzeResult{Repository: out.Repository.toRepository(), Files: toFiles(out.Files)}, nil
}

// ListRepositories lists repositories visible to the session.
func (c *Client) ListRepositories(ctx context.Context) ([]repo.Repository, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var out []repositoryDTO
	if err := c.do(ctx, http.MethodGet, "/repositories", nil, &out); err != nil {
		return nil, err
	}
	repos := make([]repo.Repository, len(out))
	for i, d := range out {
		repos[i] = d.toRepository()
	}
	return repos, nil
}

func repositoryPath(ref repo.Reference, suffix string) string {
	return "/repositories/" + url.PathEscape(ref.Owner) + "/" + url.PathEscape(ref.Name) + suffix
}

// ListFiles lists code files of a repository through the session.
func (c *Client) ListFiles(ctx context.Context, ref repo.Reference) ([]repo.RepositoryFile, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var out []fileDTO
	if err := c.do(ctx, http.MethodGet, repositoryPath(ref, "/files"), nil, &out); err != nil {
		return nil, err
	}
	return toFiles(out), nil
}

// FileContent returns the decoded content of one file.
func (c *Client) FileContent(ctx context.Context, ref repo.Reference, path string) (string, error) {
	if !c.Authenticated() {
		return "", ErrNotAuthenticated
	}
	var out struct {
		Content string `json:"content"`
	}
	p := repositoryPath(ref, "/file-content") + "?file_path=" + url.QueryEscape(path)
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// Frameworks asks the service which frameworks apply to a file.
func (c *Client) Frameworks(ctx context.Context, filePath string) (*FrameworksResult, error) {
	var out FrameworksResult
	escaped := make([]string, 0)
	for _, seg := range strings.Split(filePath, "/") {
		escaped = append(escaped, url.PathEscape(seg))
	}
	if err := c.do(ctx, http.MethodGet, "/frameworks/"+strings.Join(escaped, "/"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Classify returns the service's default framework for primaryFile.
func (c *Client) Classify(ctx context.Context, primaryFile, repositoryReference string) (string, error) {
	res, err := c.Frameworks(ctx, primaryFile)
	if err != nil {
		return "", err
	}
	return res.Default, nil
}

// PublicSuggestions requests suggestions for a public repository URL.
// The payload is returned undecoded for validation by the caller.
func (c *Client) PublicSuggestions(ctx context.Context, repoURL string, files []string, framework string) (map[string]any, error) {
	var out map[string]any
	err := c.do(ctx, http.MethodPost, "/repo/generate-suggestions", map[string]any{
		"repo_url":  repoURL,
		"files":     files,
		"framework": framework,
	}, &out)
	return out, err
}

// AuthenticatedSuggestions requests suggestions through the session.
func (c *Client) AuthenticatedSuggestions(ctx context.Context, fullName string, files []string, framework string) (map[string]any, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var out map[string]any
	err := c.do(ctx, http.MethodPost, "/generate-test-suggestions", map[string]any{
		"files":          files,
		"repo_full_name": fullName,
		"framework":      framework,
	}, &out)
	return out, err
}

// PublicCode requests test code for a public repository URL.
func (c *Client) PublicCode(ctx context.Context, repoURL string, suggestionID int, summary string, files []string, framework string) (map[string]any, error) {
	var out map[string]any
	err := c.do(ctx, http.MethodPost, "/repo/generate-code", map[string]any{
		"repo_url":           repoURL,
		"suggestion_id":      suggestionID,
		"suggestion_summary": summary,
		"files":              files,
		"framework":          framework,
	}, &out)
	return out, err
}

// AuthenticatedCode requests test code through the session.
func (c *Client) AuthenticatedCode(ctx context.Context, fullName string, suggestionID int, summary string, files []string, framework string) (map[string]any, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var out map[string]any
	err := c.do(ctx, http.MethodPost, "/generate-test-code", map[string]any{
		"suggestion_id":      suggestionID,
		"suggestion_summary": summary,
		"files":              files,
		"repo_full_name":     fullName,
		"framework":          framework,
	}, &out)
	return out, err
}

// CreatePullRequest opens a pull request with generated test code.
func (c *Client) CreatePullRequest(ctx context.Context, pr PullRequest) (*PullRequestResult, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	var out PullRequestResult
	if err := c.do(ctx, http.MethodPost, "/create-pull-request", pr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
