package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/provider/models"
	"go.uber.org/zap"
)

const suggestionsSystem = `You are a senior QA engineer. Analyze the given source files and propose 3 to 5 meaningful test cases for the requested framework.
Focus on edge cases, error handling and validation. Do not write test code.
Respond with a JSON object only: {"framework": "<framework>", "suggestions": [{"id": 1, "summary": "<one or two sentences>", "framework": "<framework>"}]}`

const codeSystem = `You are a senior QA engineer writing complete, runnable test code.
Include all imports and setup, follow the framework's conventions and use descriptive test names.
Respond with a JSON object only: {"test_code": "<code>", "suggested_filename": "<file name>", "language": "<language>", "framework": "<framework>"}`

// ContentSource reads file contents to include in model prompts.
type ContentSource interface {
	FileContent(ctx context.Context, path string) (string, error)
}

// filesSection renders the target files, with contents when available.
func (p *Pipeline) filesSection(ctx context.Context, files []string) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "File: %s\n", f)
		if p.contents == nil {
			continue
		}
		content, err := p.contents.FileContent(ctx, f)
		if err != nil {
			p.logger.Debug("skipping file content", zap.String("path", f), zap.Error(err))
			continue
		}
		if p.maxFileSize > 0 && len(content) > p.maxFileSize {
			content = content[:p.maxFileSize] + "\n... (truncated)"
		}
		fmt.Fprintf(&b, "```\n%s\n```\n", content)
	}
	return b.String()
}

func (p *Pipeline) modelSuggestionStrategy(req Request, provider models.Provider) Strategy[[]Suggestion] {
	return Strategy[[]Suggestion]{
		Name: provider.Name(),
		Invoke: func(ctx context.Context) (any, error) {
			prompt := fmt.Sprintf("Framework: %s\n\n%s", req.Framework, p.filesSection(ctx, req.TargetFiles))
			return p.complete(ctx, provider, suggestionsSystem, prompt)
		},
		Validate: validateSuggestions(req.Framework),
	}
}

func (p *Pipeline) modelCodeStrategy(req Request, s Suggestion, provider models.Provider) Strategy[*CodeResult] {
	language := "unknown"
	if lang, ok := framework.LanguageOf(req.Primary()); ok {
		language = lang.Name
	}
	return Strategy[*CodeResult]{
		Name: provider.Name(),
		Invoke: func(ctx context.Context) (any, error) {
			prompt := fmt.Sprintf("Framework: %s\nLanguage: %s\nTest case: %s\n\n%s",
				req.Framework, language, s.Summary, p.filesSection(ctx, req.TargetFiles))
			return p.complete(ctx, provider, codeSystem, prompt)
		},
		Validate: validateCode,
	}
}

func (p *Pipeline) complete(ctx context.Context, provider models.Provider, system, prompt string) (any, error) {
	resp, err := provider.Complete(ctx, &models.CompletionRequest{
		System:          system,
		Prompt:          prompt,
		JSON:            true,
		MaxOutputTokens: p.maxOutputTokens,
	})
	if err != nil {
		return nil, err
	}
	return extractJSON(resp.Text)
}

// extractJSON parses the first JSON object in text, tolerating markdown
// code fences and surrounding prose.
func extractJSON(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in model response")
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return out, nil
}
