// Package gemini answers completion requests with Google Gemini models.
package gemini

import (
	"context"

	provider "github.com/Cyclone1070/testgen/internal/provider/models"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiProvider implements provider.Provider for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Name implements provider.Provider.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.modelName
}

// Complete sends a request to the Gemini API and returns the response text.
func (p *GeminiProvider) Complete(ctx context.Context, req *provider.CompletionRequest) (*provider.CompletionResponse, error) {
	contents, config := toGeminiRequest(req)

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, mapGeminiError(ctx, err)
	}

	return fromGeminiResponse(resp, p.modelName)
}
