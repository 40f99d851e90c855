// Package openai answers completion requests with any OpenAI-compatible
// chat completion endpoint (OpenAI, OpenRouter, local gateways).
package openai

import (
	"context"
	"errors"
	"strings"

	provider "github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// chatClient is the subset of *openai.Client used here.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider implements provider.Provider over chat completions.
type OpenAIProvider struct {
	client chatClient
	model  string
}

// New creates a provider around an existing client.
func New(client chatClient, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIProvider{client: client, model: model}
}

// NewFromAPIKey builds a client for apiKey. An empty baseURL keeps the
// library default.
func NewFromAPIKey(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return New(openai.NewClientWithConfig(cfg), model)
}

// Name implements provider.Provider.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete implements provider.Provider.
func (p *OpenAIProvider) Complete(ctx context.Context, req *provider.CompletionRequest) (*provider.CompletionResponse, error) {
	chatReq := openai.ChatCompletionRequest{Model: p.model}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	if req.MaxOutputTokens > 0 {
		chatReq.MaxCompletionTokens = req.MaxOutputTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(ctx, err)
	}

	if len(resp.Choices) > 0 && resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "content blocked by content filter",
		}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "no choices in response",
		}
	}
	if resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "content blocked by content filter",
		}
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}
	return &provider.CompletionResponse{
		Text: resp.Choices[0].Message.Content,
		Metadata: provider.ResponseMetadata{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			ModelUsed:        model,
		},
	}, nil
}

func mapOpenAIError(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return provider.FromStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return provider.FromStatus(reqErr.HTTPStatusCode, reqErr.Error(), err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeTimeout,
			Message:    "request timeout",
			Underlying: err,
			Retryable:  true,
		}
	}
	return &provider.ProviderError{
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}
