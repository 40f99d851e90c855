package gemini

import (
	"context"
	"errors"
	"strings"

	provider "github.com/Cyclone1070/testgen/internal/provider/models"
	"google.golang.org/genai"
)

// toGeminiRequest converts a completion request into Gemini contents and config.
func toGeminiRequest(req *provider.CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	return genai.Text(req.Prompt), config
}

// defaultSafetySettings returns safety settings with blocking off for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdOff},
	}
}

// fromGeminiResponse converts a Gemini response into a completion response.
func fromGeminiResponse(resp *genai.GenerateContentResponse, modelUsed string) (*provider.CompletionResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "content blocked by safety filters",
		}
	}

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "candidate has no text",
		}
	}

	return &provider.CompletionResponse{
		Text:     sb.String(),
		Metadata: buildMetadata(resp.UsageMetadata, modelUsed),
	}, nil
}

// buildMetadata builds response metadata from usage data.
func buildMetadata(usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) provider.ResponseMetadata {
	metadata := provider.ResponseMetadata{
		ModelUsed: modelUsed,
	}
	if usage != nil {
		metadata.PromptTokens = int(usage.PromptTokenCount)
		metadata.CompletionTokens = int(usage.CandidatesTokenCount)
		metadata.TotalTokens = int(usage.TotalTokenCount)
	}
	return metadata
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return provider.FromStatus(apiErr.Code, apiErr.Message, err)
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
