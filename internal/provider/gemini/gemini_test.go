package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	provider "github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	var ps []*genai.Part
	for _, p := range parts {
		ps = append(ps, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: ps},
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
			TotalTokenCount:      15,
		},
	}
}

// --- HAPPY PATH TESTS ---

func TestComplete_HappyPath_TextResponse(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, "gemini-mock", model)
			require.Len(t, contents, 1)
			assert.Equal(t, "write tests", contents[0].Parts[0].Text)
			require.NotNil(t, config.SystemInstruction)
			assert.Equal(t, "you are a test writer", config.SystemInstruction.Parts[0].Text)
			assert.Equal(t, "application/json", config.ResponseMIMEType)
			assert.Equal(t, int32(512), config.MaxOutputTokens)
			assert.Len(t, config.SafetySettings, 4)
			return textResponse(`{"suggestions":`, `[]}`), nil
		},
	}
	p := New(mockClient, "gemini-mock")

	resp, err := p.Complete(context.Background(), &provider.CompletionRequest{
		System:          "you are a test writer",
		Prompt:          "write tests",
		JSON:            true,
		MaxOutputTokens: 512,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"suggestions":[]}`, resp.Text)
	assert.Equal(t, 15, resp.Metadata.TotalTokens)
	assert.Equal(t, "gemini-mock", resp.Metadata.ModelUsed)
}

func TestNew_EmptyModel_UsesDefault(t *testing.T) {
	p := New(&MockGeminiClient{}, "")

	assert.Equal(t, DefaultModel, p.Model())
	assert.Equal(t, "gemini", p.Name())
}

// --- UNHAPPY PATH TESTS ---

func TestComplete_APIError_MapsStatus(t *testing.T) {
	cases := []struct {
		code     int
		sentinel error
	}{
		{401, provider.ErrAuthentication},
		{429, provider.ErrRateLimit},
		{400, provider.ErrInvalidRequest},
		{503, provider.ErrServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.code), func(t *testing.T) {
			mockClient := &MockGeminiClient{
				GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return nil, genai.APIError{Code: tc.code, Message: "nope"}
				},
			}

			_, err := New(mockClient, "m").Complete(context.Background(), &provider.CompletionRequest{Prompt: "x"})

			assert.ErrorIs(t, err, tc.sentinel)
		})
	}
}

func TestComplete_DeadlineExceeded_MapsTimeout(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, fmt.Errorf("post: %w", context.DeadlineExceeded)
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), &provider.CompletionRequest{Prompt: "x"})

	assert.ErrorIs(t, err, provider.ErrTimeout)
	assert.True(t, provider.IsRetryable(err))
}

func TestComplete_OtherError_MapsNetwork(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("dial tcp: refused")
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), &provider.CompletionRequest{Prompt: "x"})

	assert.ErrorIs(t, err, provider.ErrNetwork)
}

func TestComplete_SafetyBlock_ReturnsContentBlocked(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}, nil
		},
	}

	_, err := New(mockClient, "m").Complete(context.Background(), &provider.CompletionRequest{Prompt: "x"})

	assert.ErrorIs(t, err, provider.ErrContentBlocked)
}

// --- EDGE CASE TESTS ---

func TestComplete_NoCandidatesOrBlankText_ReturnsEmptyResponse(t *testing.T) {
	responses := []*genai.GenerateContentResponse{
		{},
		textResponse("   "),
		{Candidates: []*genai.Candidate{{}}},
	}
	for i, r := range responses {
		resp := r
		mockClient := &MockGeminiClient{
			GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return resp, nil
			},
		}

		_, err := New(mockClient, "m").Complete(context.Background(), &provider.CompletionRequest{Prompt: "x"})

		assert.ErrorIs(t, err, provider.ErrEmptyResponse, "case %d", i)
	}
}

func TestToGeminiRequest_MinimalRequest(t *testing.T) {
	contents, config := toGeminiRequest(&provider.CompletionRequest{Prompt: "hi"})

	require.Len(t, contents, 1)
	assert.Nil(t, config.SystemInstruction)
	assert.Empty(t, config.ResponseMIMEType)
	assert.Zero(t, config.MaxOutputTokens)
}
