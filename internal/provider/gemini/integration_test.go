//go:build integration

package gemini

import (
	"context"
	"os"
	"testing"

	provider "github.com/Cyclone1070/testgen/internal/provider/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_LiveAPI_Complete(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping live API test")
	}

	ctx := context.Background()
	client, err := NewFromAPIKey(ctx, apiKey)
	require.NoError(t, err)

	resp, err := New(client, "").Complete(ctx, &provider.CompletionRequest{
		Prompt: `Reply with the JSON object {"ok": true} and nothing else.`,
		JSON:   true,
	})

	require.NoError(t, err)
	assert.Contains(t, resp.Text, "ok")
}
