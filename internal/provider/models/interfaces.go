package models

import "context"

// Provider is a language model that can answer a single completion request.
type Provider interface {
	// Name identifies the provider in logs and metrics (e.g. "gemini").
	Name() string

	// Complete sends one request and returns the model's text.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}
