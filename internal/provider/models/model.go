package models

// CompletionRequest encapsulates a single-turn generation request.
type CompletionRequest struct {
	// System carries the instructions the model should follow.
	System string

	// Prompt is the user turn.
	Prompt string

	// JSON asks the provider for a JSON object response when supported.
	JSON bool

	// MaxOutputTokens caps the response; zero leaves the provider default.
	MaxOutputTokens int
}

// CompletionResponse contains the model's text and metadata.
type CompletionResponse struct {
	Text     string
	Metadata ResponseMetadata
}

// ResponseMetadata contains information about the generation.
type ResponseMetadata struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	ModelUsed        string
}
