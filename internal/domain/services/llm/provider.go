package llm

import (
	"context"
)

// Completer defines the interface that all LLM providers must implement.
// This abstraction allows supporting multiple providers (Groq, Anthropic,
// OpenRouter, ...) behind the text assistant.
type Completer interface {
	// Complete sends one system + user prompt pair and returns the generated text.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name (e.g., "groq", "anthropic")
	Name() string
}

// CompletionRequest contains the parameters for a single-turn completion.
type CompletionRequest struct {
	// System is the system instruction
	System string

	// User is the user message built from the caller's input
	User string

	// Model is the model identifier; empty means the provider default
	Model string

	// MaxTokens caps the generated output; 0 means the provider default
	MaxTokens int
}

// CompletionResponse contains the provider's answer.
type CompletionResponse struct {
	// Content is the text content of the first choice; may be empty
	Content string

	// Model is the model that was used (may differ from request if aliased)
	Model string

	InputTokens  int
	OutputTokens int

	// StopReason indicates why generation stopped (e.g., "stop", "end_turn")
	StopReason string
}
