package adapters

import (
	"context"
	"fmt"

	llmprovider "github.com/haowjy/meridian-llm-go"
	"github.com/haowjy/meridian-llm-go/providers/openrouter"

	domainllm "readease/internal/domain/services/llm"
)

// OpenRouterAdapter wraps the library's OpenRouter provider and implements the Completer interface.
// It handles conversion between the single-turn completion types and the library's block-based types.
type OpenRouterAdapter struct {
	provider     llmprovider.Provider
	defaultModel string
}

// NewOpenRouterAdapter creates a new OpenRouter adapter using the library's provider.
func NewOpenRouterAdapter(apiKey, defaultModel string) (*OpenRouterAdapter, error) {
	provider, err := openrouter.NewProvider(apiKey)
	if err != nil {
		return nil, err
	}

	return NewOpenRouterAdapterWithProvider(provider, defaultModel), nil
}

// NewOpenRouterAdapterWithProvider creates a new OpenRouter adapter from an existing provider.
// Used by tests to substitute the library provider.
func NewOpenRouterAdapterWithProvider(provider llmprovider.Provider, defaultModel string) *OpenRouterAdapter {
	return &OpenRouterAdapter{
		provider:     provider,
		defaultModel: defaultModel,
	}
}

// Name returns the provider name.
func (a *OpenRouterAdapter) Name() string {
	return a.provider.Name().String()
}

// Complete generates a response from OpenRouter.
func (a *OpenRouterAdapter) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = a.defaultModel
	}
	if !a.provider.SupportsModel(model) {
		return nil, fmt.Errorf("model '%s' is not supported by %s provider", model, a.Name())
	}

	// Convert request to library request
	libReq := convertToLibraryRequest(req, model)

	// Call library provider
	libResp, err := a.provider.GenerateResponse(ctx, libReq)
	if err != nil {
		return nil, err
	}

	// Convert library response to completion response
	return convertFromLibraryResponse(libResp), nil
}
