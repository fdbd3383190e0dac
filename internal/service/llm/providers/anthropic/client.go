package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domainllm "readease/internal/domain/services/llm"
)

const defaultMaxTokens = 1024

// Provider implements the Completer interface for Anthropic (Claude) models.
type Provider struct {
	client       *anthropic.Client
	defaultModel string
}

// NewProvider creates a new Anthropic provider with the given API key.
// Extra request options (base URL, HTTP client) are passed through to the SDK.
func NewProvider(apiKey, defaultModel string, opts ...option.RequestOption) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	// The SDK retries twice by default; failures surface to the caller instead.
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	client := anthropic.NewClient(append(base, opts...)...)

	return &Provider{
		client:       &client,
		defaultModel: defaultModel,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "anthropic"
}

// SupportsModel returns true if this provider supports the given model.
// Anthropic models start with "claude-"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

// Complete sends a single user message with a system prompt to Claude.
func (p *Provider) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	// Validate model
	if !p.SupportsModel(model) {
		return nil, fmt.Errorf("model '%s' is not supported by Anthropic provider", model)
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	apiParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.User))},
		MaxTokens: maxTokens,
	}

	if req.System != "" {
		apiParams.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: req.System,
			},
		}
	}

	// Call Anthropic API
	message, err := p.client.Messages.New(ctx, apiParams)
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	return convertFromAnthropicResponse(message), nil
}
