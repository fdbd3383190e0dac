package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	domainllm "readease/internal/domain/services/llm"
)

// ErrNoChoices is returned when the provider answers 2xx without any choice.
var ErrNoChoices = errors.New("provider response contained no choices")

// Provider implements the Completer interface for any OpenAI-compatible
// /chat/completions endpoint. Groq, OpenAI and Gemini all speak this protocol.
type Provider struct {
	name         string
	defaultModel string
	client       *goopenai.Client
}

// Option configures a Provider.
type Option func(*goopenai.ClientConfig)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *goopenai.ClientConfig) { cfg.HTTPClient = c }
}

// NewProvider creates a client for the provider called name at baseURL.
// Deadlines come from the request context, so the default client has no timeout.
func NewProvider(name, baseURL, apiKey, defaultModel string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%s base URL is required", name)
	}

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Provider{
		name:         name,
		defaultModel: defaultModel,
		client:       goopenai.NewClientWithConfig(cfg),
	}, nil
}

// Name returns the provider name (e.g., "groq").
func (p *Provider) Name() string {
	return p.name
}

// Complete issues one chat completion with a system and a user message.
// A null or empty content in the first choice yields an empty Content.
func (p *Provider) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	msgs := make([]goopenai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.System})
	}
	msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: req.User})

	out, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     model,
		Messages:  msgs,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, p.wrapError(err)
	}
	if len(out.Choices) == 0 {
		return nil, ErrNoChoices
	}

	first := out.Choices[0]
	respModel := out.Model
	if respModel == "" {
		respModel = model
	}

	return &domainllm.CompletionResponse{
		Content:      first.Message.Content,
		Model:        respModel,
		InputTokens:  out.Usage.PromptTokens,
		OutputTokens: out.Usage.CompletionTokens,
		StopReason:   string(first.FinishReason),
	}, nil
}

// wrapError reduces the client's errors to "<name> http <status>: <message>",
// preferring the OpenAI-style {"error":{"message":...}} text.
func (p *Provider) wrapError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s http %d: %s", p.name, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		msg := strings.TrimSpace(string(reqErr.Body))
		if msg == "" {
			msg = reqErr.HTTPStatus
		}
		return fmt.Errorf("%s http %d: %s", p.name, reqErr.HTTPStatusCode, msg)
	}
	return err
}
