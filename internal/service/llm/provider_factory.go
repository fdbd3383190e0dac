package llm

import (
	"fmt"
	"sort"
	"strings"

	"readease/internal/capabilities"
	"readease/internal/config"
	domainllm "readease/internal/domain/services/llm"
	"readease/internal/service/llm/adapters"
	"readease/internal/service/llm/providers/anthropic"
	"readease/internal/service/llm/providers/lorem"
	"readease/internal/service/llm/providers/openai"
)

// ProviderCreatorFunc builds a Completer from the provider's catalog entry.
type ProviderCreatorFunc func(caps *capabilities.ProviderCapabilities) (domainllm.Completer, error)

// ProviderFactory creates LLM provider instances.
// API keys come from config; base URLs and default models from the capability registry.
type ProviderFactory struct {
	config   *config.Config
	registry *capabilities.Registry
	creators map[string]ProviderCreatorFunc
}

// NewProviderFactory creates a new provider factory with the standard providers registered.
func NewProviderFactory(cfg *config.Config, registry *capabilities.Registry) *ProviderFactory {
	f := &ProviderFactory{
		config:   cfg,
		registry: registry,
		creators: make(map[string]ProviderCreatorFunc),
	}

	f.Register("groq", f.openAICompatible(cfg.GroqAPIKey))
	f.Register("openai", f.openAICompatible(cfg.OpenAIAPIKey))
	f.Register("gemini", f.openAICompatible(cfg.GeminiAPIKey))
	f.Register("anthropic", f.createAnthropicProvider)
	f.Register("openrouter", f.createOpenRouterProvider)
	f.Register("lorem", f.createLoremProvider)

	return f
}

// Register adds or replaces the creator for a provider name.
func (f *ProviderFactory) Register(providerName string, creator ProviderCreatorFunc) {
	f.creators[providerName] = creator
}

// GetProvider returns a provider instance for the given provider name.
//
// Supported providers:
//   - "groq" - Llama models via Groq's OpenAI-compatible API (default)
//   - "openai" - OpenAI models
//   - "gemini" - Gemini models via Google's OpenAI-compatible endpoint
//   - "anthropic" - Claude models via Anthropic API
//   - "openrouter" - Multiple providers via OpenRouter
//   - "lorem" - Mock provider for development (no API key required)
//
// A missing API key is reported here, at startup, rather than on the first request.
func (f *ProviderFactory) GetProvider(providerName string) (domainllm.Completer, error) {
	providerName = strings.ToLower(providerName)

	creator, ok := f.creators[providerName]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s (supported: %s)", providerName, strings.Join(f.Supported(), ", "))
	}

	caps, err := f.registry.GetProvider(providerName)
	if err != nil {
		return nil, err
	}

	return creator(caps)
}

// Supported lists the registered provider names, sorted.
func (f *ProviderFactory) Supported() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// openAICompatible creates a provider speaking the /chat/completions protocol.
func (f *ProviderFactory) openAICompatible(apiKey string) ProviderCreatorFunc {
	return func(caps *capabilities.ProviderCapabilities) (domainllm.Completer, error) {
		if apiKey == "" {
			return nil, fmt.Errorf("%s environment variable not set", caps.APIKeyEnv)
		}

		baseURL := caps.BaseURL
		if f.config.LLMBaseURL != "" {
			baseURL = f.config.LLMBaseURL
		}

		provider, err := openai.NewProvider(caps.Provider, baseURL, apiKey, caps.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s provider: %w", caps.DisplayName, err)
		}
		return provider, nil
	}
}

// createAnthropicProvider creates an Anthropic provider instance
func (f *ProviderFactory) createAnthropicProvider(caps *capabilities.ProviderCapabilities) (domainllm.Completer, error) {
	if f.config.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", caps.APIKeyEnv)
	}

	provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey, caps.DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
	}

	return provider, nil
}

// createOpenRouterProvider creates an OpenRouter provider through meridian-llm-go
func (f *ProviderFactory) createOpenRouterProvider(caps *capabilities.ProviderCapabilities) (domainllm.Completer, error) {
	if f.config.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", caps.APIKeyEnv)
	}

	adapter, err := adapters.NewOpenRouterAdapter(f.config.OpenRouterAPIKey, caps.DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter provider: %w", err)
	}

	return adapter, nil
}

// createLoremProvider creates a Lorem mock provider instance
// Lorem requires no API key - it's a development provider that generates lorem ipsum text
func (f *ProviderFactory) createLoremProvider(_ *capabilities.ProviderCapabilities) (domainllm.Completer, error) {
	return lorem.NewProvider(), nil
}
