package llm

import (
	"fmt"
	"log/slog"

	"readease/internal/capabilities"
	"readease/internal/config"
	"readease/internal/utils"
)

// SetupGateway builds the text assistant for the configured provider.
// It fails when the provider is unknown, its API key is missing, or the
// prompts file cannot be loaded.
func SetupGateway(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	// Initialize capability registry (embedded provider catalog)
	registry, err := capabilities.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize capability registry: %w", err)
	}

	factory := NewProviderFactory(cfg, registry)
	completer, err := factory.GetProvider(cfg.LLMProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to setup LLM provider: %w", err)
	}

	prompts, err := LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	caps, err := registry.GetProvider(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	model := cfg.LLMModel
	if model == "" {
		model = caps.DefaultModel
	}

	if m := caps.Model(model); m == nil {
		logger.Warn("model not listed in capability registry",
			"provider", caps.Provider,
			"model", model,
		)
	} else if m.EmitsReasoningTrace {
		logger.Info("model emits reasoning traces, answers will be stripped",
			"provider", caps.Provider,
			"model", model,
		)
	}

	promptSource := "embedded"
	if cfg.PromptsFile != "" {
		promptSource = cfg.PromptsFile
	}
	logger.Info("provider available",
		"name", caps.Provider,
		"model", model,
		"timeout", cfg.LLMTimeout.String(),
		"prompts", promptSource,
	)

	stripper := utils.DefaultTraceStripper()
	if cfg.TraceOpenMarker != "" && cfg.TraceCloseMarker != "" {
		stripper = utils.NewTraceStripper(cfg.TraceOpenMarker, cfg.TraceCloseMarker)
	}

	return NewGateway(completer, prompts, GatewayConfig{
		Model:         model,
		MaxTokens:     cfg.LLMMaxTokens,
		Timeout:       cfg.LLMTimeout,
		TraceStripper: stripper,
	}, logger), nil
}
