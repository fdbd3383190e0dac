package llm

import (
	"context"
	"log/slog"
	"time"

	"readease/internal/domain"
	domainllm "readease/internal/domain/services/llm"
	"readease/internal/metrics"
	"readease/internal/utils"
)

// Operation names used in logs and metrics.
const (
	OpSummarize      = "summarize"
	OpSimplify       = "simplify"
	OpCorrectGrammar = "correct_grammar"
	OpTranslate      = "translate"
	OpChat           = "chat"
	OpSuggestReplies = "suggest_replies"
)

// GatewayConfig holds per-call settings shared by every operation.
type GatewayConfig struct {
	// Model overrides the provider's default model when set
	Model string
	// MaxTokens caps each answer; 0 leaves it to the provider
	MaxTokens int
	// Timeout bounds each provider call; 0 means only the caller's deadline applies
	Timeout time.Duration
	// TraceStripper removes reasoning traces before suggestions are parsed; nil uses <think></think>
	TraceStripper *utils.TraceStripper
}

// Gateway implements the TextAssistant interface on top of a single Completer.
// Each operation issues exactly one provider call: no retries, no caching.
type Gateway struct {
	completer domainllm.Completer
	prompts   *Prompts
	cfg       GatewayConfig
	logger    *slog.Logger
}

// NewGateway creates a new gateway. A nil prompts uses the embedded catalog.
func NewGateway(completer domainllm.Completer, prompts *Prompts, cfg GatewayConfig, logger *slog.Logger) *Gateway {
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	if cfg.TraceStripper == nil {
		cfg.TraceStripper = utils.DefaultTraceStripper()
	}
	return &Gateway{
		completer: completer,
		prompts:   prompts,
		cfg:       cfg,
		logger:    logger,
	}
}

var _ domainllm.TextAssistant = (*Gateway)(nil)

// Summarize produces a dyslexia-friendly summary of text.
func (g *Gateway) Summarize(ctx context.Context, text string) (string, error) {
	return g.runTemplate(ctx, OpSummarize, "failed to summarize text", &g.prompts.Summarize, text)
}

// Simplify rewrites text with simpler words and shorter sentences.
func (g *Gateway) Simplify(ctx context.Context, text string) (string, error) {
	return g.runTemplate(ctx, OpSimplify, "failed to simplify text", &g.prompts.Simplify, text)
}

// CorrectGrammar fixes grammar and spelling while keeping the meaning.
func (g *Gateway) CorrectGrammar(ctx context.Context, text string) (string, error) {
	return g.runTemplate(ctx, OpCorrectGrammar, "failed to correct grammar", &g.prompts.CorrectGrammar, text)
}

// Chat answers a free-form message in a supportive tone.
func (g *Gateway) Chat(ctx context.Context, message string) (string, error) {
	return g.runTemplate(ctx, OpChat, "failed to get chat response", &g.prompts.Chat, message)
}

// Translate converts text between languages. An empty sourceLanguage means "auto".
func (g *Gateway) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	tp := &g.prompts.Translate
	system, user, rule := tp.translationPrompt(text, sourceLanguage, targetLanguage)

	g.logger.Debug("translation prompt selected",
		"rule", rule,
		"source_language", sourceLanguage,
		"target_language", targetLanguage,
	)

	content, err := g.complete(ctx, OpTranslate, system, user, text)
	if err != nil {
		return "", domain.NewUpstreamError("failed to translate text", err)
	}
	if content == "" {
		return tp.Fallback, nil
	}
	return content, nil
}

// SuggestReplies returns up to four short replies for the given conversation context.
// Provider failures and unparseable answers are logged and replaced by the
// default suggestions; this operation never fails.
func (g *Gateway) SuggestReplies(ctx context.Context, conversation string) []string {
	sp := &g.prompts.SuggestReplies
	user := render(sp.User, map[string]string{"context": conversation, "text": conversation})

	content, err := g.complete(ctx, OpSuggestReplies, sp.System, user, conversation)
	if err != nil {
		metrics.SuggestionFallbacks.WithLabelValues("provider_error").Inc()
		return g.defaultSuggestions()
	}

	suggestions := ExtractSuggestions(g.cfg.TraceStripper.Strip(content))
	if len(suggestions) == 0 {
		g.logger.Warn("could not extract suggestions, using defaults",
			"content_length", len(content),
		)
		metrics.SuggestionFallbacks.WithLabelValues("unparseable").Inc()
		return g.defaultSuggestions()
	}
	return suggestions
}

// Ping runs a fixed summarization to check that the provider is reachable and configured.
func (g *Gateway) Ping(ctx context.Context) (string, error) {
	return g.Summarize(ctx, g.prompts.Ping.Text)
}

// TraceStripper returns the stripper configured for this gateway.
func (g *Gateway) TraceStripper() *utils.TraceStripper {
	return g.cfg.TraceStripper
}

// ProviderName returns the name of the underlying provider.
func (g *Gateway) ProviderName() string {
	return g.completer.Name()
}

func (g *Gateway) defaultSuggestions() []string {
	defaults := g.prompts.SuggestReplies.Defaults
	out := make([]string, len(defaults))
	copy(out, defaults)
	return limit(out)
}

// runTemplate handles the operations that differ only by prompts and error text.
func (g *Gateway) runTemplate(ctx context.Context, op, failure string, t *PromptTemplate, text string) (string, error) {
	user := render(t.User, map[string]string{"text": text})

	content, err := g.complete(ctx, op, t.System, user, text)
	if err != nil {
		return "", domain.NewUpstreamError(failure, err)
	}
	if content == "" {
		return t.Fallback, nil
	}
	return content, nil
}

// complete performs one provider call under the configured timeout and records
// latency. Errors are logged here so every operation reports them the same way.
func (g *Gateway) complete(ctx context.Context, op, system, user, input string) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	provider := g.completer.Name()
	metrics.InputChars.WithLabelValues(op).Observe(float64(len([]rune(input))))

	start := time.Now()
	resp, err := g.completer.Complete(ctx, &domainllm.CompletionRequest{
		System:    system,
		User:      user,
		Model:     g.cfg.Model,
		MaxTokens: g.cfg.MaxTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		metrics.LLMCallDuration.WithLabelValues(op, provider, metrics.OutcomeError).Observe(elapsed.Seconds())
		g.logger.Error("llm call failed",
			"operation", op,
			"provider", provider,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return "", err
	}
	metrics.LLMCallDuration.WithLabelValues(op, provider, metrics.OutcomeOK).Observe(elapsed.Seconds())

	g.logger.Debug("llm call completed",
		"operation", op,
		"provider", provider,
		"model", resp.Model,
		"input_words", utils.CountWords(input),
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"stop_reason", resp.StopReason,
		"duration_ms", elapsed.Milliseconds(),
	)
	return resp.Content, nil
}
