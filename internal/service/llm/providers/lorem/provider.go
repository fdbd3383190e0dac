package lorem

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	loremgen "github.com/bozaro/golorem"

	domainllm "readease/internal/domain/services/llm"
)

// Provider is a mock LLM provider that generates lorem ipsum text.
// Used for development without requiring real API keys.
type Provider struct {
	mu        sync.Mutex // generator is not safe for concurrent use
	generator *loremgen.Lorem
	delay     time.Duration
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// WithDelay makes every completion wait d before answering, simulating
// a remote call. Useful for exercising request timeouts locally.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-short"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Complete generates placeholder text sized to the request.
func (p *Provider) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = "lorem-fast"
	}
	if !p.SupportsModel(model) {
		return nil, fmt.Errorf("model '%s' is not supported by lorem provider", model)
	}

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}
	// Short answers read better in the UI; cap at roughly one paragraph per 100 tokens.
	targetWords := maxTokens / 4
	if strings.Contains(model, "short") || targetWords > 120 {
		targetWords = 120
	}

	text := p.generateTextWords(targetWords)

	return &domainllm.CompletionResponse{
		Content:      text,
		Model:        model,
		InputTokens:  len(strings.Fields(req.System)) + len(strings.Fields(req.User)),
		OutputTokens: len(strings.Fields(text)), // Word count as proxy
		StopReason:   "end_turn",
	}, nil
}

func (p *Provider) generateTextWords(targetWords int) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	wordCount := 0

	for wordCount < targetWords {
		// Generate sentence with 5-15 words
		sentence := p.generator.Sentence(5, 15)
		sb.WriteString(sentence)
		sb.WriteString(" ")

		wordCount += len(strings.Fields(sentence))
	}

	return strings.TrimSpace(sb.String())
}
