package anthropic

import (
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	domainllm "readease/internal/domain/services/llm"
)

// convertFromAnthropicResponse flattens the text blocks of a Claude message.
// Thinking and tool blocks are skipped: only the visible answer is returned.
func convertFromAnthropicResponse(msg *anthropic.Message) *domainllm.CompletionResponse {
	var sb strings.Builder
	for _, content := range msg.Content {
		if content.Type == "text" {
			sb.WriteString(content.Text)
		}
	}

	return &domainllm.CompletionResponse{
		Content:      sb.String(),
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
		StopReason:   string(msg.StopReason),
	}
}
