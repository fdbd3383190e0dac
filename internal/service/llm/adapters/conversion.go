package adapters

import (
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	domainllm "readease/internal/domain/services/llm"
)

const blockTypeText = "text"

// convertToLibraryRequest converts a single-turn completion into a library GenerateRequest
func convertToLibraryRequest(req *domainllm.CompletionRequest, model string) *llmprovider.GenerateRequest {
	user := req.User
	messages := []llmprovider.Message{
		{
			Role: "user",
			Blocks: []*llmprovider.Block{
				{
					BlockType:   blockTypeText,
					Sequence:    0,
					TextContent: &user,
				},
			},
		},
	}

	params := &llmprovider.RequestParams{}
	if req.System != "" {
		system := req.System
		params.System = &system
	}
	if req.MaxTokens > 0 {
		maxTokens := req.MaxTokens
		params.MaxTokens = &maxTokens
	}

	return &llmprovider.GenerateRequest{
		Messages: messages,
		Model:    model,
		Params:   params,
	}
}

// convertFromLibraryResponse joins the text blocks of a library response.
// Thinking and tool blocks are dropped.
func convertFromLibraryResponse(resp *llmprovider.GenerateResponse) *domainllm.CompletionResponse {
	var sb strings.Builder
	for _, block := range resp.Blocks {
		if block == nil || block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		sb.WriteString(*block.TextContent)
	}

	return &domainllm.CompletionResponse{
		Content:      sb.String(),
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		StopReason:   resp.StopReason,
	}
}
