package adapters

import (
	"testing"

	llmprovider "github.com/haowjy/meridian-llm-go"

	domainllm "readease/internal/domain/services/llm"
)

func TestConvertToLibraryRequest(t *testing.T) {
	req := &domainllm.CompletionRequest{
		System:    "system prompt",
		User:      "user prompt",
		MaxTokens: 256,
	}

	lib := convertToLibraryRequest(req, "meta-llama/llama-3.3-70b-instruct")

	if lib.Model != "meta-llama/llama-3.3-70b-instruct" {
		t.Errorf("Model = %q", lib.Model)
	}
	if len(lib.Messages) != 1 || lib.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", lib.Messages)
	}
	blocks := lib.Messages[0].Blocks
	if len(blocks) != 1 || blocks[0].TextContent == nil || *blocks[0].TextContent != "user prompt" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	if lib.Params == nil || lib.Params.System == nil || *lib.Params.System != "system prompt" {
		t.Errorf("system prompt not carried in params")
	}
	if lib.Params.MaxTokens == nil || *lib.Params.MaxTokens != 256 {
		t.Errorf("max tokens not carried in params")
	}
}

func TestConvertToLibraryRequest_NoSystem(t *testing.T) {
	lib := convertToLibraryRequest(&domainllm.CompletionRequest{User: "hi"}, "m")
	if lib.Params.System != nil {
		t.Error("expected nil system for empty prompt")
	}
	if lib.Params.MaxTokens != nil {
		t.Error("expected nil max tokens when unset")
	}
}

func TestConvertFromLibraryResponse(t *testing.T) {
	thinking := "reasoning"
	part1 := "Hello "
	part2 := "world"
	resp := &llmprovider.GenerateResponse{
		Blocks: []*llmprovider.Block{
			{BlockType: "thinking", TextContent: &thinking},
			{BlockType: "text", TextContent: &part1},
			nil,
			{BlockType: "text", TextContent: &part2},
		},
		Model:        "m",
		InputTokens:  4,
		OutputTokens: 2,
		StopReason:   "stop",
	}

	got := convertFromLibraryResponse(resp)
	if got.Content != "Hello world" {
		t.Errorf("Content = %q, want %q", got.Content, "Hello world")
	}
	if got.InputTokens != 4 || got.OutputTokens != 2 || got.StopReason != "stop" {
		t.Errorf("unexpected metadata: %+v", got)
	}
}
