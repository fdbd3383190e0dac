package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"

	domainllm "readease/internal/domain/services/llm"
)

func TestProvider_Complete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q, want /v1/messages", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [
				{"type": "thinking", "thinking": "hidden", "signature": "sig"},
				{"type": "text", "text": "Short summary."}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 3}
		}`))
	}))
	defer srv.Close()

	p, err := NewProvider("test-key", "claude-haiku-4-5", option.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	resp, err := p.Complete(context.Background(), &domainllm.CompletionRequest{
		System: "Summarize for dyslexic readers.",
		User:   "Long text",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != "Short summary." {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d, want 12/3", resp.InputTokens, resp.OutputTokens)
	}
	if resp.StopReason != "end_turn" {
		t.Errorf("StopReason = %q", resp.StopReason)
	}
	if gotBody["model"] != "claude-haiku-4-5" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	if _, ok := gotBody["system"]; !ok {
		t.Error("system prompt not sent")
	}
}

func TestProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	p, err := NewProvider("bad-key", "claude-haiku-4-5", option.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if _, err := p.Complete(context.Background(), &domainllm.CompletionRequest{User: "hi"}); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestNewProvider_RequiresKey(t *testing.T) {
	if _, err := NewProvider("", "claude-haiku-4-5"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestProvider_RejectsForeignModel(t *testing.T) {
	p, _ := NewProvider("k", "claude-haiku-4-5")
	_, err := p.Complete(context.Background(), &domainllm.CompletionRequest{Model: "gpt-4o", User: "hi"})
	if err == nil {
		t.Fatal("expected error for non-claude model")
	}
}
