// Package llmtest provides a scripted Completer for tests.
package llmtest

import (
	"context"
	"sync"

	domainllm "readease/internal/domain/services/llm"
)

// StubCompleter returns a fixed answer (or error) and records every request.
type StubCompleter struct {
	Content string
	Err     error

	mu       sync.Mutex
	requests []domainllm.CompletionRequest
}

// NewStub returns a stub answering content.
func NewStub(content string) *StubCompleter {
	return &StubCompleter{Content: content}
}

// NewFailingStub returns a stub whose every call fails with err.
func NewFailingStub(err error) *StubCompleter {
	return &StubCompleter{Err: err}
}

// Name returns "stub".
func (s *StubCompleter) Name() string { return "stub" }

// Complete records req and returns the scripted result.
func (s *StubCompleter) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, *req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &domainllm.CompletionResponse{
		Content: s.Content,
		Model:   req.Model,
	}, nil
}

// Calls returns the number of Complete calls so far.
func (s *StubCompleter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, or the zero value.
func (s *StubCompleter) LastRequest() domainllm.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return domainllm.CompletionRequest{}
	}
	return s.requests[len(s.requests)-1]
}
