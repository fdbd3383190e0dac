package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"readease/internal/endpoint"
	"readease/internal/repository/memory"
	"readease/internal/service"
	"readease/internal/service/llm"
	"readease/internal/service/llm/llmtest"
)

func newTestServer(t *testing.T, stub *llmtest.StubCompleter) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := llm.NewGateway(stub, nil, llm.GatewayConfig{}, logger)
	prefs := service.NewUserPreferencesService(memory.NewUserPreferencesRepository(), "memory", logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Health)
	Register(mux, endpoint.New(gateway, prefs, logger), logger)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestServer_Summarize(t *testing.T) {
	srv := newTestServer(t, llmtest.NewStub("<think>plan</think>\n\nShort version."))

	resp, err := http.Post(srv.URL+"/api/summarize", "application/json", strings.NewReader(`{"text":"A long text."}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := decode(t, resp)["summary"]; got != "Short version." {
		t.Errorf("summary = %v", got)
	}
}

func TestServer_ProviderError(t *testing.T) {
	srv := newTestServer(t, llmtest.NewFailingStub(errors.New("rate limited")))

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{"message":"hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	body := decode(t, resp)
	if body["message"] != "Error processing chat response" {
		t.Errorf("message = %v", body["message"])
	}
	if body["error"] != "failed to get chat response: rate limited" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestServer_PreferencesPathParam(t *testing.T) {
	srv := newTestServer(t, llmtest.NewStub(""))

	resp, err := http.Get(srv.URL + "/api/preferences/u1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/preferences", "application/json", strings.NewReader(`{"userId":"u1","theme":"dark"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/preferences/u1")
	if err != nil {
		t.Fatal(err)
	}
	body := decode(t, resp)
	if body["userId"] != "u1" || body["theme"] != "dark" || body["fontSize"] != float64(16) {
		t.Errorf("body = %v", body)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, llmtest.NewStub(""))
	resp, err := http.Get(srv.URL + "/api/summarize")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, llmtest.NewStub(""))
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if body := decode(t, resp); body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestPathParams(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/summarize", ""},
		{"/api/preferences/{userId}", "userId"},
		{"/files/{dir}/{rest...}", "dir,rest"},
	}
	for _, tt := range tests {
		if got := strings.Join(PathParams(tt.path), ","); got != tt.want {
			t.Errorf("PathParams(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
