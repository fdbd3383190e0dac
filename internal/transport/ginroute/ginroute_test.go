package ginroute

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"readease/internal/endpoint"
	"readease/internal/middleware"
	"readease/internal/repository/memory"
	"readease/internal/service"
	"readease/internal/service/llm"
	"readease/internal/service/llm/llmtest"
)

func newTestEngine(stub *llmtest.StubCompleter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := llm.NewGateway(stub, nil, llm.GatewayConfig{}, logger)
	prefs := service.NewUserPreferencesService(memory.NewUserPreferencesRepository(), "memory", logger)
	return NewEngine(endpoint.New(gateway, prefs, logger), logger, false)
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestPath(t *testing.T) {
	tests := map[string]string{
		"/api/summarize":            "/api/summarize",
		"/api/preferences/{userId}": "/api/preferences/:userId",
		"/static/{rest...}":         "/static/*rest",
	}
	for in, want := range tests {
		if got := Path(in); got != want {
			t.Errorf("Path(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEngine_Translate(t *testing.T) {
	stub := llmtest.NewStub("Hola")
	w := serve(newTestEngine(stub), http.MethodPost, "/api/translate", `{"text":"Hello","sourceLanguage":"en","targetLanguage":"es"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["translatedText"] != "Hola" {
		t.Errorf("translatedText = %q", body["translatedText"])
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestEngine_ValidationAndErrors(t *testing.T) {
	tests := []struct {
		name   string
		stub   *llmtest.StubCompleter
		path   string
		body   string
		status int
		want   string
	}{
		{"missing text", llmtest.NewStub("x"), "/api/simplify", `{}`, http.StatusBadRequest, `"message":"Text is required"`},
		{"provider failure", llmtest.NewFailingStub(errors.New("down")), "/api/correct-grammar", `{"text":"x"}`, http.StatusInternalServerError, `"error":"failed to correct grammar: down"`},
		{"suggestions fallback", llmtest.NewFailingStub(errors.New("down")), "/api/suggested-responses", `{"context":"x"}`, http.StatusOK, `"suggestions":[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTestEngine(tt.stub), http.MethodPost, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body %s missing %s", w.Body.String(), tt.want)
			}
		})
	}
}

func TestEngine_Preferences(t *testing.T) {
	engine := newTestEngine(llmtest.NewStub(""))

	if w := serve(engine, http.MethodGet, "/api/preferences/u9", ""); w.Code != http.StatusNotFound {
		t.Fatalf("GET status = %d, want 404", w.Code)
	}
	if w := serve(engine, http.MethodPost, "/api/preferences", `{"userId":"u9","lineHeight":20}`); w.Code != http.StatusOK {
		t.Fatalf("POST status = %d", w.Code)
	}
	w := serve(engine, http.MethodGet, "/api/preferences/u9", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"lineHeight":20`) {
		t.Fatalf("GET = %d %s", w.Code, w.Body.String())
	}
}
