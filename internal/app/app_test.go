package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"readease/internal/config"
)

func TestBuild_LoremProvider(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:        "lorem",
		PreferencesBackend: "memory",
		CORSOrigins:        "*",
	}
	a, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer a.Close()

	if a.Store.Backend != "memory" {
		t.Errorf("Backend = %q", a.Store.Backend)
	}
	if a.Gateway.ProviderName() != "lorem" {
		t.Errorf("provider = %q", a.Gateway.ProviderName())
	}
	if len(a.Endpoints.Routes()) == 0 {
		t.Error("no routes")
	}
}

func TestBuild_TraceMarkersFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		open, close string
		in, want    string
	}{
		{"defaults when unset", "", "", "<think>notes</think>\n\nanswer", "answer"},
		{"configured markers", "[[reasoning]]", "[[/reasoning]]", "[[reasoning]]notes[[/reasoning]]\n\n<think>kept</think>", "<think>kept</think>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				LLMProvider:      "lorem",
				TraceOpenMarker:  tt.open,
				TraceCloseMarker: tt.close,
			}
			a, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			defer a.Close()

			if got := a.Gateway.TraceStripper().Strip(tt.in); got != tt.want {
				t.Errorf("Strip() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_MissingKeyFailsFast(t *testing.T) {
	cfg := &config.Config{LLMProvider: "groq", PreferencesBackend: "memory"}
	if _, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected error for missing GROQ_API_KEY")
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &config.Config{CORSOrigins: "https://app.example.com, https://ext.example.com"}
	h := CORS(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/summarize", nil)
	req.Header.Set("Origin", "https://ext.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://ext.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
