// Package endpoint holds the transport-independent API: one pure function per
// route taking a decoded request and returning a status and JSON body. The
// net/http, gin and per-route function bindings only marshal in and out.
package endpoint

import (
	"context"
	"log/slog"
	"net/http"

	domainllm "readease/internal/domain/services/llm"
	"readease/internal/domain/services"
	"readease/internal/utils"
)

// Request is what every binding extracts from its transport.
type Request struct {
	Body   []byte
	Params map[string]string
}

// Response is written back as JSON with Status.
type Response struct {
	Status int
	Body   any
}

// Func handles one route.
type Func func(ctx context.Context, req Request) Response

// Route binds a Func to a method and a path pattern. Path parameters use the
// net/http form, e.g. /api/preferences/{userId}.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler Func
}

// MessageBody is the shape of every non-2xx response.
type MessageBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Endpoints wires the text assistant and the preferences service to routes.
type Endpoints struct {
	assistant domainllm.TextAssistant
	prefs     services.UserPreferencesService
	stripper  *utils.TraceStripper
	logger    *slog.Logger
}

// Option customizes Endpoints.
type Option func(*Endpoints)

// WithTraceStripper replaces the default <think></think> stripper applied to text answers.
func WithTraceStripper(s *utils.TraceStripper) Option {
	return func(e *Endpoints) { e.stripper = s }
}

// New creates the endpoint set.
func New(assistant domainllm.TextAssistant, prefs services.UserPreferencesService, logger *slog.Logger, opts ...Option) *Endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Endpoints{
		assistant: assistant,
		prefs:     prefs,
		stripper:  utils.DefaultTraceStripper(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Routes returns the full route table. Every binding registers exactly these.
func (e *Endpoints) Routes() []Route {
	return []Route{
		{Name: "summarize", Method: http.MethodPost, Path: "/api/summarize", Handler: e.Summarize},
		{Name: "simplify", Method: http.MethodPost, Path: "/api/simplify", Handler: e.Simplify},
		{Name: "correct-grammar", Method: http.MethodPost, Path: "/api/correct-grammar", Handler: e.CorrectGrammar},
		{Name: "translate", Method: http.MethodPost, Path: "/api/translate", Handler: e.Translate},
		{Name: "chat", Method: http.MethodPost, Path: "/api/chat", Handler: e.Chat},
		{Name: "suggested-responses", Method: http.MethodPost, Path: "/api/suggested-responses", Handler: e.SuggestedResponses},
		{Name: "save-preferences", Method: http.MethodPost, Path: "/api/preferences", Handler: e.SavePreferences},
		{Name: "get-preferences", Method: http.MethodGet, Path: "/api/preferences/{userId}", Handler: e.GetPreferences},
		{Name: "test-llm", Method: http.MethodGet, Path: "/api/test-llm", Handler: e.TestLLM},
	}
}

// Lookup finds a route by name.
func (e *Endpoints) Lookup(name string) (Route, bool) {
	for _, r := range e.Routes() {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

func ok(body any) Response {
	return Response{Status: http.StatusOK, Body: body}
}

func badRequest(message string) Response {
	return Response{Status: http.StatusBadRequest, Body: MessageBody{Message: message}}
}
