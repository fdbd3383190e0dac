// Package app assembles the gateway, the preference store and the endpoint
// table from configuration. Every entry point builds through here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"readease/internal/config"
	"readease/internal/endpoint"
	"readease/internal/repository"
	"readease/internal/service"
	"readease/internal/service/llm"
)

// App is a fully wired service.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Gateway   *llm.Gateway
	Store     *repository.Store
	Endpoints *endpoint.Endpoints
}

// Build wires everything for cfg. The provider API key is checked here so a
// misconfigured deployment fails at startup rather than on the first request.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	gateway, err := llm.SetupGateway(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences store: %w", err)
	}

	prefsService := service.NewUserPreferencesService(store.Preferences, store.Backend, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Gateway:   gateway,
		Store:     store,
		Endpoints: endpoint.New(gateway, prefsService, logger, endpoint.WithTraceStripper(gateway.TraceStripper())),
	}, nil
}

// Close releases the preference store.
func (a *App) Close() error {
	return a.Store.Close()
}

// CORS wraps h with the configured cross-origin policy.
func CORS(cfg *config.Config, h http.Handler) http.Handler {
	origins := strings.Split(cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(h)
}
