// Package function serves one route per serverless function. The wired App is
// built on the first invocation and shared by every later one in the same
// instance.
package function

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"readease/internal/app"
	"readease/internal/config"
	"readease/internal/endpoint"
	"readease/internal/handler"
	"readease/internal/httputil"
	"readease/internal/middleware"
)

var (
	mu       sync.Mutex
	instance *runtime
	builder  = buildRuntime
)

// runtime is the cold-start singleton.
type runtime struct {
	handlers map[string]http.Handler
	logger   *slog.Logger
}

func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, _, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return newRuntime(a.Endpoints, logger, func(h http.Handler) http.Handler { return app.CORS(cfg, h) }), nil
}

func newRuntime(e *endpoint.Endpoints, logger *slog.Logger, wrap func(http.Handler) http.Handler) *runtime {
	rt := &runtime{handlers: make(map[string]http.Handler), logger: logger}
	for _, route := range e.Routes() {
		h := routeHandler(route, logger)
		rt.handlers[route.Name] = wrap(middleware.Chain(h, logger))
	}
	return rt
}

// get returns the shared runtime, building it on first use. A failed build is
// not cached so the next invocation retries.
func get(ctx context.Context) (*runtime, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance, nil
	}
	rt, err := builder(ctx)
	if err != nil {
		return nil, err
	}
	instance = rt
	return instance, nil
}

// Serve handles r with the named route.
func Serve(w http.ResponseWriter, r *http.Request, routeName string) {
	rt, err := get(r.Context())
	if err != nil {
		slog.Error("function startup failed", "route", routeName, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Service is not configured")
		return
	}
	h, ok := rt.handlers[routeName]
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "Not found")
		return
	}
	h.ServeHTTP(w, r)
}

// routeHandler enforces the route method and resolves path parameters from
// the URL path, falling back to the query string where the platform passes
// dynamic segments that way.
func routeHandler(route endpoint.Route, logger *slog.Logger) http.Handler {
	adapted := handler.Adapt(route, logger)
	params := handler.PathParams(route.Path)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != route.Method {
			w.Header().Set("Allow", route.Method)
			httputil.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		values := matchPath(route.Path, r.URL.Path)
		for _, name := range params {
			v := values[name]
			if v == "" {
				v = r.URL.Query().Get(name)
			}
			r.SetPathValue(name, v)
		}
		adapted.ServeHTTP(w, r)
	})
}

// matchPath maps pattern wildcards to path segments when both have the same
// number of segments.
func matchPath(pattern, path string) map[string]string {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ss := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(ss) {
		return nil
	}
	out := make(map[string]string)
	for i, p := range ps {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			out[p[1:len(p)-1]] = ss[i]
		}
	}
	return out
}
