// Package handler binds the endpoint table to net/http.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"readease/internal/endpoint"
	"readease/internal/httputil"
)

// Register adds every route of e to mux using Go 1.22 method patterns.
func Register(mux *http.ServeMux, e *endpoint.Endpoints, logger *slog.Logger) {
	for _, route := range e.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, Adapt(route, logger))
	}
}

// Adapt turns an endpoint into an http.HandlerFunc. Path parameters named in
// the route pattern are copied into Request.Params.
func Adapt(route endpoint.Route, logger *slog.Logger) http.HandlerFunc {
	params := PathParams(route.Path)
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := httputil.ReadBody(w, r)
		if err != nil {
			if errors.Is(err, httputil.ErrBodyTooLarge) {
				httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			logger.Warn("failed to read request body", "route", route.Name, "error", err)
			httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req := endpoint.Request{Body: body, Params: make(map[string]string, len(params))}
		for _, name := range params {
			req.Params[name] = r.PathValue(name)
		}

		resp := route.Handler(r.Context(), req)
		httputil.RespondJSON(w, resp.Status, resp.Body)
	}
}

// PathParams lists the {name} wildcards of a pattern path in order.
func PathParams(path string) []string {
	var names []string
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			names = append(names, strings.TrimSuffix(segment[1:len(segment)-1], "..."))
		}
	}
	return names
}
