// Package ginroute serves the endpoint table from a gin engine.
package ginroute

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readease/internal/endpoint"
	"readease/internal/httputil"
	"readease/internal/metrics"
	"readease/internal/middleware"
)

// NewEngine builds a gin engine with request ids, logging, metrics, panic
// recovery and every route of e.
func NewEngine(e *endpoint.Endpoints, logger *slog.Logger, dev bool) *gin.Engine {
	if dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.ErrorBody{Message: "Internal server error"})
	}))
	engine.Use(RequestID(), Logging(logger), Metrics())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	Register(engine, e, logger)
	return engine
}

// Register adds every route of e to r.
func Register(r gin.IRoutes, e *endpoint.Endpoints, logger *slog.Logger) {
	for _, route := range e.Routes() {
		r.Handle(route.Method, Path(route.Path), Adapt(route, logger))
	}
}

// Adapt turns an endpoint into a gin handler.
func Adapt(route endpoint.Route, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := httputil.ReadBody(c.Writer, c.Request)
		if err != nil {
			if errors.Is(err, httputil.ErrBodyTooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, httputil.ErrorBody{Message: "Request body too large"})
				return
			}
			logger.Warn("failed to read request body", "route", route.Name, "error", err)
			c.JSON(http.StatusBadRequest, httputil.ErrorBody{Message: "Invalid request body"})
			return
		}

		req := endpoint.Request{Body: body, Params: make(map[string]string, len(c.Params))}
		for _, p := range c.Params {
			req.Params[p.Key] = p.Value
		}

		resp := route.Handler(c.Request.Context(), req)
		c.JSON(resp.Status, resp.Body)
	}
}

// Path converts a net/http pattern path ("/a/{id}") into gin syntax ("/a/:id").
func Path(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			name := s[1 : len(s)-1]
			if strings.HasSuffix(name, "...") {
				segments[i] = "*" + strings.TrimSuffix(name, "...")
			} else {
				segments[i] = ":" + name
			}
		}
	}
	return strings.Join(segments, "/")
}

// RequestID mirrors middleware.RequestID for gin: the id lands in the
// response header and in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(middleware.RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(middleware.RequestIDHeader, id)
		c.Request = c.Request.WithContext(middleware.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Logging records method, path, status, and duration per request.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Metrics counts requests by method, route template and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
