package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ghelid/weather-mcp/internal/instrumentation"
)

// DefaultMCPEndpoint is the path of the streamable HTTP MCP endpoint.
const DefaultMCPEndpoint = "/mcp"

// HTTPHandlerConfig holds the pieces served by the streamable HTTP transport.
type HTTPHandlerConfig struct {
	// MCPHandler serves the MCP protocol (a streamable HTTP server).
	MCPHandler http.Handler

	// EndpointPath is where MCPHandler is mounted (default "/mcp").
	EndpointPath string

	// Health registers /healthz, /readyz and /healthz/detailed when set.
	Health *HealthChecker

	// Metrics records http_requests_total when set.
	Metrics *instrumentation.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewHTTPHandler builds the router for the streamable HTTP transport.
// No authentication is applied.
func NewHTTPHandler(cfg HTTPHandlerConfig) http.Handler {
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = DefaultMCPEndpoint
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	known := []string{cfg.EndpointPath}
	if cfg.Health != nil {
		known = append(known, "/healthz", "/readyz", "/healthz/detailed")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestTelemetry(cfg.Logger.With("component", "http"), cfg.Metrics, known))
	r.Use(middleware.Recoverer)

	if cfg.Health != nil {
		cfg.Health.RegisterHealthEndpoints(r)
	}
	r.Handle(cfg.EndpointPath, cfg.MCPHandler)

	return r
}

// requestTelemetry logs each request at debug level and records its metrics.
// Paths outside known are collapsed into one label.
func requestTelemetry(logger *slog.Logger, metrics *instrumentation.Metrics, known []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			metrics.RecordHTTPRequest(r.Context(), r.Method,
				instrumentation.PathLabel(r.URL.Path, known...), status, duration)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
