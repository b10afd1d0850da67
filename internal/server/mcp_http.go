package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	// DefaultHTTPAddr is the listen address for the streamable HTTP transport.
	DefaultHTTPAddr = ":8080"

	httpReadHeaderTimeout = 10 * time.Second
	httpIdleTimeout       = 120 * time.Second
)

// MCPHTTPServerConfig configures the streamable HTTP transport.
type MCPHTTPServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// DisableStreaming makes the endpoint answer with plain JSON instead of
	// SSE streams, for clients that cannot consume them.
	DisableStreaming bool

	Health  *HealthChecker
	Context *ServerContext
	Logger  *slog.Logger
}

// MCPHTTPServer serves the MCP tools over streamable HTTP, next to the
// health endpoints.
type MCPHTTPServer struct {
	httpServer *http.Server
	addr       string
	logger     *slog.Logger
}

// NewMCPHTTPServer wraps mcpServer in a streamable HTTP transport.
func NewMCPHTTPServer(mcpServer *mcpserver.MCPServer, config MCPHTTPServerConfig) *MCPHTTPServer {
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath(DefaultMCPEndpoint),
	}
	if config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}

	hc := HTTPHandlerConfig{
		MCPHandler:   mcpserver.NewStreamableHTTPServer(mcpServer, opts...),
		EndpointPath: DefaultMCPEndpoint,
		Health:       config.Health,
		Logger:       config.Logger,
	}
	if config.Context != nil {
		hc.Metrics = config.Context.Metrics()
	}

	// No WriteTimeout: SSE responses stay open for the life of a call
	httpServer := &http.Server{
		Handler:           NewHTTPHandler(hc),
		ReadHeaderTimeout: httpReadHeaderTimeout,
		IdleTimeout:       httpIdleTimeout,
	}
	if config.Context != nil {
		// Request contexts derive from the server context, so its shutdown
		// cancels in-flight tool calls.
		base := config.Context.Context()
		httpServer.BaseContext = func(net.Listener) context.Context { return base }
	}

	return &MCPHTTPServer{
		httpServer: httpServer,
		addr:       config.Addr,
		logger:     config.Logger.With("component", "mcp-http"),
	}
}

// Listen binds the transport address.
func (s *MCPHTTPServer) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind MCP HTTP server on %s: %w", s.addr, err)
	}
	return ln, nil
}

// Serve serves on ln until Shutdown is called.
func (s *MCPHTTPServer) Serve(ln net.Listener) error {
	s.logger.Info("starting MCP HTTP server", "addr", ln.Addr().String(), "endpoint", DefaultMCPEndpoint)
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *MCPHTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down MCP HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root HTTP handler.
func (s *MCPHTTPServer) Handler() http.Handler {
	return s.httpServer.Handler
}
