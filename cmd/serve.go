package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/ghelid/weather-mcp/internal/instrumentation"
	"github.com/ghelid/weather-mcp/internal/logging"
	"github.com/ghelid/weather-mcp/internal/server"
	"github.com/ghelid/weather-mcp/internal/taskstore"
	"github.com/ghelid/weather-mcp/internal/tools/task_tools"
	"github.com/ghelid/weather-mcp/internal/tools/weather_tools"
	"github.com/ghelid/weather-mcp/internal/weather"
)

const (
	// serverName is the implementation name reported to MCP clients.
	serverName = "weather-server"

	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"

	shutdownTimeout = 10 * time.Second
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// serveOptions holds the resolved serve settings.
type serveOptions struct {
	debug            bool
	transport        string
	httpAddr         string
	disableStreaming bool
	tasksFile        string
	weatherBaseURL   string
	userAgent        string
	httpTimeout      time.Duration
	metrics          MetricsConfig
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server exposing get_weather, add_task and search_tasks.

By default the server speaks MCP over stdio: stdout carries protocol frames
only and all logs go to stderr. Use --transport streamable-http to serve the
same tools over HTTP at /mcp, with /healthz and /readyz probes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadServeEnvVars(cmd, &opts); err != nil {
				return err
			}

			// Setup graceful shutdown
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runServe(ctx, opts, os.Stdin, os.Stdout, os.Stderr)
		},
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", server.DefaultHTTPAddr, "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.disableStreaming, "disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients)")

	cmd.Flags().StringVar(&opts.tasksFile, "tasks-file", taskstore.DefaultPath, "Path of the JSON file tasks are saved to. Can also use TASKS_FILE env var.")
	cmd.Flags().StringVar(&opts.weatherBaseURL, "weather-base-url", weather.DefaultBaseURL, "Base URL of the National Weather Service API. Can also use WEATHER_API_BASE_URL env var.")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", weather.DefaultUserAgent, "User-Agent sent to the weather API. Can also use WEATHER_USER_AGENT env var.")
	cmd.Flags().DurationVar(&opts.httpTimeout, "http-timeout", weather.DefaultTimeout, "Timeout for each weather API request. Can also use WEATHER_HTTP_TIMEOUT env var.")

	cmd.Flags().BoolVar(&opts.metrics.Enabled, "metrics-enabled", false, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadServeEnvVars fills options whose flags were not set explicitly from
// the environment.
func loadServeEnvVars(cmd *cobra.Command, opts *serveOptions) error {
	if !cmd.Flags().Changed("tasks-file") {
		if path := os.Getenv("TASKS_FILE"); path != "" {
			opts.tasksFile = path
		}
	}

	if !cmd.Flags().Changed("weather-base-url") {
		if baseURL := os.Getenv("WEATHER_API_BASE_URL"); baseURL != "" {
			opts.weatherBaseURL = baseURL
		}
	}

	if !cmd.Flags().Changed("user-agent") {
		if userAgent := os.Getenv("WEATHER_USER_AGENT"); userAgent != "" {
			opts.userAgent = userAgent
		}
	}

	if !cmd.Flags().Changed("http-timeout") {
		if timeoutStr := os.Getenv("WEATHER_HTTP_TIMEOUT"); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				return fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT %q: %w", timeoutStr, err)
			}
			opts.httpTimeout = timeout
		}
	}

	if !cmd.Flags().Changed("metrics-enabled") {
		if enabledStr := os.Getenv("METRICS_ENABLED"); enabledStr != "" {
			enabled, err := strconv.ParseBool(enabledStr)
			if err != nil {
				return fmt.Errorf("invalid METRICS_ENABLED %q: %w", enabledStr, err)
			}
			opts.metrics.Enabled = enabled
		}
	}

	if !cmd.Flags().Changed("metrics-addr") {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			opts.metrics.Addr = addr
		}
	}

	return nil
}

func runServe(ctx context.Context, opts serveOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	if opts.transport != transportStdio && opts.transport != transportStreamableHTTP {
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}

	logger := logging.New(stderr, opts.debug)
	slog.SetDefault(logger)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	serverContext, err := server.NewServerContext(ctx, server.Config{
		Weather: weather.Config{
			BaseURL:   opts.weatherBaseURL,
			UserAgent: opts.userAgent,
			Timeout:   opts.httpTimeout,
		},
		TasksFile: opts.tasksFile,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", logging.Err(err))
		}
	}()

	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
	}
	serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging))

	// Start metrics server if enabled
	if opts.metrics.Enabled {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metrics.Addr,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		ln, err := metricsServer.Listen()
		if err != nil {
			return err
		}
		go func() {
			if err := metricsServer.Serve(ln); err != nil {
				logger.Error("metrics server stopped", logging.Err(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	mcpSrv, err := newMCPServer(serverContext)
	if err != nil {
		return err
	}

	logger.Info("starting weather MCP server",
		"transport", opts.transport,
		"version", version,
		logging.Path(serverContext.Tasks().Path()),
		logging.URL(serverContext.Weather().BaseURL()))

	// Start the appropriate server based on transport type
	switch opts.transport {
	case transportStreamableHTTP:
		return runStreamableHTTPServer(serverContext, mcpSrv, opts, logger)
	default:
		return runStdioServer(serverContext, mcpSrv, stdin, stdout, logger)
	}
}

// newMCPServer creates the MCP server and registers every tool.
// The tool set is fixed once this returns.
func newMCPServer(sc *server.ServerContext) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	if err := registerAllTools(mcpSrv, sc); err != nil {
		return nil, err
	}
	return mcpSrv, nil
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Weather",
			register: func() error {
				return weather_tools.RegisterWeatherTools(mcpSrv, ctx)
			},
		},
		{
			name: "Task",
			register: func() error {
				return task_tools.RegisterTaskTools(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}

func runStdioServer(sc *server.ServerContext, mcpSrv *mcpserver.MCPServer, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	stdioSrv := mcpserver.NewStdioServer(mcpSrv)
	stdioSrv.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	logger.Info("weather MCP server is running and listening on stdio")

	err := stdioSrv.Listen(sc.Context(), stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	logger.Info("weather MCP server stopped")
	return nil
}

func runStreamableHTTPServer(sc *server.ServerContext, mcpSrv *mcpserver.MCPServer, opts serveOptions, logger *slog.Logger) error {
	health := server.NewHealthChecker(sc)
	httpSrv := server.NewMCPHTTPServer(mcpSrv, server.MCPHTTPServerConfig{
		Addr:             opts.httpAddr,
		DisableStreaming: opts.disableStreaming,
		Health:           health,
		Context:          sc,
		Logger:           logger,
	})

	ln, err := httpSrv.Listen()
	if err != nil {
		return err
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-sc.Context().Done():
	}

	// Stop advertising readiness before draining connections
	health.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	logger.Info("weather MCP server stopped")
	return <-serverDone
}
