package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/ghelid/weather-mcp/internal/instrumentation"
	"github.com/ghelid/weather-mcp/internal/logging"
	"github.com/ghelid/weather-mcp/internal/taskstore"
	"github.com/ghelid/weather-mcp/internal/weather"
)

// Config holds the settings for the shared server resources.
type Config struct {
	Weather   weather.Config
	TasksFile string
}

// ServerContext holds the resources shared by all tool handlers
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	weather     *weather.Client
	tasks       *taskstore.Store
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext validates cfg and creates the weather client and task store.
// A nil logger discards output.
func NewServerContext(ctx context.Context, cfg Config, logger *slog.Logger) (*ServerContext, error) {
	if logger == nil {
		logger = logging.Discard().Logger()
	}

	if cfg.Weather.BaseURL != "" {
		u, err := url.Parse(cfg.Weather.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid weather API base URL: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid weather API base URL %q: must be an absolute http(s) URL", cfg.Weather.BaseURL)
		}
	}
	if cfg.Weather.Timeout < 0 {
		return nil, fmt.Errorf("weather HTTP timeout must not be negative, got %s", cfg.Weather.Timeout)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		weather: weather.NewClient(cfg.Weather, logging.NewSlogAdapter(logging.WithComponent(logger, "weather"))),
		tasks:   taskstore.New(cfg.TasksFile, logging.NewSlogAdapter(logging.WithComponent(logger, "taskstore"))),
		logger:  logger,
	}, nil
}

// Context returns the server context. It is cancelled by Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Weather returns the shared weather API client.
func (sc *ServerContext) Weather() *weather.Client {
	return sc.weather
}

// Tasks returns the task store.
func (sc *ServerContext) Tasks() *taskstore.Store {
	return sc.tasks
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// SetMetrics sets the metrics recorder and wires it into the weather client
// and the task store.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.metrics = m
	if m != nil {
		sc.weather.SetMetrics(m)
		sc.tasks.SetMetrics(m)
	}
}

// Metrics returns the metrics recorder, or nil if none is configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if none is configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context and releases the weather client's
// idle connections. Calling it more than once is a no-op.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	sc.weather.Close()
	sc.logger.Debug("server context shut down")
	return nil
}
