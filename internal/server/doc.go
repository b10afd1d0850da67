// Package server provides the shared resources and HTTP plumbing of the
// weather MCP server.
//
// # Key Components
//
// ServerContext owns the weather API client, the task store, the metrics
// recorder and the audit logger shared by every tool handler. Shutdown
// cancels its context and releases the weather client's idle connections.
//
// MCPHTTPServer serves the tools over the mcp-go streamable HTTP transport.
// NewHTTPHandler builds the chi router for the streamable HTTP transport:
// the MCP endpoint, health probes, request logging and request metrics.
//
// MetricsServer serves Prometheus metrics on a dedicated address, away
// from the MCP transport.
//
// HealthChecker implements /healthz (liveness), /readyz (readiness,
// including the task file directory) and /healthz/detailed.
package server
