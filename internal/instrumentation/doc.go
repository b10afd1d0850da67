// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for the weather MCP server.
//
// # Metrics
//
// HTTP transport:
//   - http_requests_total: requests by method, path and status
//   - http_request_duration_seconds: request duration histogram
//
// Weather API:
//   - weather_api_requests_total: requests by endpoint (points, forecast) and status
//   - weather_api_request_duration_seconds: request duration histogram
//
// Task store:
//   - task_store_operations_total: operations by operation (add, search) and status
//   - task_store_operation_duration_seconds: operation duration histogram
//
// MCP tools:
//   - mcp_tool_invocations_total: invocations by tool and status
//   - mcp_tool_duration_seconds: tool execution duration histogram
//
// # Tracing
//
// Spans are created for tool invocations (tool.<name>), weather API lookups
// (weather.forecast) and task store operations (taskstore.add, taskstore.search).
// Outbound HTTP requests get child spans from otelhttp.
//
// # Configuration
//
// DefaultConfig reads:
//   - INSTRUMENTATION_ENABLED (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//   - OTEL_TRACES_SAMPLER_ARG (default: 0.1)
//   - OTEL_SERVICE_NAME (default: weather-mcp)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_ARGUMENTS
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "get_weather", instrumentation.StatusSuccess, time.Since(start))
package instrumentation
