package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initializeRequest = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0.0.0"}}}`

func TestMCPHTTPServer_ServeAndShutdown(t *testing.T) {
	sc := newTestServerContext(t)
	mcpSrv := mcpserver.NewMCPServer("weather-server", "1.0.0", mcpserver.WithToolCapabilities(true))

	srv := NewMCPHTTPServer(mcpSrv, MCPHTTPServerConfig{
		Addr:             "127.0.0.1:0",
		DisableStreaming: true,
		Health:           NewHealthChecker(sc),
		Context:          sc,
	})

	ln, err := srv.Listen()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	base := "http://" + ln.Addr().String()

	req, err := http.NewRequest(http.MethodPost, base+DefaultMCPEndpoint, strings.NewReader(initializeRequest))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"weather-server"`)

	resp, err = http.Get(base + "/readyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-done)
}

func TestMCPHTTPServer_ListenConflict(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("weather-server", "1.0.0")

	first := NewMCPHTTPServer(mcpSrv, MCPHTTPServerConfig{Addr: "127.0.0.1:0"})
	ln, err := first.Listen()
	require.NoError(t, err)
	defer ln.Close()

	second := NewMCPHTTPServer(mcpSrv, MCPHTTPServerConfig{Addr: ln.Addr().String()})
	_, err = second.Listen()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind MCP HTTP server")
}
