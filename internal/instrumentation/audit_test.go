package instrumentation

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

const testToolWeather = "get_weather"

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation(testToolWeather)

	if ti.Tool != testToolWeather {
		t.Errorf("Tool = %q, want %q", ti.Tool, testToolWeather)
	}
	if _, err := uuid.Parse(ti.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", ti.ID, err)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	ti.CompleteSuccess()
	if !ti.Success || ti.Status() != StatusSuccess {
		t.Error("expected successful invocation")
	}
	if ti.Duration < 0 {
		t.Error("Duration should not be negative")
	}
}

func TestToolInvocation_UniqueIDs(t *testing.T) {
	a, b := NewToolInvocation("x"), NewToolInvocation("x")
	if a.ID == b.ID {
		t.Error("expected distinct invocation IDs")
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("add_task").CompleteWithError(errors.New("disk full"))

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusError)
	}
	if ti.Error != "disk full" {
		t.Errorf("Error = %q, want %q", ti.Error, "disk full")
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation(testToolWeather).
		WithSession("session-1").
		WithArguments(map[string]any{"latitude": 39.7, "longitude": -97.1}).
		CompleteSuccess()
	ti.TraceID = "abc123"

	keys := func(attrs []slog.Attr) map[string]slog.Attr {
		m := make(map[string]slog.Attr)
		for _, a := range attrs {
			m[a.Key] = a
		}
		return m
	}

	withoutArgs := keys(ti.LogAttrs(false))
	for _, key := range []string{"invocation_id", "tool", "duration", "success", "session_id", "trace_id"} {
		if _, ok := withoutArgs[key]; !ok {
			t.Errorf("missing attribute %s", key)
		}
	}
	if _, ok := withoutArgs["arguments"]; ok {
		t.Error("arguments must be omitted unless requested")
	}
	if _, ok := withoutArgs["error"]; ok {
		t.Error("error must be omitted on success")
	}

	withArgs := keys(ti.LogAttrs(true))
	if _, ok := withArgs["arguments"]; !ok {
		t.Error("expected arguments attribute")
	}
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	audit := NewAuditLogger(logger)

	audit.LogToolInvocation(NewToolInvocation(testToolWeather).CompleteSuccess())
	audit.LogToolInvocation(NewToolInvocation("add_task").CompleteWithError(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}

	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}

	if first["msg"] != "tool_executed" || first["level"] != "INFO" {
		t.Errorf("unexpected success record: %v", first)
	}
	if first["component"] != "audit" {
		t.Errorf("component = %v, want audit", first["component"])
	}
	if second["msg"] != "tool_failed" || second["level"] != "WARN" {
		t.Errorf("unexpected failure record: %v", second)
	}
	if second["error"] != "boom" {
		t.Errorf("error = %v, want boom", second["error"])
	}
}

func TestAuditLogger_IncludeArguments(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	audit := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true, IncludeArguments: true})

	audit.LogToolInvocation(NewToolInvocation("add_task").
		WithArguments(map[string]any{"name": "Buy milk"}).
		CompleteSuccess())

	if !strings.Contains(buf.String(), "Buy milk") {
		t.Errorf("expected arguments in audit record, got %q", buf.String())
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditLoggerWithConfig(slog.New(slog.NewTextHandler(&buf, nil)), AuditLoggingConfig{Enabled: false})

	audit.LogToolInvocation(NewToolInvocation(testToolWeather).CompleteSuccess())
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	audit.SetEnabled(true)
	audit.LogToolInvocation(NewToolInvocation(testToolWeather).CompleteSuccess())
	if buf.Len() == 0 {
		t.Error("expected output after enabling")
	}

	var nilLogger *AuditLogger
	nilLogger.LogToolInvocation(NewToolInvocation(testToolWeather))
}
