package instrumentation

import "testing"

func TestPathLabel(t *testing.T) {
	known := []string{"/mcp", "/healthz", "/readyz"}

	tests := []struct {
		path     string
		expected string
	}{
		{"/mcp", "/mcp"},
		{"/healthz", "/healthz"},
		{"/readyz", "/readyz"},
		{"/mcp/", PathOther},
		{"/wp-admin", PathOther},
		{"", PathOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := PathLabel(tt.path, known...); got != tt.expected {
				t.Errorf("PathLabel(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
