package common

import (
	"encoding/json"
	"math"
	"testing"
)

func TestGetNumberArg(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   float64
		wantOK bool
	}{
		{name: "float", args: map[string]any{"n": 39.7456}, want: 39.7456, wantOK: true},
		{name: "negative float", args: map[string]any{"n": -97.0892}, want: -97.0892, wantOK: true},
		{name: "int", args: map[string]any{"n": 40}, want: 40, wantOK: true},
		{name: "int64", args: map[string]any{"n": int64(-105)}, want: -105, wantOK: true},
		{name: "json number", args: map[string]any{"n": json.Number("12.5")}, want: 12.5, wantOK: true},
		{name: "numeric string", args: map[string]any{"n": "39.7456"}, want: 39.7456, wantOK: true},
		{name: "padded numeric string", args: map[string]any{"n": " -97.0892 "}, want: -97.0892, wantOK: true},
		{name: "missing", args: map[string]any{}, wantOK: false},
		{name: "nil map", args: nil, wantOK: false},
		{name: "null", args: map[string]any{"n": nil}, wantOK: false},
		{name: "non-numeric string", args: map[string]any{"n": "abc"}, wantOK: false},
		{name: "empty string", args: map[string]any{"n": ""}, wantOK: false},
		{name: "bool", args: map[string]any{"n": true}, wantOK: false},
		{name: "object", args: map[string]any{"n": map[string]any{"v": 1}}, wantOK: false},
		{name: "NaN string", args: map[string]any{"n": "NaN"}, wantOK: false},
		{name: "infinite string", args: map[string]any{"n": "Infinity"}, wantOK: false},
		{name: "infinite float", args: map[string]any{"n": math.Inf(1)}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetNumberArg(tt.args, "n")
			if ok != tt.wantOK {
				t.Fatalf("GetNumberArg() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("GetNumberArg() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetStringArg(t *testing.T) {
	args := map[string]any{
		"name":  "Buy milk",
		"empty": "",
		"num":   3.0,
		"null":  nil,
	}

	if got, ok := GetStringArg(args, "name"); !ok || got != "Buy milk" {
		t.Errorf("GetStringArg(name) = %q, %v", got, ok)
	}
	if got, ok := GetStringArg(args, "empty"); !ok || got != "" {
		t.Errorf("GetStringArg(empty) = %q, %v; want present empty string", got, ok)
	}
	for _, key := range []string{"num", "null", "missing"} {
		if _, ok := GetStringArg(args, key); ok {
			t.Errorf("GetStringArg(%s) reported present", key)
		}
	}

}

func TestGetOptionalStringArg(t *testing.T) {
	args := map[string]any{
		"name":   "Buy milk",
		"null":   nil,
		"num":    20251231.0,
		"bool":   true,
		"object": map[string]any{"date": "2025-12-31"},
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "name", want: "Buy milk", wantOK: true},
		{key: "missing", want: "", wantOK: true},
		{key: "null", want: "", wantOK: true},
		{key: "num", wantOK: false},
		{key: "bool", wantOK: false},
		{key: "object", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := GetOptionalStringArg(args, tt.key)
			if ok != tt.wantOK {
				t.Fatalf("GetOptionalStringArg(%s) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("GetOptionalStringArg(%s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
