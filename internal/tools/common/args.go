package common

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// GetNumberArg returns the named argument as a finite float64.
// JSON numbers and strings holding a decimal number are accepted; anything
// else, including NaN and infinities, reports false.
func GetNumberArg(args map[string]any, key string) (float64, bool) {
	var (
		f   float64
		err error
	)

	switch v := args[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// GetStringArg returns the named argument if it is present and a string.
// An empty string is returned as present.
func GetStringArg(args map[string]any, key string) (string, bool) {
	s, ok := args[key].(string)
	return s, ok
}

// GetOptionalStringArg returns the named argument, or "" when it is absent
// or null. ok is false only when the argument is present with another type.
func GetOptionalStringArg(args map[string]any, key string) (value string, ok bool) {
	switch v := args[key].(type) {
	case nil:
		return "", true
	case string:
		return v, true
	default:
		return "", false
	}
}
