package logging

import (
	"log/slog"
	"strconv"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyComponent = "component"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyTool      = "tool"
	KeyLatitude  = "latitude"
	KeyLongitude = "longitude"
	KeyURL       = "url"
	KeyDueDate   = "due_date"
	KeyTaskCount = "task_count"
	KeyPath      = "path"
)

// Status values for consistent logging.
// Duplicated from the instrumentation package, which imports this one.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithComponent returns a logger with the component attribute set.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String(KeyComponent, component))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// A nil error yields an empty group, which slog omits from output.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// Coordinates returns a group attribute holding a latitude/longitude pair.
func Coordinates(lat, lon float64) slog.Attr {
	return slog.Group("coordinates",
		slog.String(KeyLatitude, strconv.FormatFloat(lat, 'f', -1, 64)),
		slog.String(KeyLongitude, strconv.FormatFloat(lon, 'f', -1, 64)),
	)
}

// URL returns a slog attribute for an outbound request URL.
func URL(u string) slog.Attr {
	return slog.String(KeyURL, u)
}

// DueDate returns a slog attribute for a task due date filter or value.
// An empty date is logged as "<none>".
func DueDate(date string) slog.Attr {
	if date == "" {
		date = "<none>"
	}
	return slog.String(KeyDueDate, date)
}

// TaskCount returns a slog attribute for a number of tasks.
func TaskCount(n int) slog.Attr {
	return slog.Int(KeyTaskCount, n)
}

// Path returns a slog attribute for a filesystem path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}
