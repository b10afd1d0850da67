package taskstore

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for due dates (ISO 8601).
const DateLayout = "2006-01-02"

// ErrInvalidDueDate is returned when a due date is not a valid YYYY-MM-DD date.
var ErrInvalidDueDate = errors.New("invalid due date")

// Task is one persisted task record.
type Task struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

// State describes what the storage file held when it was read.
type State int

const (
	// StateMissing means the storage file does not exist yet.
	StateMissing State = iota
	// StateEmpty means the file exists but is blank.
	StateEmpty
	// StateReady means the file held a JSON array (possibly empty).
	StateReady
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AddResult describes a completed Add.
type AddResult struct {
	Task  Task
	Total int
	Path  string
}

// SearchResult holds the tasks matching a Search.
// DueDate is empty when no filter was applied.
type SearchResult struct {
	DueDate string
	State   State
	Tasks   []Task
}

// ValidateDueDate reports whether date is a valid calendar date in
// YYYY-MM-DD form. The returned error wraps ErrInvalidDueDate.
func ValidateDueDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidDueDate, date, err)
	}
	return nil
}
