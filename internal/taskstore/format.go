package taskstore

import (
	"fmt"
	"strings"
)

const separatorWidth = 60

// InvalidDueDateMessage is shown to callers for any malformed due date.
const InvalidDueDateMessage = "Error: Invalid date format. Please use YYYY-MM-DD format (e.g., 2025-12-31)"

// FormatAdded renders the confirmation for a completed Add.
func FormatAdded(r *AddResult) string {
	var b strings.Builder
	b.WriteString("Task added successfully!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", r.Task.Name)
	fmt.Fprintf(&b, "Description: %s\n", r.Task.Description)
	fmt.Fprintf(&b, "Due Date: %s\n", r.Task.DueDate)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total tasks: %d\n", r.Total)
	fmt.Fprintf(&b, "Saved to: %s\n", r.Path)
	return b.String()
}

// FormatSearch renders a SearchResult. Zero matches produce a "no tasks"
// message that distinguishes a missing file, a blank file, an empty list
// and an unmatched filter.
func FormatSearch(r *SearchResult) string {
	switch r.State {
	case StateMissing:
		return "No tasks found. The tasks file doesn't exist yet."
	case StateEmpty:
		return "No tasks found. The tasks file is empty."
	}

	if len(r.Tasks) == 0 {
		if r.DueDate != "" {
			return "No tasks found with due date: " + r.DueDate
		}
		return "No tasks found."
	}

	var b strings.Builder
	if r.DueDate != "" {
		fmt.Fprintf(&b, "Tasks with due date: %s\n", r.DueDate)
	} else {
		b.WriteString("All Tasks\n")
	}
	b.WriteString(strings.Repeat("=", separatorWidth))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total tasks found: %d\n\n", len(r.Tasks))

	for i, t := range r.Tasks {
		fmt.Fprintf(&b, "Task %d:\n", i+1)
		fmt.Fprintf(&b, "  Name: %s\n", t.Name)
		fmt.Fprintf(&b, "  Description: %s\n", t.Description)
		fmt.Fprintf(&b, "  Due Date: %s\n", t.DueDate)
		b.WriteString("\n")
	}
	return b.String()
}
