// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/task"
)

// DueDateLayout is how due dates render in listings.
const DueDateLayout = "2006-01-02"

// FormatTask formats one task line.
// Format: "{N:>4}  {[x]|[ ]}  {TITLE}{META}\n" where META is the non-default
// priority, category and due date, space-separated.
func FormatTask(w io.Writer, num int, t task.Task) {
	marker := "[ ]"
	if t.Done {
		marker = "[x]"
	}

	var meta []string
	if t.Priority != task.PriorityMedium {
		meta = append(meta, "!"+string(t.Priority))
	}
	if t.Category != task.CategoryOther {
		meta = append(meta, "#"+string(t.Category))
	}
	if t.Status != task.StatusPending {
		meta = append(meta, "status:"+string(t.Status))
	}
	if t.DueDate != nil {
		meta = append(meta, "due:"+t.DueDate.Local().Format(DueDateLayout))
	}

	line := normalizeTitle(t.Title)
	if len(meta) > 0 {
		line += "  " + strings.Join(meta, " ")
	}
	fmt.Fprintf(w, "%4d  %s  %s\n", num, marker, line)
}

// FormatStats formats the derived counts block.
func FormatStats(w io.Writer, s task.Stats) {
	fmt.Fprintf(w, "total      %d\n", s.Total)
	fmt.Fprintf(w, "completed  %d\n", s.Completed)
	fmt.Fprintf(w, "pending    %d\n", s.Pending)
	fmt.Fprintf(w, "overdue    %d\n", s.Overdue)
	fmt.Fprintf(w, "due today  %d\n", s.DueToday)
	fmt.Fprintf(w, "due soon   %d\n", s.DueSoon)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
