// Package task defines the task entity and its validation rules.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Task represents a single to-do item.
//
// Done and Status are independent fields: toggling Done does not move Status
// to "completed" and vice versa. Both are preserved as stored.
type Task struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Title     string     `json:"title"`
	Done      bool       `json:"done"`
	Status    Status     `json:"status"`
	Category  Category   `json:"category"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ValidationError reports a rejected task field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateTitle trims the title and rejects it if nothing remains.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Message: "must not be empty"}
	}
	return trimmed, nil
}
