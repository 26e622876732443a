// Package store defines the backend-agnostic contract for task persistence.
package store

import (
	"context"
	"errors"
	"time"

	"taskdeck/internal/task"
)

// ErrNotFound signals that no task with the given id exists for the owner.
// Toggle and Update return it; callers treat it as a result, not a failure.
var ErrNotFound = errors.New("task not found")

// Draft carries the caller-supplied fields for a new task.
// Category, Priority and Status are resolved through the task package
// fallbacks before storage, so any value is safe to pass.
type Draft struct {
	Title    string
	DueDate  *time.Time
	Category string
	Priority string
	Status   string
}

// Patch is a partial update. Nil fields are left unchanged.
// ClearDueDate removes the due date; it wins over DueDate if both are set.
type Patch struct {
	Title        *string
	Done         *bool
	Status       *string
	Category     *string
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
}

// Store is the CRUD contract both backends implement.
// All methods scope access to the given owner id; tasks belonging to other
// owners are invisible. List results and insertion order are
// most-recent-first (createdAt descending).
type Store interface {
	// List returns the owner's tasks, most recent first.
	List(ctx context.Context, ownerID string) ([]task.Task, error)

	// Add validates the draft title, assigns an id and creation time, and
	// persists the new task at the head of the owner's sequence.
	Add(ctx context.Context, ownerID string, draft Draft) (task.Task, error)

	// Toggle flips the Done flag of the matching task.
	// Returns ErrNotFound if no task with that id exists for the owner.
	Toggle(ctx context.Context, ownerID, id string) (task.Task, error)

	// Update merges the patch onto the matching task.
	// Returns ErrNotFound if no task with that id exists for the owner.
	Update(ctx context.Context, ownerID, id string, patch Patch) (task.Task, error)

	// Remove deletes the matching task. Deleting a task that does not
	// exist is not an error.
	Remove(ctx context.Context, ownerID, id string) error

	// Clear deletes all of the owner's tasks.
	Clear(ctx context.Context, ownerID string) error

	// Stats returns derived counts over the owner's tasks.
	Stats(ctx context.Context, ownerID string) (task.Stats, error)
}

// Normalize trims the patched title and rejects the patch if the title
// would become empty. Returns the patch with the trimmed title.
func (p Patch) Normalize() (Patch, error) {
	if p.Title != nil {
		trimmed, err := task.ValidateTitle(*p.Title)
		if err != nil {
			return p, err
		}
		p.Title = &trimmed
	}
	return p, nil
}

// Apply merges the patch onto t and returns the result. Enumerated fields go
// through the resolver fallbacks so a patched task never carries an
// unrecognized value.
func (p Patch) Apply(t task.Task) task.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	if p.Status != nil {
		t.Status = task.ResolveStatus(*p.Status)
	}
	if p.Category != nil {
		t.Category = task.ResolveCategory(*p.Category)
	}
	if p.Priority != nil {
		t.Priority = task.ResolvePriority(*p.Priority)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	return t
}
