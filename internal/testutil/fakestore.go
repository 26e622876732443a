// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

// FakeStore is an in-memory implementation of store.Store for testing.
// Tasks are kept most-recent-first per owner, matching the real backends.
type FakeStore struct {
	mu    sync.RWMutex
	tasks map[string][]task.Task // ownerID -> tasks, newest first
	seq   int
	clock time.Time

	// Error injection for testing
	ListErr   error
	AddErr    error
	ToggleErr error
	UpdateErr error
	RemoveErr error
	ClearErr  error

	// RemoveErrIDs fails Remove only for the given ids.
	RemoveErrIDs map[string]error
}

// NewFakeStore creates an empty FakeStore with a deterministic clock.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		tasks:        make(map[string][]task.Task),
		clock:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		RemoveErrIDs: make(map[string]error),
	}
}

// now returns a strictly increasing timestamp so creation order is total.
func (f *FakeStore) now() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// Seed inserts a task directly, bypassing validation.
func (f *FakeStore) Seed(t task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = f.now()
	}
	f.tasks[t.OwnerID] = append([]task.Task{t}, f.tasks[t.OwnerID]...)
}

// List implements store.Store.
func (f *FakeStore) List(ctx context.Context, ownerID string) ([]task.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]task.Task(nil), f.tasks[ownerID]...), nil
}

// Add implements store.Store.
func (f *FakeStore) Add(ctx context.Context, ownerID string, draft store.Draft) (task.Task, error) {
	if f.AddErr != nil {
		return task.Task{}, f.AddErr
	}

	title, err := task.ValidateTitle(draft.Title)
	if err != nil {
		return task.Task{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := task.Task{
		ID:        fmt.Sprintf("task-%d", f.seq),
		OwnerID:   ownerID,
		Title:     title,
		Status:    task.ResolveStatus(draft.Status),
		Category:  task.ResolveCategory(draft.Category),
		Priority:  task.ResolvePriority(draft.Priority),
		CreatedAt: f.now(),
	}
	if draft.DueDate != nil {
		due := *draft.DueDate
		t.DueDate = &due
	}

	f.tasks[ownerID] = append([]task.Task{t}, f.tasks[ownerID]...)
	return t, nil
}

// Toggle implements store.Store.
func (f *FakeStore) Toggle(ctx context.Context, ownerID, id string) (task.Task, error) {
	if f.ToggleErr != nil {
		return task.Task{}, f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := f.tasks[ownerID]
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Done = !tasks[i].Done
			return tasks[i], nil
		}
	}
	return task.Task{}, store.ErrNotFound
}

// Update implements store.Store.
func (f *FakeStore) Update(ctx context.Context, ownerID, id string, patch store.Patch) (task.Task, error) {
	if f.UpdateErr != nil {
		return task.Task{}, f.UpdateErr
	}

	patch, err := patch.Normalize()
	if err != nil {
		return task.Task{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := f.tasks[ownerID]
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = patch.Apply(tasks[i])
			return tasks[i], nil
		}
	}
	return task.Task{}, store.ErrNotFound
}

// Remove implements store.Store.
func (f *FakeStore) Remove(ctx context.Context, ownerID, id string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	if err, ok := f.RemoveErrIDs[id]; ok && err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := f.tasks[ownerID]
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks[ownerID] = kept
	return nil
}

// Clear implements store.Store.
func (f *FakeStore) Clear(ctx context.Context, ownerID string) error {
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, ownerID)
	return nil
}

// Stats implements store.Store.
func (f *FakeStore) Stats(ctx context.Context, ownerID string) (task.Stats, error) {
	listed, err := f.List(ctx, ownerID)
	if err != nil {
		return task.Stats{}, err
	}
	return task.ComputeStats(listed, f.clock), nil
}

// Count returns how many tasks the owner has stored.
func (f *FakeStore) Count(ownerID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tasks[ownerID])
}
