// Package tasks provides the task service: one uniform surface over the
// storage backends, an in-memory cached list, derived statistics and
// filtering, and change notification.
package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"taskdeck/internal/session"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

// Subscriber receives the current snapshot after every cache change.
type Subscriber func([]task.Task)

// Service orchestrates task operations for one session.
//
// It owns the in-memory cached list for the lifetime of the session; the
// list is most-recent-first and rebuilt wholesale by Load. The injected
// store owns the durable copy; the service never persists directly. Mutating
// operations touch the cache only after the store confirms, so a failed
// operation leaves the cache exactly as it was.
type Service struct {
	store  store.Store
	sess   *session.Session
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	cached []task.Task
	subs   []Subscriber
}

// New creates a service bound to one session and its storage backend.
func New(st store.Store, sess *session.Session, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		sess:   sess,
		logger: logger,
		now:    time.Now,
	}
}

// owner resolves the current owner id, failing fast when the session is
// unauthenticated.
func (s *Service) owner() (string, error) {
	ownerID, ok := s.sess.OwnerID()
	if !ok {
		return "", &NotAuthenticatedError{}
	}
	if _, ok := s.sess.Mode(); !ok {
		return "", &NotAuthenticatedError{}
	}
	return ownerID, nil
}

// Load replaces the cached list wholesale with the store's current contents
// and notifies subscribers. On store failure the cache is emptied (never
// left stale), subscribers are still notified, and a PersistenceError is
// returned.
func (s *Service) Load(ctx context.Context) error {
	ownerID, err := s.owner()
	if err != nil {
		return err
	}

	listed, err := s.store.List(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to load tasks", "owner", ownerID, "error", err)
		s.replaceCache(nil)
		return &PersistenceError{Op: "load", Err: err}
	}

	s.replaceCache(listed)
	return nil
}

// Create validates the draft, delegates to the store, and inserts the
// returned record at the head of the cache. A validation failure is
// returned before any store call.
func (s *Service) Create(ctx context.Context, draft store.Draft) (task.Task, error) {
	ownerID, err := s.owner()
	if err != nil {
		return task.Task{}, err
	}

	if _, err := task.ValidateTitle(draft.Title); err != nil {
		return task.Task{}, err
	}

	created, err := s.store.Add(ctx, ownerID, draft)
	if err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			return task.Task{}, err
		}
		s.logger.Error("failed to create task", "owner", ownerID, "error", err)
		return task.Task{}, &PersistenceError{Op: "create", Err: err}
	}

	s.mu.Lock()
	s.cached = append([]task.Task{created}, s.cached...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)

	return created, nil
}

// ToggleCompletion flips the Done flag of the matching task. The cached
// entry is replaced in place, preserving its position. A missing id is
// reported as store.ErrNotFound with no cache change.
func (s *Service) ToggleCompletion(ctx context.Context, id string) (task.Task, error) {
	ownerID, err := s.owner()
	if err != nil {
		return task.Task{}, err
	}

	updated, err := s.store.Toggle(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return task.Task{}, err
		}
		s.logger.Error("failed to toggle task", "owner", ownerID, "id", id, "error", err)
		return task.Task{}, &PersistenceError{Op: "toggle", Err: err}
	}

	s.replaceEntry(updated)
	return updated, nil
}

// ApplyUpdate merges the patch onto the matching task via the store and
// replaces the cached entry in place.
func (s *Service) ApplyUpdate(ctx context.Context, id string, patch store.Patch) (task.Task, error) {
	ownerID, err := s.owner()
	if err != nil {
		return task.Task{}, err
	}

	patch, err = patch.Normalize()
	if err != nil {
		return task.Task{}, err
	}

	updated, err := s.store.Update(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return task.Task{}, err
		}
		s.logger.Error("failed to update task", "owner", ownerID, "id", id, "error", err)
		return task.Task{}, &PersistenceError{Op: "update", Err: err}
	}

	s.replaceEntry(updated)
	return updated, nil
}

// Delete removes the matching task and filters it out of the cache.
// Deleting an id that no longer exists still succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	ownerID, err := s.owner()
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, ownerID, id); err != nil {
		s.logger.Error("failed to delete task", "owner", ownerID, "id", id, "error", err)
		return &PersistenceError{Op: "delete", Err: err}
	}

	s.mu.Lock()
	kept := s.cached[:0]
	for _, t := range s.cached {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.cached = kept
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)

	return nil
}

// DeleteAll removes every task for the owner. The cache is emptied and
// subscribers notified even when some deletes fail; the failures are
// surfaced as one PersistenceError and a reload reconciles any stragglers.
func (s *Service) DeleteAll(ctx context.Context) error {
	ownerID, err := s.owner()
	if err != nil {
		return err
	}

	clearErr := s.store.Clear(ctx, ownerID)
	s.replaceCache(nil)

	if clearErr != nil {
		s.logger.Error("failed to clear tasks", "owner", ownerID, "error", clearErr)
		return &PersistenceError{Op: "clear", Err: clearErr}
	}
	return nil
}

// CurrentSnapshot returns a defensive copy of the cached list, most recent
// first. Safe to call at any time; never touches the store.
func (s *Service) CurrentSnapshot() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ComputeStats derives counts over the cached list.
func (s *Service) ComputeStats() task.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.ComputeStats(s.cached, s.now())
}

// Subscribe registers a callback invoked with the current snapshot on every
// cache change. If the cache is non-empty the callback fires once
// immediately with the current state.
func (s *Service) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	var snapshot []task.Task
	if len(s.cached) > 0 {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if snapshot != nil {
		fn(snapshot)
	}
}

// replaceCache swaps the cached list and notifies subscribers.
func (s *Service) replaceCache(tasks []task.Task) {
	s.mu.Lock()
	s.cached = append([]task.Task(nil), tasks...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// replaceEntry swaps the cached entry with the same id, preserving its
// position, and notifies subscribers.
func (s *Service) replaceEntry(updated task.Task) {
	s.mu.Lock()
	for i := range s.cached {
		if s.cached[i].ID == updated.ID {
			s.cached[i] = updated
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// snapshotLocked copies the cache. Callers hold s.mu.
func (s *Service) snapshotLocked() []task.Task {
	return append([]task.Task(nil), s.cached...)
}

// notify invokes subscribers outside the cache lock so a callback may call
// back into the service.
func (s *Service) notify(snapshot []task.Task) {
	s.mu.Lock()
	subs := append([]Subscriber(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}
