// Package localstore implements the store contract over a local bbolt file.
// It backs guest sessions: one JSON-encoded blob of tasks per owner id,
// most recent first.
//
// Storage failures never reach the caller. Reads that fail or do not parse
// degrade to an empty list; writes that fail are logged and dropped. The
// returned records always reflect the in-memory result of the operation.
package localstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

// BucketName is the bbolt bucket holding one blob per owner.
const BucketName = "tasks"

// openTimeout bounds the flock wait when another process holds the db file.
const openTimeout = 5 * time.Second

// Store is a bbolt-backed task store.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the bbolt file at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the owner's tasks, most recent first.
// Missing or unparsable blobs yield an empty list.
func (s *Store) List(ctx context.Context, ownerID string) ([]task.Task, error) {
	return s.read(ownerID), nil
}

// Add creates a task from the draft and persists it at the head of the
// owner's sequence.
func (s *Store) Add(ctx context.Context, ownerID string, draft store.Draft) (task.Task, error) {
	title, err := task.ValidateTitle(draft.Title)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Done:      false,
		Status:    task.ResolveStatus(draft.Status),
		Category:  task.ResolveCategory(draft.Category),
		Priority:  task.ResolvePriority(draft.Priority),
		CreatedAt: s.now(),
	}
	if draft.DueDate != nil {
		due := *draft.DueDate
		t.DueDate = &due
	}

	tasks := s.read(ownerID)
	s.write(ownerID, append([]task.Task{t}, tasks...))
	return t, nil
}

// Toggle flips the Done flag of the matching task in place.
func (s *Store) Toggle(ctx context.Context, ownerID, id string) (task.Task, error) {
	tasks := s.read(ownerID)
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Done = !tasks[i].Done
			s.write(ownerID, tasks)
			return tasks[i], nil
		}
	}
	return task.Task{}, store.ErrNotFound
}

// Update merges the patch onto the matching task in place.
func (s *Store) Update(ctx context.Context, ownerID, id string, patch store.Patch) (task.Task, error) {
	patch, err := patch.Normalize()
	if err != nil {
		return task.Task{}, err
	}

	tasks := s.read(ownerID)
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = patch.Apply(tasks[i])
			s.write(ownerID, tasks)
			return tasks[i], nil
		}
	}
	return task.Task{}, store.ErrNotFound
}

// Remove deletes the matching task. Removing an absent id still succeeds.
func (s *Store) Remove(ctx context.Context, ownerID, id string) error {
	tasks := s.read(ownerID)
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.write(ownerID, kept)
	return nil
}

// Clear deletes the owner's entire blob.
func (s *Store) Clear(ctx context.Context, ownerID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(ownerID))
	})
	if err != nil {
		s.logger.Error("failed to clear tasks", "owner", ownerID, "error", err)
	}
	return nil
}

// Stats returns derived counts over the owner's tasks.
func (s *Store) Stats(ctx context.Context, ownerID string) (task.Stats, error) {
	return task.ComputeStats(s.read(ownerID), s.now()), nil
}

// read loads and decodes the owner's blob. Any failure degrades to an empty
// list so a corrupt file never wedges the caller.
func (s *Store) read(ownerID string) []task.Task {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(ownerID)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to read tasks", "owner", ownerID, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("discarding unparsable task data", "owner", ownerID, "error", err)
		return nil
	}
	return tasks
}

// write encodes and stores the owner's blob. Failures are logged and dropped.
func (s *Store) write(ownerID string, tasks []task.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		s.logger.Error("failed to encode tasks", "owner", ownerID, "error", err)
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(ownerID), data)
	})
	if err != nil {
		s.logger.Error("failed to write tasks", "owner", ownerID, "error", err)
	}
}
