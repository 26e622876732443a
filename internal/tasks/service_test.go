package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/config"
	"taskdeck/internal/session"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
	"taskdeck/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func guestSession(t *testing.T) *session.Session {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir()}
	sess, err := session.EnterAsGuest(cfg)
	require.NoError(t, err)
	return sess
}

func newTestService(t *testing.T) (*Service, *testutil.FakeStore, string) {
	t.Helper()
	fake := testutil.NewFakeStore()
	sess := guestSession(t)
	ownerID, ok := sess.OwnerID()
	require.True(t, ok)
	return New(fake, sess, testLogger()), fake, ownerID
}

func TestUnauthenticatedOperationsFailFast(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.ListErr = errors.New("store must not be called")
	svc := New(fake, &session.Session{}, testLogger())
	ctx := context.Background()

	var authErr *NotAuthenticatedError

	assert.ErrorAs(t, svc.Load(ctx), &authErr)

	_, err := svc.Create(ctx, store.Draft{Title: "x"})
	assert.ErrorAs(t, err, &authErr)

	_, err = svc.ToggleCompletion(ctx, "task-1")
	assert.ErrorAs(t, err, &authErr)

	_, err = svc.ApplyUpdate(ctx, "task-1", store.Patch{})
	assert.ErrorAs(t, err, &authErr)

	assert.ErrorAs(t, svc.Delete(ctx, "task-1"), &authErr)
	assert.ErrorAs(t, svc.DeleteAll(ctx), &authErr)
}

func TestLoadPopulatesCache(t *testing.T) {
	svc, fake, ownerID := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		_, err := fake.Add(ctx, ownerID, store.Draft{Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Load(ctx))

	snapshot := svc.CurrentSnapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "second", snapshot[0].Title)
	assert.Equal(t, "first", snapshot[1].Title)
}

func TestLoadFailureEmptiesCacheAndNotifies(t *testing.T) {
	svc, fake, ownerID := newTestService(t)
	ctx := context.Background()

	_, err := fake.Add(ctx, ownerID, store.Draft{Title: "cached"})
	require.NoError(t, err)
	require.NoError(t, svc.Load(ctx))
	require.Len(t, svc.CurrentSnapshot(), 1)

	var notified [][]task.Task
	svc.Subscribe(func(ts []task.Task) { notified = append(notified, ts) })
	notified = nil // drop the subscription replay

	fake.ListErr = errors.New("boom")
	err = svc.Load(ctx)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)

	// The cache is never left stale after a failed load.
	assert.Empty(t, svc.CurrentSnapshot())
	require.Len(t, notified, 1)
	assert.Empty(t, notified[0])
}

func TestCreateInsertsAtHead(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))

	first, err := svc.Create(ctx, store.Draft{Title: "first"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, store.Draft{Title: "second"})
	require.NoError(t, err)

	snapshot := svc.CurrentSnapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, second.ID, snapshot[0].ID)
	assert.Equal(t, first.ID, snapshot[1].ID)
}

func TestCreateValidatesBeforeStoreCall(t *testing.T) {
	svc, fake, ownerID := newTestService(t)

	_, err := svc.Create(context.Background(), store.Draft{Title: "   "})

	var verr *task.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, fake.Count(ownerID))
	assert.Empty(t, svc.CurrentSnapshot())
}

func TestCreateFailureLeavesCacheUntouched(t *testing.T) {
	svc, fake, ownerID := newTestService(t)
	ctx := context.Background()

	_, err := fake.Add(ctx, ownerID, store.Draft{Title: "existing"})
	require.NoError(t, err)
	require.NoError(t, svc.Load(ctx))

	fake.AddErr = errors.New("boom")
	_, err = svc.Create(ctx, store.Draft{Title: "doomed"})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create", perr.Op)

	snapshot := svc.CurrentSnapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "existing", snapshot[0].Title)
}

func TestToggleCompletionPreservesPosition(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, store.Draft{Title: title})
		require.NoError(t, err)
	}

	middle := svc.CurrentSnapshot()[1]
	toggled, err := svc.ToggleCompletion(ctx, middle.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	snapshot := svc.CurrentSnapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, middle.ID, snapshot[1].ID)
	assert.True(t, snapshot[1].Done)
}

func TestToggleCompletionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ToggleCompletion(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyUpdate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	created, err := svc.Create(ctx, store.Draft{Title: "old title"})
	require.NoError(t, err)

	title := "new title"
	priority := "urgent"
	updated, err := svc.ApplyUpdate(ctx, created.ID, store.Patch{
		Title:    &title,
		Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, task.PriorityUrgent, updated.Priority)

	snapshot := svc.CurrentSnapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "new title", snapshot[0].Title)
}

func TestApplyUpdateRejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	created, err := svc.Create(ctx, store.Draft{Title: "keep me"})
	require.NoError(t, err)

	empty := " "
	_, err = svc.ApplyUpdate(ctx, created.ID, store.Patch{Title: &empty})

	var verr *task.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "keep me", svc.CurrentSnapshot()[0].Title)
}

func TestApplyUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	title := "anything"
	_, err := svc.ApplyUpdate(context.Background(), "nonexistent", store.Patch{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, fake, ownerID := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	created, err := svc.Create(ctx, store.Draft{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, svc.CurrentSnapshot())
	assert.Zero(t, fake.Count(ownerID))

	// Deleting an absent id still succeeds.
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestDeleteFailureLeavesCacheUntouched(t *testing.T) {
	svc, fake, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	created, err := svc.Create(ctx, store.Draft{Title: "survivor"})
	require.NoError(t, err)

	fake.RemoveErrIDs[created.ID] = errors.New("boom")
	err = svc.Delete(ctx, created.ID)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Len(t, svc.CurrentSnapshot(), 1)
}

func TestDeleteAll(t *testing.T) {
	svc, fake, ownerID := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	for _, title := range []string{"a", "b"} {
		_, err := svc.Create(ctx, store.Draft{Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteAll(ctx))
	assert.Empty(t, svc.CurrentSnapshot())
	assert.Zero(t, fake.Count(ownerID))
}

func TestDeleteAllFailureStillEmptiesCache(t *testing.T) {
	svc, fake, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	_, err := svc.Create(ctx, store.Draft{Title: "stuck"})
	require.NoError(t, err)

	var notified [][]task.Task
	svc.Subscribe(func(ts []task.Task) { notified = append(notified, ts) })
	notified = nil

	fake.ClearErr = errors.New("boom")
	err = svc.DeleteAll(ctx)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "clear", perr.Op)

	// A reload reconciles stragglers; the cache never keeps them.
	assert.Empty(t, svc.CurrentSnapshot())
	require.Len(t, notified, 1)
	assert.Empty(t, notified[0])
}

func TestSubscribeReplaysNonEmptyCache(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// Empty cache: no immediate replay.
	var calls int
	svc.Subscribe(func([]task.Task) { calls++ })
	assert.Zero(t, calls)

	require.NoError(t, svc.Load(ctx))
	_, err := svc.Create(ctx, store.Draft{Title: "hello"})
	require.NoError(t, err)

	// Non-empty cache: the new subscriber fires once immediately.
	var replayed []task.Task
	svc.Subscribe(func(ts []task.Task) { replayed = ts })
	require.Len(t, replayed, 1)
	assert.Equal(t, "hello", replayed[0].Title)
}

func TestSubscribersNotifiedOnEveryChange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var calls int
	svc.Subscribe(func([]task.Task) { calls++ })

	require.NoError(t, svc.Load(ctx)) // 1
	created, err := svc.Create(ctx, store.Draft{Title: "x"})
	require.NoError(t, err) // 2
	_, err = svc.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err) // 3
	require.NoError(t, svc.Delete(ctx, created.ID)) // 4

	assert.Equal(t, 4, calls)
}

func TestCurrentSnapshotIsDefensiveCopy(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	_, err := svc.Create(ctx, store.Draft{Title: "original"})
	require.NoError(t, err)

	snapshot := svc.CurrentSnapshot()
	snapshot[0].Title = "mutated"

	assert.Equal(t, "original", svc.CurrentSnapshot()[0].Title)
}

func TestComputeStats(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))

	past := time.Now().Add(-48 * time.Hour)
	_, err := svc.Create(ctx, store.Draft{Title: "late", DueDate: &past})
	require.NoError(t, err)
	done, err := svc.Create(ctx, store.Draft{Title: "finished"})
	require.NoError(t, err)
	_, err = svc.ToggleCompletion(ctx, done.ID)
	require.NoError(t, err)

	stats := svc.ComputeStats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Overdue)
}
