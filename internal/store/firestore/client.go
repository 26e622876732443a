// Package firestore implements the store contract over the Firestore REST
// API for federated sessions. Each owner's tasks live in a per-owner
// subcollection (owners/<ownerId>/tasks); the document key becomes the task
// id on read. Unlike the local backend, every operation propagates backend
// errors to the caller.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"

	"taskdeck/internal/config"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

const (
	// APITimeout is the timeout for each Firestore call.
	APITimeout = 10 * time.Second

	// Collection is the per-owner subcollection holding task documents.
	Collection = "tasks"

	// PageSize is the number of documents fetched per list page.
	PageSize = 300

	// OAuth scope for Firestore access.
	datastoreScope = "https://www.googleapis.com/auth/datastore"
)

// Store implements store.Store against a Firestore database.
type Store struct {
	docs    *firestore.ProjectsDatabasesDocumentsService
	project string
	now     func() time.Time
}

// New creates a Firestore-backed store using the stored OAuth credentials.
// Requires oauth_client.json and token.json to exist; the Firestore project
// id is taken from oauth_client.json.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, datastoreScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	project, err := projectID(clientJSON)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source that auto-refreshes
	tokenSource := oauthConfig.TokenSource(ctx, &token)
	httpClient := oauth2.NewClient(ctx, tokenSource)

	svc, err := firestore.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore service: %w", err)
	}

	return &Store{
		docs:    svc.Projects.Databases.Documents,
		project: project,
		now:     time.Now,
	}, nil
}

// NewWithHTTPClient creates a store with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, project string, opts ...option.ClientOption) (*Store, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{
		docs:    svc.Projects.Databases.Documents,
		project: project,
		now:     time.Now,
	}, nil
}

// ownerParent returns the resource name the owner's task documents hang off.
func (s *Store) ownerParent(ownerID string) string {
	return fmt.Sprintf("projects/%s/databases/(default)/documents/owners/%s", s.project, ownerID)
}

// docName returns the full resource name of one task document.
func (s *Store) docName(ownerID, id string) string {
	return s.ownerParent(ownerID) + "/" + Collection + "/" + id
}

// List returns the owner's tasks ordered by creation time descending.
func (s *Store) List(ctx context.Context, ownerID string) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []task.Task
	call := s.docs.List(s.ownerParent(ownerID), Collection).
		OrderBy("createdAt desc").
		PageSize(PageSize).
		Context(ctx)
	err := call.Pages(ctx, func(resp *firestore.ListDocumentsResponse) error {
		for _, doc := range resp.Documents {
			result = append(result, decodeDocument(doc, ownerID))
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// Add inserts a new task document and returns the locally-constructed task
// mirroring the insert. It does not re-fetch to confirm.
func (s *Store) Add(ctx context.Context, ownerID string, draft store.Draft) (task.Task, error) {
	title, err := task.ValidateTitle(draft.Title)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
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

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	created, err := s.docs.CreateDocument(s.ownerParent(ownerID), Collection, encodeTask(t)).
		Context(ctx).
		Do()
	if err != nil {
		return task.Task{}, wrapError(err)
	}

	// Database-assigned document key becomes the task id.
	t.ID = lastSegment(created.Name)
	return t, nil
}

// Toggle flips the Done flag of the matching task. It locates the task in a
// fresh list, patches just the done field, and returns the locally-computed
// result without re-fetching.
func (s *Store) Toggle(ctx context.Context, ownerID, id string) (task.Task, error) {
	tasks, err := s.List(ctx, ownerID)
	if err != nil {
		return task.Task{}, err
	}

	var current *task.Task
	for i := range tasks {
		if tasks[i].ID == id {
			current = &tasks[i]
			break
		}
	}
	if current == nil {
		return task.Task{}, store.ErrNotFound
	}

	current.Done = !current.Done

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	doc := &firestore.Document{
		Fields: map[string]firestore.Value{
			"done": boolValue(current.Done),
		},
	}
	_, err = s.docs.Patch(s.docName(ownerID, id), doc).
		UpdateMaskFieldPaths("done").
		CurrentDocumentExists(true).
		Context(ctx).
		Do()
	if err != nil {
		return task.Task{}, wrapError(err)
	}
	return *current, nil
}

// Update patches the given fields, then re-fetches the list and returns the
// matching record.
func (s *Store) Update(ctx context.Context, ownerID, id string, patch store.Patch) (task.Task, error) {
	patch, err := patch.Normalize()
	if err != nil {
		return task.Task{}, err
	}

	fields, paths := encodePatch(patch)
	if len(paths) > 0 {
		patchCtx, cancel := context.WithTimeout(ctx, APITimeout)
		doc := &firestore.Document{Fields: fields}
		_, err = s.docs.Patch(s.docName(ownerID, id), doc).
			UpdateMaskFieldPaths(paths...).
			CurrentDocumentExists(true).
			Context(patchCtx).
			Do()
		cancel()
		if err != nil {
			return task.Task{}, wrapError(err)
		}
	}

	tasks, err := s.List(ctx, ownerID)
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, store.ErrNotFound
}

// Remove deletes the task document by key. Deleting an absent document is
// not an error.
func (s *Store) Remove(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := s.docs.Delete(s.docName(ownerID, id)).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Clear deletes every task document for the owner, one delete per document.
// A failed delete does not abort the remaining ones; failures are joined
// into the returned error.
func (s *Store) Clear(ctx context.Context, ownerID string) error {
	tasks, err := s.List(ctx, ownerID)
	if err != nil {
		return err
	}

	var errs []error
	for _, t := range tasks {
		if err := s.Remove(ctx, ownerID, t.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", t.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Stats returns derived counts over the owner's tasks.
func (s *Store) Stats(ctx context.Context, ownerID string) (task.Stats, error) {
	tasks, err := s.List(ctx, ownerID)
	if err != nil {
		return task.Stats{}, err
	}
	return task.ComputeStats(tasks, s.now()), nil
}

// projectID extracts the Google Cloud project id from the OAuth client JSON.
func projectID(clientJSON []byte) (string, error) {
	var wrapper struct {
		Installed struct {
			ProjectID string `json:"project_id"`
		} `json:"installed"`
		Web struct {
			ProjectID string `json:"project_id"`
		} `json:"web"`
	}
	if err := json.Unmarshal(clientJSON, &wrapper); err != nil {
		return "", fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	if wrapper.Installed.ProjectID != "" {
		return wrapper.Installed.ProjectID, nil
	}
	if wrapper.Web.ProjectID != "" {
		return wrapper.Web.ProjectID, nil
	}
	return "", fmt.Errorf("oauth_client.json has no project_id")
}

// lastSegment returns the final path segment of a document resource name.
func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: taskdeck login)")
	}
	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
