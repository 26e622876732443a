package firestore

import (
	"time"

	firestore "google.golang.org/api/firestore/v1"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

// encodeTask builds the document fields for a task. The id is carried by the
// document key, not a field; an absent due date is simply omitted.
func encodeTask(t task.Task) *firestore.Document {
	fields := map[string]firestore.Value{
		"ownerId":   stringValue(t.OwnerID),
		"title":     stringValue(t.Title),
		"done":      boolValue(t.Done),
		"status":    stringValue(string(t.Status)),
		"category":  stringValue(string(t.Category)),
		"priority":  stringValue(string(t.Priority)),
		"createdAt": timestampValue(t.CreatedAt),
	}
	if t.DueDate != nil {
		fields["dueDate"] = timestampValue(*t.DueDate)
	}
	return &firestore.Document{Fields: fields}
}

// decodeDocument maps a stored document back to a task. Enumerated fields go
// through the resolver fallbacks so malformed documents still yield known
// values.
func decodeDocument(doc *firestore.Document, ownerID string) task.Task {
	fields := doc.Fields
	t := task.Task{
		ID:       lastSegment(doc.Name),
		OwnerID:  ownerID,
		Title:    fields["title"].StringValue,
		Done:     fields["done"].BooleanValue,
		Status:   task.ResolveStatus(fields["status"].StringValue),
		Category: task.ResolveCategory(fields["category"].StringValue),
		Priority: task.ResolvePriority(fields["priority"].StringValue),
	}
	if owner := fields["ownerId"].StringValue; owner != "" {
		t.OwnerID = owner
	}
	if ts := fields["createdAt"].TimestampValue; ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			t.CreatedAt = parsed
		}
	}
	if ts := fields["dueDate"].TimestampValue; ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			t.DueDate = &parsed
		}
	}
	return t
}

// encodePatch maps a patch to document fields plus the update-mask paths.
// A cleared due date is expressed as a masked path with no field value, which
// Firestore interprets as a delete of that field.
func encodePatch(p store.Patch) (map[string]firestore.Value, []string) {
	fields := make(map[string]firestore.Value)
	var paths []string

	if p.Title != nil {
		fields["title"] = stringValue(*p.Title)
		paths = append(paths, "title")
	}
	if p.Done != nil {
		fields["done"] = boolValue(*p.Done)
		paths = append(paths, "done")
	}
	if p.Status != nil {
		fields["status"] = stringValue(string(task.ResolveStatus(*p.Status)))
		paths = append(paths, "status")
	}
	if p.Category != nil {
		fields["category"] = stringValue(string(task.ResolveCategory(*p.Category)))
		paths = append(paths, "category")
	}
	if p.Priority != nil {
		fields["priority"] = stringValue(string(task.ResolvePriority(*p.Priority)))
		paths = append(paths, "priority")
	}
	if p.ClearDueDate {
		paths = append(paths, "dueDate")
	} else if p.DueDate != nil {
		fields["dueDate"] = timestampValue(*p.DueDate)
		paths = append(paths, "dueDate")
	}

	return fields, paths
}

func stringValue(s string) firestore.Value {
	// Force-send so empty strings survive the API's omitempty encoding.
	return firestore.Value{StringValue: s, ForceSendFields: []string{"StringValue"}}
}

func boolValue(b bool) firestore.Value {
	// Force-send so false survives the API's omitempty encoding.
	return firestore.Value{BooleanValue: b, ForceSendFields: []string{"BooleanValue"}}
}

func timestampValue(t time.Time) firestore.Value {
	return firestore.Value{TimestampValue: t.UTC().Format(time.RFC3339Nano)}
}
