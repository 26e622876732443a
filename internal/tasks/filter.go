package tasks

import (
	"sort"
	"strings"

	"taskdeck/internal/task"
)

// SortBy selects the ordering of Filter results.
type SortBy string

const (
	// SortCreated orders by creation time, newest first (the default).
	SortCreated SortBy = "created"

	// SortTitle orders by title, ascending lexicographic.
	SortTitle SortBy = "title"

	// SortPriority orders by priority rank, highest first.
	SortPriority SortBy = "priority"

	// SortDue orders by due date ascending; tasks with no due date sort last.
	SortDue SortBy = "due"
)

// FilterOptions selects and orders a view of the cached list. Zero-value
// fields are ignored; the equality filters are AND-combined.
type FilterOptions struct {
	Done     *bool
	Category string
	Priority string
	Status   string
	Search   string
	SortBy   SortBy
}

// Filter returns a new, filtered and sorted sequence over the cached list.
// The cache itself is never mutated or exposed.
func (s *Service) Filter(opts FilterOptions) []task.Task {
	snapshot := s.CurrentSnapshot()

	result := make([]task.Task, 0, len(snapshot))
	search := strings.ToLower(opts.Search)
	for _, t := range snapshot {
		if opts.Done != nil && t.Done != *opts.Done {
			continue
		}
		if opts.Category != "" && string(t.Category) != opts.Category {
			continue
		}
		if opts.Priority != "" && string(t.Priority) != opts.Priority {
			continue
		}
		if opts.Status != "" && string(t.Status) != opts.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		result = append(result, t)
	}

	sortTasks(result, opts.SortBy)
	return result
}

// sortTasks orders tasks by the given key. An empty key keeps the incoming
// order, which for the cache is already newest-first.
func sortTasks(tasks []task.Task, by SortBy) {
	switch by {
	case SortCreated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortDue:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	}
}
