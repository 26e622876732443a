package task

import "time"

// DueSoonWindow is how far ahead of now a due date counts as "due soon".
// The buckets in Stats are disjoint: a task is due soon only if it is not
// overdue and not due today.
const DueSoonWindow = 72 * time.Hour

// Stats holds derived counts over a set of tasks.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	DueToday  int `json:"dueToday"`
	DueSoon   int `json:"dueSoon"`
}

// ComputeStats derives counts from tasks relative to now.
// Completed counts tasks with Done set; Pending is everything else. The due
// buckets only count tasks that are not done.
func ComputeStats(tasks []Task, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Done {
			s.Completed++
			continue
		}
		s.Pending++
		if t.DueDate == nil {
			continue
		}
		due := *t.DueDate
		switch {
		case due.Before(now):
			s.Overdue++
		case sameDay(due, now):
			s.DueToday++
		case due.Sub(now) <= DueSoonWindow:
			s.DueSoon++
		}
	}
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
