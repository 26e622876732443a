package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"taskdeck/internal/task"
	"taskdeck/internal/tasks"
)

// ErrTaskRefRequired is returned when no task reference was given.
var ErrTaskRefRequired = errors.New("task reference required")

// parseTaskRef parses a 1-based task number from the positional arguments.
func parseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return num, nil
}

// resolveTask loads the current list and returns the task at the 1-based
// position num in the most-recent-first snapshot.
func resolveTask(ctx context.Context, svc *tasks.Service, num int) (task.Task, error) {
	if err := svc.Load(ctx); err != nil {
		return task.Task{}, err
	}
	snapshot := svc.CurrentSnapshot()
	if num < 1 || num > len(snapshot) {
		return task.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return snapshot[num-1], nil
}
