package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/store"
	"taskdeck/internal/tasks"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: a partial update of any subset of
// task fields.
type EditCmd struct {
	title    string
	due      string
	clearDue bool
	category string
	priority string
	status   string
	done     string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Update fields of a task" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [--title <text>] [--due <date>] [--clear-due] [--category <id>] [--priority <id>] [--status <id>] [--done true|false] <n>"
}
func (c *EditCmd) NeedsSession() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.BoolVar(&c.clearDue, "clear-due", false, "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.done, "done", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	num, err := parseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	patch, ok := c.buildPatch(errOut)
	if !ok {
		return exitcode.UserError
	}

	t, err := resolveTask(ctx, svc, num)
	if err != nil {
		return reportError(errOut, err)
	}

	if _, err := svc.ApplyUpdate(ctx, t.ID, patch); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// buildPatch translates the flags into a store.Patch. Reports false after
// printing an error when the flags are invalid or empty.
func (c *EditCmd) buildPatch(errOut io.Writer) (store.Patch, bool) {
	var patch store.Patch
	changed := false

	if c.title != "" {
		patch.Title = &c.title
		changed = true
	}
	if c.clearDue {
		patch.ClearDueDate = true
		changed = true
	} else if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return store.Patch{}, false
		}
		patch.DueDate = &due
		changed = true
	}
	if c.category != "" {
		patch.Category = &c.category
		changed = true
	}
	if c.priority != "" {
		patch.Priority = &c.priority
		changed = true
	}
	if c.status != "" {
		patch.Status = &c.status
		changed = true
	}
	switch c.done {
	case "":
	case "true":
		done := true
		patch.Done = &done
		changed = true
	case "false":
		done := false
		patch.Done = &done
		changed = true
	default:
		fmt.Fprintf(errOut, "error: invalid --done value: %s\n", c.done)
		return store.Patch{}, false
	}

	if !changed {
		fmt.Fprintln(errOut, "error: nothing to update")
		return store.Patch{}, false
	}
	return patch, true
}
