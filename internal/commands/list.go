package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskdeck` (no args) and filtered listings.
type ListCmd struct {
	done     bool
	open     bool
	category string
	priority string
	status   string
	search   string
	sortBy   string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskdeck list [--done|--open] [--category <id>] [--priority <id>] [--status <id>] [--search <text>] [--sort created|title|priority|due]"
}
func (c *ListCmd) NeedsSession() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.open, "open", false, "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.sortBy, "sort", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	if c.done && c.open {
		fmt.Fprintln(errOut, "error: cannot use both --done and --open")
		return exitcode.UserError
	}

	opts := tasks.FilterOptions{
		Category: c.category,
		Priority: c.priority,
		Status:   c.status,
		Search:   c.search,
	}
	switch c.sortBy {
	case "":
		// Cache order is already newest-first.
	case "created", "title", "priority", "due":
		opts.SortBy = tasks.SortBy(c.sortBy)
	default:
		fmt.Fprintf(errOut, "error: invalid sort key: %s\n", c.sortBy)
		return exitcode.UserError
	}
	if c.done {
		done := true
		opts.Done = &done
	}
	if c.open {
		done := false
		opts.Done = &done
	}

	if err := svc.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	listed := svc.Filter(opts)
	if len(listed) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, t := range listed {
		output.FormatTask(out, i+1, t)
	}
	return exitcode.Success
}
