package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/store"
	"taskdeck/internal/tasks"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due      string
	category string
	priority string
	status   string
}

func (c *AddCmd) Name() string        { return "add" }
func (c *AddCmd) Aliases() []string   { return []string{"create"} }
func (c *AddCmd) Synopsis() string    { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdeck add [--due <date>] [--category <id>] [--priority <id>] [--status <id>] <title...>"
}
func (c *AddCmd) NeedsSession() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.due, "d", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := store.Draft{
		Title:    title,
		Category: c.category,
		Priority: c.priority,
		Status:   c.status,
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.DueDate = &due
	}

	if _, err := svc.Create(ctx, draft); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
