package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/tasks"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command: delete every task for the current
// owner. Requires --force.
type ClearCmd struct {
	force bool
}

func (c *ClearCmd) Name() string        { return "clear" }
func (c *ClearCmd) Aliases() []string   { return nil }
func (c *ClearCmd) Synopsis() string    { return "Delete all tasks" }
func (c *ClearCmd) Usage() string       { return "taskdeck clear --force" }
func (c *ClearCmd) NeedsSession() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	if !c.force {
		fmt.Fprintln(errOut, "error: refusing to delete all tasks without --force")
		return exitcode.UserError
	}

	if err := svc.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	if err := svc.DeleteAll(ctx); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
