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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string        { return "rm" }
func (c *RmCmd) Aliases() []string   { return []string{"remove"} }
func (c *RmCmd) Synopsis() string    { return "Delete a task" }
func (c *RmCmd) Usage() string       { return "taskdeck rm <n>" }
func (c *RmCmd) NeedsSession() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	num, err := parseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	t, err := resolveTask(ctx, svc, num)
	if err != nil {
		return reportError(errOut, err)
	}

	if err := svc.Delete(ctx, t.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
