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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles the completion flag, so
// running it on a completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string        { return "done" }
func (c *DoneCmd) Aliases() []string   { return []string{"toggle", "undo"} }
func (c *DoneCmd) Synopsis() string    { return "Toggle task completion" }
func (c *DoneCmd) Usage() string       { return "taskdeck done <n>" }
func (c *DoneCmd) NeedsSession() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
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

	if _, err := svc.ToggleCompletion(ctx, t.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
