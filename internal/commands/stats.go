package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/tasks"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string        { return "stats" }
func (c *StatsCmd) Aliases() []string   { return nil }
func (c *StatsCmd) Synopsis() string    { return "Show task statistics" }
func (c *StatsCmd) Usage() string       { return "taskdeck stats" }
func (c *StatsCmd) NeedsSession() bool  { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	if err := svc.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	output.FormatStats(out, svc.ComputeStats())
	return exitcode.Success
}
