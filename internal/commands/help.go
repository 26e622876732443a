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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string        { return "help" }
func (c *HelpCmd) Aliases() []string   { return nil }
func (c *HelpCmd) Synopsis() string    { return "Print usage" }
func (c *HelpCmd) Usage() string       { return "taskdeck help" }
func (c *HelpCmd) NeedsSession() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                       List all tasks
  taskdeck list [common flags] [--done|--open] [--category <id>] [--priority <id>]
                [--status <id>] [--search <text>] [--sort created|title|priority|due]
  taskdeck add [common flags] [--due <date>] [--category <id>] [--priority <id>] <title...>
  taskdeck done [common flags] <n>               Toggle completion of task n
  taskdeck edit [common flags] [--title <text>] [--due <date>] [--clear-due]
                [--category <id>] [--priority <id>] [--status <id>] <n>
  taskdeck rm [common flags] <n>
  taskdeck clear [common flags] --force          Delete all tasks
  taskdeck stats [common flags]
  taskdeck guest [common flags]                  Use the local guest backend
  taskdeck login [common flags]                  Authenticate with Google
  taskdeck logout [common flags]
  taskdeck whoami [common flags]
  taskdeck help
  taskdeck version

Categories: work personal health finance home study shopping travel other
Priorities: low medium high urgent
Statuses:   pending completed cancelled

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
