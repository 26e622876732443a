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
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string        { return "logout" }
func (c *LogoutCmd) Aliases() []string   { return nil }
func (c *LogoutCmd) Synopsis() string    { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string       { return "taskdeck logout [common flags]" }
func (c *LogoutCmd) NeedsSession() bool  { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasToken() && !cfg.HasProfile() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if cfg.HasToken() {
		if err := cfg.RemoveToken(); err != nil {
			fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
			return exitcode.AuthError
		}
	}
	if cfg.HasProfile() {
		if err := cfg.RemoveProfile(); err != nil {
			fmt.Fprintf(errOut, "error: failed to remove profile: %v\n", err)
			return exitcode.AuthError
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
