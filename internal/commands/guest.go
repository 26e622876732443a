package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/session"
	"taskdeck/internal/tasks"
)

func init() {
	Register(&GuestCmd{})
}

// GuestCmd implements the guest command: enter (or re-enter) guest mode.
// The generated guest id is stable across invocations, so guest tasks
// persist locally until the config directory is removed.
type GuestCmd struct{}

func (c *GuestCmd) Name() string        { return "guest" }
func (c *GuestCmd) Aliases() []string   { return nil }
func (c *GuestCmd) Synopsis() string    { return "Use the local guest backend" }
func (c *GuestCmd) Usage() string       { return "taskdeck guest" }
func (c *GuestCmd) NeedsSession() bool  { return false }

func (c *GuestCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *GuestCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	if cfg.HasProfile() && cfg.HasToken() {
		fmt.Fprintln(errOut, "error: logged in with Google (run: taskdeck logout first)")
		return exitcode.UserError
	}

	sess, err := session.EnterAsGuest(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		ownerID, _ := sess.OwnerID()
		fmt.Fprintf(out, "guest session: %s\n", ownerID)
	}
	return exitcode.Success
}
