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
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string        { return "whoami" }
func (c *WhoamiCmd) Aliases() []string   { return nil }
func (c *WhoamiCmd) Synopsis() string    { return "Show the current session" }
func (c *WhoamiCmd) Usage() string       { return "taskdeck whoami" }
func (c *WhoamiCmd) NeedsSession() bool  { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc *tasks.Service, args []string, out, errOut io.Writer) int {
	sess, err := session.Resolve(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	mode, ok := sess.Mode()
	if !ok {
		fmt.Fprintln(out, "no session")
		return exitcode.Success
	}

	ownerID, _ := sess.OwnerID()
	switch mode {
	case session.ModeFederated:
		fmt.Fprintf(out, "federated: %s (%s)\n", sess.Email(), ownerID)
	default:
		fmt.Fprintf(out, "guest: %s\n", ownerID)
	}
	return exitcode.Success
}
