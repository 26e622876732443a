// Package main is the entry point for the taskdeck CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
	"taskdeck/internal/store"
	"taskdeck/internal/store/firestore"
	"taskdeck/internal/store/localstore"
	"taskdeck/internal/tasks"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create dispatcher with the session-resolving service factory
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newService resolves the current session and opens the matching backend:
// the local database for guest sessions, Firestore for federated ones.
func newService(ctx context.Context, cfg *config.Config) (*tasks.Service, func(), error) {
	sess, err := session.Resolve(cfg)
	if err != nil {
		return nil, nil, err
	}

	mode, ok := sess.Mode()
	if !ok {
		return nil, nil, &tasks.NotAuthenticatedError{}
	}

	var st store.Store
	cleanup := func() {}
	switch mode {
	case session.ModeFederated:
		st, err = firestore.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
	default:
		if err := cfg.EnsureDir(); err != nil {
			return nil, nil, err
		}
		local, err := localstore.Open(cfg.LocalDBPath(), slog.Default())
		if err != nil {
			return nil, nil, err
		}
		st = local
		cleanup = func() { local.Close() }
	}

	return tasks.New(st, sess, slog.Default()), cleanup, nil
}
