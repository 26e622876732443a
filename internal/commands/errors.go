package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
	"taskdeck/internal/tasks"
)

// reportError prints a service error and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var nerr *tasks.NotAuthenticatedError
	if errors.As(err, &nerr) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if strings.Contains(err.Error(), "out of range") {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
