package tasks

import "fmt"

// NotAuthenticatedError is returned by every operation invoked before a
// session has been established. No adapter call is made.
type NotAuthenticatedError struct{}

func (e *NotAuthenticatedError) Error() string {
	return "not authenticated: no active session (run: taskdeck guest or taskdeck login)"
}

// PersistenceError wraps an adapter or backend failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
