package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuit ends the event loop normally.
	ErrQuit = errors.New("quit requested")

	ErrAlreadyRunning = errors.New("application already running")
	ErrNoBackend      = errors.New("no terminal backend")

	// ErrUnknownAction is returned for a bound action with no handler.
	ErrUnknownAction = errors.New("unknown action")
)

// OperationError is a failed user command such as an export or a reload.
// It is shown in the status line.
type OperationError struct {
	Op     string
	Target string // usually a path; may be empty
	Err    error
}

func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteByte(' ')
		b.WriteString(e.Target)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError means the application could not be set up.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string { return fmt.Sprintf("init %s: %v", e.Component, e.Err) }

func (e *InitError) Unwrap() error { return e.Err }

// RecoveredPanicError carries a panic caught while handling one event.
type RecoveredPanicError struct {
	Value any
	Stack string
}

func (e *RecoveredPanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }
