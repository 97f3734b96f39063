package config

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every *ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// ValidationError rejects one setting.
type ValidationError struct {
	Path   string // dotted setting path, e.g. board.max_fret
	Value  any
	Reason string
	Err    error
}

func invalid(path string, value any, reason string, err error) *ValidationError {
	return &ValidationError{Path: path, Value: value, Reason: reason, Err: err}
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s = %v: %s", e.Path, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

func (e *ValidationError) Unwrap() error { return e.Err }
