package app

import (
	"errors"
	"os"
	"testing"
)

func TestOperationError(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"full", NewOperationError("export", "/tmp/a.svg", os.ErrPermission), "export /tmp/a.svg: permission denied"},
		{"no target", NewOperationError("reload", "", os.ErrNotExist), "reload: file does not exist"},
		{"no cause", NewOperationError("copy", "svg", nil), "copy svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := error(NewOperationError("export", "x.png", os.ErrPermission))
	if !errors.Is(err, os.ErrPermission) {
		t.Error("errors.Is should see the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil receiver should be empty")
	}
}

func TestInitError(t *testing.T) {
	err := error(&InitError{Component: "backend", Err: ErrNoBackend})
	if err.Error() != "init backend: no terminal backend" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNoBackend) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "boom", Stack: "goroutine 1"}
	if err.Error() != "panic: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}
