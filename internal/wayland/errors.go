package wayland

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitConnect  = 1
	ExitRegistry = 2
	ExitFailure  = 3
)

var (
	ErrConnect      = errors.New("connection failed")
	ErrRegistry     = errors.New("registry acquisition failed")
	ErrNotConnected = errors.New("not connected")
)

// ExitError carries the exit code a failure maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, sentinel, cause error) *ExitError {
	if cause == nil {
		return &ExitError{Code: code, Err: sentinel}
	}
	return &ExitError{Code: code, Err: fmt.Errorf("%w: %w", sentinel, cause)}
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
