package errs

import (
	"errors"
	"fmt"
)

// Not-found errors.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrNoProjectRoot    = errors.New("could not determine project root")
	ErrReferenceMissing = errors.New("no 1Password reference found in .sops.yaml")
)

// Config file errors.
var (
	ErrRead             = errors.New("failed to read config file")
	ErrParse            = errors.New("failed to parse YAML")
	ErrSerialize        = errors.New("failed to serialize config")
	ErrWrite            = errors.New("failed to write config file")
	ErrConfigUnreadable = errors.New("failed to read SOPS config")
)

// Subprocess errors.
var (
	// ErrSpawn means the binary could not be started at all.
	ErrSpawn = errors.New("failed to launch command")
	// ErrSubprocess means the binary ran and exited non-zero.
	ErrSubprocess = errors.New("command returned an error")
	// ErrNotInstalled means the binary is not on PATH.
	ErrNotInstalled = errors.New("not installed or not in PATH")
)

var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrUserAborted   = errors.New("aborted by user")
)

// ExitError asks the top-level command to terminate with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithExitCode wraps err so that ExitCode reports code for it.
func WithExitCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error to the process exit code: nil is 0, an ExitError
// anywhere in the chain yields its code, anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
