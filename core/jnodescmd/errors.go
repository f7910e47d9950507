package jnodescmd

import (
	"errors"

	"github.com/opensvc/jnodes/core/client"
	"github.com/opensvc/jnodes/core/credentials"
	"github.com/opensvc/jnodes/core/router"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitCredentials = 2
	ExitCrumb       = 3
	ExitUnknownVerb = 4
	ExitSubmit      = 5
)

var (
	ErrUsage = errors.New("usage")

	ErrCredentials = credentials.ErrCredentials

	ErrCrumb = client.ErrCrumb

	ErrUnknownVerb = router.ErrUnknownVerb

	ErrSubmit = client.ErrSubmit
)

type (
	// ExitError associates a process exit code to an error.
	ExitError struct {
		Code int
		Err  error
	}
)

func (t *ExitError) Error() string {
	return t.Err.Error()
}

func (t *ExitError) Unwrap() error {
	return t.Err
}

// ExitCode implements the interface the root command uses to select the
// process exit code.
func (t *ExitError) ExitCode() int {
	return t.Code
}

// NewExitError returns err wrapped in an ExitError with the exit code of
// its error family. A nil err returns nil.
func NewExitError(err error) error {
	if err == nil {
		return nil
	}
	var xerr *ExitError
	if errors.As(err, &xerr) {
		return err
	}
	return &ExitError{Code: ExitCodeOf(err), Err: err}
}

// ExitCodeOf returns the process exit code of the error family of err.
func ExitCodeOf(err error) int {
	var xerr *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &xerr):
		return xerr.Code
	case errors.Is(err, ErrCredentials):
		return ExitCredentials
	case errors.Is(err, ErrCrumb):
		return ExitCrumb
	case errors.Is(err, ErrUnknownVerb):
		return ExitUnknownVerb
	case errors.Is(err, ErrSubmit):
		return ExitSubmit
	default:
		return ExitUsage
	}
}
