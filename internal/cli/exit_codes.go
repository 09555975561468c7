package cli

import (
	"context"
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// Exit codes for the relnotes CLI.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates the releases document failed validation
	ExitValidationFailed = 1

	// ExitRuntimeError indicates an unexpected failure (I/O, network)
	ExitRuntimeError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 4

	// ExitTimeout indicates a remote input timed out
	ExitTimeout = 5
)

// ExitError carries an exit code out of a command.
// Silent errors have already been reported by the command.
type ExitError struct {
	Code   int
	Silent bool
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns a silent ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code, Silent: true}
}

// exitCodeFor maps an error to the exit code reported to the shell.
func exitCodeFor(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigError
		case clierrors.Input:
			return ExitValidationFailed
		}
	}
	return ExitRuntimeError
}
