// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"envy-cli/internal/runtime"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitErrorFor converts a failed child command into an ExitError carrying
// the child's exit code. Other errors are returned unchanged.
func exitErrorFor(err error) error {
	var failed *runtime.CommandFailedError
	if errors.As(err, &failed) {
		return &ExitError{Code: int(failed.ExitCode), Err: err}
	}
	return err
}
