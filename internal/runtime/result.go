// SPDX-License-Identifier: MPL-2.0

package runtime

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewFailedResult creates a Result for a command that exited non-zero.
// Use this for normal process termination rather than infrastructure failures.
func NewFailedResult(code ExitCode, cmd Command) *Result {
	return &Result{ExitCode: code, Failed: cmd}
}
