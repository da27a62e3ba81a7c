// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// NativeRuntime executes each command directly as a host process.
type NativeRuntime struct{}

// NewNativeRuntime creates a new native runtime
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name
func (r *NativeRuntime) Name() string {
	return string(RuntimeTypeNative)
}

// Available returns whether this runtime is available
func (r *NativeRuntime) Available() bool {
	return true
}

// Execute runs the chain one process at a time, stopping at the first failure.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	environ := BuildEnviron(ctx)
	workDir, err := resolveWorkDir(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	for _, command := range ctx.Commands {
		slog.Debug("running command", "runtime", r.Name(), "command", DescribeCommand(command))

		// Resolve against the activated PATH, not the one envy was started with.
		program, err := interp.LookPathDir(workDir, expand.ListEnviron(environ...), command[0])
		if err != nil {
			return &Result{ExitCode: 127, Error: fmt.Errorf("%s: %w", command[0], err), Failed: command}
		}

		cmd := exec.CommandContext(ctx.goContext(), program, command[1:]...)
		cmd.Args[0] = command[0]
		cmd.Dir = workDir
		cmd.Env = environ
		cmd.Stdin = ctx.IO.Stdin
		cmd.Stdout = ctx.IO.Stdout
		cmd.Stderr = ctx.IO.Stderr

		if err := cmd.Run(); err != nil {
			if code, ok := exitCodeOf(err); ok {
				return NewFailedResult(code, command)
			}
			return &Result{ExitCode: 1, Error: fmt.Errorf("failed to execute command: %w", err), Failed: command}
		}
	}

	return NewSuccessResult()
}

func resolveWorkDir(ctx *ExecutionContext) (string, error) {
	if ctx.WorkDir != "" {
		return ctx.WorkDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}
