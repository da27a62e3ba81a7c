// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes the chain with the embedded mvdan/sh interpreter.
// External programs are still host processes; the interpreter only provides
// the && sequencing and the environment.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Available returns whether this runtime is available
func (r *VirtualRuntime) Available() bool {
	// Virtual runtime is always available as it's built-in
	return true
}

// Execute runs the chain as a single `cmd1 && cmd2 && ...` statement.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	prog := BuildChain(ctx.Commands)
	slog.Debug("running command chain", "runtime", r.Name(), "chain", DescribeCommands(ctx.Commands))

	workDir, err := resolveWorkDir(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	var failed Command
	runner, err := interp.New(
		interp.Dir(workDir),
		interp.Env(expand.ListEnviron(BuildEnviron(ctx)...)),
		interp.StdIO(ctx.IO.Stdin, ctx.IO.Stdout, ctx.IO.Stderr),
		interp.ExecHandlers(recordFailure(&failed)),
	)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(ctx.goContext(), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewFailedResult(ExitCode(exitStatus), failed)
		}
		return NewErrorResult(1, fmt.Errorf("command chain failed: %w", err))
	}

	return NewSuccessResult()
}

// recordFailure stores the argv of the last external command that failed.
func recordFailure(failed *Command) func(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			err := next(ctx, args)
			if err != nil {
				*failed = Command(args)
			}
			return err
		}
	}
}

// BuildChain assembles commands into a syntax tree equivalent to
// `cmd1 && cmd2 && ...`. Every argv word becomes a single-quoted word node,
// so no word is subject to expansion, globbing or field splitting.
func BuildChain(cmds []Command) *syntax.File {
	var chain *syntax.Stmt
	for _, c := range cmds {
		call := &syntax.CallExpr{}
		for _, w := range c {
			call.Args = append(call.Args, &syntax.Word{
				Parts: []syntax.WordPart{&syntax.SglQuoted{Value: w}},
			})
		}
		stmt := &syntax.Stmt{Cmd: call}
		if chain == nil {
			chain = stmt
			continue
		}
		chain = &syntax.Stmt{Cmd: &syntax.BinaryCmd{Op: syntax.AndStmt, X: chain, Y: stmt}}
	}

	file := &syntax.File{Name: "envy"}
	if chain != nil {
		file.Stmts = []*syntax.Stmt{chain}
	}
	return file
}
