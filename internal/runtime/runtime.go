// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"envy-cli/internal/envstore"

	"mvdan.cc/sh/v3/syntax"
)

// Runtime type constants for the supported command runners.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"
)

var (
	// ErrEnvironmentNotFound is returned when the target environment directory is missing.
	ErrEnvironmentNotFound = errors.New("environment not found")
	// ErrNoCommands is returned when an execution context has nothing to run.
	ErrNoCommands = errors.New("no commands to execute")
	// ErrEmptyCommand is returned for a command with no argv words.
	ErrEmptyCommand = errors.New("command has no program")
)

type (
	// Command is a program and its arguments. It is never interpreted by a shell parser.
	Command []string

	// IOContext holds the standard streams of a child process.
	IOContext struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExecutionContext contains everything needed to run a command chain.
	ExecutionContext struct {
		// Context is the Go context for cancellation
		Context context.Context
		// Env activates the chain inside this environment when non-nil.
		Env *envstore.Environment
		// Commands run in order; the first failure stops the chain.
		Commands []Command
		// IO are the child's standard streams.
		IO IOContext
		// ExtraEnv is applied after activation.
		ExtraEnv map[string]string
		// WorkDir overrides the working directory.
		WorkDir string
	}

	// Result contains the result of a command chain.
	Result struct {
		// ExitCode is the exit code of the failing command, or 0.
		ExitCode ExitCode
		// Error is set for failures that are not a plain non-zero exit.
		Error error
		// Failed is the command that stopped the chain, when known.
		Failed Command
	}

	// Runtime defines the interface for command execution
	Runtime interface {
		Executor
		// Name returns the runtime name
		Name() string
		// Available returns whether this runtime is available on the current system
		Available() bool
	}

	// Executor runs a command chain.
	Executor interface {
		Execute(ctx *ExecutionContext) *Result
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// Registry holds all available runtimes
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}

	// CommandFailedError reports a command that exited non-zero.
	CommandFailedError struct {
		Command  Command
		ExitCode ExitCode
	}
)

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("%s exited with status %d", DescribeCommand(e.Command), e.ExitCode)
}

// NewExecutionContext creates an execution context bound to the process's standard streams.
func NewExecutionContext(ctx context.Context, env *envstore.Environment, commands ...Command) *ExecutionContext {
	return &ExecutionContext{
		Context:  ctx,
		Env:      env,
		Commands: commands,
		IO: IOContext{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	}
}

// Validate checks the chain and the target environment before anything runs.
func (ctx *ExecutionContext) Validate() error {
	if len(ctx.Commands) == 0 {
		return ErrNoCommands
	}
	for _, cmd := range ctx.Commands {
		if len(cmd) == 0 || cmd[0] == "" {
			return ErrEmptyCommand
		}
	}
	if ctx.Env != nil {
		return checkEnvironment(ctx.Env)
	}
	return nil
}

func checkEnvironment(env *envstore.Environment) error {
	info, err := os.Stat(env.Path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", env.Name, ErrEnvironmentNotFound)
	}
	return nil
}

func (ctx *ExecutionContext) goContext() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// Success returns true if the command chain executed successfully
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// Err converts the result to an error: the infrastructure error when set,
// otherwise a *CommandFailedError for a non-zero exit, otherwise nil.
func (r *Result) Err() error {
	switch {
	case r.Error != nil:
		return r.Error
	case !r.ExitCode.IsSuccess():
		return &CommandFailedError{Command: r.Failed, ExitCode: r.ExitCode}
	default:
		return nil
	}
}

// NewRegistry creates a new runtime registry
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// Register adds a runtime to the registry
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", typ)
	}
	return rt, nil
}

// Execute validates the context and runs it with the runtime registered for typ.
func (r *Registry) Execute(typ RuntimeType, ctx *ExecutionContext) *Result {
	rt, err := r.Get(typ)
	if err != nil {
		return NewErrorResult(1, err)
	}

	if !rt.Available() {
		return NewErrorResult(1, fmt.Errorf("runtime '%s' is not available on this system", rt.Name()))
	}

	if err := ctx.Validate(); err != nil {
		return NewErrorResult(1, err)
	}

	return rt.Execute(ctx)
}

// DescribeCommand renders a command as a single shell-quoted line for display.
func DescribeCommand(cmd Command) string {
	words := make([]string, 0, len(cmd))
	for _, w := range cmd {
		quoted, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			quoted = fmt.Sprintf("%q", w)
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " ")
}

// DescribeCommands renders a chain as `cmd1 && cmd2 && ...`.
func DescribeCommands(cmds []Command) string {
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, DescribeCommand(c))
	}
	return strings.Join(lines, " && ")
}
