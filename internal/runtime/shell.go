// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"envy-cli/pkg/platform"
)

// ErrShellNotFound is returned when the interactive shell cannot be started.
var ErrShellNotFound = errors.New("interactive shell not found")

// fallbackShell is used when neither $SHELL nor bash can be used.
const fallbackShell = "/bin/sh"

// recognizedShells are the $SHELL base names trusted as interactive shells.
var recognizedShells = map[string]bool{
	"bash": true,
	"zsh":  true,
	"fish": true,
	"sh":   true,
	"dash": true,
	"ksh":  true,
}

// Shell is an interactive shell program and its arguments.
type Shell struct {
	Path string
	Args []string
}

// DefaultShell resolves the interactive shell for the host.
func DefaultShell() Shell {
	return ResolveShell(goruntime.GOOS, os.Getenv, exec.LookPath)
}

// ResolveShell picks the shell for goos. Windows uses cmd.exe /K. Elsewhere
// $SHELL is used if its base name is a recognized shell, then bash from the
// search path, then /bin/sh.
func ResolveShell(goos string, getenv func(string) string, lookPath func(string) (string, error)) Shell {
	if goos == platform.Windows {
		comspec := getenv("COMSPEC")
		if comspec == "" {
			comspec = "cmd.exe"
		}
		return Shell{Path: comspec, Args: []string{"/K"}}
	}

	if sh := getenv("SHELL"); sh != "" {
		if recognizedShells[strings.TrimSuffix(filepath.Base(sh), ".exe")] {
			return Shell{Path: sh}
		}
	}
	if bash, err := lookPath("bash"); err == nil {
		return Shell{Path: bash}
	}
	return Shell{Path: fallbackShell}
}

// Spawn starts sh inside the environment of ctx with ctx's streams attached
// and waits for it to exit. ctx.Commands is ignored.
func Spawn(ctx *ExecutionContext, sh Shell) *Result {
	if ctx.Env == nil {
		return NewErrorResult(1, errors.New("no environment to activate"))
	}
	if err := checkEnvironment(ctx.Env); err != nil {
		return NewErrorResult(1, err)
	}

	args := sh.Args
	if len(args) > 0 && args[len(args)-1] == "/K" {
		// cmd.exe needs a command after /K; use it to show the environment in the prompt.
		args = append(append([]string{}, args...), "prompt", "("+ctx.Env.Name+") $P$G")
	}

	cmd := exec.CommandContext(ctx.goContext(), sh.Path, args...)
	cmd.Env = BuildEnviron(ctx)
	cmd.Dir = ctx.WorkDir
	cmd.Stdin = ctx.IO.Stdin
	cmd.Stdout = ctx.IO.Stdout
	cmd.Stderr = ctx.IO.Stderr

	if err := cmd.Run(); err != nil {
		if code, ok := exitCodeOf(err); ok {
			return NewFailedResult(code, Command{sh.Path})
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return NewErrorResult(127, fmt.Errorf("%s: %w", sh.Path, ErrShellNotFound))
		}
		return NewErrorResult(1, fmt.Errorf("failed to start shell: %w", err))
	}
	return NewSuccessResult()
}
