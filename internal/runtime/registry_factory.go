// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"

	"envy-cli/internal/config"
)

// HostRunner adapts an Executor to envstore.Runner. Commands run without any
// environment activation.
type HostRunner struct {
	Executor Executor
	IO       IOContext
}

// BuildRegistry creates a registry with every built-in runtime registered.
func BuildRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(RuntimeTypeNative, NewNativeRuntime())
	reg.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	return reg
}

// TypeFor maps the configured runtime mode to a registered runtime type.
// Unset modes select the native runtime.
func TypeFor(cfg *config.Config) RuntimeType {
	if cfg == nil || cfg.Runtime == "" {
		return RuntimeTypeNative
	}
	return RuntimeType(cfg.Runtime)
}

// Run implements envstore.Runner.
func (h HostRunner) Run(ctx context.Context, argv []string) error {
	execCtx := &ExecutionContext{Context: ctx, Commands: []Command{argv}, IO: h.IO}
	if err := execCtx.Validate(); err != nil {
		return err
	}
	return h.Executor.Execute(execCtx).Err()
}
