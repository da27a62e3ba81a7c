// SPDX-License-Identifier: MPL-2.0

package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"envy-cli/internal/catalog"
	"envy-cli/internal/envstore"
	"envy-cli/internal/locator"
	"envy-cli/internal/runtime"
)

type (
	// Runner executes command chains and interactive shells.
	Runner interface {
		runtime.Executor
		Spawn(ctx *runtime.ExecutionContext) *runtime.Result
	}

	// RuntimeRunner runs chains with a registered runtime and spawns Shell.
	RuntimeRunner struct {
		Registry *runtime.Registry
		Type     runtime.RuntimeType
		Shell    runtime.Shell
	}

	// Options wires a Manager. Store, Catalog and Runner are required.
	Options struct {
		Store   *envstore.Store
		Catalog *catalog.Catalog
		Locator *locator.Locator
		Runner  Runner
		// Installer is the argv prefix for Install; the package is appended.
		Installer []string
		// Bootstrap commands run inside every new environment.
		Bootstrap [][]string
		// IO are the streams given to child processes.
		IO runtime.IOContext
		// SearchPath lists the directories scanned for interpreters.
		SearchPath func() []string
	}

	// Manager performs envy operations.
	Manager struct {
		store      *envstore.Store
		catalog    *catalog.Catalog
		locator    *locator.Locator
		runner     Runner
		installer  []string
		bootstrap  [][]string
		io         runtime.IOContext
		searchPath func() []string
	}

	// CreateRequest describes a new environment.
	CreateRequest struct {
		Name string
		// Interpreter is the executable path used to run `-m venv`.
		Interpreter string
		// Bundle, when set, is installed after bootstrapping.
		Bundle string
	}
)

// Execute implements Runner.
func (r RuntimeRunner) Execute(ctx *runtime.ExecutionContext) *runtime.Result {
	return r.Registry.Execute(r.Type, ctx)
}

// Spawn implements Runner.
func (r RuntimeRunner) Spawn(ctx *runtime.ExecutionContext) *runtime.Result {
	return runtime.Spawn(ctx, r.Shell)
}

// New creates a Manager from opts.
func New(opts Options) *Manager {
	m := &Manager{
		store:      opts.Store,
		catalog:    opts.Catalog,
		locator:    opts.Locator,
		runner:     opts.Runner,
		installer:  opts.Installer,
		bootstrap:  opts.Bootstrap,
		io:         opts.IO,
		searchPath: opts.SearchPath,
	}
	if m.locator == nil {
		m.locator = locator.New(locator.DefaultProbeTimeout)
	}
	if m.searchPath == nil {
		m.searchPath = locator.SearchPath
	}
	if len(m.installer) == 0 {
		m.installer = []string{"uv", "pip", "install"}
	}
	if m.io.Stdin == nil && m.io.Stdout == nil && m.io.Stderr == nil {
		m.io = runtime.IOContext{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	}
	return m
}

// IsEnvironmentNotFound reports whether err means the named environment is missing.
func IsEnvironmentNotFound(err error) bool {
	return errors.Is(err, runtime.ErrEnvironmentNotFound) || errors.Is(err, envstore.ErrNotFound)
}

// ErrBundleIncomplete is returned by Create when the environment is ready but
// some bundle packages failed to install.
var ErrBundleIncomplete = errors.New("failed to install every package of bundle")

// Create builds a new environment: venv creation, bootstrap commands, then
// one `pip install <pkg>` per package of the requested bundle. A failing
// package does not stop the remaining ones. On failure after the venv
// exists, the environment is returned together with the error.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (envstore.Environment, error) {
	if err := envstore.ValidateName(req.Name); err != nil {
		return envstore.Environment{}, err
	}
	if m.store.Exists(req.Name) {
		return envstore.Environment{}, fmt.Errorf("%s: %w", req.Name, envstore.ErrExists)
	}
	if req.Interpreter == "" {
		return envstore.Environment{}, locator.ErrNoInterpreters
	}

	var bundle []string
	if req.Bundle != "" {
		pkgs, ok := m.catalog.Get(req.Bundle)
		if !ok {
			return envstore.Environment{}, fmt.Errorf("%s: %w", req.Bundle, catalog.ErrNotFound)
		}
		bundle = pkgs
	}

	env, err := m.store.Create(ctx, req.Name, req.Interpreter, runtime.HostRunner{Executor: m.runner, IO: m.io})
	if err != nil {
		return envstore.Environment{}, err
	}

	if err := m.runInEnv(ctx, env, commandsOf(m.bootstrap)); err != nil {
		return env, fmt.Errorf("failed to bootstrap %s: %w", env.Name, err)
	}

	if len(bundle) > 0 {
		slog.Debug("installing bundle", "environment", env.Name, "bundle", req.Bundle, "packages", len(bundle))
	}
	var failed []error
	for _, pkg := range bundle {
		if err := m.runInEnv(ctx, env, []runtime.Command{{"pip", "install", pkg}}); err != nil {
			slog.Warn("package install failed", "environment", env.Name, "package", pkg, "error", err)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return env, fmt.Errorf("%w %s (%d of %d packages failed): %w",
			ErrBundleIncomplete, req.Bundle, len(failed), len(bundle), errors.Join(failed...))
	}

	return env, nil
}

// Activate opens the interactive shell inside the environment and waits for
// it to exit. The shell's own exit status is not an error.
func (m *Manager) Activate(ctx context.Context, name string) error {
	env, err := m.environment(name)
	if err != nil {
		return err
	}
	return m.spawn(ctx, env)
}

// OpenShell is Activate for an environment value already in hand.
func (m *Manager) OpenShell(ctx context.Context, env envstore.Environment) error {
	return m.spawn(ctx, env)
}

func (m *Manager) spawn(ctx context.Context, env envstore.Environment) error {
	res := m.runner.Spawn(&runtime.ExecutionContext{Context: ctx, Env: &env, IO: m.io})
	if res.Error != nil {
		return res.Error
	}
	if !res.Success() {
		slog.Debug("shell exited with non-zero status", "environment", env.Name, "code", res.ExitCode)
	}
	return nil
}

// RunIn runs commands inside the named environment, stopping at the first failure.
func (m *Manager) RunIn(ctx context.Context, name string, commands ...runtime.Command) error {
	env, err := m.environment(name)
	if err != nil {
		return err
	}
	return m.runInEnv(ctx, env, commands)
}

// Install runs the configured installer for pkg in the caller's current
// environment, which is the active venv when envy runs inside one.
func (m *Manager) Install(ctx context.Context, pkg string) error {
	if pkg == "" {
		return errors.New("package name must not be empty")
	}
	argv := append(append(runtime.Command{}, m.installer...), pkg)
	if active := os.Getenv(runtime.EnvVirtualEnv); active == "" {
		slog.Warn("no virtual environment is active; installing into the current interpreter", "package", pkg)
	}
	return m.runner.Execute(&runtime.ExecutionContext{
		Context:  ctx,
		Commands: []runtime.Command{argv},
		IO:       m.io,
	}).Err()
}

// Delete removes the named environment.
func (m *Manager) Delete(name string) error {
	if _, err := m.environment(name); err != nil {
		return err
	}
	return m.store.Delete(name)
}

// Exists reports whether the named environment exists.
func (m *Manager) Exists(name string) bool {
	return m.store.Exists(name)
}

// Environments lists every environment sorted by name.
func (m *Manager) Environments() ([]envstore.Environment, error) {
	return m.store.List()
}

// Bundles returns every bundle in the catalog.
func (m *Manager) Bundles() map[string][]string {
	return m.catalog.All()
}

// BundleNames returns the catalog's bundle names in sorted order.
func (m *Manager) BundleNames() []string {
	return m.catalog.Names()
}

// DefineBundle inserts or replaces a bundle and persists the catalog.
func (m *Manager) DefineBundle(name string, packages []string) error {
	return m.catalog.Define(name, packages)
}

// RemoveBundle deletes a bundle and persists the catalog.
func (m *Manager) RemoveBundle(name string) error {
	return m.catalog.Remove(name)
}

// Interpreters scans the search path for Python interpreters.
func (m *Manager) Interpreters(ctx context.Context) (locator.Result, error) {
	return m.locator.Find(ctx, m.searchPath())
}

func (m *Manager) environment(name string) (envstore.Environment, error) {
	env, err := m.store.Get(name)
	if err != nil {
		if errors.Is(err, envstore.ErrNotFound) {
			return envstore.Environment{}, fmt.Errorf("%w: %w", runtime.ErrEnvironmentNotFound, err)
		}
		return envstore.Environment{}, err
	}
	return env, nil
}

func (m *Manager) runInEnv(ctx context.Context, env envstore.Environment, commands []runtime.Command) error {
	if len(commands) == 0 {
		return nil
	}
	slog.Debug("running in environment", "environment", env.Name, "commands", runtime.DescribeCommands(commands))
	return m.runner.Execute(&runtime.ExecutionContext{
		Context:  ctx,
		Env:      &env,
		Commands: commands,
		IO:       m.io,
	}).Err()
}

func commandsOf(argvs [][]string) []runtime.Command {
	cmds := make([]runtime.Command, 0, len(argvs))
	for _, argv := range argvs {
		cmds = append(cmds, runtime.Command(argv))
	}
	return cmds
}
