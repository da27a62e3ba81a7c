// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"envy-cli/internal/catalog"
	"envy-cli/internal/config"
	"envy-cli/internal/envstore"
	"envy-cli/internal/issue"
	"envy-cli/internal/locator"
	"envy-cli/internal/manager"
	"envy-cli/internal/runtime"
	"envy-cli/internal/tui"

	"github.com/charmbracelet/log"
)

type (
	// Prompter gathers interactive choices. Handlers only call it when a
	// flag did not already supply the answer.
	Prompter interface {
		Select(title string, options []tui.Option[string]) (string, error)
		Confirm(title string, def bool) (bool, error)
		Input(title, placeholder string) (string, error)
	}

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every command handler receives it.
	App struct {
		Config config.Provider
		Prompt Prompter

		runner manager.Runner
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Request-scoped state, set by the root command.
		configPath string
		verbose    bool
		logger     *log.Logger
		cfg        *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Prompt Prompter
		// Runner replaces the runtime-backed command runner.
		Runner manager.Runner
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// tuiPrompter implements Prompter with huh forms.
	tuiPrompter struct {
		cfg tui.Config
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		Prompt: deps.Prompt,
		runner: deps.Runner,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// setupLogging installs a charmbracelet/log logger as the slog default so
// packages can log through log/slog.
func (a *App) setupLogging() {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: "envy",
		Level:  level,
	})
	slog.SetDefault(slog.New(a.logger))
}

// loadConfig loads and memoizes the configuration for this invocation.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId)
	}
	if cfg.UI.Verbose && !a.verbose {
		a.verbose = true
		if a.logger != nil {
			a.logger.SetLevel(log.DebugLevel)
		}
	}
	a.cfg = cfg
	return cfg, nil
}

// manager builds the Manager for this invocation from the loaded configuration.
func (a *App) manager(ctx context.Context) (*manager.Manager, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		if errors.Is(err, catalog.ErrCorrupt) {
			ae := issue.WrapWithContext(err, "load bundle catalog", cfg.CatalogPath)
			ae.Suggestions = []string{"Fix the JSON by hand or move the file aside to start over"}
			return nil, newServiceError(ae, issue.CatalogCorruptId)
		}
		return nil, err
	}

	runner := a.runner
	if runner == nil {
		runner = manager.RuntimeRunner{
			Registry: runtime.BuildRegistry(),
			Type:     runtime.TypeFor(cfg),
			Shell:    runtime.DefaultShell(),
		}
	}

	return manager.New(manager.Options{
		Store:     envstore.New(cfg.EnvRoot),
		Catalog:   cat,
		Locator:   locator.New(cfg.Locator.ProbeTimeout, cfg.Locator.ExtraCandidates...),
		Runner:    runner,
		Installer: cfg.Installer,
		Bootstrap: cfg.Bootstrap,
		IO:        runtime.IOContext{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr},
	}), nil
}

// prompter returns the injected Prompter or a huh-backed one honoring ui.* settings.
func (a *App) prompter() Prompter {
	if a.Prompt != nil {
		return a.Prompt
	}
	cfg := tui.DefaultConfig()
	if a.cfg != nil {
		cfg.Theme = tui.ParseTheme(a.cfg.UI.Theme)
		if a.cfg.UI.Accessible {
			cfg.Accessible = true
			cfg.Output = os.Stderr
		}
	}
	a.Prompt = tuiPrompter{cfg: cfg}
	return a.Prompt
}

func (p tuiPrompter) Select(title string, options []tui.Option[string]) (string, error) {
	return tui.Choose(tui.ChooseOptions[string]{Title: title, Options: options, Config: p.cfg})
}

func (p tuiPrompter) Confirm(title string, def bool) (bool, error) {
	return tui.Confirm(tui.ConfirmOptions{Title: title, Default: def, Config: p.cfg})
}

func (p tuiPrompter) Input(title, placeholder string) (string, error) {
	return tui.Input(tui.InputOptions{
		Title:       title,
		Placeholder: placeholder,
		Validate:    tui.NotEmpty,
		Config:      p.cfg,
	})
}
