// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"envy-cli/internal/envstore"
	"envy-cli/internal/issue"
	"envy-cli/internal/locator"
	"envy-cli/internal/manager"
	"envy-cli/internal/tui"

	"github.com/spf13/cobra"
)

type createFlags struct {
	python   string
	bundle   string
	noBundle bool
	noShell  bool
}

// newCreateCommand creates the `envy create` command.
func newCreateCommand(app *App) *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:   "create <env_name>",
		Short: "Create a virtual environment and open a shell in it",
		Long: `Create a named virtual environment.

envy asks which discovered Python interpreter to use and whether to install
a bundle, creates the environment, upgrades pip, installs uv, installs the
bundle packages and finally opens a shell with the environment activated.

` + SubtitleStyle.Render("Examples:") + `
  envy create demo
  envy create demo --python 3.12 --bundle basic-ml
  envy create ci --python /usr/bin/python3 --no-bundle --no-shell`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(cmd, runCreate(cmd.Context(), app, args[0], flags))
		},
	}

	cmd.Flags().StringVar(&flags.python, "python", "", "interpreter path or version to use (skips the prompt)")
	cmd.Flags().StringVar(&flags.bundle, "bundle", "", "bundle to install (skips the prompt)")
	cmd.Flags().BoolVar(&flags.noBundle, "no-bundle", false, "do not install a bundle")
	cmd.Flags().BoolVar(&flags.noShell, "no-shell", false, "do not open a shell after creating")
	cmd.MarkFlagsMutuallyExclusive("bundle", "no-bundle")

	return cmd
}

func runCreate(ctx context.Context, app *App, name string, flags createFlags) error {
	if err := envstore.ValidateName(name); err != nil {
		return err
	}

	mgr, err := app.manager(ctx)
	if err != nil {
		return err
	}

	if mgr.Exists(name) {
		fmt.Fprintf(app.stdout, "Environment %s already exists.\n", CmdStyle.Render(name))
		return nil
	}

	interpreter, err := app.chooseInterpreter(ctx, mgr, flags.python)
	if err != nil {
		return err
	}

	bundle, err := app.chooseBundle(mgr, flags)
	if err != nil {
		return err
	}

	env, err := mgr.Create(ctx, manager.CreateRequest{
		Name:        name,
		Interpreter: interpreter,
		Bundle:      bundle,
	})
	if errors.Is(err, manager.ErrBundleIncomplete) {
		// The environment is usable; report the packages after the shell exits.
		fmt.Fprintf(app.stderr, "%s environment %s was created but some packages of %s failed to install\n",
			WarningStyle.Render("!"), env.Name, bundle)
		if !flags.noShell {
			if shellErr := mgr.OpenShell(ctx, env); shellErr != nil {
				return errors.Join(err, shellErr)
			}
		}
		return err
	}
	if err != nil {
		if env.Path != "" {
			fmt.Fprintf(app.stderr, "%s environment %s was created at %s but setup did not finish\n",
				WarningStyle.Render("!"), env.Name, env.Path)
		}
		return err
	}

	fmt.Fprintf(app.stdout, "%s Environment %s created at %s\n",
		SuccessStyle.Render("✓"), CmdStyle.Render(env.Name), env.Path)

	if flags.noShell {
		return nil
	}
	return mgr.OpenShell(ctx, env)
}

// chooseInterpreter resolves --python or prompts for one of the discovered
// interpreters. An existing file path is used without scanning.
func (a *App) chooseInterpreter(ctx context.Context, mgr *manager.Manager, selector string) (string, error) {
	if selector != "" {
		if info, err := os.Stat(selector); err == nil && !info.IsDir() {
			return selector, nil
		}
	}

	found, err := mgr.Interpreters(ctx)
	if err != nil {
		return "", err
	}
	if err := found.Require(); err != nil {
		return "", err
	}

	if selector != "" {
		in, ok := found.Lookup(selector)
		if !ok {
			return "", newServiceError(issue.NewErrorContext().
				WithOperation("select interpreter").
				WithResource(selector).
				WithSuggestion("Run 'envy pythons' to see the interpreters envy can find").
				Wrap(locator.ErrNoInterpreters).
				BuildError(), issue.NoInterpretersId)
		}
		return in.Path, nil
	}

	choices := found.Choices()
	options := make([]tui.Option[string], 0, len(choices))
	for _, in := range choices {
		options = append(options, tui.Option[string]{
			Title: fmt.Sprintf("%s (%s)", in.Version, in.Path),
			Value: in.Path,
		})
	}
	return a.prompter().Select("Which Python version do you want to use?", options)
}

// chooseBundle resolves --bundle/--no-bundle or asks whether to install one.
// Returns "" when no bundle should be installed.
func (a *App) chooseBundle(mgr *manager.Manager, flags createFlags) (string, error) {
	switch {
	case flags.noBundle:
		return "", nil
	case flags.bundle != "":
		return flags.bundle, nil
	}

	names := mgr.BundleNames()
	if len(names) == 0 {
		return "", nil
	}

	install, err := a.prompter().Confirm("Do you want to install a bundle?", false)
	if err != nil || !install {
		return "", err
	}

	options := make([]tui.Option[string], 0, len(names))
	for _, n := range names {
		options = append(options, tui.Option[string]{Title: n, Value: n})
	}
	bundle, err := a.prompter().Select("Which bundle do you want to install?", options)
	if errors.Is(err, tui.ErrNoOptions) {
		return "", nil
	}
	return bundle, err
}
