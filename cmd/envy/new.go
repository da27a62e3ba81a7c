// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"envy-cli/internal/catalog"

	"github.com/spf13/cobra"
)

type newFlags struct {
	name          string
	packages      string
	fromPyproject string
	delete        string
}

// newNewCommand creates the `envy new` command.
func newNewCommand(app *App) *cobra.Command {
	var flags newFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Define a package bundle",
		Long: `Define a named bundle of packages that 'envy create' can install into
new environments. Defining an existing name replaces its packages.

` + SubtitleStyle.Render("Examples:") + `
  envy new
  envy new --name basic-ml --packages numpy,pandas
  envy new --from-pyproject ./pyproject.toml
  envy new --delete basic-ml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(cmd, runNew(cmd.Context(), app, flags))
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "bundle name (skips the prompt)")
	cmd.Flags().StringVar(&flags.packages, "packages", "", "comma-separated packages (skips the prompt)")
	cmd.Flags().StringVar(&flags.fromPyproject, "from-pyproject", "", "read packages from a pyproject.toml")
	cmd.Flags().StringVar(&flags.delete, "delete", "", "delete the named bundle")
	cmd.MarkFlagsMutuallyExclusive("packages", "from-pyproject")
	cmd.MarkFlagsMutuallyExclusive("delete", "name")
	cmd.MarkFlagsMutuallyExclusive("delete", "packages")
	cmd.MarkFlagsMutuallyExclusive("delete", "from-pyproject")

	return cmd
}

func runNew(ctx context.Context, app *App, flags newFlags) error {
	mgr, err := app.manager(ctx)
	if err != nil {
		return err
	}

	if flags.delete != "" {
		if err := mgr.RemoveBundle(flags.delete); err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, "Bundle %s deleted.\n", flags.delete)
		return nil
	}

	name := flags.name
	var packages []string

	if flags.fromPyproject != "" {
		projectName, pkgs, err := catalog.ImportPyproject(flags.fromPyproject)
		if err != nil {
			return err
		}
		if name == "" {
			name = projectName
		}
		packages = pkgs
	}

	if name == "" {
		if name, err = app.prompter().Input("Name of the bundle", "basic-ml"); err != nil {
			return err
		}
	}

	if packages == nil {
		csv := flags.packages
		if csv == "" {
			if csv, err = app.prompter().Input("Packages (comma-separated)", "numpy,pandas"); err != nil {
				return err
			}
		}
		packages = catalog.ParsePackages(csv)
	}

	if err := mgr.DefineBundle(name, packages); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Bundle %s created.\n", name)
	return nil
}
