// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// newInstallCommand creates the `envy install` command.
func newInstallCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "install <package>",
		Short: "Install a package into the active environment",
		Long: `Install a package with the configured installer (uv pip install by
default) into the environment envy is running in. Run it from a shell opened
by 'envy activate' to target that environment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			return app.fail(cmd, mgr.Install(cmd.Context(), args[0]))
		},
	}
}
