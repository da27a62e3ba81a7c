// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"envy-cli/internal/manager"

	"github.com/spf13/cobra"
)

// newActivateCommand creates the `envy activate` command.
func newActivateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <env_name>",
		Short: "Open a shell with an environment activated",
		Long: `Open an interactive shell with the named environment activated.

The shell inherits the current environment with VIRTUAL_ENV set and the
environment's bin directory first on PATH. Exit the shell to return.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironments(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}

			name := args[0]
			err = mgr.Activate(cmd.Context(), name)
			if manager.IsEnvironmentNotFound(err) {
				fmt.Fprintf(app.stdout, "Environment %s does not exist.\n", name)
				return nil
			}
			return app.fail(cmd, err)
		},
	}
}

// completeEnvironments completes environment names for positional arguments.
func completeEnvironments(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		mgr, err := app.manager(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		envs, err := mgr.Environments()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names := make([]string, 0, len(envs))
		for _, env := range envs {
			names = append(names, env.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
