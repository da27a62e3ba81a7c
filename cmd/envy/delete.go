// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newDeleteCommand creates the `envy delete` command.
func newDeleteCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "delete <env_name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a virtual environment",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeEnvironments(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(cmd, runDelete(cmd.Context(), app, args[0], yes))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")

	return cmd
}

func runDelete(ctx context.Context, app *App, name string, yes bool) error {
	mgr, err := app.manager(ctx)
	if err != nil {
		return err
	}

	if !mgr.Exists(name) {
		fmt.Fprintf(app.stdout, "Environment %s does not exist.\n", name)
		return nil
	}

	if !yes {
		ok, err := app.prompter().Confirm(fmt.Sprintf("Are you sure you want to delete %s?", name), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("Aborted."))
			return nil
		}
	}

	if err := mgr.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Environment %s deleted.\n", name)
	return nil
}
