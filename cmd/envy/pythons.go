// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPythonsCommand creates the `envy pythons` command.
func newPythonsCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "pythons",
		Short: "List the Python interpreters found on PATH",
		Long: `List the Python interpreters found by scanning PATH, newest first.

When several executables report the same version only the last one found is
used. Pass --all to print every executable that answered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			found, err := mgr.Interpreters(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			if err := found.Require(); err != nil {
				return app.fail(cmd, err)
			}

			interpreters := found.Choices()
			if all {
				interpreters = found.Interpreters()
			}
			for _, in := range interpreters {
				fmt.Fprintf(app.stdout, "%s  %s\n", SuccessStyle.Render(in.Version), in.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "show every executable, including shadowed duplicates")

	return cmd
}
