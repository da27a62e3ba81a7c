// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"envy-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the envy command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "envy",
		Short: "Manage Python virtual environments and package bundles",
		Long: TitleStyle.Render("envy") + SubtitleStyle.Render(" - Python virtual environments and package bundles") + `

envy keeps named virtual environments in one place, opens shells inside
them, and remembers named bundles of packages to install into new ones.

` + SubtitleStyle.Render("Examples:") + `
  envy create demo          Create an environment and open a shell in it
  envy activate demo        Open a shell inside an existing environment
  envy new                  Define a package bundle
  envy list                 Show environments and bundles
  envy delete demo          Remove an environment`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setupLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/envy/config.cue)")

	rootCmd.AddCommand(
		newCreateCommand(app),
		newActivateCommand(app),
		newInstallCommand(app),
		newListCommand(app),
		newNewCommand(app),
		newDeleteCommand(app),
		newPythonsCommand(app),
		newConfigCommand(app),
		newCompletionCommand(),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// fail reports err on stderr with its issue help, if any, and returns an
// ExitError so fang does not print it a second time. Child failures keep the
// child's exit code.
func (a *App) fail(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	err = classifyError(err)

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(a.stderr, svcErr)
	}
	fmt.Fprintf(a.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, a.verbose))
	cmd.SilenceErrors = true

	if exitErr, ok := exitErrorFor(err).(*ExitError); ok {
		return exitErr
	}
	return &ExitError{Code: 1, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
