// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"envy-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `envy config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage envy configuration",
		Long: `Manage envy configuration.

Configuration is stored in:
  - Linux: ~/.config/envy/config.cue
  - macOS: ~/Library/Application Support/envy/config.cue
  - Windows: %APPDATA%\envy\config.cue

Every key can be overridden with an ENVY_ environment variable, for example
ENVY_ENV_ROOT or ENVY_CATALOG_PATH.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(cmd, showConfig(cmd.Context(), app))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration file: %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath(app)
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

// configFilePath returns the file the configuration is, or would be, read from.
func configFilePath(app *App) (string, error) {
	path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil || path != "" {
		return path, err
	}
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return config.FilePath(cfgDir), nil
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	resolved, _ := config.ResolvePath(config.LoadOptions{ConfigFilePath: app.configPath})
	if resolved != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), resolved)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("env_root"), valueStyle.Render(cfg.EnvRoot))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("catalog_path"), valueStyle.Render(cfg.CatalogPath))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("runtime"), valueStyle.Render(cfg.Runtime.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("installer"), valueStyle.Render(strings.Join(cfg.Installer, " ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("bootstrap"))
	if len(cfg.Bootstrap) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, argv := range cfg.Bootstrap {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(strings.Join(argv, " ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("locator"))
	fmt.Fprintf(w, "  probe_timeout: %s\n", valueStyle.Render(cfg.Locator.ProbeTimeout.String()))
	if len(cfg.Locator.ExtraCandidates) > 0 {
		fmt.Fprintf(w, "  extra_candidates: %s\n", valueStyle.Render(strings.Join(cfg.Locator.ExtraCandidates, ", ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	if cfg.UI.Theme != "" {
		fmt.Fprintf(w, "  theme: %s\n", valueStyle.Render(cfg.UI.Theme))
	}
	fmt.Fprintf(w, "  accessible: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Accessible)))

	return nil
}
