// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"envy-cli/internal/envstore"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type (
	// listing is the machine-readable form of `envy list`.
	listing struct {
		Environments []listedEnvironment `json:"environments" yaml:"environments"`
		Bundles      map[string][]string `json:"bundles" yaml:"bundles"`
	}

	listedEnvironment struct {
		Name string `json:"name" yaml:"name"`
		Path string `json:"path" yaml:"path"`
	}
)

// newListCommand creates the `envy list` command.
func newListCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List environments and bundles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.manager(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			envs, err := mgr.Environments()
			if err != nil {
				return app.fail(cmd, err)
			}
			return app.fail(cmd, renderListing(app.stdout, format, envs, mgr.Bundles()))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatText, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newListing(envs []envstore.Environment, bundles map[string][]string) listing {
	l := listing{
		Environments: make([]listedEnvironment, 0, len(envs)),
		Bundles:      bundles,
	}
	if l.Bundles == nil {
		l.Bundles = map[string][]string{}
	}
	for _, env := range envs {
		l.Environments = append(l.Environments, listedEnvironment{Name: env.Name, Path: env.Path})
	}
	return l
}

func renderListing(w io.Writer, format string, envs []envstore.Environment, bundles map[string][]string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newListing(envs, bundles))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newListing(envs, bundles)); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		renderListingText(w, envs, bundles)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatText, formatJSON, formatYAML)
	}
}

func renderListingText(w io.Writer, envs []envstore.Environment, bundles map[string][]string) {
	fmt.Fprintln(w, TitleStyle.Render("Environments"))
	if len(envs) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, env := range envs {
		fmt.Fprintf(w, "  %s\n", CmdStyle.Render(env.Name))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Bundles"))
	if len(bundles) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, name := range slices.Sorted(maps.Keys(bundles)) {
		fmt.Fprintf(w, "  %s: %s\n", CmdStyle.Render(name), strings.Join(bundles[name], ", "))
	}
}
