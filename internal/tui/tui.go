// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the default huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("user aborted")

type (
	// Theme represents the visual theme for TUI components.
	Theme string

	// Config holds common configuration for TUI components.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible enables accessible mode for screen readers.
		Accessible bool
		// Input is where answers are read from (default: stdin).
		Input io.Reader
		// Output specifies where to write the component output.
		Output io.Writer
	}
)

// ParseTheme maps a configured theme name to a Theme, falling back to ThemeDefault.
func ParseTheme(name string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(name))); t {
	case ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return t
	default:
		return ThemeDefault
	}
}

// DefaultConfig returns the default configuration for TUI components.
// Accessible mode is enabled when stdin is not a terminal or the ACCESSIBLE
// environment variable is set; prompts then go to stderr so they are not
// captured by command substitution.
func DefaultConfig() Config {
	accessible := !isInputTerminal() || os.Getenv("ACCESSIBLE") != ""

	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Output:     output,
	}
}

// isInputTerminal returns true if stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// getHuhTheme converts a Theme to a huh.Theme.
func getHuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

// runForm applies cfg to a single-field form and runs it.
func runForm(field huh.Field, cfg Config) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(getHuhTheme(cfg.Theme)).
		WithAccessible(cfg.Accessible).
		WithShowHelp(!cfg.Accessible)
	if cfg.Input != nil {
		form = form.WithInput(cfg.Input)
	}
	if cfg.Output != nil {
		form = form.WithOutput(cfg.Output)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

var errEmptyAnswer = errors.New("a value is required")
