// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"testing"
)

func TestParseTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Theme
	}{
		{"", ThemeDefault},
		{"default", ThemeDefault},
		{"Dracula", ThemeDracula},
		{" charm ", ThemeCharm},
		{"catppuccin", ThemeCatppuccin},
		{"base16", ThemeBase16},
		{"solarized", ThemeDefault},
	}
	for _, tt := range tests {
		if got := ParseTheme(tt.in); got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetHuhTheme(t *testing.T) {
	t.Parallel()

	for _, theme := range []Theme{ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16, Theme("unknown")} {
		if getHuhTheme(theme) == nil {
			t.Errorf("getHuhTheme(%q) = nil", theme)
		}
	}
}

func TestDefaultConfig_AccessibleEnv(t *testing.T) {
	t.Setenv("ACCESSIBLE", "1")

	cfg := DefaultConfig()
	if !cfg.Accessible {
		t.Error("DefaultConfig().Accessible = false with ACCESSIBLE set")
	}
	if cfg.Output == nil {
		t.Error("DefaultConfig().Output = nil")
	}
	if cfg.Theme != ThemeDefault {
		t.Errorf("DefaultConfig().Theme = %q, want %q", cfg.Theme, ThemeDefault)
	}
}

func TestChoose_NoOptions(t *testing.T) {
	t.Parallel()

	_, err := Choose(ChooseOptions[string]{Title: "pick"})
	if !errors.Is(err, ErrNoOptions) {
		t.Errorf("Choose() error = %v, want ErrNoOptions", err)
	}
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	if NotEmpty("") == nil {
		t.Error("NotEmpty(\"\") = nil, want error")
	}
	if err := NotEmpty("x"); err != nil {
		t.Errorf("NotEmpty(\"x\") = %v, want nil", err)
	}
}
