// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestRuntimeMode_Validate(t *testing.T) {
	for _, mode := range []RuntimeMode{RuntimeNative, RuntimeVirtual} {
		if err := mode.Validate(); err != nil {
			t.Errorf("%s.Validate() = %v, want nil", mode, err)
		}
	}

	err := RuntimeMode("container").Validate()
	if !errors.Is(err, ErrInvalidRuntimeMode) {
		t.Fatalf("expected ErrInvalidRuntimeMode, got %v", err)
	}
	var rmErr *InvalidRuntimeModeError
	if !errors.As(err, &rmErr) || rmErr.Value != "container" {
		t.Errorf("expected InvalidRuntimeModeError{container}, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			EnvRoot:     "/envs",
			CatalogPath: "/bundles.json",
			Runtime:     RuntimeNative,
			Installer:   []string{"uv", "pip", "install"},
			Bootstrap:   DefaultBootstrap(),
			Locator:     LocatorConfig{ProbeTimeout: DefaultProbeTimeout},
			UI:          UIConfig{Theme: "charm"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty env root", func(c *Config) { c.EnvRoot = "" }},
		{"empty catalog path", func(c *Config) { c.CatalogPath = "" }},
		{"bad runtime", func(c *Config) { c.Runtime = "docker" }},
		{"empty installer", func(c *Config) { c.Installer = nil }},
		{"empty bootstrap command", func(c *Config) { c.Bootstrap = [][]string{{}} }},
		{"zero probe timeout", func(c *Config) { c.Locator.ProbeTimeout = 0 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			var cfgErr *InvalidConfigError
			if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 1 {
				t.Errorf("expected exactly one field error, got %v", err)
			}
		})
	}
}
