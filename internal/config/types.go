// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

const (
	// RuntimeNative runs environment commands directly with os/exec.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs environment commands through the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// DefaultProbeTimeout bounds a single `python --version` probe.
	DefaultProbeTimeout = 5 * time.Second

	// CatalogFileName is the default bundle catalog file name.
	CatalogFileName = "bundles.json"
	// EnvsDirName is the default environment root directory name.
	EnvsDirName = "envs"
)

var (
	// ErrInvalidRuntimeMode is returned when a RuntimeMode value is not recognized.
	ErrInvalidRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	validThemes = map[string]bool{
		"default": true, "charm": true, "dracula": true, "catppuccin": true, "base16": true,
	}
)

type (
	// RuntimeMode selects the command runner used inside environments.
	RuntimeMode string

	// InvalidRuntimeModeError is returned when a RuntimeMode value is not recognized.
	// It wraps ErrInvalidRuntimeMode for errors.Is() compatibility.
	InvalidRuntimeModeError struct {
		Value RuntimeMode
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// EnvRoot is the directory holding one subdirectory per environment.
		EnvRoot string `json:"env_root" mapstructure:"env_root"`
		// CatalogPath is the bundle catalog JSON file.
		CatalogPath string `json:"catalog_path" mapstructure:"catalog_path"`
		// Runtime selects the command runner.
		Runtime RuntimeMode `json:"runtime" mapstructure:"runtime"`
		// Installer is the argv prefix for `envy install`.
		Installer []string `json:"installer" mapstructure:"installer"`
		// Bootstrap lists the commands issued in a freshly created environment.
		Bootstrap [][]string `json:"bootstrap" mapstructure:"bootstrap"`
		// Locator configures interpreter discovery.
		Locator LocatorConfig `json:"locator" mapstructure:"locator"`
		// UI configures user interface settings.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// LocatorConfig configures interpreter discovery.
	LocatorConfig struct {
		// ProbeTimeout bounds each `--version` probe.
		ProbeTimeout time.Duration `json:"probe_timeout" mapstructure:"probe_timeout"`
		// ExtraCandidates are executable names tried after the built-in list.
		ExtraCandidates []string `json:"extra_candidates" mapstructure:"extra_candidates"`
	}

	// UIConfig configures prompts and output.
	UIConfig struct {
		Verbose    bool   `json:"verbose" mapstructure:"verbose"`
		Theme      string `json:"theme" mapstructure:"theme"`
		Accessible bool   `json:"accessible" mapstructure:"accessible"`
	}
)

// Error implements the error interface.
func (e *InvalidRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns ErrInvalidRuntimeMode for errors.Is() compatibility.
func (e *InvalidRuntimeModeError) Unwrap() error { return ErrInvalidRuntimeMode }

// Validate returns an error if the RuntimeMode is not recognized.
func (m RuntimeMode) Validate() error {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return nil
	default:
		return &InvalidRuntimeModeError{Value: m}
	}
}

// String returns the string representation of the RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is/As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks the constraints that environment overrides can bypass in
// the CUE schema.
func (c *Config) Validate() error {
	var errs []error
	if c.EnvRoot == "" {
		errs = append(errs, errors.New("env_root must not be empty"))
	}
	if c.CatalogPath == "" {
		errs = append(errs, errors.New("catalog_path must not be empty"))
	}
	if err := c.Runtime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Installer) == 0 || c.Installer[0] == "" {
		errs = append(errs, errors.New("installer must name a program"))
	}
	for i, cmd := range c.Bootstrap {
		if len(cmd) == 0 || cmd[0] == "" {
			errs = append(errs, fmt.Errorf("bootstrap[%d] must name a program", i))
		}
	}
	if c.Locator.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("locator.probe_timeout must be positive, got %s", c.Locator.ProbeTimeout))
	}
	if c.UI.Theme != "" && !validThemes[c.UI.Theme] {
		errs = append(errs, fmt.Errorf("unknown ui.theme %q", c.UI.Theme))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultBootstrap returns the commands issued in every new environment:
// upgrade pip, then install uv.
func DefaultBootstrap() [][]string {
	return [][]string{
		{"pip", "install", "--upgrade", "pip"},
		{"pip", "install", "uv"},
	}
}

// DefaultConfig returns the default configuration. Paths that cannot be
// resolved (no home directory) are left empty and rejected by Validate.
func DefaultConfig() *Config {
	cfg := &Config{
		Runtime:   RuntimeNative,
		Installer: []string{"uv", "pip", "install"},
		Bootstrap: DefaultBootstrap(),
		Locator: LocatorConfig{
			ProbeTimeout:    DefaultProbeTimeout,
			ExtraCandidates: []string{},
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
	if dir, err := DataDir(); err == nil {
		cfg.EnvRoot = filepath.Join(dir, EnvsDirName)
	}
	if dir, err := ConfigDir(); err == nil {
		cfg.CatalogPath = filepath.Join(dir, CatalogFileName)
	}
	return cfg
}
