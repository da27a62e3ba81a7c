// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"envy-cli/internal/issue"
	"envy-cli/pkg/cueutil"
	"envy-cli/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "envy"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides (ENVY_ENV_ROOT, ...).
	EnvPrefix = "ENVY"

	// maxConfigFileSize guards against accidentally pointing --config at a huge file.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the envy configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DataDir returns the directory envy keeps environments in: %LOCALAPPDATA%
// on Windows, ~/Library/Application Support on macOS and $XDG_DATA_HOME
// (defaulting to ~/.local/share) elsewhere.
func DataDir() (string, error) {
	if dataDirOverride != "" {
		return dataDirOverride, nil
	}

	var dataDir string

	switch runtime.GOOS {
	case platform.Windows:
		dataDir = os.Getenv("LOCALAPPDATA")
		if dataDir == "" {
			dataDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, "Library", "Application Support")
	default:
		dataDir = os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(dataDir, AppName), nil
}

// FilePath returns the config file path inside cfgDir.
func FilePath(cfgDir string) string {
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("env_root", defaults.EnvRoot)
	v.SetDefault("catalog_path", defaults.CatalogPath)
	v.SetDefault("runtime", string(defaults.Runtime))
	v.SetDefault("installer", defaults.Installer)
	v.SetDefault("bootstrap", defaults.Bootstrap)
	v.SetDefault("locator.probe_timeout", defaults.Locator.ProbeTimeout)
	v.SetDefault("locator.extra_candidates", defaults.Locator.ExtraCandidates)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.accessible", defaults.UI.Accessible)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'envy config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", cueLoadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := FilePath(cfgDir)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", cueLoadError(cuePath, err)
			}
			resolvedPath = cuePath
		}
		// No config file: defaults and environment overrides only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// ENVY_INSTALLER="uv pip install" arrives as a single word.
	if len(cfg.Installer) == 1 && strings.ContainsAny(cfg.Installer[0], " \t") {
		cfg.Installer = strings.Fields(cfg.Installer[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check ENVY_* environment variables for typos").
			WithSuggestion("Run 'envy config show' to inspect the effective values").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func cueLoadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestions(
			"Check that the file contains valid CUE syntax",
			"Verify the configuration values match the expected schema",
			"See 'envy config --help' for configuration options",
		).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	configMap, err := cueutil.Decode[map[string]any](configSchema, "#Config", data,
		cueutil.WithFilename(path),
		cueutil.WithMaxSize(maxConfigFileSize))
	if err != nil {
		return err
	}

	// Merge preserves defaults and leaves room for ENVY_* overrides.
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file unless one exists, and
// returns its path.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := FilePath(cfgDir)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// envy configuration file\n\n")

	fmt.Fprintf(&sb, "env_root: %q\n", cfg.EnvRoot)
	fmt.Fprintf(&sb, "catalog_path: %q\n", cfg.CatalogPath)
	fmt.Fprintf(&sb, "runtime: %q\n", cfg.Runtime)
	fmt.Fprintf(&sb, "installer: %s\n", cueStringList(cfg.Installer))

	sb.WriteString("\nbootstrap: [\n")
	for _, cmd := range cfg.Bootstrap {
		fmt.Fprintf(&sb, "\t%s,\n", cueStringList(cmd))
	}
	sb.WriteString("]\n")

	sb.WriteString("\nlocator: {\n")
	fmt.Fprintf(&sb, "\tprobe_timeout: %q\n", cfg.Locator.ProbeTimeout.String())
	if len(cfg.Locator.ExtraCandidates) > 0 {
		fmt.Fprintf(&sb, "\textra_candidates: %s\n", cueStringList(cfg.Locator.ExtraCandidates))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	if cfg.UI.Theme != "" {
		fmt.Fprintf(&sb, "\ttheme: %q\n", cfg.UI.Theme)
	}
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	sb.WriteString("}\n")

	return sb.String()
}

func cueStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
