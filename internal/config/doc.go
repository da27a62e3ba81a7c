// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/envy/config.cue on Linux,
// ~/Library/Application Support/envy/config.cue on macOS and
// %APPDATA%\envy\config.cue on Windows. Values are validated against the
// embedded CUE schema (config_schema.cue), merged over built-in defaults,
// and may be overridden with ENVY_* environment variables.
package config
