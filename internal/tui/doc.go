// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive prompts used by envy. It wraps
// charmbracelet/huh forms and falls back to accessible (plain line-based)
// prompts when stdin is not a terminal.
package tui
