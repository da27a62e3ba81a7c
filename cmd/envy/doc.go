// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for envy.
//
// Handlers gather choices (flags first, interactive prompts otherwise) and
// delegate to internal/manager, which never prompts.
package cmd
