// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and a
// list of suggestions. The issue catalog maps well-known failure kinds to
// Markdown help text that the CLI renders with glamour.
package issue
