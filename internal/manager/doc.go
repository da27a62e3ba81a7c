// SPDX-License-Identifier: MPL-2.0

// Package manager implements envy's operations on already-resolved choices.
// It composes the environment store, the bundle catalog, the interpreter
// locator and a command runner, and never prompts.
package manager
