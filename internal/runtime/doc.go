// SPDX-License-Identifier: MPL-2.0

// Package runtime runs argv command chains, optionally inside an activated
// virtual environment.
//
// Activation does not source the venv activation script. The child process
// environment is built directly instead: VIRTUAL_ENV and VIRTUAL_ENV_PROMPT
// are set, the environment's bin directory is prepended to PATH and
// PYTHONHOME is removed. Commands of a chain run in order and the first
// failure stops the chain.
//
// Two runtimes are provided. The native runtime executes each argv directly
// with os/exec. The virtual runtime assembles the chain into an mvdan/sh
// syntax tree and runs it with the embedded interpreter.
package runtime
