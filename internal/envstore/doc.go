// SPDX-License-Identifier: MPL-2.0

// Package envstore manages named virtual environments as directories under a
// single root. The filesystem is the source of truth: every immediate
// subdirectory of the root is an environment.
package envstore
