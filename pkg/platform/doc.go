// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS names, the PATH list separator, and the Windows
// reserved filenames that cannot be used as environment directory names.
package platform
