// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current process runs on Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// PathListSeparatorFor returns the PATH list separator used by goos.
func PathListSeparatorFor(goos string) string {
	if goos == Windows {
		return ";"
	}
	return ":"
}
