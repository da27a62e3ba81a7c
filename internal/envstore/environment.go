// SPDX-License-Identifier: MPL-2.0

package envstore

import (
	"path/filepath"

	"envy-cli/pkg/platform"
)

// BinDir returns the directory holding the environment's executables.
func (e Environment) BinDir() string {
	return e.binDirFor(platform.IsWindows())
}

func (e Environment) binDirFor(windows bool) string {
	if windows {
		return filepath.Join(e.Path, "Scripts")
	}
	return filepath.Join(e.Path, "bin")
}
