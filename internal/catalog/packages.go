// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNoDependencies is returned when a pyproject.toml lists no dependencies.
var ErrNoDependencies = errors.New("pyproject.toml declares no dependencies")

// pyproject holds the subset of PEP 621 metadata envy reads.
type pyproject struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// ParsePackages splits a comma-separated package list. Items are trimmed and
// empty items dropped, so "numpy, pandas," yields [numpy pandas].
func ParsePackages(csv string) []string {
	var pkgs []string
	for item := range strings.SplitSeq(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			pkgs = append(pkgs, item)
		}
	}
	return pkgs
}

// ImportPyproject reads [project].dependencies from a pyproject.toml file.
// The project name is returned as a suggested bundle name.
func ImportPyproject(path string) (name string, packages []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, dep := range doc.Project.Dependencies {
		if dep = strings.TrimSpace(dep); dep != "" {
			packages = append(packages, dep)
		}
	}
	if len(packages) == 0 {
		return "", nil, fmt.Errorf("%s: %w", path, ErrNoDependencies)
	}
	return doc.Project.Name, packages, nil
}
