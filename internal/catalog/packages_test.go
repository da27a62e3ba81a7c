// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"envy-cli/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestParsePackages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"numpy,pandas", []string{"numpy", "pandas"}},
		{" numpy , pandas>=2.0 ", []string{"numpy", "pandas>=2.0"}},
		{"numpy,,pandas,", []string{"numpy", "pandas"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParsePackages(tt.in)); diff != "" {
			t.Errorf("ParsePackages(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestImportPyproject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	testutil.MustWriteFile(t, path, []byte(`[build-system]
requires = ["hatchling"]

[project]
name = "analysis"
version = "0.1.0"
dependencies = [
  "numpy>=1.26",
  "pandas",
  "requests[socks]",
]
`), 0o644)

	name, pkgs, err := ImportPyproject(path)
	if err != nil {
		t.Fatalf("ImportPyproject() error = %v", err)
	}
	if name != "analysis" {
		t.Errorf("name = %q, want %q", name, "analysis")
	}
	if diff := cmp.Diff([]string{"numpy>=1.26", "pandas", "requests[socks]"}, pkgs); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestImportPyproject_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.toml")
	testutil.MustWriteFile(t, empty, []byte("[project]\nname = \"x\"\n"), 0o644)
	if _, _, err := ImportPyproject(empty); !errors.Is(err, ErrNoDependencies) {
		t.Errorf("ImportPyproject(no deps) error = %v, want ErrNoDependencies", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	testutil.MustWriteFile(t, broken, []byte("[project\n"), 0o644)
	if _, _, err := ImportPyproject(broken); err == nil {
		t.Error("ImportPyproject(broken) error = nil, want parse error")
	}

	if _, _, err := ImportPyproject(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("ImportPyproject(missing) error = nil, want error")
	}
}
