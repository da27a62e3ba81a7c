// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"envy-cli/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	c, err := Open(filepath.Join(t.TempDir(), "bundles.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if c.Len() != 0 || len(c.Names()) != 0 {
		t.Errorf("Open(missing) = %v bundles, want 0", c.Len())
	}
}

func TestOpen_Corrupt(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"not json":    "{not json",
		"wrong shape": `{"ml": "numpy"}`,
		"array":       `["numpy"]`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "bundles.json")
			testutil.MustWriteFile(t, path, []byte(content), 0o644)

			if _, err := Open(path); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Open() error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestDefine_BasicML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundles.json")
	testutil.MustWriteFile(t, path, []byte("{}"), 0o644)

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.Define("basic-ml", ParsePackages("numpy,pandas")); err != nil {
		t.Fatalf("Define() error = %v", err)
	}

	var onDisk map[string][]string
	if err := json.Unmarshal(testutil.MustReadFile(t, path), &onDisk); err != nil {
		t.Fatalf("catalog file is not JSON: %v", err)
	}
	want := map[string][]string{"basic-ml": {"numpy", "pandas"}}
	if diff := cmp.Diff(want, onDisk); diff != "" {
		t.Errorf("catalog file mismatch (-want +got):\n%s", diff)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open() reload error = %v", err)
	}
	if diff := cmp.Diff(want, reloaded.All()); diff != "" {
		t.Errorf("reloaded catalog mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestDefine_OverwritesAndListsNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "bundles.json")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := c.Define("web", []string{"flask"}); err != nil {
		t.Fatalf("Define(web) error = %v", err)
	}
	if err := c.Define("data", []string{"numpy"}); err != nil {
		t.Fatalf("Define(data) error = %v", err)
	}
	if err := c.Define("web", []string{"django", "gunicorn"}); err != nil {
		t.Fatalf("Define(web) overwrite error = %v", err)
	}

	if diff := cmp.Diff([]string{"data", "web"}, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	got, ok := c.Get("web")
	if !ok {
		t.Fatal("Get(web) not found")
	}
	if diff := cmp.Diff([]string{"django", "gunicorn"}, got); diff != "" {
		t.Errorf("Get(web) mismatch (-want +got):\n%s", diff)
	}

	got[0] = "mutated"
	if again, _ := c.Get("web"); again[0] != "django" {
		t.Error("Get() returned a slice aliasing catalog state")
	}
}

func TestDefine_Invalid(t *testing.T) {
	t.Parallel()

	c, err := Open(filepath.Join(t.TempDir(), "bundles.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	tests := []struct {
		name     string
		bundle   string
		packages []string
	}{
		{"empty name", "  ", []string{"numpy"}},
		{"no packages", "ml", nil},
		{"blank package", "ml", []string{"numpy", " "}},
	}
	for _, tt := range tests {
		if err := c.Define(tt.bundle, tt.packages); !errors.Is(err, ErrInvalidBundle) {
			t.Errorf("%s: Define() error = %v, want ErrInvalidBundle", tt.name, err)
		}
	}
	if _, err := os.Stat(c.Path()); !os.IsNotExist(err) {
		t.Error("invalid Define() wrote the catalog file")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundles.json")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.Define("ml", []string{"numpy"}); err != nil {
		t.Fatalf("Define() error = %v", err)
	}

	if err := c.Remove("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(ghost) error = %v, want ErrNotFound", err)
	}
	if err := c.Remove("ml"); err != nil {
		t.Fatalf("Remove(ml) error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Remove, want 0", c.Len())
	}
	if got := string(testutil.MustReadFile(t, path)); got != "{}\n" {
		t.Errorf("catalog file = %q, want %q", got, "{}\n")
	}
}

func TestDefine_KeepsConcurrentUpdates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundles.json")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	second, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := first.Define("a", []string{"one"}); err != nil {
		t.Fatalf("first.Define() error = %v", err)
	}
	// second was opened before first saved; its save must not drop "a".
	if err := second.Define("b", []string{"two"}); err != nil {
		t.Fatalf("second.Define() error = %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open() reload error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, reloaded.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefine_ParallelWriters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bundles.json")
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	errs := make(chan error, len(names))
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := Open(path)
			if err != nil {
				errs <- err
				return
			}
			errs <- c.Define(name, []string{name + "-pkg"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Define() error = %v", err)
		}
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open() reload error = %v", err)
	}
	if diff := cmp.Diff(names, reloaded.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
