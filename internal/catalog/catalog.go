// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DefaultLockTimeout bounds how long a save waits for another process.
const DefaultLockTimeout = 10 * time.Second

var (
	// ErrCorrupt is returned when the catalog file is not a valid bundle object.
	ErrCorrupt = errors.New("bundle catalog is corrupt")
	// ErrNotFound is returned when a named bundle does not exist.
	ErrNotFound = errors.New("bundle does not exist")
	// ErrInvalidBundle is returned for an empty name or package list.
	ErrInvalidBundle = errors.New("invalid bundle")
)

type (
	// Catalog is an in-memory view of the bundle file.
	Catalog struct {
		path        string
		lockTimeout time.Duration
		bundles     map[string][]string
	}

	// Option configures a Catalog.
	Option func(*Catalog)
)

// WithLockTimeout overrides DefaultLockTimeout.
func WithLockTimeout(d time.Duration) Option {
	return func(c *Catalog) { c.lockTimeout = d }
}

// Open loads the catalog at path. A missing file is an empty catalog; a file
// that cannot be parsed yields an error wrapping ErrCorrupt.
func Open(path string, opts ...Option) (*Catalog, error) {
	c := &Catalog{path: path, lockTimeout: DefaultLockTimeout}
	for _, opt := range opts {
		opt(c)
	}

	bundles, err := readFile(path)
	if err != nil {
		return nil, err
	}
	c.bundles = bundles
	return c, nil
}

// Path returns the catalog file path.
func (c *Catalog) Path() string { return c.path }

// Names returns the bundle names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.bundles))
}

// Get returns a copy of the package list of name.
func (c *Catalog) Get(name string) ([]string, bool) {
	pkgs, ok := c.bundles[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(pkgs), true
}

// Len returns the number of bundles.
func (c *Catalog) Len() int { return len(c.bundles) }

// All returns a copy of every bundle.
func (c *Catalog) All() map[string][]string {
	out := make(map[string][]string, len(c.bundles))
	for name, pkgs := range c.bundles {
		out[name] = slices.Clone(pkgs)
	}
	return out
}

// Define inserts or replaces the bundle name and saves the catalog.
func (c *Catalog) Define(name string, packages []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidBundle)
	}
	if len(packages) == 0 {
		return fmt.Errorf("%w: bundle %s has no packages", ErrInvalidBundle, name)
	}
	for _, p := range packages {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: bundle %s has an empty package", ErrInvalidBundle, name)
		}
	}

	pkgs := slices.Clone(packages)
	return c.update(func(bundles map[string][]string) error {
		bundles[name] = pkgs
		return nil
	})
}

// Remove deletes the bundle name and saves the catalog.
func (c *Catalog) Remove(name string) error {
	return c.update(func(bundles map[string][]string) error {
		if _, ok := bundles[name]; !ok {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		delete(bundles, name)
		return nil
	})
}

// update applies mutate to the latest on-disk state under the file lock and
// writes the result back.
func (c *Catalog) update(mutate func(map[string][]string) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	lock, err := newFileLock(c.path+".lock", c.lockTimeout)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		_ = lock.Unlock()
		return fmt.Errorf("failed to lock bundle catalog: %w", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			slog.Debug("catalog unlock failed", "error", unlockErr)
		}
	}()

	bundles, err := readFile(c.path)
	if err != nil {
		return err
	}
	if err := mutate(bundles); err != nil {
		return err
	}
	if err := writeFile(c.path, bundles); err != nil {
		return err
	}
	c.bundles = bundles
	return nil
}

func readFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string][]string), nil
		}
		return nil, fmt.Errorf("failed to read bundle catalog: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return make(map[string][]string), nil
	}

	var bundles map[string][]string
	if err := json.Unmarshal(data, &bundles); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	if bundles == nil {
		// The file held JSON null.
		bundles = make(map[string][]string)
	}
	return bundles, nil
}

// writeFile replaces path atomically through a temporary sibling.
func writeFile(path string, bundles map[string][]string) error {
	data, err := json.MarshalIndent(bundles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bundle catalog: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bundle catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace bundle catalog: %w", err)
	}
	return nil
}
