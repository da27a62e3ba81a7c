// SPDX-License-Identifier: MPL-2.0

package envstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"envy-cli/pkg/platform"
)

var (
	// ErrNotFound is returned when a named environment has no directory.
	ErrNotFound = errors.New("environment does not exist")
	// ErrExists is returned by Create when the directory is already present.
	ErrExists = errors.New("environment already exists")
	// ErrInvalidName is the sentinel wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid environment name")
)

type (
	// Environment is a virtual environment directory.
	Environment struct {
		Name string `json:"name" yaml:"name"`
		Path string `json:"path" yaml:"path"`
	}

	// Runner executes a single argv outside any environment.
	Runner interface {
		Run(ctx context.Context, argv []string) error
	}

	// Store owns the environment root.
	Store struct {
		root string
	}

	// InvalidNameError describes why a name cannot be used.
	InvalidNameError struct {
		Name   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid environment name %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidName.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// New returns a Store rooted at root. The directory is created lazily.
func New(root string) *Store {
	return &Store{root: root}
}

// ValidateName rejects names that cannot map to a single directory entry.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "name must not be empty"}
	case name == "." || name == "..":
		return &InvalidNameError{Name: name, Reason: "name must not be a relative directory"}
	case strings.ContainsAny(name, `/\`):
		return &InvalidNameError{Name: name, Reason: "name must not contain path separators"}
	case strings.HasPrefix(name, "-"):
		return &InvalidNameError{Name: name, Reason: "name must not start with '-'"}
	case strings.TrimSpace(name) != name:
		return &InvalidNameError{Name: name, Reason: "name must not have leading or trailing spaces"}
	case platform.IsWindowsReservedName(name):
		return &InvalidNameError{Name: name, Reason: "name is reserved on Windows"}
	}
	return nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.root, name)
}

// Exists reports whether name has a directory under the root.
func (s *Store) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	info, err := os.Stat(s.pathFor(name))
	return err == nil && info.IsDir()
}

// occupied reports whether anything at all, including a dangling symlink,
// sits at name's path.
func (s *Store) occupied(name string) bool {
	_, err := os.Lstat(s.pathFor(name))
	return err == nil
}

// Get returns the environment named name or ErrNotFound.
func (s *Store) Get(name string) (Environment, error) {
	if err := ValidateName(name); err != nil {
		return Environment{}, err
	}
	if !s.Exists(name) {
		return Environment{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return Environment{Name: name, Path: s.pathFor(name)}, nil
}

// Create runs `<interpreter> -m venv <root>/<name>`. Nothing is run when the
// path is already taken, whether by an environment or any other entry.
func (s *Store) Create(ctx context.Context, name, interpreter string, runner Runner) (Environment, error) {
	if err := ValidateName(name); err != nil {
		return Environment{}, err
	}
	if s.occupied(name) {
		return Environment{}, fmt.Errorf("%s: %w", name, ErrExists)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return Environment{}, fmt.Errorf("failed to create environment root: %w", err)
	}

	env := Environment{Name: name, Path: s.pathFor(name)}
	slog.Debug("creating virtual environment", "name", name, "interpreter", interpreter, "path", env.Path)
	if err := runner.Run(ctx, []string{interpreter, "-m", "venv", env.Path}); err != nil {
		return Environment{}, fmt.Errorf("failed to create environment %s: %w", name, err)
	}
	return env, nil
}

// List returns every environment sorted by name. A missing root yields an
// empty list.
func (s *Store) List() ([]Environment, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read environment root: %w", err)
	}

	var envs []Environment
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		envs = append(envs, Environment{Name: e.Name(), Path: s.pathFor(e.Name())})
	}
	slices.SortFunc(envs, func(a, b Environment) int { return strings.Compare(a.Name, b.Name) })
	return envs, nil
}

// Delete removes the environment directory recursively.
func (s *Store) Delete(name string) error {
	env, err := s.Get(name)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(env.Path); err != nil {
		return fmt.Errorf("failed to delete environment %s: %w", name, err)
	}
	return nil
}
