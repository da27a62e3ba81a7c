// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"envy-cli/pkg/platform"
)

// DefaultProbeTimeout bounds a single probe when Locator.ProbeTimeout is zero.
const DefaultProbeTimeout = 5 * time.Second

// ErrNoInterpreters is returned by Result.Require when discovery found nothing.
var ErrNoInterpreters = errors.New("no python interpreters found")

// DefaultCandidates are the executable names tried in every PATH directory.
var DefaultCandidates = []string{
	"python",
	"python3",
	"python3.6",
	"python3.7",
	"python3.8",
	"python3.9",
	"python3.10",
	"python3.11",
	"python3.12",
}

type (
	// Interpreter is a discovered Python executable and the version it reported.
	Interpreter struct {
		Version string `json:"version" yaml:"version"`
		Path    string `json:"path" yaml:"path"`
	}

	// Prober runs a candidate executable and returns its version output.
	Prober interface {
		Probe(ctx context.Context, path string) (string, error)
	}

	// ExecProber probes by running `<path> --version`.
	ExecProber struct{}

	// Locator scans directories for interpreter candidates.
	Locator struct {
		// Candidates overrides DefaultCandidates when non-empty.
		Candidates []string
		// Prober runs each candidate. Defaults to ExecProber.
		Prober Prober
		// ProbeTimeout bounds each probe. Defaults to DefaultProbeTimeout.
		ProbeTimeout time.Duration
		// GOOS selects platform rules (executable suffix). Defaults to runtime.GOOS.
		GOOS string
	}

	// Result is the ordered list of successful probes.
	Result struct {
		found []Interpreter
	}
)

// Probe implements Prober. Only stdout is captured, trimmed of surrounding
// whitespace.
func (ExecProber) Probe(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, path, "--version")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// New creates a Locator with default candidates and the exec prober.
func New(timeout time.Duration, extraCandidates ...string) *Locator {
	candidates := append(append([]string{}, DefaultCandidates...), extraCandidates...)
	return &Locator{
		Candidates:   candidates,
		Prober:       ExecProber{},
		ProbeTimeout: timeout,
	}
}

// SplitPath splits a PATH-style list using the separator of goos. Empty
// entries are dropped.
func SplitPath(pathList, goos string) []string {
	var dirs []string
	for dir := range strings.SplitSeq(pathList, platform.PathListSeparatorFor(goos)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// SearchPath returns the directories of the current process's PATH.
func SearchPath() []string {
	return SplitPath(os.Getenv("PATH"), runtime.GOOS)
}

// Find scans dirs in order. For each directory every candidate name is tried
// in order; a candidate is probed only if it exists and its path has not been
// probed successfully before. Probe failures are logged and skipped. Find
// only fails when ctx is canceled.
func (l *Locator) Find(ctx context.Context, dirs []string) (Result, error) {
	prober := l.Prober
	if prober == nil {
		prober = ExecProber{}
	}
	timeout := l.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	var res Result
	seen := make(map[string]bool)

	for _, dir := range dirs {
		for _, name := range l.candidateFiles() {
			if err := ctx.Err(); err != nil {
				return res, fmt.Errorf("interpreter discovery canceled: %w", err)
			}

			path := filepath.Join(dir, name)
			if seen[path] || !isFile(path) {
				continue
			}

			version, err := probeWithTimeout(ctx, prober, path, timeout)
			if err != nil {
				slog.Debug("skipping interpreter candidate", "path", path, "error", err)
				continue
			}
			seen[path] = true
			res.found = append(res.found, Interpreter{Version: version, Path: path})
		}
	}

	return res, nil
}

func (l *Locator) candidateFiles() []string {
	names := l.Candidates
	if len(names) == 0 {
		names = DefaultCandidates
	}
	goos := l.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos != platform.Windows {
		return names
	}
	files := make([]string, 0, len(names)*2)
	for _, name := range names {
		files = append(files, name+".exe", name)
	}
	return files
}

func probeWithTimeout(ctx context.Context, prober Prober, path string, timeout time.Duration) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return prober.Probe(probeCtx, path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Interpreters returns every successful probe in scan order.
func (r Result) Interpreters() []Interpreter {
	return append([]Interpreter(nil), r.found...)
}

// Len returns the number of distinct versions discovered.
func (r Result) Len() int {
	return len(r.ByVersion())
}

// ByVersion maps each reported version to an executable path. When two paths
// report the same version the later one in scan order wins.
func (r Result) ByVersion() map[string]string {
	m := make(map[string]string, len(r.found))
	for _, in := range r.found {
		m[in.Version] = in.Path
	}
	return m
}

// Choices returns one Interpreter per version, newest first.
func (r Result) Choices() []Interpreter {
	byVersion := r.ByVersion()
	choices := make([]Interpreter, 0, len(byVersion))
	for version, path := range byVersion {
		choices = append(choices, Interpreter{Version: version, Path: path})
	}
	SortNewestFirst(choices)
	return choices
}

// Require returns ErrNoInterpreters when nothing was found.
func (r Result) Require() error {
	if len(r.found) == 0 {
		return ErrNoInterpreters
	}
	return nil
}

// Lookup resolves a user-supplied selector: an exact version string
// ("Python 3.11.4"), a bare version or prefix ("3.11"), or an executable
// path that was discovered.
func (r Result) Lookup(selector string) (Interpreter, bool) {
	choices := r.Choices()
	for _, c := range choices {
		if c.Version == selector || c.Path == selector {
			return c, true
		}
	}
	for _, c := range choices {
		if v, ok := canonicalVersion(c.Version); ok && matchesPrefix(v, selector) {
			return c, true
		}
	}
	return Interpreter{}, false
}
