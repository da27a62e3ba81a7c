// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"envy-cli/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

type fakeProber struct {
	versions map[string]string
	calls    []string
}

func (f *fakeProber) Probe(ctx context.Context, path string) (string, error) {
	f.calls = append(f.calls, path)
	v, ok := f.versions[path]
	if !ok {
		return "", errors.New("exit status 1")
	}
	if v == "hang" {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return v, nil
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		list string
		goos string
		want []string
	}{
		{"posix", "/usr/bin:/bin", "linux", []string{"/usr/bin", "/bin"}},
		{"windows", `C:\Python;C:\Windows`, "windows", []string{`C:\Python`, `C:\Windows`}},
		{"empty entries dropped", "/a::/b:", "darwin", []string{"/a", "/b"}},
		{"empty", "", "linux", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, SplitPath(tt.list, tt.goos)); diff != "" {
				t.Errorf("SplitPath() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFind_FakeInterpreters(t *testing.T) {
	testutil.SkipOnWindows(t)

	dirA := t.TempDir()
	dirB := t.TempDir()
	testutil.WriteFakePython(t, dirA, "python3", "Python 3.11.4", 0)
	testutil.WriteFakePython(t, dirA, "python3.9", "Python 3.9.18", 0)
	testutil.WriteFakePython(t, dirA, "python", "broken", 1)
	later := testutil.WriteFakePython(t, dirB, "python3", "Python 3.11.4", 0)

	l := New(2 * time.Second)
	l.GOOS = "linux"
	res, err := l.Find(context.Background(), []string{dirA, dirB})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	want := map[string]string{
		"Python 3.11.4": later,
		"Python 3.9.18": filepath.Join(dirA, "python3.9"),
	}
	if diff := cmp.Diff(want, res.ByVersion()); diff != "" {
		t.Errorf("ByVersion() mismatch (-want +got):\n%s", diff)
	}
	if got := len(res.Interpreters()); got != 3 {
		t.Errorf("len(Interpreters()) = %d, want 3", got)
	}
	if err := res.Require(); err != nil {
		t.Errorf("Require() = %v, want nil", err)
	}
}

func TestFind_SkipsMissingAndFailing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "python3"), []byte("x"), 0o644)
	testutil.MustMkdirAll(t, filepath.Join(dir, "python"), 0o755)

	prober := &fakeProber{versions: map[string]string{}}
	l := &Locator{Prober: prober, GOOS: "linux"}
	res, err := l.Find(context.Background(), []string{dir, filepath.Join(dir, "missing")})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if diff := cmp.Diff([]string{filepath.Join(dir, "python3")}, prober.calls); diff != "" {
		t.Errorf("probed paths mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(res.Require(), ErrNoInterpreters) {
		t.Errorf("Require() = %v, want ErrNoInterpreters", res.Require())
	}
	if res.Len() != 0 {
		t.Errorf("Len() = %d, want 0", res.Len())
	}
}

func TestFind_ProbeTimeout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hung := filepath.Join(dir, "python")
	ok := filepath.Join(dir, "python3")
	testutil.MustWriteFile(t, hung, []byte("x"), 0o755)
	testutil.MustWriteFile(t, ok, []byte("x"), 0o755)

	prober := &fakeProber{versions: map[string]string{hung: "hang", ok: "Python 3.12.1"}}
	l := &Locator{Prober: prober, ProbeTimeout: 20 * time.Millisecond, GOOS: "linux"}

	res, err := l.Find(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	want := map[string]string{"Python 3.12.1": ok}
	if diff := cmp.Diff(want, res.ByVersion()); diff != "" {
		t.Errorf("ByVersion() mismatch (-want +got):\n%s", diff)
	}
}

func TestFind_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "python"), []byte("x"), 0o755)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Locator{Prober: &fakeProber{}, GOOS: "linux"}
	if _, err := l.Find(ctx, []string{dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("Find() error = %v, want context.Canceled", err)
	}
}

func TestFind_WindowsExeSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := filepath.Join(dir, "python.exe")
	testutil.MustWriteFile(t, exe, []byte("x"), 0o755)

	prober := &fakeProber{versions: map[string]string{exe: "Python 3.10.11"}}
	l := &Locator{Prober: prober, Candidates: []string{"python"}, GOOS: "windows"}
	res, err := l.Find(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got := res.ByVersion()["Python 3.10.11"]; got != exe {
		t.Errorf("ByVersion()[3.10.11] = %q, want %q", got, exe)
	}
}

func TestResult_ChoicesAndLookup(t *testing.T) {
	t.Parallel()

	res := Result{found: []Interpreter{
		{Version: "Python 3.9.18", Path: "/a/python3.9"},
		{Version: "Python 3.12.1", Path: "/a/python3.12"},
		{Version: "Python 3.11.4", Path: "/a/python3"},
		{Version: "weird", Path: "/a/python"},
	}}

	want := []Interpreter{
		{Version: "Python 3.12.1", Path: "/a/python3.12"},
		{Version: "Python 3.11.4", Path: "/a/python3"},
		{Version: "Python 3.9.18", Path: "/a/python3.9"},
		{Version: "weird", Path: "/a/python"},
	}
	if diff := cmp.Diff(want, res.Choices()); diff != "" {
		t.Errorf("Choices() mismatch (-want +got):\n%s", diff)
	}

	lookups := []struct {
		selector string
		wantPath string
		wantOK   bool
	}{
		{"Python 3.11.4", "/a/python3", true},
		{"3.11", "/a/python3", true},
		{"3", "/a/python3.12", true},
		{"/a/python3.9", "/a/python3.9", true},
		{"3.1", "", false},
		{"2.7", "", false},
	}
	for _, l := range lookups {
		got, ok := res.Lookup(l.selector)
		if ok != l.wantOK || got.Path != l.wantPath {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", l.selector, got.Path, ok, l.wantPath, l.wantOK)
		}
	}
}
