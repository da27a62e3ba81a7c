// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"envy-cli/internal/config"
	"envy-cli/internal/runtime"
	"envy-cli/internal/tui"
)

type (
	// staticProvider returns a fixed configuration.
	staticProvider struct {
		cfg *config.Config
	}

	// fakeRunner records chains and spawns, creating the venv directory when
	// asked to run `python -m venv <dir>`.
	fakeRunner struct {
		chains [][]runtime.Command
		spawns []string
		// failPackage makes a command fail when its last word matches.
		failPackage string
	}

	// failingPrompter fails the test on any prompt.
	failingPrompter struct {
		t *testing.T
	}

	// scriptedPrompter answers prompts from fixed values.
	scriptedPrompter struct {
		selects  []string
		confirms []bool
		inputs   []string
		asked    []string
	}

	testEnv struct {
		app     *App
		runner  *fakeRunner
		cfg     *config.Config
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
		envRoot string
	}
)

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return p.cfg, nil
}

func (f *fakeRunner) Execute(ctx *runtime.ExecutionContext) *runtime.Result {
	f.chains = append(f.chains, ctx.Commands)
	for _, cmd := range ctx.Commands {
		if f.failPackage != "" && cmd[len(cmd)-1] == f.failPackage {
			return runtime.NewFailedResult(1, cmd)
		}
		if len(cmd) == 4 && cmd[1] == "-m" && cmd[2] == "venv" {
			if err := os.MkdirAll(cmd[3], 0o755); err != nil {
				return runtime.NewErrorResult(1, err)
			}
		}
	}
	return runtime.NewSuccessResult()
}

func (f *fakeRunner) Spawn(ctx *runtime.ExecutionContext) *runtime.Result {
	f.spawns = append(f.spawns, ctx.Env.Name)
	return runtime.NewSuccessResult()
}

func (p failingPrompter) Select(title string, _ []tui.Option[string]) (string, error) {
	p.t.Errorf("unexpected Select(%q)", title)
	return "", errors.New("unexpected prompt")
}

func (p failingPrompter) Confirm(title string, _ bool) (bool, error) {
	p.t.Errorf("unexpected Confirm(%q)", title)
	return false, errors.New("unexpected prompt")
}

func (p failingPrompter) Input(title, _ string) (string, error) {
	p.t.Errorf("unexpected Input(%q)", title)
	return "", errors.New("unexpected prompt")
}

func (p *scriptedPrompter) Select(title string, options []tui.Option[string]) (string, error) {
	p.asked = append(p.asked, title)
	if len(p.selects) == 0 {
		return options[0].Value, nil
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

func (p *scriptedPrompter) Confirm(title string, def bool) (bool, error) {
	p.asked = append(p.asked, title)
	if len(p.confirms) == 0 {
		return def, nil
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *scriptedPrompter) Input(title, _ string) (string, error) {
	p.asked = append(p.asked, title)
	if len(p.inputs) == 0 {
		return "", tui.ErrAborted
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func newTestEnv(t *testing.T, prompt Prompter) *testEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.EnvRoot = filepath.Join(dir, "envs")
	cfg.CatalogPath = filepath.Join(dir, "bundles.json")

	te := &testEnv{
		runner:  &fakeRunner{},
		cfg:     cfg,
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		envRoot: cfg.EnvRoot,
	}
	te.app = NewApp(Dependencies{
		Config: staticProvider{cfg: cfg},
		Prompt: prompt,
		Runner: te.runner,
		Stdin:  &bytes.Buffer{},
		Stdout: te.stdout,
		Stderr: te.stderr,
	})
	return te
}

func (te *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand(te.app)
	root.SetArgs(args)
	root.SetOut(te.stdout)
	root.SetErr(te.stderr)
	return root.ExecuteContext(context.Background())
}
