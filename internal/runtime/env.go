// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"os"
	goruntime "runtime"
	"slices"
	"strings"

	"envy-cli/internal/envstore"
	"envy-cli/pkg/platform"
)

// Variables touched by activation.
const (
	EnvVirtualEnv       = "VIRTUAL_ENV"
	EnvVirtualEnvPrompt = "VIRTUAL_ENV_PROMPT"
	EnvPythonHome       = "PYTHONHOME"
	EnvPath             = "PATH"
)

// BuildEnviron returns the child environment for ctx as KEY=VALUE pairs,
// starting from the host environment.
func BuildEnviron(ctx *ExecutionContext) []string {
	return buildEnviron(os.Environ(), ctx.Env, ctx.ExtraEnv, goruntime.GOOS)
}

func buildEnviron(host []string, env *envstore.Environment, extra map[string]string, goos string) []string {
	vars := environToMap(host)
	if env != nil {
		activate(vars, env, goos)
	}
	maps.Copy(vars, extra)
	return EnvToSlice(vars)
}

// activate applies venv activation to vars.
func activate(vars map[string]string, env *envstore.Environment, goos string) {
	binDir := env.BinDir()

	vars[EnvVirtualEnv] = env.Path
	vars[EnvVirtualEnvPrompt] = env.Name
	delete(vars, EnvPythonHome)

	pathKey := EnvPath
	if goos == platform.Windows {
		// Windows keys are case-insensitive and usually spelled "Path".
		for k := range vars {
			if strings.EqualFold(k, EnvPath) {
				pathKey = k
				break
			}
		}
	}
	if current := vars[pathKey]; current != "" {
		vars[pathKey] = binDir + platform.PathListSeparatorFor(goos) + current
	} else {
		vars[pathKey] = binDir
	}
}

func environToMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}

// EnvToSlice converts a map of environment variables to a slice sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}
