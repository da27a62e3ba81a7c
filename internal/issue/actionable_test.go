// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "create environment"},
			expected: "failed to create environment",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "create environment",
				Resource:  "demo",
			},
			expected: "failed to create environment: demo",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "load bundle catalog",
				Cause:     errors.New("unexpected end of JSON input"),
			},
			expected: "failed to load bundle catalog: unexpected end of JSON input",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "delete environment",
				Resource:  "/tmp/envs/demo",
				Cause:     errors.New("permission denied"),
			},
			expected: "failed to delete environment: /tmp/envs/demo: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	root := errors.New("root cause")
	err := &ActionableError{
		Operation:   "load bundle catalog",
		Resource:    "bundles.json",
		Suggestions: []string{"Fix the JSON syntax", "Run 'envy config show'"},
		Cause:       fmt.Errorf("decode: %w", root),
	}

	plain := err.Format(false)
	if !strings.Contains(plain, "• Fix the JSON syntax") {
		t.Errorf("Format(false) missing suggestion bullet:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Fatalf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "2. root cause") {
		t.Errorf("Format(true) should list the unwrapped root cause:\n%s", verbose)
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithContext(sentinel, "activate environment", "demo")
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
	if WrapWithContext(nil, "noop", "x") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestErrorContext_Build(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("define bundle").
		WithResource("basic-ml").
		WithSuggestion("one").
		WithSuggestions("two", "three").
		Wrap(cause).
		Build()
	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "define bundle" || ae.Resource != "basic-ml" {
		t.Errorf("unexpected operation/resource: %q/%q", ae.Operation, ae.Resource)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("len(Suggestions) = %d, want 3", len(ae.Suggestions))
	}
	if !ae.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}
