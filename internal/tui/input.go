// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// InputOptions configures the Input component.
type InputOptions struct {
	// Title is the title/prompt displayed above the input.
	Title string
	// Description provides additional context below the title.
	Description string
	// Placeholder is the placeholder text shown when input is empty.
	Placeholder string
	// Value is the initial value.
	Value string
	// Validate rejects an answer with an error message; nil accepts anything.
	Validate func(string) error
	// Config holds common TUI configuration.
	Config Config
}

// Input prompts for a single line of text. The answer is trimmed.
func Input(opts InputOptions) (string, error) {
	result := opts.Value

	field := huh.NewInput().
		Title(opts.Title).
		Description(opts.Description).
		Placeholder(opts.Placeholder).
		Value(&result)
	if opts.Validate != nil {
		field = field.Validate(func(s string) error {
			return opts.Validate(strings.TrimSpace(s))
		})
	}

	if err := runForm(field, opts.Config); err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// NotEmpty is an Input validator rejecting blank answers.
func NotEmpty(s string) error {
	if s == "" {
		return errEmptyAnswer
	}
	return nil
}
