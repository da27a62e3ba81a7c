// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/huh"

// ConfirmOptions configures the Confirm component.
type ConfirmOptions struct {
	// Title is the question/prompt to display.
	Title string
	// Description provides additional context below the title.
	Description string
	// Affirmative is the text for the affirmative option (default: "Yes").
	Affirmative string
	// Negative is the text for the negative option (default: "No").
	Negative string
	// Default is the default value (true for yes, false for no).
	Default bool
	// Config holds common TUI configuration.
	Config Config
}

// Confirm prompts the user to confirm an action (yes/no).
// Returns true for affirmative, false for negative, or ErrAborted if cancelled.
func Confirm(opts ConfirmOptions) (bool, error) {
	result := opts.Default

	affirmative, negative := opts.Affirmative, opts.Negative
	if affirmative == "" {
		affirmative = "Yes"
	}
	if negative == "" {
		negative = "No"
	}

	field := huh.NewConfirm().
		Title(opts.Title).
		Description(opts.Description).
		Affirmative(affirmative).
		Negative(negative).
		Value(&result)

	if err := runForm(field, opts.Config); err != nil {
		return false, err
	}
	return result, nil
}
