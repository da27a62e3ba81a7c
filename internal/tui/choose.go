// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNoOptions is returned by Choose when there is nothing to pick from.
var ErrNoOptions = errors.New("no options to choose from")

type (
	// Option represents a selectable option with a display title and value.
	Option[T comparable] struct {
		// Title is the display text for the option.
		Title string
		// Value is the underlying value of the option.
		Value T
	}

	// ChooseOptions configures the Choose component.
	ChooseOptions[T comparable] struct {
		// Title is the title/prompt displayed above the options.
		Title string
		// Description provides additional context below the title.
		Description string
		// Options is the list of options to choose from.
		Options []Option[T]
		// Height limits the number of visible options (0 for auto).
		Height int
		// Config holds common TUI configuration.
		Config Config
	}
)

// Choose prompts the user to select one option and returns its value.
func Choose[T comparable](opts ChooseOptions[T]) (T, error) {
	var result T
	if len(opts.Options) == 0 {
		return result, ErrNoOptions
	}

	huhOpts := make([]huh.Option[T], len(opts.Options))
	for i, opt := range opts.Options {
		huhOpts[i] = huh.NewOption(opt.Title, opt.Value)
	}

	sel := huh.NewSelect[T]().
		Title(opts.Title).
		Description(opts.Description).
		Options(huhOpts...).
		Value(&result)

	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	if err := runForm(sel, opts.Config); err != nil {
		return result, err
	}
	return result, nil
}
