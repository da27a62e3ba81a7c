// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"envy-cli/internal/catalog"
	"envy-cli/internal/envstore"
	"envy-cli/internal/issue"
	"envy-cli/internal/locator"
	"envy-cli/internal/manager"
	"envy-cli/internal/runtime"
)

// classifyError attaches the matching issue catalog entry to err. Errors that
// already carry one, and errors with no matching entry, are returned as is.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	if id, ok := issueIDFor(err); ok {
		return newServiceError(err, id)
	}
	return err
}

func issueIDFor(err error) (issue.Id, bool) {
	var failed *runtime.CommandFailedError
	switch {
	case errors.Is(err, envstore.ErrInvalidName):
		return issue.InvalidEnvironmentNameId, true
	case errors.Is(err, envstore.ErrExists):
		return issue.EnvironmentExistsId, true
	case manager.IsEnvironmentNotFound(err):
		return issue.EnvironmentNotFoundId, true
	case errors.Is(err, locator.ErrNoInterpreters):
		return issue.NoInterpretersId, true
	case errors.Is(err, catalog.ErrCorrupt):
		return issue.CatalogCorruptId, true
	case errors.Is(err, catalog.ErrNotFound):
		return issue.BundleNotFoundId, true
	case errors.Is(err, runtime.ErrShellNotFound):
		return issue.ShellNotFoundId, true
	case errors.As(err, &failed):
		return issue.CommandFailedId, true
	default:
		return 0, false
	}
}
