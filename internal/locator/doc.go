// SPDX-License-Identifier: MPL-2.0

// Package locator discovers Python interpreters on the PATH.
//
// Every directory of the search list is checked for a fixed set of common
// interpreter names. Each candidate that exists is run with --version and,
// when it exits successfully, recorded under the version string it printed.
// Discovery is best effort: failing or hung candidates are skipped.
package locator
