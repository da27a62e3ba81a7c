// SPDX-License-Identifier: MPL-2.0

// Package catalog persists named package bundles as a JSON object mapping
// each bundle name to its ordered list of package specifiers.
//
// Every mutation is saved immediately. Saves hold an exclusive lock on a
// sibling ".lock" file, re-read the catalog from disk, apply the mutation and
// replace the file atomically, so concurrent envy processes never lose each
// other's updates.
package catalog
