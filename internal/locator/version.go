// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

var versionNumberPattern = regexp.MustCompile(`(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// canonicalVersion extracts the first dotted number from a --version line
// ("Python 3.11.4" -> "v3.11.4") in the form golang.org/x/mod/semver expects.
func canonicalVersion(s string) (string, bool) {
	m := versionNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	parts := []string{m[1]}
	for _, p := range m[2:] {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	v := "v" + strings.Join(parts, ".")
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}

// matchesPrefix reports whether canonical version v starts with the numeric
// selector ("3", "3.11", "v3.11.4"), on component boundaries.
func matchesPrefix(v, selector string) bool {
	sel := strings.TrimPrefix(strings.TrimSpace(selector), "v")
	if sel == "" {
		return false
	}
	want := "v" + sel
	if !semver.IsValid(want) {
		return false
	}
	return v == want || strings.HasPrefix(v, want+".")
}

// SortNewestFirst orders interpreters by descending version. Entries whose
// version cannot be parsed sort last, by their raw string.
func SortNewestFirst(list []Interpreter) {
	slices.SortStableFunc(list, func(a, b Interpreter) int {
		va, okA := canonicalVersion(a.Version)
		vb, okB := canonicalVersion(b.Version)
		switch {
		case okA && okB:
			if c := semver.Compare(vb, va); c != 0 {
				return c
			}
			return strings.Compare(a.Version, b.Version)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(a.Version, b.Version)
		}
	})
}
