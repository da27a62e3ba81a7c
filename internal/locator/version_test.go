// SPDX-License-Identifier: MPL-2.0

package locator

import "testing"

func TestCanonicalVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Python 3.11.4", "v3.11.4", true},
		{"Python 3.12.0rc1", "v3.12.0", true},
		{"Python 2.7", "v2.7", true},
		{"3", "v3", true},
		{"no digits", "", false},
	}
	for _, tt := range tests {
		got, ok := canonicalVersion(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("canonicalVersion(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
