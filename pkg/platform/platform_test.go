// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsWindowsReservedName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"CON", true},
		{"con", true},
		{"nul.txt", true},
		{"LPT9", true},
		{"COM10", false},
		{"demo", false},
		{"console", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWindowsReservedName(tt.name); got != tt.want {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPathListSeparatorFor(t *testing.T) {
	if got := PathListSeparatorFor(Windows); got != ";" {
		t.Errorf("PathListSeparatorFor(windows) = %q, want \";\"", got)
	}
	if got := PathListSeparatorFor(Linux); got != ":" {
		t.Errorf("PathListSeparatorFor(linux) = %q, want \":\"", got)
	}
	if got := PathListSeparatorFor(Darwin); got != ":" {
		t.Errorf("PathListSeparatorFor(darwin) = %q, want \":\"", got)
	}
}
