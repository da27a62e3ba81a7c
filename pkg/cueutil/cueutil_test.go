// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testSchema = `
#Doc: {
	name: string & !=""
	tags?: [...string]
	limits?: {
		retries?: int & >=0
	}
}
`

type doc struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[doc](testSchema, "#Doc", []byte(`name: "demo", tags: ["a", "b"]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(doc{Name: "demo", Tags: []string{"a", "b"}}, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Map(t *testing.T) {
	got, err := Decode[map[string]any](testSchema, "#Doc", []byte(`name: "demo"`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got["name"] != "demo" {
		t.Errorf("got[name] = %v, want demo", got["name"])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantSub string
	}{
		{"syntax", `name: "demo`, "doc.cue"},
		{"closed definition", `name: "demo", color: "red"`, "color"},
		{"constraint", `name: "demo", limits: retries: -1`, "retries"},
		{"type", `name: 3`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[doc](testSchema, "#Doc", []byte(tt.data), WithFilename("doc.cue"))
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !strings.HasPrefix(err.Error(), "doc.cue") || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want prefix doc.cue and %q", err, tt.wantSub)
			}
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	_, err := Decode[doc](testSchema, "#Doc", []byte(`name: "demo"`), WithMaxSize(4), WithFilename("big.cue"))
	var tooLarge *TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("Decode() error = %v, want *TooLargeError", err)
	}
	if tooLarge.Limit != 4 || tooLarge.Filename != "big.cue" {
		t.Errorf("TooLargeError = %+v", tooLarge)
	}
}

func TestDecode_MissingDefinition(t *testing.T) {
	if _, err := Decode[doc](testSchema, "#Nope", []byte(`name: "demo"`)); err == nil {
		t.Fatal("Decode() with unknown definition succeeded")
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{nil, ""},
		{[]string{"runtime"}, "runtime"},
		{[]string{"bootstrap", "0", "1"}, "bootstrap[0][1]"},
		{[]string{"locator", "probe_timeout"}, "locator.probe_timeout"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := fieldPath(tt.parts); got != tt.want {
			t.Errorf("fieldPath(%v) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestFormatError_Nil(t *testing.T) {
	if FormatError(nil, "x.cue") != nil {
		t.Error("FormatError(nil) != nil")
	}
}

func TestFormatError_PlainError(t *testing.T) {
	base := errors.New("boom")
	err := FormatError(base, "x.cue")
	if !errors.Is(err, base) {
		t.Errorf("FormatError(plain) = %v, want it to wrap the original", err)
	}
}
