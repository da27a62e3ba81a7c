// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema
// definition and decodes them into Go values.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	m, err := cueutil.Decode[map[string]any](schema, "#Config", data,
//	    cueutil.WithFilename(path))
package cueutil
