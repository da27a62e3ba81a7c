// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// DefaultMaxSize bounds the documents Decode accepts.
const DefaultMaxSize int64 = 1 << 20

type (
	options struct {
		filename string
		maxSize  int64
	}

	// Option configures Decode.
	Option func(*options)

	// TooLargeError is returned for documents over the size limit.
	TooLargeError struct {
		Filename string
		Size     int64
		Limit    int64
	}
)

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(n int64) Option {
	return func(o *options) { o.maxSize = n }
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.Filename, e.Size, e.Limit)
}

// Decode compiles schema, unifies data with the definition at defPath,
// validates the result and decodes it into a T.
func Decode[T any](schema, defPath string, data []byte, opts ...Option) (T, error) {
	var out T
	o := options{filename: "<input>", maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&o)
	}

	if size := int64(len(data)); size > o.maxSize {
		return out, &TooLargeError{Filename: o.filename, Size: size, Limit: o.maxSize}
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(schema)
	if err := schemaValue.Err(); err != nil {
		return out, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if !def.Exists() {
		return out, fmt.Errorf("internal error: schema has no %s", defPath)
	}
	if err := def.Err(); err != nil {
		return out, fmt.Errorf("internal error: schema has no %s: %w", defPath, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := userValue.Err(); err != nil {
		return out, FormatError(err, o.filename)
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(); err != nil {
		return out, FormatError(err, o.filename)
	}
	if err := unified.Decode(&out); err != nil {
		return out, FormatError(err, o.filename)
	}
	return out, nil
}

// FormatError rewrites a CUE error as "<file>: <field.path[i]>: <message>",
// one line per underlying error.
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		path := fieldPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}

// fieldPath renders ["bootstrap", "0", "x"] as "bootstrap[0].x".
func fieldPath(parts []string) string {
	var sb strings.Builder
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil && i > 0 {
			fmt.Fprintf(&sb, "[%s]", p)
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(p)
	}
	return sb.String()
}
