// Package jsonccedit rewrites JSONC (JSON with comments and trailing
// commas) documents to match a target value while preserving every byte of
// the original that the target doesn't actually change: comments, key
// order, indentation, and blank lines all survive an edit that doesn't
// touch them.
//
// StringifyPreservingComments is the single entry point. It parses the
// existing document into a concrete syntax tree, reconciles that tree
// against the target value, and renders the result. If the existing
// document can't be parsed as JSONC, or its root isn't an object, it falls
// back to producing plain indented JSON from the target and logs a
// warning — the caller still gets a correct file, just without any
// comments the broken source might have had.
package jsonccedit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"
	"github.com/rs/zerolog"

	"github.com/kevinwang15/jsonccedit/internal/cst"
	"github.com/kevinwang15/jsonccedit/internal/reconcile"
)

// Logger receives the one thing this package ever needs to report on its
// own: that it had to abandon comment preservation and fall back to plain
// JSON. Passing a Logger backed by an application's own zerolog instance
// via WithLogger lets that warning show up with the caller's own fields
// and formatting.
type Logger interface {
	Warn(msg string, err error)
}

type nopLogger struct{}

func (nopLogger) Warn(string, error) {}

// zerologLogger adapts a zerolog.Logger to Logger.
type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger so its Warn events
// carry this package's fallback warnings.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l: l}
}

func (z zerologLogger) Warn(msg string, err error) {
	z.l.Warn().Err(err).Msg(msg)
}

type options struct {
	logger         Logger
	fallbackIndent string
}

// Option configures StringifyPreservingComments.
type Option func(*options)

// WithLogger routes fallback warnings through l instead of discarding
// them.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFallbackIndent sets the indentation string used only when the
// plain-JSON fallback path is taken. It has no effect when the existing
// document parses cleanly. Defaults to two spaces.
func WithFallbackIndent(indent string) Option {
	return func(o *options) { o.fallbackIndent = indent }
}

// StringifyPreservingComments rewrites existing to hold target, preserving
// as much of existing's formatting and comments as the change allows.
// existing may be empty, in which case the result is target rendered as
// plain indented JSON (there is nothing to preserve). target is expected
// to be built from *orderedmap.OrderedMap, []any, and JSON scalar types —
// exactly the shape encoding/json.Decoder produces when driven with
// UseNumber and an ordered-map-aware object type, and the shape
// internal/cst's own PlainValue produces when reading a tree back out.
func StringifyPreservingComments(existing []byte, target *orderedmap.OrderedMap, opts ...Option) ([]byte, error) {
	o := options{logger: nopLogger{}, fallbackIndent: "  "}
	for _, opt := range opts {
		opt(&o)
	}

	if len(bytes.TrimSpace(existing)) == 0 {
		return plainRender(target, o.fallbackIndent)
	}

	root, err := cst.Parse(existing)
	if err != nil {
		o.logger.Warn("jsonccedit: existing document is not valid JSONC, falling back to plain JSON", err)
		return plainRender(target, o.fallbackIndent)
	}
	obj, ok := root.(*cst.Object)
	if !ok {
		o.logger.Warn("jsonccedit: existing document's root is not an object, falling back to plain JSON",
			fmt.Errorf("root kind is %s", root.Kind()))
		return plainRender(target, o.fallbackIndent)
	}

	if err := reconcile.Reconcile(obj, target); err != nil {
		return nil, fmt.Errorf("jsonccedit: reconciling document: %w", err)
	}
	return cst.Render(obj), nil
}

func plainRender(target *orderedmap.OrderedMap, indent string) ([]byte, error) {
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(target); err != nil {
		return nil, fmt.Errorf("jsonccedit: marshaling fallback JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimRight(raw.Bytes(), "\n"), "", indent); err != nil {
		return nil, fmt.Errorf("jsonccedit: indenting fallback JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultLogger returns a Logger backed by a new zerolog.Logger that writes
// timestamped, human-readable console output to os.Stderr.
func DefaultLogger() Logger {
	return NewZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
}
