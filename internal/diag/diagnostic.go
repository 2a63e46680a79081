// Package diag defines the diagnostic-sink contract the core reports
// through. Message catalogs, source rendering and fix suggestions are the
// enclosing driver's responsibility (spec §6); the core only ever emits a
// symbolic key plus positional arguments.
package diag

import "nominalc/internal/source"

// Note attaches auxiliary context (e.g. "previous declaration here") to a
// diagnostic, keyed the same symbolic way as the diagnostic itself.
type Note struct {
	Span Span
	Key  string
	Args []any
}

// Span is a thin alias kept local to diag so callers don't need to import
// source just to build a Note; it is identical in shape to source.Span.
type Span = source.Span

// Diagnostic is one reported issue.
type Diagnostic struct {
	Severity Severity
	Key      string // symbolic key, e.g. "cant.resolve.symbol"
	Args     []any  // positional arguments for the external message catalog
	Primary  Span
	Notes    []Note
}

// Reporter is the external contract the core reports diagnostics through.
// Implementations decide how (or whether) to render, dedup or collect them.
type Reporter interface {
	Report(severity Severity, primary Span, key string, args ...any)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(severity Severity, primary Span, key string, args ...any)

func (f ReporterFunc) Report(severity Severity, primary Span, key string, args ...any) {
	if f != nil {
		f(severity, primary, key, args...)
	}
}

// Nop discards every diagnostic. Used by speculative attribution rounds
// (spec §4.6/§5) that must not let failed candidates leak diagnostics.
var Nop Reporter = ReporterFunc(func(Severity, Span, string, ...any) {})
