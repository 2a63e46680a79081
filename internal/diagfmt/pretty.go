// Package diagfmt renders diag.Diagnostic values for a terminal, the way
// the teacher's own internal/diagfmt renders its richer, message-catalog-
// backed diagnostics. This pipeline's diagnostics are purely symbolic (a key
// plus positional args, spec.md §6's external-catalog split), and this
// module has no lexer/parser of its own producing real source text, so
// there is no source-line context to underline here — only the symbolic
// key, its args, and (when a FileSet is supplied) the resolved line:col.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nominalc/internal/diag"
	"nominalc/internal/source"
)

// Opts controls Pretty's rendering.
type Opts struct {
	Color bool
	Files *source.FileSet // nil: spans are printed as raw file/offset pairs
}

// Pretty writes one line per diagnostic, plus one indented line per note.
func Pretty(w io.Writer, items []diag.Diagnostic, opts Opts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	keyColor := color.New(color.FgMagenta)
	locColor := color.New(color.FgBlue)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		loc := formatSpan(d.Primary, opts.Files)
		fmt.Fprintf(w, "%s %s %s%s\n", locColor.Sprint(loc), severityColor(d.Severity, errorColor, warningColor, infoColor), keyColor.Sprint(d.Key), formatArgs(d.Args))
		for _, n := range d.Notes {
			noteLoc := formatSpan(n.Span, opts.Files)
			fmt.Fprintf(w, "  note: %s %s%s\n", locColor.Sprint(noteLoc), keyColor.Sprint(n.Key), formatArgs(n.Args))
		}
	}
}

func severityColor(sev diag.Severity, errC, warnC, infoC *color.Color) string {
	switch sev {
	case diag.SevError:
		return errC.Sprint(sev.String())
	case diag.SevWarning:
		return warnC.Sprint(sev.String())
	default:
		return infoC.Sprint(sev.String())
	}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("<%d:%d-%d>", span.File, span.Start, span.End)
	}
	start, _ := fs.Resolve(span)
	f := fs.Get(span.File)
	path := "<unknown>"
	if f != nil {
		path = f.FormatPath("auto", "")
	}
	return fmt.Sprintf("%s:%d:%d:", path, start.Line, start.Col)
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	s := " ("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += truncate(fmt.Sprint(a), 60)
	}
	return s + ")"
}

// truncate keeps diagnostic argument previews aligned on wide terminals
// without splitting multi-byte runes mid-character.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
