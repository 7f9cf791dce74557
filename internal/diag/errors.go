// Package diag formats the diagnostics the front end and evaluator produce:
// LexError/ParseError with source context and a caret, and the stack traces
// attached to uncaught JS errors. It is the host-facing error surface named
// in spec.md §6/§7.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsengine/internal/token"
)

// Kind classifies a diagnostic per the taxonomy in spec.md §7.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindReference
	KindType
	KindRange
	KindSyntax
	KindTimeout
	KindLoader
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindParse:
		return "ParseError"
	case KindReference:
		return "ReferenceError"
	case KindType:
		return "TypeError"
	case KindRange:
		return "RangeError"
	case KindSyntax:
		return "SyntaxError"
	case KindTimeout:
		return "HostTimeout"
	case KindLoader:
		return "LoaderError"
	default:
		return "Error"
	}
}

// Diagnostic is a single compile-time failure with position and source
// context, formatted the way CompilerError rendered DWScript errors: a
// header line, the offending source line, and a caret pointing at the
// column.
type Diagnostic struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a Diagnostic.
func New(kind Kind, pos token.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a one-line source snippet and a caret.
// If color is true, ANSI escapes highlight the message and caret.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", d.Kind, d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", d.Kind, d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(n int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Recorder is the shape of a tracing sink: Record takes an event tag and
// its attributes. No code in the evaluator calls Record, so an attached
// Recorder receives no events. NoopRecorder is the default.
type Recorder interface {
	Record(tag string, attrs map[string]string)
}

// NoopRecorder discards every event. It is the default ActivityRecorder
// for a host that hasn't wired a real tracing sink.
type NoopRecorder struct{}

// Record implements Recorder by doing nothing.
func (NoopRecorder) Record(string, map[string]string) {}

// FormatAll renders a batch of diagnostics the way a host reporting multiple
// parse errors from one source file would.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
