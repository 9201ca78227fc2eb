// Package diag implements the preprocessor's error reporter: it prints
// "filename:line:column: kind: message" diagnostics and counts errors to
// decide the process exit status, but never unwinds the parser itself.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulocustodio/bfpp/internal/token"
)

// Kind classifies a Diagnostic. Only Error affects the exit status.
type Kind int

const (
	Error Kind = iota
	Warning
	Note
)

func (k Kind) String() string {
	switch k {
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "error"
	}
}

// Diagnostic is one reported message. A Note normally trails the Error it
// annotates (e.g. pointing at a macro's original definition site).
type Diagnostic struct {
	Kind Kind
	Loc  token.Location
	Msg  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Loc, d.Kind, d.Msg)
}

// Reporter accumulates diagnostics over the lifetime of one preprocessor
// invocation. It is process-wide state: reset at program start, populated
// during parsing, inspected at the end to determine the exit status.
type Reporter struct {
	diags []Diagnostic
}

// Error reports an error-kind diagnostic at loc and increments the error
// count.
func (r *Reporter) Error(loc token.Location, format string, args ...any) {
	r.add(Error, loc, format, args...)
}

// Warning reports a warning-kind diagnostic; it never affects exit status.
func (r *Reporter) Warning(loc token.Location, format string, args ...any) {
	r.add(Warning, loc, format, args...)
}

// Note reports a note-kind diagnostic, normally used right after Error to
// reference a related location (e.g. a prior macro definition).
func (r *Reporter) Note(loc token.Location, format string, args ...any) {
	r.add(Note, loc, format, args...)
}

func (r *Reporter) add(kind Kind, loc token.Location, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{Kind: kind, Loc: loc, Msg: fmt.Sprintf(format, args...)})
}

// ErrorCount returns the number of Error-kind diagnostics reported so far.
func (r *Reporter) ErrorCount() int {
	n := 0
	for _, d := range r.diags {
		if d.Kind == Error {
			n++
		}
	}
	return n
}

// HasErrors reports whether any Error-kind diagnostic was reported.
func (r *Reporter) HasErrors() bool { return r.ErrorCount() > 0 }

// All returns every diagnostic reported so far, in report order.
func (r *Reporter) All() []Diagnostic { return r.diags }

// Sort orders diagnostics by location (filename, then line, then column),
// keeping notes immediately after the error they annotate: each note is
// grouped with the diagnostic reported just before it, and the groups are
// stable-sorted by the location of their leading diagnostic.
func (r *Reporter) Sort() {
	var groups [][]Diagnostic
	for _, d := range r.diags {
		if d.Kind == Note && len(groups) > 0 {
			groups[len(groups)-1] = append(groups[len(groups)-1], d)
			continue
		}
		groups = append(groups, []Diagnostic{d})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i][0].Loc, groups[j][0].Loc
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	r.diags = r.diags[:0]
	for _, g := range groups {
		r.diags = append(r.diags, g...)
	}
}

// String renders every diagnostic, one per line, in the
// "filename:line:column: kind: message" format.
func (r *Reporter) String() string {
	var sb strings.Builder
	for _, d := range r.diags {
		sb.WriteString(d.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Err returns a multi-error wrapping every diagnostic (supporting
// errors.Is/errors.As via Unwrap), or nil if nothing was reported.
func (r *Reporter) Err() error {
	if len(r.diags) == 0 {
		return nil
	}
	return &multiError{diags: r.diags}
}

type multiError struct{ diags []Diagnostic }

func (m *multiError) Error() string {
	var sb strings.Builder
	for i, d := range m.diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}

func (m *multiError) Unwrap() []error {
	errs := make([]error, len(m.diags))
	for i, d := range m.diags {
		dd := d
		errs[i] = dd
	}
	return errs
}
