// Package macrotab implements the preprocessor's single flat macro table:
// name -> definition, with no cross-file scoping.
package macrotab

import (
	"github.com/dolthub/swiss"

	"github.com/paulocustodio/bfpp/internal/token"
)

// Macro is either object-like (no Params) or function-like. Body is the
// flat token list captured verbatim between the header and the terminating
// #end (or, for a single-line object-like macro, the rest of the defining
// line).
type Macro struct {
	Name   string
	Params []string
	Body   []token.Token
	Loc    token.Location
}

// IsFunctionLike reports whether invoking this macro requires an argument
// list.
func (m *Macro) IsFunctionLike() bool { return len(m.Params) > 0 }

// Table maps macro names to definitions, backed by a swiss-table map for
// fast lookups on a table that is read far more often than it is written,
// growing roughly once per #define.
type Table struct {
	m *swiss.Map[string, *Macro]
}

// New returns an empty macro table sized for a modest program.
func New() *Table {
	return &Table{m: swiss.NewMap[string, *Macro](64)}
}

// Lookup returns the macro named name, or nil if undefined.
func (t *Table) Lookup(name string) *Macro {
	if v, ok := t.m.Get(name); ok {
		return v
	}
	return nil
}

// Define adds macro to the table. It returns the previous definition (nil
// if none) so the caller can report a redefinition error with a note
// pointing at the prior definition site.
func (t *Table) Define(m *Macro) (prev *Macro) {
	prev = t.Lookup(m.Name)
	t.m.Put(m.Name, m)
	return prev
}

// Undef removes name from the table. It is a no-op if name is undefined.
func (t *Table) Undef(name string) {
	t.m.Delete(name)
}

// Has reports whether name is currently defined.
func (t *Table) Has(name string) bool {
	_, ok := t.m.Get(name)
	return ok
}

// Clear empties the table.
func (t *Table) Clear() {
	t.m = swiss.NewMap[string, *Macro](64)
}
