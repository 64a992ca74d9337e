// Package atom interns identifier and string bytes into stable handles so
// that token equality and macro-table lookups are handle comparisons rather
// than string comparisons. This is the "Atom Table (external)" collaborator
// of spec.md section 2, implemented concretely here since nothing in the
// retrieved pack exercises interning through a third-party library — see
// DESIGN.md for why this stays on the standard library.
package atom

// ID is an opaque interned-string handle. The zero value never names a real
// string, so it doubles as "no atom".
type ID uint32

// Table is the compile-context-lifetime intern pool. Per spec.md section 5
// ("Shared resources"), a single Table is shared by every Lexer on the file
// stack, and since the whole pipeline is single-threaded, no locking is
// required.
type Table struct {
	strings []string
	index   map[string]ID
}

// NewTable returns an empty intern pool.
func NewTable() *Table {
	return &Table{
		strings: []string{""}, // index 0 reserved for the zero ID.
		index:   make(map[string]ID),
	}
}

// Intern returns the stable ID for b, allocating a new one on first sight.
func (t *Table) Intern(b []byte) ID {
	return t.InternString(string(b))
}

// InternString is Intern for an already-materialized string, avoiding a copy
// when the caller already owns one (e.g. a macro name already an atom).
func (t *Table) InternString(s string) ID {
	if id, ok := t.index[s]; ok {
		return id
	}
	id := ID(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = id
	return id
}

// String returns the original bytes behind an ID. Calling it with an ID this
// table never produced is a programmer error.
func (t *Table) String(id ID) string {
	return t.strings[id]
}
