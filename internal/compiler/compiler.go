// Package compiler ties the atom table, the diagnostic reporter, and the
// location allocator into the single shared CompileContext spec.md section
// 6 says the lexer consumes, and that section 5 says is "shared across
// lexers on the file stack". Grounded on assyrianic-sptools/sptools.go's
// top-level LexFile/ParseFile driver, which plays the same "owns everything
// a single compilation needs" role, generalized to the context-object shape
// spec.md's external-interface contract requires.
package compiler

import (
	"github.com/assyrianic/spc/internal/atom"
	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
)

// Context is the concrete CompileContext: it implements
// internal/lexer.CompileContext (Add/Report/Note/ChangePragmaDynamic)
// without internal/lexer importing this package — lexer only references
// the interface, avoiding the import cycle a *Context -> *Lexer ->
// CompileContext round trip would otherwise create.
type Context struct {
	Atoms    *atom.Table
	Locs     *source.Manager
	Reporter *diag.Reporter

	// PragmaDynamicHeap is the last value a "#pragma dynamic" directive
	// requested, and the location of the directive that set it.
	PragmaDynamicHeap     int64
	PragmaDynamicHeapLoc  source.Location
	PragmaDynamicHeapIsSet bool
}

// New builds a Context with a fresh atom table, location manager, and
// reporter, ready to drive one compilation.
func New() *Context {
	locs := source.NewManager()
	return &Context{
		Atoms:    atom.NewTable(),
		Locs:     locs,
		Reporter: diag.NewReporter(locs),
	}
}

// Add interns bytes into the shared atom table.
func (c *Context) Add(b []byte) atom.ID {
	return c.Atoms.Intern(b)
}

// Report starts a chainable error-severity diagnostic at loc.
func (c *Context) Report(loc source.Location, kind diag.Kind, args ...any) *diag.Builder {
	return c.Reporter.Report(loc, kind, args...)
}

// Note attaches a standalone note-severity diagnostic (used where the
// caller doesn't need to chain it off a prior Report).
func (c *Context) Note(loc source.Location, kind diag.Kind, args ...any) {
	c.Reporter.Note(loc, kind, args...)
}

// ChangePragmaDynamic records a "#pragma dynamic <expr>" request, spec.md
// section 4.G's final pragma subcommand.
func (c *Context) ChangePragmaDynamic(loc source.Location, value int64) {
	c.PragmaDynamicHeap = value
	c.PragmaDynamicHeapLoc = loc
	c.PragmaDynamicHeapIsSet = true
}
