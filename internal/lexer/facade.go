// Package lexer implements spec.md's Main Scanner and everything it drives
// directly: the source buffer cursor (4.A), the literal scanners (4.D), the
// identifier scanner (4.E), the comment engine (4.F), and the per-file
// if-stack (4.H). The directive engine's *tokenizing* half (4.G) lives here
// too, since it reuses the same cursor; the preprocessor-state half (macro
// table, file stack, expression evaluator) lives in internal/preprocessor
// and is reached only through the Facade
// interface below, so this package never imports it — that import would
// cycle, since internal/preprocessor holds a *Lexer per file on its stack.
package lexer

import (
	"github.com/assyrianic/spc/internal/atom"
	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// CommentPosition classifies an attributed comment block (spec.md 4.F).
type CommentPosition uint8

const (
	CommentFront CommentPosition = iota
	CommentTail
)

// DirectiveKind distinguishes #include from #tryinclude for enterFile.
type DirectiveKind uint8

const (
	DirectiveInclude DirectiveKind = iota
	DirectiveTryInclude
)

// Facade is spec.md section 6's "Preprocessor Facade (external collaborator
// used by lexer)": the macro table, file stack, and constant-expression
// evaluator the Lexer calls into but never owns directly.
type Facade interface {
	// MacroExpansionEnabled reports the scoped macro_expansion flag.
	MacroExpansionEnabled() bool
	// SetMacroExpansionEnabled sets it, returning the previous value so
	// callers can restore it (used while capturing a #define body or a
	// #undef target, per spec.md section 4.E).
	SetMacroExpansionEnabled(bool) bool

	// FindKeyword resolves an atom to a language-keyword Kind, or
	// token.KindNone if it is not one. Directive names are not resolved
	// here (see directiveKeywords).
	FindKeyword(atom.ID) token.Kind

	// EnterMacro pushes the macro body named by atom as a virtual source
	// over the calling Lexer's cursor, iff atom names a defined macro.
	EnterMacro(loc source.Location, id atom.ID, l *Lexer) bool

	// DefineMacro registers body, keyed by name, replacing any prior
	// definition.
	DefineMacro(name atom.ID, loc source.Location, body []token.Token)
	// RemoveMacro undefines name, reporting whether it had been defined.
	RemoveMacro(loc source.Location, name atom.ID) bool

	// Eval reads tokens from l until EOL and evaluates them as a constant
	// integer expression, per spec.md section 4.G's "if" handler.
	Eval(l *Lexer) (int64, bool)

	// EnterFile resolves filename (relative to currentPath when quoted as
	// "...", via a system search when angle-delimited as <...>) and
	// pushes a new Lexer onto the file stack. kind distinguishes #include
	// (missing file is an error) from #tryinclude (missing file is
	// silently skipped).
	EnterFile(kind DirectiveKind, system bool, beginLoc source.Location, filename, currentPath string) bool
	// HandleEndOfFile reports whether another file was resumed from the
	// file stack (false at true end of compilation).
	HandleEndOfFile() bool
	// Current is the file stack's top Lexer. A Lexer that just pushed a
	// new one via EnterFile uses this to notice the switch and delegate
	// its own Next() to it, so an "#include" starts yielding the included
	// file's tokens the moment it's entered rather than after the
	// including file next reaches end of input.
	Current() *Lexer

	// AddComment records an attributed comment block.
	AddComment(pos CommentPosition, blocks []CommentBlock)
	// SetNextDeprecationMessage captures a #pragma deprecated message to
	// be attached to the next declaration the parser sees.
	SetNextDeprecationMessage(msg string)
}

// CompileContext is spec.md section 6's "Consumed from the compile
// context": the intern pool and diagnostic reporter shared by every Lexer
// on the file stack, plus the one pragma hook spec.md names explicitly.
type CompileContext interface {
	Add(b []byte) atom.ID
	Report(loc source.Location, kind diag.Kind, args ...any) *diag.Builder
	Note(loc source.Location, kind diag.Kind, args ...any)
	ChangePragmaDynamic(loc source.Location, value int64)
}
