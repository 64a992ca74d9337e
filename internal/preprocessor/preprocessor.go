package preprocessor

import (
	"github.com/assyrianic/spc/internal/atom"
	"github.com/assyrianic/spc/internal/compiler"
	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/lexer"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// FileLoader resolves and reads the bytes behind a "#include"/"#tryinclude"
// target. Source-file loading and path resolution are explicitly out of
// scope for the core (spec.md section 1), so this is the seam a concrete
// driver (cmd/spc) plugs a real filesystem implementation into.
type FileLoader interface {
	Load(filename, currentPath string, system bool) (path, contents string, ok bool)
}

// Preprocessor is the concrete Facade: spec.md section 2.I's macro table,
// file stack, and constant-expression evaluator.
type Preprocessor struct {
	cc     *compiler.Context
	loader FileLoader

	macroExpansion bool
	macros         map[atom.ID]*Macro

	keywordAtoms map[atom.ID]token.Kind
	lineAtom     atom.ID

	stack []*lexer.Lexer

	comments        []CommentRecord
	nextDeprecation string
}

// CommentRecord is one attributed comment block handed to AddComment.
type CommentRecord struct {
	Pos    lexer.CommentPosition
	Blocks []lexer.CommentBlock
}

// New builds a Preprocessor over a shared compile context and file loader.
func New(cc *compiler.Context, loader FileLoader) *Preprocessor {
	pp := &Preprocessor{
		cc:             cc,
		loader:         loader,
		macroExpansion: true,
		macros:         make(map[atom.ID]*Macro),
		keywordAtoms:   make(map[atom.ID]token.Kind, len(token.Keywords)),
	}
	for name, kind := range token.Keywords {
		pp.keywordAtoms[cc.Add([]byte(name))] = kind
	}
	pp.lineAtom = cc.Add([]byte("__LINE__"))
	return pp
}

// Start pushes the initial file onto the stack and returns its Lexer. The
// caller (cmd/spc) drives the pipeline to completion by calling
// Current().Next(); Lexer.Next itself calls HandleEndOfFile.
func (pp *Preprocessor) Start(opts lexer.Options, file *source.File) *lexer.Lexer {
	rng := pp.cc.Locs.NewFileRange(file, 0)
	l := lexer.New(pp.cc, pp, opts, file, rng)
	pp.stack = append(pp.stack, l)
	return l
}

// Current is the file stack's top: the Lexer the caller should be reading
// tokens from right now.
func (pp *Preprocessor) Current() *lexer.Lexer {
	if len(pp.stack) == 0 {
		return nil
	}
	return pp.stack[len(pp.stack)-1]
}

// MacroExpansionEnabled implements Facade.
func (pp *Preprocessor) MacroExpansionEnabled() bool { return pp.macroExpansion }

// SetMacroExpansionEnabled implements Facade.
func (pp *Preprocessor) SetMacroExpansionEnabled(v bool) bool {
	prev := pp.macroExpansion
	pp.macroExpansion = v
	return prev
}

// FindKeyword implements Facade.
func (pp *Preprocessor) FindKeyword(id atom.ID) token.Kind {
	if kind, ok := pp.keywordAtoms[id]; ok {
		return kind
	}
	return token.KindNone
}

// EnterMacro implements Facade: spec.md 4.E step 1.
func (pp *Preprocessor) EnterMacro(loc source.Location, id atom.ID, l *lexer.Lexer) bool {
	m, ok := pp.macros[id]
	if !ok {
		return false
	}
	expanded := m.expand(pp.cc.Atoms, pp.lineAtom, l.Line())
	text := renderTokens(pp.cc.Atoms, expanded)
	rng := pp.cc.Locs.NewMacroRange(pp.cc.Atoms.String(id), len(text), loc)
	l.PushMacroSource(text, rng)
	return true
}

// DefineMacro implements Facade.
func (pp *Preprocessor) DefineMacro(name atom.ID, loc source.Location, body []token.Token) {
	pp.macros[name] = &Macro{Name: loc, Body: body}
}

// RemoveMacro implements Facade.
func (pp *Preprocessor) RemoveMacro(loc source.Location, name atom.ID) bool {
	if _, ok := pp.macros[name]; ok {
		delete(pp.macros, name)
		return true
	}
	return false
}

// EnterFile implements Facade: resolves and pushes a new file onto the
// stack for "#include"/"#tryinclude".
func (pp *Preprocessor) EnterFile(kind lexer.DirectiveKind, system bool, beginLoc source.Location, filename, currentPath string) bool {
	path, contents, ok := pp.loader.Load(filename, currentPath, system)
	if !ok {
		if kind == lexer.DirectiveInclude {
			pp.cc.Report(beginLoc, diag.BadIncludeSyntax)
		}
		return false
	}

	file := source.NewFile(path, contents)
	rng := pp.cc.Locs.NewFileRange(file, beginLoc)

	opts := pp.Current().Options() // #pragma newdecls is inherited by includes.
	l := lexer.New(pp.cc, pp, opts, file, rng)
	pp.stack = append(pp.stack, l)
	return true
}

// HandleEndOfFile implements Facade: pops the exhausted top lexer and
// reports whether another file remains to resume scanning from.
func (pp *Preprocessor) HandleEndOfFile() bool {
	if len(pp.stack) <= 1 {
		return false
	}
	pp.stack = pp.stack[:len(pp.stack)-1]
	return true
}

// AddComment implements Facade.
func (pp *Preprocessor) AddComment(pos lexer.CommentPosition, blocks []lexer.CommentBlock) {
	pp.comments = append(pp.comments, CommentRecord{Pos: pos, Blocks: blocks})
}

// Comments returns every attributed comment block collected so far.
func (pp *Preprocessor) Comments() []CommentRecord { return pp.comments }

// SetNextDeprecationMessage implements Facade.
func (pp *Preprocessor) SetNextDeprecationMessage(msg string) {
	pp.nextDeprecation = msg
}

// TakeDeprecationMessage returns and clears the pending "#pragma
// deprecated" message, for the parser to attach to the next declaration.
func (pp *Preprocessor) TakeDeprecationMessage() string {
	msg := pp.nextDeprecation
	pp.nextDeprecation = ""
	return msg
}
