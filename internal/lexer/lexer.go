package lexer

import (
	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// Options scopes the small per-file configuration spec.md's Lexer State
// names explicitly: TraceComments gates the Comment Engine's attribution
// pass (4.F), and RequireNewdecls is the file-local value #pragma newdecls
// mutates (4.G's pragma handler, "scoped to this file... local
// modifications don't escape").
type Options struct {
	TraceComments   bool
	RequireNewdecls bool
}

// CommentBlock is one raw comment, kept with its own Kind per SPEC_FULL's
// supplemental comment-trivia feature (original_source differentiates
// single-line vs block comments while grouping them).
type CommentBlock struct {
	Kind  token.Kind // always KindComment; Block distinguishes shape.
	Block bool       // true for /* ... */, false for // ...
	Start token.Pos
	End   token.Pos
}

// Lexer is spec.md section 2.J's Main Scanner: it drives the cursor (4.A),
// the literal scanners (4.D), the identifier scanner (4.E), the comment
// engine (4.F), and its own if-stack (4.H), surfacing tokens to the parser
// through next. Everything it can't resolve locally — macro tables, file
// stacks, constant-expression evaluation — goes through Facade.
type Lexer struct {
	cc     CompileContext
	facade Facade
	opts   Options

	cur *cursor
	rng source.Range

	lineNumber        int
	lexingForDirective bool
	suppressErrors     bool
	lexedTokensOnLine  bool
	chewWarned         bool

	literal []byte

	ifstack []IfContext

	pendingComments  []CommentBlock
	pendingPosition  CommentPosition
	blockStartLine   int
	lastCommentBlock bool
	lastTokenLine    int
}

// New constructs a Lexer over one already-loaded file, ready to scan from
// its first byte.
func New(cc CompileContext, facade Facade, opts Options, file *source.File, rng source.Range) *Lexer {
	return &Lexer{
		cc:         cc,
		facade:     facade,
		opts:       opts,
		cur:        newCursor(file.Contents, rng),
		rng:        rng,
		lineNumber: 1,
	}
}

// Options returns the lexer's current (possibly #pragma-mutated) options.
func (l *Lexer) Options() Options { return l.opts }

// Line returns the lexer's current 1-based line number, used by macro
// expansion's __LINE__ substitution.
func (l *Lexer) Line() int { return l.lineNumber }

// PushMacroSource installs buf (a macro's re-serialized replacement text)
// as a new virtual-source frame on top of this lexer's cursor, per spec.md
// section 9's design note. Called by the Facade's EnterMacro.
func (l *Lexer) PushMacroSource(buf string, rng source.Range) {
	l.cur.pushMacro(buf, rng)
}

// Path is the name of the file this lexer was created over; macro frames
// pushed onto its cursor do not change it.
func (l *Lexer) Path() string { return l.rng.Name }

func (l *Lexer) report(kind diag.Kind, args ...any) *diag.Builder {
	if l.suppressErrors {
		return &diag.Builder{}
	}
	return l.cc.Report(l.cur.lastpos(), kind, args...)
}

func (l *Lexer) reportAt(loc source.Location, kind diag.Kind, args ...any) *diag.Builder {
	if l.suppressErrors {
		return &diag.Builder{}
	}
	return l.cc.Report(loc, kind, args...)
}

// Next implements spec.md 4.J's next(out): it produces exactly one logical
// token per call. The KindNone results of scanOnce (a directive line, a
// macro entry) are looped over here, so Next never returns KindNone.
func (l *Lexer) Next() token.Token {
	for {
		tok := l.scanOnce()
		if tok.Kind == token.KindNone {
			// An "#include" pushes a new Lexer onto the Facade's file
			// stack mid-call; once that's happened, every further token
			// comes from there until it's exhausted, not from resuming
			// our own scan.
			if top := l.facade.Current(); top != nil && top != l {
				return top.Next()
			}
			continue
		}
		if tok.Kind == token.KindEOF && l.facade.HandleEndOfFile() {
			// This file is exhausted but an includer remains on the
			// file stack; resume there instead of surfacing this EOF,
			// symmetric with the #include-entry delegation above.
			return l.facade.Current().Next()
		}
		return tok
	}
}

// scanOnce is one pass of the contract in 4.J, steps 1-7. It may return a
// KindNone token to signal "produced no token, caller should loop" (a
// directive line was processed, or a macro body was just entered).
func (l *Lexer) scanOnce() token.Token {
	if l.skipping() {
		l.runSkipEngine()
	}

	l.consumeWhitespace()

	startLoc := l.cur.loc()
	startLine := l.lineNumber

	ch := l.cur.peekChar()

	if ch == 0 && l.cur.atFrameEnd() {
		if l.cur.popFrame() {
			return token.Token{Kind: token.KindNone}
		}
		if l.opts.TraceComments {
			l.flushPending(startLine)
		}
		l.checkIfStackAtEOF()
		return l.makeToken(token.KindEOF, startLoc, startLine)
	}

	if ch == '#' && !l.lexedTokensOnLine && !l.lexingForDirective {
		l.cur.readChar()
		l.scanDirective()
		return token.Token{Kind: token.KindNone}
	}

	tok := l.scanPunctuatorOrLiteral(ch, startLoc, startLine)

	if tok.Kind == token.KindComment {
		l.handleComment(tok)
		return token.Token{Kind: token.KindNone}
	}

	// An EOL token has already advanced to the next line (advanceLine), so
	// it must not mark that fresh line as holding a token: a '#' opening it
	// still starts a directive.
	if tok.Kind != token.KindNone && tok.Kind != token.KindEOL {
		if l.opts.TraceComments && !l.lexingForDirective {
			l.flushPending(tok.Start.Line)
		}
		l.lexedTokensOnLine = true
		l.lastTokenLine = startLine
	}
	tok.End = token.Pos{Loc: l.cur.loc(), Line: l.lineNumber}
	return tok
}

func (l *Lexer) makeToken(kind token.Kind, start source.Location, startLine int) token.Token {
	return token.Token{
		Kind:  kind,
		Start: token.Pos{Loc: start, Line: startLine},
		End:   token.Pos{Loc: l.cur.loc(), Line: l.lineNumber},
	}
}

// consumeWhitespace skips spaces/tabs always, and newlines unless
// lexingForDirective — invariant 3: "a directive consumes no newline as
// whitespace; a CR/LF yields EOL" is enforced by the caller checking for
// the newline byte itself in scanPunctuatorOrLiteral, not here.
func (l *Lexer) consumeWhitespace() {
	for {
		ch := l.cur.peekChar()
		switch ch {
		case ' ', '\t', '\v', '\f':
			l.cur.readChar()
		case '\r', '\n':
			if l.lexingForDirective {
				// Leave the terminator for the main dispatch to turn
				// into an EOL token (invariant 3).
				return
			}
			l.cur.readChar()
			if ch == '\r' {
				l.cur.matchChar('\n')
			}
			l.advanceLine()
		default:
			return
		}
	}
}

func (l *Lexer) advanceLine() {
	l.lineNumber++
	l.lexedTokensOnLine = false
	l.chewWarned = false
}

// checkIfStackAtEOF reports unterminated #if/#else blocks at true end of
// file, per spec.md 4.H and the error catalogue's unterminated_if/
// unterminated_else.
func (l *Lexer) checkIfStackAtEOF() {
	for _, ctx := range l.ifstack {
		if ctx.ElseLoc.IsSet() {
			l.reportAt(ctx.FirstLoc, diag.UnterminatedElse)
		} else {
			l.reportAt(ctx.FirstLoc, diag.UnterminatedIf)
		}
	}
	l.ifstack = nil
}
