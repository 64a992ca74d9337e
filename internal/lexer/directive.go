// Directive engine: spec.md section 4.G, plus the punctuator dispatch
// spec.md 4.J step 4 describes. Directive names and pragma subcommands are
// resolved through their own small table (directiveKeywords) rather than
// the language Keywords table, since both vocabularies share spellings
// (e.g. the "if" statement keyword vs the "if" directive) and spec.md's
// "classified via the same keyword mechanism, but the keyword set contains
// the directive tokens" is read here as "a keyword mechanism", not
// literally the same map.
package lexer

import (
	"strings"

	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

var directiveKeywords = map[string]token.Kind{
	"define":     token.KindMDefine,
	"undef":      token.KindMUndef,
	"if":         token.KindMIf,
	"else":       token.KindMElse,
	"endif":      token.KindMEndif,
	"include":    token.KindMInclude,
	"tryinclude": token.KindMTryInclude,
	"endinput":   token.KindMEndInput,
	"pragma":     token.KindMPragma,
}

// scanPunctuatorOrLiteral is spec.md 4.J step 4: dispatch by leading
// character into the literal scanners, the identifier scanner, the comment
// engine, or a maximal-munch punctuator match.
func (l *Lexer) scanPunctuatorOrLiteral(ch byte, startLoc source.Location, startLine int) token.Token {
	switch {
	case isDigit(ch):
		l.cur.readChar()
		return l.scanNumber(ch, startLoc, startLine)
	case isIdentStart(ch):
		l.cur.readChar()
		return l.scanIdentifier(ch, startLoc, startLine)
	case ch == '\'':
		l.cur.readChar()
		return l.scanChar(startLoc, startLine)
	case ch == '"':
		l.cur.readChar()
		return l.scanString(startLoc, startLine)
	case ch == '\r' || ch == '\n':
		// Only reachable when lexingForDirective, since consumeWhitespace
		// otherwise consumes newlines itself (invariant 3). The line count
		// still has to advance here, since this is the only place that
		// terminator byte is ever consumed.
		l.cur.readChar()
		if ch == '\r' {
			l.cur.matchChar('\n')
		}
		tok := l.makeToken(token.KindEOL, startLoc, startLine)
		l.advanceLine()
		return tok
	}

	l.cur.readChar()
	switch ch {
	case '.':
		if l.cur.matchChar('.') {
			if l.cur.matchChar('.') {
				return l.makeToken(token.KindEllipsis, startLoc, startLine)
			}
			return l.makeToken(token.KindDotDot, startLoc, startLine)
		}
		return l.makeToken(token.KindDot, startLoc, startLine)
	case '/':
		switch {
		case l.cur.matchChar('/'):
			return l.scanLineComment(startLoc, startLine)
		case l.cur.matchChar('*'):
			return l.scanBlockComment(startLoc, startLine)
		case l.cur.matchChar('='):
			return l.makeToken(token.KindAssignDiv, startLoc, startLine)
		}
		return l.makeToken(token.KindSlash, startLoc, startLine)
	case '+':
		switch {
		case l.cur.matchChar('='):
			return l.makeToken(token.KindAssignAdd, startLoc, startLine)
		case l.cur.matchChar('+'):
			return l.makeToken(token.KindIncrement, startLoc, startLine)
		}
		return l.makeToken(token.KindPlus, startLoc, startLine)
	case '-':
		switch {
		case l.cur.matchChar('='):
			return l.makeToken(token.KindAssignSub, startLoc, startLine)
		case l.cur.matchChar('-'):
			return l.makeToken(token.KindDecrement, startLoc, startLine)
		}
		return l.makeToken(token.KindMinus, startLoc, startLine)
	case '*':
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindAssignMul, startLoc, startLine)
		}
		return l.makeToken(token.KindStar, startLoc, startLine)
	case '%':
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindAssignMod, startLoc, startLine)
		}
		return l.makeToken(token.KindPercent, startLoc, startLine)
	case '~':
		return l.makeToken(token.KindTilde, startLoc, startLine)
	case '?':
		return l.makeToken(token.KindQMark, startLoc, startLine)
	case '&':
		switch {
		case l.cur.matchChar('&'):
			return l.makeToken(token.KindAnd, startLoc, startLine)
		case l.cur.matchChar('='):
			return l.makeToken(token.KindAssignBitAnd, startLoc, startLine)
		}
		return l.makeToken(token.KindBitAnd, startLoc, startLine)
	case '|':
		switch {
		case l.cur.matchChar('|'):
			return l.makeToken(token.KindOr, startLoc, startLine)
		case l.cur.matchChar('='):
			return l.makeToken(token.KindAssignBitOr, startLoc, startLine)
		}
		return l.makeToken(token.KindBitOr, startLoc, startLine)
	case '^':
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindAssignBitXor, startLoc, startLine)
		}
		return l.makeToken(token.KindBitXor, startLoc, startLine)
	case '<':
		if l.cur.matchChar('<') {
			if l.cur.matchChar('=') {
				return l.makeToken(token.KindAssignShl, startLoc, startLine)
			}
			return l.makeToken(token.KindShl, startLoc, startLine)
		}
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindLe, startLoc, startLine)
		}
		return l.makeToken(token.KindLt, startLoc, startLine)
	case '>':
		if l.cur.matchChar('>') {
			if l.cur.matchChar('>') {
				if l.cur.matchChar('=') {
					return l.makeToken(token.KindAssignUShr, startLoc, startLine)
				}
				return l.makeToken(token.KindUShr, startLoc, startLine)
			}
			return l.makeToken(token.KindShr, startLoc, startLine)
		}
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindGe, startLoc, startLine)
		}
		return l.makeToken(token.KindGt, startLoc, startLine)
	case '!':
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindNotEquals, startLoc, startLine)
		}
		return l.makeToken(token.KindNot, startLoc, startLine)
	case '=':
		if l.cur.matchChar('=') {
			return l.makeToken(token.KindEquals, startLoc, startLine)
		}
		return l.makeToken(token.KindAssign, startLoc, startLine)
	case '(':
		return l.makeToken(token.KindLParen, startLoc, startLine)
	case ')':
		return l.makeToken(token.KindRParen, startLoc, startLine)
	case '[':
		return l.makeToken(token.KindLBracket, startLoc, startLine)
	case ']':
		return l.makeToken(token.KindRBracket, startLoc, startLine)
	case '{':
		return l.makeToken(token.KindLBrace, startLoc, startLine)
	case '}':
		return l.makeToken(token.KindRBrace, startLoc, startLine)
	case ',':
		return l.makeToken(token.KindComma, startLoc, startLine)
	case ':':
		return l.makeToken(token.KindColon, startLoc, startLine)
	case ';':
		return l.makeToken(token.KindSemicolon, startLoc, startLine)
	case '#':
		return l.makeToken(token.KindHash, startLoc, startLine)
	}

	if !l.lexingForDirective {
		l.report(diag.UnexpectedChar, rune(ch))
	}
	return l.makeToken(token.KindUnknown, startLoc, startLine)
}

// readBareIdent reads a directive name or pragma subcommand directly off
// the cursor, bypassing the identifier scanner's macro-expansion/keyword/
// label classification — directive vocabulary is a separate, restricted
// namespace (spec.md 4.G).
func (l *Lexer) readBareIdent() (string, bool) {
	for l.cur.peekChar() == ' ' || l.cur.peekChar() == '\t' {
		l.cur.readChar()
	}
	if !isIdentStart(l.cur.peekChar()) {
		return "", false
	}
	l.literal = l.literal[:0]
	l.literal = append(l.literal, l.cur.readChar())
	for isIdentChar(l.cur.peekChar()) {
		l.literal = append(l.literal, l.cur.readChar())
	}
	return string(l.literal), true
}

// scanDirective implements 4.G in full: it is entered with the leading '#'
// already consumed and lexedTokensOnLine known false.
func (l *Lexer) scanDirective() {
	directiveLoc := l.cur.lastpos()
	beginLine := l.lineNumber
	wasDirective := l.lexingForDirective
	l.lexingForDirective = true
	prevExpansion := l.facade.SetMacroExpansionEnabled(false)
	defer func() {
		l.facade.SetMacroExpansionEnabled(prevExpansion)
		l.lexingForDirective = wasDirective
	}()

	name, ok := l.readBareIdent()
	if !ok {
		l.report(diag.BadDirectiveToken, "")
		l.chewLine()
		return
	}

	kind, known := directiveKeywords[name]
	if !known {
		l.report(diag.UnknownDirective, name)
		l.chewLine()
		return
	}

	switch kind {
	case token.KindMDefine:
		l.doDefine(directiveLoc)
	case token.KindMUndef:
		l.doUndef(directiveLoc)
	case token.KindMIf:
		l.doIf(directiveLoc)
	case token.KindMElse:
		l.handleElse(directiveLoc)
	case token.KindMEndif:
		l.handleEndif(directiveLoc)
	case token.KindMInclude:
		l.doInclude(directiveLoc, DirectiveInclude)
	case token.KindMTryInclude:
		l.doInclude(directiveLoc, DirectiveTryInclude)
	case token.KindMEndInput:
		l.doEndInput()
		return // no chew: the cursor has been driven to end of input.
	case token.KindMPragma:
		l.doPragma(directiveLoc)
	}

	// A handler that itself read through to EOL (a #define body, an #if/
	// #pragma condition) already consumed and counted that line's
	// terminator; chewing again here would misread the next line as
	// "extra characters" on this one.
	if l.lineNumber == beginLine {
		l.chewLine()
	}
}

// chewLine implements original_source's chewLineAfterDirective: a
// byte-level scan over the rest of the directive line that reports
// PPExtraCharacters (error severity) at most once per line for any
// non-whitespace content other than a trailing "//" comment.
func (l *Lexer) chewLine() {
	for {
		ch := l.cur.peekChar()
		if ch == '\r' || ch == '\n' || (ch == 0 && l.cur.atFrameEnd()) {
			break
		}
		if ch == ' ' || ch == '\t' {
			l.cur.readChar()
			continue
		}
		if ch == '/' && l.cur.peekCharAt(1) == '/' {
			break // a trailing comment is not "extra characters".
		}
		if !l.chewWarned {
			l.chewWarned = true
			l.report(diag.PPExtraCharacters)
		}
		l.cur.readChar()
	}
}

func (l *Lexer) doDefine(directiveLoc source.Location) {
	tok := l.Next()
	if tok.Kind != token.KindName {
		l.report(diag.BadDirectiveToken, "define")
		return
	}
	name := tok.Atom

	if l.cur.peekChar() == '(' {
		l.report(diag.MacroFunctionsUnsupported)
		return
	}

	var body []token.Token
	for {
		t := l.Next()
		if t.Kind == token.KindEOL || t.Kind == token.KindEOF {
			break
		}
		body = append(body, t)
	}
	l.facade.DefineMacro(name, directiveLoc, body)
}

func (l *Lexer) doUndef(directiveLoc source.Location) {
	tok := l.Next()
	if tok.Kind != token.KindName {
		l.report(diag.BadDirectiveToken, "undef")
		return
	}
	l.facade.RemoveMacro(directiveLoc, tok.Atom)
}

func (l *Lexer) doIf(directiveLoc source.Location) {
	value, ok := l.facade.Eval(l)
	l.enterIf(directiveLoc, value, ok)
}

func (l *Lexer) doInclude(directiveLoc source.Location, kind DirectiveKind) {
	ch := l.cur.firstNonSpace()
	var closing byte
	var system bool
	switch ch {
	case '"':
		closing = '"'
	case '<':
		closing = '>'
		system = true
	default:
		l.report(diag.BadIncludeSyntax)
		return
	}
	l.cur.readChar()

	var name strings.Builder
	for {
		c := l.cur.peekChar()
		if c == closing {
			l.cur.readChar()
			break
		}
		if c == '\r' || c == '\n' || (c == 0 && l.cur.atFrameEnd()) {
			l.report(diag.BadIncludeSyntax)
			break
		}
		name.WriteByte(l.cur.readChar())
	}

	l.facade.EnterFile(kind, system, directiveLoc, name.String(), l.Path())
}

func (l *Lexer) doEndInput() {
	f := l.cur.top()
	f.pos = len(f.buf)
	l.ifstack = nil // suppress unterminated-if diagnostics, per 4.G.
}

func (l *Lexer) doPragma(directiveLoc source.Location) {
	name, ok := l.readBareIdent()
	if !ok {
		l.report(diag.PragmaMustHaveName)
		return
	}

	switch name {
	case "deprecated":
		msg := strings.TrimSpace(l.cur.readUntilLineEnd())
		l.facade.SetNextDeprecationMessage(msg)
	case "newdecls":
		value, ok := l.readBareIdent()
		switch {
		case !ok:
			l.report(diag.BadPragmaNewdecls)
		case value == "required":
			l.opts.RequireNewdecls = true
		case value == "optional":
			l.opts.RequireNewdecls = false
		default:
			l.report(diag.BadPragmaNewdecls)
		}
	case "semicolon":
		l.facade.Eval(l) // parsed and discarded, per spec.md section 9 note 4.
	case "dynamic":
		if value, ok := l.facade.Eval(l); ok {
			l.cc.ChangePragmaDynamic(directiveLoc, value)
		}
	default:
		l.report(diag.UnknownPragma, name)
	}
}

// scanDirectiveWhileSkipping is 4.H's restricted directive scan: only the
// conditional directives are recognized while fast-forwarding an inactive
// region; anything else is left for runSkipEngine to discard as ordinary
// skipped text.
func (l *Lexer) scanDirectiveWhileSkipping() {
	directiveLoc := l.cur.lastpos()
	name, ok := l.readBareIdent()
	if !ok {
		return
	}
	switch name {
	case "if":
		l.enterIf(directiveLoc, 0, false)
	case "else":
		l.handleElse(directiveLoc)
	case "endif":
		l.handleEndif(directiveLoc)
	}
}
