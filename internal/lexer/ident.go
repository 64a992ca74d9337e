// Identifier scanning: spec.md section 4.E. The classification order below
// is copied verbatim in meaning from spec.md's numbered rationale, grounded
// on original_source/v2/lexer.cpp's handleIdentifier (macro expansion is
// checked before keyword lookup specifically to avoid misclassifying an
// unexpanded macro name).
package lexer

import (
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// scanIdentifier reads an identifier/keyword/label/name starting at the
// byte the caller already consumed (first).
func (l *Lexer) scanIdentifier(first byte, startLoc source.Location, startLine int) token.Token {
	l.literal = l.literal[:0]
	l.literal = append(l.literal, first)
	for isIdentChar(l.cur.peekChar()) {
		l.literal = append(l.literal, l.cur.readChar())
	}
	id := l.cc.Add(l.literal)

	// Step 1: macro expansion, only when enabled (disabled while capturing
	// a #define body or a #undef target, per 4.E's rationale).
	if l.facade.MacroExpansionEnabled() && l.facade.EnterMacro(startLoc, id, l) {
		l.lexedTokensOnLine = true
		return token.Token{Kind: token.KindNone}
	}

	// Step 2: keyword (directive names are only resolved by the directive
	// engine itself, through its own directiveKeywords table, not here).
	if kind := l.facade.FindKeyword(id); kind != token.KindNone && kind.IsKeyword() {
		tok := l.makeToken(kind, startLoc, startLine)
		return tok
	}

	// Step 3: label.
	if l.cur.peekChar() == ':' {
		l.cur.readChar()
		tok := l.makeToken(token.KindLabel, startLoc, startLine)
		tok.Atom = id
		return tok
	}

	// Step 4: plain name.
	tok := l.makeToken(token.KindName, startLoc, startLine)
	tok.Atom = id
	return tok
}
