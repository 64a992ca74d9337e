// Comment scanning and attribution: spec.md section 4.F. The attribution
// FSM is specified in full in spec.md (and again in section 9: "specified
// above in full so it can be re-implemented without looking at the
// source"), so this is a direct translation of that prose rather than a
// port of any one example file.
package lexer

import (
	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// scanLineComment consumes a "//" comment through end of line. The leading
// "//" has already been consumed by the caller.
func (l *Lexer) scanLineComment(startLoc source.Location, startLine int) token.Token {
	for {
		c := l.cur.peekChar()
		if c == '\r' || c == '\n' || (c == 0 && l.cur.atFrameEnd()) {
			break
		}
		l.cur.readChar()
	}
	l.lastCommentBlock = false
	return l.makeToken(token.KindComment, startLoc, startLine)
}

// scanBlockComment consumes a "/*...*/" comment, advancing the line counter
// on embedded terminators. The leading "/*" has already been consumed.
func (l *Lexer) scanBlockComment(startLoc source.Location, startLine int) token.Token {
	for {
		c := l.cur.peekChar()
		if c == 0 && l.cur.atFrameEnd() {
			l.report(diag.UnterminatedComment)
			break
		}
		l.cur.readChar()
		if c == '\r' {
			l.cur.matchChar('\n')
			l.advanceLine()
			continue
		}
		if c == '\n' {
			l.advanceLine()
			continue
		}
		if c == '*' && l.cur.peekChar() == '/' {
			l.cur.readChar()
			break
		}
	}
	l.lastCommentBlock = true
	return l.makeToken(token.KindComment, startLoc, startLine)
}

// handleComment feeds a just-scanned comment token into the front/tail
// attribution FSM, when tracing is enabled and the comment isn't inside a
// directive (spec.md 4.F: "only when the option to trace comments is on,
// and not inside a directive").
func (l *Lexer) handleComment(tok token.Token) {
	if !l.opts.TraceComments || l.lexingForDirective {
		return
	}
	cb := CommentBlock{Kind: token.KindComment, Block: l.lastCommentBlock, Start: tok.Start, End: tok.End}
	l.appendComment(cb)
}

// appendComment grows the in-progress comment block, or flushes it and
// starts a new one if cb is not contiguous with the previous comment (its
// start line is more than one past the previous comment's end line).
func (l *Lexer) appendComment(cb CommentBlock) {
	if len(l.pendingComments) > 0 {
		prevEnd := l.pendingComments[len(l.pendingComments)-1].End.Line
		if cb.Start.Line <= prevEnd+1 {
			l.pendingComments = append(l.pendingComments, cb)
			return
		}
		l.flushPending(cb.Start.Line)
	}

	if l.lexedTokensOnLine && cb.Start.Line == l.lastTokenLine {
		l.pendingPosition = CommentTail
	} else {
		l.pendingPosition = CommentFront
	}
	l.blockStartLine = cb.Start.Line
	l.pendingComments = append(l.pendingComments, cb)
}

// flushPending commits or discards the in-progress comment block once a
// terminating event (a real token, or a non-contiguous next comment) is
// known to start on terminatorLine.
func (l *Lexer) flushPending(terminatorLine int) {
	if len(l.pendingComments) == 0 {
		return
	}
	if l.pendingPosition == CommentFront && terminatorLine == l.blockStartLine {
		// Adjacent to the very token it precedes: treated as tail-of-nothing
		// and discarded, per 4.F.
		l.pendingComments = nil
		return
	}
	l.facade.AddComment(l.pendingPosition, l.pendingComments)
	l.pendingComments = nil
}
