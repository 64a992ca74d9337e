package lexer

import (
	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
)

// IfState is one of spec.md 4.H's four conditional-region states.
type IfState uint8

const (
	Active IfState = iota
	Ignoring
	Inactive
	Dead
)

// IfContext is one entry of the Lexer-owned if-stack (spec.md section 3).
type IfContext struct {
	FirstLoc source.Location
	State    IfState
	ElseLoc  source.Location // set (IsSet()) once an #else has been seen.
}

// enterIf pushes a new context after evaluating an #if's condition, per the
// transition table's "(top) X -> push(...)" column. value is the evaluated
// constant expression; its truthiness selects Active vs Ignoring unless the
// stack's current top is already not Active, in which case the new context
// is always Dead regardless of value (a skipped region's nested #if never
// re-activates).
func (l *Lexer) enterIf(loc source.Location, value int64, evaluated bool) {
	if l.topIfActive() {
		state := Ignoring
		if evaluated && value != 0 {
			state = Active
		}
		l.ifstack = append(l.ifstack, IfContext{FirstLoc: loc, State: state})
		return
	}
	l.ifstack = append(l.ifstack, IfContext{FirstLoc: loc, State: Dead})
}

// topIfActive reports whether there is no enclosing if-context, or the
// current top is Active — i.e. whether a freshly pushed #if should be
// evaluated at all rather than forced Dead.
func (l *Lexer) topIfActive() bool {
	if len(l.ifstack) == 0 {
		return true
	}
	return l.ifstack[len(l.ifstack)-1].State == Active
}

// handleElse applies the transition table's #else column.
func (l *Lexer) handleElse(loc source.Location) {
	if len(l.ifstack) == 0 {
		l.reportAt(loc, diag.ElseWithoutIf)
		return
	}
	top := &l.ifstack[len(l.ifstack)-1]
	if top.ElseLoc.IsSet() {
		l.reportAt(loc, diag.ElseDeclaredTwice)
		return
	}
	top.ElseLoc = loc
	switch top.State {
	case Active:
		top.State = Inactive
	case Ignoring:
		top.State = Active
	case Inactive:
		l.reportAt(loc, diag.ElseDeclaredTwice)
	case Dead:
		// no-op: #else inside a Dead context is neutralized.
	}
}

// handleEndif pops the current if-context.
func (l *Lexer) handleEndif(loc source.Location) {
	if len(l.ifstack) == 0 {
		l.reportAt(loc, diag.EndifWithoutIf)
		return
	}
	l.ifstack = l.ifstack[:len(l.ifstack)-1]
}

// skipping reports whether the lexer is currently inside an inactive
// conditional region and must fast-forward via the restricted directive
// scan instead of normal scanning.
func (l *Lexer) skipping() bool {
	return len(l.ifstack) != 0 && l.ifstack[len(l.ifstack)-1].State != Active
}

// runSkipEngine is spec.md 4.H: it advances line by line, looking only for
// a leading '#' and dispatching through the restricted directive scan,
// until the if-stack is empty or its top becomes Active again.
func (l *Lexer) runSkipEngine() {
	for l.skipping() {
		l.consumeWhitespace()
		ch := l.cur.peekChar()
		if ch == 0 && l.cur.atFrameEnd() {
			return // checkIfStackAtEOF (called from scanOnce) reports this.
		}
		if ch == '#' && !l.lexedTokensOnLine {
			l.cur.readChar()
			l.scanDirectiveWhileSkipping()
		}
		// Whatever remains of the line (a directive's condition, or any
		// other skipped content) is discarded wholesale.
		for {
			c := l.cur.peekChar()
			if c == '\r' || c == '\n' || (c == 0 && l.cur.atFrameEnd()) {
				break
			}
			l.cur.readChar()
		}
	}
}
