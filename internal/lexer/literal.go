// Literal scanning: spec.md section 4.D. Adapted in shape from
// assyrianic-sptools/sptools/tokenizer.go's lexDecimal/lexHex/lexFloat
// family and corrected against original_source/v2/lexer.cpp's
// numberLiteral/hexLiteral/readEscapeCode per the two documented bug fixes
// (hex x16, \x escape) spec.md section 9 requires.
package lexer

import (
	"math"
	"math/bits"

	"github.com/assyrianic/spc/internal/diag"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

func hexValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	default:
		return uint64(c-'A') + 10
	}
}

// tryMulAdd computes acc*base+digit, reporting whether it overflowed a
// uint64 — the "checked multiply and add" accumulator spec.md 4.D requires
// for both the decimal (base 10) and hex (base 16) literal paths.
func tryMulAdd(acc, base, digit uint64) (uint64, bool) {
	hi, lo := bits.Mul64(acc, base)
	if hi != 0 {
		return acc, false
	}
	sum, carry := bits.Add64(lo, digit, 0)
	if carry != 0 {
		return acc, false
	}
	return sum, true
}

// scanNumber handles the integer/hex/float family. first is the digit the
// caller already consumed to decide this was a number.
func (l *Lexer) scanNumber(first byte, startLoc source.Location, startLine int) token.Token {
	l.literal = l.literal[:0]
	l.literal = append(l.literal, first)
	for isDigit(l.cur.peekChar()) {
		l.literal = append(l.literal, l.cur.readChar())
	}

	if len(l.literal) == 1 && first == '0' && (l.cur.peekChar() == 'x' || l.cur.peekChar() == 'X') {
		l.cur.readChar()
		return l.scanHex(startLoc, startLine)
	}

	if l.cur.peekChar() == '.' && isDigit(l.cur.peekCharAt(1)) {
		return l.scanFloat(startLoc, startLine)
	}

	var acc uint64
	overflowed := false
	for _, c := range l.literal {
		if v, ok := tryMulAdd(acc, 10, uint64(c-'0')); ok {
			acc = v
		} else {
			overflowed = true
			break
		}
	}
	if overflowed {
		l.report(diag.IntLiteralOverflow)
	}
	tok := l.makeToken(token.KindIntegerLiteral, startLoc, startLine)
	tok.Int = acc
	return tok
}

// scanHex decodes the digit run after "0x"/"0X" with a checked x16 (not the
// source's x10 bug-shape) multiply-and-add, per spec.md section 9's
// open question 1.
func (l *Lexer) scanHex(startLoc source.Location, startLine int) token.Token {
	var acc uint64
	overflowed := false
	for isHexDigit(l.cur.peekChar()) {
		c := l.cur.readChar()
		if overflowed {
			continue
		}
		if v, ok := tryMulAdd(acc, 16, hexValue(c)); ok {
			acc = v
		} else {
			overflowed = true
		}
	}
	if overflowed {
		l.report(diag.IntLiteralOverflow)
	}
	tok := l.makeToken(token.KindHexLiteral, startLoc, startLine)
	tok.Int = acc
	return tok
}

// scanFloat is entered once the cursor has confirmed "<digits>.<digit>".
// The decoder accumulates intpart + fraction*10^-k then applies an optional
// signed exponent, matching spec.md 4.D's non-round-tripping, hand-rolled
// accumulation rather than a strconv.ParseFloat-style exact parse.
func (l *Lexer) scanFloat(startLoc source.Location, startLine int) token.Token {
	var intPart float64
	for _, c := range l.literal {
		intPart = intPart*10 + float64(c-'0')
	}

	l.cur.readChar() // consume '.'

	var fracPart float64
	scale := 1.0
	for isDigit(l.cur.peekChar()) {
		c := l.cur.readChar()
		fracPart = fracPart*10 + float64(c-'0')
		scale *= 10
	}
	value := intPart + fracPart/scale

	if l.cur.peekChar() == 'e' || l.cur.peekChar() == 'E' {
		l.cur.readChar()
		negExp := false
		if l.cur.peekChar() == '-' {
			negExp = true
			l.cur.readChar()
		} else {
			l.cur.matchChar('+')
		}
		if !isDigit(l.cur.peekChar()) {
			l.report(diag.ExpectedDigitForFloat)
		} else {
			var exp int
			for isDigit(l.cur.peekChar()) {
				exp = exp*10 + int(l.cur.readChar()-'0')
			}
			mult := 1.0
			for i := 0; i < exp; i++ {
				mult *= 10
			}
			if negExp {
				value /= mult
			} else {
				value *= mult
			}
		}
	}

	tok := l.makeToken(token.KindFloatLiteral, startLoc, startLine)
	tok.Float = value
	return tok
}

// escapeSentinel is the "return sentinel INT_MAX" value spec.md 4.D's
// escape table specifies for an unrecognized \<c>.
const escapeSentinel int32 = math.MaxInt32

var simpleEscapes = map[byte]int32{
	'\\': '\\', '\'': '\'', '"': '"', '%': '%',
	'a': 7, 'b': 8, 'e': 27, 'f': 12, 'n': 10, 'r': 13, 't': 9, 'v': 11,
}

// readEscape decodes one escape sequence after the leading backslash has
// already been consumed. Unlike original_source/v2/lexer.cpp's
// readEscapeCode — which overwrites its accumulator with the next raw
// character before returning, discarding the decoded \x payload entirely —
// this keeps the decoded value in its own variable throughout, per spec.md
// section 9's open question 2.
func (l *Lexer) readEscape() int32 {
	c := l.cur.readChar()

	if v, ok := simpleEscapes[c]; ok {
		return v
	}

	if c == 'x' {
		var value int32
		digits := 0
		for digits < 2 && isHexDigit(l.cur.peekChar()) {
			value = value*16 + int32(hexValue(l.cur.readChar()))
			digits++
		}
		if digits == 0 {
			l.report(diag.UnknownEscapeCode, 'x')
			return escapeSentinel
		}
		l.cur.matchChar(';')
		return value
	}

	if isDigit(c) {
		value := int32(c - '0')
		for isDigit(l.cur.peekChar()) {
			value = value*10 + int32(l.cur.readChar()-'0')
		}
		l.cur.matchChar(';')
		return value
	}

	l.report(diag.UnknownEscapeCode, rune(c))
	return escapeSentinel
}

// scanChar implements 4.D's character-literal rules. The opening quote has
// already been consumed by the caller.
func (l *Lexer) scanChar(startLoc source.Location, startLine int) token.Token {
	if l.cur.peekChar() == '\'' {
		l.cur.readChar()
		l.report(diag.InvalidCharLiteral)
		return l.makeToken(token.KindUnknown, startLoc, startLine)
	}

	var value rune
	if l.cur.peekChar() == '\\' {
		l.cur.readChar()
		value = rune(l.readEscape())
	} else {
		value = rune(l.cur.readChar())
	}

	switch l.cur.peekChar() {
	case '\'':
		l.cur.readChar()
	case '"':
		l.report(diag.BadCharTerminator)
		l.cur.readChar() // typo tolerance.
	default:
		l.report(diag.BadCharTerminator)
	}

	tok := l.makeToken(token.KindCharLiteral, startLoc, startLine)
	tok.Char = value
	return tok
}

// scanString implements 4.D's string-literal rules. The opening quote has
// already been consumed by the caller.
func (l *Lexer) scanString(startLoc source.Location, startLine int) token.Token {
	l.literal = l.literal[:0]
	for {
		c := l.cur.peekChar()
		if c == '"' {
			l.cur.readChar()
			break
		}
		if c == '\r' || c == '\n' || (c == 0 && l.cur.atFrameEnd()) {
			l.report(diag.UnterminatedString)
			break
		}
		l.cur.readChar()
		if c == '\\' {
			v := l.readEscape()
			if v == escapeSentinel {
				l.literal = append(l.literal, '?')
			} else {
				l.literal = append(l.literal, byte(v))
			}
			continue
		}
		l.literal = append(l.literal, c)
	}

	tok := l.makeToken(token.KindStringLiteral, startLoc, startLine)
	tok.Atom = l.cc.Add(l.literal)
	return tok
}
