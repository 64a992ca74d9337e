// Package preprocessor implements spec.md section 2.I's "Preprocessor
// Facade": the macro table, the file stack, and the constant-expression
// evaluator the lexer calls into through internal/lexer.Facade. Grounded on
// assyrianic-sptools/sptools/preprocessor.go's Macro/MakeObjMacro/Apply and
// evalCond/evalOr/.../evalTerm grammar, adapted from that file's batch,
// token-list pass into the streaming, cursor-interleaved design
// original_source/v2/lexer.cpp actually implements (handlePreprocessorDirective
// calling back into the same scan loop). Function-like macro parameters are
// out of scope (spec.md Non-goals), so Macro here is always object-like.
package preprocessor

import (
	"strconv"

	"github.com/assyrianic/spc/internal/atom"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// Macro is an object-like macro definition: a name and its captured
// replacement token list, owned by the macro table for the compile
// context's lifetime (spec.md section 5).
type Macro struct {
	Name source.Location // location of the #define that introduced it.
	Body []token.Token
}

// lineAtom and expand implement a supplemental feature SPEC_FULL.md section
// 4 documents beyond spec.md's #define handler: __LINE__ substitution
// inside an object-like macro body, grounded on
// assyrianic-sptools/sptools/preprocessor.go's Macro.Apply.
func (m *Macro) expand(atoms *atom.Table, lineAtom atom.ID, currentLine int) []token.Token {
	out := make([]token.Token, len(m.Body))
	copy(out, m.Body)
	for i, t := range out {
		if t.Kind == token.KindName && t.Atom == lineAtom {
			out[i] = token.Token{Kind: token.KindIntegerLiteral, Int: uint64(currentLine), Start: t.Start, End: t.End}
		}
	}
	return out
}

// renderTokens re-serializes a macro's (already __LINE__-substituted) token
// list to source text, so it can be pushed back onto the cursor as a
// virtual source per spec.md section 9's design note. Literal kinds render
// their decoded payload back out; everything else renders via Kind.String,
// which already holds the exact spelling (punctuators, keywords,
// directives share one table in internal/token).
func renderTokens(atoms *atom.Table, toks []token.Token) string {
	var sb []byte
	for i, t := range toks {
		if i > 0 {
			sb = append(sb, ' ')
		}
		sb = append(sb, renderToken(atoms, t)...)
	}
	return string(sb)
}

func renderToken(atoms *atom.Table, t token.Token) string {
	switch t.Kind {
	case token.KindName:
		return atoms.String(t.Atom)
	case token.KindLabel:
		return atoms.String(t.Atom) + ":"
	case token.KindStringLiteral:
		return "\"" + atoms.String(t.Atom) + "\""
	case token.KindCharLiteral:
		return "'" + string(t.Char) + "'"
	case token.KindIntegerLiteral:
		return strconv.FormatUint(t.Int, 10)
	case token.KindHexLiteral:
		return "0x" + strconv.FormatUint(t.Int, 16)
	case token.KindFloatLiteral:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	default:
		return t.Kind.String()
	}
}
