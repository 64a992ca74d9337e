package lexer

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/assyrianic/spc/internal/atom"
	"github.com/assyrianic/spc/internal/compiler"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// stubFacade is a minimal Facade good enough to drive the Main Scanner in
// isolation: it resolves language keywords for real, and supports only the
// single-integer-body macros and single-integer #if conditions these tests
// need. The streaming directive/macro/if-stack integration is covered by
// internal/preprocessor's tests, which exercise the real Facade.
type stubFacade struct {
	cc           *compiler.Context
	keywordAtoms map[atom.ID]token.Kind
	macroExpand  bool
	macros       map[atom.ID][]token.Token
	comments     []recordedComment
}

type recordedComment struct {
	pos    CommentPosition
	blocks []CommentBlock
}

func newStubFacade(cc *compiler.Context) *stubFacade {
	s := &stubFacade{
		cc:           cc,
		keywordAtoms: make(map[atom.ID]token.Kind, len(token.Keywords)),
		macroExpand:  true,
		macros:       make(map[atom.ID][]token.Token),
	}
	for name, kind := range token.Keywords {
		s.keywordAtoms[cc.Add([]byte(name))] = kind
	}
	return s
}

func (s *stubFacade) MacroExpansionEnabled() bool { return s.macroExpand }

func (s *stubFacade) SetMacroExpansionEnabled(v bool) bool {
	prev := s.macroExpand
	s.macroExpand = v
	return prev
}

func (s *stubFacade) FindKeyword(id atom.ID) token.Kind { return s.keywordAtoms[id] }

func (s *stubFacade) EnterMacro(loc source.Location, id atom.ID, l *Lexer) bool {
	body, ok := s.macros[id]
	if !ok {
		return false
	}
	text := strconv.FormatUint(body[0].Int, 10)
	rng := s.cc.Locs.NewMacroRange(s.cc.Atoms.String(id), len(text), loc)
	l.PushMacroSource(text, rng)
	return true
}

func (s *stubFacade) DefineMacro(name atom.ID, loc source.Location, body []token.Token) {
	s.macros[name] = body
}

func (s *stubFacade) RemoveMacro(loc source.Location, name atom.ID) bool {
	if _, ok := s.macros[name]; ok {
		delete(s.macros, name)
		return true
	}
	return false
}

// Eval supports just enough of a condition to drive if-stack tests: the
// first token's truthiness, with the remainder of the line discarded.
func (s *stubFacade) Eval(l *Lexer) (int64, bool) {
	tok := l.Next()
	value := int64(0)
	ok := false
	switch tok.Kind {
	case token.KindIntegerLiteral, token.KindHexLiteral:
		value, ok = int64(tok.Int), true
	case token.KindName:
		value, ok = 0, true
	}
	for tok.Kind != token.KindEOL && tok.Kind != token.KindEOF {
		tok = l.Next()
	}
	return value, ok
}

func (s *stubFacade) EnterFile(kind DirectiveKind, system bool, beginLoc source.Location, filename, currentPath string) bool {
	return false
}

func (s *stubFacade) HandleEndOfFile() bool { return false }

func (s *stubFacade) Current() *Lexer { return nil }

func (s *stubFacade) AddComment(pos CommentPosition, blocks []CommentBlock) {
	s.comments = append(s.comments, recordedComment{pos: pos, blocks: blocks})
}

func (s *stubFacade) SetNextDeprecationMessage(msg string) {}

func newTestLexer(t *testing.T, src string, opts Options) (*Lexer, *compiler.Context, *stubFacade) {
	t.Helper()
	cc := compiler.New()
	facade := newStubFacade(cc)
	file := source.NewFile("test.sp", src)
	rng := cc.Locs.NewFileRange(file, 0)
	l := New(cc, facade, opts, file, rng)
	return l, cc, facade
}

func drain(l *Lexer) []token.Token {
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == token.KindEOF {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestIntegerAndHexLiterals(t *testing.T) {
	l, _, _ := newTestLexer(t, "0x1A + 2", Options{})
	toks := drain(l)

	gotKinds := kinds(toks)
	wantKinds := []token.Kind{token.KindHexLiteral, token.KindPlus, token.KindIntegerLiteral, token.KindEOF}
	if diff := cmp.Diff(wantKinds, gotKinds); diff != "" {
		t.Fatalf("kind mismatch (-want +got):\n%s", diff)
	}
	if toks[0].Int != 26 {
		t.Errorf("0x1A = %d, want 26", toks[0].Int)
	}
	if toks[2].Int != 2 {
		t.Errorf("2 = %d, want 2", toks[2].Int)
	}
}

func TestFloatLiteral(t *testing.T) {
	l, _, _ := newTestLexer(t, "3.14e-2", Options{})
	toks := drain(l)
	if toks[0].Kind != token.KindFloatLiteral {
		t.Fatalf("got kind %s, want float", toks[0].Kind)
	}
	const want = 0.0314
	if got := toks[0].Float; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("3.14e-2 = %v, want %v", got, want)
	}
}

func TestHexOverflowReported(t *testing.T) {
	l, cc, _ := newTestLexer(t, "0xFFFFFFFFFFFFFFFF1", Options{})
	drain(l)
	if !cc.Reporter.HasErrors() {
		t.Fatal("expected an overflow diagnostic")
	}
}

func TestCharLiteralHexEscape(t *testing.T) {
	l, _, _ := newTestLexer(t, `'\x41;'`, Options{})
	toks := drain(l)
	if toks[0].Kind != token.KindCharLiteral || toks[0].Char != 'A' {
		t.Fatalf("got %s %q, want CHAR('A')", toks[0].Kind, toks[0].Char)
	}
}

func TestLabel(t *testing.T) {
	l, cc, _ := newTestLexer(t, "foo:", Options{})
	toks := drain(l)
	if toks[0].Kind != token.KindLabel {
		t.Fatalf("got kind %s, want label", toks[0].Kind)
	}
	if cc.Atoms.String(toks[0].Atom) != "foo" {
		t.Errorf("label name = %q, want foo", cc.Atoms.String(toks[0].Atom))
	}
}

func TestKeywordVsName(t *testing.T) {
	l, _, _ := newTestLexer(t, "while foo", Options{})
	toks := drain(l)
	if toks[0].Kind != token.KindWhile {
		t.Fatalf("got kind %s, want while keyword", toks[0].Kind)
	}
	if toks[1].Kind != token.KindName {
		t.Fatalf("got kind %s, want name", toks[1].Kind)
	}
}

func TestUnterminatedStringStillYieldsToken(t *testing.T) {
	l, cc, _ := newTestLexer(t, "\"a\nb\"", Options{})
	toks := drain(l)
	if !cc.Reporter.HasErrors() {
		t.Fatal("expected unterminated_string diagnostic")
	}
	if toks[0].Kind != token.KindStringLiteral {
		t.Fatalf("got kind %s, want string", toks[0].Kind)
	}
	if cc.Atoms.String(toks[0].Atom) != "a" {
		t.Errorf("string payload = %q, want %q", cc.Atoms.String(toks[0].Atom), "a")
	}
}

func TestUnterminatedCommentAtEOF(t *testing.T) {
	l, cc, _ := newTestLexer(t, "/* unterminated", Options{})
	toks := drain(l)
	if len(cc.Reporter.Messages()) != 1 {
		t.Fatalf("got %d diagnostics, want exactly 1", len(cc.Reporter.Messages()))
	}
	if toks[len(toks)-1].Kind != token.KindEOF {
		t.Fatalf("last token kind = %s, want EOF", toks[len(toks)-1].Kind)
	}
}

func TestIfZeroSkipsThenElseRuns(t *testing.T) {
	l, cc, _ := newTestLexer(t, "#if 0\nJUNK\n#else\nok\n#endif\n", Options{})
	toks := drain(l)

	var names []string
	for _, tok := range toks {
		if tok.Kind == token.KindName {
			names = append(names, cc.Atoms.String(tok.Atom))
		}
	}
	if diff := cmp.Diff([]string{"ok"}, names); diff != "" {
		t.Errorf("name tokens mismatch (-want +got):\n%s", diff)
	}
	if cc.Reporter.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", cc.Reporter.Messages())
	}
}

func TestDefineThenIfLeavesEmptyIfStack(t *testing.T) {
	l, cc, _ := newTestLexer(t, "#define X 1\n#if X\n#endif\n", Options{})
	drain(l)
	if cc.Reporter.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", cc.Reporter.Messages())
	}
	if len(l.ifstack) != 0 {
		t.Errorf("if-stack not empty at EOF: %v", l.ifstack)
	}
}

func TestCommentAttribution(t *testing.T) {
	l, _, facade := newTestLexer(t, "// leading\nfoo(); // trailing\n", Options{TraceComments: true})
	drain(l)

	if len(facade.comments) != 2 {
		t.Fatalf("got %d comment records, want 2: %+v", len(facade.comments), facade.comments)
	}
	if facade.comments[0].pos != CommentFront {
		t.Errorf("first comment position = %v, want front", facade.comments[0].pos)
	}
	if facade.comments[1].pos != CommentTail {
		t.Errorf("second comment position = %v, want tail", facade.comments[1].pos)
	}
}
