package preprocessor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/assyrianic/spc/internal/compiler"
	"github.com/assyrianic/spc/internal/lexer"
	"github.com/assyrianic/spc/internal/source"
	"github.com/assyrianic/spc/internal/token"
)

// mapLoader resolves "#include"/"#tryinclude" targets from an in-memory
// set, the test-only substitute for cmd/spc's real filesystem FileLoader.
type mapLoader map[string]string

func (m mapLoader) Load(filename, currentPath string, system bool) (string, string, bool) {
	src, ok := m[filename]
	return filename, src, ok
}

type drained struct {
	kinds []token.Kind
	names []string
	ints  []uint64
}

func run(t *testing.T, loader FileLoader, src string) (*compiler.Context, *Preprocessor, drained) {
	t.Helper()
	cc := compiler.New()
	pp := New(cc, loader)
	file := source.NewFile("main.sp", src)
	pp.Start(lexer.Options{}, file)

	var d drained
	for {
		tok := pp.Current().Next()
		if tok.Kind == token.KindEOF {
			break
		}
		d.kinds = append(d.kinds, tok.Kind)
		switch tok.Kind {
		case token.KindName, token.KindLabel, token.KindStringLiteral:
			d.names = append(d.names, cc.Atoms.String(tok.Atom))
		case token.KindIntegerLiteral, token.KindHexLiteral:
			d.ints = append(d.ints, tok.Int)
		}
	}
	return cc, pp, d
}

func TestMacroExpansionSimple(t *testing.T) {
	cc, _, d := run(t, mapLoader{}, "#define SIZE 64\nSIZE\n")
	if cc.Reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", cc.Reporter.Messages())
	}
	want := []token.Kind{token.KindIntegerLiteral}
	if diff := cmp.Diff(want, d.kinds); diff != "" {
		t.Fatalf("kind mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint64{64}, d.ints); diff != "" {
		t.Fatalf("int mismatch (-want +got):\n%s", diff)
	}
}

func TestMacroLineSubstitution(t *testing.T) {
	_, _, d := run(t, mapLoader{}, "#define HERE __LINE__\nfoo\nHERE\n")
	if diff := cmp.Diff([]uint64{3}, d.ints); diff != "" {
		t.Fatalf("__LINE__ mismatch (-want +got):\n%s", diff)
	}
}

func TestUndefRemovesMacro(t *testing.T) {
	_, _, d := run(t, mapLoader{}, "#define X 1\n#undef X\nX\n")
	if diff := cmp.Diff([]string{"X"}, d.names); diff != "" {
		t.Fatalf("expected X to lex as a bare name once undefined (-want +got):\n%s", diff)
	}
}

func TestDefinedOperator(t *testing.T) {
	_, _, d := run(t, mapLoader{}, "#define X 1\n#if defined X\nfoo\n#else\nbar\n#endif\n")
	if diff := cmp.Diff([]string{"foo"}, d.names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinedOperatorParenUndefined(t *testing.T) {
	_, _, d := run(t, mapLoader{}, "#if defined(NOPE)\nfoo\n#else\nbar\n#endif\n")
	if diff := cmp.Diff([]string{"bar"}, d.names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedIfInsideInactiveRegionStaysDead(t *testing.T) {
	src := "#if 0\n#if 1\ninner\n#endif\nouter\n#endif\nafter\n"
	_, _, d := run(t, mapLoader{}, src)
	if diff := cmp.Diff([]string{"after"}, d.names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestInclude(t *testing.T) {
	loader := mapLoader{"util.inc": "#define GREETING 7\n"}
	cc, _, d := run(t, loader, "#include \"util.inc\"\nGREETING\n")
	if cc.Reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", cc.Reporter.Messages())
	}
	if diff := cmp.Diff([]uint64{7}, d.ints); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTryIncludeMissingFileIsSilent(t *testing.T) {
	cc, _, d := run(t, mapLoader{}, "#tryinclude <nope.inc>\nafter\n")
	if cc.Reporter.HasErrors() {
		t.Fatalf("tryinclude of a missing file must not report an error: %v", cc.Reporter.Messages())
	}
	if diff := cmp.Diff([]string{"after"}, d.names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIncludeMissingFileIsAnError(t *testing.T) {
	cc, _, _ := run(t, mapLoader{}, "#include <nope.inc>\n")
	if !cc.Reporter.HasErrors() {
		t.Fatal("expected a diagnostic for a missing #include target")
	}
}

func TestPragmaDynamicUpdatesContext(t *testing.T) {
	cc, _, _ := run(t, mapLoader{}, "#pragma dynamic 4096\n")
	if !cc.PragmaDynamicHeapIsSet {
		t.Fatal("expected PragmaDynamicHeapIsSet")
	}
	if cc.PragmaDynamicHeap != 4096 {
		t.Errorf("PragmaDynamicHeap = %d, want 4096", cc.PragmaDynamicHeap)
	}
}

func TestPragmaDeprecatedCapturesMessage(t *testing.T) {
	_, pp, _ := run(t, mapLoader{}, "#pragma deprecated use Foo2 instead\nBar\n")
	if msg := pp.TakeDeprecationMessage(); msg != "use Foo2 instead" {
		t.Errorf("deprecation message = %q, want %q", msg, "use Foo2 instead")
	}
}

func TestUnknownPragmaReported(t *testing.T) {
	cc, _, _ := run(t, mapLoader{}, "#pragma bogus\n")
	if !cc.Reporter.HasErrors() {
		t.Fatal("expected a diagnostic for an unknown pragma")
	}
}

func TestConstantExpressionPrecedence(t *testing.T) {
	_, _, d := run(t, mapLoader{}, "#if 1 + 2 * 3 == 7\nyes\n#else\nno\n#endif\n")
	if diff := cmp.Diff([]string{"yes"}, d.names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestElseWithoutIfReported(t *testing.T) {
	cc, _, _ := run(t, mapLoader{}, "#else\n")
	if !cc.Reporter.HasErrors() {
		t.Fatal("expected else_without_if diagnostic")
	}
}

func TestUnterminatedIfReportedAtEOF(t *testing.T) {
	cc, _, _ := run(t, mapLoader{}, "#if 1\nfoo\n")
	if !cc.Reporter.HasErrors() {
		t.Fatal("expected unterminated_if diagnostic")
	}
}

func TestEndInputStopsFileEarly(t *testing.T) {
	_, _, d := run(t, mapLoader{}, "foo\n#endinput\nbar\n")
	if diff := cmp.Diff([]string{"foo"}, d.names); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
