package token

import "testing"

func TestKindStringKnownAndUnknown(t *testing.T) {
	if got := KindIf.String(); got != "if" {
		t.Errorf("KindIf.String() = %q, want %q", got, "if")
	}
	if got := Kind(0xffff).String(); got != "<?>" {
		t.Errorf("unknown Kind.String() = %q, want %q", got, "<?>")
	}
}

func TestKeywordsExcludesDirectiveNames(t *testing.T) {
	kind, ok := Keywords["if"]
	if !ok || kind != KindIf {
		t.Fatalf(`Keywords["if"] = (%v, %v), want (KindIf, true)`, kind, ok)
	}
	if _, ok := Keywords["define"]; ok {
		t.Error(`Keywords["define"] should not exist: directive names are a separate table`)
	}
	if _, ok := Keywords["include"]; ok {
		t.Error(`Keywords["include"] should not exist: directive names are a separate table`)
	}
}

func TestIsKeywordIsDirectiveBoundaries(t *testing.T) {
	if !KindWhile.IsKeyword() {
		t.Error("KindWhile should be a keyword")
	}
	if KindWhile.IsDirective() {
		t.Error("KindWhile should not be a directive")
	}
	if !KindMDefine.IsDirective() {
		t.Error("KindMDefine should be a directive")
	}
	if KindMDefine.IsKeyword() {
		t.Error("KindMDefine should not be a keyword")
	}
	if KindName.IsKeyword() || KindName.IsDirective() {
		t.Error("KindName should be neither a keyword nor a directive")
	}
}
