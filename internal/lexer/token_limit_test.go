package lexer

import (
	"strings"
	"testing"

	"cppdoc/internal/diag"
	"cppdoc/internal/source"
	"cppdoc/internal/token"
)

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := strings.Repeat("a", maxTokenLength+1) + " b"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.hpp", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong")
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	content := strings.Repeat("b", maxTokenLength)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.hpp", []byte(content)))

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics")
	}
}
