package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"class":        KwClass,
		"namespace":    KwNamespace,
		"constexpr":    KwConstexpr,
		"thread_local": KwThreadLocal,
		"operator":     KwOperator,
		"unsigned":     KwUnsigned,
		"char32_t":     KwChar32T,
		"concept":      KwConcept,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// обычные ключевые слова C++, не влияющие на структуру объявлений, остаются Ident
	notKw := []string{"Class", "CONST", "if", "return", "sizeof", "size_t", "std", "identifier"}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
