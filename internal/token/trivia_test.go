package token_test

import (
	"testing"

	"cppdoc/internal/token"
)

func TestClassifyComment(t *testing.T) {
	cases := map[string]token.TriviaKind{
		"// plain":         token.TriviaLineComment,
		"/// doc":          token.TriviaDocLine,
		"//! doc":          token.TriviaDocLine,
		"///< trailing":    token.TriviaDocTrailingLine,
		"//!< trailing":    token.TriviaDocTrailingLine,
		"//////////////":   token.TriviaLineComment,
		"/* plain */":      token.TriviaBlockComment,
		"/** doc */":       token.TriviaDocBlock,
		"/*! doc */":       token.TriviaDocBlock,
		"/**< trailing */": token.TriviaDocTrailingBlock,
		"/*!< trailing */": token.TriviaDocTrailingBlock,
		"/*********/":      token.TriviaBlockComment,
		"/**/":             token.TriviaBlockComment,
	}
	for text, want := range cases {
		if got := token.ClassifyComment(text); got != want {
			t.Errorf("ClassifyComment(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestTriviaPredicates(t *testing.T) {
	if !token.TriviaDocTrailingBlock.IsDoc() || token.TriviaBlockComment.IsDoc() {
		t.Fatal("IsDoc mismatch")
	}
	if !token.TriviaLineComment.IsComment() || token.TriviaHidden.IsComment() {
		t.Fatal("IsComment mismatch")
	}
	if !token.TriviaDocTrailingLine.IsTrailing() || token.TriviaDocLine.IsTrailing() {
		t.Fatal("IsTrailing mismatch")
	}
}
