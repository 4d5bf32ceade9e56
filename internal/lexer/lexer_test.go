package lexer_test

import (
	"strings"
	"testing"

	"cppdoc/internal/diag"
	"cppdoc/internal/lexer"
	"cppdoc/internal/source"
	"cppdoc/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string, hidden ...string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.hpp", []byte(input)))
	bag := diag.NewBag(32)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, Hidden: lexer.HiddenSet(hidden)})
	return lx, bag
}

// collectAllTokens собирает все токены до EOF (включительно)
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := collectAllTokens(lx)
	want = append(want, token.EOF)
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got kinds %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v (%q), want %v", input, i, got[i], toks[i].Text, want[i])
		}
	}
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items()[0].Message)
	}
	return toks
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := expectKinds(t, "class Foo final : public std::vector<int> {};",
		token.KwClass, token.Ident, token.KwFinal, token.Colon, token.KwPublic, token.Ident,
		token.ColonColon, token.Ident, token.Lt, token.KwInt, token.Gt, token.LBrace,
		token.RBrace, token.Semicolon)
	if toks[1].Text != "Foo" || toks[1].Span.Start != 6 || toks[1].Span.End != 9 {
		t.Fatalf("unexpected Foo token %+v", toks[1])
	}
}

func TestIdentifiers_Unicode(t *testing.T) {
	toks := expectKinds(t, "int größe;", token.KwInt, token.Ident, token.Semicolon)
	if toks[1].Text != "größe" {
		t.Fatalf("text = %q", toks[1].Text)
	}
}

func TestNumbers(t *testing.T) {
	for _, in := range []string{"0", "42u", "0x1Full", "1'000'000", "3.14f", ".5", "1e-3", "0x1.8p+3", "077", "0b1010"} {
		toks := expectKinds(t, in, token.NumberLit)
		if toks[0].Text != in {
			t.Errorf("%q lexed as %q", in, toks[0].Text)
		}
	}
}

func TestNumbers_InvalidExponent(t *testing.T) {
	lx, bag := makeTestLexer("1e+;")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatal("expected LexBadNumber")
	}
}

func TestStringsAndChars(t *testing.T) {
	expectKinds(t, `"a\"b" L"w" u8"x" 'c' '\'' U'z'`,
		token.StringLit, token.StringLit, token.StringLit, token.CharLit, token.CharLit, token.CharLit)
}

func TestRawString(t *testing.T) {
	toks := expectKinds(t, `auto s = R"xy(a "quoted" )" text)xy";`,
		token.KwAuto, token.Ident, token.Assign, token.StringLit, token.Semicolon)
	if toks[3].Text != `R"xy(a "quoted" )" text)xy"` {
		t.Fatalf("raw string = %q", toks[3].Text)
	}
}

func TestString_Unterminated(t *testing.T) {
	lx, bag := makeTestLexer("\"abc\nint x;")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", toks[0].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected one LexUnterminatedString")
	}
	// лексинг продолжается после ошибки
	if kindsOf(toks)[1] != token.KwInt {
		t.Fatalf("lexing did not resume: %v", kindsOf(toks))
	}
}

func TestOperators_Greedy(t *testing.T) {
	expectKinds(t, "a::b->c && d ... e <=> f << g",
		token.Ident, token.ColonColon, token.Ident, token.Arrow, token.Ident, token.AndAnd,
		token.Ident, token.DotDotDot, token.Ident, token.OtherOp, token.Ident, token.OtherOp, token.Ident)
}

func TestNestedTemplateCloseIsTwoGt(t *testing.T) {
	expectKinds(t, "A<B<C>>",
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
}

func TestPreprocessorLine(t *testing.T) {
	toks := expectKinds(t, "#define X(a) \\\n  (a + 1)\n  #pragma once\nint y; a # b",
		token.Preproc, token.Preproc, token.KwInt, token.Ident, token.Semicolon,
		token.Ident, token.Hash, token.Ident)
	if !strings.HasSuffix(toks[0].Text, "(a + 1)") {
		t.Fatalf("continuation not joined: %q", toks[0].Text)
	}
}

func TestTrivia_Comments(t *testing.T) {
	input := "/// doc\n//! bang\n// plain\n/** block */ /*! bang block */ /* plain */\nint x; ///< after\n"
	lx, bag := makeTestLexer(input)
	toks := collectAllTokens(lx)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
	var kinds []token.TriviaKind
	for _, tv := range toks[0].Leading {
		if tv.Kind.IsComment() {
			kinds = append(kinds, tv.Kind)
		}
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaDocLine, token.TriviaLineComment,
		token.TriviaDocBlock, token.TriviaDocBlock, token.TriviaBlockComment,
	}
	if len(kinds) != len(want) {
		t.Fatalf("comment trivia = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("trivia %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token %v", eof.Kind)
	}
	found := false
	for _, tv := range eof.Leading {
		if tv.Kind == token.TriviaDocTrailingLine && tv.Text == "///< after" {
			found = true
		}
	}
	if !found {
		t.Fatal("trailing comment before EOF must be attached to EOF")
	}
}

func TestTrivia_UnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("int a; /* never closed")
	toks := collectAllTokens(lx)
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatal("expected EOF")
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatal("expected LexUnterminatedBlockComment")
	}
}

func TestTrivia_Newlines(t *testing.T) {
	lx, _ := makeTestLexer("\n\n\nx")
	tok := lx.Next()
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaNewline || tok.Leading[0].Text != "\n\n\n" {
		t.Fatalf("unexpected leading %+v", tok.Leading)
	}
	if !tok.HasNewlineBefore() {
		t.Fatal("HasNewlineBefore = false")
	}
}

func TestHiddenTokens(t *testing.T) {
	lx, _ := makeTestLexer("class API_EXPORT Widget;", "API_EXPORT")
	toks := collectAllTokens(lx)
	if got := kindsOf(toks); len(got) != 4 || got[1] != token.Ident || toks[1].Text != "Widget" {
		t.Fatalf("hidden token leaked: %v", got)
	}
	hidden := false
	for _, tv := range toks[1].Leading {
		if tv.Kind == token.TriviaHidden && tv.Text == "API_EXPORT" {
			hidden = true
		}
	}
	if !hidden {
		t.Fatal("expected TriviaHidden on Widget")
	}
	// префикс скрытого имени не скрывается
	lx, _ = makeTestLexer("API_EXPORTED x;", "API_EXPORT")
	if tok := lx.Next(); tok.Text != "API_EXPORTED" {
		t.Fatalf("prefix match hid %q", tok.Text)
	}
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Text != "a" || p2.Text != "a" {
		t.Fatalf("Peek must be idempotent: %q %q", p1.Text, p2.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatal("EOF must be sticky")
		}
	}
}

func TestLexer_UnknownCharacter(t *testing.T) {
	lx, bag := makeTestLexer("int @ x;")
	toks := collectAllTokens(lx)
	if toks[1].Kind != token.Invalid || toks[1].Text != "@" {
		t.Fatalf("expected Invalid '@', got %v %q", toks[1].Kind, toks[1].Text)
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatal("expected LexUnknownChar")
	}
	if toks[2].Text != "x" {
		t.Fatal("lexing did not resume after unknown char")
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.hpp", []byte("")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("empty input: %v", kindsOf(toks))
	}
}
