package comment_test

import (
	"strings"
	"testing"

	"cppdoc/internal/comment"
	"cppdoc/internal/lexer"
	"cppdoc/internal/source"

	"github.com/google/go-cmp/cmp"
)

func scan(t *testing.T, src string) (*source.File, []comment.Block) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("scan.hpp", []byte(src)))
	return file, comment.Scan(file, lexer.Tokenize(file, lexer.Options{}))
}

func texts(blocks []comment.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text
	}
	return out
}

func TestMergeAdjacentLineComments(t *testing.T) {
	src := "/// first\n///   indented\n// ordinary\n\n/// third\nint x;\n"
	file, blocks := scan(t, src)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks: %q", len(blocks), texts(blocks))
	}
	b := blocks[0]
	if want := "first\n  indented\nthird"; b.Text != want {
		t.Errorf("Text = %q, want %q", b.Text, want)
	}
	if b.Lines != 3 || b.Style != comment.StyleSlash || b.Trailing {
		t.Errorf("unexpected block metadata %+v", b)
	}
	if b.Span.Start != 0 || file.Slice(b.Span) != b.Raw {
		t.Errorf("Raw/Span mismatch: %q", b.Raw)
	}
	if want := uint32(len(src) - len("int x;\n")); b.Anchor != want {
		t.Errorf("Anchor = %d, want %d", b.Anchor, want)
	}
	if b.Pos != (source.LineCol{Line: 1, Col: 1}) {
		t.Errorf("Pos = %+v", b.Pos)
	}
}

func TestTokenInterruptsMerge(t *testing.T) {
	_, blocks := scan(t, "/// a\nint x;\n/// b\nint y;\n")
	if diff := cmp.Diff([]string{"a", "b"}, texts(blocks)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if blocks[0].Anchor == blocks[1].Anchor {
		t.Fatal("blocks before different tokens must have different anchors")
	}
}

func TestAnchorSkipsAccessLabels(t *testing.T) {
	src := "class A {\n/// doc\npublic:\nprotected:\n  int x;\n/// end\nprivate:\n};\n"
	_, blocks := scan(t, src)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks: %q", len(blocks), texts(blocks))
	}
	if want := uint32(strings.Index(src, "int x;")); blocks[0].Anchor != want {
		t.Errorf("Anchor = %d, want %d (start of int)", blocks[0].Anchor, want)
	}
	if want := uint32(strings.Index(src, "};")); blocks[1].Anchor != want {
		t.Errorf("Anchor = %d, want %d (closing brace)", blocks[1].Anchor, want)
	}
}

func TestStyleChangeStartsNewBlock(t *testing.T) {
	_, blocks := scan(t, "/// slash\n//! bang\n/** javadoc\n * second line\n */\n/*! qt */\nvoid f();\n")
	if diff := cmp.Diff([]string{"slash", "bang", "javadoc\nsecond line", "qt"}, texts(blocks)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	styles := []comment.Style{comment.StyleSlash, comment.StyleBang, comment.StyleJavadoc, comment.StyleQt}
	for i, b := range blocks {
		if b.Style != styles[i] {
			t.Errorf("block %d style %v, want %v", i, b.Style, styles[i])
		}
		if b.Anchor != blocks[0].Anchor {
			t.Errorf("block %d anchor differs", i)
		}
	}
}

func TestTrailingComments(t *testing.T) {
	_, blocks := scan(t, "enum class E {\n    A = 0, ///< value of A\n    B = 1 ///< value of B\n};\nint v; /**< block trailing */\n")
	if diff := cmp.Diff([]string{"value of A", "value of B", "block trailing"}, texts(blocks)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	for _, b := range blocks {
		if !b.Trailing {
			t.Errorf("block %q should be trailing", b.Text)
		}
	}
}

func TestOrdinaryAndBannerCommentsIgnored(t *testing.T) {
	_, blocks := scan(t, "// plain\n/* plain */\n////////////\n/*********/\nint x;\n")
	if len(blocks) != 0 {
		t.Fatalf("expected no doc blocks, got %q", texts(blocks))
	}
}

func TestCommentAtEndOfFile(t *testing.T) {
	_, blocks := scan(t, "int x;\n/// dangling\n")
	if len(blocks) != 1 || blocks[0].Text != "dangling" {
		t.Fatalf("got %q", texts(blocks))
	}
}

func TestMathBlockIndentationPreserved(t *testing.T) {
	_, blocks := scan(t, "/// formula: \n/// \\f[\n///    E=mc^2\n/// \\f]\nvoid math();\n")
	want := "formula:\n\\f[\n   E=mc^2\n\\f]"
	if len(blocks) != 1 || blocks[0].Text != want {
		t.Fatalf("got %q, want %q", texts(blocks), want)
	}
}

func TestClean(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"  a\n    b\n":         "a\n  b",
		"\n\n  x  \n\n  y\n\n": "x\n\ny",
		"\t\tcode\n\t\t\tmore": "code\n\tmore",
	}
	for in, want := range cases {
		if got := comment.Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}
