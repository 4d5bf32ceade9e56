package index_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cppdoc/internal/comment"
	"cppdoc/internal/correlate"
	"cppdoc/internal/directive"
	"cppdoc/internal/extract"
	"cppdoc/internal/index"
	"cppdoc/internal/lexer"
	"cppdoc/internal/source"
)

func unit(t *testing.T, path, src string) index.Unit {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, []byte(src)))
	toks := lexer.Tokenize(file, lexer.Options{})
	m := correlate.Correlate(file, extract.Extract(file, toks, extract.Options{}), comment.Scan(file, toks), correlate.Options{})
	return index.Unit{File: file, Model: m}
}

func names(ents []index.Entity) []string {
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, e.QualifiedName)
	}
	return out
}

func find(t *testing.T, ents []index.Entity, qname string) index.Entity {
	t.Helper()
	for _, e := range ents {
		if e.QualifiedName == qname {
			return e
		}
	}
	t.Fatalf("%s not exported; have %v", qname, names(ents))
	return index.Entity{}
}

func TestBuildFixture(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "correlate", "testdata", "fixture.hpp"))
	if err != nil {
		t.Fatal(err)
	}
	u := unit(t, "/src/include/core/fixture.hpp", string(src))
	idx := index.Build([]index.Unit{u}, index.Options{
		Root:           "/src",
		Repository:     "https://example.com/blob/{TAG}/",
		GitTag:         "v1.2",
		DocumentedOnly: true,
		Groups:         map[string]string{"core": "Core API"},
	})

	if idx.Repository != "https://example.com/blob/v1.2/" || idx.GitTag != "v1.2" {
		t.Errorf("repository = %q, tag = %q", idx.Repository, idx.GitTag)
	}
	wantTop := []string{
		"regular_variable", "regular_constant", "template_variable", "template_constant",
		"regular_typedef", "template_typedef", "aaa", "regular_function", "template_function",
		"overloaded_function", "overloaded_function", "overloaded_function", "overloaded_function",
		"regular_class", "class_enum", "template_class",
		"regular_namespace", "regular_namespace::namespace_function", "math",
	}
	if diff := cmp.Diff(wantTop, names(idx.Index)); diff != "" {
		t.Errorf("top-level entities (-want +got):\n%s", diff)
	}

	cls := find(t, idx.Index, "regular_class")
	if cls.Type != "class" || cls.Content == nil || len(*cls.Content) != 7 {
		t.Fatalf("regular_class = %+v", cls)
	}
	if cls.File != "include/core/fixture.hpp" || cls.Group != "core" || cls.Line != 48 {
		t.Errorf("location = %s:%d group %q", cls.File, cls.Line, cls.Group)
	}
	if fn := find(t, idx.Index, "regular_function"); fn.Content != nil || fn.Type != "function" {
		t.Errorf("functions carry no content: %+v", fn)
	}

	enum := find(t, idx.Index, "class_enum")
	wantEnum := []index.Entity{
		{Type: "enumerator", Name: "A", QualifiedName: "class_enum::A", Definition: "A = 0",
			File: "include/core/fixture.hpp", Line: 79, Group: "core",
			Description: index.Description{{Text: "value of A"}}},
		{Type: "enumerator", Name: "B", QualifiedName: "class_enum::B", Definition: "B = 1",
			File: "include/core/fixture.hpp", Line: 80, Group: "core",
			Description: index.Description{{Text: "value of B"}}},
	}
	if diff := cmp.Diff(wantEnum, *enum.Content); diff != "" {
		t.Errorf("enumerators (-want +got):\n%s", diff)
	}

	overloads := idx.Index[9:13]
	wantCopied := index.Description{{Text: "overloaded"}, {Key: "inlinecode", Value: "function"}, {Text: "3"}}
	if diff := cmp.Diff(wantCopied, overloads[3].Description); diff != "" {
		t.Errorf("copied brief (-want +got):\n%s", diff)
	}

	wantMath := index.Description{{Text: "formula:"}, {Key: "blockmath", Value: "E=mc^2"}}
	if diff := cmp.Diff(wantMath, find(t, idx.Index, "math").Description); diff != "" {
		t.Errorf("math (-want +got):\n%s", diff)
	}
	for _, e := range idx.Index {
		if e.Source != "" {
			t.Errorf("%s: source exported without include_source", e.QualifiedName)
		}
	}
}

func TestBuildUndocumentedScopes(t *testing.T) {
	src := `namespace outer {
class Hidden {
public:
    /// documented member
    void member();
};
}
void loose();
`
	u := unit(t, "x.hpp", src)

	documented := index.Build([]index.Unit{u}, index.Options{DocumentedOnly: true})
	if diff := cmp.Diff([]string{"outer::Hidden::member"}, names(documented.Index)); diff != "" {
		t.Errorf("documented only (-want +got):\n%s", diff)
	}

	all := index.Build([]index.Unit{u}, index.Options{})
	if diff := cmp.Diff([]string{"outer", "outer::Hidden", "loose"}, names(all.Index)); diff != "" {
		t.Errorf("all entities (-want +got):\n%s", diff)
	}
	hidden := all.Index[1]
	if hidden.Content == nil || len(*hidden.Content) != 1 {
		t.Fatalf("class content = %+v", hidden.Content)
	}
	if len(all.Index[2].Description) != 0 || all.Index[2].Description == nil {
		t.Errorf("undocumented description must be an empty list: %#v", all.Index[2].Description)
	}
}

func TestBuildIncludeSource(t *testing.T) {
	src := `/// ns
namespace lib {
/// adds
inline int add(int a, int b)
{
	return a + b;
}
}
`
	idx := index.Build([]index.Unit{unit(t, "x.hpp", src)}, index.Options{IncludeSource: true, DocumentedOnly: true})
	if got := find(t, idx.Index, "lib").Source; got != "namespace lib { ... }" {
		t.Errorf("namespace source = %q", got)
	}
	want := "inline int add(int a, int b)\n{\n    return a + b;\n}"
	if got := find(t, idx.Index, "lib::add").Source; got != want {
		t.Errorf("function source = %q, want %q", got, want)
	}
}

func TestDescribe(t *testing.T) {
	doc := directive.Parse("Sum of @c a and $b$.\n\n@param a first\n@return the *sum*\n@throws std::overflow_error on overflow\n@see add", directive.Options{})
	want := index.Description{
		{Text: "Sum of"}, {Key: "inlinecode", Value: "a"}, {Text: "and"}, {Key: "inlinemath", Value: "b"}, {Text: "."},
		{Key: "param", Value: "a"}, {Text: "first"},
		{Key: "return"}, {Text: "the *sum*"},
		{Key: "exceptions", Value: "std::overflow_error"}, {Text: "on overflow"},
		{Key: "see"}, {Text: "add"},
	}
	if diff := cmp.Diff(want, index.Describe(doc)); diff != "" {
		t.Errorf("Describe (-want +got):\n%s", diff)
	}
}

func TestWriteRead(t *testing.T) {
	src := "/// Value with `code`.\nint v;\n"
	idx := index.Build([]index.Unit{unit(t, "v.hpp", src)}, index.Options{DocumentedOnly: true})

	var buf bytes.Buffer
	if err := idx.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n    \"index\": [") {
		t.Errorf("expected four-space indentation:\n%s", buf.String())
	}

	var raw struct {
		Index []struct {
			Description []any `json:"description"`
		} `json:"index"`
		Groups map[string]string `json:"groups"`
	}
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	wantRaw := []any{"Value with", map[string]any{"inlinecode": "code"}, "."}
	if diff := cmp.Diff(wantRaw, raw.Index[0].Description); diff != "" {
		t.Errorf("encoded description (-want +got):\n%s", diff)
	}
	if raw.Groups == nil {
		t.Error("groups must encode as an object")
	}

	back, err := index.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(idx, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
