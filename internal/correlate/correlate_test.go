package correlate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cppdoc/internal/comment"
	"cppdoc/internal/correlate"
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/directive"
	"cppdoc/internal/extract"
	"cppdoc/internal/lexer"
	"cppdoc/internal/model"
	"cppdoc/internal/source"
)

type unit struct {
	file    *source.File
	records []decl.Record
	blocks  []comment.Block
}

func load(t *testing.T, path, src string) unit {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, []byte(src)))
	toks := lexer.Tokenize(file, lexer.Options{})
	return unit{
		file:    file,
		records: extract.Extract(file, toks, extract.Options{}),
		blocks:  comment.Scan(file, toks),
	}
}

func correlateString(t *testing.T, src string, policy correlate.Policy) (*model.Model, *diag.Bag) {
	t.Helper()
	u := load(t, "test.hpp", src)
	bag := diag.NewBag(64)
	m := correlate.Correlate(u.file, u.records, u.blocks, correlate.Options{
		Policy:   policy,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err := m.Validate(u.file.Len()); err != nil {
		t.Fatalf("model invariants: %v", err)
	}
	return m, bag
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func summaryOf(t *testing.T, m *model.Model, qname string) string {
	t.Helper()
	ents := m.Lookup(qname)
	if len(ents) == 0 {
		t.Fatalf("no entity %q", qname)
	}
	return directive.Markdown(ents[0].Resolved.Summary())
}

func TestCorrelateFixture(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "fixture.hpp"))
	if err != nil {
		t.Fatal(err)
	}
	m, bag := correlateString(t, string(src), correlate.PolicyNearest)

	if diff := cmp.Diff([]string{"DOC3004"}, codes(bag)); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
	if !strings.Contains(bag.Items()[0].Message, "3 overloads") {
		t.Errorf("overload note = %q", bag.Items()[0].Message)
	}
	if n := len(m.Orphans()); n != 0 {
		t.Errorf("%d orphan comments", n)
	}

	// все объявления кроме test_output документированы
	m.Walk(func(e *model.Entity, _ int) bool {
		if want := e.Name != "test_output"; e.Documented() != want {
			t.Errorf("%s documented = %v, want %v", e.QualifiedName(), e.Documented(), want)
		}
		return true
	})

	var overloads []string
	for _, e := range m.Lookup("overloaded_function") {
		overloads = append(overloads, e.Signature()+" "+directive.Markdown(e.Resolved.Summary()))
	}
	want := []string{
		"(int, int, int) overloaded function 1",
		"(int, int, const char*) overloaded `function` 2",
		"(int, regular_typedef) overloaded `function` 3",
		"(int, aaa*) overloaded `function` 3",
	}
	if diff := cmp.Diff(want, overloads); diff != "" {
		t.Errorf("overload docs (-want +got):\n%s", diff)
	}

	copied, ok := m.LookupSignature("overloaded_function", "(int, aaa*)")
	if !ok {
		t.Fatal("copybrief overload not found")
	}
	wantBrief := []directive.Directive{
		{Kind: directive.PlainText, Text: "overloaded "},
		{Kind: directive.InlineCode, Text: "function"},
		{Kind: directive.PlainText, Text: " 3"},
	}
	if diff := cmp.Diff(wantBrief, copied.Resolved.Summary()); diff != "" {
		t.Errorf("copied brief (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"overloaded_function"}, copied.Parsed.Copybriefs()); diff != "" {
		t.Errorf("parsed doc must keep the reference (-want +got):\n%s", diff)
	}

	math := m.Lookup("math")[0]
	wantMath := []directive.Directive{
		{Kind: directive.PlainText, Text: "formula:"},
		{Kind: directive.MathBlock, Text: "E=mc^2"},
	}
	if diff := cmp.Diff(wantMath, math.Resolved.Items); diff != "" {
		t.Errorf("math doc (-want +got):\n%s", diff)
	}

	for _, name := range []string{"A", "B"} {
		e := m.Lookup("class_enum::" + name)[0]
		wantEnum := []directive.Directive{{
			Kind: directive.ParamDoc, Name: name,
			Children: []directive.Directive{{Kind: directive.PlainText, Text: "value of " + name}},
		}}
		if diff := cmp.Diff(wantEnum, e.Resolved.Items); diff != "" {
			t.Errorf("enumerator %s (-want +got):\n%s", name, diff)
		}
		if !e.Comment.Trailing {
			t.Errorf("enumerator %s comment should be trailing", name)
		}
		if p := m.Get(e.Parent); p == nil || p.Name != "class_enum" {
			t.Errorf("enumerator %s parent = %+v", name, p)
		}
	}

	var members []string
	for e := range m.Children(m.Lookup("regular_class")[0].ID) {
		members = append(members, e.Name+e.Signature())
	}
	wantMembers := []string{
		"regular_class()", "~regular_class()", "regular_class(regular_class&&)",
		"regular_class(const regular_class&)", "regular_method()", "template_method()",
		"template_nested_struct",
	}
	if diff := cmp.Diff(wantMembers, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestCopybriefPolicies(t *testing.T) {
	src := `/// @copybrief f
void g();
/// one
void f(int);
/// two
void f(double);
/// @copybrief f
void h();
`
	tests := []struct {
		policy correlate.Policy
		g, h   string
		codes  []string
	}{
		{correlate.PolicyNearest, "one", "two", []string{"DOC3004", "DOC3004"}},
		{correlate.PolicyFirst, "one", "one", []string{"DOC3004", "DOC3004"}},
		{correlate.PolicyStrict, "", "", []string{"DOC3003", "DOC3003"}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			m, bag := correlateString(t, src, tt.policy)
			if got := summaryOf(t, m, "g"); got != tt.g {
				t.Errorf("g = %q, want %q", got, tt.g)
			}
			if got := summaryOf(t, m, "h"); got != tt.h {
				t.Errorf("h = %q, want %q", got, tt.h)
			}
			if diff := cmp.Diff(tt.codes, codes(bag)); diff != "" {
				t.Errorf("codes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCopybriefLookup(t *testing.T) {
	src := `namespace n {
/// In n.
void f();
}
/// @copybrief n::f
void g();

/// Sizes.
struct S {
    /// Element count.
    int size();
    /// @copybrief size
    int length();
    /// @copybrief S
    int other();
};

/// @copybrief c
void a();
/// @copybrief a
void b();
/// Alpha.
void c();

/// @copybrief missing
void d();
`
	m, bag := correlateString(t, src, correlate.PolicyNearest)
	tests := map[string]string{
		"g":         "In n.",
		"S::size":   "Element count.",
		"S::length": "Element count.",
		"S::other":  "Sizes.",
		"a":         "Alpha.",
		"b":         "Alpha.",
		"d":         "",
	}
	for qname, want := range tests {
		if got := summaryOf(t, m, qname); got != want {
			t.Errorf("%s summary = %q, want %q", qname, got, want)
		}
	}
	if diff := cmp.Diff([]string{"DOC3003"}, codes(bag)); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

func TestCopybriefCycle(t *testing.T) {
	src := `/// @copybrief b
void a();
/// @copybrief a
void b();
`
	m, bag := correlateString(t, src, correlate.PolicyNearest)
	if diff := cmp.Diff([]string{"DOC3005", "DOC3003"}, codes(bag)); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
	for _, name := range []string{"a", "b"} {
		if e := m.Lookup(name)[0]; !e.Resolved.Empty() {
			t.Errorf("%s resolved = %+v, want empty", name, e.Resolved.Items)
		}
	}
}

func TestCopybriefIdempotent(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "fixture.hpp"))
	if err != nil {
		t.Fatal(err)
	}
	u := load(t, "fixture.hpp", string(src))
	docs := func() []directive.Doc {
		m := correlate.Correlate(u.file, u.records, u.blocks, correlate.Options{})
		var out []directive.Doc
		m.Walk(func(e *model.Entity, _ int) bool {
			out = append(out, e.Resolved)
			return true
		})
		return out
	}
	if diff := cmp.Diff(docs(), docs()); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestAttachmentRules(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		qname   string
		summary string
		codes   []string
		orphans int
	}{
		{
			name:    "nearest of two blocks",
			src:     "/** first */\n/** second */\nint x;\n",
			qname:   "x",
			summary: "second",
			codes:   []string{"DOC3001"},
			orphans: 1,
		},
		{
			name:    "trailing after leading",
			src:     "/// lead\nint x; ///< trail\n",
			qname:   "x",
			summary: "lead",
			codes:   []string{"DOC3001"},
			orphans: 1,
		},
		{
			name:    "trailing",
			src:     "int x; ///< trail\nint y;\n",
			qname:   "x",
			summary: "trail",
		},
		{
			name:    "trailing blocked by declaration start",
			src:     "int x;\nstruct S { ///< nope\n};\n",
			qname:   "S",
			codes:   []string{"DOC3002"},
			orphans: 1,
		},
		{
			name:    "preprocessor line breaks attachment",
			src:     "/// lonely\n#define X 1\nint y;\n",
			qname:   "y",
			codes:   []string{"DOC3002"},
			orphans: 1,
		},
		{
			name:    "skipped declaration",
			src:     "/// about the using\nusing namespace std;\nint y;\n",
			qname:   "y",
			codes:   []string{"DOC3002"},
			orphans: 1,
		},
		{
			name:    "comment at end of file",
			src:     "int y;\n\n/// trailing text\n",
			qname:   "y",
			codes:   []string{"DOC3002"},
			orphans: 1,
		},
		{
			name:    "attributes belong to the declaration",
			src:     "/// Deprecated.\n[[deprecated]] int old();\n",
			qname:   "old",
			summary: "Deprecated.",
		},
		{
			name:    "after access specifier",
			src:     "class C {\npublic:\n    /// Member.\n    int m;\n};\n",
			qname:   "C::m",
			summary: "Member.",
		},
		{
			name:    "before access specifier",
			src:     "class A {\n/// doc x\npublic:\n  int x;\n};\n",
			qname:   "A::x",
			summary: "doc x",
		},
		{
			name:    "both sides of access specifier",
			src:     "class A {\n/// far\nprivate:\n  /// near\n  int x;\n};\n",
			qname:   "A::x",
			summary: "near",
			codes:   []string{"DOC3001"},
			orphans: 1,
		},
		{
			name:    "access specifier closing the class",
			src:     "class A {\n  int x;\n/// nothing follows\npublic:\n};\n",
			qname:   "A::x",
			codes:   []string{"DOC3002"},
			orphans: 1,
		},
		{
			name:    "unnamed struct variable",
			src:     "/// pt\nstruct { int x; } point;\n",
			qname:   "point",
			summary: "pt",
		},
		{
			name:    "typedef of unnamed struct",
			src:     "typedef struct {\n /// x doc\n int x;\n} T;\n",
			qname:   "T::x",
			summary: "x doc",
		},
		{
			name:    "after unclosed parameter list",
			src:     "void f(int;\n/// a\nint a;\nclass C { void m(); };\n",
			qname:   "a",
			summary: "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, bag := correlateString(t, tt.src, correlate.PolicyNearest)
			if got := summaryOf(t, m, tt.qname); got != tt.summary {
				t.Errorf("summary = %q, want %q", got, tt.summary)
			}
			if diff := cmp.Diff(tt.codes, codes(bag)); diff != "" {
				t.Errorf("codes (-want +got):\n%s", diff)
			}
			if got := len(m.Orphans()); got != tt.orphans {
				t.Errorf("orphans = %d, want %d", got, tt.orphans)
			}
		})
	}
}

func TestUnnamedClassOwnsMembers(t *testing.T) {
	m, bag := correlateString(t, "typedef struct {\n /// x doc\n int x;\n} T;\n", correlate.PolicyNearest)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(bag))
	}
	x := m.Lookup("T::x")
	if len(x) != 1 {
		t.Fatalf("T::x entities = %d, want 1", len(x))
	}
	owner := m.Get(x[0].Parent)
	if owner == nil || owner.Kind != decl.Struct || owner.Name != decl.Anonymous {
		t.Fatalf("T::x owner = %+v, want the unnamed struct", owner)
	}
	if owner.Documented() {
		t.Errorf("unnamed struct must not take the member comment")
	}
	if got := len(m.Lookup("T")); got != 1 {
		t.Errorf("T entities = %d, want 1", got)
	}
}

func TestUnterminatedCodeFix(t *testing.T) {
	src := "/// @code\n/// int x;\nvoid f();\n"
	_, bag := correlateString(t, src, correlate.PolicyNearest)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.DocUnterminatedCode {
		t.Fatalf("codes = %v, want [DOC%d]", codes(bag), diag.DocUnterminatedCode)
	}
	end := uint32(strings.Index(src, "\nvoid"))
	want := []diag.Fix{{
		Title: "insert @endcode",
		Edits: []diag.FixEdit{{
			Span:    source.Span{File: items[0].Primary.File, Start: end, End: end},
			NewText: "\n/// @endcode",
		}},
	}}
	if diff := cmp.Diff(want, items[0].Fixes); diff != "" {
		t.Errorf("fixes (-want +got):\n%s", diff)
	}
}

func TestOverloadsPairPositionally(t *testing.T) {
	src := `/// A
void f(int);
/// B
void f(int);
void f(int);
/// C
void f(int);
`
	m, _ := correlateString(t, src, correlate.PolicyNearest)
	var got []string
	for _, e := range m.Lookup("f") {
		got = append(got, directive.Markdown(e.Resolved.Summary()))
	}
	if diff := cmp.Diff([]string{"A", "B", "", "C"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOutOfLineOwnership(t *testing.T) {
	src := `namespace ns {
class A {
    /// Declared.
    void f();
};
}
/// Defined.
void ns::A::f() {}
/// Free.
void B::g() {}
/// Member of an unknown class.
X::~X() {}
`
	m, _ := correlateString(t, src, correlate.PolicyNearest)

	a := m.Lookup("ns::A")[0]
	var members []string
	for e := range m.Children(a.ID) {
		members = append(members, directive.Markdown(e.Resolved.Summary()))
	}
	if diff := cmp.Diff([]string{"Declared.", "Defined."}, members); diff != "" {
		t.Errorf("members of A (-want +got):\n%s", diff)
	}

	b := m.Lookup("B")
	if len(b) != 1 || !b[0].Synthetic || b[0].Kind != decl.Namespace || b[0].Documented() {
		t.Fatalf("B = %+v, want one synthetic namespace", b)
	}
	x := m.Lookup("X")
	if len(x) != 1 || !x[0].Synthetic || x[0].Kind != decl.Class {
		t.Fatalf("X = %+v, want one synthetic class", x)
	}

	var top []string
	for e := range m.Top() {
		top = append(top, e.Name)
	}
	if diff := cmp.Diff([]string{"ns", "B", "X"}, top); diff != "" {
		t.Errorf("top (-want +got):\n%s", diff)
	}
}

func TestGroups(t *testing.T) {
	u := load(t, "include/lib/x.hpp", "/** @addtogroup core\n * @{ */\n/// X.\nint x;\n")
	bag := diag.NewBag(8)
	m := correlate.Correlate(u.file, u.records, u.blocks, correlate.Options{Reporter: diag.BagReporter{Bag: bag}})
	if m.Group() != "core" {
		t.Errorf("group = %q, want core", m.Group())
	}
	if bag.Len() != 0 || len(m.Orphans()) != 0 {
		t.Errorf("group marker must not be reported: %v", codes(bag))
	}

	u = load(t, "include/lib/y.hpp", "/// Y.\nint y;\n")
	m = correlate.Correlate(u.file, u.records, u.blocks, correlate.Options{})
	if m.Group() != "lib" {
		t.Errorf("default group = %q, want lib", m.Group())
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]correlate.Policy{
		"":        correlate.PolicyNearest,
		"nearest": correlate.PolicyNearest,
		"first":   correlate.PolicyFirst,
		"strict":  correlate.PolicyStrict,
	} {
		got, err := correlate.ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := correlate.ParsePolicy("closest"); err == nil {
		t.Errorf("expected error for unknown policy")
	}
}
