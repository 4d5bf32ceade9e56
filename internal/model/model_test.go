package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cppdoc/internal/decl"
	"cppdoc/internal/source"
)

func testRecords() []decl.Record {
	sp := func(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }
	return []decl.Record{
		{Kind: decl.Namespace, Name: "ns", Span: sp(0, 100), Parent: -1},
		{Kind: decl.Function, Name: "f", Scope: []string{"ns"}, Signature: []string{"int"}, Span: sp(10, 20), Parent: 0},
		{Kind: decl.Function, Name: "f", Scope: []string{"ns"}, Signature: []string{"int", "float"}, Span: sp(21, 40), Parent: 0},
		{Kind: decl.Class, Name: "C", Scope: []string{"ns"}, Span: sp(41, 90), Parent: 0},
		{Kind: decl.Method, Name: "m", Scope: []string{"ns", "C"}, Span: sp(50, 60), Parent: 3},
	}
}

func buildTestModel(t *testing.T) *Model {
	t.Helper()
	recs := testRecords()
	b := NewBuilder("dir/file.hpp", 1, recs)
	for i := range recs {
		id := b.AddRecord(i)
		b.Link(b.EntityOf(recs[i].Parent), id)
	}
	b.SetGroup("dir")
	return b.Publish()
}

func TestModelQueries(t *testing.T) {
	m := buildTestModel(t)
	if err := m.Validate(100); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if m.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", m.Len())
	}
	if m.Group() != "dir" || m.Path() != "dir/file.hpp" {
		t.Errorf("group/path = %q %q", m.Group(), m.Path())
	}

	if got := len(m.Lookup("ns::f")); got != 2 {
		t.Errorf("Lookup(ns::f) = %d entities, want 2", got)
	}
	if len(m.Lookup("f")) != 0 {
		t.Errorf("unqualified lookup must not match")
	}
	e, ok := m.LookupSignature("ns::f", "(int, float)")
	if !ok || e.Record != &m.Records()[2] {
		t.Errorf("LookupSignature picked %+v", e)
	}
	if _, ok := m.LookupSignature("ns::f", "(double)"); ok {
		t.Errorf("unexpected match for (double)")
	}

	var top []string
	for e := range m.Top() {
		top = append(top, e.QualifiedName())
	}
	if diff := cmp.Diff([]string{"ns"}, top); diff != "" {
		t.Errorf("top (-want +got):\n%s", diff)
	}

	var children []string
	for e := range m.Children(m.EntityOf(0)) {
		children = append(children, e.Name+e.Signature())
	}
	if diff := cmp.Diff([]string{"f(int)", "f(int, float)", "C"}, children); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}

	var walked []string
	m.Walk(func(e *Entity, depth int) bool {
		walked = append(walked, strings.Repeat(".", depth)+e.Name)
		return e.Kind != decl.Class
	})
	if diff := cmp.Diff([]string{"ns", ".f", ".f", ".C"}, walked); diff != "" {
		t.Errorf("walk (-want +got):\n%s", diff)
	}

	var path []string
	for _, a := range m.Ancestors(m.EntityOf(4)) {
		path = append(path, a.Name)
	}
	if diff := cmp.Diff([]string{"ns", "C"}, path); diff != "" {
		t.Errorf("ancestors (-want +got):\n%s", diff)
	}
}

func TestBuilderSynthetic(t *testing.T) {
	recs := []decl.Record{{
		Kind: decl.Method, Name: "g", Scope: []string{"A"}, Qualifier: []string{"A"},
		Span: source.Span{File: 1, Start: 0, End: 10}, Parent: -1,
	}}
	b := NewBuilder("x.cpp", 1, recs)
	a := b.AddSynthetic(decl.Class, "A", nil)
	b.Link(NoEntityID, a)
	b.Link(a, b.AddRecord(0))
	if again := b.AddRecord(0); again != b.EntityOf(0) {
		t.Errorf("AddRecord must reuse the entity of a record")
	}
	m := b.Publish()
	if err := m.Validate(10); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := m.Lookup("A"); len(got) != 1 || !got[0].Synthetic || got[0].Documented() {
		t.Errorf("synthetic scope lookup = %+v", got)
	}
}

func TestBuilderLinkTwicePanics(t *testing.T) {
	recs := testRecords()[:1]
	b := NewBuilder("x.hpp", 1, recs)
	id := b.AddRecord(0)
	b.Link(NoEntityID, id)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on second link")
		}
	}()
	b.Link(NoEntityID, id)
}

func TestValidateReportsViolations(t *testing.T) {
	recs := testRecords()
	b := NewBuilder("x.hpp", 1, recs)
	for i := range recs {
		b.AddRecord(i)
	}
	// только пространство имён связано
	b.Link(NoEntityID, b.EntityOf(0))
	m := b.Publish()

	err := m.Validate(50)
	if err == nil {
		t.Fatalf("expected violations")
	}
	msg := err.Error()
	for _, want := range []string{"is not owned", "outside file"} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in:\n%s", want, msg)
		}
	}
}
