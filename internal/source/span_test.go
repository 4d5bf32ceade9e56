package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 10}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 50}); got != a {
		t.Errorf("cross-file Cover changed span: %v", got)
	}
}

func TestSpanPredicates(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 20}
	inner := Span{File: 0, Start: 3, End: 8}
	if !outer.Contains(inner) || inner.Contains(outer) {
		t.Error("Contains mismatch")
	}
	if !inner.Before(Span{File: 0, Start: 8, End: 9}) {
		t.Error("Before should hold for adjacent spans")
	}
	if inner.Len() != 5 || inner.Empty() {
		t.Error("Len/Empty mismatch")
	}
}
