package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("widget.hpp", []byte("int a;"), 0)
	id2 := fs.Add("widget.hpp", []byte("int b;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("widget.hpp")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "int a;" {
		t.Errorf("old content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("v.hpp", []byte("\xEF\xBB\xBFint a;\r\nint b;\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "int a;\nint b;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	for _, flag := range []FileFlags{FileVirtual, FileHadBOM, FileNormalizedCRLF} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %d not set", flag)
		}
	}
	want := []uint32{6, 13}
	if len(f.LineIdx) != len(want) || f.LineIdx[0] != want[0] || f.LineIdx[1] != want[1] {
		t.Errorf("LineIdx = %v, want %v", f.LineIdx, want)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.hpp")
	if err := os.WriteFile(path, []byte("a\r\nb"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb" || f.Flags&FileNormalizedCRLF == 0 || f.Flags&FileVirtual != 0 {
		t.Errorf("unexpected file %q flags=%b", f.Content, f.Flags)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.hpp")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.hpp", []byte("ab\ncd\n\nef"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tc := range cases {
		got := fs.Position(Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Errorf("offset %d: got %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.hpp", []byte("first\nsecond\nthird")))
	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.hpp", []byte("int value;"))
	f := fs.Get(id)
	if got := f.Slice(Span{File: id, Start: 4, End: 9}); got != "value" {
		t.Errorf("Slice = %q", got)
	}
	if got := f.Slice(Span{File: id, Start: 4, End: 99}); got != "value;" {
		t.Errorf("clamped Slice = %q", got)
	}
}
