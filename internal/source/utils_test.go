package source

import (
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "include", "a.hpp")
	rel, err := RelativePath(inside, base)
	if err != nil {
		t.Fatal(err)
	}
	if rel != "include/a.hpp" {
		t.Errorf("RelativePath = %q", rel)
	}

	outside := filepath.Join(filepath.Dir(base), "other.hpp")
	got, err := RelativePath(outside, base)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := AbsolutePath(outside)
	if got != want {
		t.Errorf("outside path = %q, want absolute %q", got, want)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("dir/sub/file.hpp"); got != "file.hpp" {
		t.Errorf("BaseName = %q", got)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed || string(out) != "a\rb\nc" {
		t.Errorf("normalizeCRLF = %q, %v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Errorf("unexpected change %q", out)
	}
}
