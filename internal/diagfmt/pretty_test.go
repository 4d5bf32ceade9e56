package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cppdoc/internal/diag"
	"cppdoc/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const char* s = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/include/lib.hpp", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 16, End: 36},
		"Unterminated string literal",
	)
	bag.Add(&d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/include/lib.hpp:1:17"},
		{"Relative path", PathModeRelative, "include/lib.hpp:1:17"},
		{"Basename only", PathModeBasename, "lib.hpp:1:17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "lib.hpp", "lib.hpp:"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.hpp", "file.hpp:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("int x = 42;\n"))
			bag := diag.NewBag(10)
			d := diag.New(diag.SevWarning, diag.DocOrphanComment, source.Span{File: fileID, Start: 8, End: 10}, "Test warning")
			bag.Add(&d)

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()

			if !strings.HasPrefix(output, tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, output)
			}
			if strings.Contains(output, "/very/") {
				t.Errorf("Long path was not shortened:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	src := "/// Adds.\n\tint add(int a, int b);\n"
	fileID := fs.AddVirtual("lib.hpp", []byte(src))
	start := uint32(strings.Index(src, "add"))

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.DocOverloadChoice, source.Span{File: fileID, Start: start, End: start + 3}, "ambiguous")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 9}, "comment is here")
	bag.Add(&d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})

	want := strings.Join([]string{
		"lib.hpp:2:6: WARNING DOC3004: ambiguous",
		"1 | /// Adds.",
		"2 |     int add(int a, int b);",
		"  |         ^~~",
		"  note: lib.hpp:1:1: comment is here",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Pretty output mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("lib.hpp", []byte("int x;\n"))

	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "missing.hpp: no such file or directory")
	bag.Add(&d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 2})

	want := "ERROR IO4001: missing.hpp: no such file or directory\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib.hpp", []byte("/// @ref\nint x;\n"))

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.DocMissingCommandTarget, source.Span{File: fileID, Start: 4, End: 8}, "@ref needs a target")
	d = d.WithFix("remove command", diag.FixEdit{Span: source.Span{File: fileID, Start: 4, End: 8}, NewText: ""})
	bag.Add(&d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true})
	output := buf.String()

	for _, want := range []string{"  fix: remove command", `    1:5-1:9 -> ""`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib.hpp", []byte("int x;\n/// stray\n"))

	bag := diag.NewBag(10)
	d1 := diag.New(diag.SevWarning, diag.DocOrphanComment, source.Span{File: fileID, Start: 7, End: 16}, "comment documents nothing")
	d2 := diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "gone.hpp: not found")
	bag.Add(&d1)
	bag.Add(&d2)

	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "warning DOC3002 lib.hpp:2:1 comment documents nothing\nerror IO4001 gone.hpp: not found\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
