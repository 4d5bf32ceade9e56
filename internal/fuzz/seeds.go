package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var seedExtensions = map[string]bool{".h": true, ".hpp": true, ".cpp": true, ".cc": true, ".hxx": true, ".cxx": true}

// snippets cover comment forms and declaration shapes that have no fixture.
var snippets = []string{
	"",
	"/// lone comment",
	"int x; ///< trailing",
	"/** @copybrief a */ void b();\n/** A. */ void a();",
	"enum class E { A, ///< first\n B = 2 ///< second\n};",
	"template <typename T, int N = (1 > 2)> struct S<T*, N> {};",
	"namespace a::b::c { /*! @addtogroup core */ }",
	"void S::f() const noexcept {} /// stray\n",
	"/// \\f[ x^2 \\f]\n/// @code\n/// int y;\n",
	"class C { public: /// ctor\n C(int = {}); ~C() = default; operator bool() const; };",
	"#define API_EXPORT\nAPI_EXPORT int f(int (*cb)(int), ...);",
	"struct { int a; } anon; using V = std::vector<std::pair<int, int>>;",
	"/* unterminated",
	"\"unterminated string\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range snippets {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..")
	// проходим по testdata всех пакетов, добавляем C++ файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || !strings.Contains(filepath.ToSlash(path), "/testdata/") {
			return nil
		}
		if !seedExtensions[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
