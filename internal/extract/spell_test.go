package extract

import (
	"testing"

	"cppdoc/internal/lexer"
	"cppdoc/internal/source"
)

func TestSpell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"const char *p", "const char* p"},
		{"std::vector < int > v", "std::vector<int> v"},
		{"template<class T>", "template <class T>"},
		{"int (*fp)(int)", "int (*fp)(int)"},
		{"bool operator==(const S &o) const", "bool operator==(const S& o) const"},
		{"X &operator=(X &&)", "X& operator=(X&&)"},
		{"int a = -1", "int a = -1"},
		{"auto operator()(int) -> int", "auto operator()(int) -> int"},
		{"operator bool ( ) const", "operator bool() const"},
		{"template <typename... Ts>", "template <typename... Ts>"},
		{"unsigned   long\n long n", "unsigned long long n"},
		{"bool B = (N > 2)", "bool B = (N > 2)"},
		{"bool B = (N>2)", "bool B = (N > 2)"},
		{"sizeof(T)<4", "sizeof(T) < 4"},
		{"template <int N, bool B = (N > 2)> struct S", "template <int N, bool B = (N > 2)> struct S"},
		{"std::map<int, std::vector<int>> m", "std::map<int, std::vector<int>> m"},
		{"<int, long>", "<int, long>"},
	}
	for _, tt := range tests {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("s.hpp", []byte(tt.in)))
		toks := lexer.Tokenize(file, lexer.Options{})
		if got := spell(toks[:len(toks)-1]); got != tt.want {
			t.Errorf("spell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
