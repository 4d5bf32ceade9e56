package fuzztests

import (
	"testing"

	"cppdoc/internal/comment"
	"cppdoc/internal/diag"
	"cppdoc/internal/lexer"
	"cppdoc/internal/source"
	"cppdoc/internal/testkit"
	"cppdoc/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.hpp", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{
			Reporter: diag.BagReporter{Bag: bag},
			Hidden:   lexer.HiddenSet([]string{"API_EXPORT"}),
		})
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		for i := 1; i < len(toks); i++ {
			if toks[i].Span.Start < toks[i-1].Span.End {
				t.Fatalf("token %d overlaps its predecessor: %v < %v", i, toks[i].Span, toks[i-1].Span)
			}
		}
		if err := testkit.CheckBlockInvariants(comment.Scan(file, toks), file); err != nil {
			t.Fatalf("blocks: %v", err)
		}
	})
}
