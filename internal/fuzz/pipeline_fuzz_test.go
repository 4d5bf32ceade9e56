package fuzztests

import (
	"context"
	"testing"
	"time"

	"cppdoc/internal/comment"
	"cppdoc/internal/correlate"
	"cppdoc/internal/diag"
	"cppdoc/internal/directive"
	"cppdoc/internal/extract"
	"cppdoc/internal/lexer"
	"cppdoc/internal/source"
	"cppdoc/internal/testkit"
)

// pipelineTimeout is the maximum time allowed for one input.
// If correlation takes longer, it indicates a potential infinite loop.
const pipelineTimeout = 5 * time.Second

func runPipeline(t *testing.T, input []byte) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.hpp", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	blocks := comment.Scan(file, toks)
	records := extract.Extract(file, toks, extract.Options{Reporter: reporter, MaxErrors: 128})
	m := correlate.Correlate(file, records, blocks, correlate.Options{Reporter: reporter})

	if err := m.Validate(file.Len()); err != nil {
		t.Errorf("model invariants: %v", err)
	}
	if err := testkit.CheckRecordInvariants(records, file); err != nil {
		t.Errorf("records: %v", err)
	}
	if err := testkit.CheckAttachments(m); err != nil {
		t.Errorf("attachments: %v", err)
	}
}

// FuzzCorrelateNoHang runs the whole pipeline with a timeout to detect
// infinite loops in extractor error recovery.
func FuzzCorrelateNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for error recovery
	f.Add([]byte("class A { void f( };"))                // unclosed paren in class
	f.Add([]byte("template <class T struct S {};"))      // unclosed template header
	f.Add([]byte("namespace { namespace { namespace {")) // unclosed scopes
	f.Add([]byte("}}}; int x;"))                         // stray braces
	f.Add([]byte("enum E : unsigned { A = sizeof(int) <"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			runPipeline(t, input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected: took longer than %v\ninput (%d bytes): %q",
				pipelineTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func FuzzDirectiveParse(f *testing.F) {
	for _, s := range []string{
		"Brief.\n\n@param x the x\n@return nothing",
		"@copybrief other",
		"\\f$ a + b \\f$ and $c$ and @c code and @ref target",
		"@code\nint x;\n",
		"@throws std::bad_alloc when full\n@see other\n@sa more",
		"@note",
	} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, text string) {
		if len(text) > maxFuzzInput {
			text = text[:maxFuzzInput]
		}
		bag := diag.NewBag(64)
		doc := directive.Parse(text, directive.Options{Reporter: diag.BagReporter{Bag: bag}})
		_ = directive.Markdown(doc.Items)
		_ = doc.Summary()
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
