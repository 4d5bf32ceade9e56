package lexer

import (
	"cppdoc/internal/diag"
	"cppdoc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// Hidden lists identifiers (export macros and similar) that are lexed as
	// TriviaHidden instead of tokens.
	Hidden map[string]struct{}
}

// HiddenSet builds an Options.Hidden value from a list of names.
func HiddenSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
