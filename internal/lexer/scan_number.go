package lexer

import (
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

// scanNumber сканирует pp-number: цифры, буквы суффиксов, точки, разделители
// "'" и знаки экспоненты после e/E/p/P. Значение не вычисляется.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	hex := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		hex = true
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
			if (b == 'e' || b == 'E') && !hex || b == 'p' || b == 'P' {
				if s := lx.cursor.Peek(); s == '+' || s == '-' {
					lx.cursor.Bump()
					if !isDec(lx.cursor.Peek()) {
						sp := lx.cursor.SpanFrom(start)
						lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
						return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
					}
				}
			}
		case b == '\'' && isIdentContinueByte(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
		default:
			return lx.emit(token.NumberLit, start)
		}
	}
	return lx.emit(token.NumberLit, start)
}
