package lexer

import (
	"cppdoc/internal/token"
)

// scanPreproc забирает директиву препроцессора целиком, включая
// продолжения строк через '\' и многострочные /* */ внутри неё.
func (lx *Lexer) scanPreproc() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if lx.atSplice() {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if lx.cursor.Peek() == '\n' {
			break
		}
		if lx.cursor.EatString("/*") {
			for !lx.cursor.EOF() && !lx.cursor.EatString("*/") {
				lx.cursor.Bump()
			}
			continue
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Preproc, start)
}
