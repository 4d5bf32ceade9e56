package lexer

import (
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

// scanString сканирует "..." начиная с текущей кавычки; start может
// указывать на префикс кодировки.
func (lx *Lexer) scanString(start Mark) token.Token {
	return lx.scanQuoted(start, '"', token.StringLit, "string")
}

func (lx *Lexer) scanChar(start Mark) token.Token {
	return lx.scanQuoted(start, '\'', token.CharLit, "character")
}

func (lx *Lexer) scanQuoted(start Mark, quote byte, kind token.Kind, what string) token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '\\':
			// escape не валидируем: съедаем '\' и следующий байт
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in "+what+" literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated "+what+" literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanRawString сканирует R"delim( ... )delim". Курсор стоит на кавычке.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	lx.cursor.Bump() // '"'
	delimStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '(' {
			break
		}
		if b == ')' || b == '\\' || b == '"' || isBlank(b) || b == '\n' || lx.cursor.Off-delimStart >= 16 {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "invalid raw string delimiter")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	closing := ")" + string(lx.file.Content[delimStart:lx.cursor.Off]) + "\""
	lx.cursor.Bump() // '('
	for !lx.cursor.EOF() {
		if lx.cursor.EatString(closing) {
			return lx.emit(token.StringLit, start)
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
