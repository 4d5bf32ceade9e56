package lexer

import (
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r', '\f', '\v' и склейка строк "\\\n" коалесцируются в TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... и /* ... */ классифицируются через token.ClassifyComment
//   - идентификаторы из Options.Hidden становятся TriviaHidden
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isBlank(b) || lx.atSplice():
			for !lx.cursor.EOF() {
				if isBlank(lx.cursor.Peek()) {
					lx.cursor.Bump()
					continue
				}
				if lx.atSplice() {
					lx.cursor.Bump()
					lx.cursor.Bump()
					continue
				}
				break
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '/':
			if lx.scanCommentIntoHold() {
				continue
			}

		case len(lx.opts.Hidden) > 0 && isIdentStartByte(b):
			if lx.scanHiddenIntoHold() {
				continue
			}
		}
		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) atSplice() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '\\' && b1 == '\n'
}

// //... , /*...*/ (без вложенности, как в C++)
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.ClassifyComment(lx.text(sp)),
			Span: sp,
			Text: lx.text(sp),
		})
		return true
	}

	closed := false
	for !lx.cursor.EOF() {
		if lx.cursor.EatString("*/") {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.ClassifyComment(lx.text(sp)),
		Span: sp,
		Text: lx.text(sp),
	})
	return true
}

func (lx *Lexer) scanHiddenIntoHold() bool {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if _, ok := lx.opts.Hidden[lx.text(sp)]; !ok {
		lx.cursor.Reset(start)
		return false
	}
	lx.pushTrivia(token.TriviaHidden, start)
	return true
}
