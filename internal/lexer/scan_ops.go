package lexer

import (
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

// Жадность: сначала длинные последовательности, затем односимвольные.
// '>' всегда отдельный токен: ">>" закрывает вложенные списки шаблонов,
// а выражения экстрактор пропускает целиком.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, op := range compoundOps {
		if lx.try(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Bump()
	if k, ok := singleOps[ch]; ok {
		return lx.emit(k, start)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

var compoundOps = []struct {
	text string
	kind token.Kind
}{
	{"...", token.DotDotDot},
	{"<=>", token.OtherOp},
	{"<<=", token.OtherOp},
	{"->*", token.OtherOp},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"&&", token.AndAnd},
	{"||", token.OtherOp},
	{"==", token.OtherOp},
	{"!=", token.OtherOp},
	{"<=", token.OtherOp},
	{">=", token.OtherOp},
	{"<<", token.OtherOp},
	{"++", token.OtherOp},
	{"--", token.OtherOp},
	{"+=", token.OtherOp},
	{"-=", token.OtherOp},
	{"*=", token.OtherOp},
	{"/=", token.OtherOp},
	{"%=", token.OtherOp},
	{"^=", token.OtherOp},
	{"|=", token.OtherOp},
	{"&=", token.OtherOp},
	{".*", token.OtherOp},
	{"##", token.OtherOp},
}

var singleOps = map[byte]token.Kind{
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	'*': token.Star,
	'&': token.Amp,
	'~': token.Tilde,
	'!': token.Bang,
	'+': token.Plus,
	'-': token.Minus,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'|': token.Pipe,
	'?': token.Question,
	'#': token.Hash,
}
