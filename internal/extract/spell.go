package extract

import (
	"strings"

	"cppdoc/internal/token"
)

// spell renders tokens with normalized spacing:
//
//	const char *p       -> const char* p
//	std::vector < int > -> std::vector<int>
//	template<class T>   -> template <class T>
//	(N>2)               -> (N > 2)
func spell(toks []token.Token) string {
	opName := operatorNameTokens(toks)
	angle := angleBrackets(toks, opName)
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && needSpace(toks, i, opName, angle) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// operatorNameTokens marks the punctuation spelling an operator-function-id,
// e.g. "==" and "()" in "operator==" and "operator()".
func operatorNameTokens(toks []token.Token) map[int]bool {
	var marks map[int]bool
	mark := func(i int) {
		if marks == nil {
			marks = make(map[int]bool)
		}
		marks[i] = true
	}
	for j, t := range toks {
		if t.Kind != token.KwOperator || j+1 >= len(toks) {
			continue
		}
		n := toks[j+1]
		switch {
		case n.Kind == token.LParen && j+2 < len(toks) && toks[j+2].Kind == token.RParen,
			n.Kind == token.LBracket && j+2 < len(toks) && toks[j+2].Kind == token.RBracket:
			mark(j + 1)
			mark(j + 2)
		case n.Is("new") || n.Kind == token.KwDelete:
			if j+3 < len(toks) && toks[j+2].Kind == token.LBracket && toks[j+3].Kind == token.RBracket {
				mark(j + 2)
				mark(j + 3)
			}
		case n.Kind == token.StringLit:
			// user-defined literal: operator""_km
			mark(j + 1)
			if j+2 < len(toks) && toks[j+2].Kind == token.Ident {
				mark(j + 2)
			}
		case n.Kind.IsPunctOrOp() && n.Kind != token.LParen:
			mark(j + 1)
			// '>' лексер отдаёт по одному: operator>>=, operator>=
			for k := j + 2; k < len(toks) && k <= j+3; k++ {
				if toks[k].Kind != token.Gt && toks[k].Kind != token.Assign {
					break
				}
				if toks[k].Span.Start != toks[k-1].Span.End {
					break
				}
				mark(k)
			}
		}
	}
	return marks
}

// angleBrackets marks the '<' and '>' tokens that delimit template
// argument lists; the unmarked ones are comparisons. A '<' opens a list
// after a name, after template, or at the start of toks.
func angleBrackets(toks []token.Token, opName map[int]bool) map[int]bool {
	type opener struct{ at, depth int }
	var stack []opener
	marks := make(map[int]bool)
	depth := 0
	for i, t := range toks {
		if opName[i] {
			continue
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			for len(stack) > 0 && stack[len(stack)-1].depth > depth {
				stack = stack[:len(stack)-1]
			}
		case token.Lt:
			if i == 0 || toks[i-1].Kind == token.Ident || toks[i-1].Kind == token.KwTemplate {
				stack = append(stack, opener{at: i, depth: depth})
			}
		case token.Gt:
			if n := len(stack); n > 0 && stack[n-1].depth == depth {
				marks[stack[n-1].at] = true
				marks[i] = true
				stack = stack[:n-1]
			}
		}
	}
	return marks
}

func isAngle(k token.Kind) bool { return k == token.Lt || k == token.Gt }

func needSpace(toks []token.Token, i int, opName, angle map[int]bool) bool {
	prev, cur := toks[i-1], toks[i]

	if opName[i] {
		return prev.Kind != token.KwOperator && !opName[i-1] && prev.Kind.IsWord() && cur.Kind.IsWord()
	}
	if opName[i-1] {
		if cur.Kind == token.LParen || cur.Kind == token.Lt {
			return false
		}
		return cur.Kind.IsWord()
	}
	// сравнения отделяются пробелами с обеих сторон
	if isAngle(cur.Kind) && !angle[i] || isAngle(prev.Kind) && !angle[i-1] {
		return true
	}

	switch cur.Kind {
	case token.Comma, token.Semicolon, token.RParen, token.RBracket, token.RBrace, token.Gt, token.DotDotDot:
		return cur.Kind == token.DotDotDot && prev.Kind == token.Comma
	case token.ColonColon:
		// глобальный квалификатор: "const ::ns::T"
		return prev.Kind.IsKeyword() || prev.Kind == token.Comma || prev.Kind == token.Assign
	case token.LBrace:
		return !(prev.Kind == token.Ident || prev.Kind == token.Gt || prev.Kind == token.LBrace || prev.Kind == token.LParen)
	case token.Lt:
		return prev.Kind == token.KwTemplate
	case token.LBracket:
		return !(prev.Kind.IsWord() || prev.Kind == token.RParen || prev.Kind == token.RBracket || prev.Kind == token.Gt)
	case token.LParen:
		switch prev.Kind {
		case token.Ident, token.Gt, token.RParen, token.RBracket, token.KwOperator,
			token.KwDecltype, token.KwNoexcept, token.KwAlignas, token.KwStaticAssert, token.LParen:
			return false
		}
		if prev.Kind.IsBuiltinType() {
			// "int (*fp)(int)", но "int(x)"
			return i+1 < len(toks) && (toks[i+1].Kind == token.Star || toks[i+1].Kind == token.Amp || toks[i+1].Kind == token.Caret)
		}
		return prev.Kind != token.Star && prev.Kind != token.Amp && prev.Kind != token.AndAnd
	case token.Star, token.Amp, token.AndAnd:
		return prev.Kind == token.Comma || prev.Kind == token.Assign || prev.Kind == token.Colon || prev.Kind == token.OtherOp
	case token.Assign, token.Arrow, token.OtherOp, token.Colon:
		return prev.Kind != token.LParen && prev.Kind != token.LBracket && prev.Kind != token.Lt
	case token.Dot:
		return false
	}

	switch prev.Kind {
	case token.LParen, token.LBracket, token.LBrace, token.Lt, token.ColonColon, token.Tilde, token.Bang, token.Dot, token.Hash:
		return false
	case token.Star, token.Amp, token.AndAnd:
		// '*' и '&' прилипают к типу слева; после них пробел только перед словом
		if i >= 2 && toks[i-2].Kind == token.LParen {
			return false
		}
		return cur.Kind.IsWord() || cur.Kind == token.Tilde
	case token.Minus, token.Plus:
		// унарный минус: "= -1", "(-1)"
		if i < 2 {
			return false
		}
		switch toks[i-2].Kind {
		case token.Assign, token.LParen, token.Comma, token.LBracket, token.Lt, token.OtherOp:
			return false
		}
	}
	return true
}
