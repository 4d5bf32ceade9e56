package extract

import (
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.LBrace:
		return token.RBrace
	}
	return token.Invalid
}

// matchGroup returns the index of the closer matching the opener at i.
// Unclosed groups are reported once and end where groupEnd stops them.
func (p *Parser) matchGroup(i int) int {
	end, closed := p.groupEnd(i)
	if !closed {
		p.reportUnclosed(i)
	}
	return end
}

// groupEnd finds the closer of the group opened at i. A '(' or '[' group
// that is not closed ends before the first ';' outside any nested braces,
// before a '}' it did not open, or before EOF; closed is false then.
func (p *Parser) groupEnd(i int) (end int, closed bool) {
	stack := []token.Kind{closerOf(p.tok(i).Kind)}
	braces := 0
	if stack[0] == token.RBrace {
		braces = 1
	}
	for j := i + 1; j < len(p.toks); j++ {
		switch k := p.toks[j].Kind; k {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, closerOf(k))
			if k == token.LBrace {
				braces++
			}
		case token.Semicolon:
			if braces == 0 {
				return max(i, j-1), false
			}
		case token.RParen, token.RBracket, token.RBrace:
			if k == token.RBrace && braces == 0 {
				return max(i, j-1), false
			}
			// несовпадающая закрывающая скобка закрывает ближайшую подходящую
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == token.RBrace {
					braces--
				}
				if top == k {
					break
				}
			}
			if len(stack) == 0 {
				return j, true
			}
		case token.EOF:
			return max(i, j-1), false
		}
	}
	return p.last(), false
}

// reportUnclosed reports the opener at i once, however often it is matched.
func (p *Parser) reportUnclosed(i int) {
	if _, ok := p.unclosed[i]; ok {
		return
	}
	p.unclosed[i] = struct{}{}
	p.report(unclosedCode(p.tok(i).Kind), diag.SevError, p.tok(i).Span, "unclosed "+p.tok(i).Text)
}

func unclosedCode(k token.Kind) diag.Code {
	switch k {
	case token.LParen:
		return diag.SynUnclosedParen
	case token.LBracket:
		return diag.SynUnclosedBracket
	}
	return diag.SynUnclosedBrace
}

// matchAngle returns the index of the '>' closing a template argument list
// opened at i, or ok=false when '<' is not an argument list opener.
func (p *Parser) matchAngle(i int) (int, bool) {
	depth := 0
	for j := i; j < len(p.toks); j++ {
		switch p.toks[j].Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return j, true
			}
		case token.LParen, token.LBracket:
			j = p.matchGroupQuiet(j)
		case token.Semicolon, token.LBrace, token.RBrace, token.RParen, token.RBracket, token.EOF:
			return 0, false
		case token.OtherOp:
			switch p.toks[j].Text {
			case "&&", "||", "==", "!=", "<=", ">=", "<<":
				// условные выражения внутри аргументов допустимы только в скобках
				return 0, false
			}
		}
	}
	return 0, false
}

// matchGroupQuiet is matchGroup without diagnostics, for lookahead.
func (p *Parser) matchGroupQuiet(i int) int {
	end, _ := p.groupEnd(i)
	return end
}

// isAngleOpen reports whether '<' at i opens a template argument list: it
// must follow a name or the template keyword and be closed before the
// statement ends.
func (p *Parser) isAngleOpen(i int) (int, bool) {
	if p.tok(i).Kind != token.Lt {
		return 0, false
	}
	switch prev := p.tok(i - 1); prev.Kind {
	case token.Ident, token.KwTemplate:
	default:
		return 0, false
	}
	return p.matchAngle(i)
}

// skipAngle consumes a template argument list at p.pos if present.
func (p *Parser) skipAngle() bool {
	if end, ok := p.isAngleOpen(p.pos); ok {
		p.pos = end + 1
		return true
	}
	return false
}

// skipAttributes consumes [[...]], __attribute__((...)), __declspec(...)
// and alignas(...) at p.pos.
func (p *Parser) skipAttributes() {
	for {
		switch t := p.cur(); {
		case t.Kind == token.LBracket && p.tok(p.pos+1).Kind == token.LBracket:
			p.pos = p.matchGroup(p.pos) + 1
		case t.Kind == token.KwAlignas && p.tok(p.pos+1).Kind == token.LParen:
			p.pos = p.matchGroup(p.pos+1) + 1
		case t.Kind == token.Ident && isAttributeMacro(t.Text) && p.tok(p.pos+1).Kind == token.LParen:
			p.pos = p.matchGroup(p.pos+1) + 1
		default:
			return
		}
	}
}

func isAttributeMacro(s string) bool {
	switch s {
	case "__attribute__", "__attribute", "__declspec", "_Alignas", "__asm__", "__asm", "asm":
		return true
	}
	return false
}

// skipToDeclEnd consumes everything up to and including ';' at depth 0,
// or up to and including a balanced body.
func (p *Parser) skipToDeclEnd() {
	for !p.eof() {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		case token.LBrace:
			p.pos = p.matchGroup(p.pos) + 1
			if p.at(token.Semicolon) {
				p.advance()
			}
			return
		case token.LParen, token.LBracket:
			p.pos = p.matchGroup(p.pos) + 1
			continue
		}
		p.advance()
	}
}
