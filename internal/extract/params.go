package extract

import (
	"cppdoc/internal/token"
)

// rng is a half-open token index range.
type rng struct{ from, to int }

// splitTop splits toks[from:to] at commas outside brackets and template
// argument lists.
func (p *Parser) splitTop(from, to int) []rng {
	var out []rng
	start := from
	for i := from; i < to; i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			i = min(p.matchGroupQuiet(i), to-1)
		case token.Lt:
			if end, ok := p.isAngleOpen(i); ok && end < to {
				i = end
			}
		case token.Comma:
			out = append(out, rng{start, i})
			start = i + 1
		}
	}
	if start < to || len(out) > 0 {
		out = append(out, rng{start, to})
	}
	return out
}

func (p *Parser) splitDeclarators(from, to int) []rng {
	return p.splitTop(from, to)
}

// templateParams spells each parameter of a template parameter list in
// toks[from:to]. The result is never nil.
func (p *Parser) templateParams(from, to int) []string {
	out := []string{}
	for _, r := range p.splitTemplateArgs(from, to) {
		if r.to > r.from {
			out = append(out, spell(p.toks[r.from:r.to]))
		}
	}
	return out
}

// splitTemplateArgs is splitTop that also balances nested '<' '>' pairs,
// which inside a parameter list are always brackets.
func (p *Parser) splitTemplateArgs(from, to int) []rng {
	var out []rng
	start, depth := from, 0
	for i := from; i < to; i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			i = min(p.matchGroupQuiet(i), to-1)
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Comma:
			if depth == 0 {
				out = append(out, rng{start, i})
				start = i + 1
			}
		}
	}
	if start < to {
		out = append(out, rng{start, to})
	}
	return out
}

// signature normalizes the parameter list between the parentheses at open
// and close: names, default arguments and attributes are dropped.
func (p *Parser) signature(open, close int) []string {
	out := []string{}
	for _, r := range p.splitTop(open+1, close) {
		if t := p.paramType(r.from, r.to); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 1 && out[0] == "void" {
		return []string{}
	}
	return out
}

func (p *Parser) paramType(from, to int) string {
	var toks []token.Token
	for i := from; i < to; i++ {
		t := p.toks[i]
		switch {
		case t.Kind == token.Assign:
			i = to
			continue
		case t.Kind == token.LBracket && i+1 < to && p.toks[i+1].Kind == token.LBracket:
			i = p.matchGroupQuiet(i)
			continue
		case t.Kind == token.Lt:
			if end, ok := p.isAngleOpen(i); ok && end < to {
				toks = append(toks, p.toks[i:end+1]...)
				i = end
				continue
			}
		case t.Kind == token.LParen:
			end := min(p.matchGroupQuiet(i), to-1)
			group := p.toks[i : end+1]
			if isDeclaratorGroup(group) {
				// function pointer: void (*cb)(int) -> void(*)(int)
				for _, g := range group {
					if g.Kind != token.Ident || !isIdentAfterPtr(group, g) {
						toks = append(toks, g)
					}
				}
			} else {
				toks = append(toks, group...)
			}
			i = end
			continue
		}
		toks = append(toks, t)
	}
	return spell(dropParamName(toks))
}

// isDeclaratorGroup reports whether a parenthesized group is a pointer or
// reference declarator such as (*fp) or (&arr) or (C::*pm).
func isDeclaratorGroup(group []token.Token) bool {
	if len(group) < 3 {
		return false
	}
	inner := group[1 : len(group)-1]
	i := 0
	for i+1 < len(inner) && inner[i].Kind == token.Ident && inner[i+1].Kind == token.ColonColon {
		i += 2
	}
	if i >= len(inner) {
		return false
	}
	switch inner[i].Kind {
	case token.Star, token.Amp, token.AndAnd, token.Caret:
		return true
	}
	return false
}

func isIdentAfterPtr(group []token.Token, id token.Token) bool {
	for i, t := range group {
		if t.Span == id.Span && t.Text == id.Text {
			return i > 0 && (group[i-1].Kind == token.Star || group[i-1].Kind == token.Amp || group[i-1].Kind == token.AndAnd || group[i-1].Kind == token.Caret)
		}
	}
	return false
}

// dropParamName removes the declarator name from a parameter, keeping
// array bounds: "const char* s" -> "const char*", "int a[3]" -> "int[3]".
func dropParamName(toks []token.Token) []token.Token {
	name := -1
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen, token.LBracket, token.Lt:
			depth++
		case token.RParen, token.RBracket, token.Gt:
			depth--
		case token.Ident:
			if depth == 0 {
				name = i
			}
		}
	}
	if name <= 0 {
		return toks
	}
	if name+1 < len(toks) {
		switch toks[name+1].Kind {
		case token.ColonColon, token.Lt, token.LParen:
			return toks
		}
	}
	switch prev := toks[name-1]; prev.Kind {
	case token.Ident, token.Gt, token.Star, token.Amp, token.AndAnd, token.DotDotDot:
	default:
		if !prev.Kind.IsBuiltinType() {
			return toks
		}
	}
	out := make([]token.Token, 0, len(toks)-1)
	out = append(out, toks[:name]...)
	return append(out, toks[name+1:]...)
}

// declaratorName finds the declared name in a typedef-style declarator:
// the name inside (*name) groups, otherwise the last identifier outside
// brackets that is not a qualifier.
func (p *Parser) declaratorName(from, to int) int {
	name := -1
	for i := from; i < to; i++ {
		switch t := p.toks[i]; t.Kind {
		case token.LParen:
			end := min(p.matchGroupQuiet(i), to-1)
			if isDeclaratorGroup(p.toks[i : end+1]) {
				for j := end - 1; j > i; j-- {
					if p.toks[j].Kind == token.Ident {
						return j
					}
				}
			}
			i = end
		case token.LBracket, token.LBrace:
			i = min(p.matchGroupQuiet(i), to-1)
		case token.Lt:
			if end, ok := p.isAngleOpen(i); ok && end < to {
				i = end
			}
		case token.Ident:
			if i+1 < to && p.toks[i+1].Kind == token.ColonColon {
				continue
			}
			name = i
		}
	}
	return name
}
