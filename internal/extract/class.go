package extract

import (
	"strings"

	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

func classKind(k token.Kind) decl.Kind {
	switch k {
	case token.KwStruct:
		return decl.Struct
	case token.KwUnion:
		return decl.Union
	}
	return decl.Class
}

// classHead is a parsed "A::B<args>" class name. qualifier holds the
// components before the last one, spec the spelled argument list, if any.
type classHead struct {
	nameTok   int
	qualifier []string
	spec      string
}

func (p *Parser) readClassName() (classHead, bool) {
	ch := classHead{nameTok: -1}
	if p.at(token.ColonColon) {
		p.advance()
	}
	for p.at(token.Ident) {
		ch.nameTok = p.pos
		ch.spec = ""
		p.advance()
		if end, ok := p.isAngleOpen(p.pos); ok {
			ch.spec = spell(p.toks[p.pos : end+1])
			p.pos = end + 1
		}
		if !p.at(token.ColonColon) || p.tok(p.pos+1).Kind != token.Ident {
			break
		}
		ch.qualifier = append(ch.qualifier, p.tok(ch.nameTok).Text)
		p.advance()
	}
	return ch, ch.nameTok >= 0
}

// tryClass parses a class-specifier or a class forward declaration. It
// restores the position and returns false for elaborated type uses such as
// "struct S *p;".
func (p *Parser) tryClass(fr *frame, h head) bool {
	save := p.pos
	cs, ok := p.classSpecifier(fr, h)
	if !ok {
		return false
	}
	if cs.end < 0 {
		return true
	}

	// trailing declarators: struct S { } s, *ps;
	if !p.at(token.Semicolon) && !p.atOr(token.RBrace, token.EOF) {
		lead := p.pos
		if !cs.named {
			// безымянный класс документируется через первый декларатор
			lead = h.lead
		}
		p.parseDeclaratorList(fr, h, nil, p.collapseBodies(save, cs.end+1), p.pos, lead)
		return true
	}
	if p.at(token.Semicolon) {
		p.setEnd(cs.idx, p.pos)
		p.advance()
	}
	return true
}

// classSpec is the outcome of classSpecifier.
type classSpec struct {
	idx   int // record index
	end   int // closing brace; -1 for a forward declaration
	named bool
}

// classSpecifier parses "class X : bases { members }" at p.pos and leaves
// p.pos after the closing brace. A forward declaration is recorded and its
// ';' consumed. An unnamed class is recorded too: its members are scoped
// by the first declarator that follows the body, as in
// "typedef struct { int x; } T;" (T::x).
func (p *Parser) classSpecifier(fr *frame, h head) (classSpec, bool) {
	save := p.pos
	kw := p.advance()
	p.skipAttributes()
	ch, named := p.readClassName()
	for p.at(token.KwFinal) || p.cur().Is("sealed") {
		p.advance()
	}

	switch {
	case p.at(token.Semicolon) && named:
		r := p.classRecord(fr, h, kw.Kind, ch)
		r.Flags |= decl.FlagForward
		r.Definition = spell(p.toks[save:p.pos])
		if h.tmpl != nil {
			r.Definition = spell(p.toks[h.lead:p.pos])
		}
		r.Span = p.spanBetween(h.lead, p.pos)
		idx := p.push(r)
		p.advance()
		return classSpec{idx: idx, end: -1, named: true}, true
	case p.at(token.Colon):
		for !p.eof() && !p.atOr(token.LBrace, token.Semicolon, token.RBrace) {
			if p.at(token.LParen) || p.at(token.LBracket) {
				p.pos = p.matchGroup(p.pos)
			} else if end, ok := p.isAngleOpen(p.pos); ok {
				p.pos = end
			}
			p.advance()
		}
		if !p.at(token.LBrace) {
			p.pos = save
			return classSpec{}, false
		}
	case p.at(token.LBrace):
	default:
		p.pos = save
		return classSpec{}, false
	}

	// определение класса
	bodyOpen := p.pos
	r := p.classRecord(fr, h, kw.Kind, ch)
	r.Definition = p.classDefinition(h, save, bodyOpen)
	r.Flags |= decl.FlagDefined
	r.Span = p.spanBetween(h.lead, bodyOpen)
	idx := p.push(r)
	inner := &frame{kind: frameClass, parent: idx, scope: fr.scope, outerTmpl: fr.outerTmpl, access: defaultAccess(kw.Kind)}
	if named {
		inner.scope = childScope(fr.scope, append(append([]string{}, ch.qualifier...), r.Name)...)
		inner.className = r.Name
		if h.tmpl != nil {
			inner.outerTmpl = append(append([]string{}, fr.outerTmpl...), "template <"+strings.Join(h.tmpl, ", ")+">")
		}
	} else if d := p.firstDeclarator(p.matchGroupQuiet(bodyOpen) + 1); d >= 0 {
		inner.scope = childScope(fr.scope, p.toks[d].Text)
	}
	open := p.advance()
	p.parseDeclSeq(inner)
	end := p.closeBrace(open)
	p.setEnd(idx, end)
	return classSpec{idx: idx, end: end, named: named}, true
}

// firstDeclarator returns the name token of the declarator starting at
// from, or -1 when the declaration ends there.
func (p *Parser) firstDeclarator(from int) int {
	stop := p.scanRegion(from)
	if stop <= from {
		return -1
	}
	return p.declaratorName(from, stop)
}

func defaultAccess(k token.Kind) decl.Access {
	if k == token.KwClass {
		return decl.AccessPrivate
	}
	return decl.AccessPublic
}

func (p *Parser) classRecord(fr *frame, h head, kw token.Kind, ch classHead) decl.Record {
	r := decl.Record{
		Kind:           classKind(kw),
		Scope:          childScope(fr.scope, ch.qualifier...),
		Qualifier:      ch.qualifier,
		Template:       h.tmpl,
		OuterTemplate:  fr.outerTmpl,
		Specialization: ch.spec,
		Lead:           p.tok(h.lead).Span.Start,
		Parent:         fr.parent,
		Access:         fr.access,
	}
	if ch.nameTok >= 0 {
		r.Name = p.tok(ch.nameTok).Text
		r.NameSpan = p.tok(ch.nameTok).Span
	} else {
		r.NameSpan = p.tok(h.lead).Span
	}
	if len(ch.qualifier) == 0 {
		r.Qualifier = nil
	}
	return r
}

// classDefinition spells the class head up to the body without attributes
// and base clause: "template <typename T> class X".
func (p *Parser) classDefinition(h head, kw, bodyOpen int) string {
	var toks []token.Token
	if h.tmpl != nil {
		hdr := p.templateHeaderTokens(h.lead, kw)
		toks = append(toks, hdr...)
	}
	for i := kw; i < bodyOpen; i++ {
		t := p.toks[i]
		if t.Kind == token.Colon {
			break
		}
		if t.Kind == token.LBracket && p.tok(i+1).Kind == token.LBracket {
			i = p.matchGroupQuiet(i)
			continue
		}
		if t.Kind == token.Ident && isAttributeMacro(t.Text) {
			i = p.matchGroupQuiet(i + 1)
			continue
		}
		toks = append(toks, t)
	}
	return spell(toks)
}

// templateHeaderTokens returns the last template<...> header in toks[from:to].
func (p *Parser) templateHeaderTokens(from, to int) []token.Token {
	start := -1
	for i := from; i < to; i++ {
		if p.toks[i].Kind == token.KwTemplate {
			start = i
		}
	}
	if start < 0 {
		return nil
	}
	end, ok := p.matchAngle(start + 1)
	if !ok || end >= to {
		return nil
	}
	return p.toks[start : end+1]
}

// tryEnum parses an enum-specifier or an opaque enum declaration.
func (p *Parser) tryEnum(fr *frame, h head) bool {
	save := p.pos
	p.advance()
	kind := decl.Enum
	if p.atOr(token.KwClass, token.KwStruct) {
		kind = decl.EnumClass
		p.advance()
	}
	p.skipAttributes()
	ch, named := p.readClassName()
	if p.at(token.Colon) {
		// underlying type
		p.advance()
		for !p.eof() && !p.atOr(token.LBrace, token.Semicolon, token.RBrace, token.LParen) {
			p.advance()
		}
	}
	if !p.at(token.LBrace) && !(p.at(token.Semicolon) && named) {
		p.pos = save
		return false
	}

	r := decl.Record{
		Kind:          kind,
		Scope:         childScope(fr.scope, ch.qualifier...),
		Qualifier:     ch.qualifier,
		OuterTemplate: fr.outerTmpl,
		Lead:          p.tok(h.lead).Span.Start,
		Parent:        fr.parent,
		Access:        fr.access,
		Definition:    spell(p.toks[save:p.pos]),
	}
	if len(ch.qualifier) == 0 {
		r.Qualifier = nil
	}
	if named {
		r.Name = p.tok(ch.nameTok).Text
		r.NameSpan = p.tok(ch.nameTok).Span
	} else {
		r.NameSpan = p.tok(save).Span
	}

	if p.at(token.Semicolon) {
		r.Flags |= decl.FlagForward
		r.Span = p.spanBetween(h.lead, p.pos)
		p.push(r)
		p.advance()
		return true
	}

	r.Flags |= decl.FlagDefined
	r.Span = p.spanBetween(h.lead, p.pos)
	idx := -1
	parent, scope := fr.parent, fr.scope
	if named {
		idx = p.push(r)
		parent = idx
		scope = childScope(r.Scope, r.Name)
	}
	open := p.advance()
	p.parseEnumerators(fr, parent, scope)
	end := p.closeBrace(open)
	if idx >= 0 {
		p.setEnd(idx, end)
	}

	if !p.at(token.Semicolon) && !p.atOr(token.RBrace, token.EOF) {
		p.parseDeclaratorList(fr, h, nil, p.collapseBodies(save, end+1), p.pos, p.pos)
		return true
	}
	if p.at(token.Semicolon) {
		if idx >= 0 {
			p.setEnd(idx, p.pos)
		}
		p.advance()
	}
	return true
}

// parseEnumerators reads "A = 0, B, C" up to the closing brace. Each
// enumerator span covers its name and initializer.
func (p *Parser) parseEnumerators(fr *frame, parent int, scope []string) {
	for !p.eof() && !p.at(token.RBrace) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		start := p.pos
		p.skipAttributes()
		if !p.at(token.Ident) {
			p.report(diag.SynExpectIdentifier, diag.SevError, p.cur().Span, "expected enumerator name, got "+describe(p.cur()))
			for !p.eof() && !p.atOr(token.Comma, token.RBrace) {
				if p.atOr(token.LParen, token.LBracket, token.LBrace) {
					p.pos = p.matchGroup(p.pos)
				}
				p.advance()
			}
			continue
		}
		nameTok := p.pos
		p.advance()
		p.skipAttributes()
		if p.at(token.Assign) {
			for !p.eof() && !p.atOr(token.Comma, token.RBrace) {
				if p.atOr(token.LParen, token.LBracket, token.LBrace) {
					p.pos = p.matchGroup(p.pos)
				}
				p.advance()
			}
		}
		r := decl.Record{
			Kind:          decl.Enumerator,
			Name:          p.tok(nameTok).Text,
			Scope:         scope,
			OuterTemplate: fr.outerTmpl,
			Span:          p.spanBetween(start, p.pos-1),
			Lead:          p.tok(start).Span.Start,
			NameSpan:      p.tok(nameTok).Span,
			Definition:    spell(p.toks[nameTok:p.pos]),
			Parent:        parent,
			Access:        fr.access,
		}
		p.push(r)
	}
}
