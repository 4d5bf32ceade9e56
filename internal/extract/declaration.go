package extract

import (
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/source"
	"cppdoc/internal/token"
)

// head is what precedes the declaration proper: attributes and template headers.
type head struct {
	lead int
	// tmpl is the parameter list of the innermost template header; nil
	// without a header, empty for template<>.
	tmpl []string
}

func (p *Parser) parseDeclSeq(fr *frame) {
	for !p.eof() {
		switch t := p.cur(); t.Kind {
		case token.RBrace:
			if fr.kind == frameTop {
				p.report(diag.SynUnbalancedBrace, diag.SevError, t.Span, "unbalanced '}'")
				p.advance()
				continue
			}
			return
		case token.Semicolon:
			p.advance()
			continue
		case token.KwPublic, token.KwProtected, token.KwPrivate:
			if p.tok(p.pos+1).Kind == token.Colon {
				if fr.kind == frameClass {
					fr.access = accessOf(t.Kind)
				}
				p.pos += 2
				continue
			}
		}
		start := p.pos
		p.parseDeclaration(fr)
		if p.pos == start {
			p.parseError(start, "unexpected "+describe(p.cur()))
			if p.pos == start {
				p.advance()
			}
		}
	}
}

func accessOf(k token.Kind) decl.Access {
	switch k {
	case token.KwPublic:
		return decl.AccessPublic
	case token.KwProtected:
		return decl.AccessProtected
	case token.KwPrivate:
		return decl.AccessPrivate
	}
	return decl.AccessNone
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + t.Text + "'"
	}
	return "'" + t.Text + "'"
}

func (p *Parser) parseDeclaration(fr *frame) {
	p.parseDeclarationAt(fr, p.pos)
}

// parseDeclarationAt parses a declaration whose lead-in starts at lead;
// tokens before p.pos have already been consumed.
func (p *Parser) parseDeclarationAt(fr *frame, lead int) {
	h := head{lead: lead}
	p.skipAttributes()
	for p.at(token.KwTemplate) {
		if p.tok(p.pos+1).Kind != token.Lt {
			// explicit instantiation: template class X<int>;
			p.skipToDeclEnd()
			return
		}
		end, ok := p.matchAngle(p.pos + 1)
		if !ok {
			p.report(diag.SynUnclosedAngle, diag.SevError, p.tok(p.pos+1).Span, "unclosed template parameter list")
			p.parseError(h.lead, "malformed template header")
			return
		}
		h.tmpl = p.templateParams(p.pos+2, end)
		p.pos = end + 1
		p.skipAttributes()
		if p.at(token.KwRequires) {
			p.skipRequires()
		}
	}

	switch t := p.cur(); t.Kind {
	case token.KwExtern:
		if p.tok(p.pos+1).Kind == token.StringLit {
			p.parseLinkage(fr, h)
			return
		}
	case token.KwInline:
		if p.tok(p.pos+1).Kind == token.KwNamespace {
			p.advance()
			p.parseNamespace(fr, h, true)
			return
		}
	case token.KwNamespace:
		p.parseNamespace(fr, h, false)
		return
	case token.KwUsing:
		p.parseUsing(fr, h)
		return
	case token.KwTypedef:
		p.parseTypedef(fr, h)
		return
	case token.KwFriend, token.KwStaticAssert:
		p.skipToDeclEnd()
		return
	case token.KwConcept:
		p.parseConcept(fr, h)
		return
	case token.KwClass, token.KwStruct, token.KwUnion:
		if p.tryClass(fr, h) {
			return
		}
	case token.KwEnum:
		if p.tryEnum(fr, h) {
			return
		}
	case token.RBrace, token.EOF:
		if p.pos != h.lead {
			p.report(diag.SynParseError, diag.SevError, p.spanBetween(h.lead, p.pos-1), "declaration expected")
		}
		return
	}
	p.parseSimple(fr, h)
}

// skipRequires consumes a requires-clause: requires A<T> && (B || C)
func (p *Parser) skipRequires() {
	p.advance()
	for !p.eof() {
		switch {
		case p.at(token.LParen):
			p.pos = p.matchGroup(p.pos) + 1
		case p.at(token.Ident) || p.at(token.ColonColon) || p.at(token.Bang) || p.at(token.KwTypename):
			p.advance()
			p.skipAngle()
		case p.at(token.OtherOp) && (p.cur().Text == "&&" || p.cur().Text == "||"), p.at(token.AndAnd):
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) parseLinkage(fr *frame, h head) {
	p.pos += 2 // extern "C"
	if !p.at(token.LBrace) {
		p.parseDeclarationAt(fr, h.lead)
		return
	}
	open := p.advance()
	inner := &frame{kind: frameLinkage, parent: fr.parent, scope: fr.scope, outerTmpl: fr.outerTmpl, className: fr.className, access: fr.access}
	p.parseDeclSeq(inner)
	p.closeBrace(open)
}

func (p *Parser) closeBrace(open token.Token) int {
	if p.at(token.RBrace) {
		end := p.pos
		p.advance()
		return end
	}
	p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed '{'")
	return max(0, p.pos-1)
}

func (p *Parser) parseNamespace(fr *frame, h head, inline bool) {
	kw := p.pos
	p.advance()
	p.skipAttributes()
	type comp struct {
		name string
		tok  int
	}
	var names []comp
	for p.at(token.Ident) {
		names = append(names, comp{p.cur().Text, p.pos})
		p.advance()
		if !p.at(token.ColonColon) {
			break
		}
		p.advance()
		if p.at(token.KwInline) {
			p.advance()
		}
	}
	p.skipAttributes()
	if p.at(token.Assign) {
		// namespace alias
		p.skipToDeclEnd()
		return
	}
	if !p.at(token.LBrace) {
		p.parseError(h.lead, "expected '{' after namespace name")
		return
	}
	open := p.advance()

	inner := &frame{kind: frameNamespace, parent: fr.parent, scope: fr.scope}
	var idxs []int
	for i, c := range names {
		lead := p.tok(c.tok).Span.Start
		if i == len(names)-1 {
			lead = p.tok(h.lead).Span.Start
		}
		r := decl.Record{
			Kind:       decl.Namespace,
			Name:       c.name,
			Scope:      inner.scope,
			Span:       source.Span{File: p.tok(kw).Span.File, Start: lead, End: open.Span.End},
			Lead:       lead,
			NameSpan:   p.tok(c.tok).Span,
			Definition: spell(p.toks[kw : c.tok+1]),
			Parent:     inner.parent,
		}
		if inline && i == len(names)-1 {
			r.Flags |= decl.FlagInline
			r.Definition = "inline " + r.Definition
		}
		idx := p.push(r)
		idxs = append(idxs, idx)
		inner = &frame{kind: frameNamespace, parent: idx, scope: childScope(inner.scope, c.name)}
	}
	p.parseDeclSeq(inner)
	end := p.closeBrace(open)
	for _, idx := range idxs {
		p.setEnd(idx, end)
	}
}

func (p *Parser) parseUsing(fr *frame, h head) {
	kw := p.pos
	p.advance()
	if p.at(token.KwNamespace) || !p.at(token.Ident) {
		p.skipToDeclEnd()
		return
	}
	nameTok := p.pos
	p.advance()
	p.skipAttributes()
	if !p.at(token.Assign) {
		// using-declaration: using Base::f;
		p.skipToDeclEnd()
		return
	}
	end := p.scanTo(token.Semicolon)
	defToks := append(append([]token.Token{}, p.toks[h.lead:kw]...), p.toks[nameTok:end]...)
	r := decl.Record{
		Kind:          decl.Typedef,
		Name:          p.tok(nameTok).Text,
		Scope:         fr.scope,
		Template:      h.tmpl,
		OuterTemplate: fr.outerTmpl,
		Span:          p.spanBetween(h.lead, end),
		Lead:          p.tok(h.lead).Span.Start,
		NameSpan:      p.tok(nameTok).Span,
		Definition:    spell(defToks),
		Parent:        fr.parent,
		Access:        fr.access,
	}
	p.push(r)
	p.pos = end
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// scanTo returns the index of the first token of kind k at nesting depth 0,
// starting at p.pos, or the index of an unbalanced closer.
func (p *Parser) scanTo(k token.Kind) int {
	for i := p.pos; i < len(p.toks); i++ {
		switch t := p.toks[i]; {
		case t.Kind == k:
			return i
		case t.Kind == token.LParen || t.Kind == token.LBracket || t.Kind == token.LBrace:
			i = p.matchGroupQuiet(i)
		case t.Kind == token.RParen || t.Kind == token.RBracket || t.Kind == token.RBrace || t.Kind == token.EOF:
			return i
		}
	}
	return p.last()
}

func (p *Parser) parseTypedef(fr *frame, h head) {
	kw := p.pos
	p.advance()
	end := p.scanTo(token.Semicolon)
	var specEnd int // end of the shared specifier part
	if p.atOr(token.KwClass, token.KwStruct, token.KwUnion) && p.hasBody(p.pos, end) {
		// typedef struct { ... } T; члены класса разбираются как обычно
		if cs, ok := p.classSpecifier(fr, h); ok && cs.end >= 0 {
			specEnd = cs.end + 1
			end = p.scanTo(token.Semicolon)
		}
	}
	if specEnd == 0 {
		for i := kw + 1; i < end; i++ {
			if p.toks[i].Kind == token.LBrace {
				i = p.matchGroup(i)
				specEnd = i + 1
			}
		}
	}
	decls := p.splitDeclarators(max(specEnd, kw+1), end)
	if specEnd == 0 && len(decls) > 0 {
		// спецификаторы заканчиваются перед первым декларатором
		specEnd = p.typedefSpecEnd(kw+1, decls[0].to)
		decls[0].from = specEnd
	}
	spec := p.collapseBodies(kw, specEnd)
	for i, d := range decls {
		nameTok := p.declaratorName(d.from, d.to)
		if nameTok < 0 {
			p.report(diag.SynExpectIdentifier, diag.SevError, p.spanBetween(d.from, d.to-1), "typedef without a name")
			continue
		}
		lead := h.lead
		if i > 0 {
			lead = d.from
		}
		def := append(append([]token.Token{}, spec...), p.toks[d.from:d.to]...)
		r := decl.Record{
			Kind:          decl.Typedef,
			Name:          p.tok(nameTok).Text,
			Scope:         fr.scope,
			OuterTemplate: fr.outerTmpl,
			Span:          p.spanBetween(lead, d.to-1),
			Lead:          p.tok(lead).Span.Start,
			NameSpan:      p.tok(nameTok).Span,
			Definition:    spell(def),
			Parent:        fr.parent,
			Access:        fr.access,
		}
		p.push(r)
	}
	p.pos = end
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// hasBody reports whether a brace group opens in toks[from:to).
func (p *Parser) hasBody(from, to int) bool {
	for i := from; i < to; i++ {
		if p.toks[i].Kind == token.LBrace {
			return true
		}
	}
	return false
}

// typedefSpecEnd finds where the declarator of "typedef int *name" begins:
// the first '*', '&', '(' or the name itself.
func (p *Parser) typedefSpecEnd(from, to int) int {
	name := p.declaratorName(from, to)
	for i := from; i < to; i++ {
		switch p.toks[i].Kind {
		case token.Star, token.Amp, token.AndAnd:
			return i
		case token.LParen:
			if i > from {
				return i
			}
		}
		if i == name {
			return i
		}
	}
	return to
}

// collapseBodies returns toks[from:to] with brace groups replaced by "{...}".
func (p *Parser) collapseBodies(from, to int) []token.Token {
	var out []token.Token
	for i := from; i < to; i++ {
		t := p.toks[i]
		if t.Kind == token.LBrace {
			j := p.matchGroup(i)
			out = append(out, t, token.Token{Kind: token.DotDotDot, Text: "...", Span: t.Span}, p.tok(j))
			i = j
			continue
		}
		out = append(out, t)
	}
	return out
}

func (p *Parser) parseConcept(fr *frame, h head) {
	p.advance()
	if !p.at(token.Ident) {
		p.parseError(h.lead, "expected concept name")
		return
	}
	nameTok := p.pos
	end := p.scanTo(token.Semicolon)
	r := decl.Record{
		Kind:       decl.Concept,
		Name:       p.tok(nameTok).Text,
		Scope:      fr.scope,
		Template:   h.tmpl,
		Span:       p.spanBetween(h.lead, end),
		Lead:       p.tok(h.lead).Span.Start,
		NameSpan:   p.tok(nameTok).Span,
		Definition: spell(p.toks[h.lead:end]),
		Parent:     fr.parent,
	}
	if r.Template == nil {
		r.Template = []string{}
	}
	p.push(r)
	p.pos = end
	if p.at(token.Semicolon) {
		p.advance()
	}
}
