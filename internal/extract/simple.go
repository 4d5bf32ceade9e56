package extract

import (
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/token"
)

// scanRegion returns the index of the token that ends the declarator
// starting at from: ';', ',', '=', ':', '{' or an unbalanced closer at
// depth 0. Bracket groups and template argument lists are skipped.
func (p *Parser) scanRegion(from int) int {
	for i := from; i < len(p.toks); i++ {
		t := p.toks[i]
		switch t.Kind {
		case token.Semicolon, token.LBrace, token.RBrace, token.RParen, token.RBracket, token.EOF:
			return i
		case token.Comma, token.Assign:
			if !p.inOperatorName(i) {
				return i
			}
		case token.Colon:
			return i
		case token.LParen, token.LBracket:
			i = p.matchGroupQuiet(i)
		case token.Lt:
			if end, ok := p.isAngleOpen(i); ok {
				i = end
			}
		case token.KwPublic, token.KwProtected, token.KwPrivate:
			if p.tok(i+1).Kind == token.Colon {
				return i
			}
		}
	}
	return p.last()
}

// inOperatorName reports whether the token at i spells part of an operator
// name such as "operator=" or "operator>>=".
func (p *Parser) inOperatorName(i int) bool {
	for j := i - 1; j >= 0 && j >= i-3; j-- {
		switch p.toks[j].Kind {
		case token.KwOperator:
			return true
		case token.Gt, token.Lt, token.Assign, token.OtherOp:
			continue
		}
		return false
	}
	return false
}

// fnShape describes a function declarator found in a region.
type fnShape struct {
	name      string
	nameTok   int // token used for NameSpan
	nameFrom  int // first token of the qualified declarator-id
	qualifier []string
	open      int
	close     int
	dtor      bool
	operator  bool
}

func isPostDeclarator(t token.Token) bool {
	switch t.Kind {
	case token.KwConst, token.KwVolatile, token.Amp, token.AndAnd, token.KwNoexcept,
		token.Arrow, token.KwOverride, token.KwFinal, token.KwRequires, token.LBracket:
		return true
	case token.Ident:
		return t.Text == "throw" || t.Text == "try" || isAttributeMacro(t.Text)
	}
	return false
}

// findFunction looks for a function declarator in toks[from:stop).
func (p *Parser) findFunction(from, stop int) (fnShape, bool) {
	for k := from; k < stop; k++ {
		switch p.toks[k].Kind {
		case token.LParen, token.LBracket:
			k = p.matchGroupQuiet(k)
			continue
		case token.KwOperator:
			return p.operatorShape(from, stop, k)
		}
	}

	var first *fnShape
	for i := from + 1; i < stop; i++ {
		t := p.toks[i]
		if t.Kind == token.Lt {
			if end, ok := p.isAngleOpen(i); ok {
				i = end
			}
			continue
		}
		if t.Kind == token.LBracket {
			i = p.matchGroupQuiet(i)
			continue
		}
		if t.Kind != token.LParen {
			continue
		}
		closeIdx := min(p.matchGroupQuiet(i), stop-1)
		group := p.toks[i : closeIdx+1]
		if isDeclaratorGroup(group) {
			return fnShape{}, false
		}
		nameIdx := p.nameBefore(i)
		if nameIdx < 0 || isAttributeMacro(p.toks[nameIdx].Text) {
			i = closeIdx
			continue
		}
		if closeIdx > i+1 && (p.toks[i+1].IsLiteral() || p.toks[i+1].Kind == token.LBrace) {
			// Foo x(42);
			return fnShape{}, false
		}
		sh := fnShape{
			name:    p.toks[nameIdx].Text,
			nameTok: nameIdx,
			open:    i,
			close:   closeIdx,
		}
		sh.nameFrom = nameIdx
		if p.tok(nameIdx-1).Kind == token.Tilde && nameIdx-1 >= from {
			sh.dtor = true
			sh.name = "~" + sh.name
			sh.nameFrom = nameIdx - 1
		}
		sh.nameFrom, sh.qualifier = p.qualifierBefore(from, sh.nameFrom)
		if closeIdx+1 >= stop || isPostDeclarator(p.toks[closeIdx+1]) {
			return sh, true
		}
		// API_MACRO(x) int f(); похоже на вызов макроса
		if first == nil && p.toks[closeIdx+1].Kind == token.Ident {
			first = &sh
		}
		i = closeIdx
	}
	if first != nil {
		return *first, true
	}
	return fnShape{}, false
}

// nameBefore returns the identifier naming the parenthesized group at
// open: "f(" or "f<int>(".
func (p *Parser) nameBefore(open int) int {
	prev := p.tok(open - 1)
	switch prev.Kind {
	case token.Ident:
		return open - 1
	case token.Gt:
		depth := 0
		for j := open - 1; j > 0; j-- {
			switch p.toks[j].Kind {
			case token.Gt:
				depth++
			case token.Lt:
				depth--
				if depth == 0 {
					if p.toks[j-1].Kind == token.Ident {
						return j - 1
					}
					return -1
				}
			case token.Semicolon, token.LBrace, token.RBrace:
				return -1
			}
		}
	}
	return -1
}

// qualifierBefore walks back over "A::B<T>::" preceding the name at at.
func (p *Parser) qualifierBefore(from, at int) (int, []string) {
	var quals []string
	for at-2 >= from && p.toks[at-1].Kind == token.ColonColon {
		j := at - 2
		if p.toks[j].Kind == token.Gt {
			depth := 0
			for ; j >= from; j-- {
				if p.toks[j].Kind == token.Gt {
					depth++
				} else if p.toks[j].Kind == token.Lt {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			j--
		}
		if j < from || p.toks[j].Kind != token.Ident {
			break
		}
		quals = append([]string{p.toks[j].Text}, quals...)
		at = j
	}
	if at-1 >= from && p.toks[at-1].Kind == token.ColonColon {
		at-- // ::f
	}
	return at, quals
}

func (p *Parser) operatorShape(from, stop, k int) (fnShape, bool) {
	open := -1
	switch {
	case p.tok(k+1).Kind == token.LParen && p.tok(k+2).Kind == token.RParen:
		open = k + 3
	default:
		for i := k + 1; i < stop; i++ {
			if p.toks[i].Kind == token.LParen {
				open = i
				break
			}
			if p.toks[i].Kind == token.LBracket {
				i = p.matchGroupQuiet(i)
			}
		}
	}
	if open < 0 || open >= stop || p.toks[open].Kind != token.LParen {
		return fnShape{}, false
	}
	sh := fnShape{
		name:     spell(p.toks[k:open]),
		nameTok:  k,
		open:     open,
		close:    min(p.matchGroupQuiet(open), stop-1),
		operator: true,
	}
	sh.nameFrom, sh.qualifier = p.qualifierBefore(from, k)
	return sh, true
}

// declStart walks back from the declarator-id over pointer and reference
// operators: in "const char* const p" the declarator starts at '*'.
func (p *Parser) declStart(from, at int) int {
	j := at
	for j > from {
		switch p.toks[j-1].Kind {
		case token.Star, token.Amp, token.AndAnd, token.Caret:
			j--
			continue
		case token.KwConst, token.KwVolatile:
			if j-2 >= from && (p.toks[j-2].Kind == token.Star || p.toks[j-2].Kind == token.KwConst || p.toks[j-2].Kind == token.KwVolatile) {
				j--
				continue
			}
		case token.LParen:
			j--
			continue
		}
		break
	}
	return j
}

func (p *Parser) parseSimple(fr *frame, h head) {
	from := p.pos
	stop := p.scanRegion(from)
	if stop == from {
		return
	}
	for i := from; i < stop; i++ {
		if p.toks[i].Kind == token.KwTemplate {
			// extern template class X<int>;
			p.pos = stop
			p.skipToDeclEnd()
			return
		}
		if p.toks[i].Kind == token.LParen || p.toks[i].Kind == token.LBracket {
			end, closed := p.groupEnd(i)
			if !closed {
				// f(int; : пропускаем объявление до точки синхронизации
				p.reportUnclosed(i)
				p.pos = end + 1
				if p.at(token.Semicolon) {
					p.advance()
				}
				return
			}
			i = end
		}
	}

	specEnd, special := -1, false
	if sh, ok := p.findFunction(from, stop); ok {
		specEnd = p.declStart(from, sh.nameFrom)
		special = sh.dtor || sh.operator || len(sh.qualifier) > 0 || sh.name == fr.className
	} else if name := p.declaratorName(from, stop); name >= 0 {
		nameFrom, _ := p.qualifierBefore(from, name)
		specEnd = p.declStart(from, nameFrom)
		if g := p.enclosingDeclGroup(from, name); g >= 0 {
			specEnd = p.declStart(from, g)
		}
	}
	if specEnd <= from && !special {
		// макрос без типа: FOO; или FOO(x)
		if specEnd == from && p.macroLike(from, stop) {
			p.pos = stop
			if p.at(token.Semicolon) {
				p.advance()
			}
			return
		}
		if specEnd < 0 {
			p.parseError(h.lead, "declaration without a name")
			return
		}
	}
	p.parseDeclaratorList(fr, h, p.cleanTokens(h.lead, from), p.toks[from:specEnd], specEnd, h.lead)
}

// enclosingDeclGroup returns the '(' of a declarator group such as (*fp)
// containing name, or -1.
func (p *Parser) enclosingDeclGroup(from, name int) int {
	for j := name - 1; j >= from; j-- {
		switch p.toks[j].Kind {
		case token.LParen:
			return j
		case token.Star, token.Amp, token.AndAnd, token.Caret, token.ColonColon, token.Ident:
			continue
		}
		return -1
	}
	return -1
}

// macroLike reports whether toks[from:stop) reads as a macro invocation with
// no declared type: an identifier optionally followed by one group. A
// constructor of the enclosing class is not macro-like.
func (p *Parser) macroLike(from, stop int) bool {
	if p.toks[from].Kind != token.Ident {
		return false
	}
	if from+1 == stop {
		return true
	}
	return p.toks[from+1].Kind == token.LParen && p.matchGroupQuiet(from+1) == stop-1
}

// cleanTokens returns toks[from:to] without attributes.
func (p *Parser) cleanTokens(from, to int) []token.Token {
	var out []token.Token
	for i := from; i < to; i++ {
		t := p.toks[i]
		switch {
		case t.Kind == token.LBracket && p.tok(i+1).Kind == token.LBracket:
			i = p.matchGroupQuiet(i)
			continue
		case t.Kind == token.Ident && isAttributeMacro(t.Text) && p.tok(i+1).Kind == token.LParen,
			t.Kind == token.KwAlignas && p.tok(i+1).Kind == token.LParen:
			i = p.matchGroupQuiet(i + 1)
			continue
		case t.Is("try"):
			continue
		}
		out = append(out, t)
	}
	return out
}

// parseDeclaratorList parses the declarators of one declaration starting at
// declFrom. prefix is the cleaned lead-in (template header) spelled before
// the first declarator; spec the shared decl-specifiers.
func (p *Parser) parseDeclaratorList(fr *frame, h head, prefix, spec []token.Token, declFrom, lead int) {
	first := true
	p.pos = declFrom
	for {
		stop := p.scanRegion(p.pos)
		from := p.pos
		if stop == from && first && !p.at(token.Semicolon) {
			p.parseError(lead, "expected declarator, got "+describe(p.cur()))
			return
		}
		var defPrefix []token.Token
		if first {
			defPrefix = append(append(defPrefix, prefix...), spec...)
		} else {
			defPrefix = spec
			lead = from
		}
		if stop > from {
			var ok bool
			if sh, isFn := p.findFunction(from, stop); isFn {
				ok = p.parseFunction(fr, h, defPrefix, spec, lead, from, stop, sh)
			} else {
				ok = p.parseVariable(fr, h, defPrefix, spec, lead, from, stop)
			}
			if !ok {
				return
			}
		} else {
			p.pos = stop
		}
		first = false
		h.tmpl = nil

		switch {
		case p.at(token.Comma):
			p.advance()
			continue
		case p.at(token.Semicolon):
			p.advance()
		case p.pos > 0 && p.tok(p.pos-1).Kind == token.RBrace:
			// function body closes the declaration
		case p.atOr(token.RBrace, token.EOF) || p.atOr(token.KwPublic, token.KwProtected, token.KwPrivate):
			p.report(diag.SynExpectSemicolon, diag.SevWarning, p.tok(p.pos-1).Span, "expected ';' after declaration")
		default:
			p.parseError(lead, "unexpected "+describe(p.cur())+" in declaration")
		}
		return
	}
}

// specifierFlags collects storage and function specifiers.
func specifierFlags(spec []token.Token) decl.Flags {
	var f decl.Flags
	for _, t := range spec {
		switch t.Kind {
		case token.KwConstexpr, token.KwConsteval, token.KwConstinit:
			f |= decl.FlagConstexpr
		case token.KwInline:
			f |= decl.FlagInline
		case token.KwStatic:
			f |= decl.FlagStatic
		case token.KwExtern:
			f |= decl.FlagExtern
		case token.KwVirtual:
			f |= decl.FlagVirtual
		case token.KwExplicit:
			f |= decl.FlagExplicit
		}
	}
	return f
}

// hasType reports whether spec names a type, as opposed to holding only
// specifiers like inline or explicit.
func hasType(spec []token.Token) bool {
	for _, t := range spec {
		switch t.Kind {
		case token.KwInline, token.KwStatic, token.KwExtern, token.KwVirtual, token.KwExplicit,
			token.KwConstexpr, token.KwConsteval, token.KwConstinit, token.KwFriend:
			continue
		case token.Ident:
			if isAttributeMacro(t.Text) {
				continue
			}
		}
		return true
	}
	return false
}

func (p *Parser) parseFunction(fr *frame, h head, defPrefix, spec []token.Token, lead, from, stop int, sh fnShape) bool {
	specs := append(append([]token.Token{}, spec...), p.toks[from:sh.nameFrom]...)
	r := decl.Record{
		Name:          sh.name,
		Scope:         childScope(fr.scope, sh.qualifier...),
		Qualifier:     sh.qualifier,
		Signature:     p.signature(sh.open, sh.close),
		Template:      h.tmpl,
		OuterTemplate: fr.outerTmpl,
		Flags:         specifierFlags(specs),
		Lead:          p.tok(lead).Span.Start,
		NameSpan:      p.tok(sh.nameTok).Span,
		Parent:        fr.parent,
		Access:        fr.access,
	}
	if len(sh.qualifier) == 0 {
		r.Qualifier = nil
	}

	typed := hasType(specs)
	switch {
	case sh.dtor:
		r.Kind = decl.Destructor
	case !typed && !sh.operator && (sh.name == fr.className || (len(sh.qualifier) > 0 && sh.name == sh.qualifier[len(sh.qualifier)-1])):
		r.Kind = decl.Constructor
	case !typed && !sh.operator:
		// FOO(x) без типа: вызов макроса, не объявление
		p.pos = stop
		return true
	case fr.kind == frameClass || p.isKnownClass(fr, sh.qualifier):
		r.Kind = decl.Method
	default:
		r.Kind = decl.Function
	}

	isTry := false
	for i := sh.close + 1; i < stop; i++ {
		switch t := p.toks[i]; {
		case t.Kind == token.KwConst:
			r.Flags |= decl.FlagConstMethod
		case t.Kind == token.KwNoexcept:
			r.Flags |= decl.FlagNoexcept
		case t.Is("try"):
			isTry = true
		case t.Kind == token.LParen || t.Kind == token.LBracket:
			i = p.matchGroupQuiet(i)
		case t.Kind == token.Arrow:
			// trailing return type: quals после '->' к методу не относятся
			i = stop
		}
	}

	defEnd := stop
	last := stop
	p.pos = stop
	switch p.cur().Kind {
	case token.Semicolon, token.Comma:
		r.Flags |= decl.FlagForward
		last = stop - 1
	case token.Assign:
		switch n := p.tok(stop + 1); {
		case n.Kind == token.NumberLit && n.Text == "0":
			r.Flags |= decl.FlagPure | decl.FlagForward
		case n.Kind == token.KwDefault:
			r.Flags |= decl.FlagDefaulted
		case n.Kind == token.KwDelete:
			r.Flags |= decl.FlagDeleted
		}
		p.advance()
		end := p.scanTo(token.Semicolon)
		for i := p.pos; i < end; i++ {
			if p.toks[i].Kind == token.Comma {
				end = i
				break
			}
		}
		defEnd, last = end, end-1
		p.pos = end
	case token.Colon:
		p.skipInitList()
		if p.at(token.LBrace) {
			last = p.skipBody(isTry)
			r.Flags |= decl.FlagDefined
		}
	case token.LBrace:
		last = p.skipBody(isTry)
		r.Flags |= decl.FlagDefined
	default:
		r.Flags |= decl.FlagForward
		last = stop - 1
	}
	if r.Kind != decl.Function && r.Kind != decl.Method {
		r.Flags &^= decl.FlagConstMethod
	}

	r.Definition = spell(append(append([]token.Token{}, defPrefix...), p.cleanTokens(from, defEnd)...))
	r.Span = p.spanBetween(lead, last)
	p.push(r)
	return true
}

// skipInitList consumes a constructor initializer list up to the body.
func (p *Parser) skipInitList() {
	p.advance() // ':'
	for !p.eof() && !p.atOr(token.Semicolon, token.RBrace) {
		switch {
		case p.atOr(token.LParen, token.LBracket):
			p.pos = p.matchGroup(p.pos) + 1
		case p.at(token.LBrace):
			// member{init} или тело конструктора
			switch p.tok(p.pos - 1).Kind {
			case token.Ident, token.Gt, token.DotDotDot:
				p.pos = p.matchGroup(p.pos) + 1
			default:
				return
			}
		case p.at(token.Lt):
			if end, ok := p.isAngleOpen(p.pos); ok {
				p.pos = end + 1
			} else {
				p.advance()
			}
		default:
			p.advance()
		}
	}
}

// skipBody consumes a function body and, for function-try-blocks, its
// handlers. It returns the index of the last consumed token.
func (p *Parser) skipBody(isTry bool) int {
	end := p.matchGroup(p.pos)
	p.pos = end + 1
	for isTry && p.cur().Is("catch") && p.tok(p.pos+1).Kind == token.LParen {
		p.pos = p.matchGroup(p.pos+1) + 1
		if !p.at(token.LBrace) {
			break
		}
		end = p.matchGroup(p.pos)
		p.pos = end + 1
	}
	return end
}

// isConstant decides between Variable and Constant: constexpr, or const
// applying to the object itself (after the last '*', not through a reference).
func isConstant(spec, declarator []token.Token) bool {
	all := append(append([]token.Token{}, spec...), declarator...)
	lastPtr, hasRef, constAfter := -1, false, false
	for i, t := range all {
		switch t.Kind {
		case token.KwConstexpr:
			return true
		case token.Star:
			lastPtr = i
			constAfter = false
		case token.Amp, token.AndAnd:
			hasRef = true
		case token.KwConst:
			constAfter = true
		}
	}
	if hasRef {
		return false
	}
	return constAfter || (lastPtr < 0 && hasConst(all))
}

func hasConst(toks []token.Token) bool {
	for _, t := range toks {
		if t.Kind == token.KwConst {
			return true
		}
	}
	return false
}

func (p *Parser) parseVariable(fr *frame, h head, defPrefix, spec []token.Token, lead, from, stop int) bool {
	nameTok := p.declaratorName(from, stop)
	if nameTok < 0 {
		p.parseError(lead, "declaration without a name")
		return false
	}
	r := decl.Record{
		Name:          p.tok(nameTok).Text,
		Scope:         fr.scope,
		Template:      h.tmpl,
		OuterTemplate: fr.outerTmpl,
		Flags:         specifierFlags(spec),
		Lead:          p.tok(lead).Span.Start,
		NameSpan:      p.tok(nameTok).Span,
		Parent:        fr.parent,
		Access:        fr.access,
	}
	if _, quals := p.qualifierBefore(from, nameTok); len(quals) > 0 {
		// определение статического члена: int A::x = 1;
		r.Qualifier = quals
		r.Scope = childScope(fr.scope, quals...)
	}
	r.Kind = decl.Variable
	if isConstant(spec, p.toks[from:nameTok]) {
		r.Kind = decl.Constant
	}
	if r.Kind == decl.Constant && !r.Flags.Has(decl.FlagConstexpr) {
		r.Flags |= decl.FlagConst
	}

	defEnd, last := stop, stop-1
	p.pos = stop
	switch p.cur().Kind {
	case token.Assign:
		end := p.skipInitializer()
		defEnd, last = end, end-1
		for i := stop; i < end; i++ {
			if p.toks[i].Kind == token.LBrace {
				defEnd = i
				break
			}
		}
	case token.LBrace:
		last = p.matchGroup(stop)
		p.pos = last + 1
	case token.Colon:
		// bit-field
		end := p.skipInitializer()
		defEnd, last = end, end-1
	}
	r.Definition = spell(append(append([]token.Token{}, defPrefix...), p.cleanTokens(from, defEnd)...))
	r.Span = p.spanBetween(lead, last)
	p.push(r)
	return true
}

// skipInitializer consumes "= expr" up to ',' or ';' at depth 0 and returns
// the index of the terminator.
func (p *Parser) skipInitializer() int {
	p.advance()
	for !p.eof() {
		switch {
		case p.atOr(token.Comma, token.Semicolon, token.RBrace, token.RParen, token.RBracket):
			return p.pos
		case p.atOr(token.LParen, token.LBracket, token.LBrace):
			p.pos = p.matchGroup(p.pos) + 1
		case p.at(token.Lt):
			if end, ok := p.isAngleOpen(p.pos); ok {
				p.pos = end + 1
			} else {
				p.advance()
			}
		case p.atOr(token.KwPublic, token.KwProtected, token.KwPrivate) && p.tok(p.pos+1).Kind == token.Colon:
			return p.pos
		default:
			p.advance()
		}
	}
	return p.pos
}
