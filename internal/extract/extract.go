package extract

import (
	"slices"
	"strings"

	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/source"
	"cppdoc/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	// MaxErrors stops reporting (not parsing) after this many errors; 0 is unlimited.
	MaxErrors uint
}

// Parser — состояние экстрактора на один файл.
type Parser struct {
	file    *source.File
	toks    []token.Token // значимые токены без Preproc; последний всегда EOF
	pos     int
	opts    Options
	errors  uint
	out     []decl.Record
	classes map[string]struct{} // qualified names of classes seen so far
	// unclosed holds openers already reported as unclosed.
	unclosed map[int]struct{}
}

type frameKind uint8

const (
	frameTop frameKind = iota
	frameNamespace
	frameClass
	frameLinkage // extern "C" { }
)

// frame describes the scope the declarations being parsed belong to.
type frame struct {
	kind      frameKind
	parent    int // index of the enclosing record, -1 at top level
	scope     []string
	outerTmpl []string
	className string
	access    decl.Access
}

// Extract returns the declaration records of file in source order.
// toks is the full token stream produced by the lexer.
func Extract(file *source.File, toks []token.Token, opts Options) []decl.Record {
	p := newParser(file, toks, opts)
	p.parseDeclSeq(&frame{kind: frameTop, parent: -1})
	return p.out
}

func newParser(file *source.File, toks []token.Token, opts Options) *Parser {
	sig := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != token.Preproc {
			sig = append(sig, t)
		}
	}
	if len(sig) == 0 || sig[len(sig)-1].Kind != token.EOF {
		end := uint32(0)
		if file != nil {
			end = file.Len()
		}
		sig = append(sig, token.Token{Kind: token.EOF, Span: source.Span{File: fileID(file), Start: end, End: end}})
	}
	return &Parser{
		file:     file,
		toks:     sig,
		opts:     opts,
		classes:  make(map[string]struct{}),
		unclosed: make(map[int]struct{}),
	}
}

func fileID(f *source.File) source.FileID {
	if f == nil {
		return 0
	}
	return f.ID
}

// ===== навигация по токенам =====

func (p *Parser) tok(i int) token.Token {
	if i < 0 {
		return token.Token{Kind: token.Invalid}
	}
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) cur() token.Token { return p.tok(p.pos) }

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.cur().Kind)
}

func (p *Parser) eof() bool { return p.at(token.EOF) }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) last() int { return len(p.toks) - 1 }

// ===== диагностика =====

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.errors++
		if p.opts.MaxErrors > 0 && p.errors > p.opts.MaxErrors {
			return
		}
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
}

func (p *Parser) spanBetween(from, to int) source.Span {
	if to < from {
		to = from
	}
	a, b := p.tok(from), p.tok(to)
	if b.Kind == token.EOF && to > from {
		b = p.tok(to - 1)
	}
	return source.Span{File: a.Span.File, Start: a.Span.Start, End: max(a.Span.End, b.Span.End)}
}

// parseError reports an unrecognized declaration starting at from and
// resynchronizes.
func (p *Parser) parseError(from int, msg string) {
	p.resync()
	to := max(from, p.pos-1)
	p.report(diag.SynParseError, diag.SevError, p.spanBetween(from, to), msg)
}

// resync прокручивает до ';' (съедая его), до сбалансированного '}'
// текущего уровня (не съедая) или до спецификатора доступа.
func (p *Parser) resync() {
	for !p.eof() {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		case token.LBrace:
			p.pos = p.matchGroup(p.pos) + 1
			return
		case token.LParen, token.LBracket:
			p.pos = p.matchGroup(p.pos) + 1
			continue
		case token.KwPublic, token.KwPrivate, token.KwProtected:
			if p.tok(p.pos+1).Kind == token.Colon {
				return
			}
		}
		p.advance()
	}
}

// ===== запись результатов =====

func (p *Parser) push(r decl.Record) int {
	if r.Kind.IsRecordType() {
		p.classes[r.QualifiedName()] = struct{}{}
	}
	r.Pos = p.file.Position(r.NameSpan.Start)
	p.out = append(p.out, r)
	return len(p.out) - 1
}

// setEnd расширяет span записи до конца токена end.
func (p *Parser) setEnd(idx, end int) {
	sp := p.out[idx].Span
	if e := p.tok(end).Span.End; e > sp.End {
		sp.End = e
	}
	p.out[idx].Span = sp
}

func (p *Parser) isKnownClass(fr *frame, qualifier []string) bool {
	if len(qualifier) == 0 {
		return false
	}
	q := strings.Join(qualifier, "::")
	if _, ok := p.classes[q]; ok {
		return true
	}
	for i := len(fr.scope); i > 0; i-- {
		if _, ok := p.classes[strings.Join(fr.scope[:i], "::")+"::"+q]; ok {
			return true
		}
	}
	return false
}

func childScope(scope []string, names ...string) []string {
	out := make([]string, 0, len(scope)+len(names))
	out = append(out, scope...)
	return append(out, names...)
}
