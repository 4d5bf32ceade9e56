package comment

import (
	"strings"

	"cppdoc/internal/source"
	"cppdoc/internal/token"
)

// Scan produces the documentation blocks of file in source order.
// toks must be the complete token stream of file (ending with EOF), so that
// trivia before the end of the file is seen too.
func Scan(file *source.File, toks []token.Token) []Block {
	var out []Block
	for i := range toks {
		out = scanLeading(file, toks[i], anchorOf(toks, i), out)
	}
	return out
}

// anchorOf is the start of the first token at or after i that is not part
// of an access specifier label: a comment written before "public:" still
// reaches the member that follows.
func anchorOf(toks []token.Token, i int) uint32 {
	j := i
	for j+1 < len(toks) && isAccess(toks[j].Kind) && toks[j+1].Kind == token.Colon {
		j += 2
	}
	return toks[j].Span.Start
}

func isAccess(k token.Kind) bool {
	return k == token.KwPublic || k == token.KwProtected || k == token.KwPrivate
}

type lineRun struct {
	style    Style
	trailing bool
	first    source.Span
	last     source.Span
	lines    []string
}

func scanLeading(file *source.File, tok token.Token, anchor uint32, out []Block) []Block {
	var run *lineRun
	flush := func() {
		if run == nil {
			return
		}
		out = append(out, run.block(file, anchor))
		run = nil
	}

	for _, tv := range tok.Leading {
		switch tv.Kind {
		case token.TriviaDocLine, token.TriviaDocTrailingLine:
			style, trailing := lineStyle(tv.Text), tv.Kind.IsTrailing()
			if run != nil && (run.style != style || run.trailing != trailing) {
				flush()
			}
			if run == nil {
				run = &lineRun{style: style, trailing: trailing, first: tv.Span}
			}
			run.last = tv.Span
			run.lines = append(run.lines, stripLineMarker(tv.Text, trailing))

		case token.TriviaDocBlock, token.TriviaDocTrailingBlock:
			flush()
			trailing := tv.Kind.IsTrailing()
			out = append(out, Block{
				Text:     Clean(stripBlockMarkers(tv.Text, trailing)),
				Raw:      tv.Text,
				Span:     tv.Span,
				Pos:      file.Position(tv.Span.Start),
				Style:    blockStyle(tv.Text),
				Trailing: trailing,
				Anchor:   anchor,
				Lines:    strings.Count(tv.Text, "\n") + 1,
			})
		}
	}
	flush()
	return out
}

func (r *lineRun) block(file *source.File, anchor uint32) Block {
	span := r.first.Cover(r.last)
	return Block{
		Text:     Clean(strings.Join(r.lines, "\n")),
		Raw:      file.Slice(span),
		Span:     span,
		Pos:      file.Position(span.Start),
		Style:    r.style,
		Trailing: r.trailing,
		Anchor:   anchor,
		Lines:    len(r.lines),
	}
}

func lineStyle(text string) Style {
	if strings.HasPrefix(text, "//!") {
		return StyleBang
	}
	return StyleSlash
}

func blockStyle(text string) Style {
	if strings.HasPrefix(text, "/*!") {
		return StyleQt
	}
	return StyleJavadoc
}

func stripLineMarker(text string, trailing bool) string {
	n := 3
	if trailing {
		n = 4
	}
	if len(text) < n {
		return ""
	}
	return text[n:]
}

func stripBlockMarkers(text string, trailing bool) string {
	n := 3
	if trailing {
		n = 4
	}
	body := text[min(n, len(text)):]
	body = strings.TrimSuffix(body, "*/")
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		if i == 0 {
			lines[i] = strings.TrimLeft(l, " \t")
			continue
		}
		// ведущие " * " в каждой строке
		trimmed := strings.TrimLeft(l, " \t")
		if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/") {
			rest := trimmed[1:]
			if rest == "" || rest[0] == ' ' {
				lines[i] = strings.TrimPrefix(rest, " ")
				continue
			}
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}
