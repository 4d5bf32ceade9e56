package directive

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"cppdoc/internal/comment"
)

// inlineParser recognizes only paragraphs, code spans and emphasis; the
// rest of Markdown stays plain text.
var inlineParser = sync.OnceValue(func() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 100)),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 200),
		),
	)
})

// inlineMarkup splits plain comment text into text, code span and emphasis
// directives. Leading and trailing whitespace is preserved as text so that
// neighbouring directives keep their spacing.
func inlineMarkup(s string) []Directive {
	body := strings.TrimSpace(s)
	if body == "" {
		return []Directive{{Kind: PlainText, Text: s}}
	}
	lead := s[:strings.Index(s, body)]
	trail := s[len(lead)+len(body):]

	var out []Directive
	if lead != "" {
		out = append(out, Directive{Kind: PlainText, Text: lead})
	}
	src := []byte(body)
	doc := inlineParser().Parse(text.NewReader(src))
	paragraphs := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Paragraph:
			if paragraphs > 0 {
				out = append(out, Directive{Kind: PlainText, Text: "\n"})
			}
			paragraphs++
		case *ast.CodeSpan:
			out = append(out, Directive{Kind: InlineCode, Text: nodeText(node, src)})
			return ast.WalkSkipChildren, nil
		case *ast.Emphasis:
			out = append(out, Directive{Kind: Emphasis, Text: nodeText(node, src), Level: node.Level})
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			t := string(node.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				t += "\n"
			}
			out = append(out, Directive{Kind: PlainText, Text: t})
		case *ast.String:
			out = append(out, Directive{Kind: PlainText, Text: string(node.Value)})
		}
		return ast.WalkContinue, nil
	})
	if trail != "" {
		out = append(out, Directive{Kind: PlainText, Text: trail})
	}
	return out
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, src))
		}
	}
	return b.String()
}

// dedent removes the common indentation of a verbatim block and the blank
// lines around it.
func dedent(s string) string {
	return comment.Clean(s)
}
