package directive

import (
	"strings"
)

// Markdown renders directives back into a compact Markdown-like text.
// It is used for terminal output and tests, not as a documentation format.
func Markdown(ds []Directive) string {
	var b strings.Builder
	writeMarkdown(&b, ds)
	return strings.TrimSpace(b.String())
}

func writeMarkdown(b *strings.Builder, ds []Directive) {
	for _, d := range ds {
		switch d.Kind {
		case PlainText:
			b.WriteString(d.Text)
		case InlineCode:
			b.WriteString("`" + d.Text + "`")
		case Emphasis:
			mark := strings.Repeat("*", max(1, d.Level))
			b.WriteString(mark + d.Text + mark)
		case InlineMath:
			b.WriteString("$" + d.Text + "$")
		case Ref:
			b.WriteString(d.Name)
		case MathBlock:
			b.WriteString("\n$$\n" + d.Text + "\n$$\n")
		case CodeBlock:
			b.WriteString("\n```" + d.Name + "\n" + d.Text + "\n```\n")
		case Paragraph:
			b.WriteString("\n\n")
		case Copybrief:
			b.WriteString("@copybrief " + d.Name)
		default:
			if d.Kind.IsSection() {
				b.WriteString("\n" + sectionTitle(d) + ": ")
				writeMarkdown(b, d.Children)
				b.WriteString("\n")
			}
		}
	}
}

func sectionTitle(d Directive) string {
	title := d.Kind.String()
	if len(title) > 0 {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	if d.Dir != "" {
		title += "[" + d.Dir + "]"
	}
	if d.Name != "" {
		title += " " + d.Name
	}
	return title
}
