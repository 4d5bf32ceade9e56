package index

import (
	"encoding/json"
	"strings"

	"cppdoc/internal/directive"
)

// Part is one element of a description: plain text, or a single-key object
// such as {"inlinecode": "x"} or {"param": "name"}.
type Part struct {
	Text  string
	Key   string // "" for plain text
	Value string
}

func (p Part) MarshalJSON() ([]byte, error) {
	if p.Key == "" {
		return json.Marshal(p.Text)
	}
	return json.Marshal(map[string]string{p.Key: p.Value})
}

func (p *Part) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*p = Part{Text: text}
		return nil
	}
	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for k, v := range obj {
		*p = Part{Key: k, Value: v}
	}
	return nil
}

// Description is the flattened form of a documentation comment. Section
// markers are followed by the section content; @brief is implicit.
type Description []Part

// Describe flattens doc. A comment documenting a single subject (a trailing
// enumerator comment) exports the subject's content only.
func Describe(doc directive.Doc) Description {
	items := doc.Items
	if doc.Subject != "" && len(items) == 1 && items[0].Kind == directive.ParamDoc && items[0].Name == doc.Subject {
		items = items[0].Children
	}
	var d Description
	d = d.flatten(items)
	return d.tidy()
}

func (d Description) flatten(items []directive.Directive) Description {
	for _, it := range items {
		switch it.Kind {
		case directive.PlainText:
			d = append(d, Part{Text: it.Text})
		case directive.Emphasis:
			mark := strings.Repeat("*", max(1, it.Level))
			d = append(d, Part{Text: mark + it.Text + mark})
		case directive.Paragraph:
			d = append(d, Part{Text: "\n\n"})
		case directive.InlineCode, directive.InlineMath, directive.MathBlock, directive.CodeBlock:
			d = append(d, Part{Key: it.Kind.String(), Value: it.Text})
		case directive.Ref:
			d = append(d, Part{Key: it.Kind.String(), Value: it.Name})
		case directive.Brief:
			d = d.flatten(it.Children)
		case directive.Copybrief:
			// unresolved targets are already reported
		default:
			if it.Kind.IsSection() {
				d = append(d, Part{Key: it.Kind.String(), Value: it.Name})
				d = d.flatten(it.Children)
			}
		}
	}
	return d
}

// tidy merges adjacent text, trims it and drops empty text parts.
func (d Description) tidy() Description {
	out := make(Description, 0, len(d))
	for _, p := range d {
		if p.Key == "" && len(out) > 0 && out[len(out)-1].Key == "" {
			out[len(out)-1].Text += p.Text
			continue
		}
		out = append(out, p)
	}
	kept := out[:0]
	for _, p := range out {
		if p.Key == "" {
			p.Text = strings.TrimSpace(p.Text)
			if p.Text == "" {
				continue
			}
		}
		kept = append(kept, p)
	}
	return kept
}

// String renders the description as compact text.
func (d Description) String() string {
	var sb strings.Builder
	for i, p := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case p.Key == "":
			sb.WriteString(p.Text)
		case p.Value == "":
			sb.WriteString("@" + p.Key)
		default:
			sb.WriteString("@" + p.Key + "{" + p.Value + "}")
		}
	}
	return sb.String()
}
