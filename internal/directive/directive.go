package directive

import "slices"

// Directive is one interpreted piece of a documentation comment.
type Directive struct {
	Kind Kind
	// Text is the literal content: plain text, code, math, emphasis text.
	Text string
	// Name is the argument of the command: parameter name, reference or
	// copybrief target, exception type, code block language.
	Name string
	// Dir is the direction of a parameter: in, out or "in,out".
	Dir string
	// Level is the emphasis strength: 1 for *em*, 2 for **strong**.
	Level int
	// Children is the content owned by a section.
	Children []Directive
}

// Doc is the interpreted form of one comment.
type Doc struct {
	Items []Directive
	// Group is the argument of @addtogroup, if the comment has one.
	Group string
	// Subject is set when the content was wrapped into a ParamDoc for the
	// named enumerator.
	Subject string
}

// Empty reports whether the doc has no content.
func (d Doc) Empty() bool { return len(d.Items) == 0 }

// Find returns the first top-level directive of kind k.
func (d Doc) Find(k Kind) (Directive, bool) {
	for _, it := range d.Items {
		if it.Kind == k {
			return it, true
		}
	}
	return Directive{}, false
}

// Sections returns the top-level directives of kind k in order.
func (d Doc) Sections(k Kind) []Directive {
	var out []Directive
	for _, it := range d.Items {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}

// Summary is the explicit brief if present, else the inline content of the
// first paragraph.
func (d Doc) Summary() []Directive {
	if b, ok := d.Find(Brief); ok {
		return b.Children
	}
	if d.Subject != "" && len(d.Items) > 0 && d.Items[0].Kind == ParamDoc {
		return d.Items[0].Children
	}
	var out []Directive
	for _, it := range d.Items {
		if it.Kind == Paragraph {
			if len(out) > 0 {
				break
			}
			continue
		}
		if it.Kind.IsInline() {
			out = append(out, it)
		}
	}
	return out
}

// Wrap returns the doc with its whole content moved into a single
// ParamDoc section named subject. Enumerator comments are stored this way.
func (d Doc) Wrap(subject string) Doc {
	if d.Empty() || d.Subject != "" {
		return d
	}
	items := []Directive{{Kind: ParamDoc, Name: subject, Children: d.Items}}
	return Doc{Items: items, Group: d.Group, Subject: subject}
}

// Copybriefs returns the targets of all @copybrief directives.
func (d Doc) Copybriefs() []string {
	var out []string
	for _, it := range d.Items {
		if it.Kind == Copybrief {
			out = append(out, it.Name)
		}
	}
	return out
}

// Resolve returns a copy of d in which every Copybrief is replaced by a
// Brief holding the content returned by lookup. Copybriefs lookup cannot
// resolve are dropped. d itself is not modified.
func (d Doc) Resolve(lookup func(target string) ([]Directive, bool)) Doc {
	out := Doc{Group: d.Group, Subject: d.Subject, Items: make([]Directive, 0, len(d.Items))}
	for _, it := range d.Items {
		if it.Kind != Copybrief {
			out.Items = append(out.Items, it)
			continue
		}
		if content, ok := lookup(it.Name); ok {
			out.Items = append(out.Items, Directive{Kind: Brief, Children: slices.Clone(content)})
		}
	}
	out.Items = trimParagraphs(out.Items)
	return out
}

func trimParagraphs(items []Directive) []Directive {
	for len(items) > 0 && items[0].Kind == Paragraph {
		items = items[1:]
	}
	for len(items) > 0 && items[len(items)-1].Kind == Paragraph {
		items = items[:len(items)-1]
	}
	out := items[:0:0]
	for i, it := range items {
		if it.Kind == Paragraph && i > 0 && items[i-1].Kind == Paragraph {
			continue
		}
		out = append(out, it)
	}
	return out
}
