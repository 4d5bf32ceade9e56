package directive

// Kind is the closed set of directive kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	PlainText
	InlineCode
	Emphasis
	InlineMath
	MathBlock
	CodeBlock
	Ref
	Copybrief
	Brief
	ParamDoc
	TParamDoc
	Returns
	Note
	See
	Details
	Throws
	ThreadSafety
	Paragraph
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	PlainText:    "text",
	InlineCode:   "inlinecode",
	Emphasis:     "emphasis",
	InlineMath:   "inlinemath",
	MathBlock:    "blockmath",
	CodeBlock:    "blockcode",
	Ref:          "ref",
	Copybrief:    "copybrief",
	Brief:        "brief",
	ParamDoc:     "param",
	TParamDoc:    "tparam",
	Returns:      "return",
	Note:         "note",
	See:          "see",
	Details:      "details",
	Throws:       "exceptions",
	ThreadSafety: "threadsafety",
	Paragraph:    "paragraph",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsInline reports whether k flows inside a paragraph.
func (k Kind) IsInline() bool {
	switch k {
	case PlainText, InlineCode, Emphasis, InlineMath, Ref:
		return true
	}
	return false
}

// IsSection reports whether k owns the inline content that follows it.
func (k Kind) IsSection() bool {
	switch k {
	case Brief, ParamDoc, TParamDoc, Returns, Note, See, Details, Throws, ThreadSafety:
		return true
	}
	return false
}

// IsVerbatim reports whether the text of k is kept exactly as written.
func (k Kind) IsVerbatim() bool {
	return k == MathBlock || k == CodeBlock || k == InlineCode || k == InlineMath
}
