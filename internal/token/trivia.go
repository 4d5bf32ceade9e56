package token

import "cppdoc/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocLine is a leading line doc comment: /// or //!.
	TriviaDocLine
	// TriviaDocBlock is a leading block doc comment: /** */ or /*! */.
	TriviaDocBlock
	// TriviaDocTrailingLine is ///< or //!<.
	TriviaDocTrailingLine
	// TriviaDocTrailingBlock is /**< */ or /*!< */.
	TriviaDocTrailingBlock
	// TriviaHidden is an identifier listed in hide_tokens.
	TriviaHidden
)

var triviaNames = [...]string{
	TriviaSpace:            "Space",
	TriviaNewline:          "Newline",
	TriviaLineComment:      "LineComment",
	TriviaBlockComment:     "BlockComment",
	TriviaDocLine:          "DocLine",
	TriviaDocBlock:         "DocBlock",
	TriviaDocTrailingLine:  "DocTrailingLine",
	TriviaDocTrailingBlock: "DocTrailingBlock",
	TriviaHidden:           "Hidden",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(?)"
}

// IsDoc reports whether the trivia is a documentation comment of any style.
func (k TriviaKind) IsDoc() bool {
	return k >= TriviaDocLine && k <= TriviaDocTrailingBlock
}

// IsComment reports whether the trivia is any kind of comment.
func (k TriviaKind) IsComment() bool {
	return k >= TriviaLineComment && k <= TriviaDocTrailingBlock
}

// IsTrailing reports whether the doc comment documents the preceding declaration.
func (k TriviaKind) IsTrailing() bool {
	return k == TriviaDocTrailingLine || k == TriviaDocTrailingBlock
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// ClassifyComment determines the trivia kind of a comment spelled as text.
// text must start with "//" or "/*".
func ClassifyComment(text string) TriviaKind {
	if len(text) >= 2 && text[1] == '/' {
		switch {
		case hasPrefix(text, "///<"), hasPrefix(text, "//!<"):
			return TriviaDocTrailingLine
		case hasPrefix(text, "////"):
			return TriviaLineComment
		case hasPrefix(text, "///"), hasPrefix(text, "//!"):
			return TriviaDocLine
		}
		return TriviaLineComment
	}
	switch {
	case hasPrefix(text, "/**<"), hasPrefix(text, "/*!<"):
		return TriviaDocTrailingBlock
	case hasPrefix(text, "/***"), text == "/**/":
		return TriviaBlockComment
	case hasPrefix(text, "/**") && text != "/**/", hasPrefix(text, "/*!"):
		return TriviaDocBlock
	}
	return TriviaBlockComment
}

func hasPrefix(s, p string) bool {
	return len(s) >= len(p) && s[:len(p)] == p
}
