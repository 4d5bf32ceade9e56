package comment

import (
	"cppdoc/internal/source"
)

// Style is the marker family of a documentation comment.
type Style uint8

const (
	StyleSlash   Style = iota // ///
	StyleBang                 // //!
	StyleJavadoc              // /** */
	StyleQt                   // /*! */
)

var styleNames = [...]string{
	StyleSlash:   "///",
	StyleBang:    "//!",
	StyleJavadoc: "/**",
	StyleQt:      "/*!",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "?"
}

// IsBlock reports whether the style is a /* */ form.
func (s Style) IsBlock() bool { return s == StyleJavadoc || s == StyleQt }

// Block is one documentation comment: a single block comment or a merged
// run of line comments.
type Block struct {
	// Text is the content with comment markers and common indentation removed.
	Text string
	// Raw is the exact source text from the first marker to the end of the last line.
	Raw   string
	Span  source.Span
	Pos   source.LineCol
	Style Style
	// Trailing marks the ///< family that documents the preceding declaration.
	Trailing bool
	// Anchor is the start offset of the first significant token after the
	// block; access specifier labels ("public:") are skipped.
	Anchor uint32
	// Lines is the number of comment lines merged into the block.
	Lines int
}

// End returns the offset just past the block.
func (b *Block) End() uint32 { return b.Span.End }

// Empty reports whether the block carries no text at all.
func (b *Block) Empty() bool { return b.Text == "" }
