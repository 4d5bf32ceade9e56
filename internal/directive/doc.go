// Package directive interprets the markup of documentation comments.
//
// Parse turns the cleaned text of one comment into a Doc: an ordered list
// of Directives. Inline content (plain text, code spans, emphasis, math,
// references) is grouped into paragraphs separated by Paragraph items;
// section commands such as @param or @returns own the inline content that
// follows them up to the next section command or paragraph break.
//
// Commands are looked up in a Registry, so callers can add aliases or their
// own commands. Unknown commands stay plain text. Interpretation is tolerant:
// unterminated code or math blocks are reported and take the rest of the
// comment.
package directive
