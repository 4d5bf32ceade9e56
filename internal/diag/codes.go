package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Структурный разбор объявлений
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynUnclosedBracket  Code = 2003
	SynUnclosedAngle    Code = 2004
	SynUnclosedBrace    Code = 2005
	SynUnbalancedBrace  Code = 2006
	SynExpectSemicolon  Code = 2012
	SynParseError       Code = 2101
	SynExpectIdentifier Code = 2102

	// Документация и привязка комментариев
	DocInfo                 Code = 3000
	DocAttachmentAmbiguity  Code = 3001
	DocOrphanComment        Code = 3002
	DocUnresolvedReference  Code = 3003
	DocOverloadChoice       Code = 3004
	DocCopybriefCycle       Code = 3005
	DocUnterminatedCode     Code = 3006
	DocUnterminatedMath     Code = 3007
	DocMissingCommandTarget Code = 3008

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOReadDirError  Code = 4002
	IOCacheError    Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string or character literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedAngle:            "Unclosed template argument list",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnbalancedBrace:          "Unbalanced closing brace",
	SynExpectSemicolon:          "Expected ';'",
	SynParseError:               "Unrecognized declaration",
	SynExpectIdentifier:         "Expected identifier",
	DocInfo:                     "Documentation information",
	DocAttachmentAmbiguity:      "Ambiguous comment attachment",
	DocOrphanComment:            "Documentation comment not attached to a declaration",
	DocUnresolvedReference:      "Unresolved documentation reference",
	DocOverloadChoice:           "Reference resolved within an overload set",
	DocCopybriefCycle:           "Cyclic @copybrief chain",
	DocUnterminatedCode:         "Unterminated @code block",
	DocUnterminatedMath:         "Unterminated math block",
	DocMissingCommandTarget:     "Documentation command without argument",
	IOLoadFileError:             "Failed to load file",
	IOReadDirError:              "Failed to read directory",
	IOCacheError:                "Disk cache failure",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Located reports whether diagnostics with this code point into a source
// file. I/O and observability diagnostics carry an empty span.
func (c Code) Located() bool {
	ic := int(c)
	return ic < 4000 || ic >= 7000
}
