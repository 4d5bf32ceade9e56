package token

import (
	"cppdoc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string or character literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsPunctOrOp() }

// IsKeyword reports whether the token is a recognized keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token is an identifier spelled s.
func (t Token) Is(s string) bool { return t.Kind == Ident && t.Text == s }

// HasNewlineBefore reports whether a line break precedes the token.
func (t Token) HasNewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
