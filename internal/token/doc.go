// Package token defines lexical token kinds and trivia for C++ sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments (ordinary and documentation) and hidden macro names are
//     represented as leading Trivia and never appear in the main token stream.
//   - Only keywords that shape declarations get their own kinds; all other
//     C++ keywords (if, return, sizeof, ...) are identifiers.
//   - A preprocessor line including its backslash continuations is one
//     Preproc token.
package token
