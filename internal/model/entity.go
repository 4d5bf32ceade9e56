package model

import (
	"strings"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/directive"
	"cppdoc/internal/source"
)

// Entity is one documented (or documentable) declaration.
type Entity struct {
	ID EntityID
	// Record is the declaration; nil for synthesized scopes.
	Record *decl.Record
	Name   string
	Kind   decl.Kind
	Scope  []string
	// Parent is the owning entity, NoEntityID at top level. Non-owning.
	Parent EntityID
	// Children are owned, in source order.
	Children []EntityID
	// Comment is the attached block, nil when undocumented.
	Comment *comment.Block
	// Parsed is the interpreted comment as written.
	Parsed directive.Doc
	// Resolved is Parsed with @copybrief replaced by the target's summary.
	Resolved directive.Doc
	// Synthetic marks a scope created for out-of-line declarations whose
	// enclosing class or namespace is not declared in the file.
	Synthetic bool
}

// QualifiedName joins Scope and Name with "::".
func (e *Entity) QualifiedName() string {
	if len(e.Scope) == 0 {
		return e.Name
	}
	return strings.Join(e.Scope, "::") + "::" + e.Name
}

// Documented reports whether a comment is attached.
func (e *Entity) Documented() bool { return e.Comment != nil }

// Span returns the declaration span, or the zero span for synthetic entities.
func (e *Entity) Span() source.Span {
	if e.Record == nil {
		return source.Span{}
	}
	return e.Record.Span
}

// Pos returns the 1-based position of the declaration name.
func (e *Entity) Pos() source.LineCol {
	if e.Record == nil {
		return source.LineCol{}
	}
	return e.Record.Pos
}

// Signature renders the parameter list of callables, "" otherwise.
func (e *Entity) Signature() string {
	if e.Record == nil || !e.Kind.IsCallable() {
		return ""
	}
	return e.Record.SignatureString()
}
