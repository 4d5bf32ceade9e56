package decl

import (
	"strings"

	"cppdoc/internal/source"
)

// Access is the member access of a class member.
type Access uint8

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return ""
}

// Record is one structurally recognized declaration. Records are values
// produced once by the extractor and never modified afterwards.
type Record struct {
	Kind Kind
	Name string
	// Scope is the enclosing scope path, outermost first. For out-of-line
	// definitions it ends with the written qualifier.
	Scope []string
	// Qualifier is the written qualifier of an out-of-line declaration
	// (the tail of Scope), without template arguments.
	Qualifier []string
	// Signature holds normalized parameter types of callables.
	Signature []string
	// Template is the own template parameter list; nil when not a template,
	// empty for an explicit specialization.
	Template []string
	// OuterTemplate holds the parameter lists of enclosing class templates,
	// outermost first.
	OuterTemplate []string
	// Specialization is the spelled argument list of a class specialization.
	Specialization string
	Flags          Flags
	// Span covers the whole declaration starting at Lead.
	Span source.Span
	// Lead is the offset of the first token of the lead-in (attributes,
	// template header) or of the declaration itself.
	Lead     uint32
	NameSpan source.Span
	Pos      source.LineCol
	// Definition is the declaration text up to the body or ';'.
	Definition string
	// Parent is the index of the lexically enclosing record, -1 at top level.
	Parent int
	Access Access
}

// Anonymous stands in for the name of an unnamed class.
const Anonymous = "(anonymous)"

// DisplayName is Name, or Anonymous for an unnamed class.
func (r *Record) DisplayName() string {
	if r.Name == "" {
		return Anonymous
	}
	return r.Name
}

// IsAnonymous reports whether the record is an unnamed class.
func (r *Record) IsAnonymous() bool { return r.Name == "" }

// QualifiedName joins Scope and DisplayName with "::".
func (r *Record) QualifiedName() string {
	if len(r.Scope) == 0 {
		return r.DisplayName()
	}
	return strings.Join(r.Scope, "::") + "::" + r.DisplayName()
}

// IsTemplate reports whether the record carries its own template header.
func (r *Record) IsTemplate() bool { return r.Template != nil }

// IsOutOfLine reports whether the declaration was written with a qualifier.
func (r *Record) IsOutOfLine() bool { return len(r.Qualifier) > 0 }

// SignatureString renders the parameter list as "(a, b)".
func (r *Record) SignatureString() string {
	return "(" + strings.Join(r.Signature, ", ") + ")"
}
