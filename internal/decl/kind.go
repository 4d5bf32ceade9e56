package decl

// Kind is the closed set of declaration kinds the extractor produces.
// A template of any kind is that kind with a non-nil Template list.
type Kind uint8

const (
	KindInvalid Kind = iota
	Variable
	Constant
	Typedef
	Function
	Method
	Constructor
	Destructor
	Class
	Struct
	Union
	Enum
	EnumClass
	Enumerator
	Namespace
	Concept
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	Variable:    "variable",
	Constant:    "constant",
	Typedef:     "typedef",
	Function:    "function",
	Method:      "method",
	Constructor: "constructor",
	Destructor:  "destructor",
	Class:       "class",
	Struct:      "struct",
	Union:       "union",
	Enum:        "enum",
	EnumClass:   "enum class",
	Enumerator:  "enumerator",
	Namespace:   "namespace",
	Concept:     "concept",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindInvalid {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// IsCallable reports whether the kind takes a parameter list.
func (k Kind) IsCallable() bool {
	switch k {
	case Function, Method, Constructor, Destructor:
		return true
	}
	return false
}

// IsRecordType reports whether the kind is class, struct or union.
func (k Kind) IsRecordType() bool {
	return k == Class || k == Struct || k == Union
}

// IsEnum reports whether the kind is a scoped or unscoped enumeration.
func (k Kind) IsEnum() bool {
	return k == Enum || k == EnumClass
}

// IsScope reports whether declarations can be nested inside entities of this kind.
func (k Kind) IsScope() bool {
	return k.IsRecordType() || k.IsEnum() || k == Namespace
}

// IndexType maps the kind onto the coarse entity type of the JSON index.
func (k Kind) IndexType() string {
	switch k {
	case Function, Method, Constructor, Destructor:
		return "function"
	case Class, Struct, Union:
		return "class"
	case Enum, EnumClass:
		return "enum"
	case Enumerator:
		return "enumerator"
	case Typedef:
		return "typedef"
	case Variable, Constant:
		return "variable"
	case Namespace:
		return "namespace"
	case Concept:
		return "concept"
	}
	return ""
}
