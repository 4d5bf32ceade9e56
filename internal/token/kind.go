package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Preproc is a whole preprocessor line (#include, #define ...).
	Preproc

	// KwClass represents the 'class' keyword.
	KwClass
	KwStruct
	KwUnion
	KwEnum
	KwNamespace
	KwTemplate
	KwTypename
	KwUsing
	KwTypedef
	KwConst
	KwConstexpr
	KwConsteval
	KwConstinit
	KwInline
	KwStatic
	KwExtern
	KwVirtual
	KwExplicit
	KwFriend
	KwOperator
	KwPublic
	KwPrivate
	KwProtected
	KwConcept
	KwRequires
	KwNoexcept
	KwVolatile
	KwMutable
	KwThreadLocal
	KwDecltype
	KwStaticAssert
	KwAlignas
	KwDefault
	KwDelete
	KwOverride
	KwFinal

	// KwVoid and the following kinds are builtin type keywords.
	KwVoid
	KwBool
	KwChar
	KwInt
	KwFloat
	KwDouble
	KwShort
	KwLong
	KwSigned
	KwUnsigned
	KwAuto
	KwWcharT
	KwChar8T
	KwChar16T
	KwChar32T

	// NumberLit represents an integer or floating literal, suffix included.
	NumberLit
	// StringLit represents a string literal, prefix and raw forms included.
	StringLit
	// CharLit represents a character literal.
	CharLit

	ColonColon   // ::
	Colon        // :
	Semicolon    // ;
	Comma        // ,
	Dot          // .
	DotDotDot    // ...
	LParen       // (
	RParen       // )
	LBrace       // {
	RBrace       // }
	LBracket     // [
	RBracket     // ]
	Lt           // <
	Gt           // >
	Assign       // =
	Star         // *
	Amp          // &
	AndAnd       // &&
	Tilde        // ~
	Bang         // !
	Plus         // +
	Minus        // -
	Slash        // /
	Percent      // %
	Caret        // ^
	Pipe         // |
	Question     // ?
	Arrow        // ->
	Hash         // # (outside a preprocessor line)
	OtherOp      // compound operators: == != <= >= << >> += ++ -- ->* .* || <=> and friends
	kindSentinel // keep last
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident", Preproc: "Preproc",
	KwClass: "class", KwStruct: "struct", KwUnion: "union", KwEnum: "enum",
	KwNamespace: "namespace", KwTemplate: "template", KwTypename: "typename",
	KwUsing: "using", KwTypedef: "typedef", KwConst: "const", KwConstexpr: "constexpr",
	KwConsteval: "consteval", KwConstinit: "constinit", KwInline: "inline",
	KwStatic: "static", KwExtern: "extern", KwVirtual: "virtual", KwExplicit: "explicit",
	KwFriend: "friend", KwOperator: "operator", KwPublic: "public", KwPrivate: "private",
	KwProtected: "protected", KwConcept: "concept", KwRequires: "requires",
	KwNoexcept: "noexcept", KwVolatile: "volatile", KwMutable: "mutable",
	KwThreadLocal: "thread_local", KwDecltype: "decltype", KwStaticAssert: "static_assert",
	KwAlignas: "alignas", KwDefault: "default", KwDelete: "delete",
	KwOverride: "override", KwFinal: "final",
	KwVoid: "void", KwBool: "bool", KwChar: "char", KwInt: "int", KwFloat: "float",
	KwDouble: "double", KwShort: "short", KwLong: "long", KwSigned: "signed",
	KwUnsigned: "unsigned", KwAuto: "auto", KwWcharT: "wchar_t", KwChar8T: "char8_t",
	KwChar16T: "char16_t", KwChar32T: "char32_t",
	NumberLit: "NumberLit", StringLit: "StringLit", CharLit: "CharLit",
	ColonColon: "::", Colon: ":", Semicolon: ";", Comma: ",", Dot: ".", DotDotDot: "...",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Lt: "<", Gt: ">", Assign: "=", Star: "*", Amp: "&", AndAnd: "&&", Tilde: "~",
	Bang: "!", Plus: "+", Minus: "-", Slash: "/", Percent: "%", Caret: "^", Pipe: "|",
	Question: "?", Arrow: "->", Hash: "#", OtherOp: "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is one of the recognized keywords.
func (k Kind) IsKeyword() bool {
	return k >= KwClass && k <= KwChar32T
}

// IsBuiltinType reports whether k names a fundamental type.
func (k Kind) IsBuiltinType() bool {
	return k >= KwVoid && k <= KwChar32T
}

// IsLiteral reports whether k is a number, string or character literal.
func (k Kind) IsLiteral() bool {
	return k == NumberLit || k == StringLit || k == CharLit
}

// IsPunctOrOp reports whether k is punctuation or an operator.
func (k Kind) IsPunctOrOp() bool {
	return k >= ColonColon && k < kindSentinel
}

// IsWord reports whether tokens of kind k are spelled with identifier characters.
// Two adjacent word tokens need a space between them when re-spelled.
func (k Kind) IsWord() bool {
	return k == Ident || k.IsKeyword() || k.IsLiteral()
}
