package token

var keywords = map[string]Kind{
	"class":         KwClass,
	"struct":        KwStruct,
	"union":         KwUnion,
	"enum":          KwEnum,
	"namespace":     KwNamespace,
	"template":      KwTemplate,
	"typename":      KwTypename,
	"using":         KwUsing,
	"typedef":       KwTypedef,
	"const":         KwConst,
	"constexpr":     KwConstexpr,
	"consteval":     KwConsteval,
	"constinit":     KwConstinit,
	"inline":        KwInline,
	"static":        KwStatic,
	"extern":        KwExtern,
	"virtual":       KwVirtual,
	"explicit":      KwExplicit,
	"friend":        KwFriend,
	"operator":      KwOperator,
	"public":        KwPublic,
	"private":       KwPrivate,
	"protected":     KwProtected,
	"concept":       KwConcept,
	"requires":      KwRequires,
	"noexcept":      KwNoexcept,
	"volatile":      KwVolatile,
	"mutable":       KwMutable,
	"thread_local":  KwThreadLocal,
	"decltype":      KwDecltype,
	"static_assert": KwStaticAssert,
	"alignas":       KwAlignas,
	"default":       KwDefault,
	"delete":        KwDelete,
	"override":      KwOverride,
	"final":         KwFinal,
	"void":          KwVoid,
	"bool":          KwBool,
	"char":          KwChar,
	"int":           KwInt,
	"float":         KwFloat,
	"double":        KwDouble,
	"short":         KwShort,
	"long":          KwLong,
	"signed":        KwSigned,
	"unsigned":      KwUnsigned,
	"auto":          KwAuto,
	"wchar_t":       KwWcharT,
	"char8_t":       KwChar8T,
	"char16_t":      KwChar16T,
	"char32_t":      KwChar32T,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые, как и в C++.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
