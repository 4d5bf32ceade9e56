package decl

import "strings"

// Flags records specifiers and definition state of a declaration.
type Flags uint16

const (
	FlagConst Flags = 1 << iota
	FlagConstexpr
	FlagInline
	FlagStatic
	FlagExtern
	FlagVirtual
	FlagExplicit
	// FlagForward marks a declaration without a body or definition.
	FlagForward
	// FlagDefined marks a declaration with a body.
	FlagDefined
	FlagDeleted
	FlagDefaulted
	FlagPure
	FlagNoexcept
	// FlagConstMethod marks a member function with a const qualifier.
	FlagConstMethod
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagConst, "const"},
	{FlagConstexpr, "constexpr"},
	{FlagInline, "inline"},
	{FlagStatic, "static"},
	{FlagExtern, "extern"},
	{FlagVirtual, "virtual"},
	{FlagExplicit, "explicit"},
	{FlagForward, "forward"},
	{FlagDefined, "defined"},
	{FlagDeleted, "deleted"},
	{FlagDefaulted, "defaulted"},
	{FlagPure, "pure"},
	{FlagNoexcept, "noexcept"},
	{FlagConstMethod, "const-method"},
}

func (f Flags) Has(x Flags) bool { return f&x == x }

// Names lists the set flags in declaration order.
func (f Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

func (f Flags) String() string {
	return strings.Join(f.Names(), "|")
}
