package symtab

import (
	"cfront/internal/ctype"
	"cfront/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	// SymbolDeclaration is a declaration that reserves no storage here.
	SymbolDeclaration SymbolKind = iota
	// SymbolTentative is a file-scope declaration without initializer,
	// promoted to a zero-initialized definition at end of translation
	// unit unless a real definition shows up first.
	SymbolTentative
	SymbolDefinition
	SymbolTypedef
	SymbolTag
	SymbolLabel
	SymbolConstant
	SymbolString
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolDeclaration:
		return "declaration"
	case SymbolTentative:
		return "tentative"
	case SymbolDefinition:
		return "definition"
	case SymbolTypedef:
		return "typedef"
	case SymbolTag:
		return "tag"
	case SymbolLabel:
		return "label"
	case SymbolConstant:
		return "number"
	case SymbolString:
		return "string"
	default:
		return "invalid"
	}
}

// Linkage describes the visibility of a name across translation units.
type Linkage uint8

const (
	// LinkNone is block-scope non-static: no linkage at all.
	LinkNone Linkage = iota
	// LinkIntern is visible only within the translation unit.
	LinkIntern
	// LinkExtern is visible to other translation units.
	LinkExtern
)

func (l Linkage) String() string {
	switch l {
	case LinkIntern:
		return "intern"
	case LinkExtern:
		return "extern"
	default:
		return "none"
	}
}

// Value is the variant payload of a symbol. Integer and floating constant
// bits for SymbolConstant, the interned byte payload for SymbolString, and
// the length-symbol back-reference for variably-modified arrays, stored as
// an index into the identifier namespace's append-only list rather than a
// pointer so teardown order does not matter.
type Value struct {
	Int        uint64
	Float      float64
	Str        source.NameID
	VLAAddress int
}

const noVLAAddress = -1

// Symbol carries every compile-time fact about one named entity. Records
// live at stable heap addresses: types and IR operands keep raw pointers
// to them, so a symbol is never moved or freed before its namespace is
// torn down.
type Symbol struct {
	Name source.NameID
	// N disambiguates symbols whose spelling alone is not unique: all
	// synthetics and block-scope statics. Zero otherwise.
	N    int
	Type ctype.TypeID
	Kind SymbolKind
	Linkage Linkage
	// Depth is the scope depth the symbol was introduced at (0 = file
	// scope). Lowered when a function declared in an inner block is
	// redeclared further out.
	Depth int
	// Referenced flips once a lookup has returned this symbol.
	Referenced bool
	Value      Value
	// StackOffset is assigned by a later pass; the table never touches it.
	StackOffset int
}
