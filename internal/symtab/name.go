package symtab

import "strconv"

// Name prefixes assigned to compiler generated symbols.
const (
	prefixTemporary = ".t"
	prefixUnnamed   = ".u"
	prefixConstant  = ".C"
	prefixString    = ".LC"
	prefixLabel     = ".L"
)

// SymbolName renders the spelling the back-end emits for sym. This is a
// wire-level contract: synthetics concatenate prefix and number with
// nothing in between (".t7"), disambiguated statics insert a period
// between spelling and number ("foo.3"), everything else is the interned
// spelling verbatim.
func (t *Table) SymbolName(sym *Symbol) string {
	raw := t.names.MustRaw(sym.Name)
	if sym.N == 0 {
		return raw
	}
	if raw[0] == '.' {
		return raw + strconv.Itoa(sym.N)
	}
	return raw + "." + strconv.Itoa(sym.N)
}

// IsTemporary reports whether sym was produced by NewTemporary.
func (t *Table) IsTemporary(sym *Symbol) bool {
	return sym.Name == t.tempName
}
