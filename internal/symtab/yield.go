package symtab

// YieldDeclaration advances the namespace's cursor to the next symbol the
// back-end should emit and returns it, or nil when the list is drained.
// Tentative definitions and string literals always surface. Constants
// surface only when floating, integer constants are inlined at use sites.
// Plain declarations surface only when extern and actually referenced, or
// when the symbol is the cached memcpy the IR emitter depends on.
// Definitions always surface; typedefs, tags and labels never do.
func (t *Table) YieldDeclaration(ns *Namespace) *Symbol {
	for ns.cursor < len(ns.symbols) {
		sym := ns.symbols[ns.cursor]
		ns.cursor++
		switch sym.Kind {
		case SymbolTentative, SymbolString, SymbolDefinition:
			return sym
		case SymbolConstant:
			if t.types.IsReal(sym.Type) {
				return sym
			}
		case SymbolDeclaration:
			if sym.Linkage == LinkExtern && (sym.Referenced || sym == t.Memcpy) {
				return sym
			}
		}
	}
	return nil
}
