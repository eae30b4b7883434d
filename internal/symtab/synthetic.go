package symtab

import "cfront/internal/ctype"

// allocSym hands out a zeroed symbol record, preferring the recycle pool
// over a fresh allocation.
func (t *Table) allocSym() *Symbol {
	if n := len(t.recycled); n > 0 {
		sym := t.recycled[n-1]
		t.recycled = t.recycled[:n-1]
		*sym = Symbol{}
		sym.Value.VLAAddress = noVLAAddress
		return sym
	}
	t.allocations++
	return &Symbol{Value: Value{VLAAddress: noVLAAddress}}
}

// Discard returns a temporary or label record to the recycle pool. The
// caller promises nothing holds a pointer to it anymore.
func (t *Table) Discard(sym *Symbol) {
	t.recycled = append(t.recycled, sym)
}

// NewTemporary creates a compiler temporary of the given type. It is not
// attached to any scope and may be handed back through Discard once the
// enclosing function body is done with it.
func (t *Table) NewTemporary(typ ctype.TypeID) *Symbol {
	sym := t.allocSym()
	sym.Kind = SymbolDefinition
	sym.Linkage = LinkNone
	sym.Name = t.tempName
	sym.Type = typ
	t.tempCount++
	sym.N = t.tempCount
	t.logSynthetic(sym)
	return sym
}

// NewUnnamed creates a symbol for an anonymous aggregate. At file scope
// it gets internal linkage so the back-end can emit it as data.
func (t *Table) NewUnnamed(typ ctype.TypeID) *Symbol {
	sym := t.allocSym()
	if t.Idents.Depth() == 0 {
		sym.Linkage = LinkIntern
	} else {
		sym.Linkage = LinkNone
	}
	sym.Kind = SymbolDefinition
	sym.Name = t.unnamedName
	sym.Type = typ
	t.unnamedCount++
	sym.N = t.unnamedCount
	t.logSynthetic(sym)
	return sym
}

// NewLabel creates a fresh internal jump target.
func (t *Table) NewLabel() *Symbol {
	sym := t.allocSym()
	sym.Type = t.types.Builtins().Void
	sym.Kind = SymbolLabel
	sym.Linkage = LinkIntern
	sym.Name = t.labelName
	t.labelCount++
	sym.N = t.labelCount
	t.logSynthetic(sym)
	return sym
}

// NewConstant creates a numbered constant symbol carrying val. It joins
// the identifier namespace's list so the back-end can emit it; floating
// constants need a memory home, integers get inlined.
func (t *Table) NewConstant(typ ctype.TypeID, val Value) *Symbol {
	sym := t.allocSym()
	sym.Type = typ
	sym.Value = val
	sym.Kind = SymbolConstant
	sym.Linkage = LinkIntern
	sym.Name = t.constName
	t.constCount++
	sym.N = t.constCount
	t.Idents.symbols = append(t.Idents.symbols, sym)
	t.logSynthetic(sym)
	return sym
}

// NewString creates a symbol for a string literal. The payload is interned
// and the symbol exists as if declared static char .LC[] = "...", with the
// array length covering the terminating null byte.
func (t *Table) NewString(str string) *Symbol {
	sym := t.allocSym()
	sym.Type = t.types.Array(t.types.Builtins().Char, uint32(len(str))+1)
	sym.Value.Str = t.names.Intern(str)
	sym.Kind = SymbolString
	sym.Linkage = LinkIntern
	sym.Name = t.stringName
	t.stringCount++
	sym.N = t.stringCount
	t.Idents.symbols = append(t.Idents.symbols, sym)
	t.logSynthetic(sym)
	return sym
}

// BindVLAAddress records that sym's runtime array length lives in addr.
// The back-reference is stored as an index into the identifier list so it
// survives without owning the record.
func (t *Table) BindVLAAddress(sym *Symbol, index int) {
	sym.Value.VLAAddress = index
}

// VLAAddress resolves the length symbol of a variably-modified array, or
// nil when none is bound.
func (t *Table) VLAAddress(sym *Symbol) *Symbol {
	if sym.Value.VLAAddress == noVLAAddress || sym.Value.VLAAddress >= len(t.Idents.symbols) {
		return nil
	}
	return t.Idents.symbols[sym.Value.VLAAddress]
}

func (t *Table) logSynthetic(sym *Symbol) {
	t.log.Debug().
		Str("kind", sym.Kind.String()).
		Str("link", sym.Linkage.String()).
		Str("name", t.SymbolName(sym)).
		Str("type", t.types.String(sym.Type)).
		Msg("synthesize")
}
