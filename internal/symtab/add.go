package symtab

import (
	"cfront/internal/ctype"
	"cfront/internal/diag"
	"cfront/internal/source"
)

// Add registers a declaration of name in the namespace, merging it with
// any prior declaration the C rules say it completes or redeclares.
//
// Symbols can be declared multiple times, with incomplete or complete
// types. Only functions and arrays can exist as incomplete. Other symbols
// can be re-declared, but must have identical type each time. Labels use
// NewLabel or the label upgrade path, never Add with SymbolLabel.
func (t *Table) Add(ns *Namespace, name source.NameID, typ ctype.TypeID, kind SymbolKind, linkage Linkage) *Symbol {
	if kind == SymbolLabel {
		panic("symtab: Add called with SymbolLabel")
	}
	if kind == SymbolTag && ns != t.Tags {
		panic("symtab: tag symbol outside the tag namespace")
	}

	var sym *Symbol
	if kind != SymbolString {
		sym = t.Lookup(ns, name)
		// All function declarations must agree, regardless of scope: a
		// forward declaration buried in one function body and the
		// definition at file scope are the same entity.
		if sym == nil && t.types.IsFunction(typ) && ns == t.Idents {
			if sym = t.functions[name]; sym != nil {
				t.applyType(sym, typ)
				t.makeVisible(ns, sym)
				if ns.Depth() < sym.Depth {
					sym.Depth = ns.Depth()
				}
				return sym
			}
		}
	}

	// Try to complete an existing tentative definition.
	if sym != nil {
		switch {
		case linkage == LinkExtern && kind == SymbolDeclaration &&
			(sym.Kind == SymbolTentative || sym.Kind == SymbolDefinition):
			t.applyType(sym, typ)
			return sym
		case sym.Depth == ns.Depth() && sym.Depth == 0:
			switch {
			case sym.Linkage == linkage &&
				((sym.Kind == SymbolTentative && kind == SymbolDefinition) ||
					(sym.Kind == SymbolDefinition && kind == SymbolTentative)):
				t.applyType(sym, typ)
				sym.Kind = SymbolDefinition
			case sym.Linkage == linkage && sym.Kind == SymbolDeclaration && kind == SymbolTentative:
				t.applyType(sym, typ)
				sym.Kind = SymbolTentative
			case sym.Linkage == linkage && sym.Kind == SymbolDefinition && kind == SymbolDeclaration:
				if !t.types.Equal(sym.Type, typ) {
					t.fatalf(conflictingBailout, diag.SymConflictingTypes,
						"conflicting types for %s", t.names.MustRaw(name))
				}
			case sym.Kind != kind || sym.Linkage != linkage:
				t.fatalf(mismatchBailout, diag.SymRedeclarationMismatch,
					"declaration of '%s' does not match prior declaration", t.names.MustRaw(name))
			default:
				t.applyType(sym, typ)
			}
			return sym
		case sym.Depth == ns.Depth() && sym.Depth > 0:
			t.fatalf(duplicateBailout, diag.SymDuplicateDefinition,
				"duplicate definition of symbol '%s'", t.names.MustRaw(name))
		}
		// Different depth: the new declaration shadows.
	}

	sym = t.allocSym()
	sym.Name = name
	sym.Type = typ
	sym.Kind = kind
	sym.Linkage = linkage
	sym.Depth = ns.Depth()
	if t.Memcpy == nil && name == t.memcpyName {
		t.Memcpy = sym
	}

	// Scoped static variables get unique names so they do not collide
	// with other external declarations in the emitted assembly.
	if linkage == LinkIntern && sym.Depth > 0 {
		t.staticCount++
		sym.N = t.staticCount
	}

	if kind == SymbolTag || kind == SymbolTypedef {
		t.types.SetTag(typ, t.names.MustRaw(name))
	}

	ns.symbols = append(ns.symbols, sym)
	t.makeVisible(ns, sym)
	if t.types.IsFunction(sym.Type) {
		t.functions[name] = sym
	}

	t.log.Debug().
		Str("kind", sym.Kind.String()).
		Str("link", sym.Linkage.String()).
		Str("name", t.SymbolName(sym)).
		Str("type", t.types.String(sym.Type)).
		Msg("declare")

	return sym
}

// applyType reconciles the type of an existing symbol with a newly seen
// declaration. For functions, the last parameter list applies for as long
// as the symbol is still tentative. For arrays, a known length completes
// an unknown one.
func (t *Table) applyType(sym *Symbol, typ ctype.TypeID) {
	ti := t.types
	if ti.Equal(sym.Type, typ) && !(ti.IsFunction(sym.Type) && sym.Kind != SymbolDefinition) {
		return
	}

	conflict := true
	switch {
	case ti.IsFunction(sym.Type):
		if ti.IsFunction(typ) && ti.Equal(ti.Next(sym.Type), ti.Next(typ)) {
			have, seen := ti.Members(sym.Type), ti.Members(typ)
			if have == -1 || seen == -1 || have == seen {
				conflict = false
				sym.Type = typ
			}
		}
	case ti.IsArray(sym.Type):
		if ti.IsArray(typ) && ti.Equal(ti.Next(sym.Type), ti.Next(typ)) {
			have, seen := ti.ArrayLen(sym.Type), ti.ArrayLen(typ)
			switch {
			case have == 0 && seen != 0:
				conflict = false
				ti.SetArrayLen(sym.Type, seen)
			case seen == 0 || have == seen:
				conflict = false
			}
		}
	}

	if conflict {
		t.fatalf(incompatibleBailout, diag.SymIncompatibleDeclaration,
			"incompatible declaration of %s :: %s, cannot apply type '%s'",
			t.names.MustRaw(sym.Name), ti.String(sym.Type), ti.String(typ))
	}
}
