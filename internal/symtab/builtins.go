package symtab

// RegisterBuiltins seeds the identifier namespace with the handful of
// compiler-provided declarations that standard headers expect to resolve:
// the System V va_list record and the variable-argument intrinsics. Call
// once, right after pushing the file scope.
func (t *Table) RegisterBuiltins() {
	ti := t.types
	b := ti.Builtins()

	// struct { unsigned gp_offset; unsigned fp_offset;
	//          void *overflow_arg_area; void *reg_save_area; }
	vaListRecord := ti.Struct(24)
	vaList := ti.Array(vaListRecord, 1)
	t.Add(t.Idents, t.names.Intern("__builtin_va_list"), vaList, SymbolTypedef, LinkNone)

	vaStart := ti.Function(b.Void, nil, false)
	t.Add(t.Idents, t.names.Intern("__builtin_va_start"), vaStart, SymbolDeclaration, LinkExtern)

	vaArg := ti.Function(ti.Pointer(b.Void), nil, false)
	t.Add(t.Idents, t.names.Intern("__builtin_va_arg"), vaArg, SymbolDeclaration, LinkExtern)
}
