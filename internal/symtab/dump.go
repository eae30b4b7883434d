package symtab

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human readable listing of the namespace, one symbol per
// line in creation order, indented by scope depth. The format is
// informational only and carries no compatibility promise.
func (t *Table) Dump(w io.Writer, ns *Namespace) {
	for i, sym := range ns.symbols {
		if i == 0 {
			fmt.Fprintf(w, "namespace %s:\n", ns.name)
		}
		t.printSymbol(w, sym)
		fmt.Fprintln(w)
	}
}

func (t *Table) printSymbol(w io.Writer, sym *Symbol) {
	ti := t.types
	fmt.Fprint(w, strings.Repeat("  ", sym.Depth))
	if sym.Linkage != LinkNone {
		if sym.Linkage == LinkIntern {
			fmt.Fprint(w, "static ")
		} else {
			fmt.Fprint(w, "global ")
		}
	}

	switch sym.Kind {
	case SymbolTag:
		switch {
		case ti.IsStruct(sym.Type):
			fmt.Fprint(w, "struct ")
		case ti.IsUnion(sym.Type):
			fmt.Fprint(w, "union ")
		default:
			fmt.Fprint(w, "enum ")
		}
	default:
		fmt.Fprintf(w, "%s ", sym.Kind)
	}

	fmt.Fprintf(w, "%s :: %s", t.SymbolName(sym), ti.String(sym.Type))
	if size := ti.SizeOf(sym.Type); size != 0 {
		fmt.Fprintf(w, ", size=%d", size)
	}
	if sym.StackOffset != 0 {
		fmt.Fprintf(w, ", (stack_offset: %d)", sym.StackOffset)
	}
	if ti.IsVLA(sym.Type) {
		if addr := t.VLAAddress(sym); addr != nil {
			fmt.Fprintf(w, ", (vla_address: %s)", t.SymbolName(addr))
		}
	}

	if sym.Kind == SymbolConstant {
		switch {
		case ti.IsSigned(sym.Type):
			fmt.Fprintf(w, ", value=%d", int64(sym.Value.Int))
		case ti.IsUnsigned(sym.Type):
			fmt.Fprintf(w, ", value=%d", sym.Value.Int)
		case ti.IsFloat(sym.Type):
			fmt.Fprintf(w, ", value=%ff", sym.Value.Float)
		default:
			fmt.Fprintf(w, ", value=%f", sym.Value.Float)
		}
	}
}
