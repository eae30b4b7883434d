package symtab

import "testing"

func TestYieldSelection(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()

	tab.PushScope(tab.Idents)

	// extern int unused; never referenced, never emitted.
	tab.Add(tab.Idents, tab.Names().Intern("unused"), b.Int, SymbolDeclaration, LinkExtern)

	// extern int errno; referenced, so the back-end must import it.
	errno := tab.Add(tab.Idents, tab.Names().Intern("errno"), b.Int, SymbolDeclaration, LinkExtern)
	tab.Lookup(tab.Idents, errno.Name)

	// int n; tentative, always emitted.
	tentative := tab.Add(tab.Idents, tab.Names().Intern("n"), b.Int, SymbolTentative, LinkExtern)

	// static double half = 0.5; a definition.
	def := tab.Add(tab.Idents, tab.Names().Intern("half"), b.Double, SymbolDefinition, LinkIntern)

	// typedef int word; never emitted.
	tab.Add(tab.Idents, tab.Names().Intern("word"), b.Int, SymbolTypedef, LinkNone)

	// Floating constants need a memory home, integer constants do not.
	double := tab.NewConstant(b.Double, Value{Float: 2.5})
	tab.NewConstant(b.Int, Value{Int: 42})

	str := tab.NewString("hello")

	want := []*Symbol{errno, tentative, def, double, str}
	for i, exp := range want {
		got := tab.YieldDeclaration(tab.Idents)
		if got != exp {
			t.Fatalf("yield %d = %v, want %s", i, got, tab.SymbolName(exp))
		}
	}
	if got := tab.YieldDeclaration(tab.Idents); got != nil {
		t.Fatalf("drained namespace yielded %s", tab.SymbolName(got))
	}
	tab.PopScope(tab.Idents)
}

func TestYieldCursorIsIncremental(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()

	tab.PushScope(tab.Idents)
	first := tab.Add(tab.Idents, tab.Names().Intern("a"), b.Int, SymbolDefinition, LinkExtern)
	if got := tab.YieldDeclaration(tab.Idents); got != first {
		t.Fatalf("first yield missed the first definition")
	}
	if got := tab.YieldDeclaration(tab.Idents); got != nil {
		t.Fatalf("premature yield before new declarations arrived")
	}

	// Declarations appended after a drain surface on the next call.
	second := tab.Add(tab.Idents, tab.Names().Intern("b"), b.Int, SymbolDefinition, LinkExtern)
	if got := tab.YieldDeclaration(tab.Idents); got != second {
		t.Fatalf("yield did not resume past the drained prefix")
	}
	tab.PopScope(tab.Idents)
}

func TestYieldTagsNothing(t *testing.T) {
	tab, _ := newTestTable(t)
	ti := tab.Types()

	tab.PushScope(tab.Tags)
	tab.Add(tab.Tags, tab.Names().Intern("point"), ti.Struct(8), SymbolTag, LinkNone)
	if got := tab.YieldDeclaration(tab.Tags); got != nil {
		t.Fatalf("tag namespace yielded %s", tab.SymbolName(got))
	}
	tab.PopScope(tab.Tags)
}
