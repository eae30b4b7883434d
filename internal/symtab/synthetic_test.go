package symtab

import (
	"strings"
	"testing"
)

func TestTemporaryPoolReuse(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()

	tab.PushScope(tab.Idents)

	const rounds = 1000
	batch := make([]*Symbol, 0, rounds)
	for i := 0; i < rounds; i++ {
		batch = append(batch, tab.NewTemporary(b.Int))
	}
	for _, sym := range batch {
		tab.Discard(sym)
	}
	for i := 0; i < rounds; i++ {
		tab.NewTemporary(b.Long)
	}

	if got := tab.Allocations(); got > rounds {
		t.Fatalf("allocated %d records for %d live temporaries, pool not reused", got, rounds)
	}
	tab.PopScope(tab.Idents)
}

func TestRecycledRecordComesBackClean(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()

	tab.PushScope(tab.Idents)
	old := tab.NewTemporary(b.Double)
	old.Referenced = true
	old.StackOffset = -16
	tab.Discard(old)

	fresh := tab.NewLabel()
	if fresh != old {
		t.Fatalf("pool did not hand back the discarded record")
	}
	if fresh.Referenced || fresh.StackOffset != 0 {
		t.Errorf("recycled record carries stale state: %+v", fresh)
	}
	if tab.VLAAddress(fresh) != nil {
		t.Errorf("recycled record carries a stale VLA binding")
	}
	tab.PopScope(tab.Idents)
}

func TestSyntheticNaming(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()

	tab.PushScope(tab.Idents)
	names := []string{
		tab.SymbolName(tab.NewTemporary(b.Int)),
		tab.SymbolName(tab.NewTemporary(b.Int)),
		tab.SymbolName(tab.NewLabel()),
		tab.SymbolName(tab.NewConstant(b.Double, Value{Float: 1.5})),
		tab.SymbolName(tab.NewString("hi")),
		tab.SymbolName(tab.NewUnnamed(tab.Types().Struct(8))),
	}
	want := []string{".t1", ".t2", ".L1", ".C1", ".LC1", ".u1"}
	for i, got := range names {
		if got != want[i] {
			t.Errorf("synthetic name %d = %q, want %q", i, got, want[i])
		}
	}
	// Dotted prefixes concatenate the counter directly, no extra dot.
	for _, name := range names {
		if strings.Count(name, ".") != 1 {
			t.Errorf("synthetic name %q carries an extra separator", name)
		}
	}
	tab.PopScope(tab.Idents)
}

func TestIsTemporary(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()

	tab.PushScope(tab.Idents)
	tmp := tab.NewTemporary(b.Int)
	lbl := tab.NewLabel()
	named := tab.Add(tab.Idents, tab.Names().Intern("x"), b.Int, SymbolDefinition, LinkNone)

	if !tab.IsTemporary(tmp) {
		t.Errorf("temporary not recognized")
	}
	if tab.IsTemporary(lbl) || tab.IsTemporary(named) {
		t.Errorf("non-temporaries recognized as temporaries")
	}
	tab.PopScope(tab.Idents)
}

func TestNewStringShape(t *testing.T) {
	tab, _ := newTestTable(t)
	ti := tab.Types()

	tab.PushScope(tab.Idents)
	sym := tab.NewString("abc")
	if sym.Kind != SymbolString || sym.Linkage != LinkIntern {
		t.Errorf("string literal = {%v, %v}, want {string, intern}", sym.Kind, sym.Linkage)
	}
	if got := ti.SizeOf(sym.Type); got != 4 {
		t.Errorf("sizeof(\"abc\") = %d, want 4 including the terminator", got)
	}
	if got, _ := tab.Names().Raw(sym.Value.Str); got != "abc" {
		t.Errorf("payload = %q, want %q", got, "abc")
	}

	list := tab.Idents.Symbols()
	if len(list) == 0 || list[len(list)-1] != sym {
		t.Errorf("string literal missing from the identifier list")
	}
	tab.PopScope(tab.Idents)
}

func TestUnnamedLinkageFollowsDepth(t *testing.T) {
	tab, _ := newTestTable(t)
	ti := tab.Types()

	tab.PushScope(tab.Idents)
	file := tab.NewUnnamed(ti.Struct(16))
	if file.Linkage != LinkIntern {
		t.Errorf("file-scope unnamed aggregate linkage = %v, want intern", file.Linkage)
	}

	tab.PushScope(tab.Idents)
	block := tab.NewUnnamed(ti.Struct(16))
	if block.Linkage != LinkNone {
		t.Errorf("block-scope unnamed aggregate linkage = %v, want none", block.Linkage)
	}
	tab.PopScope(tab.Idents)
	tab.PopScope(tab.Idents)
}

func TestVLAAddressBinding(t *testing.T) {
	tab, _ := newTestTable(t)
	b := tab.Types().Builtins()
	ti := tab.Types()

	tab.PushScope(tab.Idents)
	length := tab.Add(tab.Idents, tab.Names().Intern("n.len"), b.Long, SymbolDefinition, LinkNone)
	index := len(tab.Idents.Symbols()) - 1

	arr := tab.Add(tab.Idents, tab.Names().Intern("a"), ti.VLArray(b.Int), SymbolDefinition, LinkNone)
	if got := tab.VLAAddress(arr); got != nil {
		t.Fatalf("unbound VLA resolved to %v", got)
	}
	tab.BindVLAAddress(arr, index)
	if got := tab.VLAAddress(arr); got != length {
		t.Fatalf("VLA length symbol = %v, want %v", got, length)
	}
	tab.PopScope(tab.Idents)
}
