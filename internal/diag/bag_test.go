package diag

import (
	"testing"

	"cfront/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(SymConflictingTypes, source.Span{}, "first")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(SymConflictingTypes, source.Span{}, "second")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(SymConflictingTypes, source.Span{}, "third")) {
		t.Error("third add should be rejected at cap")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", bag.Dropped())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(4)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("empty bag should report nothing")
	}
	bag.Add(New(SevInfo, SymInfo, source.Span{}, "note"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("info-only bag should report nothing")
	}
	bag.Add(New(SevWarning, IOCacheError, source.Span{}, "warn"))
	if bag.HasErrors() {
		t.Error("warning must not count as error")
	}
	if !bag.HasWarnings() {
		t.Error("warning not detected")
	}
	bag.Add(NewError(SymConflictingTypes, source.Span{}, "boom"))
	if !bag.HasErrors() {
		t.Error("error not detected")
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(SymConflictingTypes, source.Span{File: "b.sym", Line: 1}, "b"))
	bag.Add(New(SevWarning, IOCacheError, source.Span{File: "a.sym", Line: 5}, "warn"))
	bag.Add(NewError(SymUndefinedLabel, source.Span{File: "a.sym", Line: 5}, "err"))
	bag.Add(NewError(SymDuplicateDefinition, source.Span{File: "a.sym", Line: 2}, "early"))
	bag.Sort()

	items := bag.Items()
	wantCodes := []Code{SymDuplicateDefinition, SymUndefinedLabel, IOCacheError, SymConflictingTypes}
	for i, want := range wantCodes {
		if items[i].Code != want {
			t.Errorf("items[%d].Code = %s, want %s", i, items[i].Code, want)
		}
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	sp := source.Span{File: "a.sym", Line: 3}
	bag.Add(NewError(SymConflictingTypes, sp, "dup"))
	bag.Add(NewError(SymConflictingTypes, sp, "dup"))
	bag.Add(NewError(SymConflictingTypes, source.Span{File: "a.sym", Line: 4}, "dup"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("len after dedup = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() {
		t.Error("error flag lost after dedup")
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SymConflictingTypes, source.Span{}, "a"))
	b := NewBag(2)
	b.Add(NewError(SymUndefinedLabel, source.Span{}, "b1"))
	b.Add(NewError(SymUndefinedLabel, source.Span{}, "b2"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("len after merge = %d, want 3", a.Len())
	}
	if a.Cap() < 3 {
		t.Errorf("cap after merge = %d, want >= 3", a.Cap())
	}
}
