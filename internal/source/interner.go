package source

import "slices"

// NameID is a stable handle for an interned identifier spelling. Two
// identifiers have the same spelling iff their NameIDs compare equal, so
// the ID doubles as the hash and equality key everywhere downstream.
type NameID uint32

// NoNameID marks the absence of a name.
const NoNameID NameID = 0

// IsValid reports whether the ID refers to an interned name.
func (id NameID) IsValid() bool { return id != NoNameID }

// Interner deduplicates identifier spellings and hands out NameIDs.
// ID 0 is reserved for the empty spelling.
type Interner struct {
	byID  []string
	index map[string]NameID
}

// NewInterner returns an interner seeded with the empty spelling at ID 0.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]NameID{"": 0},
	}
}

// Intern returns the ID for s, allocating one if the spelling is new.
func (i *Interner) Intern(s string) NameID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Copy so the interner does not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := NameID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns a byte slice without requiring a prior conversion.
func (i *Interner) InternBytes(b []byte) NameID {
	return i.Intern(string(b))
}

// Raw returns the spelling for id.
func (i *Interner) Raw(id NameID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustRaw returns the spelling for id and panics on an invalid ID.
func (i *Interner) MustRaw(id NameID) string {
	s, ok := i.Raw(id)
	if !ok {
		panic("source: invalid NameID")
	}
	return s
}

// Has reports whether id was produced by this interner.
func (i *Interner) Has(id NameID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned spellings, counting the reserved
// empty spelling.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of every interned spelling, indexed by NameID.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
