package ctype

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the shared primitive types.
type Builtins struct {
	Void          TypeID
	Char          TypeID
	UnsignedChar  TypeID
	Short         TypeID
	UnsignedShort TypeID
	Int           TypeID
	UnsignedInt   TypeID
	Long          TypeID
	UnsignedLong  TypeID
	Float         TypeID
	Double        TypeID
	LongDouble    TypeID
}

// Interner owns every type descriptor of one translation unit. Primitives
// are deduplicated; constructed types get a fresh slot each time so that
// tentative declarations can refine them without aliasing surprises.
type Interner struct {
	data     []Type
	prims    map[primKey]TypeID
	builtins Builtins
}

type primKey struct {
	kind     Kind
	unsigned bool
}

// NewInterner constructs an interner seeded with the primitive types.
func NewInterner() *Interner {
	in := &Interner{
		data:  make([]Type, 1, 64), // index 0 reserved for NoTypeID
		prims: make(map[primKey]TypeID, 16),
	}
	in.builtins = Builtins{
		Void:          in.prim(KindVoid, false),
		Char:          in.prim(KindChar, false),
		UnsignedChar:  in.prim(KindChar, true),
		Short:         in.prim(KindShort, false),
		UnsignedShort: in.prim(KindShort, true),
		Int:           in.prim(KindInt, false),
		UnsignedInt:   in.prim(KindInt, true),
		Long:          in.prim(KindLong, false),
		UnsignedLong:  in.prim(KindLong, true),
		Float:         in.prim(KindFloat, false),
		Double:        in.prim(KindDouble, false),
		LongDouble:    in.prim(KindLongDouble, false),
	}
	return in
}

// Builtins returns the IDs of the shared primitive types.
func (in *Interner) Builtins() Builtins { return in.builtins }

func (in *Interner) prim(kind Kind, unsigned bool) TypeID {
	key := primKey{kind: kind, unsigned: unsigned}
	if id, ok := in.prims[key]; ok {
		return id
	}
	id := in.alloc(Type{Kind: kind, Unsigned: unsigned})
	in.prims[key] = id
	return id
}

func (in *Interner) alloc(t Type) TypeID {
	value, err := safecast.Conv[uint32](len(in.data))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	in.data = append(in.data, t)
	return TypeID(value)
}

// Get returns the descriptor for id, or nil for an invalid ID. The pointer
// is only valid until the next allocation.
func (in *Interner) Get(id TypeID) *Type {
	if !id.IsValid() || int(id) >= len(in.data) {
		return nil
	}
	return &in.data[id]
}

// Len reports the number of allocated descriptors, excluding the sentinel.
func (in *Interner) Len() int { return len(in.data) - 1 }

// Pointer allocates a pointer-to-elem descriptor.
func (in *Interner) Pointer(elem TypeID) TypeID {
	return in.alloc(Type{Kind: KindPointer, Elem: elem})
}

// Array allocates an array descriptor. A length of 0 means the array is
// incomplete and may be completed later by SetArrayLen.
func (in *Interner) Array(elem TypeID, length uint32) TypeID {
	return in.alloc(Type{Kind: KindArray, Elem: elem, Len: length})
}

// VLArray allocates a variably-modified array descriptor. The runtime
// length lives in a separate symbol tracked by the caller.
func (in *Interner) VLArray(elem TypeID) TypeID {
	return in.alloc(Type{Kind: KindArray, Elem: elem, VLA: true})
}

// Function allocates a function descriptor with the given return type.
// A nil params slice means the declaration carries no prototype.
func (in *Interner) Function(ret TypeID, params []TypeID, variadic bool) TypeID {
	return in.alloc(Type{Kind: KindFunction, Elem: ret, Params: params, Variadic: variadic})
}

// Struct allocates a struct descriptor with a fixed layout size.
func (in *Interner) Struct(size uint32) TypeID {
	return in.alloc(Type{Kind: KindStruct, Size: size})
}

// Union allocates a union descriptor with a fixed layout size.
func (in *Interner) Union(size uint32) TypeID {
	return in.alloc(Type{Kind: KindUnion, Size: size})
}
