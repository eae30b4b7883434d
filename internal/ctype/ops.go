package ctype

import (
	"fmt"
	"strings"
)

// Predicates over type IDs. An invalid ID answers false everywhere so the
// callers do not need to special-case missing types.

// IsFunction reports whether id describes a function type.
func (in *Interner) IsFunction(id TypeID) bool { return in.kind(id) == KindFunction }

// IsArray reports whether id describes an array type.
func (in *Interner) IsArray(id TypeID) bool { return in.kind(id) == KindArray }

// IsPointer reports whether id describes a pointer type.
func (in *Interner) IsPointer(id TypeID) bool { return in.kind(id) == KindPointer }

// IsStruct reports whether id describes a struct type.
func (in *Interner) IsStruct(id TypeID) bool { return in.kind(id) == KindStruct }

// IsUnion reports whether id describes a union type.
func (in *Interner) IsUnion(id TypeID) bool { return in.kind(id) == KindUnion }

// IsFloat reports whether id is exactly float.
func (in *Interner) IsFloat(id TypeID) bool { return in.kind(id) == KindFloat }

// IsDouble reports whether id is exactly double.
func (in *Interner) IsDouble(id TypeID) bool { return in.kind(id) == KindDouble }

// IsLongDouble reports whether id is exactly long double.
func (in *Interner) IsLongDouble(id TypeID) bool { return in.kind(id) == KindLongDouble }

// IsReal reports whether id is one of the floating types.
func (in *Interner) IsReal(id TypeID) bool {
	switch in.kind(id) {
	case KindFloat, KindDouble, KindLongDouble:
		return true
	}
	return false
}

// IsSigned reports whether id is a signed integer type.
func (in *Interner) IsSigned(id TypeID) bool {
	t := in.Get(id)
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindChar, KindShort, KindInt, KindLong:
		return !t.Unsigned
	}
	return false
}

// IsUnsigned reports whether id is an unsigned integer type.
func (in *Interner) IsUnsigned(id TypeID) bool {
	t := in.Get(id)
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindChar, KindShort, KindInt, KindLong:
		return t.Unsigned
	}
	return false
}

// IsVLA reports whether id is a variably-modified array.
func (in *Interner) IsVLA(id TypeID) bool {
	t := in.Get(id)
	return t != nil && t.Kind == KindArray && t.VLA
}

// IsObject reports whether id describes a complete object type: anything
// with a nonzero size that is not a function.
func (in *Interner) IsObject(id TypeID) bool {
	k := in.kind(id)
	return k != KindInvalid && k != KindVoid && k != KindFunction && in.SizeOf(id) > 0
}

func (in *Interner) kind(id TypeID) Kind {
	t := in.Get(id)
	if t == nil {
		return KindInvalid
	}
	return t.Kind
}

// Next returns the referenced type: array element, pointer target or
// function return type. NoTypeID for anything else.
func (in *Interner) Next(id TypeID) TypeID {
	t := in.Get(id)
	if t == nil {
		return NoTypeID
	}
	switch t.Kind {
	case KindPointer, KindArray, KindFunction:
		return t.Elem
	}
	return NoTypeID
}

// Members returns the number of function parameters, or -1 when the
// declaration carries no prototype. Non-function types answer 0.
func (in *Interner) Members(id TypeID) int {
	t := in.Get(id)
	if t == nil || t.Kind != KindFunction {
		return 0
	}
	if t.Params == nil {
		return -1
	}
	return len(t.Params)
}

// ArrayLen returns the element count of an array, 0 when incomplete.
func (in *Interner) ArrayLen(id TypeID) uint32 {
	t := in.Get(id)
	if t == nil || t.Kind != KindArray {
		return 0
	}
	return t.Len
}

// SetArrayLen completes an incomplete array in place. Completing an
// already complete array with a different length is a caller bug.
func (in *Interner) SetArrayLen(id TypeID, length uint32) {
	t := in.Get(id)
	if t == nil || t.Kind != KindArray {
		panic("ctype: SetArrayLen on non-array")
	}
	if t.Len != 0 && t.Len != length {
		panic("ctype: SetArrayLen would change a complete array")
	}
	t.Len = length
}

// SetTag records the spelling of the tag or typedef symbol that names an
// aggregate, so diagnostics and dumps can render "struct point" instead
// of a bare "struct".
func (in *Interner) SetTag(id TypeID, tag string) {
	if t := in.Get(id); t != nil {
		t.Tag = tag
	}
}

// Sizes follow the System V AMD64 data model (LP64).
const (
	sizeShort      = 2
	sizeInt        = 4
	sizeLong       = 8
	sizePointer    = 8
	sizeFloat      = 4
	sizeDouble     = 8
	sizeLongDouble = 16
)

// SizeOf returns the size of the type in bytes. Incomplete arrays, void
// and function types have size 0.
func (in *Interner) SizeOf(id TypeID) uint64 {
	t := in.Get(id)
	if t == nil {
		return 0
	}
	switch t.Kind {
	case KindChar:
		return 1
	case KindShort:
		return sizeShort
	case KindInt:
		return sizeInt
	case KindLong:
		return sizeLong
	case KindFloat:
		return sizeFloat
	case KindDouble:
		return sizeDouble
	case KindLongDouble:
		return sizeLongDouble
	case KindPointer:
		return sizePointer
	case KindArray:
		if t.VLA {
			return 0
		}
		return uint64(t.Len) * in.SizeOf(t.Elem)
	case KindStruct, KindUnion:
		return uint64(t.Size)
	}
	return 0
}

// Equal reports whether two types are compatible in the strict sense used
// by declaration merging. Primitives compare by kind and signedness,
// derived types structurally, aggregates by identity: C struct and union
// types are nominal, two distinct declarations never unify.
func (in *Interner) Equal(a, b TypeID) bool {
	if a == b {
		return true
	}
	ta, tb := in.Get(a), in.Get(b)
	if ta == nil || tb == nil || ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindVoid:
		return true
	case KindChar, KindShort, KindInt, KindLong:
		return ta.Unsigned == tb.Unsigned
	case KindFloat, KindDouble, KindLongDouble:
		return true
	case KindPointer:
		return in.Equal(ta.Elem, tb.Elem)
	case KindArray:
		return ta.Len == tb.Len && ta.VLA == tb.VLA && in.Equal(ta.Elem, tb.Elem)
	case KindFunction:
		if !in.Equal(ta.Elem, tb.Elem) || ta.Variadic != tb.Variadic {
			return false
		}
		if (ta.Params == nil) != (tb.Params == nil) || len(ta.Params) != len(tb.Params) {
			return false
		}
		for i := range ta.Params {
			if !in.Equal(ta.Params[i], tb.Params[i]) {
				return false
			}
		}
		return true
	case KindStruct, KindUnion:
		return false // distinct IDs, distinct aggregates
	}
	return false
}

// String renders the type for diagnostics, in the compact spelled-out
// form used by error messages and dumps: "int", "* char", "[3] int",
// "(int, int) -> int".
func (in *Interner) String(id TypeID) string {
	t := in.Get(id)
	if t == nil {
		return "<invalid>"
	}
	switch t.Kind {
	case KindVoid, KindFloat, KindDouble, KindLongDouble:
		return t.Kind.String()
	case KindChar, KindShort, KindInt, KindLong:
		if t.Unsigned {
			return "unsigned " + t.Kind.String()
		}
		return t.Kind.String()
	case KindPointer:
		return "* " + in.String(t.Elem)
	case KindArray:
		if t.VLA {
			return "[*] " + in.String(t.Elem)
		}
		if t.Len == 0 {
			return "[] " + in.String(t.Elem)
		}
		return fmt.Sprintf("[%d] %s", t.Len, in.String(t.Elem))
	case KindFunction:
		var b strings.Builder
		b.WriteByte('(')
		if t.Params == nil {
			b.WriteString("?")
		} else {
			for i, p := range t.Params {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(in.String(p))
			}
			if t.Variadic {
				if len(t.Params) > 0 {
					b.WriteString(", ")
				}
				b.WriteString("...")
			}
		}
		b.WriteString(") -> ")
		b.WriteString(in.String(t.Elem))
		return b.String()
	case KindStruct, KindUnion:
		if t.Tag != "" {
			return t.Kind.String() + " " + t.Tag
		}
		return t.Kind.String()
	}
	return "<invalid>"
}
