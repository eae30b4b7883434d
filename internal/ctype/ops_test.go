package ctype

import "testing"

func TestPrimitivesAreShared(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if b.Int != in.prim(KindInt, false) {
		t.Fatalf("int interned twice")
	}
	if b.Int == b.UnsignedInt {
		t.Fatalf("int and unsigned int must be distinct")
	}
	if b.Char == b.UnsignedChar {
		t.Fatalf("char and unsigned char must be distinct")
	}
}

func TestConstructedTypesAreUnshared(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	a1 := in.Array(b.Int, 3)
	a2 := in.Array(b.Int, 3)
	if a1 == a2 {
		t.Fatalf("arrays must get fresh slots, got %d twice", a1)
	}
	if !in.Equal(a1, a2) {
		t.Fatalf("identical array descriptors must compare equal")
	}
}

func TestEqual(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	ptrInt := in.Pointer(b.Int)
	ptrChar := in.Pointer(b.Char)
	fnII := in.Function(b.Int, []TypeID{b.Int}, false)
	fnII2 := in.Function(b.Int, []TypeID{b.Int}, false)
	fnNoProto := in.Function(b.Int, nil, false)
	s1 := in.Struct(8)
	s2 := in.Struct(8)

	tests := []struct {
		name string
		a, b TypeID
		want bool
	}{
		{"same primitive", b.Int, b.Int, true},
		{"signedness differs", b.Int, b.UnsignedInt, false},
		{"pointer same target", ptrInt, in.Pointer(b.Int), true},
		{"pointer different target", ptrInt, ptrChar, false},
		{"array length differs", in.Array(b.Int, 3), in.Array(b.Int, 4), false},
		{"array incomplete vs complete", in.Array(b.Int, 0), in.Array(b.Int, 4), false},
		{"function same prototype", fnII, fnII2, true},
		{"function prototype vs none", fnII, fnNoProto, false},
		{"function variadic differs", fnII, in.Function(b.Int, []TypeID{b.Int}, true), false},
		{"struct identity", s1, s1, true},
		{"struct distinct decls", s1, s2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", in.String(tt.a), in.String(tt.b), got, tt.want)
			}
		})
	}
}

func TestSizeOf(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	tests := []struct {
		name string
		id   TypeID
		want uint64
	}{
		{"char", b.Char, 1},
		{"int", b.Int, 4},
		{"long", b.Long, 8},
		{"double", b.Double, 8},
		{"long double", b.LongDouble, 16},
		{"pointer", in.Pointer(b.Char), 8},
		{"array", in.Array(b.Int, 10), 40},
		{"incomplete array", in.Array(b.Int, 0), 0},
		{"vla", in.VLArray(b.Int), 0},
		{"function", in.Function(b.Int, nil, false), 0},
		{"void", b.Void, 0},
		{"struct", in.Struct(24), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.SizeOf(tt.id); got != tt.want {
				t.Errorf("SizeOf(%s) = %d, want %d", in.String(tt.id), got, tt.want)
			}
		})
	}
}

func TestSetArrayLenCompletes(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	arr := in.Array(b.Char, 0)
	in.SetArrayLen(arr, 4)
	if got := in.ArrayLen(arr); got != 4 {
		t.Fatalf("ArrayLen = %d after completion, want 4", got)
	}
	if got := in.SizeOf(arr); got != 4 {
		t.Fatalf("SizeOf = %d after completion, want 4", got)
	}
}

func TestMembers(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got := in.Members(in.Function(b.Int, nil, false)); got != -1 {
		t.Errorf("Members(no prototype) = %d, want -1", got)
	}
	if got := in.Members(in.Function(b.Int, []TypeID{}, false)); got != 0 {
		t.Errorf("Members(void prototype) = %d, want 0", got)
	}
	if got := in.Members(in.Function(b.Int, []TypeID{b.Int, b.Char}, false)); got != 2 {
		t.Errorf("Members(two params) = %d, want 2", got)
	}
}

func TestString(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	tests := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "int"},
		{b.UnsignedLong, "unsigned long"},
		{in.Pointer(b.Char), "* char"},
		{in.Array(b.Char, 4), "[4] char"},
		{in.Array(b.Int, 0), "[] int"},
		{in.Function(b.Int, []TypeID{b.Int, b.Int}, false), "(int, int) -> int"},
		{in.Function(b.Int, nil, false), "(?) -> int"},
		{in.Function(b.Void, []TypeID{}, true), "(...) -> void"},
	}
	for _, tt := range tests {
		if got := in.String(tt.id); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
