package script

import (
	"testing"

	"cfront/internal/ctype"
)

func TestParseTypeExprRendering(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"unsigned", "unsigned int"},
		{"uchar", "unsigned char"},
		{"long-double", "long double"},
		{"ptr(char)", "* char"},
		{"ptr(ptr(void))", "* * void"},
		{"arr(3,int)", "[3] int"},
		{"arr(?,double)", "[] double"},
		{"arr(*,int)", "[*] int"},
		{"fn(int,int)int", "(int, int) -> int"},
		{"fn()void", "() -> void"},
		{"fn(?)int", "(?) -> int"},
		{"fn(ptr(char),...)int", "(* char, ...) -> int"},
		{"struct(8)", "struct"},
		{"union(16)", "union"},
		{"arr(2,ptr(fn(int)void))", "[2] * (int) -> void"},
	}
	ti := ctype.NewInterner()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := ParseTypeExpr(tt.in)
			if err != nil {
				t.Fatalf("ParseTypeExpr(%q): %v", tt.in, err)
			}
			if got := ti.String(expr.Build(ti)); got != tt.want {
				t.Errorf("ParseTypeExpr(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTypeExprErrors(t *testing.T) {
	bad := []string{
		"",
		"in t",
		"banana",
		"ptr(",
		"ptr()",
		"arr(3)",
		"arr(x,int)",
		"fn(int)",
		"int extra",
		"arr(5000000000,int)",
	}
	for _, in := range bad {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTypeExpr(in); err == nil {
				t.Errorf("ParseTypeExpr(%q) accepted malformed input", in)
			}
		})
	}
}

func TestTypeExprIsReal(t *testing.T) {
	real := []string{"float", "double", "long-double"}
	for _, in := range real {
		expr, err := ParseTypeExpr(in)
		if err != nil {
			t.Fatalf("ParseTypeExpr(%q): %v", in, err)
		}
		if !expr.IsReal() {
			t.Errorf("IsReal(%q) = false, want true", in)
		}
	}
	expr, err := ParseTypeExpr("ptr(double)")
	if err != nil {
		t.Fatalf("ParseTypeExpr: %v", err)
	}
	if expr.IsReal() {
		t.Errorf("IsReal(ptr(double)) = true, want false")
	}
}

func TestBuildSharesPrimitivesOnly(t *testing.T) {
	ti := ctype.NewInterner()
	intExpr, err := ParseTypeExpr("int")
	if err != nil {
		t.Fatal(err)
	}
	if intExpr.Build(ti) != intExpr.Build(ti) {
		t.Errorf("primitive builds are not shared")
	}
	str, err := ParseTypeExpr("struct(8)")
	if err != nil {
		t.Fatal(err)
	}
	if str.Build(ti) == str.Build(ti) {
		t.Errorf("aggregate builds are shared, want fresh descriptors")
	}
}
