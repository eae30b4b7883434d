package script

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"cfront/internal/ctype"
)

// TypeExpr is the syntax tree of the compact type notation used by
// declaration scripts: primitives by name, ptr(T), arr(N,T), arr(?,T),
// arr(*,T), fn(T,...)R, struct(N), union(N). Parsing is pure syntax;
// Build materializes descriptors in a type interner.
type TypeExpr struct {
	kind typeKind

	prim string // primitive spelling

	size uint32 // struct/union layout size

	elem *TypeExpr // ptr/arr element
	len  uint32    // arr element count, 0 when incomplete
	vla  bool

	params   []*TypeExpr // fn parameters, nil when no prototype
	variadic bool
	ret      *TypeExpr
}

type typeKind uint8

const (
	typePrim typeKind = iota
	typePointer
	typeArray
	typeFunction
	typeStruct
	typeUnion
)

// ParseTypeExpr parses the compact notation into a syntax tree. The
// error message carries no position; the caller owns the line number.
func ParseTypeExpr(s string) (*TypeExpr, error) {
	p := &typeParser{src: s}
	expr, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing %q after type", p.src[p.pos:])
	}
	return expr, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (*TypeExpr, error) {
	p.skipSpace()
	word := p.word()
	if word == "" {
		return nil, fmt.Errorf("expected a type at %q", p.src[p.pos:])
	}

	switch word {
	case "ptr":
		elem, err := p.parenOne()
		if err != nil {
			return nil, err
		}
		return &TypeExpr{kind: typePointer, elem: elem}, nil

	case "arr":
		return p.parseArray()

	case "fn":
		return p.parseFunction()

	case "struct", "union":
		kind := typeStruct
		if word == "union" {
			kind = typeUnion
		}
		size := uint32(0)
		if p.peek() == '(' {
			n, err := p.parenNumber()
			if err != nil {
				return nil, err
			}
			size = n
		}
		return &TypeExpr{kind: kind, size: size}, nil
	}

	if !isPrimitive(word) {
		return nil, fmt.Errorf("unknown type %q", word)
	}
	return &TypeExpr{kind: typePrim, prim: word}, nil
}

func isPrimitive(word string) bool {
	switch word {
	case "void", "char", "uchar", "short", "ushort", "int", "unsigned",
		"uint", "long", "ulong", "float", "double", "long-double":
		return true
	}
	return false
}

// parseArray handles arr(N,T), arr(?,T) for an incomplete length and
// arr(*,T) for a variably-modified array.
func (p *typeParser) parseArray() (*TypeExpr, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	p.skipSpace()

	expr := &TypeExpr{kind: typeArray}
	switch p.peek() {
	case '?':
		p.pos++
	case '*':
		p.pos++
		expr.vla = true
	default:
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		expr.len = n
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	expr.elem = elem
	return expr, p.expect(')')
}

// parseFunction handles fn(T1,T2)R, fn()R, fn(?)R for a missing
// prototype and a trailing ... for variadics.
func (p *typeParser) parseFunction() (*TypeExpr, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	p.skipSpace()

	expr := &TypeExpr{kind: typeFunction, params: []*TypeExpr{}}
	switch p.peek() {
	case '?':
		p.pos++
		expr.params = nil
	case ')':
	default:
		for {
			p.skipSpace()
			if strings.HasPrefix(p.src[p.pos:], "...") {
				p.pos += 3
				expr.variadic = true
				break
			}
			param, err := p.parse()
			if err != nil {
				return nil, err
			}
			expr.params = append(expr.params, param)
			p.skipSpace()
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	ret, err := p.parse()
	if err != nil {
		return nil, err
	}
	expr.ret = ret
	return expr, nil
}

func (p *typeParser) parenOne() (*TypeExpr, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	return elem, p.expect(')')
}

func (p *typeParser) parenNumber() (uint32, error) {
	if err := p.expect('('); err != nil {
		return 0, err
	}
	p.skipSpace()
	n, err := p.number()
	if err != nil {
		return 0, err
	}
	return n, p.expect(')')
}

func (p *typeParser) number() (uint32, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected a number at %q", p.src[start:])
	}
	v, err := strconv.ParseUint(p.src[start:p.pos], 10, 64)
	if err != nil {
		return 0, err
	}
	n, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("length %d out of range", v)
	}
	return n, nil
}

// word consumes a run of lowercase letters, digits and dashes.
func (p *typeParser) word() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("expected %q at %q", string(c), p.src[p.pos:])
	}
	p.pos++
	return nil
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// Build materializes the expression in ti and returns the descriptor ID.
func (e *TypeExpr) Build(ti *ctype.Interner) ctype.TypeID {
	b := ti.Builtins()
	switch e.kind {
	case typePrim:
		switch e.prim {
		case "void":
			return b.Void
		case "char":
			return b.Char
		case "uchar":
			return b.UnsignedChar
		case "short":
			return b.Short
		case "ushort":
			return b.UnsignedShort
		case "int":
			return b.Int
		case "unsigned", "uint":
			return b.UnsignedInt
		case "long":
			return b.Long
		case "ulong":
			return b.UnsignedLong
		case "float":
			return b.Float
		case "double":
			return b.Double
		case "long-double":
			return b.LongDouble
		}
	case typePointer:
		return ti.Pointer(e.elem.Build(ti))
	case typeArray:
		if e.vla {
			return ti.VLArray(e.elem.Build(ti))
		}
		return ti.Array(e.elem.Build(ti), e.len)
	case typeFunction:
		var params []ctype.TypeID
		if e.params != nil {
			params = make([]ctype.TypeID, len(e.params))
			for i, p := range e.params {
				params[i] = p.Build(ti)
			}
		}
		return ti.Function(e.ret.Build(ti), params, e.variadic)
	case typeStruct:
		return ti.Struct(e.size)
	case typeUnion:
		return ti.Union(e.size)
	}
	return ctype.NoTypeID
}

// IsReal reports whether the expression names a floating primitive,
// before any interner is involved. Constants use it to pick between an
// integer and a floating payload.
func (e *TypeExpr) IsReal() bool {
	if e.kind != typePrim {
		return false
	}
	switch e.prim {
	case "float", "double", "long-double":
		return true
	}
	return false
}
