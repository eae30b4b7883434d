package script

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"cfront/internal/diag"
	"cfront/internal/source"
	"cfront/internal/symtab"
)

// Op identifies a script directive.
type Op uint8

const (
	OpPush Op = iota
	OpPop
	OpDecl
	OpTypedef
	OpTag
	OpLabel
	OpTemp
	OpDiscard
	OpString
	OpConst
	OpLookup
	OpDump
	OpYield
	OpBuiltins
)

func (op Op) String() string {
	switch op {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpDecl:
		return "decl"
	case OpTypedef:
		return "typedef"
	case OpTag:
		return "tag"
	case OpLabel:
		return "label"
	case OpTemp:
		return "temp"
	case OpDiscard:
		return "discard"
	case OpString:
		return "string"
	case OpConst:
		return "const"
	case OpLookup:
		return "lookup"
	case OpDump:
		return "dump"
	case OpYield:
		return "yield"
	case OpBuiltins:
		return "builtins"
	}
	return "unknown"
}

// NamespaceID selects one of the table's three namespaces.
type NamespaceID uint8

const (
	NsIdent NamespaceID = iota
	NsLabel
	NsTag
)

func (ns NamespaceID) String() string {
	switch ns {
	case NsIdent:
		return "ident"
	case NsLabel:
		return "label"
	case NsTag:
		return "tag"
	}
	return "unknown"
}

// Stmt is one parsed directive. Only the fields the Op consumes carry
// meaning; everything else is left zero.
type Stmt struct {
	Op   Op
	Span source.Span

	Ns   NamespaceID       // push/pop/lookup/dump/yield
	Name string            // decl/typedef/tag/label/lookup
	Type *TypeExpr         // decl/typedef/tag/temp/const
	Kind symtab.SymbolKind // decl/label
	Link symtab.Linkage    // decl

	Text  string // string payload
	Int   uint64 // const integer payload
	Float float64
}

// Parse reads a declaration script, one directive per line, and returns
// the statements in order. Malformed lines are reported through r and
// skipped; parsing always continues to the end of the input.
func Parse(file string, src []byte, r diag.Reporter) []Stmt {
	var stmts []Stmt
	sc := bufio.NewScanner(bytes.NewReader(src))
	line := uint32(0)
	for sc.Scan() {
		line++
		fields, err := splitLine(sc.Text())
		if err != nil {
			reportParse(r, diag.ScriptBadOperand, file, line, err.Error())
			continue
		}
		if len(fields) == 0 {
			continue
		}
		stmt, err := parseStmt(fields)
		if err != nil {
			code := diag.ScriptBadOperand
			switch {
			case strings.HasPrefix(err.Error(), "unknown directive"):
				code = diag.ScriptUnknownDirective
			case strings.HasPrefix(err.Error(), "bad type"):
				code = diag.ScriptBadType
			case strings.HasPrefix(err.Error(), "bad constant"):
				code = diag.ScriptBadConstant
			}
			reportParse(r, code, file, line, err.Error())
			continue
		}
		stmt.Span = source.Span{File: file, Line: line}
		stmts = append(stmts, stmt)
	}
	if err := sc.Err(); err != nil {
		reportParse(r, diag.ScriptBadOperand, file, line, err.Error())
	}
	return stmts
}

func reportParse(r diag.Reporter, code diag.Code, file string, line uint32, msg string) {
	diag.ReportError(r, code, source.Span{File: file, Line: line}, msg).Emit()
}

// splitLine breaks a line into fields, honoring double-quoted strings
// and stripping # comments outside them. Quoted fields keep their quotes
// so the directive parser can tell them apart from bare words.
func splitLine(text string) ([]string, error) {
	var fields []string
	i := 0
	for i < len(text) {
		switch c := text[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			return fields, nil
		case c == '"':
			j := i + 1
			for j < len(text) {
				if text[j] == '\\' {
					j += 2
					continue
				}
				if text[j] == '"' {
					break
				}
				j++
			}
			if j >= len(text) {
				return nil, fmt.Errorf("unterminated string literal")
			}
			fields = append(fields, text[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(text) && text[j] != ' ' && text[j] != '\t' && text[j] != '#' {
				j++
			}
			fields = append(fields, text[i:j])
			i = j
		}
	}
	return fields, nil
}

func parseStmt(fields []string) (Stmt, error) {
	op := fields[0]
	args := fields[1:]
	switch op {
	case "push", "pop", "dump", "yield", "lookup":
		return parseNamespaceStmt(op, args)
	case "decl":
		return parseDecl(args)
	case "typedef":
		return parseTypedef(args)
	case "tag":
		return parseTag(args)
	case "label":
		return parseLabel(args)
	case "temp":
		return parseTemp(args)
	case "discard":
		if len(args) != 0 {
			return Stmt{}, fmt.Errorf("discard takes no operands")
		}
		return Stmt{Op: OpDiscard}, nil
	case "string":
		return parseString(args)
	case "const":
		return parseConst(args)
	case "builtins":
		if len(args) != 0 {
			return Stmt{}, fmt.Errorf("builtins takes no operands")
		}
		return Stmt{Op: OpBuiltins}, nil
	}
	return Stmt{}, fmt.Errorf("unknown directive %q", op)
}

func parseNamespaceStmt(op string, args []string) (Stmt, error) {
	stmt := Stmt{}
	switch op {
	case "push":
		stmt.Op = OpPush
	case "pop":
		stmt.Op = OpPop
	case "dump":
		stmt.Op = OpDump
	case "yield":
		stmt.Op = OpYield
	case "lookup":
		stmt.Op = OpLookup
	}

	want := 1
	if stmt.Op == OpLookup {
		want = 2
	}
	if len(args) != want {
		return Stmt{}, fmt.Errorf("%s wants %d operand(s), got %d", op, want, len(args))
	}
	ns, err := parseNamespace(args[0])
	if err != nil {
		return Stmt{}, err
	}
	stmt.Ns = ns
	if stmt.Op == OpLookup {
		stmt.Name = args[1]
	}
	return stmt, nil
}

func parseNamespace(word string) (NamespaceID, error) {
	switch word {
	case "ident":
		return NsIdent, nil
	case "label":
		return NsLabel, nil
	case "tag":
		return NsTag, nil
	}
	return 0, fmt.Errorf("unknown namespace %q", word)
}

// decl NAME TYPE LINKAGE KIND
func parseDecl(args []string) (Stmt, error) {
	if len(args) != 4 {
		return Stmt{}, fmt.Errorf("decl wants NAME TYPE LINKAGE KIND, got %d operand(s)", len(args))
	}
	typ, err := ParseTypeExpr(args[1])
	if err != nil {
		return Stmt{}, fmt.Errorf("bad type %q: %v", args[1], err)
	}
	link, err := parseLinkage(args[2])
	if err != nil {
		return Stmt{}, err
	}
	kind, err := parseKind(args[3])
	if err != nil {
		return Stmt{}, err
	}
	return Stmt{Op: OpDecl, Name: args[0], Type: typ, Link: link, Kind: kind}, nil
}

func parseLinkage(word string) (symtab.Linkage, error) {
	switch word {
	case "extern":
		return symtab.LinkExtern, nil
	case "intern":
		return symtab.LinkIntern, nil
	case "none":
		return symtab.LinkNone, nil
	}
	return 0, fmt.Errorf("unknown linkage %q", word)
}

func parseKind(word string) (symtab.SymbolKind, error) {
	switch word {
	case "declaration":
		return symtab.SymbolDeclaration, nil
	case "tentative":
		return symtab.SymbolTentative, nil
	case "definition":
		return symtab.SymbolDefinition, nil
	}
	return 0, fmt.Errorf("unknown kind %q", word)
}

// typedef NAME TYPE
func parseTypedef(args []string) (Stmt, error) {
	if len(args) != 2 {
		return Stmt{}, fmt.Errorf("typedef wants NAME TYPE, got %d operand(s)", len(args))
	}
	typ, err := ParseTypeExpr(args[1])
	if err != nil {
		return Stmt{}, fmt.Errorf("bad type %q: %v", args[1], err)
	}
	return Stmt{Op: OpTypedef, Name: args[0], Type: typ}, nil
}

// tag NAME TYPE
func parseTag(args []string) (Stmt, error) {
	if len(args) != 2 {
		return Stmt{}, fmt.Errorf("tag wants NAME TYPE, got %d operand(s)", len(args))
	}
	typ, err := ParseTypeExpr(args[1])
	if err != nil {
		return Stmt{}, fmt.Errorf("bad type %q: %v", args[1], err)
	}
	return Stmt{Op: OpTag, Name: args[0], Type: typ}, nil
}

// label NAME use|define
func parseLabel(args []string) (Stmt, error) {
	if len(args) != 2 {
		return Stmt{}, fmt.Errorf("label wants NAME use|define, got %d operand(s)", len(args))
	}
	stmt := Stmt{Op: OpLabel, Name: args[0]}
	switch args[1] {
	case "use":
		stmt.Kind = symtab.SymbolTentative
	case "define":
		stmt.Kind = symtab.SymbolDefinition
	default:
		return Stmt{}, fmt.Errorf("label wants use or define, got %q", args[1])
	}
	return stmt, nil
}

// temp TYPE
func parseTemp(args []string) (Stmt, error) {
	if len(args) != 1 {
		return Stmt{}, fmt.Errorf("temp wants TYPE, got %d operand(s)", len(args))
	}
	typ, err := ParseTypeExpr(args[0])
	if err != nil {
		return Stmt{}, fmt.Errorf("bad type %q: %v", args[0], err)
	}
	return Stmt{Op: OpTemp, Type: typ}, nil
}

// string "text"
func parseString(args []string) (Stmt, error) {
	if len(args) != 1 {
		return Stmt{}, fmt.Errorf("string wants one quoted operand, got %d", len(args))
	}
	text, err := strconv.Unquote(args[0])
	if err != nil {
		return Stmt{}, fmt.Errorf("bad string literal %s: %v", args[0], err)
	}
	return Stmt{Op: OpString, Text: text}, nil
}

// const TYPE VALUE
func parseConst(args []string) (Stmt, error) {
	if len(args) != 2 {
		return Stmt{}, fmt.Errorf("const wants TYPE VALUE, got %d operand(s)", len(args))
	}
	typ, err := ParseTypeExpr(args[0])
	if err != nil {
		return Stmt{}, fmt.Errorf("bad type %q: %v", args[0], err)
	}
	stmt := Stmt{Op: OpConst, Type: typ}
	if typ.IsReal() {
		f, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Stmt{}, fmt.Errorf("bad constant %q: %v", args[1], err)
		}
		stmt.Float = f
		return stmt, nil
	}
	if strings.HasPrefix(args[1], "-") {
		v, err := strconv.ParseInt(args[1], 0, 64)
		if err != nil {
			return Stmt{}, fmt.Errorf("bad constant %q: %v", args[1], err)
		}
		stmt.Int = uint64(v)
		return stmt, nil
	}
	v, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return Stmt{}, fmt.Errorf("bad constant %q: %v", args[1], err)
	}
	stmt.Int = v
	return stmt, nil
}
