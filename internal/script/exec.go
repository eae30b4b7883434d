package script

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cfront/internal/diag"
	"cfront/internal/symtab"
)

// Options configure script execution. A nil Reporter discards
// diagnostics, a nil Logger disables the declaration trace.
type Options struct {
	Reporter diag.Reporter
	Logger   *zerolog.Logger
}

// Result is the outcome of running one script: the text produced by
// dump, lookup and yield directives, and whether execution was cut
// short by a fatal table error.
type Result struct {
	Output string
	Failed bool
}

// Run parses and executes a declaration script against a fresh table.
func Run(file string, src []byte, opts Options) *Result {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	stmts := Parse(file, src, reporter)
	return Exec(stmts, Options{Reporter: reporter, Logger: opts.Logger})
}

// Exec runs parsed statements in order against a fresh table. Script
// mistakes (unknown symbol, unbalanced pop, stray discard) are reported
// and skipped; fatal table errors stop execution. Scopes still open when
// the statements run out are closed, so teardown diagnostics such as
// undefined labels always surface.
func Exec(stmts []Stmt, opts Options) *Result {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	ex := &executor{
		table:    symtab.New(nil, nil, symtab.Options{Reporter: reporter, Logger: opts.Logger}),
		reporter: reporter,
		defined:  make(map[string]bool),
	}
	res := &Result{}
	ex.run(stmts, res)
	res.Output = ex.out.String()
	return res
}

type executor struct {
	table    *symtab.Table
	reporter diag.Reporter
	out      strings.Builder

	// depth mirrors the live scope count per namespace so unbalanced
	// pops can be rejected before they hit the table.
	depth [3]int

	// temps holds live compiler temporaries; discard releases the most
	// recent one.
	temps []*symtab.Symbol

	// defined tracks label spellings already defined in the current
	// label scope. A second definition is the duplicate-label error.
	defined map[string]bool
}

func (ex *executor) run(stmts []Stmt, res *Result) {
	defer diag.RecoverBailout(&res.Failed)
	for i := range stmts {
		ex.exec(&stmts[i])
	}
	// Close anything the script left open, innermost namespaces first so
	// label teardown can still report against a live identifier list.
	for ns := NsTag; ; ns-- {
		for ex.depth[ns] > 0 {
			ex.exec(&Stmt{Op: OpPop, Ns: ns})
		}
		if ns == NsIdent {
			break
		}
	}
}

func (ex *executor) exec(stmt *Stmt) {
	switch stmt.Op {
	case OpPush:
		ex.table.PushScope(ex.namespace(stmt.Ns))
		ex.depth[stmt.Ns]++
		if stmt.Ns == NsLabel {
			clear(ex.defined)
		}

	case OpPop:
		if ex.depth[stmt.Ns] == 0 {
			ex.errorf(stmt, diag.ScriptUnbalancedScope, "pop %s without a matching push", stmt.Ns)
			return
		}
		ex.depth[stmt.Ns]--
		ex.table.PopScope(ex.namespace(stmt.Ns))

	case OpDecl:
		if !ex.requireScope(stmt, NsIdent) {
			return
		}
		name := ex.table.Names().Intern(stmt.Name)
		ex.table.Add(ex.table.Idents, name, stmt.Type.Build(ex.table.Types()), stmt.Kind, stmt.Link)

	case OpTypedef:
		if !ex.requireScope(stmt, NsIdent) {
			return
		}
		name := ex.table.Names().Intern(stmt.Name)
		ex.table.Add(ex.table.Idents, name, stmt.Type.Build(ex.table.Types()), symtab.SymbolTypedef, symtab.LinkNone)

	case OpTag:
		if !ex.requireScope(stmt, NsTag) {
			return
		}
		name := ex.table.Names().Intern(stmt.Name)
		ex.table.Add(ex.table.Tags, name, stmt.Type.Build(ex.table.Types()), symtab.SymbolTag, symtab.LinkNone)

	case OpLabel:
		if !ex.requireScope(stmt, NsLabel) {
			return
		}
		ex.execLabel(stmt)

	case OpTemp:
		ex.temps = append(ex.temps, ex.table.NewTemporary(stmt.Type.Build(ex.table.Types())))

	case OpDiscard:
		if len(ex.temps) == 0 {
			ex.errorf(stmt, diag.ScriptBadOperand, "discard with no live temporary")
			return
		}
		last := ex.temps[len(ex.temps)-1]
		ex.temps = ex.temps[:len(ex.temps)-1]
		ex.table.Discard(last)

	case OpString:
		ex.table.NewString(stmt.Text)

	case OpConst:
		val := symtab.Value{Int: stmt.Int, Float: stmt.Float}
		ex.table.NewConstant(stmt.Type.Build(ex.table.Types()), val)

	case OpLookup:
		name := ex.table.Names().Intern(stmt.Name)
		sym := ex.table.Lookup(ex.namespace(stmt.Ns), name)
		if sym == nil {
			ex.errorf(stmt, diag.ScriptUnknownSymbol, "no symbol %q in namespace %s", stmt.Name, stmt.Ns)
			return
		}
		fmt.Fprintf(&ex.out, "lookup %s :: %s\n", ex.table.SymbolName(sym), ex.table.Types().String(sym.Type))

	case OpDump:
		ex.table.Dump(&ex.out, ex.namespace(stmt.Ns))

	case OpYield:
		ns := ex.namespace(stmt.Ns)
		for {
			sym := ex.table.YieldDeclaration(ns)
			if sym == nil {
				break
			}
			fmt.Fprintf(&ex.out, "yield %s :: %s\n", ex.table.SymbolName(sym), ex.table.Types().String(sym.Type))
		}

	case OpBuiltins:
		ex.table.RegisterBuiltins()
	}
}

// execLabel routes goto uses and label definitions through the label
// namespace. Defining the same label twice in one function is fatal.
func (ex *executor) execLabel(stmt *Stmt) {
	if stmt.Kind == symtab.SymbolDefinition {
		if ex.defined[stmt.Name] {
			diag.ReportError(ex.reporter, diag.SymDuplicateDefinition, stmt.Span,
				fmt.Sprintf("duplicate label '%s'", stmt.Name)).Emit()
			panic(diag.Bailout{Code: diag.SymDuplicateDefinition})
		}
		ex.defined[stmt.Name] = true
	}
	name := ex.table.Names().Intern(stmt.Name)
	void := ex.table.Types().Builtins().Void
	ex.table.Add(ex.table.Labels, name, void, stmt.Kind, symtab.LinkIntern)
}

func (ex *executor) namespace(ns NamespaceID) *symtab.Namespace {
	switch ns {
	case NsLabel:
		return ex.table.Labels
	case NsTag:
		return ex.table.Tags
	}
	return ex.table.Idents
}

func (ex *executor) requireScope(stmt *Stmt, ns NamespaceID) bool {
	if ex.depth[ns] == 0 {
		ex.errorf(stmt, diag.ScriptUnbalancedScope, "%s before any push %s", stmt.Op, ns)
		return false
	}
	return true
}

func (ex *executor) errorf(stmt *Stmt, code diag.Code, format string, args ...any) {
	diag.ReportError(ex.reporter, code, stmt.Span, fmt.Sprintf(format, args...)).Emit()
}
