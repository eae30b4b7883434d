package symtab

import (
	"fmt"

	"github.com/rs/zerolog"

	"cfront/internal/ctype"
	"cfront/internal/diag"
	"cfront/internal/source"
)

// Options configure a Table. A nil Reporter discards diagnostics, a nil
// Logger disables the declaration trace.
type Options struct {
	Reporter diag.Reporter
	Logger   *zerolog.Logger
}

// Table bundles all mutable state of the symbol table for one translation
// unit: the three namespaces, the cross-scope function registry, the
// recycle pool for temporaries and labels, the cached memcpy declaration
// and the disambiguation counters. Nothing here is shared between
// translation units and nothing is safe for concurrent use.
type Table struct {
	Idents *Namespace
	Labels *Namespace
	Tags   *Namespace

	names *source.Interner
	types *ctype.Interner

	reporter diag.Reporter
	log      zerolog.Logger

	// recycled holds symbol records returned through Discard, reused by
	// the synthetic constructors to cut allocator churn across function
	// bodies.
	recycled []*Symbol
	// allocations counts fresh records handed out, pool hits excluded.
	allocations int

	// functions tracks every function declaration of the translation
	// unit regardless of scope, so a forward declaration inside one
	// function body and the definition at file scope unify into a
	// single symbol.
	functions map[source.NameID]*Symbol

	// Memcpy caches the first symbol spelled "memcpy"; the IR emitter
	// calls it for block copies even when user code never mentions it.
	Memcpy     *Symbol
	memcpyName source.NameID

	// Synthetic name handles, interned once.
	tempName    source.NameID
	unnamedName source.NameID
	constName   source.NameID
	stringName  source.NameID
	labelName   source.NameID

	tempCount    int
	unnamedCount int
	constCount   int
	stringCount  int
	labelCount   int
	staticCount  int
}

// New constructs an empty table over the given name and type interners.
func New(names *source.Interner, types *ctype.Interner, opts Options) *Table {
	if names == nil {
		names = source.NewInterner()
	}
	if types == nil {
		types = ctype.NewInterner()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Table{
		Idents:      newNamespace("identifiers"),
		Labels:      newNamespace("labels"),
		Tags:        newNamespace("tags"),
		names:       names,
		types:       types,
		reporter:    reporter,
		log:         log,
		functions:   make(map[source.NameID]*Symbol),
		memcpyName:  names.Intern("memcpy"),
		tempName:    names.Intern(prefixTemporary),
		unnamedName: names.Intern(prefixUnnamed),
		constName:   names.Intern(prefixConstant),
		stringName:  names.Intern(prefixString),
		labelName:   names.Intern(prefixLabel),
	}
}

// Names returns the name interner the table was built over.
func (t *Table) Names() *source.Interner { return t.names }

// Types returns the type interner the table was built over.
func (t *Table) Types() *ctype.Interner { return t.types }

// Allocations reports how many fresh symbol records were allocated,
// excluding pool reuse.
func (t *Table) Allocations() int { return t.allocations }

type bailoutKind uint8

const (
	incompatibleBailout bailoutKind = iota
	conflictingBailout
	mismatchBailout
	duplicateBailout
	undefinedLabelBailout
)

func (t *Table) bailout(kind bailoutKind) {
	code := diag.SymIncompatibleDeclaration
	switch kind {
	case conflictingBailout:
		code = diag.SymConflictingTypes
	case mismatchBailout:
		code = diag.SymRedeclarationMismatch
	case duplicateBailout:
		code = diag.SymDuplicateDefinition
	case undefinedLabelBailout:
		code = diag.SymUndefinedLabel
	}
	panic(diag.Bailout{Code: code})
}

func (t *Table) fatalf(kind bailoutKind, code diag.Code, format string, args ...any) {
	diag.ReportError(t.reporter, code, source.Span{}, fmt.Sprintf(format, args...)).Emit()
	t.bailout(kind)
}

func (t *Table) reportUndefinedLabel(sym *Symbol) {
	diag.ReportError(t.reporter, diag.SymUndefinedLabel, source.Span{},
		fmt.Sprintf("undefined label '%s'", t.SymbolName(sym))).Emit()
}
