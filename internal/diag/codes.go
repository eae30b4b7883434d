package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Declaration script surface
	ScriptInfo             Code = 1000
	ScriptUnknownDirective Code = 1001
	ScriptBadOperand       Code = 1002
	ScriptBadType          Code = 1003
	ScriptBadConstant      Code = 1004
	ScriptUnbalancedScope  Code = 1005
	ScriptUnknownSymbol    Code = 1006

	// Symbol table semantics (все фатальные, кроме SymInfo)
	SymInfo                     Code = 3000
	SymIncompatibleDeclaration  Code = 3001
	SymConflictingTypes         Code = 3002
	SymRedeclarationMismatch    Code = 3003
	SymDuplicateDefinition      Code = 3004
	SymUndefinedLabel           Code = 3005

	// I/O and driver
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Configuration
	CfgInfo      Code = 5000
	CfgBadConfig Code = 5001
)

// ID returns the stable textual identifier rendered next to messages.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SYM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string { return c.ID() }

var codeDescription = map[Code]string{
	UnknownCode:                "unknown error",
	ScriptInfo:                 "script note",
	ScriptUnknownDirective:     "unknown script directive",
	ScriptBadOperand:           "malformed directive operand",
	ScriptBadType:              "malformed type notation",
	ScriptBadConstant:          "malformed constant literal",
	ScriptUnbalancedScope:      "pop without matching push",
	ScriptUnknownSymbol:        "name not visible in any scope",
	SymInfo:                    "symbol table note",
	SymIncompatibleDeclaration: "incompatible declaration",
	SymConflictingTypes:        "conflicting types",
	SymRedeclarationMismatch:   "declaration does not match prior declaration",
	SymDuplicateDefinition:     "duplicate definition",
	SymUndefinedLabel:          "undefined label",
	IOInfo:                     "i/o note",
	IOLoadFileError:            "failed to load file",
	IOCacheError:               "disk cache failure",
	CfgInfo:                    "configuration note",
	CfgBadConfig:               "malformed configuration file",
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}
