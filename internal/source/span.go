package source

import "fmt"

// Span points at the input that provoked a diagnostic. Declaration
// scripts are line-oriented, so a file plus a 1-based line is enough;
// Line 0 means the whole file.
type Span struct {
	File string
	Line uint32
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool { return s.File == "" && s.Line == 0 }

func (s Span) String() string {
	if s.File == "" {
		return "<none>"
	}
	if s.Line == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}
