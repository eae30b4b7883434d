package diag

import "fmt"

// Bailout unwinds the stack after a fatal diagnostic has been reported.
// The symbol table reports the error through its Reporter first and then
// panics with a Bailout; only the driver recovers it. This keeps the
// report-then-terminate contract of a classic compiler front-end without
// taking down the whole process.
type Bailout struct {
	Code Code
}

func (b Bailout) Error() string {
	return fmt.Sprintf("fatal diagnostic %s (%s)", b.Code.ID(), b.Code.Title())
}

// RecoverBailout converts a Bailout panic into a normal return value.
// Any other panic is re-raised. Use in a deferred call:
//
//	defer diag.RecoverBailout(&fatal)
func RecoverBailout(out *bool) {
	switch r := recover().(type) {
	case nil:
	case Bailout:
		if out != nil {
			*out = true
		}
	default:
		panic(r)
	}
}
