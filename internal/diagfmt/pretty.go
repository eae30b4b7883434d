package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cfront/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>: <SEV> <CODE>: <Message>
// затем Notes с аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		if !d.Primary.IsZero() {
			fmt.Fprintf(w, "%s: ", d.Primary)
		}
		fmt.Fprintf(w, "%s %s: %s\n", severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			if note.Span.IsZero() {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
			} else {
				fmt.Fprintf(w, "  note: %s: %s\n", note.Span, note.Msg)
			}
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}
