// Package diag defines the diagnostic model shared by the symbol table,
// the script front and the driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by script parsing and declaration processing.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span (file plus line) pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Fatal diagnostics
//
// Classic C front-ends report a semantic conflict and terminate the
// translation unit. Bailout models that: producers report through their
// Reporter, then panic with a Bailout which only the driver recovers (see
// bailout.go). Everything below the driver treats Bailout as opaque.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage,
// either directly or through a ReportBuilder chain such as
// ReportError(...).WithNote(...).Emit(). diag.BagReporter aggregates
// diagnostics into a Bag, which supports sorting and deduplication.
package diag
