// Package script drives the symbol table from line-oriented declaration
// scripts. Each line is one directive: scope pushes and pops, symbol
// declarations with a compact type notation, label uses and definitions,
// synthetic temporaries, constants and string literals, plus lookup,
// dump and yield directives that produce output. The format exists to
// exercise the table without a C parser in front of it.
package script
