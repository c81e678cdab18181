// Package scanner implements a single-pass lexical scanner over
// ECMAScript source text. It locates import/export syntax by byte
// offset without building a syntax tree.
package scanner

// ImportRecord is the sealed union of the three shapes an import site
// can take: a static `import "..."`, a dynamic `import(...)` call, or
// an `import.meta` expression. Exactly one of StaticImport,
// DynamicImport, or MetaImport implements it.
type ImportRecord interface {
	importRecord()
}

// StaticImport is emitted for `import "mod"`, `import x from "mod"`,
// `import { a, b } from "mod"`, `import * as ns from "mod"`, and
// `export { a } from "mod"` style re-exports.
//
// SpecifierStart..SpecifierEnd bounds the specifier contents with the
// surrounding quotes excluded. StatementEnd is the byte position just
// after the closing quote.
type StaticImport struct {
	StatementStart int
	SpecifierStart int
	SpecifierEnd   int
	StatementEnd   int
}

func (StaticImport) importRecord() {}

// DynamicImport is emitted for a call-like `import(expr)`.
// SpecifierExprEnd is unset (sentinel -1) until the matching `)` is
// reached, at which point it is patched in place.
type DynamicImport struct {
	StatementStart     int
	SpecifierExprStart int
	SpecifierExprEnd   int
}

func (*DynamicImport) importRecord() {}

// unpatchedSentinel marks a DynamicImport whose closing paren has not
// yet been seen.
const unpatchedSentinel = -1

// MetaImport is emitted for the expression `import.meta`. Start/End
// cover the literal sequence beginning with the `import` keyword and
// ending just after `meta`.
type MetaImport struct {
	StatementStart int
	Start          int
	End            int
	StatementEnd   int
}

func (MetaImport) importRecord() {}

// Export is emitted once per exported binding name. A default export
// is represented as a range covering the literal word `default`.
type Export struct {
	NameStart int
	NameEnd   int
}

// ScanResult is the output of a successful Parse: every import site
// and exported name in encounter order.
type ScanResult struct {
	Imports []ImportRecord
	Exports []Export
}
