package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustParse(t *testing.T, src string) ScanResult {
	t.Helper()
	res, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", src, err)
	}
	return res
}

func diffResult(t *testing.T, name string, got, want ScanResult) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("%s: result mismatch (-want +got):\n%s", name, diff)
	}
}

func TestStaticImportBare(t *testing.T) {
	src := `import './a.js';`
	got := mustParse(t, src)
	want := ScanResult{
		Imports: []ImportRecord{
			StaticImport{StatementStart: 0, SpecifierStart: 8, SpecifierEnd: 14, StatementEnd: 15},
		},
	}
	diffResult(t, "bare static import", got, want)
	if src[8:14] != "./a.js" {
		t.Fatalf("specifier slice = %q, want ./a.js", src[8:14])
	}
}

func TestStaticImportNamedWithFrom(t *testing.T) {
	src := `import { s as p } from './b.js';`
	got := mustParse(t, src)
	if len(got.Exports) != 0 {
		t.Fatalf("got %d exports, want 0", len(got.Exports))
	}
	if len(got.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(got.Imports))
	}
	si, ok := got.Imports[0].(StaticImport)
	if !ok {
		t.Fatalf("import[0] is %T, want StaticImport", got.Imports[0])
	}
	if slice := src[si.SpecifierStart:si.SpecifierEnd]; slice != "./b.js" {
		t.Fatalf("specifier slice = %q, want ./b.js", slice)
	}
}

func TestExportVarCommaListWithUnicodeIdent(t *testing.T) {
	src := "export var p\U00013000s,q"
	got := mustParse(t, src)
	if len(got.Imports) != 0 {
		t.Fatalf("got %d imports, want 0", len(got.Imports))
	}
	if len(got.Exports) != 2 {
		t.Fatalf("got %d exports, want 2: %+v", len(got.Exports), got.Exports)
	}
	first := src[got.Exports[0].NameStart:got.Exports[0].NameEnd]
	second := src[got.Exports[1].NameStart:got.Exports[1].NameEnd]
	if first != "p\U00013000s" {
		t.Errorf("export[0] slice = %q, want p\U00013000s", first)
	}
	if second != "q" {
		t.Errorf("export[1] slice = %q, want q", second)
	}
}

func TestExportNamedListRejectsInitializer(t *testing.T) {
	src := `export { a = };`
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatalf("expected error, got none")
	}
	if err.Index != 11 {
		t.Errorf("error index = %d, want 11", err.Index)
	}
	if err.Reason != ReasonInvalidExportToken {
		t.Errorf("error reason = %q, want %q", err.Reason, ReasonInvalidExportToken)
	}
}

func TestDivisionAfterReturnedIdentifier(t *testing.T) {
	src := `function variance(){return s/(a-1)}`
	got := mustParse(t, src)
	if len(got.Imports) != 0 || len(got.Exports) != 0 {
		t.Fatalf("got imports=%d exports=%d, want 0,0", len(got.Imports), len(got.Exports))
	}
}

func TestRegexInsideTemplateSubstitution(t *testing.T) {
	src := "`${/test/ + 5}`"
	got := mustParse(t, src)
	if len(got.Imports) != 0 || len(got.Exports) != 0 {
		t.Fatalf("got imports=%d exports=%d, want 0,0", len(got.Imports), len(got.Exports))
	}
}

func TestMethodNamedImportIsRetracted(t *testing.T) {
	src := `({ import(x) {} })`
	got := mustParse(t, src)
	if len(got.Imports) != 0 {
		t.Fatalf("got %d imports, want 0 (method named import)", len(got.Imports))
	}
}

func TestDynamicImportAtTopLevel(t *testing.T) {
	src := `import(y)`
	got := mustParse(t, src)
	if len(got.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(got.Imports))
	}
	di, ok := got.Imports[0].(*DynamicImport)
	if !ok {
		t.Fatalf("import[0] is %T, want *DynamicImport", got.Imports[0])
	}
	if slice := src[di.SpecifierExprStart:di.SpecifierExprEnd]; slice != "y" {
		t.Errorf("specifier expr slice = %q, want y", slice)
	}
}

func TestDynamicImportMethodCallIsIgnored(t *testing.T) {
	src := `obj.import(x)`
	got := mustParse(t, src)
	if len(got.Imports) != 0 {
		t.Fatalf("got %d imports, want 0 (dotted method call)", len(got.Imports))
	}
}

func TestImportMeta(t *testing.T) {
	src := `const u = import.meta.url;`
	got := mustParse(t, src)
	if len(got.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(got.Imports))
	}
	mi, ok := got.Imports[0].(MetaImport)
	if !ok {
		t.Fatalf("import[0] is %T, want MetaImport", got.Imports[0])
	}
	if slice := src[mi.Start:mi.End]; slice != "import.meta" {
		t.Errorf("meta slice = %q, want import.meta", slice)
	}
}

func TestImportMetaPropertyChainNotEmitted(t *testing.T) {
	// `x.import.meta` would be nonsensical JS, but the scanner must not
	// misfire on a dotted property named meta following import.
	src := `a.b.import.meta`
	got := mustParse(t, src)
	if len(got.Imports) != 0 {
		t.Fatalf("got %d imports, want 0", len(got.Imports))
	}
}

func TestExportDefaultExpression(t *testing.T) {
	src := `export default 42;`
	got := mustParse(t, src)
	if len(got.Exports) != 1 {
		t.Fatalf("got %d exports, want 1", len(got.Exports))
	}
	if slice := src[got.Exports[0].NameStart:got.Exports[0].NameEnd]; slice != "default" {
		t.Errorf("export slice = %q, want default", slice)
	}
}

func TestExportFunctionAndClass(t *testing.T) {
	src := `export async function* gen(){} export class Foo {}`
	got := mustParse(t, src)
	if len(got.Exports) != 2 {
		t.Fatalf("got %d exports, want 2: %+v", len(got.Exports), got.Exports)
	}
	if slice := src[got.Exports[0].NameStart:got.Exports[0].NameEnd]; slice != "gen" {
		t.Errorf("export[0] = %q, want gen", slice)
	}
	if slice := src[got.Exports[1].NameStart:got.Exports[1].NameEnd]; slice != "Foo" {
		t.Errorf("export[1] = %q, want Foo", slice)
	}
}

func TestExportNamedListWithAliasAndReexport(t *testing.T) {
	src := `export { a, b as c } from "./mod.js";`
	got := mustParse(t, src)
	if len(got.Exports) != 2 {
		t.Fatalf("got %d exports, want 2: %+v", len(got.Exports), got.Exports)
	}
	if slice := src[got.Exports[0].NameStart:got.Exports[0].NameEnd]; slice != "a" {
		t.Errorf("export[0] = %q, want a", slice)
	}
	if slice := src[got.Exports[1].NameStart:got.Exports[1].NameEnd]; slice != "c" {
		t.Errorf("export[1] = %q, want c", slice)
	}
	if len(got.Imports) != 1 {
		t.Fatalf("got %d imports, want 1 (re-export)", len(got.Imports))
	}
	si := got.Imports[0].(StaticImport)
	if slice := src[si.SpecifierStart:si.SpecifierEnd]; slice != "./mod.js" {
		t.Errorf("re-export specifier = %q, want ./mod.js", slice)
	}
}

func TestExportStarReexport(t *testing.T) {
	src := `export * as ns from "./mod.js";`
	got := mustParse(t, src)
	if len(got.Exports) != 1 {
		t.Fatalf("got %d exports, want 1", len(got.Exports))
	}
	if slice := src[got.Exports[0].NameStart:got.Exports[0].NameEnd]; slice != "ns" {
		t.Errorf("export[0] = %q, want ns", slice)
	}
	if len(got.Imports) != 1 {
		t.Fatalf("got %d imports, want 1", len(got.Imports))
	}
}

func TestExportBindingStopsAtInitializer(t *testing.T) {
	// The binding with an initializer is exported; anything after it in
	// the same declaration is not walked, per design.
	src := `export let a = 1, b;`
	got := mustParse(t, src)
	if len(got.Exports) != 1 {
		t.Fatalf("got %d exports, want 1: %+v", len(got.Exports), got.Exports)
	}
	if slice := src[got.Exports[0].NameStart:got.Exports[0].NameEnd]; slice != "a" {
		t.Errorf("export[0] = %q, want a", slice)
	}
}

func TestUnterminatedStringFails(t *testing.T) {
	src := "const x = 'oops;\n"
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatalf("expected error for unterminated string")
	}
	if err.Reason != ReasonUnterminatedString {
		t.Errorf("reason = %q, want %q", err.Reason, ReasonUnterminatedString)
	}
}

func TestUnbalancedBracketFails(t *testing.T) {
	_, err := Parse([]byte(`function f() {`))
	if err == nil {
		t.Fatalf("expected error for unbalanced bracket")
	}
	if err.Reason != ReasonUnbalancedBracket {
		t.Errorf("reason = %q, want %q", err.Reason, ReasonUnbalancedBracket)
	}
}

func TestCommentPrefixShiftsOffsetsByPrefixLength(t *testing.T) {
	base := `import './a.js';`
	prefix := `/*0123456789*/`
	wrapped := prefix + base

	got := mustParse(t, wrapped)
	want := mustParse(t, base)

	if len(got.Imports) != len(want.Imports) {
		t.Fatalf("import count differs: got %d want %d", len(got.Imports), len(want.Imports))
	}
	gsi := got.Imports[0].(StaticImport)
	wsi := want.Imports[0].(StaticImport)
	shift := len(prefix)
	if gsi.StatementStart != wsi.StatementStart+shift ||
		gsi.SpecifierStart != wsi.SpecifierStart+shift ||
		gsi.SpecifierEnd != wsi.SpecifierEnd+shift ||
		gsi.StatementEnd != wsi.StatementEnd+shift {
		t.Errorf("offsets not shifted by %d: got %+v want (shifted) %+v", shift, gsi, wsi)
	}
}
