// Package prettyerr renders a scanner.ParseError as the fixed
// multi-line diagnostic format described by the scanner's external
// interface contract: a summary line, a blank gutter line, the
// offending source line with a left gutter, and a caret line pointing
// at the failing byte.
package prettyerr

import (
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/aledsdavies/eslex/internal/scanner"
)

const defaultMessage = "unexpected token"

var tpl = pongo2.Must(pongo2.FromString(
	`ParseError: at {{ line }}:{{ col }}
{{ gutter }}|
{{ line_num_padded }}|{{ line_code|safe }}
{{ gutter }}|{{ caret_lead }}^ {{ msg|safe }}
`))

// Error renders err against source using the same line/column
// accounting as the reference scanner: column is the byte length of
// the final line of source[:err.Index+1], and both line and column
// report 0 when err.Index falls past the end of input.
func Error(source []byte, err *scanner.ParseError) string {
	msg := defaultMessage
	if err.Reason != "" {
		msg = string(err.Reason)
	}

	line, col, lineCode := locate(source, err.Index)

	lineNumber := strconv.Itoa(line)
	padWidth := len(lineNumber) + 1
	gutter := strings.Repeat(" ", padWidth)
	lineNumPadded := lineNumber + strings.Repeat(" ", padWidth-len(lineNumber))

	caretWidth := col - 1
	if caretWidth < 0 {
		caretWidth = 0
	}

	out, err2 := tpl.Execute(pongo2.Context{
		"line":            line,
		"col":             col,
		"gutter":          gutter,
		"line_num_padded": lineNumPadded,
		"line_code":       lineCode,
		"caret_lead":      strings.Repeat(" ", caretWidth),
		"msg":             msg,
	})
	if err2 != nil {
		// The template is a compile-time constant; execution only
		// fails on context type mismatches, which can't happen here.
		panic(err2)
	}
	return out
}

// locate computes the 1-based line and column of idx within source,
// plus the source text of that line (without its terminator). Column
// is the byte length of the final line of source[:idx+1]. Both line
// and column are 0, and lineCode is empty, when idx is past the end
// of source.
func locate(source []byte, idx int) (line, col int, lineCode string) {
	if idx+1 > len(source) {
		return 0, 0, ""
	}
	lines := splitLines(string(source[:idx+1]))
	if len(lines) == 0 {
		return 0, 0, ""
	}
	last := lines[len(lines)-1]

	fullLines := splitLines(string(source))
	code := ""
	if len(lines)-1 < len(fullLines) {
		code = fullLines[len(lines)-1]
	}
	return len(lines), len(last), code
}

// splitLines mirrors Rust's str::lines(): split on '\n', trim a
// trailing '\r' from each line, and drop the final empty element that
// appears when the string ends with a line terminator.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}
	return raw
}
