package binder

import (
	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/token"
)

// validEscapeChars are the characters Python recognizes after a backslash
// inside a non-raw string or bytes literal (§4.6).
var validEscapeChars = map[byte]bool{
	'\n': true, '\\': true, '\'': true, '"': true,
	'a': true, 'b': true, 'f': true, 'n': true, 'r': true, 't': true, 'v': true,
	'0': true, '1': true, '2': true, '3': true, '4': true, '5': true, '6': true, '7': true,
	'x': true, 'N': true, 'u': true, 'U': true,
}

// hasRawPrefix reports whether raw (a Constant's uninterpreted Raw text)
// carries a Python raw-string prefix ("r", "R", "rb", "Rb", "br", ...),
// which exempts it from escape-sequence validation (§4.6).
func hasRawPrefix(raw string) bool {
	sawR := false
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\'', '"':
			return sawR
		case 'r', 'R':
			sawR = true
		}
	}
	return false
}

// firstInvalidEscape scans raw for a backslash not followed by one of
// Python's recognized escape characters, returning its byte offset and true,
// or (0, false) if every escape in raw is valid.
func firstInvalidEscape(raw string) (int, bool) {
	for i := 0; i < len(raw)-1; i++ {
		if raw[i] != '\\' {
			continue
		}
		if !validEscapeChars[raw[i+1]] {
			return i, true
		}
		i++
	}
	return 0, false
}

// checkStringEscapes implements §4.6's reportInvalidStringEscapeSequence
// rule diagnostic: a non-raw string or bytes literal containing a backslash
// not followed by a recognized escape character earns one diagnostic.
func (b *Binder) checkStringEscapes(c *ast.Constant) {
	if c.Kind != token.STRING || hasRawPrefix(c.Raw) {
		return
	}
	if _, bad := firstInvalidEscape(c.Raw); bad {
		b.addRuleDiagnostic("reportInvalidStringEscapeSequence", c, "unsupported escape sequence in string literal")
	}
}

// checkFStringLiteralEscapes is the f-string literal-text counterpart of
// checkStringEscapes (§4.6): spec.md lists "f-string escape or brace errors"
// as a hard error, so an invalid escape in an f-string's literal segment is
// reported with addError rather than as a rule diagnostic.
func (b *Binder) checkFStringLiteralEscapes(c *ast.Constant) {
	if hasRawPrefix(c.Raw) {
		return
	}
	if _, bad := firstInvalidEscape(c.Raw); bad {
		b.addError(c, "invalid escape sequence in f-string literal")
	}
}

// checkFormattedValueBraces implements spec.md's "f-string escape or brace
// errors" hard error for one "{expr}" replacement field: Lbrace/Rbrace are
// the zero Pos only when the field's braces could not be matched up
// (SPEC_FULL.md's SUPPLEMENTED FEATURES), and a "!" conversion character
// other than s/r/a is never legal.
func (b *Binder) checkFormattedValueBraces(fv *ast.FormattedValue) {
	if fv.Lbrace.Unknown() || fv.Rbrace.Unknown() {
		b.addError(fv, "f-string expression has unbalanced braces")
		return
	}
	switch fv.Conversion {
	case 0, 's', 'r', 'a':
	default:
		b.addError(fv, "f-string has invalid conversion character %q", fv.Conversion)
	}
}
