package binder

import (
	"fmt"

	"github.com/mna/pybind/diag"
	"github.com/mna/pybind/lang/ast"
)

func toDiagRange(r Range) diag.Range { return diag.Range{Start: r.Start, End: r.End} }

// addError reports a hard error (§4.6, §7.1) at n's span.
func (b *Binder) addError(n ast.Node, format string, args ...interface{}) {
	b.sink.AddError(toDiagRange(SpanOf(n)), fmt.Sprintf(format, args...))
}

// addRuleDiagnostic reports a rule-based diagnostic (§4.6), honoring any
// per-rule severity override from the file's DiagnosticSettings.
func (b *Binder) addRuleDiagnostic(rule string, n ast.Node, format string, args ...interface{}) *diag.Diagnostic {
	sev := diag.SeverityWarning
	if b.fileInfo != nil && b.fileInfo.DiagnosticSettings.RuleSeverity != nil {
		if s, ok := b.fileInfo.DiagnosticSettings.RuleSeverity[rule]; ok {
			sev = s
		}
	}
	return b.sink.AddDiagnostic(sev, rule, toDiagRange(SpanOf(n)), fmt.Sprintf(format, args...))
}
