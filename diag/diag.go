// Package diag implements the diagnostic sink the binder reports through
// (see §6 of the binder's external interfaces: addError, addWarning,
// addUnusedCode, addDiagnostic). It is grounded on the accumulate-then-sort
// pattern of the standard library's go/scanner.ErrorList — the same pattern
// the teacher's own lang/scanner package reuses via a type alias — but
// extended with severities, rule names, quick-fix action descriptors and a
// correlation id per diagnostic, none of which go/scanner's plain error list
// supports.
package diag

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/mna/pybind/lang/token"
)

// Severity is the level at which a diagnostic is reported.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityUnusedCode
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityUnusedCode:
		return "unused-code"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Range is a half-open span of source positions a diagnostic applies to.
type Range struct {
	Start, End token.Pos
}

// Action is a quick-fix descriptor a host editor surface may offer the user,
// e.g. {Kind: "createTypeStub", Data: {"moduleName": "foo.bar"}} for a
// missing-type-stub diagnostic (§4.6).
type Action struct {
	Kind string
	Data map[string]string
}

// Diagnostic is one reported finding. The zero value is not usable; obtain
// one through a Sink's Add* methods.
type Diagnostic struct {
	ID       uuid.UUID
	Severity Severity
	Range    Range
	Message  string
	Rule     string
	Actions  []Action
}

// SetRule attaches a rule name (e.g. "reportUnusedImport") to d, returning d
// for chaining, mirroring the fluent style of the spec's diagnostic sink
// contract.
func (d *Diagnostic) SetRule(name string) *Diagnostic {
	d.Rule = name
	return d
}

// AddAction attaches a quick-fix action descriptor to d, returning d for
// chaining.
func (d *Diagnostic) AddAction(a Action) *Diagnostic {
	d.Actions = append(d.Actions, a)
	return d
}

// String formats d in the style of a go/scanner Error, with the severity and
// any rule name inserted: "file:line:col: severity (rule): msg", or
// "file:line:col: severity: msg" when d has no rule.
func (d *Diagnostic) String(file *token.File) string {
	pos := token.FormatPos(token.PosLong, file, d.Range.Start, true)
	if d.Rule != "" {
		return fmt.Sprintf("%s: %s (%s): %s", pos, d.Severity, d.Rule, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", pos, d.Severity, d.Message)
}

// Sink accumulates diagnostics for a single module binding pass. It is not
// safe for concurrent use by design: the binder binds one module at a time
// on one goroutine (§5); a host binding many modules in parallel constructs
// one Sink per module, exactly as it constructs one Binder per module (see
// internal/orchestrator).
type Sink struct {
	file   *token.File
	logger *zap.Logger
	diags  []*Diagnostic
}

// NewSink creates a Sink for diagnostics located within file. logger may be
// nil, in which case diagnostics are accumulated silently (used heavily by
// tests); a non-nil logger receives one debug-level log entry per
// diagnostic as it is added, which is how the demo CLI surfaces binder
// progress without the binder itself depending on any particular logging
// transport.
func NewSink(file *token.File, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{file: file, logger: logger}
}

func (s *Sink) add(sev Severity, r Range, msg string) *Diagnostic {
	d := &Diagnostic{ID: uuid.New(), Severity: sev, Range: r, Message: msg}
	s.diags = append(s.diags, d)
	s.logger.Debug("diagnostic",
		zap.String("id", d.ID.String()),
		zap.String("severity", sev.String()),
		zap.String("message", msg),
	)
	return d
}

// AddError records a hard error (§7.1 syntactic-semantic errors, §7.3
// internal invariant violations are NOT reported here — those are fatal and
// never go through the sink).
func (s *Sink) AddError(r Range, msg string) *Diagnostic { return s.add(SeverityError, r, msg) }

// AddWarning records a non-fatal finding.
func (s *Sink) AddWarning(r Range, msg string) *Diagnostic { return s.add(SeverityWarning, r, msg) }

// AddUnusedCode records a dead-code range (§4.6's unreachable-code marking).
// Unlike the other Add* methods it has no caller-visible use for the
// returned Diagnostic beyond inspection, but one is still returned for
// uniformity and testability.
func (s *Sink) AddUnusedCode(r Range, msg string) *Diagnostic {
	return s.add(SeverityUnusedCode, r, msg)
}

// AddDiagnostic records a finding at an explicit severity level, used by
// rule-based diagnostics (§4.6) whose severity is configurable rather than
// fixed (see internal/config's rule-severity overrides).
func (s *Sink) AddDiagnostic(level Severity, rule string, r Range, msg string) *Diagnostic {
	return s.add(level, r, msg).SetRule(rule)
}

// Diagnostics returns the accumulated diagnostics, sorted by start position
// then severity, mirroring go/scanner.ErrorList.Sort's "by position" order.
func (s *Sink) Diagnostics() []*Diagnostic {
	sorted := make([]*Diagnostic, len(s.diags))
	copy(sorted, s.diags)
	slices.SortFunc(sorted, func(a, b *Diagnostic) int {
		if a.Range.Start != b.Range.Start {
			return int(a.Range.Start) - int(b.Range.Start)
		}
		return int(a.Severity) - int(b.Severity)
	})
	return sorted
}

// Len reports the number of accumulated diagnostics.
func (s *Sink) Len() int { return len(s.diags) }

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
