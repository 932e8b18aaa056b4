package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"go.uber.org/zap"

	"github.com/mna/pybind/diag"
	"github.com/mna/pybind/internal/config"
	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/binder"
	"github.com/mna/pybind/lang/token"
)

// Bind runs the demo module through the binder and prints its source, its
// scope tree and any diagnostics (§6, §9). This repository carries
// no parser (SPEC_FULL.md's DOMAIN STACK), so unlike the teacher's
// parse/resolve/tokenize commands this one always binds the embedded demo
// module rather than a path supplied on the command line.
func (c *Cmd) Bind(ctx context.Context, stdio mainer.Stdio, args []string) error {
	logger, err := c.newLogger()
	if err != nil {
		return printError(stdio, err)
	}
	defer logger.Sync() //nolint:errcheck

	severity, err := config.LoadRuleSeverity(c.RuleConfig)
	if err != nil {
		return printError(stdio, fmt.Errorf("loading rule-severity config: %w", err))
	}

	return BindDemo(stdio, logger, severity)
}

// BindDemo builds the embedded demo module, binds it and writes a textual
// report of its source, scope tree and diagnostics to stdio.Stdout.
func BindDemo(stdio mainer.Stdio, logger *zap.Logger, ruleSeverity map[string]diag.Severity) error {
	fs := token.NewFileSet()
	path := "demo.py"
	file := buildDemoFile(fs, path)
	mod := buildDemoModule(path)

	fileInfo := &binder.FileInfo{
		Path:               path,
		Lines:              file.Lines,
		LanguageVersion:    "3.12",
		DiagnosticSettings: binder.DiagnosticSettings{RuleSeverity: ruleSeverity},
	}
	sink := diag.NewSink(file, logger)
	b := binder.New(file, fileInfo, sink, nil)

	if _, err := b.BindModule(mod); err != nil {
		return printError(stdio, fmt.Errorf("binding %s: %w", path, err))
	}

	fmt.Fprintln(stdio.Stdout, "--- source ---")
	fmt.Fprint(stdio.Stdout, demoSource)

	fmt.Fprintln(stdio.Stdout, "--- module scope ---")
	printScope(stdio, b.Info(), mod)

	fmt.Fprintln(stdio.Stdout, "--- diagnostics ---")
	diags := sink.Diagnostics()
	if len(diags) == 0 {
		fmt.Fprintln(stdio.Stdout, "(none)")
	}
	for _, d := range diags {
		fmt.Fprintln(stdio.Stdout, d.String(file))
	}

	return nil
}

// scopePrinter is an ast.Visitor that prints every distinct scope it finds
// attached to a node, in tree order, the same way ast.Printer's own
// internal printer type walks the tree for its indented dump.
type scopePrinter struct {
	stdio mainer.Stdio
	info  *binder.Info
	seen  map[*binder.Scope]bool
}

func (p *scopePrinter) Visit(n ast.Node, dir ast.VisitDirection) ast.Visitor {
	if dir == ast.VisitExit {
		return nil
	}
	if scope, ok := p.info.ScopeOf(n); ok && !p.seen[scope] {
		p.seen[scope] = true
		printScopeIndented(p.stdio, scope)
	}
	return p
}

// printScope walks the bound tree and prints every scope it finds attached
// to a Module/Class/Function node, indented by its depth in the scope tree
// (not the AST tree, since a function nested three statements deep is still
// only one scope below its enclosing module).
func printScope(stdio mainer.Stdio, info *binder.Info, mod *ast.Module) {
	p := &scopePrinter{stdio: stdio, info: info, seen: make(map[*binder.Scope]bool)}
	ast.Walk(p, mod)
}

func printScopeIndented(stdio mainer.Stdio, scope *binder.Scope) {
	depth := 0
	for s := scope.Parent; s != nil; s = s.Parent {
		depth++
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += ". "
	}
	fmt.Fprintf(stdio.Stdout, "%s[%s scope]\n", indent, scope.Kind)
	for _, sym := range scope.Symbols() {
		flags := ""
		if sym.Flags.Has(binder.InstanceMember) {
			flags += " instance-member"
		}
		if sym.Flags.Has(binder.ClassMember) {
			flags += " class-member"
		}
		fmt.Fprintf(stdio.Stdout, "%s  %s (%d declaration(s))%s\n", indent, sym.Name, len(sym.Declarations()), flags)
	}
}
