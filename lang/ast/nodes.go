package ast

import (
	"fmt"
	"os"
	"strings"

	"github.com/mna/pybind/lang/token"
)

type (
	// Module represents a single parsed source file: the unit of work the
	// binder binds. It is exactly one Suite except that it keeps track of its
	// file name and the EOF position, which is useful to give an empty file a
	// valid position.
	Module struct {
		// Name is the module's file path, which may be empty if the module was
		// not read from a file (e.g. a REPL chunk).
		Name string

		Body *Suite
		EOF  token.Pos // position of the EOF marker
	}

	// Suite represents an indented block of statements (what the language
	// calls a "suite" in its grammar: the body of a def, class, if, for,
	// while, try, except, with, etc).
	Suite struct {
		// Both Start and End are saved because a suite's reported span may
		// start and end before or after its statements (e.g. an empty "pass"
		// suite still has a position).
		Start token.Pos
		End   token.Pos
		Stmts []Stmt
	}
)

func (n *Module) Format(f fmt.State, verb rune) {
	lbl := "module"
	if n.Name != "" {
		lbl += " " + strings.ReplaceAll(n.Name, string(os.PathSeparator), "/")
	}
	format(f, verb, n, lbl, nil)
}
func (n *Module) Span() (start, end token.Pos) {
	if n.Body != nil {
		return n.Body.Span()
	}
	return n.EOF, n.EOF
}
func (n *Module) Walk(v Visitor) {
	if n.Body != nil {
		Walk(v, n.Body)
	}
}

func (n *Suite) Format(f fmt.State, verb rune) {
	format(f, verb, n, "suite", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Suite) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Suite) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
