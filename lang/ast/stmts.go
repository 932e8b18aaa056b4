package ast

import (
	"fmt"

	"github.com/mna/pybind/lang/token"
)

type (
	// Param represents a single function parameter: a plain name, possibly
	// with a type annotation and/or a default value expression.
	Param struct {
		Name       *Name
		Annotation Expr // nil if not annotated
		Default    Expr // nil if no default value
	}

	// Parameters represents a function or lambda's full parameter list.
	Parameters struct {
		Args   []*Param // positional-or-keyword parameters
		VarArg *Param   // *args, nil if absent
		KwOnly []*Param // keyword-only parameters (after a bare * or *args)
		KwArg  *Param   // **kwargs, nil if absent
	}

	// Keyword represents a call argument passed by name (f(x=1)) or a class
	// keyword argument (class C(metaclass=M)). Name is nil for a **mapping
	// unpacking keyword argument.
	Keyword struct {
		Name  *Name
		Value Expr
	}

	// Alias represents one dotted name in an import statement, optionally
	// bound to a different local name via "as".
	Alias struct {
		Path   []*Name // dotted path, e.g. ["a","b","c"] for "a.b.c"
		AsName *Name   // nil if no "as" clause
	}

	// ExceptHandler represents a single "except [Type [as name]]:" clause.
	ExceptHandler struct {
		Start token.Pos
		Type  Expr  // nil for a bare "except:"
		Name  *Name // nil if no "as name" clause
		Body  *Suite
	}

	// WithItem represents one context manager in a "with" statement.
	WithItem struct {
		ContextExpr  Expr
		OptionalVars Expr // nil if no "as" target
	}

	// FunctionDef represents a function (or method) declaration statement.
	FunctionDef struct {
		Decorators []Expr
		Async      token.Pos // zero if not declared async
		Def        token.Pos
		Name       *Name
		Params     *Parameters
		Returns    Expr // nil if no return annotation
		Body       *Suite
		End        token.Pos
	}

	// ClassDef represents a class declaration statement.
	ClassDef struct {
		Decorators []Expr
		Class      token.Pos
		Name       *Name
		Bases      []Expr
		Keywords   []*Keyword
		Body       *Suite
		End        token.Pos
	}

	// Assign represents a (possibly chained/unpacking) assignment statement,
	// e.g. "x = y = z" or "a, b = pair".
	Assign struct {
		Targets []Expr
		Value   Expr
	}

	// AugAssign represents an augmented assignment, e.g. "x += 1".
	AugAssign struct {
		Target Expr
		Op     token.Token // one of the _EQ augmented-assign operator tokens
		OpPos  token.Pos
		Value  Expr
	}

	// AnnAssign represents a variable declaration with a type annotation,
	// e.g. "x: int" or "x: int = 1".
	AnnAssign struct {
		Target     Expr
		Annotation Expr
		Value      Expr // nil if no initializer
		Colon      token.Pos
	}

	// Delete represents a "del a, b[0]" statement.
	Delete struct {
		Start   token.Pos
		Targets []Expr
	}

	// Return represents a return statement.
	Return struct {
		Start token.Pos
		Value Expr // nil for a bare "return"
	}

	// Pass represents a "pass" statement.
	Pass struct{ Start token.Pos }

	// Break represents a "break" statement.
	Break struct{ Start token.Pos }

	// Continue represents a "continue" statement.
	Continue struct{ Start token.Pos }

	// Raise represents a "raise [Exc [from Cause]]" statement.
	Raise struct {
		Start token.Pos
		Exc   Expr // nil for a bare "raise"
		Cause Expr // nil if no "from" clause
	}

	// Global represents a "global a, b" statement.
	Global struct {
		Start token.Pos
		Names []*Name
	}

	// Nonlocal represents a "nonlocal a, b" statement.
	Nonlocal struct {
		Start token.Pos
		Names []*Name
	}

	// Import represents an "import a.b.c, d as e" statement.
	Import struct {
		Start token.Pos
		Names []*Alias
	}

	// ImportFrom represents a "from .a.b import c, d as e" or
	// "from a import *" statement. Level is the number of leading dots (0 for
	// an absolute import).
	ImportFrom struct {
		Start  token.Pos
		Level  int
		Module []*Name // dotted module path; may be empty for a pure relative import
		IsStar bool
		Names  []*Alias // each Alias.Path has exactly one element; unused if IsStar
	}

	// If represents an if/elif/else statement. An "elif" is represented as a
	// single nested *If inside Orelse.Stmts, so a chain of elifs is just a
	// right-leaning spine of If nodes.
	If struct {
		Start  token.Pos
		Test   Expr
		Body   *Suite
		Orelse *Suite // nil if there is no else/elif clause
	}

	// While represents a while/else statement.
	While struct {
		Start  token.Pos
		Test   Expr
		Body   *Suite
		Orelse *Suite // nil if there is no else clause
	}

	// For represents a for/else statement (sync or async).
	For struct {
		Start  token.Pos
		Async  bool
		Target Expr
		Iter   Expr
		Body   *Suite
		Orelse *Suite // nil if there is no else clause
	}

	// Try represents a try/except/else/finally statement.
	Try struct {
		Start     token.Pos
		Body      *Suite
		Handlers  []*ExceptHandler
		Orelse    *Suite // nil if there is no else clause
		Finalbody *Suite // nil if there is no finally clause
	}

	// With represents a with statement (sync or async).
	With struct {
		Start token.Pos
		Async bool
		Items []*WithItem
		Body  *Suite
	}

	// Assert represents an "assert test[, msg]" statement.
	Assert struct {
		Start token.Pos
		Test  Expr
		Msg   Expr // nil if no message
	}

	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		Value Expr
	}
)

func (n *FunctionDef) Format(f fmt.State, verb rune) {
	lbl := "def " + n.Name.Id
	format(f, verb, n, lbl, map[string]int{"params": len(n.Params.Args), "decorators": len(n.Decorators)})
}
func (n *FunctionDef) Span() (start, end token.Pos) {
	if n.Async.IsValid() {
		return n.Async, n.End
	}
	return n.Def, n.End
}
func (n *FunctionDef) Walk(v Visitor) {
	for _, d := range n.Decorators {
		Walk(v, d)
	}
	Walk(v, n.Name)
	walkParameters(v, n.Params)
	if n.Returns != nil {
		Walk(v, n.Returns)
	}
	Walk(v, n.Body)
}
func (n *FunctionDef) IsLoop() bool { return false }

func (n *ClassDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "class "+n.Name.Id, map[string]int{"bases": len(n.Bases)})
}
func (n *ClassDef) Span() (start, end token.Pos) { return n.Class, n.End }
func (n *ClassDef) Walk(v Visitor) {
	for _, d := range n.Decorators {
		Walk(v, d)
	}
	Walk(v, n.Name)
	for _, b := range n.Bases {
		Walk(v, b)
	}
	for _, k := range n.Keywords {
		if k.Name != nil {
			Walk(v, k.Name)
		}
		Walk(v, k.Value)
	}
	Walk(v, n.Body)
}
func (n *ClassDef) IsLoop() bool { return false }

func walkParameters(v Visitor, p *Parameters) {
	if p == nil {
		return
	}
	walkParam := func(p *Param) {
		Walk(v, p.Name)
		if p.Annotation != nil {
			Walk(v, p.Annotation)
		}
		if p.Default != nil {
			Walk(v, p.Default)
		}
	}
	for _, p := range p.Args {
		walkParam(p)
	}
	if p.VarArg != nil {
		walkParam(p.VarArg)
	}
	for _, p := range p.KwOnly {
		walkParam(p)
	}
	if p.KwArg != nil {
		walkParam(p.KwArg)
	}
}

func (n *Assign) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign", map[string]int{"targets": len(n.Targets)})
}
func (n *Assign) Span() (start, end token.Pos) {
	start, _ = n.Targets[0].Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *Assign) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
	Walk(v, n.Value)
}
func (n *Assign) IsLoop() bool { return false }

func (n *AugAssign) Format(f fmt.State, verb rune) {
	format(f, verb, n, "augassign "+n.Op.GoString(), nil)
}
func (n *AugAssign) Span() (start, end token.Pos) {
	start, _ = n.Target.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *AugAssign) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}
func (n *AugAssign) IsLoop() bool { return false }

func (n *AnnAssign) Format(f fmt.State, verb rune) { format(f, verb, n, "annotated assign", nil) }
func (n *AnnAssign) Span() (start, end token.Pos) {
	start, _ = n.Target.Span()
	if n.Value != nil {
		_, end = n.Value.Span()
	} else {
		_, end = n.Annotation.Span()
	}
	return start, end
}
func (n *AnnAssign) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Annotation)
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *AnnAssign) IsLoop() bool { return false }

func (n *Delete) Format(f fmt.State, verb rune) {
	format(f, verb, n, "del", map[string]int{"targets": len(n.Targets)})
}
func (n *Delete) Span() (start, end token.Pos) {
	_, end = n.Targets[len(n.Targets)-1].Span()
	return n.Start, end
}
func (n *Delete) Walk(v Visitor) {
	for _, t := range n.Targets {
		Walk(v, t)
	}
}
func (n *Delete) IsLoop() bool { return false }

func (n *Return) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *Return) Span() (start, end token.Pos) {
	if n.Value != nil {
		_, end = n.Value.Span()
	} else {
		end = n.Start + token.Pos(len(token.RETURN.String()))
	}
	return n.Start, end
}
func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Return) IsLoop() bool { return false }

func (n *Pass) Format(f fmt.State, verb rune) { format(f, verb, n, "pass", nil) }
func (n *Pass) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.PASS.String()))
}
func (n *Pass) Walk(_ Visitor) {}
func (n *Pass) IsLoop() bool   { return false }

func (n *Break) Format(f fmt.State, verb rune) { format(f, verb, n, "break", nil) }
func (n *Break) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.BREAK.String()))
}
func (n *Break) Walk(_ Visitor) {}
func (n *Break) IsLoop() bool   { return false }

func (n *Continue) Format(f fmt.State, verb rune) { format(f, verb, n, "continue", nil) }
func (n *Continue) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.CONTINUE.String()))
}
func (n *Continue) Walk(_ Visitor) {}
func (n *Continue) IsLoop() bool   { return false }

func (n *Raise) Format(f fmt.State, verb rune) { format(f, verb, n, "raise", nil) }
func (n *Raise) Span() (start, end token.Pos) {
	end = n.Start + token.Pos(len(token.RAISE.String()))
	if n.Cause != nil {
		_, end = n.Cause.Span()
	} else if n.Exc != nil {
		_, end = n.Exc.Span()
	}
	return n.Start, end
}
func (n *Raise) Walk(v Visitor) {
	if n.Exc != nil {
		Walk(v, n.Exc)
	}
	if n.Cause != nil {
		Walk(v, n.Cause)
	}
}
func (n *Raise) IsLoop() bool { return false }

func (n *Global) Format(f fmt.State, verb rune) {
	format(f, verb, n, "global", map[string]int{"names": len(n.Names)})
}
func (n *Global) Span() (start, end token.Pos) {
	_, end = n.Names[len(n.Names)-1].Span()
	return n.Start, end
}
func (n *Global) Walk(v Visitor) {
	for _, name := range n.Names {
		Walk(v, name)
	}
}
func (n *Global) IsLoop() bool { return false }

func (n *Nonlocal) Format(f fmt.State, verb rune) {
	format(f, verb, n, "nonlocal", map[string]int{"names": len(n.Names)})
}
func (n *Nonlocal) Span() (start, end token.Pos) {
	_, end = n.Names[len(n.Names)-1].Span()
	return n.Start, end
}
func (n *Nonlocal) Walk(v Visitor) {
	for _, name := range n.Names {
		Walk(v, name)
	}
}
func (n *Nonlocal) IsLoop() bool { return false }

func (n *Import) Format(f fmt.State, verb rune) {
	format(f, verb, n, "import", map[string]int{"names": len(n.Names)})
}
func (n *Import) Span() (start, end token.Pos) {
	last := n.Names[len(n.Names)-1]
	if last.AsName != nil {
		_, end = last.AsName.Span()
	} else {
		_, end = last.Path[len(last.Path)-1].Span()
	}
	return n.Start, end
}
func (n *Import) Walk(v Visitor) {
	for _, al := range n.Names {
		for _, p := range al.Path {
			Walk(v, p)
		}
		if al.AsName != nil {
			Walk(v, al.AsName)
		}
	}
}
func (n *Import) IsLoop() bool { return false }

func (n *ImportFrom) Format(f fmt.State, verb rune) {
	lbl := "from-import"
	if n.IsStar {
		lbl += " *"
	}
	format(f, verb, n, lbl, map[string]int{"names": len(n.Names), "level": n.Level})
}
func (n *ImportFrom) Span() (start, end token.Pos) {
	end = n.Start + token.Pos(len(token.FROM.String()))
	if len(n.Names) > 0 {
		last := n.Names[len(n.Names)-1]
		if last.AsName != nil {
			_, end = last.AsName.Span()
		} else if len(last.Path) > 0 {
			_, end = last.Path[len(last.Path)-1].Span()
		}
	}
	return n.Start, end
}
func (n *ImportFrom) Walk(v Visitor) {
	for _, p := range n.Module {
		Walk(v, p)
	}
	for _, al := range n.Names {
		for _, p := range al.Path {
			Walk(v, p)
		}
		if al.AsName != nil {
			Walk(v, al.AsName)
		}
	}
}
func (n *ImportFrom) IsLoop() bool { return false }

func (n *If) Format(f fmt.State, verb rune) {
	format(f, verb, n, "if", map[string]int{"has_else": boolCount(n.Orelse != nil)})
}
func (n *If) Span() (start, end token.Pos) {
	if n.Orelse != nil {
		_, end = n.Orelse.Span()
	} else {
		_, end = n.Body.Span()
	}
	return n.Start, end
}
func (n *If) Walk(v Visitor) {
	Walk(v, n.Test)
	Walk(v, n.Body)
	if n.Orelse != nil {
		Walk(v, n.Orelse)
	}
}
func (n *If) IsLoop() bool { return false }

func (n *While) Format(f fmt.State, verb rune) {
	format(f, verb, n, "while", map[string]int{"has_else": boolCount(n.Orelse != nil)})
}
func (n *While) Span() (start, end token.Pos) {
	if n.Orelse != nil {
		_, end = n.Orelse.Span()
	} else {
		_, end = n.Body.Span()
	}
	return n.Start, end
}
func (n *While) Walk(v Visitor) {
	Walk(v, n.Test)
	Walk(v, n.Body)
	if n.Orelse != nil {
		Walk(v, n.Orelse)
	}
}
func (n *While) IsLoop() bool { return true }

func (n *For) Format(f fmt.State, verb rune) {
	lbl := "for"
	if n.Async {
		lbl = "async for"
	}
	format(f, verb, n, lbl, map[string]int{"has_else": boolCount(n.Orelse != nil)})
}
func (n *For) Span() (start, end token.Pos) {
	if n.Orelse != nil {
		_, end = n.Orelse.Span()
	} else {
		_, end = n.Body.Span()
	}
	return n.Start, end
}
func (n *For) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Iter)
	Walk(v, n.Body)
	if n.Orelse != nil {
		Walk(v, n.Orelse)
	}
}
func (n *For) IsLoop() bool { return true }

func (n *Try) Format(f fmt.State, verb rune) {
	format(f, verb, n, "try", map[string]int{
		"handlers":   len(n.Handlers),
		"has_else":   boolCount(n.Orelse != nil),
		"has_finally": boolCount(n.Finalbody != nil),
	})
}
func (n *Try) Span() (start, end token.Pos) {
	switch {
	case n.Finalbody != nil:
		_, end = n.Finalbody.Span()
	case n.Orelse != nil:
		_, end = n.Orelse.Span()
	case len(n.Handlers) > 0:
		_, end = n.Handlers[len(n.Handlers)-1].Body.Span()
	default:
		_, end = n.Body.Span()
	}
	return n.Start, end
}
func (n *Try) Walk(v Visitor) {
	Walk(v, n.Body)
	for _, h := range n.Handlers {
		if h.Type != nil {
			Walk(v, h.Type)
		}
		if h.Name != nil {
			Walk(v, h.Name)
		}
		Walk(v, h.Body)
	}
	if n.Orelse != nil {
		Walk(v, n.Orelse)
	}
	if n.Finalbody != nil {
		Walk(v, n.Finalbody)
	}
}
func (n *Try) IsLoop() bool { return false }

func (n *With) Format(f fmt.State, verb rune) {
	lbl := "with"
	if n.Async {
		lbl = "async with"
	}
	format(f, verb, n, lbl, map[string]int{"items": len(n.Items)})
}
func (n *With) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *With) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it.ContextExpr)
		if it.OptionalVars != nil {
			Walk(v, it.OptionalVars)
		}
	}
	Walk(v, n.Body)
}
func (n *With) IsLoop() bool { return false }

func (n *Assert) Format(f fmt.State, verb rune) { format(f, verb, n, "assert", nil) }
func (n *Assert) Span() (start, end token.Pos) {
	if n.Msg != nil {
		_, end = n.Msg.Span()
	} else {
		_, end = n.Test.Span()
	}
	return n.Start, end
}
func (n *Assert) Walk(v Visitor) {
	Walk(v, n.Test)
	if n.Msg != nil {
		Walk(v, n.Msg)
	}
}
func (n *Assert) IsLoop() bool { return false }

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Value.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Value) }
func (n *ExprStmt) IsLoop() bool                  { return false }

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
