package ast

import (
	"fmt"

	"github.com/mna/pybind/lang/token"
)

// Unwrap strips a chain of enclosing Starred wrappers and returns the
// innermost expression. It is used where callers only care about the
// underlying target, e.g. deciding assignability.
func Unwrap(e Expr) Expr {
	if s, ok := e.(*Starred); ok {
		return Unwrap(s.Value)
	}
	return e
}

type (
	// Comprehension represents a single "for target in iter [if cond]..."
	// clause inside a comprehension.
	Comprehension struct {
		Target  Expr
		Iter    Expr
		Ifs     []Expr
		IsAsync bool
	}

	// BoolOp represents a chain of "and"/"or" expressions, e.g. "a and b and c".
	BoolOp struct {
		Op     token.Token // AND or OR
		OpPos  []token.Pos // len(Values)-1
		Values []Expr
	}

	// BinOp represents a binary arithmetic/bitwise expression, e.g. "x + y".
	BinOp struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// UnaryOp represents a unary expression, e.g. "-x", "not x", "~x".
	UnaryOp struct {
		Op      token.Token
		OpPos   token.Pos
		Operand Expr
	}

	// Lambda represents a "lambda params: body" expression.
	Lambda struct {
		Start  token.Pos
		Params *Parameters
		Body   Expr
	}

	// IfExp represents a conditional ("ternary") expression:
	// "Body if Test else Orelse".
	IfExp struct {
		Body   Expr
		Test   Expr
		Orelse Expr
	}

	// Dict represents a dict literal. A nil Keys[i] marks a "**other" mapping
	// unpacking entry whose value is Values[i].
	Dict struct {
		Lbrace token.Pos
		Keys   []Expr
		Values []Expr
		Rbrace token.Pos
	}

	// Set represents a set literal, e.g. "{1, 2, 3}".
	Set struct {
		Lbrace token.Pos
		Elts   []Expr
		Rbrace token.Pos
	}

	// ListExpr represents a list literal, e.g. "[1, 2, 3]".
	ListExpr struct {
		Lbrack token.Pos
		Elts   []Expr
		Rbrack token.Pos
	}

	// TupleExpr represents a tuple literal. Lparen/Rparen are both zero for an
	// implicit (unparenthesized) tuple, e.g. the "a, b" in "a, b = 1, 2".
	TupleExpr struct {
		Lparen token.Pos
		Elts   []Expr
		Rparen token.Pos
	}

	// Compare represents a (possibly chained) comparison, e.g. "a < b <= c".
	Compare struct {
		Left        Expr
		Ops         []token.Token
		OpPos       []token.Pos
		Comparators []Expr
	}

	// Call represents a function call, e.g. "f(a, b, c=1)".
	Call struct {
		Func     Expr
		Lparen   token.Pos
		Args     []Expr
		Keywords []*Keyword
		Rparen   token.Pos
	}

	// NamedExpr represents an assignment expression ("walrus"), e.g.
	// "(x := f())".
	NamedExpr struct {
		Target *Name
		Walrus token.Pos
		Value  Expr
	}

	// Starred represents a "*expr" unpacking expression, used in call
	// arguments, assignment targets and list/tuple literals.
	Starred struct {
		Star  token.Pos
		Value Expr
	}

	// Attribute represents a member access, e.g. "x.y".
	Attribute struct {
		Value Expr
		Dot   token.Pos
		Attr  *Name
	}

	// Subscript represents an index/subscript expression, e.g. "x[y]".
	Subscript struct {
		Value  Expr
		Lbrack token.Pos
		Index  Expr // may be a *Slice
		Rbrack token.Pos
	}

	// Slice represents a "lower:upper[:step]" slice expression, only valid as
	// a Subscript's Index.
	Slice struct {
		Lower  Expr // nil if omitted
		Colon1 token.Pos
		Upper  Expr // nil if omitted
		Colon2 token.Pos // zero if no step clause
		Step   Expr      // nil if omitted
	}

	// Name represents an identifier reference.
	Name struct {
		Id    string
		Start token.Pos
	}

	// Constant represents a literal: a number, string, None, True or False.
	Constant struct {
		Kind  token.Token // INT, FLOAT, STRING, NONE, TRUE or FALSE
		Start token.Pos
		Raw   string      // uninterpreted source text
		Value interface{} // int64 | float64 | string | nil, depending on Kind
	}

	// FormattedValue represents one "{expr[!conv][:spec]}" replacement field
	// inside an f-string.
	FormattedValue struct {
		Lbrace     token.Pos
		Value      Expr
		Conversion rune // 0, 's', 'r' or 'a'
		FormatSpec Expr // nil, or a *JoinedStr / *Constant
		Rbrace     token.Pos
	}

	// JoinedStr represents an f-string: an alternating sequence of literal
	// text (*Constant) and replacement fields (*FormattedValue).
	JoinedStr struct {
		Start  token.Pos
		Values []Expr
		End    token.Pos
	}

	// Yield represents a "yield [value]" expression.
	Yield struct {
		Start token.Pos
		Value Expr // nil for a bare "yield"
	}

	// YieldFrom represents a "yield from value" expression.
	YieldFrom struct {
		Start token.Pos
		Value Expr
	}

	// Await represents an "await value" expression.
	Await struct {
		Start token.Pos
		Value Expr
	}

	// ListComp represents a list comprehension, e.g. "[x for x in xs]".
	ListComp struct {
		Lbrack     token.Pos
		Elt        Expr
		Generators []*Comprehension
		Rbrack     token.Pos
	}

	// SetComp represents a set comprehension, e.g. "{x for x in xs}".
	SetComp struct {
		Lbrace     token.Pos
		Elt        Expr
		Generators []*Comprehension
		Rbrace     token.Pos
	}

	// DictComp represents a dict comprehension, e.g. "{k: v for k, v in xs}".
	DictComp struct {
		Lbrace     token.Pos
		Key        Expr
		Value      Expr
		Generators []*Comprehension
		Rbrace     token.Pos
	}

	// GeneratorExp represents a generator expression, e.g. "(x for x in xs)".
	// Lparen/Rparen are zero when the generator is the sole argument of a call
	// and so has no parentheses of its own.
	GeneratorExp struct {
		Lparen     token.Pos
		Elt        Expr
		Generators []*Comprehension
		Rparen     token.Pos
	}
)

func (n *BoolOp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "boolop "+n.Op.GoString(), map[string]int{"values": len(n.Values)})
}
func (n *BoolOp) Span() (start, end token.Pos) {
	start, _ = n.Values[0].Span()
	_, end = n.Values[len(n.Values)-1].Span()
	return start, end
}
func (n *BoolOp) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
}
func (n *BoolOp) expr() {}

func (n *BinOp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binop "+n.Op.GoString(), nil)
}
func (n *BinOp) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinOp) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinOp) expr() {}

func (n *UnaryOp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unaryop "+n.Op.GoString(), nil)
}
func (n *UnaryOp) Span() (start, end token.Pos) {
	_, end = n.Operand.Span()
	return n.OpPos, end
}
func (n *UnaryOp) Walk(v Visitor) { Walk(v, n.Operand) }
func (n *UnaryOp) expr()          {}

func (n *Lambda) Format(f fmt.State, verb rune) {
	format(f, verb, n, "lambda", map[string]int{"params": len(n.Params.Args)})
}
func (n *Lambda) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *Lambda) Walk(v Visitor) {
	walkParameters(v, n.Params)
	Walk(v, n.Body)
}
func (n *Lambda) expr() {}

func (n *IfExp) Format(f fmt.State, verb rune) { format(f, verb, n, "ifexp", nil) }
func (n *IfExp) Span() (start, end token.Pos) {
	start, _ = n.Body.Span()
	_, end = n.Orelse.Span()
	return start, end
}
func (n *IfExp) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.Test)
	Walk(v, n.Orelse)
}
func (n *IfExp) expr() {}

func (n *Dict) Format(f fmt.State, verb rune) {
	format(f, verb, n, "dict", map[string]int{"items": len(n.Keys)})
}
func (n *Dict) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *Dict) Walk(v Visitor) {
	for i, k := range n.Keys {
		if k != nil {
			Walk(v, k)
		}
		Walk(v, n.Values[i])
	}
}
func (n *Dict) expr() {}

func (n *Set) Format(f fmt.State, verb rune) {
	format(f, verb, n, "set", map[string]int{"items": len(n.Elts)})
}
func (n *Set) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *Set) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}
func (n *Set) expr() {}

func (n *ListExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "list", map[string]int{"items": len(n.Elts)})
}
func (n *ListExpr) Span() (start, end token.Pos) {
	return n.Lbrack, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *ListExpr) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}
func (n *ListExpr) expr() {}

func (n *TupleExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "tuple", map[string]int{"items": len(n.Elts)})
}
func (n *TupleExpr) Span() (start, end token.Pos) {
	if n.Lparen.IsValid() {
		return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
	}
	start, _ = n.Elts[0].Span()
	_, end = n.Elts[len(n.Elts)-1].Span()
	return start, end
}
func (n *TupleExpr) Walk(v Visitor) {
	for _, e := range n.Elts {
		Walk(v, e)
	}
}
func (n *TupleExpr) expr() {}

func (n *Compare) Format(f fmt.State, verb rune) {
	format(f, verb, n, "compare", map[string]int{"ops": len(n.Ops)})
}
func (n *Compare) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Comparators[len(n.Comparators)-1].Span()
	return start, end
}
func (n *Compare) Walk(v Visitor) {
	Walk(v, n.Left)
	for _, e := range n.Comparators {
		Walk(v, e)
	}
}
func (n *Compare) expr() {}

func (n *Call) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args), "keywords": len(n.Keywords)})
}
func (n *Call) Span() (start, end token.Pos) {
	start, _ = n.Func.Span()
	return start, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Func)
	for _, e := range n.Args {
		Walk(v, e)
	}
	for _, k := range n.Keywords {
		if k.Name != nil {
			Walk(v, k.Name)
		}
		Walk(v, k.Value)
	}
}
func (n *Call) expr() {}

func (n *NamedExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "namedexpr", nil) }
func (n *NamedExpr) Span() (start, end token.Pos) {
	start, _ = n.Target.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *NamedExpr) Walk(v Visitor) {
	Walk(v, n.Target)
	Walk(v, n.Value)
}
func (n *NamedExpr) expr() {}

func (n *Starred) Format(f fmt.State, verb rune) { format(f, verb, n, "starred", nil) }
func (n *Starred) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Star, end
}
func (n *Starred) Walk(v Visitor) { Walk(v, n.Value) }
func (n *Starred) expr()          {}

func (n *Attribute) Format(f fmt.State, verb rune) { format(f, verb, n, "expr.attr", nil) }
func (n *Attribute) Span() (start, end token.Pos) {
	start, _ = n.Value.Span()
	_, end = n.Attr.Span()
	return start, end
}
func (n *Attribute) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Attr)
}
func (n *Attribute) expr() {}

func (n *Subscript) Format(f fmt.State, verb rune) { format(f, verb, n, "expr[index]", nil) }
func (n *Subscript) Span() (start, end token.Pos) {
	start, _ = n.Value.Span()
	return start, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *Subscript) Walk(v Visitor) {
	Walk(v, n.Value)
	Walk(v, n.Index)
}
func (n *Subscript) expr() {}

func (n *Slice) Format(f fmt.State, verb rune) { format(f, verb, n, "slice", nil) }
func (n *Slice) Span() (start, end token.Pos) {
	switch {
	case n.Step != nil:
		_, end = n.Step.Span()
	case n.Colon2.IsValid():
		end = n.Colon2 + 1
	case n.Upper != nil:
		_, end = n.Upper.Span()
	default:
		end = n.Colon1 + 1
	}
	if n.Lower != nil {
		start, _ = n.Lower.Span()
	} else {
		start = n.Colon1
	}
	return start, end
}
func (n *Slice) Walk(v Visitor) {
	if n.Lower != nil {
		Walk(v, n.Lower)
	}
	if n.Upper != nil {
		Walk(v, n.Upper)
	}
	if n.Step != nil {
		Walk(v, n.Step)
	}
}
func (n *Slice) expr() {}

func (n *Name) Format(f fmt.State, verb rune) { format(f, verb, n, n.Id, nil) }
func (n *Name) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Id))
}
func (n *Name) Walk(_ Visitor) {}
func (n *Name) expr()          {}

func (n *Constant) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Kind.String()+" "+n.Raw, nil)
}
func (n *Constant) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *Constant) Walk(_ Visitor) {}
func (n *Constant) expr()          {}

func (n *FormattedValue) Format(f fmt.State, verb rune) {
	format(f, verb, n, "formatted value", nil)
}
func (n *FormattedValue) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + 1
}
func (n *FormattedValue) Walk(v Visitor) {
	Walk(v, n.Value)
	if n.FormatSpec != nil {
		Walk(v, n.FormatSpec)
	}
}
func (n *FormattedValue) expr() {}

func (n *JoinedStr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "f-string", map[string]int{"parts": len(n.Values)})
}
func (n *JoinedStr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *JoinedStr) Walk(v Visitor) {
	for _, e := range n.Values {
		Walk(v, e)
	}
}
func (n *JoinedStr) expr() {}

func (n *Yield) Format(f fmt.State, verb rune) { format(f, verb, n, "yield", nil) }
func (n *Yield) Span() (start, end token.Pos) {
	end = n.Start + token.Pos(len(token.YIELD.String()))
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return n.Start, end
}
func (n *Yield) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Yield) expr() {}

func (n *YieldFrom) Format(f fmt.State, verb rune) { format(f, verb, n, "yield from", nil) }
func (n *YieldFrom) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Start, end
}
func (n *YieldFrom) Walk(v Visitor) { Walk(v, n.Value) }
func (n *YieldFrom) expr()          {}

func (n *Await) Format(f fmt.State, verb rune) { format(f, verb, n, "await", nil) }
func (n *Await) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Start, end
}
func (n *Await) Walk(v Visitor) { Walk(v, n.Value) }
func (n *Await) expr()          {}

func walkComprehensions(v Visitor, gens []*Comprehension) {
	for _, g := range gens {
		Walk(v, g.Target)
		Walk(v, g.Iter)
		for _, i := range g.Ifs {
			Walk(v, i)
		}
	}
}

func (n *ListComp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "listcomp", map[string]int{"generators": len(n.Generators)})
}
func (n *ListComp) Span() (start, end token.Pos) {
	return n.Lbrack, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *ListComp) Walk(v Visitor) {
	Walk(v, n.Elt)
	walkComprehensions(v, n.Generators)
}
func (n *ListComp) expr() {}

func (n *SetComp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "setcomp", map[string]int{"generators": len(n.Generators)})
}
func (n *SetComp) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *SetComp) Walk(v Visitor) {
	Walk(v, n.Elt)
	walkComprehensions(v, n.Generators)
}
func (n *SetComp) expr() {}

func (n *DictComp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "dictcomp", map[string]int{"generators": len(n.Generators)})
}
func (n *DictComp) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *DictComp) Walk(v Visitor) {
	Walk(v, n.Key)
	Walk(v, n.Value)
	walkComprehensions(v, n.Generators)
}
func (n *DictComp) expr() {}

func (n *GeneratorExp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "genexp", map[string]int{"generators": len(n.Generators)})
}
func (n *GeneratorExp) Span() (start, end token.Pos) {
	if n.Lparen.IsValid() {
		return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
	}
	start, _ = n.Elt.Span()
	last := n.Generators[len(n.Generators)-1]
	if len(last.Ifs) > 0 {
		_, end = last.Ifs[len(last.Ifs)-1].Span()
	} else {
		_, end = last.Iter.Span()
	}
	return start, end
}
func (n *GeneratorExp) Walk(v Visitor) {
	Walk(v, n.Elt)
	walkComprehensions(v, n.Generators)
}
func (n *GeneratorExp) expr() {}
