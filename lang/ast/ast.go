// Package ast defines the abstract syntax tree (AST) produced by the
// language's parser (out of this repository's scope — see the lang/binder
// package for the component that actually consumes these nodes).
//
// The tree is immutable once built: nothing in this repository mutates a
// node to record what it discovers about it. Instead, analyses annotate
// nodes through a side table keyed by node identity (see binder.Info), so
// the same *ast.Module can in principle be walked by several independent
// passes without interfering with each other.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/pybind/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. The only supported verbs are 'v' and 's'. The '#' flag prints
	// count information about child nodes. A width can be set to define the
	// number of runes to print for the node description - by default it is
	// padded with spaces on the left if the description is shorter, or
	// truncated to that width if longer. The '-' flag pads on the right
	// instead, and '+' prevents padding altogether (only truncates).
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk visits the node's children, in source order, with v.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node

	// IsLoop reports whether the statement introduces a loop (For/While).
	IsLoop() bool
}

// IsAssignable returns true if e can be a binding target: a bare Name, an
// Attribute, a Subscript, a Starred wrapping an assignable target, or a
// Tuple/List composed exclusively of assignable elements (to support
// unpacking targets like "a, (b, c) = pair").
func IsAssignable(e Expr) bool {
	switch e := e.(type) {
	case *Name, *Attribute, *Subscript:
		return true
	case *Starred:
		return IsAssignable(e.Value)
	case *TupleExpr:
		for _, el := range e.Elts {
			if !IsAssignable(el) {
				return false
			}
		}
		return true
	case *ListExpr:
		for _, el := range e.Elts {
			if !IsAssignable(el) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// format is the shared implementation behind every node's Format method. It
// renders a one-line label plus optional child counts, so every node kind
// prints consistently regardless of how many fields it carries.
func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")
	label = strings.ReplaceAll(label, "\v", "⭿")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
