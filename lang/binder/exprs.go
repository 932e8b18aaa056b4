package binder

import (
	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/token"
)

// bindExpr walks an expression for its side effects on the flow graph and
// symbol table: every Name/Attribute read is stamped with the current flow
// (§6, consumed by the out-of-scope narrowing pass), every call site gets a
// CallNode and becomes a potential exception source (§4.4), comprehensions
// get their own scope, and yield/yield-from expressions mark the enclosing
// function as a generator (§4.6, P7).
func (b *Binder) bindExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Name:
		b.info.setFlow(n, b.currentFlow)
		b.addCodeFlowRef(n.Id)
	case *ast.Constant:
		b.checkStringEscapes(n)
	case *ast.BoolOp:
		trueLabel := newBranchLabel()
		falseLabel := newBranchLabel()
		b.bindConditional(n, trueLabel, falseLabel)
		postLabel := newBranchLabel()
		postLabel.addAntecedents(finish(trueLabel), finish(falseLabel))
		b.currentFlow = finish(postLabel)
	case *ast.BinOp:
		b.bindExpr(n.Left)
		b.bindExpr(n.Right)
	case *ast.UnaryOp:
		b.bindExpr(n.Operand)
	case *ast.Lambda:
		b.bindLambda(n)
	case *ast.IfExp:
		b.bindIfExp(n)
	case *ast.Dict:
		for i, k := range n.Keys {
			if k != nil {
				b.bindExpr(k)
			}
			b.bindExpr(n.Values[i])
		}
	case *ast.Set:
		for _, el := range n.Elts {
			b.bindExpr(el)
		}
	case *ast.ListExpr:
		for _, el := range n.Elts {
			b.bindExpr(el)
		}
	case *ast.TupleExpr:
		for _, el := range n.Elts {
			b.bindExpr(el)
		}
	case *ast.Compare:
		b.bindExpr(n.Left)
		for _, c := range n.Comparators {
			b.bindExpr(c)
		}
	case *ast.Call:
		b.bindCall(n)
	case *ast.NamedExpr:
		b.bindNamedExpr(n)
	case *ast.Starred:
		b.bindExpr(n.Value)
	case *ast.Attribute:
		b.bindExpr(n.Value)
		b.info.setFlow(n, b.currentFlow)
	case *ast.Subscript:
		b.bindExpr(n.Value)
		b.bindExpr(n.Index)
	case *ast.Slice:
		if n.Lower != nil {
			b.bindExpr(n.Lower)
		}
		if n.Upper != nil {
			b.bindExpr(n.Upper)
		}
		if n.Step != nil {
			b.bindExpr(n.Step)
		}
	case *ast.FormattedValue:
		b.checkFormattedValueBraces(n)
		b.bindExpr(n.Value)
		if n.FormatSpec != nil {
			b.bindExpr(n.FormatSpec)
		}
	case *ast.JoinedStr:
		for _, v := range n.Values {
			if lit, ok := v.(*ast.Constant); ok {
				b.checkFStringLiteralEscapes(lit)
				continue
			}
			b.bindExpr(v)
		}
	case *ast.Yield:
		if n.Value != nil {
			b.bindExpr(n.Value)
		}
		b.recordYield(n, false)
	case *ast.YieldFrom:
		b.bindExpr(n.Value)
		b.recordYield(n, true)
	case *ast.Await:
		b.bindExpr(n.Value)
		if !b.inAsyncFn {
			b.addError(n, "'await' is only valid inside an async function")
		}
	case *ast.ListComp:
		b.bindComprehension(n.Generators, []ast.Expr{n.Elt}, n)
	case *ast.SetComp:
		b.bindComprehension(n.Generators, []ast.Expr{n.Elt}, n)
	case *ast.DictComp:
		b.bindComprehension(n.Generators, []ast.Expr{n.Key, n.Value}, n)
	case *ast.GeneratorExp:
		b.bindComprehension(n.Generators, []ast.Expr{n.Elt}, n)
	default:
		panic("binder: unhandled expression type")
	}
}

func (b *Binder) recordYield(e ast.Expr, isFrom bool) {
	if b.currentFn == nil {
		b.addError(e, "'yield' not allowed outside of a function")
	} else {
		b.currentFn.YieldExpressions = append(b.currentFn.YieldExpressions, e)
	}
	if isFrom && b.inAsyncFn {
		b.addError(e, "'yield from' not allowed inside an async function")
	}
	b.info.setFlow(e, b.currentFlow)
}

func (b *Binder) bindCall(c *ast.Call) {
	b.bindExpr(c.Func)
	for _, a := range c.Args {
		b.bindExpr(a)
	}
	for _, k := range c.Keywords {
		b.bindExpr(k.Value)
	}
	b.currentFlow = newCallNode(c, b.currentFlow)
	b.info.setFlow(c, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
}

// bindNamedExpr implements the resolved Open Question on assignment
// expressions (SPEC_FULL.md §9): a walrus target always binds in the
// nearest enclosing *execution* scope, skipping over any Class or
// Comprehension scope the expression happens to be nested in — so
// "[y := x for x in xs]" binds y in the scope containing the comprehension,
// not inside the comprehension's own scope.
func (b *Binder) bindNamedExpr(n *ast.NamedExpr) {
	b.bindExpr(n.Value)
	target := b.currentScope.NearestExecutionScope()
	for sc := b.currentScope; sc != nil && sc != target; sc = sc.Parent {
		if _, ok := sc.Lookup(n.Target.Id); ok {
			b.addError(n.Target, "assignment expression target %q collides with local %q in enclosing comprehension", n.Target.Id, n.Target.Id)
			break
		}
	}
	sym := target.AddSymbol(n.Target.Id, InitiallyUnbound)
	sym.AddDeclaration(&VariableDecl{Node: n.Target, InferredTypeSource: n.Value, Range: SpanOf(n.Target)})
	b.currentFlow = newAssignmentNode(n.Target, b.currentFlow, sym.ID, false)
	b.info.setFlow(n.Target, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
}

func (b *Binder) bindLambda(lam *ast.Lambda) {
	for _, p := range allParams(lam.Params) {
		if p.Default != nil {
			b.bindExpr(p.Default)
		}
	}

	lamScope := NewScope(FunctionScope, nearestFunctionOrModuleScope(b.currentScope))
	b.info.setScope(lam, lamScope)

	b.enqueueDeferred(deferredBody{
		scope:        lamScope,
		notLocal:     make(map[string]notLocalKind),
		refScopeNode: lam,
		lambda:       lam,
		isAsync:      b.inAsyncFn,
	})
}

func (b *Binder) bindIfExp(n *ast.IfExp) {
	trueLabel := newBranchLabel()
	falseLabel := newBranchLabel()
	b.bindConditional(n.Test, trueLabel, falseLabel)

	postLabel := newBranchLabel()

	b.currentFlow = finish(trueLabel)
	b.bindExpr(n.Body)
	postLabel.addAntecedents(b.currentFlow)

	b.currentFlow = finish(falseLabel)
	b.bindExpr(n.Orelse)
	postLabel.addAntecedents(b.currentFlow)

	b.currentFlow = finish(postLabel)
}

// bindConditional implements §4.4's narrowing-expression binding: "and"/"or"
// chains are decomposed into their proper short-circuit flow (each
// non-final operand gets its own intermediate label), "not" swaps its
// true/false targets, and anything else gets a TrueConditionNode/
// FalseConditionNode pair recording the tested expression for the
// (out-of-scope) narrowing pass to interpret.
func (b *Binder) bindConditional(expr ast.Expr, trueTarget, falseTarget flowTarget) {
	switch e := expr.(type) {
	case *ast.BoolOp:
		if e.Op == token.AND {
			b.bindAndConditional(e.Values, trueTarget, falseTarget)
		} else {
			b.bindOrConditional(e.Values, trueTarget, falseTarget)
		}
	case *ast.UnaryOp:
		if e.Op == token.NOT {
			b.bindConditional(e.Operand, falseTarget, trueTarget)
			return
		}
		b.bindExpr(e)
		b.addNarrowedAntecedents(e, trueTarget, falseTarget)
	default:
		b.bindExpr(expr)
		b.addNarrowedAntecedents(expr, trueTarget, falseTarget)
	}
}

func (b *Binder) addNarrowedAntecedents(e ast.Expr, trueTarget, falseTarget flowTarget) {
	trueTarget.addAntecedents(newTrueConditionNode(e, b.currentFlow))
	falseTarget.addAntecedents(newFalseConditionNode(e, b.currentFlow))
}

func (b *Binder) bindAndConditional(values []ast.Expr, trueTarget, falseTarget flowTarget) {
	for i, v := range values {
		if i == len(values)-1 {
			b.bindConditional(v, trueTarget, falseTarget)
			return
		}
		next := newBranchLabel()
		b.bindConditional(v, next, falseTarget)
		b.currentFlow = finish(next)
	}
}

func (b *Binder) bindOrConditional(values []ast.Expr, trueTarget, falseTarget flowTarget) {
	for i, v := range values {
		if i == len(values)-1 {
			b.bindConditional(v, trueTarget, falseTarget)
			return
		}
		next := newBranchLabel()
		b.bindConditional(v, trueTarget, next)
		b.currentFlow = finish(next)
	}
}

// bindComprehension implements §3/§4.3's comprehension scoping: the first
// clause's iterable is evaluated in the enclosing scope (Python semantics —
// a comprehension's outermost "for"'s iterable is not deferred into the new
// scope), everything else — later iterables, conditions, targets and the
// result expression(s) — is bound inside a fresh ComprehensionScope.
func (b *Binder) bindComprehension(generators []*ast.Comprehension, elts []ast.Expr, node ast.Node) {
	if len(generators) == 0 {
		return
	}
	b.bindExpr(generators[0].Iter)

	compScope := NewScope(ComprehensionScope, b.currentScope)
	b.info.setScope(node, compScope)

	b.withNewScope(ComprehensionScope, compScope, nil, func() {
		for i, gen := range generators {
			if i > 0 {
				b.bindExpr(gen.Iter)
			}
			b.bindComprehensionTarget(gen.Target)
			for _, cond := range gen.Ifs {
				b.bindExpr(cond)
			}
		}
		for _, e := range elts {
			b.bindExpr(e)
		}
	})
}

// bindComprehensionTarget binds a comprehension's "for" target. When the
// target's name already has a binding somewhere in an enclosing scope, the
// comprehension's own binding is recorded as an AssignmentAliasNode rather
// than a plain AssignmentNode (§3): the comprehension scope leaks nothing to
// its parent (I3), but the narrowing pass still needs to see that the two
// symbols share a name so it can warn about the shadowing.
func (b *Binder) bindComprehensionTarget(target ast.Expr) {
	switch t := target.(type) {
	case *ast.Name:
		var outerSym *Symbol
		if b.currentScope.Parent != nil {
			outerSym, _ = b.currentScope.Parent.LookupRecursive(t.Id)
		}
		sym := b.currentScope.AddSymbol(t.Id, InitiallyUnbound)
		sym.AddDeclaration(&VariableDecl{Node: t, Range: SpanOf(t)})
		if outerSym != nil {
			b.currentFlow = newAssignmentAliasNode(b.currentFlow, outerSym.ID, sym.ID)
		} else {
			b.currentFlow = newAssignmentNode(t, b.currentFlow, sym.ID, false)
		}
		b.info.setFlow(t, b.currentFlow)
	case *ast.TupleExpr:
		for _, el := range t.Elts {
			b.bindComprehensionTarget(el)
		}
	case *ast.ListExpr:
		for _, el := range t.Elts {
			b.bindComprehensionTarget(el)
		}
	case *ast.Starred:
		b.bindComprehensionTarget(t.Value)
	default:
		b.bindExpr(target)
	}
}
