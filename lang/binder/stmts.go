package binder

import (
	"github.com/mna/pybind/lang/ast"
)

// bindSuite walks each statement of s in order (§4.3's tree-walker). Once
// currentFlow becomes Unreachable, the remainder of the suite is reported
// once as dead code (§4.6) — but every statement is still walked, because
// assignment targets must still be bound (so later code that references
// them by name resolves) and yield expressions inside dead code must still
// be recorded so the enclosing function is still recognized as a generator
// (§4.6, P7).
func (b *Binder) bindSuite(s *ast.Suite) {
	if s == nil {
		return
	}
	marked := false
	for i, stmt := range s.Stmts {
		if b.currentFlow == Unreachable && !marked {
			start, _ := stmt.Span()
			_, end := s.Stmts[len(s.Stmts)-1].Span()
			if i == len(s.Stmts)-1 {
				_, end = stmt.Span()
			}
			b.sink.AddUnusedCode(toDiagRange(Range{Start: start, End: end}), "code is unreachable")
			marked = true
		}
		b.bindStmt(stmt)
	}
}

func (b *Binder) bindStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		b.bindFunctionDef(s)
	case *ast.ClassDef:
		b.bindClassDef(s)
	case *ast.Assign:
		b.bindAssign(s)
	case *ast.AugAssign:
		b.bindAugAssign(s)
	case *ast.AnnAssign:
		b.bindAnnAssign(s)
	case *ast.Delete:
		b.bindDeleteStmt(s)
	case *ast.Return:
		b.bindReturn(s)
	case *ast.Pass:
		// nothing to bind.
	case *ast.Break:
		b.bindBreak(s)
	case *ast.Continue:
		b.bindContinue(s)
	case *ast.Raise:
		b.bindRaise(s)
	case *ast.Global:
		b.bindGlobal(s)
	case *ast.Nonlocal:
		b.bindNonlocal(s)
	case *ast.Import:
		b.bindImport(s)
	case *ast.ImportFrom:
		b.bindImportFrom(s)
	case *ast.If:
		b.bindIf(s)
	case *ast.While:
		b.bindWhile(s)
	case *ast.For:
		b.bindFor(s)
	case *ast.Try:
		b.bindTry(s)
	case *ast.With:
		b.bindWith(s)
	case *ast.Assert:
		b.bindAssert(s)
	case *ast.ExprStmt:
		b.bindExpr(s.Value)
	default:
		panic("binder: unhandled statement type")
	}
}

// localFlags computes the flag set a newly-bound local in the current scope
// gets (§3's Symbol flag policy): every fresh local starts InitiallyUnbound,
// plus ClassMember when the binding happens directly in a class body.
func (b *Binder) localFlags() SymbolFlags {
	f := InitiallyUnbound
	if b.currentScope.Kind == ClassScope {
		f |= ClassMember
	}
	return f
}

func (b *Binder) addCodeFlowRef(key string) {
	if b.refScopeNode != nil {
		b.info.addCodeFlowReference(b.refScopeNode, key)
	}
}

// addToExceptTargets registers f as a potential entry antecedent of every
// except-handler label currently in scope (§4.4): any point that can raise —
// an assignment, a member store, a call — must be visible to a surrounding
// try's handlers.
func (b *Binder) addToExceptTargets(f FlowNode) {
	for _, t := range b.exceptTargets {
		t.addAntecedents(f)
	}
}

func allParams(p *ast.Parameters) []*ast.Param {
	if p == nil {
		return nil
	}
	out := make([]*ast.Param, 0, len(p.Args)+len(p.KwOnly)+2)
	out = append(out, p.Args...)
	if p.VarArg != nil {
		out = append(out, p.VarArg)
	}
	out = append(out, p.KwOnly...)
	if p.KwArg != nil {
		out = append(out, p.KwArg)
	}
	return out
}

func nearestFunctionOrModuleScope(s *Scope) *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Kind == FunctionScope || sc.Kind == ModuleScope {
			return sc
		}
	}
	return s.GlobalScope()
}

func isFinalAnnotation(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Name:
		return v.Id == "Final"
	case *ast.Attribute:
		return v.Attr.Id == "Final"
	case *ast.Subscript:
		return isFinalAnnotation(v.Value)
	default:
		return false
	}
}

// bindFunctionDef implements §4.3's deferred-binding rule: the signature
// (decorators, parameter defaults/annotations, return annotation) is bound
// immediately, in the enclosing scope; the body is queued and walked only
// after the whole module has been walked, so that outer-scope symbols
// assigned anywhere in the enclosing suite — including after this def — are
// visible inside the function (GLOSSARY "deferred binding").
func (b *Binder) bindFunctionDef(fn *ast.FunctionDef) {
	isMethod := b.currentScope.Kind == ClassScope

	for _, d := range fn.Decorators {
		b.bindExpr(d)
	}
	for _, p := range allParams(fn.Params) {
		if p.Annotation != nil {
			b.bindExpr(p.Annotation)
		}
		if p.Default != nil {
			b.bindExpr(p.Default)
		}
	}
	if fn.Returns != nil {
		b.bindExpr(fn.Returns)
	}

	decl := &FunctionDecl{Node: fn, IsMethod: isMethod, Range: SpanOf(fn)}
	sym := b.currentScope.AddSymbol(fn.Name.Id, b.localFlags())
	sym.AddDeclaration(decl)
	b.info.setDeclaration(fn, decl)

	b.currentFlow = newAssignmentNode(fn.Name, b.currentFlow, sym.ID, false)
	b.info.setFlow(fn.Name, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
	b.addCodeFlowRef(fn.Name.Id)

	parent := nearestFunctionOrModuleScope(b.currentScope)
	fnScope := NewScope(FunctionScope, parent)
	b.info.setScope(fn, fnScope)

	d := deferredBody{
		scope:        fnScope,
		notLocal:     make(map[string]notLocalKind),
		refScopeNode: fn,
		fn:           fn,
		decl:         decl,
		isMethod:     isMethod,
		isAsync:      fn.Async.IsValid(),
	}
	if isMethod {
		d.classScope = b.currentScope
		d.className = b.currentClassName
		d.isStaticMethod = hasDecorator(fn.Decorators, "staticmethod")
		// "__new__" is an implicit classmethod, no decorator required.
		d.isClassMethod = hasDecorator(fn.Decorators, "classmethod") || fn.Name.Id == "__new__"
		if !d.isStaticMethod && len(fn.Params.Args) > 0 {
			d.selfParamName = fn.Params.Args[0].Name.Id
		}
	}
	b.enqueueDeferred(d)
}

func hasDecorator(decorators []ast.Expr, name string) bool {
	for _, d := range decorators {
		switch v := d.(type) {
		case *ast.Name:
			if v.Id == name {
				return true
			}
		case *ast.Attribute:
			if v.Attr.Id == name {
				return true
			}
		}
	}
	return false
}

func (b *Binder) bindClassDef(cls *ast.ClassDef) {
	for _, d := range cls.Decorators {
		b.bindExpr(d)
	}
	for _, base := range cls.Bases {
		b.bindExpr(base)
	}
	for _, kw := range cls.Keywords {
		b.bindExpr(kw.Value)
	}

	decl := &ClassDecl{Node: cls, Range: SpanOf(cls)}
	sym := b.currentScope.AddSymbol(cls.Name.Id, b.localFlags())
	sym.AddDeclaration(decl)
	b.info.setDeclaration(cls, decl)

	classScope := NewScope(ClassScope, b.currentScope)
	b.info.setScope(cls, classScope)

	savedClassName := b.currentClassName
	b.currentClassName = cls.Name.Id
	b.withNewScope(ClassScope, classScope, nil, func() {
		nameSym := b.currentScope.AddSymbol("__name__", InitiallyUnbound)
		nameSym.AddDeclaration(&IntrinsicDecl{Name: "__name__", Kind: IntrinsicStr})
		qnSym := b.currentScope.AddSymbol("__qualname__", InitiallyUnbound)
		qnSym.AddDeclaration(&IntrinsicDecl{Name: "__qualname__", Kind: IntrinsicStr})
		moduleSym := b.currentScope.AddSymbol("__module__", InitiallyUnbound)
		moduleSym.AddDeclaration(&IntrinsicDecl{Name: "__module__", Kind: IntrinsicStr})

		b.bindSuite(cls.Body)
	})
	b.currentClassName = savedClassName

	// A class body executes immediately at the point of the ClassDef
	// statement, so the class name becomes bound only after its body runs.
	b.currentFlow = newAssignmentNode(cls.Name, b.currentFlow, sym.ID, false)
	b.info.setFlow(cls.Name, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
	b.addCodeFlowRef(cls.Name.Id)
}

func (b *Binder) bindAssign(a *ast.Assign) {
	b.bindExpr(a.Value)
	for _, t := range a.Targets {
		b.bindTarget(t, a.Value)
	}
}

// bindTarget recursively binds an assignment target, handling unpacking
// (tuple/list targets), starred targets, plain names, member-access targets
// (§4.5) and subscript targets (which use, but never declare, a symbol).
func (b *Binder) bindTarget(target ast.Expr, value ast.Expr) {
	switch t := target.(type) {
	case *ast.Name:
		sym := b.currentScope.AddSymbol(t.Id, b.localFlags())
		sym.AddDeclaration(&VariableDecl{Node: t, InferredTypeSource: value, Range: SpanOf(t)})
		b.currentFlow = newAssignmentNode(t, b.currentFlow, sym.ID, false)
		b.info.setFlow(t, b.currentFlow)
		b.addToExceptTargets(b.currentFlow)
		b.addCodeFlowRef(t.Id)
	case *ast.Attribute:
		b.bindExpr(t.Value)
		b.bindMemberAccess(t, value)
	case *ast.Subscript:
		b.bindExpr(t.Value)
		b.bindExpr(t.Index)
		b.addToExceptTargets(b.currentFlow)
	case *ast.Starred:
		b.bindTarget(t.Value, nil)
	case *ast.TupleExpr:
		for _, el := range t.Elts {
			b.bindTarget(el, nil)
		}
	case *ast.ListExpr:
		for _, el := range t.Elts {
			b.bindTarget(el, nil)
		}
	default:
		b.bindExpr(target)
	}
}

func (b *Binder) bindAugAssign(a *ast.AugAssign) {
	b.bindExpr(a.Target)
	b.bindExpr(a.Value)
	// The destination is both a use (above) and an inferred-assignment
	// target: "x += 1" both reads and rebinds x.
	b.bindTarget(a.Target, a.Value)
}

func (b *Binder) bindAnnAssign(a *ast.AnnAssign) {
	b.bindExpr(a.Annotation)
	if a.Value != nil {
		b.bindExpr(a.Value)
	}
	final := isFinalAnnotation(a.Annotation)

	if name, ok := a.Target.(*ast.Name); ok {
		sym := b.currentScope.AddSymbol(name.Id, b.localFlags())
		sym.AddDeclaration(&VariableDecl{
			Node:               name,
			IsFinal:            final,
			TypeAnnotation:     a.Annotation,
			InferredTypeSource: a.Value,
			Range:              SpanOf(name),
		})
		if a.Value != nil {
			b.currentFlow = newAssignmentNode(name, b.currentFlow, sym.ID, false)
			b.info.setFlow(name, b.currentFlow)
			b.addToExceptTargets(b.currentFlow)
		}
		b.addCodeFlowRef(name.Id)
		return
	}
	// An annotated member target ("self.x: int") still uses the member-
	// access heuristic; the annotation was already walked above.
	switch a.Target.(type) {
	case *ast.Attribute, *ast.Subscript:
		b.bindTarget(a.Target, a.Value)
	default:
		b.addError(a.Target, "unsupported annotation target")
		b.bindExpr(a.Target)
	}
}

func (b *Binder) bindDeleteStmt(d *ast.Delete) {
	for _, t := range d.Targets {
		b.bindDelTarget(t)
	}
}

// bindDelTarget implements the resolved Open Question (SPEC_FULL.md §9): a
// del target is visited exactly once, producing a single AssignmentNode with
// Unbind set, rather than being treated as a use followed by a separate
// unbind.
func (b *Binder) bindDelTarget(t ast.Expr) {
	switch v := t.(type) {
	case *ast.Name:
		sym := b.currentScope.AddSymbol(v.Id, b.localFlags())
		b.currentFlow = newAssignmentNode(v, b.currentFlow, sym.ID, true)
		b.info.setFlow(v, b.currentFlow)
		b.addToExceptTargets(b.currentFlow)
	case *ast.Attribute:
		b.bindExpr(v.Value)
	case *ast.Subscript:
		b.bindExpr(v.Value)
		b.bindExpr(v.Index)
	case *ast.TupleExpr:
		for _, el := range v.Elts {
			b.bindDelTarget(el)
		}
	case *ast.ListExpr:
		for _, el := range v.Elts {
			b.bindDelTarget(el)
		}
	default:
		b.bindExpr(t)
	}
}

func (b *Binder) bindReturn(r *ast.Return) {
	if r.Value != nil {
		b.bindExpr(r.Value)
	}
	if b.currentFn != nil && r.Value != nil {
		b.currentFn.ReturnExpressions = append(b.currentFn.ReturnExpressions, r.Value)
	}
	b.info.setFlow(r, b.currentFlow)
	if b.returnTarget != nil {
		b.returnTarget.addAntecedents(b.currentFlow)
	}
	if b.finallyTarget != nil {
		b.finallyTarget.addAntecedents(b.currentFlow)
	}
	b.currentFlow = Unreachable
}

func (b *Binder) bindBreak(s *ast.Break) {
	b.info.setFlow(s, b.currentFlow)
	if b.loopBreakTarget != nil {
		b.loopBreakTarget.addAntecedents(b.currentFlow)
	} else {
		b.addError(s, "'break' outside loop")
	}
	if b.finallyTarget != nil {
		b.finallyTarget.addAntecedents(b.currentFlow)
	}
	b.currentFlow = Unreachable
}

func (b *Binder) bindContinue(s *ast.Continue) {
	b.info.setFlow(s, b.currentFlow)
	if b.loopContinueTarget != nil {
		b.loopContinueTarget.addAntecedents(b.currentFlow)
	} else {
		b.addError(s, "'continue' not properly in loop")
	}
	if b.finallyTarget != nil {
		b.finallyTarget.addAntecedents(b.currentFlow)
	}
	b.currentFlow = Unreachable
}

func (b *Binder) bindRaise(r *ast.Raise) {
	if r.Exc != nil {
		b.bindExpr(r.Exc)
	}
	if r.Cause != nil {
		b.bindExpr(r.Cause)
	}
	if r.Exc == nil && !b.inExceptHandler {
		b.addError(r, "a bare 'raise' is only valid inside an except clause")
	}
	b.info.setFlow(r, b.currentFlow)
	if b.finallyTarget != nil {
		b.finallyTarget.addAntecedents(b.currentFlow)
	}
	b.currentFlow = Unreachable
}

func (b *Binder) bindGlobal(g *ast.Global) {
	if b.currentScope.Kind == ModuleScope || b.currentScope.Kind == BuiltinScope {
		return
	}
	for _, n := range g.Names {
		if b.notLocal[n.Id] == notLocalNonlocal {
			b.addError(n, "name %q is nonlocal and global", n.Id)
		}
		if sym, ok := b.currentScope.Lookup(n.Id); ok && len(sym.Declarations()) > 0 {
			b.addError(n, "name %q is assigned to before global declaration", n.Id)
		}
		b.notLocal[n.Id] = notLocalGlobal
		global := b.currentScope.GlobalScope()
		global.AddSymbol(n.Id, InitiallyUnbound)
	}
}

func (b *Binder) bindNonlocal(nl *ast.Nonlocal) {
	if b.currentScope.Kind == ModuleScope || b.currentScope.Kind == BuiltinScope {
		b.addError(nl, "nonlocal declaration not allowed at module level")
		return
	}
	for _, n := range nl.Names {
		if b.notLocal[n.Id] == notLocalGlobal {
			b.addError(n, "name %q is nonlocal and global", n.Id)
		}
		if sym, ok := b.currentScope.Lookup(n.Id); ok && len(sym.Declarations()) > 0 {
			b.addError(n, "name %q is assigned to before nonlocal declaration", n.Id)
		}
		found := false
		for sc := b.currentScope.Parent; sc != nil && sc.Kind == FunctionScope; sc = sc.Parent {
			if _, ok := sc.Lookup(n.Id); ok {
				found = true
				break
			}
		}
		if !found {
			b.addError(n, "no binding for nonlocal %q found", n.Id)
		}
		b.notLocal[n.Id] = notLocalNonlocal
	}
}

func (b *Binder) bindIf(s *ast.If) {
	trueLabel := newBranchLabel()
	falseLabel := newBranchLabel()
	b.bindConditional(s.Test, trueLabel, falseLabel)

	postLabel := newBranchLabel()

	b.currentFlow = finish(trueLabel)
	b.bindSuite(s.Body)
	postLabel.addAntecedents(b.currentFlow)

	b.currentFlow = finish(falseLabel)
	if s.Orelse != nil {
		b.bindSuite(s.Orelse)
	}
	postLabel.addAntecedents(b.currentFlow)

	b.currentFlow = finish(postLabel)
}

func (b *Binder) bindWhile(w *ast.While) {
	loopLabel := newLoopLabel()
	loopLabel.addAntecedents(b.currentFlow)
	// A LoopLabel is never reduced via finish: it is referenced by identity
	// as the test's antecedent before its back-edge (added below, after the
	// body is walked) is known, so collapsing it early would leave a dangling
	// reference.
	b.currentFlow = loopLabel

	trueLabel := newBranchLabel()
	falseLabel := newBranchLabel()
	b.bindConditional(w.Test, trueLabel, falseLabel)
	bodyEntry := finish(trueLabel)
	exitFlow := finish(falseLabel)

	savedCont, savedBreak := b.loopContinueTarget, b.loopBreakTarget
	breakLabel := newBranchLabel()
	b.loopContinueTarget = loopLabel
	b.loopBreakTarget = breakLabel

	b.currentFlow = bodyEntry
	b.bindSuite(w.Body)
	loopLabel.addAntecedents(b.currentFlow)

	b.loopContinueTarget, b.loopBreakTarget = savedCont, savedBreak

	if w.Orelse != nil {
		b.currentFlow = exitFlow
		b.bindSuite(w.Orelse)
		exitFlow = b.currentFlow
	}
	breakLabel.addAntecedents(exitFlow)
	b.currentFlow = finish(breakLabel)
}

func (b *Binder) bindFor(fr *ast.For) {
	b.bindExpr(fr.Iter)

	loopLabel := newLoopLabel()
	loopLabel.addAntecedents(b.currentFlow)
	b.currentFlow = loopLabel

	b.bindTarget(fr.Target, fr.Iter)

	savedCont, savedBreak := b.loopContinueTarget, b.loopBreakTarget
	breakLabel := newBranchLabel()
	b.loopContinueTarget = loopLabel
	b.loopBreakTarget = breakLabel

	b.bindSuite(fr.Body)
	loopLabel.addAntecedents(b.currentFlow)

	b.loopContinueTarget, b.loopBreakTarget = savedCont, savedBreak

	// The loop may run zero iterations, so "falls out of the for" is
	// directly reachable from the loop merge point itself.
	exitFlow := FlowNode(loopLabel)
	if fr.Orelse != nil {
		b.currentFlow = exitFlow
		b.bindSuite(fr.Orelse)
		exitFlow = b.currentFlow
	}
	breakLabel.addAntecedents(exitFlow)
	b.currentFlow = finish(breakLabel)
}

// bindTry implements §4.4's try/except/else/finally model: every assignment
// (and member-store, and call) executed anywhere in the try body is a
// potential antecedent of each handler's entry label (an exception can
// interrupt execution after any one of them); the optional finally clause
// is entered from the normal completion path merged with a
// PreFinallyGateNode whose antecedent collects every early-exit path
// (return/raise/break/continue) taken from inside the protected region, and
// is exited through a PostFinallyNode when the normal completion path is
// reachable (P5), or into Unreachable when it is not.
func (b *Binder) bindTry(t *ast.Try) {
	savedExcept := b.exceptTargets
	savedFinally := b.finallyTarget

	var finallyLabel *BranchLabel
	if t.Finalbody != nil {
		finallyLabel = newBranchLabel()
		b.finallyTarget = finallyLabel
	}

	exceptLabels := make([]*BranchLabel, len(t.Handlers))
	for i := range t.Handlers {
		exceptLabels[i] = newBranchLabel()
	}
	outerExcept := b.exceptTargets
	b.exceptTargets = append(append([]*BranchLabel{}, outerExcept...), exceptLabels...)

	b.bindSuite(t.Body)
	bodyEndFlow := b.currentFlow

	b.exceptTargets = outerExcept

	postLabel := newBranchLabel()
	if t.Orelse != nil {
		b.currentFlow = bodyEndFlow
		b.bindSuite(t.Orelse)
		postLabel.addAntecedents(b.currentFlow)
	} else {
		postLabel.addAntecedents(bodyEndFlow)
	}

	for i, h := range t.Handlers {
		b.currentFlow = finish(exceptLabels[i])
		wasInExcept := b.inExceptHandler
		b.inExceptHandler = true

		if h.Type != nil {
			b.bindExpr(h.Type)
		}
		if h.Name != nil {
			sym := b.currentScope.AddSymbol(h.Name.Id, b.localFlags())
			sym.AddDeclaration(&VariableDecl{Node: h.Name, Range: SpanOf(h.Name)})
			b.currentFlow = newAssignmentNode(h.Name, b.currentFlow, sym.ID, false)
			b.info.setFlow(h.Name, b.currentFlow)
		}

		b.bindSuite(h.Body)

		if h.Name != nil {
			if sym, ok := b.currentScope.Lookup(h.Name.Id); ok {
				b.currentFlow = newAssignmentNode(h.Name, b.currentFlow, sym.ID, true)
			}
		}

		b.inExceptHandler = wasInExcept
		postLabel.addAntecedents(b.currentFlow)
	}

	b.currentFlow = finish(postLabel)
	b.finallyTarget = savedFinally

	if t.Finalbody != nil {
		gate := newPreFinallyGateNode(finish(finallyLabel))
		preFinallyLabel := newBranchLabel()
		preFinallyLabel.addAntecedents(b.currentFlow, gate)
		normalReachable := b.currentFlow != Unreachable
		b.currentFlow = finish(preFinallyLabel)
		b.bindSuite(t.Finalbody)
		if normalReachable {
			b.currentFlow = newPostFinallyNode(b.currentFlow, gate)
		} else {
			b.currentFlow = Unreachable
		}
	}
}

func (b *Binder) bindWith(w *ast.With) {
	for _, item := range w.Items {
		b.bindExpr(item.ContextExpr)
		if item.OptionalVars != nil {
			b.bindTarget(item.OptionalVars, item.ContextExpr)
		}
	}
	// Entering/exiting a context manager can raise.
	b.addToExceptTargets(b.currentFlow)
	b.bindSuite(w.Body)
}

func (b *Binder) bindAssert(a *ast.Assert) {
	trueLabel := newBranchLabel()
	falseLabel := newBranchLabel()
	b.bindConditional(a.Test, trueLabel, falseLabel)

	if a.Msg != nil {
		b.currentFlow = finish(falseLabel)
		b.bindExpr(a.Msg)
	}
	// A failed assertion raises, so only the true branch continues.
	b.currentFlow = finish(trueLabel)
}

// runDeferredBody binds one queued function or lambda body (§4.3): restores
// the captured scope/notLocal/refScopeNode, opens a fresh Start flow,
// injects function intrinsics and parameters, walks the body, and computes
// the function's merged return flow from the end-of-suite flow plus every
// return statement's antecedent.
func (b *Binder) runDeferredBody(d deferredBody) {
	savedScope, savedNotLocal, savedRefNode := b.currentScope, b.notLocal, b.refScopeNode
	savedReturnTarget, savedFn := b.returnTarget, b.currentFn
	savedLoopCont, savedLoopBreak := b.loopContinueTarget, b.loopBreakTarget
	savedExcept, savedFinally := b.exceptTargets, b.finallyTarget
	savedFlow := b.currentFlow
	savedAsync := b.inAsyncFn
	savedInExcept := b.inExceptHandler
	savedClassScope := b.currentClassScope
	savedClassName := b.currentClassName
	savedSelfParam := b.currentSelfParamName
	savedIsStatic := b.currentIsStaticMethod
	savedIsClassM := b.currentIsClassMethod

	b.currentScope = d.scope
	b.notLocal = d.notLocal
	b.refScopeNode = d.refScopeNode
	b.returnTarget = newBranchLabel()
	b.currentFn = d.decl
	b.loopContinueTarget = nil
	b.loopBreakTarget = nil
	b.exceptTargets = nil
	b.finallyTarget = nil
	b.inAsyncFn = d.isAsync
	b.inExceptHandler = false
	b.currentClassScope = d.classScope
	b.currentClassName = d.className
	b.currentSelfParamName = d.selfParamName
	b.currentIsStaticMethod = d.isStaticMethod
	b.currentIsClassMethod = d.isClassMethod

	b.currentFlow = newStartNode()

	switch {
	case d.fn != nil:
		for _, name := range functionIntrinsics {
			sym := b.currentScope.AddSymbol(name, InitiallyUnbound)
			sym.AddDeclaration(&IntrinsicDecl{Name: name, Kind: IntrinsicStr})
		}
		if d.isMethod {
			sym := b.currentScope.AddSymbol("__class__", InitiallyUnbound)
			sym.AddDeclaration(&IntrinsicDecl{Name: "__class__", Kind: IntrinsicClass})
		}
		b.bindParams(d.fn.Params)
		b.bindSuite(d.fn.Body)

		b.returnTarget.addAntecedents(b.currentFlow)
		final := finish(b.returnTarget)
		b.info.setAfterFlow(d.fn, final)
		b.info.setAfterFlow(d.fn.Body, final)
		if d.decl != nil {
			d.decl.IsGenerator = len(d.decl.YieldExpressions) > 0
		}

	case d.lambda != nil:
		b.bindParams(d.lambda.Params)
		b.bindExpr(d.lambda.Body)

		b.returnTarget.addAntecedents(b.currentFlow)
		final := finish(b.returnTarget)
		b.info.setAfterFlow(d.lambda, final)
	}

	b.currentScope, b.notLocal, b.refScopeNode = savedScope, savedNotLocal, savedRefNode
	b.returnTarget, b.currentFn = savedReturnTarget, savedFn
	b.loopContinueTarget, b.loopBreakTarget = savedLoopCont, savedLoopBreak
	b.exceptTargets, b.finallyTarget = savedExcept, savedFinally
	b.currentFlow = savedFlow
	b.inAsyncFn = savedAsync
	b.inExceptHandler = savedInExcept
	b.currentClassScope = savedClassScope
	b.currentClassName = savedClassName
	b.currentSelfParamName = savedSelfParam
	b.currentIsStaticMethod = savedIsStatic
	b.currentIsClassMethod = savedIsClassM
}

func (b *Binder) bindParams(params *ast.Parameters) {
	for _, p := range allParams(params) {
		sym := b.currentScope.AddSymbol(p.Name.Id, InitiallyUnbound)
		sym.AddDeclaration(&ParameterDecl{Node: p, Range: SpanOf(p.Name)})
		b.currentFlow = newAssignmentNode(p.Name, b.currentFlow, sym.ID, false)
		b.info.setFlow(p.Name, b.currentFlow)
	}
}
