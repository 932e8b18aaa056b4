package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mna/pybind/diag"
	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/token"
)

// --- small AST builders, one line of source per statement for readability.

var nextTestLine int

func resetTestLines() { nextTestLine = 1 }

func line() token.Pos {
	nextTestLine++
	return token.MakePos(nextTestLine, 1)
}

func name(id string) *ast.Name { return &ast.Name{Id: id, Start: line()} }

func intConst(v int64) *ast.Constant {
	return &ast.Constant{Kind: token.INT, Start: line(), Raw: "0", Value: v}
}

func noneConst() *ast.Constant { return &ast.Constant{Kind: token.NONE, Start: line(), Raw: "None"} }

func assignStmt(targetName string, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{name(targetName)}, Value: value}
}

func exprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Value: e} }

func suite(stmts ...ast.Stmt) *ast.Suite {
	start := line()
	return &ast.Suite{Start: start, End: start, Stmts: stmts}
}

func module(body *ast.Suite) *ast.Module {
	return &ast.Module{Name: "test.py", Body: body, EOF: line()}
}

func newTestBinder() (*Binder, *diag.Sink) {
	resetTestLines()
	file := &token.File{Name: "test.py"}
	sink := diag.NewSink(file, zap.NewNop())
	return New(file, &FileInfo{Path: "test.py"}, sink, nil), sink
}

// --- scenarios

func TestBindModule_AssignThenUseSharesSymbol(t *testing.T) {
	b, sink := newTestBinder()

	xTarget := name("x")
	xUse := name("x")
	mod := module(suite(
		&ast.Assign{Targets: []ast.Expr{xTarget}, Value: intConst(1)},
		exprStmt(xUse),
	))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	targetFlow, ok := b.Info().FlowNodeOf(xTarget)
	require.True(t, ok)
	assignment, ok := targetFlow.(*AssignmentNode)
	require.True(t, ok)

	useFlow, ok := b.Info().FlowNodeOf(xUse)
	require.True(t, ok)
	assert.Same(t, FlowNode(assignment), useFlow, "a use right after the assignment sees it directly, with no merge")

	sym, scope := b.moduleScope.LookupRecursive("x")
	require.NotNil(t, sym)
	assert.Same(t, b.moduleScope, scope)
	assert.Equal(t, sym.ID, assignment.TargetSymbolID)
}

func TestBindIf_MergesBothBranchesAtJoinPoint(t *testing.T) {
	b, sink := newTestBinder()

	test := name("cond")
	ifStmt := &ast.If{
		Test:   test,
		Body:   suite(assignStmt("x", intConst(1))),
		Orelse: suite(assignStmt("x", intConst(2))),
	}
	xUse := name("x")
	mod := module(suite(ifStmt, exprStmt(xUse)))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	flow, ok := b.Info().FlowNodeOf(xUse)
	require.True(t, ok)
	label, ok := flow.(*BranchLabel)
	require.True(t, ok, "a name read after two divergent branches must see the unreduced join label")
	assert.Len(t, label.Antecedents, 2)
}

func TestBindWhile_LoopLabelNeverReducedEarly(t *testing.T) {
	b, sink := newTestBinder()

	whileStmt := &ast.While{
		Test: name("cond"),
		Body: suite(assignStmt("x", intConst(1))),
	}
	mod := module(suite(whileStmt))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())
	// Reaching here without panicking on a stale reference to a reduced label
	// is itself the regression this guards: bindWhile references loopLabel by
	// identity as the test condition's antecedent before its back-edge is
	// added, so loopLabel must never have been collapsed by finish() first.
}

func TestDeferredFunctionBody_SeesSymbolAssignedAfterDef(t *testing.T) {
	b, sink := newTestBinder()

	fn := &ast.FunctionDef{
		Name:   name("f"),
		Params: &ast.Parameters{},
		Body:   suite(&ast.Return{Value: name("y")}),
	}
	mod := module(suite(
		fn,
		assignStmt("y", intConst(1)),
	))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	fnScope, ok := b.Info().ScopeOf(fn)
	require.True(t, ok)
	sym, owner := fnScope.LookupRecursive("y")
	require.NotNil(t, sym, "the module-level 'y' assigned after 'def f' must still be visible from f's body")
	assert.Same(t, b.moduleScope, owner)
}

func TestBindTry_AssignmentBecomesExceptHandlerAntecedent(t *testing.T) {
	b, sink := newTestBinder()

	xTarget := name("x")
	handlerName := name("e")
	tryStmt := &ast.Try{
		Body: suite(&ast.Assign{Targets: []ast.Expr{xTarget}, Value: intConst(1)}),
		Handlers: []*ast.ExceptHandler{
			{Name: handlerName, Body: suite(&ast.Pass{})},
		},
	}
	mod := module(suite(tryStmt))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	xFlow, ok := b.Info().FlowNodeOf(xTarget)
	require.True(t, ok)

	handlerFlow, ok := b.Info().FlowNodeOf(handlerName)
	require.True(t, ok)
	handlerAssign, ok := handlerFlow.(*AssignmentNode)
	require.True(t, ok)
	assert.Same(t, xFlow, handlerAssign.Antecedent, "the handler can only be entered right after the try body's one assignment raised")
}

func TestNamedExpr_InComprehension_BindsEnclosingExecutionScope(t *testing.T) {
	b, sink := newTestBinder()

	target := &ast.Name{Id: "y", Start: line()}
	walrus := &ast.NamedExpr{Target: target, Value: name("x")}
	comp := &ast.ListComp{
		Elt: walrus,
		Generators: []*ast.Comprehension{
			{Target: name("x"), Iter: name("xs")},
		},
	}
	mod := module(suite(exprStmt(comp)))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	compScope, ok := b.Info().ScopeOf(comp)
	require.True(t, ok)
	_, ok = compScope.Lookup("y")
	assert.False(t, ok, "a walrus target must not bind inside the comprehension's own scope")

	sym, ok := b.moduleScope.Lookup("y")
	require.True(t, ok, "it must bind in the nearest enclosing execution scope instead")
	assert.NotNil(t, sym)
}

func TestMemberAccess_InstanceAndClassMembersHeuristic(t *testing.T) {
	b, sink := newTestBinder()

	initMethod := &ast.FunctionDef{
		Name: name("__init__"),
		Params: &ast.Parameters{Args: []*ast.Param{{Name: name("self")}}},
		Body: suite(&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{Value: name("self"), Attr: name("x")}},
			Value:   intConst(1),
		}),
	}
	classMethod := &ast.FunctionDef{
		Decorators: []ast.Expr{name("classmethod")},
		Name:       name("make"),
		Params:     &ast.Parameters{Args: []*ast.Param{{Name: name("cls")}}},
		Body: suite(&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{Value: name("cls"), Attr: name("y")}},
			Value:   intConst(2),
		}),
	}
	staticMethod := &ast.FunctionDef{
		Decorators: []ast.Expr{name("staticmethod")},
		Name:       name("helper"),
		Params:     &ast.Parameters{Args: []*ast.Param{{Name: name("self")}}},
		Body: suite(&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{Value: name("self"), Attr: name("z")}},
			Value:   intConst(3),
		}),
	}
	cls := &ast.ClassDef{
		Name: name("C"),
		Body: suite(initMethod, classMethod, staticMethod),
	}
	mod := module(suite(cls))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	classScope, ok := b.Info().ScopeOf(cls)
	require.True(t, ok)

	xSym, ok := classScope.Lookup("x")
	require.True(t, ok)
	assert.True(t, xSym.Flags.Has(InstanceMember))

	ySym, ok := classScope.Lookup("y")
	require.True(t, ok)
	assert.True(t, ySym.Flags.Has(ClassMember))

	_, ok = classScope.Lookup("z")
	assert.False(t, ok, "a staticmethod's first parameter is just a parameter, not self/cls")
}

func TestWildcardImport_ForbiddenInsideClassBody(t *testing.T) {
	b, sink := newTestBinder()

	cls := &ast.ClassDef{
		Name: name("C"),
		Body: suite(&ast.ImportFrom{Module: []*ast.Name{name("os")}, IsStar: true}),
	}
	mod := module(suite(cls))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestWildcardImport_AtModuleScope_BindsAllNamesOrDunderAll(t *testing.T) {
	b, sink := newTestBinder()
	b.importLookup = func(path string) (*ImportLookupResult, bool) {
		if path == "pkg" {
			return &ImportLookupResult{Dunder__all__: []string{"foo", "bar"}}, true
		}
		return nil, false
	}

	mod := module(suite(&ast.ImportFrom{Module: []*ast.Name{name("pkg")}, IsStar: true}))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	_, ok := b.moduleScope.Lookup("foo")
	assert.True(t, ok)
	_, ok = b.moduleScope.Lookup("bar")
	assert.True(t, ok)
}

func TestImport_DottedChain_MergesIntoOneAliasDeclaration(t *testing.T) {
	b, sink := newTestBinder()

	mod := module(suite(
		&ast.Import{Names: []*ast.Alias{{Path: []*ast.Name{name("a"), name("b"), name("c")}}}},
		&ast.Import{Names: []*ast.Alias{{Path: []*ast.Name{name("a"), name("d")}}}},
	))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	sym, ok := b.moduleScope.Lookup("a")
	require.True(t, ok)
	require.Len(t, sym.Declarations(), 1, "a second 'import a.*' must extend the existing alias tree, not add a second declaration")

	alias := sym.Declarations()[0].(*AliasDecl)
	require.Contains(t, alias.ImplicitImports, "b")
	require.Contains(t, alias.ImplicitImports, "d")
	assert.Contains(t, alias.ImplicitImports["b"].ImplicitImports, "c")
}

func TestBreakOutsideLoop_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	mod := module(suite(&ast.Break{}))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestBareRaiseOutsideExcept_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	mod := module(suite(&ast.Raise{}))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestBareRaiseInsideExcept_NoError(t *testing.T) {
	b, sink := newTestBinder()
	tryStmt := &ast.Try{
		Body: suite(&ast.Pass{}),
		Handlers: []*ast.ExceptHandler{
			{Body: suite(&ast.Raise{})},
		},
	}
	mod := module(suite(tryStmt))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())
}

func TestAwaitOutsideAsyncFunction_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	mod := module(suite(exprStmt(&ast.Await{Value: noneConst()})))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestAwaitInsideAsyncFunction_NoError(t *testing.T) {
	b, sink := newTestBinder()
	fn := &ast.FunctionDef{
		Async:  line(),
		Name:   name("f"),
		Params: &ast.Parameters{},
		Body:   suite(exprStmt(&ast.Await{Value: noneConst()})),
	}
	mod := module(suite(fn))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())
}

func TestNonlocalWithoutEnclosingBinding_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	fn := &ast.FunctionDef{
		Name:   name("f"),
		Params: &ast.Parameters{},
		Body:   suite(&ast.Nonlocal{Names: []*ast.Name{name("missing")}}),
	}
	mod := module(suite(fn))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestGeneratorFunction_MarkedAfterYield(t *testing.T) {
	b, sink := newTestBinder()
	fn := &ast.FunctionDef{
		Name:   name("gen"),
		Params: &ast.Parameters{},
		Body:   suite(exprStmt(&ast.Yield{Value: intConst(1)})),
	}
	mod := module(suite(fn))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	decl, ok := b.Info().DeclarationOf(fn)
	require.True(t, ok)
	fnDecl := decl.(*FunctionDecl)
	assert.True(t, fnDecl.IsGenerator)
}

func TestYieldOutsideFunction_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	mod := module(suite(exprStmt(&ast.Yield{Value: intConst(1)})))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestYieldFromInsideAsyncFunction_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	fn := &ast.FunctionDef{
		Async:  line(),
		Name:   name("f"),
		Params: &ast.Parameters{},
		Body:   suite(exprStmt(&ast.YieldFrom{Value: name("xs")})),
	}
	mod := module(suite(fn))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestYieldFromInsideNonAsyncFunction_NoError(t *testing.T) {
	b, sink := newTestBinder()
	fn := &ast.FunctionDef{
		Name:   name("f"),
		Params: &ast.Parameters{},
		Body:   suite(exprStmt(&ast.YieldFrom{Value: name("xs")})),
	}
	mod := module(suite(fn))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())
}

func TestNamedExpr_CollidesWithComprehensionLocal_ReportsError(t *testing.T) {
	b, sink := newTestBinder()

	target := &ast.Name{Id: "x", Start: line()}
	walrus := &ast.NamedExpr{Target: target, Value: intConst(1)}
	comp := &ast.ListComp{
		Elt: walrus,
		Generators: []*ast.Comprehension{
			{Target: name("x"), Iter: name("xs")},
		},
	}
	mod := module(suite(exprStmt(comp)))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors(), "walrus target 'x' collides with the comprehension's own loop variable 'x'")
}

func TestMemberAccess_ClassNameAsTarget_DeclaresClassMember(t *testing.T) {
	b, sink := newTestBinder()

	method := &ast.FunctionDef{
		Name:   name("register"),
		Params: &ast.Parameters{Args: []*ast.Param{{Name: name("self")}}},
		Body: suite(&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{Value: name("C"), Attr: name("count")}},
			Value:   intConst(1),
		}),
	}
	cls := &ast.ClassDef{
		Name: name("C"),
		Body: suite(method),
	}
	mod := module(suite(cls))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	classScope, ok := b.Info().ScopeOf(cls)
	require.True(t, ok)
	sym, ok := classScope.Lookup("count")
	require.True(t, ok)
	assert.True(t, sym.Flags.Has(ClassMember))
}

func TestMemberAccess_New_ImplicitClassMethod(t *testing.T) {
	b, sink := newTestBinder()

	newMethod := &ast.FunctionDef{
		Name:   name("__new__"),
		Params: &ast.Parameters{Args: []*ast.Param{{Name: name("cls")}}},
		Body: suite(&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{Value: name("cls"), Attr: name("instances")}},
			Value:   intConst(1),
		}),
	}
	cls := &ast.ClassDef{
		Name: name("C"),
		Body: suite(newMethod),
	}
	mod := module(suite(cls))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	classScope, ok := b.Info().ScopeOf(cls)
	require.True(t, ok)
	sym, ok := classScope.Lookup("instances")
	require.True(t, ok)
	assert.True(t, sym.Flags.Has(ClassMember), "'__new__' acts as a classmethod with no decorator required")
}

func TestMemberAccess_DeclarationRangeIsMemberNameOnly(t *testing.T) {
	b, sink := newTestBinder()

	attrTarget := name("x")
	method := &ast.FunctionDef{
		Name:   name("__init__"),
		Params: &ast.Parameters{Args: []*ast.Param{{Name: name("self")}}},
		Body: suite(&ast.Assign{
			Targets: []ast.Expr{&ast.Attribute{Value: name("self"), Attr: attrTarget}},
			Value:   intConst(1),
		}),
	}
	cls := &ast.ClassDef{Name: name("C"), Body: suite(method)}
	mod := module(suite(cls))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())

	classScope, ok := b.Info().ScopeOf(cls)
	require.True(t, ok)
	sym, ok := classScope.Lookup("x")
	require.True(t, ok)
	decl := sym.Declarations()[0].(*VariableDecl)
	start, end := attrTarget.Span()
	assert.Equal(t, Range{Start: start, End: end}, decl.Range)
}

func TestAnnAssign_UnsupportedTarget_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	ann := &ast.AnnAssign{
		Target:     &ast.TupleExpr{Elts: []ast.Expr{name("a"), name("b")}},
		Annotation: name("int"),
		Value:      intConst(1),
	}
	mod := module(suite(ann))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestAnnAssign_AttributeTarget_NoError(t *testing.T) {
	b, sink := newTestBinder()
	method := &ast.FunctionDef{
		Name:   name("__init__"),
		Params: &ast.Parameters{Args: []*ast.Param{{Name: name("self")}}},
		Body: suite(&ast.AnnAssign{
			Target:     &ast.Attribute{Value: name("self"), Attr: name("x")},
			Annotation: name("int"),
			Value:      intConst(1),
		}),
	}
	cls := &ast.ClassDef{Name: name("C"), Body: suite(method)}
	mod := module(suite(cls))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())
}

func TestImportLookup_UnresolvedImport_ReportsMissingImportsRule(t *testing.T) {
	b, sink := newTestBinder()
	lookup := ImportLookup(func(path string) (*ImportLookupResult, bool) { return nil, false })
	b.importLookup = lookup

	mod := module(suite(&ast.Import{Names: []*ast.Alias{{Path: []*ast.Name{name("missingpkg")}}}}))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	require.Len(t, sink.Diagnostics(), 1)
	assert.Equal(t, "reportMissingImports", sink.Diagnostics()[0].Rule)
}

func TestImportLookup_ResolvedWithoutStub_ReportsMissingTypeStubsWithAction(t *testing.T) {
	b, sink := newTestBinder()
	b.importLookup = func(path string) (*ImportLookupResult, bool) {
		return &ImportLookupResult{Names: map[string]bool{"x": true}, HasTypeStub: false}, true
	}

	mod := module(suite(&ast.Import{Names: []*ast.Alias{{Path: []*ast.Name{name("pkg")}}}}))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	require.Len(t, sink.Diagnostics(), 1)
	d := sink.Diagnostics()[0]
	assert.Equal(t, "reportMissingTypeStubs", d.Rule)
	require.Len(t, d.Actions, 1)
	assert.Equal(t, "createTypeStub", d.Actions[0].Kind)
	assert.Equal(t, "pkg", d.Actions[0].Data["moduleName"])
}

func TestImportLookup_ResolvedWithStub_NoDiagnostic(t *testing.T) {
	b, sink := newTestBinder()
	b.importLookup = func(path string) (*ImportLookupResult, bool) {
		return &ImportLookupResult{Names: map[string]bool{"x": true}, HasTypeStub: true}, true
	}

	mod := module(suite(&ast.Import{Names: []*ast.Alias{{Path: []*ast.Name{name("pkg")}}}}))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.Equal(t, 0, sink.Len())
}

func TestFormattedValue_UnbalancedBraces_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	fv := &ast.FormattedValue{Value: name("x")} // Lbrace/Rbrace left zero: unmatched
	mod := module(suite(exprStmt(&ast.JoinedStr{Values: []ast.Expr{fv}})))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestFormattedValue_InvalidConversion_ReportsError(t *testing.T) {
	b, sink := newTestBinder()
	lb, rb := line(), line()
	fv := &ast.FormattedValue{Lbrace: lb, Value: name("x"), Conversion: 'z', Rbrace: rb}
	mod := module(suite(exprStmt(&ast.JoinedStr{Values: []ast.Expr{fv}})))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}

func TestFormattedValue_ValidConversion_NoError(t *testing.T) {
	b, sink := newTestBinder()
	lb, rb := line(), line()
	fv := &ast.FormattedValue{Lbrace: lb, Value: name("x"), Conversion: 'r', Rbrace: rb}
	mod := module(suite(exprStmt(&ast.JoinedStr{Values: []ast.Expr{fv}})))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.False(t, sink.HasErrors())
}

func TestStringConstant_InvalidEscape_ReportsRuleDiagnostic(t *testing.T) {
	b, sink := newTestBinder()
	c := &ast.Constant{Kind: token.STRING, Start: line(), Raw: `"bad \q escape"`, Value: "bad \\q escape"}
	mod := module(suite(exprStmt(c)))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	require.Len(t, sink.Diagnostics(), 1)
	assert.Equal(t, "reportInvalidStringEscapeSequence", sink.Diagnostics()[0].Rule)
}

func TestStringConstant_RawPrefix_ExemptFromEscapeCheck(t *testing.T) {
	b, sink := newTestBinder()
	c := &ast.Constant{Kind: token.STRING, Start: line(), Raw: `r"bad \q escape"`, Value: "bad \\q escape"}
	mod := module(suite(exprStmt(c)))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.Equal(t, 0, sink.Len())
}

func TestJoinedStr_InvalidLiteralEscape_ReportsHardError(t *testing.T) {
	b, sink := newTestBinder()
	lit := &ast.Constant{Kind: token.STRING, Start: line(), Raw: `bad \q text`}
	mod := module(suite(exprStmt(&ast.JoinedStr{Values: []ast.Expr{lit}})))

	_, err := b.BindModule(mod)
	require.NoError(t, err)
	assert.True(t, sink.HasErrors())
}
