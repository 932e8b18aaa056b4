// Package binder implements the Binder: the pass that, given a parsed
// module, constructs the scope tree, symbol tables, declaration records and
// intraprocedural control-flow graph that later passes (reachability,
// narrowing, type inference — all out of this package's scope) consume. It
// also diagnoses a class of static, non-type errors the language's runtime
// would otherwise only catch at execution time.
package binder

import (
	"github.com/pkg/errors"

	"github.com/mna/pybind/diag"
	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/token"
)

// DiagnosticSettings configures the severity the binder reports rule-based
// diagnostics at (§4.6). A nil or missing entry falls back to the rule's
// built-in default severity.
type DiagnosticSettings struct {
	RuleSeverity map[string]diag.Severity
}

// FileInfo is the per-module input the host orchestrator supplies (§6).
type FileInfo struct {
	Path                string
	Lines               []string
	LanguageVersion     string
	IsTypingStubFile    bool
	IsStubFile          bool
	DiagnosticSettings  DiagnosticSettings
	// BuiltinsScope lets a host share one Builtin scope across every module
	// it binds in a run, rather than paying NewBuiltinScope's setup cost per
	// module; if nil, New creates a fresh one.
	BuiltinsScope *Scope
}

// ImportLookupResult is what the host's ImportLookup callback returns for a
// module path that resolved successfully (§6).
type ImportLookupResult struct {
	// Names is the set of top-level names bound in the looked-up module.
	Names map[string]bool
	// Dunder__all__ is the module's `__all__` list, if it declared one. When
	// present, a wildcard import binds exactly these names (scenario 4);
	// otherwise it binds every name in Names that doesn't start with "_".
	Dunder__all__ []string
	// ImplicitSubmodules lists submodule names the wildcard import should
	// also bind (§4.3's ImportFrom handling: "also bind submodule names from
	// the resolved package's implicit imports").
	ImplicitSubmodules []string
	Docstring          string
	// HasTypeStub reports whether the resolved module came with a ".pyi"
	// stub. When false, a successful import still earns a reportMissingTypeStubs
	// rule diagnostic (§4.6).
	HasTypeStub bool
}

// ImportLookup is a synchronous query for another module's already-bound
// top-level symbol table (§6). The binder calls it for every imported
// module path: to report reportMissingImports / reportMissingTypeStubs for
// each import statement, and to find the names a wildcard import binds. A
// false second return means "lookup returned none" (§7.2) — for a wildcard
// import the binder treats this the same as an empty symbol table,
// producing no bound names.
type ImportLookup func(path string) (*ImportLookupResult, bool)

// notLocalKind records whether a name was declared "global" or "nonlocal"
// in the current scope (§4.3's Global/Nonlocal handling).
type notLocalKind uint8

const (
	notLocalNone notLocalKind = iota
	notLocalGlobal
	notLocalNonlocal
)

// flowTarget is satisfied by *BranchLabel and *LoopLabel: both accumulate
// antecedents the same way, which is all bindConditional and the
// loop/try/except machinery need from a "target label".
type flowTarget interface {
	FlowNode
	addAntecedents(...FlowNode)
}

// deferredBody is a plain-data record describing a function/lambda body
// whose walk is postponed until the enclosing module walk finishes (§4.3,
// §9: "a small plain-data record... no closures required").
type deferredBody struct {
	scope            *Scope
	notLocal         map[string]notLocalKind
	refScopeNode     ast.Node
	fn               *ast.FunctionDef // nil for a lambda
	lambda           *ast.Lambda      // nil for a function
	decl             *FunctionDecl    // nil for a lambda (anonymous, no declaration)
	isMethod         bool
	isAsync          bool

	// classScope, selfParamName, isStaticMethod and isClassMethod support the
	// member-access heuristic (§4.5): they let runDeferredBody know, while
	// walking a method body, which scope "self.x"/"cls.x" assignments should
	// declare a member symbol in, and which parameter name counts as "self"
	// or "cls" for this particular method.
	classScope      *Scope
	className       string
	selfParamName   string
	isStaticMethod  bool
	isClassMethod   bool
}

// Binder binds a single module. One Binder instance is used for exactly one
// module; a host binding many modules concurrently constructs one Binder
// (and one diag.Sink) per module (§5).
type Binder struct {
	file         *token.File
	fileInfo     *FileInfo
	sink         *diag.Sink
	info         *Info
	importLookup ImportLookup

	builtinScope *Scope
	moduleScope  *Scope

	currentScope     *Scope
	currentFlow      FlowNode
	notLocal         map[string]notLocalKind
	refScopeNode     ast.Node // the execution-scope node owning info.codeFlowRefs' current bucket

	loopContinueTarget flowTarget
	loopBreakTarget    flowTarget

	returnTarget *BranchLabel // collects return-flow antecedents for the function currently being walked
	currentFn    *FunctionDecl

	exceptTargets   []*BranchLabel // every assignment inside a try block adds itself here (§4.4)
	finallyTarget   flowTarget     // return/raise redirect target when inside a try with a finally clause

	inAsyncFn       bool
	inExceptHandler bool

	// currentClassScope, currentSelfParamName, currentIsStaticMethod and
	// currentIsClassMethod are set for the duration of a method body's
	// deferred walk (§4.5's member-access heuristic).
	currentClassScope     *Scope
	currentClassName      string
	currentSelfParamName  string
	currentIsStaticMethod bool
	currentIsClassMethod  bool

	deferred []deferredBody
}

// New creates a Binder for one module, located in file and described by
// fileInfo, reporting diagnostics to sink and resolving imports through
// lookup. lookup may be nil, in which case no import-resolution rule
// diagnostics are reported.
func New(file *token.File, fileInfo *FileInfo, sink *diag.Sink, lookup ImportLookup) *Binder {
	b := &Binder{
		file:         file,
		fileInfo:     fileInfo,
		sink:         sink,
		info:         newInfo(),
		importLookup: lookup,
	}
	if fileInfo != nil && fileInfo.BuiltinsScope != nil {
		b.builtinScope = fileInfo.BuiltinsScope
	} else {
		b.builtinScope = NewBuiltinScope()
	}
	return b
}

// Info returns the side table populated by BindModule (§6).
func (b *Binder) Info() *Info { return b.info }

// moduleIntrinsics are the implicit names injected at module scope (§4.3).
var moduleIntrinsics = []string{
	"__name__", "__doc__", "__path__", "__file__", "__package__",
	"__loader__", "__spec__", "__cached__",
}

// functionIntrinsics are the implicit names injected at function scope
// (§4.3); "__class__" is added additionally for methods.
var functionIntrinsics = []string{
	"__doc__", "__name__", "__qualname__", "__module__", "__defaults__",
	"__code__", "__globals__", "__dict__", "__closure__", "__annotations__",
	"__kwdefaults__",
}

// BindModule runs the binder over mod and returns the BinderResults on
// success. A non-nil error means an internal invariant was violated (§7.3)
// — the partial results must be discarded by the caller; user-facing
// findings are never returned as an error, they go through the sink (§7.1).
func (b *Binder) BindModule(mod *ast.Module) (res *BinderResults, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("binder: internal invariant violation while binding %q: %v", b.pathOf(), r)
		}
	}()

	b.moduleScope = NewScope(ModuleScope, b.builtinScope)
	b.info.setScope(mod, b.moduleScope)

	b.withNewScope(ModuleScope, b.moduleScope, mod, func() {
		for _, name := range moduleIntrinsics {
			sym := b.currentScope.AddSymbol(name, InitiallyUnbound)
			sym.AddDeclaration(&IntrinsicDecl{Name: name, Kind: IntrinsicStr})
		}

		b.currentFlow = newStartNode()
		if mod.Body != nil {
			b.bindSuite(mod.Body)
		}
		b.info.setFlow(mod, b.currentFlow)
	})

	b.drainDeferred()

	return &BinderResults{}, nil
}

func (b *Binder) pathOf() string {
	if b.fileInfo == nil {
		return "<unknown>"
	}
	return b.fileInfo.Path
}

// withNewScope implements §4.3's scope-creation protocol: save currentScope,
// notLocalBindings and the execution-scope ref-map owner; install fresh
// values (or reuse the outer ones for Class/Comprehension scopes, which are
// not execution scopes); run body; restore on every exit path.
func (b *Binder) withNewScope(kind ScopeKind, scope *Scope, refNode ast.Node, body func()) {
	savedScope := b.currentScope
	savedNotLocal := b.notLocal
	savedRefNode := b.refScopeNode

	b.currentScope = scope
	b.notLocal = make(map[string]notLocalKind)
	if kind.IsExecutionScope() {
		b.refScopeNode = refNode
	}
	// Class and Comprehension scopes reuse the outer reference map owner,
	// i.e. b.refScopeNode is left untouched (still the enclosing execution
	// scope's node).

	defer func() {
		b.currentScope = savedScope
		b.notLocal = savedNotLocal
		b.refScopeNode = savedRefNode
	}()

	body()
}

// drainDeferred runs every deferred function/lambda body walk, FIFO, until
// the queue is empty. A deferred body walk may itself enqueue further
// deferred bodies (a function defined inside another deferred function), so
// this drains to a fixed point rather than a single pass.
func (b *Binder) drainDeferred() {
	for len(b.deferred) > 0 {
		d := b.deferred[0]
		b.deferred = b.deferred[1:]
		b.runDeferredBody(d)
	}
}

func (b *Binder) enqueueDeferred(d deferredBody) {
	b.deferred = append(b.deferred, d)
}
