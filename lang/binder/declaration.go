package binder

import (
	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/token"
)

// SymbolFlags is a bitset of the per-symbol flags listed in §3.
type SymbolFlags uint8

const (
	SymbolFlagNone SymbolFlags = 0

	// InitiallyUnbound marks a local whose declaration does not guarantee it
	// is bound on every path (the common case for a plain local).
	InitiallyUnbound SymbolFlags = 1 << iota
	// ClassMember marks a symbol declared as a class-level member (class
	// body field, or assigned via the "Foo.x" / "cls.x" member-access
	// heuristic of §4.5).
	ClassMember
	// InstanceMember marks a symbol declared as an instance member (assigned
	// via "self.x" in a method, per §4.5). Mutually exclusive with
	// ClassMember in practice, though nothing prevents both being set if a
	// stub declares the same name both ways.
	InstanceMember
	// PrivateMember marks a member symbol whose name follows the language's
	// private-naming convention.
	PrivateMember
	// ExternallyHidden marks a symbol bound while reading a stub file, whose
	// name follows the private-or-protected convention (§4.1).
	ExternallyHidden
	// IgnoredForProtocolMatch excludes a symbol from structural-typing
	// comparisons performed by the (out-of-scope) type evaluator.
	IgnoredForProtocolMatch
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// Symbol is a named entity bound in some Scope (§3): a globally unique id,
// a flag set, and an ordered, append-only list of Declarations.
type Symbol struct {
	ID           int64
	Name         string
	Flags        SymbolFlags
	declarations []Declaration
}

// AddDeclaration appends decl to the symbol's declaration list (§4.2),
// except that adding an *AliasDecl whose FirstNamePart matches an existing
// *AliasDecl extends that existing declaration's ImplicitImports tree in
// place instead of appending a new entry (§4.2, §8 P8): "import a.b.c"
// followed by "import a.d" yields one Alias tree, not two declarations.
func (s *Symbol) AddDeclaration(decl Declaration) {
	if alias, ok := decl.(*AliasDecl); ok {
		for _, existing := range s.declarations {
			if exAlias, ok := existing.(*AliasDecl); ok && exAlias.FirstNamePart == alias.FirstNamePart {
				mergeImplicitImports(exAlias, alias)
				return
			}
		}
	}
	s.declarations = append(s.declarations, decl)
}

// Declarations returns the symbol's declarations in source order (§4.2
// declarationsOf).
func (s *Symbol) Declarations() []Declaration { return s.declarations }

func mergeImplicitImports(dst, src *AliasDecl) {
	if dst.ImplicitImports == nil {
		dst.ImplicitImports = make(map[string]*ModuleLoaderActions)
	}
	for name, actions := range src.ImplicitImports {
		if existing, ok := dst.ImplicitImports[name]; ok {
			mergeModuleLoaderActions(existing, actions)
		} else {
			dst.ImplicitImports[name] = actions
		}
	}
}

func mergeModuleLoaderActions(dst, src *ModuleLoaderActions) {
	if src == nil {
		return
	}
	if dst.ImplicitImports == nil {
		dst.ImplicitImports = make(map[string]*ModuleLoaderActions)
	}
	for name, actions := range src.ImplicitImports {
		if existing, ok := dst.ImplicitImports[name]; ok {
			mergeModuleLoaderActions(existing, actions)
		} else {
			dst.ImplicitImports[name] = actions
		}
	}
}

// Declaration is the tagged union of ways a symbol can be introduced (§3).
// It is a closed interface, following the same "unexported marker method"
// pattern lang/ast uses to close Expr/Stmt.
type Declaration interface {
	declaration()
}

// IntrinsicKind enumerates the synthetic type lang/binder assigns an
// IntrinsicDecl (§3).
type IntrinsicKind uint8

const (
	IntrinsicStr IntrinsicKind = iota
	IntrinsicAny
	IntrinsicIterableStr
	IntrinsicClass
)

// VariableDecl records a plain variable binding (assignment, annotated
// assignment, for-target, with-target, except-target, comprehension
// target...).
type VariableDecl struct {
	Node               ast.Node // the binding site: a *ast.Name or *ast.Attribute
	IsConstant         bool
	IsFinal            bool
	TypeAnnotation     ast.Expr // nil if not annotated
	InferredTypeSource ast.Expr // the RHS expression, if any, used for type inference by downstream passes
	Range              Range
}

func (*VariableDecl) declaration() {}

// ParameterDecl records a function/lambda parameter binding.
type ParameterDecl struct {
	Node  *ast.Param
	Range Range
}

func (*ParameterDecl) declaration() {}

// FunctionDecl records a function or method declaration. ReturnExpressions
// and YieldExpressions are populated in place as the function's deferred
// body walk progresses (§3 Lifecycles); IsGenerator is set once the walk
// completes (§4.6, P7).
type FunctionDecl struct {
	Node              *ast.FunctionDef
	IsMethod          bool
	IsGenerator       bool
	ReturnExpressions []ast.Expr
	YieldExpressions  []ast.Expr
	Range             Range
}

func (*FunctionDecl) declaration() {}

// ClassDecl records a class declaration.
type ClassDecl struct {
	Node  *ast.ClassDef
	Range Range
}

func (*ClassDecl) declaration() {}

// IntrinsicDecl records a language-mandated implicit name (e.g. __name__):
// its "source" is the scope's own defining node rather than a syntax node
// written by the user, so it carries a Name instead of a Node.
type IntrinsicDecl struct {
	Name string
	Kind IntrinsicKind
}

func (*IntrinsicDecl) declaration() {}

// ModuleLoaderActions is a tree matching the dotted name of an import
// statement (§3), used by the module-loader to materialize intermediate
// module symbols with correct bound paths.
type ModuleLoaderActions struct {
	Path            string
	ImplicitImports map[string]*ModuleLoaderActions
}

// AliasDecl is a recipe for the module loader's effect on an import
// statement (§3). FirstNamePart is the key §4.2's merge rule groups on.
type AliasDecl struct {
	Node              ast.Node
	FirstNamePart     string
	ResolvedPath      string
	SymbolName        string // non-empty for "from X import Y [as Z]"
	SubmoduleFallback bool
	ImplicitImports   map[string]*ModuleLoaderActions
}

func (*AliasDecl) declaration() {}

// SpecialBuiltinDecl is only produced when binding the language's own
// typing stub file (§3).
type SpecialBuiltinDecl struct {
	Node  ast.Node
	Range Range
}

func (*SpecialBuiltinDecl) declaration() {}

// Range is a half-open span of source positions, declared here (instead of
// importing the diag package's own Range type) so lang/binder has no
// dependency on the diagnostic-sink package — only the other way around.
type Range struct {
	Start, End token.Pos
}

// SpanOf builds a Range from any node's Span().
func SpanOf(n ast.Node) Range {
	start, end := n.Span()
	return Range{Start: start, End: end}
}
