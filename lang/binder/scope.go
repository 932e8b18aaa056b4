package binder

import (
	"golang.org/x/exp/slices"

	"github.com/dolthub/swiss"

	"github.com/mna/pybind/builtins"
)

// ScopeKind discriminates the five kinds of scope the binder creates (§3).
type ScopeKind uint8

const (
	// BuiltinScope is the unique root scope, injected once per binding run
	// (or shared across a batch of modules bound by the same orchestrator).
	BuiltinScope ScopeKind = iota
	// ModuleScope is the top-level scope of a single module.
	ModuleScope
	// ClassScope is a class body's scope. It is a declaration site only: it
	// is never used as the lexical parent for the *execution* of a method
	// defined inside it (I2).
	ClassScope
	// FunctionScope is a function or lambda body's scope.
	FunctionScope
	// ComprehensionScope is a list/set/dict comprehension or generator
	// expression's scope. It has exactly one parent and leaks no bindings to
	// it (I3).
	ComprehensionScope
)

func (k ScopeKind) String() string {
	switch k {
	case BuiltinScope:
		return "builtin"
	case ModuleScope:
		return "module"
	case ClassScope:
		return "class"
	case FunctionScope:
		return "function"
	case ComprehensionScope:
		return "comprehension"
	default:
		return "scope(?)"
	}
}

// IsExecutionScope reports whether a scope of this kind counts as an
// "execution scope" for narrowing purposes (GLOSSARY): Module, Builtin and
// Function scopes do; Class and Comprehension scopes do not.
func (k ScopeKind) IsExecutionScope() bool {
	return k == BuiltinScope || k == ModuleScope || k == FunctionScope
}

// Scope is a lexical region with its own symbol table (§3). Scopes form a
// tree rooted at the unique Builtin scope (I1).
type Scope struct {
	Kind   ScopeKind
	Parent *Scope

	symbols *swiss.Map[string, *Symbol]

	// exportFilter, if non-nil, restricts lookupRecursive from finding a name
	// in this scope unless exportFilter[name] is true. Used exactly once, for
	// the synthetic Builtin scope (§4.1).
	exportFilter map[string]bool

	// refMap is allocated for every Builtin/Module/Function scope and is
	// not written by the binder: the narrowable reference keys discovered
	// while binding an execution scope (§3's "Code-flow expression map")
	// are recorded in Info instead (see Info.CodeFlowReferencesOf), where
	// Class and Comprehension scopes share their nearest enclosing
	// execution scope's bucket (§4.3's withNewScope protocol).
	refMap map[string]bool
}

// NewScope creates a scope of the given kind with the given parent. parent
// is nil only for the Builtin scope.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	s := &Scope{
		Kind:    kind,
		Parent:  parent,
		symbols: swiss.NewMap[string, *Symbol](8),
	}
	if kind.IsExecutionScope() {
		s.refMap = make(map[string]bool)
	}
	return s
}

// SetExportFilter installs names as the only ones lookupRecursive/lookup
// will report from this scope. Intended for one-time use on the Builtin
// scope (§4.1).
func (s *Scope) SetExportFilter(names map[string]bool) {
	s.exportFilter = names
}

// AddSymbol inserts a new symbol named name with the given flags into this
// scope and returns it. If a symbol with that name already exists in this
// scope, it is returned unchanged (re-declaration — e.g. re-assigning an
// existing local — reuses the same Symbol so its Declarations list
// accumulates, per §4.2).
func (s *Scope) AddSymbol(name string, flags SymbolFlags) *Symbol {
	if sym, ok := s.symbols.Get(name); ok {
		return sym
	}
	sym := &Symbol{ID: newSymbolID(), Name: name, Flags: flags}
	s.symbols.Put(name, sym)
	return sym
}

// Lookup finds name in this scope only (no parent walk).
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols.Get(name)
	if ok && s.exportFilter != nil && !s.exportFilter[name] {
		return nil, false
	}
	return sym, ok
}

// LookupRecursive finds name in this scope, then its parents, stopping at
// the first scope that has it (or at the Builtin scope's export filter).
// Returns the owning scope alongside the symbol.
func (s *Scope) LookupRecursive(name string) (*Symbol, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Lookup(name); ok {
			return sym, sc
		}
	}
	return nil, nil
}

// GlobalScope walks parent links to the nearest Module or Builtin scope.
func (s *Scope) GlobalScope() *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Kind == ModuleScope || sc.Kind == BuiltinScope {
			return sc
		}
	}
	return nil
}

// NearestExecutionScope walks parent links (starting at s, inclusive) to the
// nearest execution scope — used by the assignment-expression container-
// scope-only binding rule (§9) to find where a ":=" target actually binds.
func (s *Scope) NearestExecutionScope() *Scope {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Kind.IsExecutionScope() {
			return sc
		}
	}
	return nil
}

// Symbols returns all symbols directly declared in this scope, sorted by
// name for deterministic iteration (swiss.Map does not guarantee iteration
// order; see SPEC_FULL.md's AMBIENT STACK on this point).
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, s.symbols.Count())
	s.symbols.Iter(func(_ string, v *Symbol) bool {
		out = append(out, v)
		return false
	})
	slices.SortFunc(out, func(a, b *Symbol) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})
	return out
}

// NewBuiltinScope constructs the one synthetic root scope used by a binding
// run, with its export filter set to the language's official built-in
// names (§4.1).
func NewBuiltinScope() *Scope {
	s := NewScope(BuiltinScope, nil)
	s.SetExportFilter(builtins.Names)
	for name := range builtins.Names {
		sym := s.AddSymbol(name, SymbolFlagNone)
		sym.AddDeclaration(&IntrinsicDecl{Name: name, Kind: IntrinsicClass})
	}
	return s
}
