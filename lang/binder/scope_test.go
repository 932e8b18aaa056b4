package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuiltinScope_ExportFilterHidesNonBuiltins(t *testing.T) {
	root := NewBuiltinScope()

	_, ok := root.Lookup("len")
	assert.True(t, ok, "len is an official built-in")

	root.symbols.Put("__helperOnlyForStubs__", &Symbol{ID: newSymbolID(), Name: "__helperOnlyForStubs__"})
	_, ok = root.Lookup("__helperOnlyForStubs__")
	assert.False(t, ok, "export filter must hide names absent from builtins.Names")
}

func TestScope_LookupRecursive_WalksToBuiltin(t *testing.T) {
	root := NewBuiltinScope()
	mod := NewScope(ModuleScope, root)
	fn := NewScope(FunctionScope, mod)

	sym, owner := fn.LookupRecursive("len")
	require.NotNil(t, sym)
	assert.Same(t, root, owner)
}

func TestScope_AddSymbol_ReusesExistingOnRedeclaration(t *testing.T) {
	mod := NewScope(ModuleScope, nil)
	a := mod.AddSymbol("x", InitiallyUnbound)
	a.AddDeclaration(&VariableDecl{})
	b := mod.AddSymbol("x", InitiallyUnbound)
	b.AddDeclaration(&VariableDecl{})

	assert.Same(t, a, b)
	assert.Len(t, a.Declarations(), 2)
}

func TestScope_NearestExecutionScope_SkipsClassAndComprehension(t *testing.T) {
	root := NewBuiltinScope()
	mod := NewScope(ModuleScope, root)
	fn := NewScope(FunctionScope, mod)
	cls := NewScope(ClassScope, fn)
	comp := NewScope(ComprehensionScope, cls)

	assert.Same(t, fn, comp.NearestExecutionScope())
	assert.Same(t, mod, mod.NearestExecutionScope())
	assert.Same(t, root, root.NearestExecutionScope())
}

func TestScope_GlobalScope_FindsNearestModule(t *testing.T) {
	root := NewBuiltinScope()
	mod := NewScope(ModuleScope, root)
	fn := NewScope(FunctionScope, mod)
	nested := NewScope(FunctionScope, fn)

	assert.Same(t, mod, nested.GlobalScope())
}

func TestScope_Symbols_SortedByName(t *testing.T) {
	mod := NewScope(ModuleScope, nil)
	mod.AddSymbol("zeta", SymbolFlagNone)
	mod.AddSymbol("alpha", SymbolFlagNone)
	mod.AddSymbol("mu", SymbolFlagNone)

	names := make([]string, 0, 3)
	for _, s := range mod.Symbols() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"alpha", "mu", "zeta"}, names)
}

func TestScopeKind_IsExecutionScope(t *testing.T) {
	assert.True(t, BuiltinScope.IsExecutionScope())
	assert.True(t, ModuleScope.IsExecutionScope())
	assert.True(t, FunctionScope.IsExecutionScope())
	assert.False(t, ClassScope.IsExecutionScope())
	assert.False(t, ComprehensionScope.IsExecutionScope())
}
