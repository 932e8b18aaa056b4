package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pybind/lang/ast"
	"github.com/mna/pybind/lang/binder"
	"github.com/mna/pybind/lang/token"
)

func moduleAssigning(name string, line int) (*token.File, *ast.Module) {
	file := &token.File{Name: name + ".py"}
	target := &ast.Name{Id: "x", Start: token.MakePos(line, 1)}
	value := &ast.Constant{Kind: token.INT, Start: token.MakePos(line, 5), Raw: "1", Value: int64(1)}
	body := &ast.Suite{
		Start: token.MakePos(line, 1), End: token.MakePos(line, 6),
		Stmts: []ast.Stmt{&ast.Assign{Targets: []ast.Expr{target}, Value: value}},
	}
	mod := &ast.Module{Name: name, Body: body, EOF: token.MakePos(line, 6)}
	return file, mod
}

func TestBind_EachUnitGetsItsOwnBinderAndSink(t *testing.T) {
	var units []Unit
	for i, name := range []string{"a", "b", "c"} {
		file, mod := moduleAssigning(name, i+1)
		units = append(units, Unit{File: file, Module: mod, FileInfo: &binder.FileInfo{Path: name}})
	}

	results, err := Bind(context.Background(), nil, units)
	require.NoError(t, err)
	require.Len(t, results, 3)

	seenScopes := make(map[*binder.Scope]bool)
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.False(t, res.Sink.HasErrors())
		assert.Equal(t, units[i].FileInfo.Path, res.Unit.FileInfo.Path)

		sym, scope := scopeOf(t, res)
		require.NotNil(t, sym)
		assert.False(t, seenScopes[scope], "each unit must bind into its own module scope, not a shared one")
		seenScopes[scope] = true
	}
}

func scopeOf(t *testing.T, res Result) (*binder.Symbol, *binder.Scope) {
	t.Helper()
	scope, ok := res.Info.ScopeOf(res.Unit.Module)
	require.True(t, ok)
	sym, owner := scope.LookupRecursive("x")
	return sym, owner
}

func TestBind_SharesOneBuiltinScopeAcrossUnits(t *testing.T) {
	fileA, modA := moduleAssigning("a", 1)
	fileB, modB := moduleAssigning("b", 1)
	units := []Unit{
		{File: fileA, Module: modA, FileInfo: &binder.FileInfo{Path: "a"}},
		{File: fileB, Module: modB, FileInfo: &binder.FileInfo{Path: "b"}},
	}

	results, err := Bind(context.Background(), nil, units)
	require.NoError(t, err)
	require.Len(t, results, 2)

	scopeA, ok := results[0].Info.ScopeOf(modA)
	require.True(t, ok)
	scopeB, ok := results[1].Info.ScopeOf(modB)
	require.True(t, ok)
	assert.Same(t, scopeA.Parent, scopeB.Parent, "every unit's module scope must share the same Builtin scope parent")
}
