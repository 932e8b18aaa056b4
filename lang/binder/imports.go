package binder

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/mna/pybind/diag"
	"github.com/mna/pybind/lang/ast"
)

// checkImportResolution implements the "unresolved imports" and "missing
// type stubs" rule diagnostics (§4.6): a module path the host's
// ImportLookup doesn't recognize earns a reportMissingImports warning; one
// it recognizes but reports no ".pyi" stub for earns a
// reportMissingTypeStubs warning carrying a createTypeStub quick-fix action.
func (b *Binder) checkImportResolution(n ast.Node, modPath string) {
	if b.importLookup == nil {
		return
	}
	res, ok := b.importLookup(modPath)
	if !ok || res == nil {
		b.addRuleDiagnostic("reportMissingImports", n, "import %q could not be resolved", modPath)
		return
	}
	if !res.HasTypeStub {
		b.addRuleDiagnostic("reportMissingTypeStubs", n, "stub file not found for %q", modPath).
			AddAction(diag.Action{Kind: "createTypeStub", Data: map[string]string{"moduleName": modPath}})
	}
}

func dottedPath(names []*ast.Name) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.Id
	}
	return strings.Join(parts, ".")
}

// buildImplicitChain materializes the ModuleLoaderActions tree a plain
// "import a.b.c" (no "as" clause) needs (§3, §4.2): binding "a" also makes
// "a.b" and "a.b.c" reachable as attribute accesses on the bound name.
func buildImplicitChain(parts []*ast.Name, idx int) *ModuleLoaderActions {
	node := &ModuleLoaderActions{Path: dottedPath(parts[:idx+1])}
	if idx+1 < len(parts) {
		node.ImplicitImports = map[string]*ModuleLoaderActions{
			parts[idx+1].Id: buildImplicitChain(parts, idx+1),
		}
	}
	return node
}

func (b *Binder) bindImport(s *ast.Import) {
	for _, al := range s.Names {
		b.bindImportAlias(al)
	}
}

func (b *Binder) bindImportAlias(al *ast.Alias) {
	if len(al.Path) == 0 {
		return
	}
	fullPath := dottedPath(al.Path)
	b.checkImportResolution(al.Path[len(al.Path)-1], fullPath)

	var bindName *ast.Name
	var implicit map[string]*ModuleLoaderActions
	if al.AsName != nil {
		bindName = al.AsName
	} else {
		bindName = al.Path[0]
		if len(al.Path) > 1 {
			implicit = map[string]*ModuleLoaderActions{
				al.Path[1].Id: buildImplicitChain(al.Path, 1),
			}
		}
	}

	decl := &AliasDecl{
		Node:            bindName,
		FirstNamePart:   bindName.Id,
		ResolvedPath:    fullPath,
		ImplicitImports: implicit,
	}
	sym := b.currentScope.AddSymbol(bindName.Id, b.localFlags())
	sym.AddDeclaration(decl)
	b.info.setDeclaration(bindName, decl)

	b.currentFlow = newAssignmentNode(bindName, b.currentFlow, sym.ID, false)
	b.info.setFlow(bindName, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
	b.addCodeFlowRef(bindName.Id)
}

func (b *Binder) bindImportFrom(s *ast.ImportFrom) {
	modPath := dottedPath(s.Module)
	if s.IsStar {
		b.bindWildcardImport(s, modPath)
		return
	}
	b.checkImportResolution(s, modPath)
	for _, al := range s.Names {
		if len(al.Path) == 0 {
			continue
		}
		srcName := al.Path[0]
		bindName := srcName
		if al.AsName != nil {
			bindName = al.AsName
		}

		decl := &AliasDecl{
			Node:              bindName,
			FirstNamePart:     bindName.Id,
			ResolvedPath:      modPath,
			SymbolName:        srcName.Id,
			SubmoduleFallback: true,
		}
		sym := b.currentScope.AddSymbol(bindName.Id, b.localFlags())
		sym.AddDeclaration(decl)
		b.info.setDeclaration(bindName, decl)

		b.currentFlow = newAssignmentNode(bindName, b.currentFlow, sym.ID, false)
		b.info.setFlow(bindName, b.currentFlow)
		b.addToExceptTargets(b.currentFlow)
		b.addCodeFlowRef(bindName.Id)
	}
}

// bindWildcardImport implements §4.3's "from M import *" handling and the
// resolved Open Question forbidding it outside module scope (SPEC_FULL.md
// §9): it queries the host's ImportLookup for M's exported names (§6),
// filtering by __all__ when M declared one, otherwise by the
// underscore-prefix convention (scenario 4), and additionally binds any
// implicit submodule names the lookup reports.
func (b *Binder) bindWildcardImport(s *ast.ImportFrom, modPath string) {
	if b.currentScope.Kind != ModuleScope {
		b.addError(s, "wildcard import is not allowed inside a class or function body")
		return
	}

	b.checkImportResolution(s, modPath)

	var names []string
	if b.importLookup != nil {
		if res, ok := b.importLookup(modPath); ok && res != nil {
			if len(res.Dunder__all__) > 0 {
				names = append(names, res.Dunder__all__...)
			} else {
				for _, n := range maps.Keys(res.Names) {
					if !strings.HasPrefix(n, "_") {
						names = append(names, n)
					}
				}
			}
			names = append(names, res.ImplicitSubmodules...)
		}
	}
	sort.Strings(names)

	for _, n := range names {
		sym := b.currentScope.AddSymbol(n, b.localFlags())
		sym.AddDeclaration(&AliasDecl{Node: s, FirstNamePart: n, ResolvedPath: modPath, SymbolName: n})
	}

	b.currentFlow = newWildcardImportNode(s, names, b.currentFlow)
	b.info.setFlow(s, b.currentFlow)
	b.addToExceptTargets(b.currentFlow)
}
