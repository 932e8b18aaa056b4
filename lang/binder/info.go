package binder

import (
	"github.com/dolthub/swiss"

	"github.com/mna/pybind/lang/ast"
)

// Info is the side table the binder annotates onto the syntax tree (§3,
// §6): it is keyed by node identity (ast nodes are always *T, so Go
// interface equality over the pointer gives this for free) and is never
// used to mutate the tree itself. Each table is a swiss.Map keyed by the
// ast.Node interface, the same interface-keyed hashing the teacher
// repository's lang/machine package relies on for its Value-keyed maps.
type Info struct {
	scopes       *swiss.Map[ast.Node, *Scope]
	decls        *swiss.Map[ast.Node, Declaration]
	flows        *swiss.Map[ast.Node, FlowNode]
	afterFlows   *swiss.Map[ast.Node, FlowNode]
	codeFlowRefs *swiss.Map[ast.Node, map[string]bool]
}

func newInfo() *Info {
	return &Info{
		scopes:       swiss.NewMap[ast.Node, *Scope](16),
		decls:        swiss.NewMap[ast.Node, Declaration](16),
		flows:        swiss.NewMap[ast.Node, FlowNode](64),
		afterFlows:   swiss.NewMap[ast.Node, FlowNode](16),
		codeFlowRefs: swiss.NewMap[ast.Node, map[string]bool](16),
	}
}

func (i *Info) setScope(n ast.Node, s *Scope) { i.scopes.Put(n, s) }

// ScopeOf returns the scope attached to a Module/Class/Function/Lambda/
// Comprehension node (§6).
func (i *Info) ScopeOf(n ast.Node) (*Scope, bool) {
	return i.scopes.Get(n)
}

func (i *Info) setDeclaration(n ast.Node, d Declaration) { i.decls.Put(n, d) }

// DeclarationOf returns the class or function declaration attached to its
// defining node (§6).
func (i *Info) DeclarationOf(n ast.Node) (Declaration, bool) {
	return i.decls.Get(n)
}

func (i *Info) setFlow(n ast.Node, f FlowNode) { i.flows.Put(n, f) }

// FlowNodeOf returns the current flow at the given name/member-access/
// return/yield/statement node (§6).
func (i *Info) FlowNodeOf(n ast.Node) (FlowNode, bool) {
	return i.flows.Get(n)
}

func (i *Info) setAfterFlow(n ast.Node, f FlowNode) { i.afterFlows.Put(n, f) }

// AfterFlowNodeOf returns the merged return/end-of-suite flow for a
// function and for its suite (§6).
func (i *Info) AfterFlowNodeOf(n ast.Node) (FlowNode, bool) {
	return i.afterFlows.Get(n)
}

func (i *Info) addCodeFlowReference(scopeNode ast.Node, key string) {
	m, ok := i.codeFlowRefs.Get(scopeNode)
	if !ok {
		m = make(map[string]bool)
		i.codeFlowRefs.Put(scopeNode, m)
	}
	m[key] = true
}

// CodeFlowReferencesOf returns the reference-key set for an execution scope
// node (§6, §3's "Code-flow expression map").
func (i *Info) CodeFlowReferencesOf(executionScopeNode ast.Node) map[string]bool {
	m, _ := i.codeFlowRefs.Get(executionScopeNode)
	return m
}

// BinderResults is the return value of a successful BindModule call (§6).
type BinderResults struct {
	ModuleDocString string
}
