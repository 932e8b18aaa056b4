package binder

import "github.com/mna/pybind/lang/ast"

// FlowNode is the tagged union of intraprocedural control-flow graph nodes
// (§3). Every kind shares an id (F1-F4 reference flow nodes "by id").
type FlowNode interface {
	flowNode()
	ID() int64
}

type flowBase struct{ id int64 }

func (f flowBase) ID() int64 { return f.id }
func (flowBase) flowNode()   {}

// StartNode represents the unique entry flow of a scope's body.
type StartNode struct{ flowBase }

func newStartNode() *StartNode { return &StartNode{flowBase{id: newFlowNodeID()}} }

// UnreachableNode is the single shared sentinel (F3): every place in the
// binder that would otherwise construct a new flow node for dead code
// reuses this one value instead, so identity comparison (`==`) is how the
// binder (and its tests, P4) recognize unreachable flow.
type UnreachableNode struct{ flowBase }

// Unreachable is the process's one UnreachableNode value (F3).
var Unreachable = &UnreachableNode{flowBase{id: 0}}

// BranchLabel merges flow from multiple antecedents with no looping
// semantics (if/else merge points, try/except merge points, ...).
type BranchLabel struct {
	flowBase
	Antecedents []FlowNode
}

func newBranchLabel() *BranchLabel {
	return &BranchLabel{flowBase: flowBase{id: newFlowNodeID()}}
}
func (l *BranchLabel) antecedents() []FlowNode { return l.Antecedents }
func (l *BranchLabel) addAntecedents(a ...FlowNode) {
	l.Antecedents = addAntecedents(l.Antecedents, a...)
}

// LoopLabel merges flow from multiple antecedents including at least one
// back-edge (the loop body's end-of-iteration flow).
type LoopLabel struct {
	flowBase
	Antecedents []FlowNode
}

func newLoopLabel() *LoopLabel {
	return &LoopLabel{flowBase: flowBase{id: newFlowNodeID()}}
}
func (l *LoopLabel) antecedents() []FlowNode { return l.Antecedents }
func (l *LoopLabel) addAntecedents(a ...FlowNode) {
	l.Antecedents = addAntecedents(l.Antecedents, a...)
}

// AssignmentNode represents a single binding of TargetSymbolID at Node (a
// *ast.Name or *ast.Attribute). Unbind is true only for "del" targets (§9).
type AssignmentNode struct {
	flowBase
	Node           ast.Node
	Antecedent     FlowNode
	TargetSymbolID int64
	Unbind         bool
}

func newAssignmentNode(node ast.Node, ante FlowNode, symID int64, unbind bool) *AssignmentNode {
	return &AssignmentNode{flowBase: flowBase{id: newFlowNodeID()}, Node: node, Antecedent: ante, TargetSymbolID: symID, Unbind: unbind}
}

// AssignmentAliasNode is created inside comprehensions when a bound target
// shadows an outer symbol with the same name (§3).
type AssignmentAliasNode struct {
	flowBase
	Antecedent    FlowNode
	TargetSymbol  int64
	AliasSymbolID int64
}

func newAssignmentAliasNode(ante FlowNode, target, alias int64) *AssignmentAliasNode {
	return &AssignmentAliasNode{flowBase: flowBase{id: newFlowNodeID()}, Antecedent: ante, TargetSymbol: target, AliasSymbolID: alias}
}

// TrueConditionNode / FalseConditionNode wrap the flow reaching a
// conditional's true/false branch, recording the tested Expression (§4.4).
// The binder creates them for every tested operand; it does not check
// whether Expression is a narrowing expression.
type TrueConditionNode struct {
	flowBase
	Expression ast.Expr
	Antecedent FlowNode
}
type FalseConditionNode struct {
	flowBase
	Expression ast.Expr
	Antecedent FlowNode
}

func newTrueConditionNode(e ast.Expr, ante FlowNode) *TrueConditionNode {
	return &TrueConditionNode{flowBase: flowBase{id: newFlowNodeID()}, Expression: e, Antecedent: ante}
}
func newFalseConditionNode(e ast.Expr, ante FlowNode) *FalseConditionNode {
	return &FalseConditionNode{flowBase: flowBase{id: newFlowNodeID()}, Expression: e, Antecedent: ante}
}

// CallNode marks a call-expression evaluation point, used for later
// NoReturn-style narrowing (§3, §4.3).
type CallNode struct {
	flowBase
	Node       *ast.Call
	Antecedent FlowNode
}

func newCallNode(n *ast.Call, ante FlowNode) *CallNode {
	return &CallNode{flowBase: flowBase{id: newFlowNodeID()}, Node: n, Antecedent: ante}
}

// WildcardImportNode carries the list of names a "from M import *"
// statement bound (§3, scenario 4).
type WildcardImportNode struct {
	flowBase
	Node       *ast.ImportFrom
	Names      []string
	Antecedent FlowNode
}

func newWildcardImportNode(n *ast.ImportFrom, names []string, ante FlowNode) *WildcardImportNode {
	return &WildcardImportNode{flowBase: flowBase{id: newFlowNodeID()}, Node: n, Names: names, Antecedent: ante}
}

// PreFinallyGateNode/PostFinallyNode implement the finally-gate construct
// (§4.4, P5): the gate lets downstream analysis "open" it to see early-exit
// paths while the finally clause executes, and "close" it for the
// post-finally continuation.
type PreFinallyGateNode struct {
	flowBase
	Antecedent FlowNode
	GateClosed bool
}
type PostFinallyNode struct {
	flowBase
	Antecedent     FlowNode
	PreFinallyGate *PreFinallyGateNode
}

func newPreFinallyGateNode(ante FlowNode) *PreFinallyGateNode {
	return &PreFinallyGateNode{flowBase: flowBase{id: newFlowNodeID()}, Antecedent: ante}
}
func newPostFinallyNode(ante FlowNode, gate *PreFinallyGateNode) *PostFinallyNode {
	return &PostFinallyNode{flowBase: flowBase{id: newFlowNodeID()}, Antecedent: ante, PreFinallyGate: gate}
}

// addAntecedents appends each of more to list, deduplicated by flow-node id
// (F4) and skipping Unreachable (F3: appending an antecedent FROM
// Unreachable is a no-op — Unreachable contributes no reachable path, so a
// label with some reachable antecedents and some Unreachable ones behaves
// exactly as if the Unreachable ones were never added).
func addAntecedents(list []FlowNode, more ...FlowNode) []FlowNode {
	for _, a := range more {
		if a == Unreachable {
			continue
		}
		dup := false
		for _, existing := range list {
			if existing.ID() == a.ID() {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, a)
		}
	}
	return list
}

type labelNode interface {
	FlowNode
	antecedents() []FlowNode
}

// finish implements label reduction (F2, P3): a label with zero antecedents
// becomes Unreachable; with exactly one, it is elided to that antecedent;
// otherwise the label itself is returned.
func finish(label labelNode) FlowNode {
	ante := label.antecedents()
	switch len(ante) {
	case 0:
		return Unreachable
	case 1:
		return ante[0]
	default:
		return label
	}
}
