package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinish_ZeroAntecedentsIsUnreachable(t *testing.T) {
	label := newBranchLabel()
	assert.Same(t, Unreachable, finish(label))
}

func TestFinish_OneAntecedentElidesToIt(t *testing.T) {
	label := newBranchLabel()
	start := newStartNode()
	label.addAntecedents(start)
	assert.Same(t, FlowNode(start), finish(label))
}

func TestFinish_MultipleAntecedentsKeepsLabel(t *testing.T) {
	label := newBranchLabel()
	label.addAntecedents(newStartNode(), newStartNode())
	assert.Same(t, FlowNode(label), finish(label))
}

func TestAddAntecedents_DedupesByID(t *testing.T) {
	label := newBranchLabel()
	n := newStartNode()
	label.addAntecedents(n, n, n)
	assert.Len(t, label.Antecedents, 1)
}

func TestAddAntecedents_SkipsUnreachable(t *testing.T) {
	label := newBranchLabel()
	n := newStartNode()
	label.addAntecedents(Unreachable, n, Unreachable)
	assert.Len(t, label.Antecedents, 1)
	assert.Same(t, FlowNode(n), label.Antecedents[0])
}

func TestAddAntecedents_AllUnreachableStaysEmpty(t *testing.T) {
	label := newBranchLabel()
	label.addAntecedents(Unreachable, Unreachable)
	assert.Empty(t, label.Antecedents)
	assert.Same(t, Unreachable, finish(label))
}

func TestLoopLabel_NeverReducedByCaller(t *testing.T) {
	// bindWhile/bindFor keep a *LoopLabel around as b.currentFlow directly
	// (never passed through finish) precisely because its back-edge is added
	// only after the body is walked; this test pins that a LoopLabel with a
	// single antecedent so far still reports itself via ID, unlike a
	// BranchLabel which finish() would have elided.
	loop := newLoopLabel()
	loop.addAntecedents(newStartNode())
	assert.Len(t, loop.Antecedents, 1)
	var fn FlowNode = loop
	assert.Equal(t, loop.ID(), fn.ID())
}
