package binder

import "sync/atomic"

// nextSymbolID and nextFlowNodeID are process-wide atomic monotonic counters
// for symbol and flow-node identity (§5, §9: "Global mutable state is limited to the two
// monotonic id counters"). Two independent counters are kept so that symbol
// ids and flow-node ids each form their own dense, gap-free-by-construction
// sequence; nothing ever compares a symbol id to a flow-node id so sharing a
// single counter would only make both sequences sparser for no benefit.
var (
	nextSymbolID   int64
	nextFlowNodeID int64
)

// newSymbolID returns the next globally unique symbol id. Safe for
// concurrent use by multiple Binders bound to distinct modules (§5).
func newSymbolID() int64 { return atomic.AddInt64(&nextSymbolID, 1) }

// newFlowNodeID returns the next globally unique flow-node id.
func newFlowNodeID() int64 { return atomic.AddInt64(&nextFlowNodeID, 1) }
