package graph

import (
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Position is opaque editor/layout metadata carried on a Node (§3 Node);
// the core never reads it — it is round-tripped for external collaborators
// (an editor, a layout serializer) that do care where a node sits.
type Position struct {
	X, Y float32
}

// Node owns exactly one operator instance plus the live port state
// (current values, connections, dirty bookkeeping) the graph mutates as
// the owner of the node (§3 Node).
type Node struct {
	ID       id.Id
	Op       operator.Operator
	Position Position
	Bypass   bool

	inputs      []port.InputPort
	outputs     []port.OutputPort
	triggerIns  []port.TriggerInput
	triggerOuts []port.TriggerOutput

	insertionIndex int
}

func newNode(nodeID id.Id, op operator.Operator, insertionIndex int) *Node {
	return &Node{
		ID:             nodeID,
		Op:             op,
		inputs:         op.Inputs(),
		outputs:        op.Outputs(),
		triggerIns:     op.TriggerInputs(),
		triggerOuts:    op.TriggerOutputs(),
		insertionIndex: insertionIndex,
	}
}

// Inputs returns the node's live input ports. Callers must not retain the
// slice across a mutation that could reallocate it (connect/disconnect
// never reallocate this slice — only the pointed-to InputPort's internal
// source fields change — but future additive schema changes might).
func (n *Node) Inputs() []port.InputPort { return n.inputs }

// Outputs returns pointers to the node's live output ports, so operators'
// Compute can call SetValue/BumpVersion directly on them.
func (n *Node) Outputs() []*port.OutputPort {
	out := make([]*port.OutputPort, len(n.outputs))
	for i := range n.outputs {
		out[i] = &n.outputs[i]
	}
	return out
}

func (n *Node) outputValue(index int) (port.OutputPort, bool) {
	if index < 0 || index >= len(n.outputs) {
		return port.OutputPort{}, false
	}
	return n.outputs[index], true
}

func (n *Node) markAllOutputsDirty() {
	for i := range n.outputs {
		n.outputs[i].MarkDirty()
	}
}

// resolveInputDefault resolves input idx to its default Value (used by the
// InputResolver when the upstream side of a connection was never
// evaluated, or the input has no connection at all — §4.5 step 3).
func (n *Node) resolveInputDefault(idx int) (value.Value, bool) {
	if idx < 0 || idx >= len(n.inputs) {
		return value.Value{}, false
	}
	return n.inputs[idx].Default, true
}
