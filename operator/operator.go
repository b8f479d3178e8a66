// Package operator defines the capability-set contract (§6.1) every
// computation node in a Flux graph must satisfy. The engine never
// introspects an operator beyond these methods and never downcasts a
// stored operator value — concrete operators are external collaborators
// (see the operators package for the sample library exercising this
// interface end to end).
package operator

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Resolver lets compute/on_triggered pull the value feeding one of the
// operator's own inputs, by input index, without knowing anything about the
// graph's storage: the evaluator hands in a resolver bound to the current
// call context and evaluation pass (§4.5 "InputResolver").
type Resolver interface {
	// Resolve returns the currently resolvable value for input index
	// inputIdx on the operator being computed. It already applied
	// connection lookup, upstream cache resolution, and default
	// substitution — compute never needs to know whether the input was
	// connected.
	Resolve(inputIdx int) value.Value

	// ResolveMulti returns every currently resolvable value feeding a
	// multi-input port, in connection order, for variadic operators (e.g.
	// Sum). A disconnected or non-multi input resolves to an empty slice.
	ResolveMulti(inputIdx int) []value.Value
}

// Operator is the capability set every graph node's computation unit
// implements (§6.1).
type Operator interface {
	// Name returns a stable identifier for the operator kind (not the
	// node instance) — used in diagnostics and compiled-graph command
	// labels.
	Name() string

	// Inputs returns the ordered InputPort descriptors. Called once at
	// node-add time to seed the node's port storage; operators should
	// return a fresh slice each call (the graph takes ownership of its
	// own copies, mutating them as connections/defaults change).
	Inputs() []port.InputPort

	// Outputs returns the ordered OutputPort descriptors.
	Outputs() []port.OutputPort

	// TriggerInputs returns the ordered TriggerInput descriptors. May be
	// empty.
	TriggerInputs() []port.TriggerInput

	// TriggerOutputs returns the ordered TriggerOutput descriptors. May be
	// empty.
	TriggerOutputs() []port.TriggerOutput

	// IsTimeVarying reports whether this operator must recompute on every
	// evaluation pass regardless of cache/dirty state (§4.5 needs_eval
	// condition (b)). Most operators return false.
	IsTimeVarying() bool

	// Compute runs the operator's logic for one evaluation pass, reading
	// inputs through resolver and writing results via the node's own
	// OutputPort.SetValue (the graph passes pointers to the node's live
	// output ports as outputs).
	Compute(ctx evalctx.EvalContext, resolver Resolver, outputs []*port.OutputPort)

	// OnTriggered handles an incoming event at trigger_inputs[idx] and
	// returns the indices of this operator's own trigger_outputs to fire
	// next (§4.6). The default (for operators with no declared triggers)
	// is to never be called; an operator that declares trigger ports must
	// implement this meaningfully.
	OnTriggered(idx int, ctx evalctx.EvalContext, resolver Resolver, outputs []*port.OutputPort) []int
}

// Cloner is implemented by operators that carry mutable per-node state
// (e.g. a counter's running total) that must not be shared between a graph
// and a graph produced by Clone/CloneEmpty. CloneOperator returns a new,
// independent instance with the same configuration but none of the
// receiver's mutable state aliased. Operators with no mutable state beyond
// their construction-time configuration do not need to implement this —
// the graph falls back to reusing the same operator instance for those,
// which is safe only because such operators never write to their own
// fields from Compute or OnTriggered.
type Cloner interface {
	CloneOperator() Operator
}

// BaseOperator provides the zero-value defaults §6.1 describes
// (IsTimeVarying() == false, no triggers, OnTriggered panics) so concrete
// operators can embed it and override only what they need.
type BaseOperator struct{}

func (BaseOperator) TriggerInputs() []port.TriggerInput   { return nil }
func (BaseOperator) TriggerOutputs() []port.TriggerOutput { return nil }
func (BaseOperator) IsTimeVarying() bool                  { return false }
func (BaseOperator) OnTriggered(int, evalctx.EvalContext, Resolver, []*port.OutputPort) []int {
	panic("operator: OnTriggered invoked on an operator with no declared triggers")
}
