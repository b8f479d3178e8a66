package operators

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Counter holds an integer count that only changes in response to trigger
// events, not value-graph recomputation — the sample push-side collaborator
// (§4.6). Its "increment" trigger input bumps the count by one and its
// "reset" trigger input zeroes it; both fire the "changed" trigger output
// so downstream trigger-connected nodes can react in the same cascade.
//
// Compute itself is a pure read of the held count: value-graph pulls never
// mutate state, only OnTriggered does (§4.6 "push and pull subsystems stay
// separate").
type Counter struct {
	count int32
}

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Name() string { return "Counter" }

// CloneOperator returns an independent Counter starting from the same
// count, so that cloning a graph never lets the clone and the original
// share a live count through an aliased pointer (operator.Cloner).
func (c *Counter) CloneOperator() operator.Operator { return &Counter{count: c.count} }

func (c *Counter) Inputs() []port.InputPort { return nil }

func (c *Counter) Outputs() []port.OutputPort {
	return []port.OutputPort{port.NewOutputPort("count", value.Int, port.None)}
}

func (c *Counter) TriggerInputs() []port.TriggerInput {
	return []port.TriggerInput{{Name: "increment"}, {Name: "reset"}}
}

func (c *Counter) TriggerOutputs() []port.TriggerOutput {
	return []port.TriggerOutput{{Name: "changed"}}
}

func (c *Counter) IsTimeVarying() bool { return false }

func (c *Counter) Compute(ctx evalctx.EvalContext, _ operator.Resolver, outputs []*port.OutputPort) {
	outputs[0].SetValue(ctx, value.NewInt(c.count))
}

func (c *Counter) OnTriggered(idx int, ctx evalctx.EvalContext, _ operator.Resolver, outputs []*port.OutputPort) []int {
	switch idx {
	case 0: // increment
		c.count++
	case 1: // reset
		c.count = 0
	default:
		return nil
	}
	outputs[0].SetValue(ctx, value.NewInt(c.count))
	outputs[0].MarkDirty()
	return []int{0} // fire "changed"
}
