// Package operators is a small sample library of collaborator operators
// exercising the operator.Operator contract end to end: a pure source
// (Constant), pure combinators (Add, Multiply), a time-varying source
// (SineWave), a stateful trigger-driven node (Counter), and a list
// accessor (ListGet).
package operators

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Constant outputs a fixed value set at construction. It declares no
// inputs and is never time-varying, so it computes exactly once per
// call context and is cached thereafter.
type Constant struct {
	operator.BaseOperator
	Val value.Value
}

func NewConstant(v value.Value) *Constant { return &Constant{Val: v} }

func (c *Constant) Name() string { return "Constant" }

func (c *Constant) Inputs() []port.InputPort { return nil }

func (c *Constant) Outputs() []port.OutputPort {
	return []port.OutputPort{port.NewOutputPort("value", c.Val.Type(), port.None)}
}

func (c *Constant) Compute(ctx evalctx.EvalContext, _ operator.Resolver, outputs []*port.OutputPort) {
	outputs[0].SetValue(ctx, c.Val)
}
