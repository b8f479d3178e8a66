package operators

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Add takes two single-valued inputs, "a" and "b", and emits their sum via
// value.Arith's width-promotion broadcasting rule (§4.1 Broadcasting). Each
// input independently resolves its own default when disconnected.
type Add struct {
	operator.BaseOperator
}

func NewAdd() *Add { return &Add{} }

func (a *Add) Name() string { return "Add" }

func (a *Add) Inputs() []port.InputPort {
	return []port.InputPort{
		port.NewInputPort("a", value.Float, value.NewFloat(0)),
		port.NewInputPort("b", value.Float, value.NewFloat(0)),
	}
}

func (a *Add) Outputs() []port.OutputPort {
	return []port.OutputPort{port.NewOutputPort("sum", value.Float, port.None)}
}

func (a *Add) Compute(ctx evalctx.EvalContext, resolver operator.Resolver, outputs []*port.OutputPort) {
	x := resolver.Resolve(0)
	y := resolver.Resolve(1)
	outputs[0].SetValue(ctx, value.Arith(value.OpAdd, x, y))
}

// Multiply takes two single-valued inputs, "a" and "b", and emits their
// product via value.Arith's broadcasting rule (scalar*Color scales all
// four channels, per §4.1's asymmetric scalar-Color rule).
type Multiply struct {
	operator.BaseOperator
}

func NewMultiply() *Multiply { return &Multiply{} }

func (m *Multiply) Name() string { return "Multiply" }

func (m *Multiply) Inputs() []port.InputPort {
	return []port.InputPort{
		port.NewInputPort("a", value.Float, value.NewFloat(1)),
		port.NewInputPort("b", value.Float, value.NewFloat(1)),
	}
}

func (m *Multiply) Outputs() []port.OutputPort {
	return []port.OutputPort{port.NewOutputPort("product", value.Float, port.None)}
}

func (m *Multiply) Compute(ctx evalctx.EvalContext, resolver operator.Resolver, outputs []*port.OutputPort) {
	a := resolver.Resolve(0)
	b := resolver.Resolve(1)
	outputs[0].SetValue(ctx, value.Arith(value.OpMul, a, b))
}
