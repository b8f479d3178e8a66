package operators

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// ListGet reads one element out of a FloatList input by index, following
// §3's list-access semantics: a negative index counts from the end, and an
// out-of-range or empty list yields the element type's default rather than
// an error.
type ListGet struct {
	operator.BaseOperator
}

func NewListGet() *ListGet { return &ListGet{} }

func (l *ListGet) Name() string { return "ListGet" }

func (l *ListGet) Inputs() []port.InputPort {
	return []port.InputPort{
		port.NewInputPort("list", value.FloatList, value.Default(value.FloatList)),
		port.NewInputPort("index", value.Int, value.NewInt(0)),
	}
}

func (l *ListGet) Outputs() []port.OutputPort {
	return []port.OutputPort{port.NewOutputPort("element", value.Float, port.None)}
}

func (l *ListGet) Compute(ctx evalctx.EvalContext, resolver operator.Resolver, outputs []*port.OutputPort) {
	list := resolver.Resolve(0)
	idx := int(resolver.Resolve(1).Int())
	outputs[0].SetValue(ctx, list.At(idx))
}
