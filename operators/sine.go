package operators

import (
	"math"

	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// SineWave emits sin(2π * frequency * ctx.Time + phase) scaled by amplitude. It
// declares IsTimeVarying true, so the evaluator recomputes it on every pass
// regardless of its output port's dirty state (§4.5 needs_eval condition
// (b)) — the canonical "this node must be recomputed every time" operator.
type SineWave struct {
	operator.BaseOperator
}

func NewSineWave() *SineWave { return &SineWave{} }

func (s *SineWave) Name() string { return "SineWave" }

func (s *SineWave) Inputs() []port.InputPort {
	return []port.InputPort{
		port.NewInputPort("frequency", value.Float, value.NewFloat(1)),
		port.NewInputPort("amplitude", value.Float, value.NewFloat(1)),
		port.NewInputPort("phase", value.Float, value.NewFloat(0)),
	}
}

func (s *SineWave) Outputs() []port.OutputPort {
	return []port.OutputPort{port.NewOutputPort("value", value.Float, port.Always)}
}

func (s *SineWave) IsTimeVarying() bool { return true }

func (s *SineWave) Compute(ctx evalctx.EvalContext, resolver operator.Resolver, outputs []*port.OutputPort) {
	freq := resolver.Resolve(0).Float()
	amp := resolver.Resolve(1).Float()
	phase := resolver.Resolve(2).Float()
	v := amp * float32(math.Sin(2*math.Pi*float64(freq)*ctx.Time+float64(phase)))
	outputs[0].SetValue(ctx, value.NewFloat(v))
}
