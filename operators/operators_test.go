package operators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/operators"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

func outPorts(ps []port.OutputPort) []*port.OutputPort {
	out := make([]*port.OutputPort, len(ps))
	for i := range ps {
		out[i] = &ps[i]
	}
	return out
}

// nilResolver satisfies operator.Resolver for operators that declare no
// inputs (Constant, Counter) — Resolve/ResolveMulti are never called.
type nilResolver struct{}

func (nilResolver) Resolve(int) value.Value        { return value.Value{} }
func (nilResolver) ResolveMulti(int) []value.Value { return nil }

// fixedResolver resolves input i to vals[i], ignoring multi-input fan-out.
type fixedResolver struct {
	vals  []value.Value
	multi [][]value.Value
}

func (r fixedResolver) Resolve(i int) value.Value {
	if i < 0 || i >= len(r.vals) {
		return value.Value{}
	}
	return r.vals[i]
}

func (r fixedResolver) ResolveMulti(i int) []value.Value {
	if i < 0 || i >= len(r.multi) {
		return nil
	}
	return r.multi[i]
}

func TestConstantEmitsItsValue(t *testing.T) {
	c := operators.NewConstant(value.NewFloat(3.5))
	outs := outPorts(c.Outputs())
	c.Compute(evalctx.New(), nilResolver{}, outs)
	assert.Equal(t, float32(3.5), outs[0].Value().Float())
}

func TestAddSumsTwoDistinctInputs(t *testing.T) {
	a := operators.NewAdd()
	outs := outPorts(a.Outputs())
	r := fixedResolver{vals: []value.Value{value.NewFloat(5), value.NewFloat(3)}}
	a.Compute(evalctx.New(), r, outs)
	assert.Equal(t, float32(8), outs[0].Value().Float())
}

func TestAddWithNoConnectionsUsesDefaults(t *testing.T) {
	a := operators.NewAdd()
	outs := outPorts(a.Outputs())
	r := fixedResolver{vals: []value.Value{value.NewFloat(0), value.NewFloat(0)}}
	a.Compute(evalctx.New(), r, outs)
	assert.Equal(t, float32(0), outs[0].Value().Float())
}

func TestMultiplyScalarTimesColorScalesAllFourChannels(t *testing.T) {
	m := operators.NewMultiply()
	outs := outPorts(m.Outputs())
	r := fixedResolver{vals: []value.Value{value.NewColor(1, 2, 3, 4), value.NewFloat(2)}}
	m.Compute(evalctx.New(), r, outs)
	rr, g, b, al := outs[0].Value().ColorComponents()
	assert.Equal(t, [4]float32{2, 4, 6, 8}, [4]float32{rr, g, b, al})
}

func TestSineWaveIsTimeVaryingAndOscillates(t *testing.T) {
	s := operators.NewSineWave()
	assert.True(t, s.IsTimeVarying())

	outs := outPorts(s.Outputs())
	r := fixedResolver{vals: []value.Value{value.NewFloat(1), value.NewFloat(1), value.NewFloat(0)}}

	s.Compute(evalctx.New(evalctx.WithTime(0, 0)), r, outs)
	assert.InDelta(t, 0, outs[0].Value().Float(), 1e-6)

	s.Compute(evalctx.New(evalctx.WithTime(0.25, 0)), r, outs)
	assert.InDelta(t, 1, outs[0].Value().Float(), 1e-4)
}

func TestCounterIncrementAndResetCascadeChangedTrigger(t *testing.T) {
	c := operators.NewCounter()
	outs := outPorts(c.Outputs())

	fired := c.OnTriggered(0, evalctx.New(), nilResolver{}, outs)
	assert.Equal(t, []int{0}, fired)
	assert.Equal(t, int32(1), outs[0].Value().Int())

	c.OnTriggered(0, evalctx.New(), nilResolver{}, outs)
	assert.Equal(t, int32(2), outs[0].Value().Int())

	fired = c.OnTriggered(1, evalctx.New(), nilResolver{}, outs)
	assert.Equal(t, []int{0}, fired)
	assert.Equal(t, int32(0), outs[0].Value().Int())
}

func TestCounterComputeReadsHeldStateWithoutMutating(t *testing.T) {
	c := operators.NewCounter()
	outs := outPorts(c.Outputs())
	c.OnTriggered(0, evalctx.New(), nilResolver{}, outs)

	c.Compute(evalctx.New(), nilResolver{}, outs)
	assert.Equal(t, int32(1), outs[0].Value().Int())
	c.Compute(evalctx.New(), nilResolver{}, outs)
	assert.Equal(t, int32(1), outs[0].Value().Int())
}

func TestListGetNegativeIndexIsLastElement(t *testing.T) {
	l := operators.NewListGet()
	outs := outPorts(l.Outputs())
	r := fixedResolver{vals: []value.Value{
		value.NewFloatList([]float32{10, 20, 30}),
		value.NewInt(-1),
	}}
	l.Compute(evalctx.New(), r, outs)
	assert.Equal(t, float32(30), outs[0].Value().Float())
}

func TestListGetOutOfRangeOnEmptyListYieldsDefault(t *testing.T) {
	l := operators.NewListGet()
	outs := outPorts(l.Outputs())
	r := fixedResolver{vals: []value.Value{
		value.Default(value.FloatList),
		value.NewInt(5),
	}}
	l.Compute(evalctx.New(), r, outs)
	assert.Equal(t, float32(0), outs[0].Value().Float())
}
