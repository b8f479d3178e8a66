package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/value"
)

func TestOutputPortStartsDirty(t *testing.T) {
	p := NewOutputPort("out", value.Float, None)
	assert.True(t, p.IsDirty(evalctx.New()))
}

func TestOutputPortSetValueClearsDirty(t *testing.T) {
	p := NewOutputPort("out", value.Float, None)
	ctx := evalctx.New()
	p.SetValue(ctx, value.NewFloat(5))
	assert.False(t, p.IsDirty(ctx))
	assert.Equal(t, value.NewFloat(5), p.Value())
}

func TestOutputPortAlwaysPolicyStaysDirty(t *testing.T) {
	p := NewOutputPort("out", value.Float, Always)
	ctx := evalctx.New()
	p.SetValue(ctx, value.NewFloat(1))
	assert.True(t, p.IsDirty(ctx), "Always policy must stay dirty even right after compute")
}

func TestOutputPortTimeChangedPolicy(t *testing.T) {
	p := NewOutputPort("out", value.Float, TimeChanged)
	ctx0 := evalctx.New(evalctx.WithTime(0, 0))
	p.SetValue(ctx0, value.NewFloat(1))
	assert.False(t, p.IsDirty(ctx0))

	ctx1 := evalctx.New(evalctx.WithTime(0.25, 0.25))
	assert.True(t, p.IsDirty(ctx1))
}

func TestOutputPortFrameChangedPolicy(t *testing.T) {
	p := NewOutputPort("out", value.Int, FrameChanged)
	ctx0 := evalctx.New(evalctx.WithFrame(1))
	p.SetValue(ctx0, value.NewInt(1))
	assert.False(t, p.IsDirty(ctx0))

	ctx1 := evalctx.New(evalctx.WithFrame(2))
	assert.True(t, p.IsDirty(ctx1))
}

func TestOutputPortAnimatedPolicy(t *testing.T) {
	p := NewOutputPort("out", value.Float, Animated)
	ctx := evalctx.New()
	p.SetValue(ctx, value.NewFloat(1))
	assert.False(t, p.IsDirty(ctx))

	p.BumpVersion()
	assert.True(t, p.IsDirty(ctx))
}

func TestOutputPortManualMarkDirty(t *testing.T) {
	p := NewOutputPort("out", value.Float, None)
	ctx := evalctx.New()
	p.SetValue(ctx, value.NewFloat(1))
	require.False(t, p.IsDirty(ctx))

	p.MarkDirty()
	assert.True(t, p.IsDirty(ctx))
}

func TestInputPortConnectedLifecycle(t *testing.T) {
	in := NewInputPort("a", value.Float, value.NewFloat(0))
	assert.False(t, in.Connected())

	ref := InputRef{SourceIndex: 0}
	in.connectSingle(ref)
	assert.True(t, in.Connected())
	got, ok := in.Source()
	require.True(t, ok)
	assert.Equal(t, ref, got)

	in.disconnectSingle()
	assert.False(t, in.Connected())
}

func TestMultiInputPortRejectsDuplicateDetection(t *testing.T) {
	in := NewMultiInputPort("sum", value.Float, value.NewFloat(0))
	ref := InputRef{SourceIndex: 0}
	in.addMultiSource(ref)
	assert.True(t, in.hasMultiSource(ref))

	in.removeMultiSource(ref)
	assert.False(t, in.hasMultiSource(ref))
	assert.False(t, in.Connected())
}
