// Package port implements Flux's port model (§3, §4.2): typed input and
// output port descriptors, their dirty-flag/trigger-policy state machine,
// and the connection record that links one output to one input.
package port

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/value"
)

// InputRef names one source output a Connection or multi-input slot draws
// from: the Node owning the output, and that output's index on the node.
type InputRef struct {
	SourceNode  id.Id
	SourceIndex int
}

// InputPort is a named, typed input attachment point on an operator.
//
// A disconnected input (Source == nil and MultiSources empty) resolves to
// Default at evaluation time. Multi-input ports accumulate an ordered list
// of distinct source refs for variadic operators (e.g. Sum); a non-multi
// port holds at most one.
type InputPort struct {
	Name    string
	Type    value.Type
	Default value.Value
	Multi   bool

	source       *InputRef
	multiSources []InputRef
}

// NewInputPort constructs a disconnected InputPort with the given default.
func NewInputPort(name string, t value.Type, def value.Value) InputPort {
	return InputPort{Name: name, Type: t, Default: def}
}

// NewMultiInputPort constructs a disconnected multi-input port.
func NewMultiInputPort(name string, t value.Type, def value.Value) InputPort {
	return InputPort{Name: name, Type: t, Default: def, Multi: true}
}

// Connected reports whether the input has at least one source.
func (p *InputPort) Connected() bool {
	if p.Multi {
		return len(p.multiSources) > 0
	}
	return p.source != nil
}

// Source returns the single source ref for a non-multi input, or ok=false
// if disconnected.
func (p *InputPort) Source() (InputRef, bool) {
	if p.source == nil {
		return InputRef{}, false
	}
	return *p.source, true
}

// MultiSourceList returns the ordered source refs of a multi-input port.
func (p *InputPort) MultiSourceList() []InputRef {
	out := make([]InputRef, len(p.multiSources))
	copy(out, p.multiSources)
	return out
}

// connectSingle sets the sole source of a non-multi input. Callers
// (graph.Connect) are responsible for the duplicate/occupied checks named
// in §4.3; this method only performs the mechanical assignment.
func (p *InputPort) connectSingle(ref InputRef) {
	r := ref
	p.source = &r
}

func (p *InputPort) disconnectSingle() {
	p.source = nil
}

// addMultiSource appends a distinct source to a multi-input port.
func (p *InputPort) addMultiSource(ref InputRef) {
	p.multiSources = append(p.multiSources, ref)
}

// hasMultiSource reports whether ref is already present among the
// multi-input's sources (duplicate-source rejection, §4.3).
func (p *InputPort) hasMultiSource(ref InputRef) bool {
	for _, s := range p.multiSources {
		if s == ref {
			return true
		}
	}
	return false
}

func (p *InputPort) removeMultiSource(ref InputRef) {
	out := p.multiSources[:0]
	for _, s := range p.multiSources {
		if s != ref {
			out = append(out, s)
		}
	}
	p.multiSources = out
}

// OutputPort is a named, typed output attachment point. It holds the most
// recently computed value plus the bookkeeping its DirtyPolicy needs to
// decide, on the next check, whether it has gone stale (§3, §4.2).
type OutputPort struct {
	Name   string
	Type   value.Type
	Policy DirtyPolicy

	val             value.Value
	manualDirty     bool
	lastEvalTime    float64
	lastEvalFrame   uint64
	version         uint64
	lastSeenVersion uint64
	everComputed    bool
}

// NewOutputPort constructs an OutputPort holding its type's default value,
// starting dirty (it has never been computed).
func NewOutputPort(name string, t value.Type, policy DirtyPolicy) OutputPort {
	return OutputPort{
		Name:        name,
		Type:        t,
		Policy:      policy,
		val:         value.Default(t),
		manualDirty: true,
	}
}

// Value returns the port's current value. Reading never changes the dirty
// flag (§4.2).
func (p *OutputPort) Value() value.Value { return p.val }

// IsDirty reports whether the port is stale under ctx: never-computed ports
// are always dirty; otherwise the policy decides (§4.2).
func (p *OutputPort) IsDirty(ctx evalctx.EvalContext) bool {
	if !p.everComputed {
		return true
	}
	return p.Policy.evaluate(ctx, p.manualDirty, p.lastEvalTime, p.lastEvalFrame, p.version, p.lastSeenVersion)
}

// SetValue is invoked by an operator's compute to publish a new value. It
// clears the dirty flag and records the (time, frame, version) bookkeeping
// the next IsDirty check will compare against.
func (p *OutputPort) SetValue(ctx evalctx.EvalContext, v value.Value) {
	p.val = v
	p.manualDirty = false
	p.everComputed = true
	p.lastEvalTime = ctx.Time
	p.lastEvalFrame = ctx.Frame
	p.lastSeenVersion = p.version
}

// MarkDirty forces the port dirty regardless of policy — used by the
// graph's invalidation cascade (§4.3) when a structural change targets the
// owning node.
func (p *OutputPort) MarkDirty() { p.manualDirty = true }

// BumpVersion advances the Animated-policy version counter. Operators with
// internally driven change (e.g. a procedural noise seed) call this from
// compute before SetValue to signal "this output changed independent of
// any input."
func (p *OutputPort) BumpVersion() { p.version++ }

// TriggerInput is a named, dataless event input (§3 TriggerInput).
type TriggerInput struct {
	Name string
}

// TriggerOutput is a named, dataless event output (§3 TriggerOutput).
type TriggerOutput struct {
	Name string
}
