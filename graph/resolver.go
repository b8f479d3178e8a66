package graph

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// graphResolver implements operator.Resolver for one node's Compute call
// within one Evaluate pass: it reads upstream values from the value cache
// under the pass's call context, falling back to the source port's default
// only when the source was not evaluated this pass (§4.5 step 3).
//
// Callers must already hold g.mu for the duration of the resolver's use —
// it reads g.nodes/g.cache directly rather than re-locking, since it only
// ever runs nested inside Evaluate/FireTrigger's own critical section.
type graphResolver struct {
	g    *Graph
	node *Node
	ctx  evalctx.EvalContext
}

func (r *graphResolver) Resolve(inputIdx int) value.Value {
	if inputIdx < 0 || inputIdx >= len(r.node.inputs) {
		return value.Value{}
	}
	in := &r.node.inputs[inputIdx]
	ref, ok := in.Source()
	if !ok {
		return in.Default
	}
	return r.g.resolveRefLocked(ref, r.ctx)
}

func (r *graphResolver) ResolveMulti(inputIdx int) []value.Value {
	if inputIdx < 0 || inputIdx >= len(r.node.inputs) {
		return nil
	}
	in := &r.node.inputs[inputIdx]
	refs := in.MultiSourceList()
	if len(refs) == 0 {
		return nil
	}
	out := make([]value.Value, 0, len(refs))
	for _, ref := range refs {
		out = append(out, r.g.resolveRefLocked(ref, r.ctx))
	}
	return out
}

// resolveRefLocked resolves one source ref to its cached value under ctx's
// call context, falling back to the source node's own output-port default
// value when it has no cache entry (i.e. it was not evaluated this pass —
// §4.5 step 3's bypass-like fallback). Callers must already hold g.mu.
func (r *Graph) resolveRefLocked(ref port.InputRef, ctx evalctx.EvalContext) value.Value {
	key := cacheKey{node: ref.SourceNode, callContext: ctx.CallContext}
	if entry, ok := r.cache.Peek(key); ok {
		if ref.SourceIndex >= 0 && ref.SourceIndex < len(entry.outputs) {
			return entry.outputs[ref.SourceIndex]
		}
	}
	if n, ok := r.nodes[ref.SourceNode]; ok {
		if out, ok := n.outputValue(ref.SourceIndex); ok {
			return value.Default(out.Type)
		}
	}
	return value.Value{}
}
