package graph

import (
	"time"

	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/fluxerr"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Evaluate pulls nodeID's output outputIdx under ctx, recomputing exactly
// the ancestor subset that needs_eval deems stale and nothing else (§4.5).
//
// Results are memoized per (node, ctx.CallContext) in the graph's value
// cache — not on the node's live OutputPort, which only tracks "last
// physical compute" bookkeeping for dirty-policy decisions. This is what
// lets a nested evaluation pass (e.g. a future ForEach operator deriving
// one child CallContext per iteration) hold independent cached results for
// the same node across iterations without the iterations clobbering each
// other's single shared OutputPort.val.
func (g *Graph) Evaluate(nodeID id.Id, outputIdx int, ctx evalctx.EvalContext) (value.Value, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[nodeID]; !ok {
		return value.Value{}, fluxerr.Wrap(fluxerr.ErrNodeNotFound, "evaluate: node %s", nodeID)
	}
	if err := g.ensureOrderLocked(); err != nil {
		return value.Value{}, err
	}

	required := g.requiredSubsetLocked(nodeID)
	computedThisPass := make(map[id.Id]struct{}, len(required))

	start := time.Now()
	for _, cur := range g.topoOrder {
		if _, need := required[cur]; !need {
			continue
		}
		n := g.nodes[cur]

		if g.needsEvalLocked(n, ctx, computedThisPass) {
			g.cfg.Metrics.CacheMiss()
			g.computeNodeLocked(n, ctx)
			g.cfg.Metrics.ComputeInvoked(n.Op.Name())
			computedThisPass[cur] = struct{}{}
		} else {
			g.cfg.Metrics.CacheHit()
		}
	}
	g.cfg.Metrics.EvaluateDuration(time.Since(start).Seconds())

	n := g.nodes[nodeID]
	key := cacheKey{node: nodeID, callContext: ctx.CallContext}
	entry, ok := g.cache.Peek(key)
	if !ok || outputIdx < 0 || outputIdx >= len(entry.outputs) {
		if outputIdx >= 0 && outputIdx < len(n.outputs) {
			return value.Default(n.outputs[outputIdx].Type), nil
		}
		return value.Value{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "evaluate: output index %d out of range on node %s", outputIdx, nodeID)
	}
	return entry.outputs[outputIdx], nil
}

// requiredSubsetLocked computes the reverse-reachable ancestor set of
// nodeID (including itself) over the value graph, via byTarget (§4.5 "the
// evaluator only ever visits the required subset, not the whole graph").
func (g *Graph) requiredSubsetLocked(nodeID id.Id) map[id.Id]struct{} {
	required := map[id.Id]struct{}{nodeID: {}}
	stack := []id.Id{nodeID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, byInput := range g.byTarget[cur] {
			for _, c := range byInput {
				if _, seen := required[c.SourceNode]; seen {
					continue
				}
				required[c.SourceNode] = struct{}{}
				stack = append(stack, c.SourceNode)
			}
		}
	}
	return required
}

// needsEvalLocked implements the §4.5 needs_eval predicate: a node must be
// (re)computed this pass when it has no cache entry for this call context,
// it is declared time-varying, any of its own output ports report dirty
// under ctx, or any of its upstream sources were (re)computed this pass.
func (g *Graph) needsEvalLocked(n *Node, ctx evalctx.EvalContext, computedThisPass map[id.Id]struct{}) bool {
	key := cacheKey{node: n.ID, callContext: ctx.CallContext}
	if _, ok := g.cache.Peek(key); !ok {
		return true
	}
	if n.Op.IsTimeVarying() {
		return true
	}
	for i := range n.outputs {
		if n.outputs[i].IsDirty(ctx) {
			return true
		}
	}
	for _, byInput := range g.byTarget[n.ID] {
		for _, c := range byInput {
			if _, recomputed := computedThisPass[c.SourceNode]; recomputed {
				return true
			}
		}
	}
	return false
}

// computeNodeLocked runs one node's computation for this pass — bypass
// pass-through (§4.3 "Bypass") or the operator's own Compute — and writes
// the result into both the node's live output ports (for dirty-policy
// bookkeeping and casual external reads) and the call-context-keyed cache
// (the authoritative source InputResolver reads from).
func (g *Graph) computeNodeLocked(n *Node, ctx evalctx.EvalContext) {
	outs := n.Outputs()

	if n.Bypass {
		g.computeBypassLocked(n, ctx, outs)
	} else {
		resolver := &graphResolver{g: g, node: n, ctx: ctx}
		n.Op.Compute(ctx, resolver, outs)
	}

	results := make([]value.Value, len(outs))
	for i, o := range outs {
		results[i] = o.Value()
	}
	key := cacheKey{node: n.ID, callContext: ctx.CallContext}
	g.cache.Add(key, &cacheEntry{outputs: results, time: ctx.Time, frame: ctx.Frame})
}

// computeBypassLocked implements §4.3's bypass semantics: output 0 becomes
// input 0's resolved value verbatim (no coercion — input 0's own type is
// whatever arrives), every other output takes its declared default.
func (g *Graph) computeBypassLocked(n *Node, ctx evalctx.EvalContext, outs []*port.OutputPort) {
	resolver := &graphResolver{g: g, node: n, ctx: ctx}
	var passthrough value.Value
	if len(n.inputs) > 0 {
		passthrough = resolver.Resolve(0)
	}
	for i, o := range outs {
		if i == 0 && len(n.inputs) > 0 {
			o.SetValue(ctx, passthrough)
			continue
		}
		o.SetValue(ctx, value.Default(o.Type))
	}
}
