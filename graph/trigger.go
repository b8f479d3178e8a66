package graph

import (
	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/fluxerr"
	"github.com/fluxgraph/flux/value"
)

// FireTrigger injects an event at sourceNode's trigger output sourceOut,
// cascading synchronously through every connected trigger input and
// whatever further trigger outputs each operator's OnTriggered chooses to
// fire in turn (§4.6). The whole cascade shares one EvalContext snapshot —
// no per-hop re-sampling of time/frame — and is bounded by the configured
// TriggerDepthLimit (default 1024): exceeding it aborts the cascade with
// ErrTriggerOverflow rather than recursing unboundedly.
func (g *Graph) FireTrigger(sourceNode id.Id, sourceOut int, ctx evalctx.EvalContext) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[sourceNode]; !ok {
		return fluxerr.Wrap(fluxerr.ErrNodeNotFound, "fire_trigger: node %s", sourceNode)
	}

	maxDepth := 0
	err := g.cascadeLocked(sourceNode, sourceOut, ctx, 0, &maxDepth)
	g.cfg.Metrics.TriggerCascadeDepth(maxDepth)
	return err
}

// cascadeLocked fires one (node, triggerOutIdx) hop and recurses into every
// connected target's OnTriggered result. Callers must already hold g.mu.
func (g *Graph) cascadeLocked(node id.Id, triggerOut int, ctx evalctx.EvalContext, depth int, maxDepth *int) error {
	if depth > *maxDepth {
		*maxDepth = depth
	}
	if depth >= g.cfg.TriggerDepthLimit {
		g.cfg.Logger.Warnw("trigger cascade exceeded depth limit", "node", node, "trigger_out", triggerOut, "depth_limit", g.cfg.TriggerDepthLimit)
		return fluxerr.Wrap(fluxerr.ErrTriggerOverflow, "fire_trigger: cascade exceeded depth limit %d", g.cfg.TriggerDepthLimit)
	}

	key := triggerSourceKey{node: node, out: triggerOut}
	for _, conn := range g.triggerBySource[key] {
		targetNode, ok := g.nodes[conn.TargetNode]
		if !ok {
			continue
		}

		resolver := &graphResolver{g: g, node: targetNode, ctx: ctx}
		outs := targetNode.Outputs()
		fired := targetNode.Op.OnTriggered(conn.TargetTrigger, ctx, resolver, outs)

		// A triggered operator may have called SetValue on its own outputs
		// (e.g. a Counter bumping its count). Publish those into the value
		// cache under this pass's call context and cascade invalidation to
		// value-graph descendants, so a subsequent pull Evaluate sees the
		// change instead of a stale cached entry (§4.3 cascade, §4.6).
		results := make([]value.Value, len(outs))
		for i, o := range outs {
			results[i] = o.Value()
		}
		ck := cacheKey{node: targetNode.ID, callContext: ctx.CallContext}
		g.cache.Add(ck, &cacheEntry{outputs: results, time: ctx.Time, frame: ctx.Frame})
		g.invalidateDescendantsLocked(targetNode.ID)

		for _, nextOut := range fired {
			if err := g.cascadeLocked(targetNode.ID, nextOut, ctx, depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}
