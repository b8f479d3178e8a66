package graph

import (
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/fluxerr"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// Remove deletes nodeID, every incident value and trigger connection, and
// every cache entry keyed to it (§4.3 remove).
func (g *Graph) Remove(nodeID id.Id) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[nodeID]; !ok {
		return fluxerr.Wrap(fluxerr.ErrNodeNotFound, "remove: node %s", nodeID)
	}

	// Drop every value connection touching nodeID, either side.
	for targetNode, byInput := range g.byTarget {
		for inputIdx, conns := range byInput {
			kept := conns[:0]
			for _, c := range conns {
				if c.SourceNode == nodeID || c.TargetNode == nodeID {
					continue
				}
				kept = append(kept, c)
			}
			if len(kept) == 0 {
				delete(byInput, inputIdx)
			} else {
				byInput[inputIdx] = kept
			}
		}
		if len(byInput) == 0 {
			delete(g.byTarget, targetNode)
		}
	}
	for srcNode, conns := range g.bySource {
		kept := conns[:0]
		for _, c := range conns {
			if c.SourceNode == nodeID || c.TargetNode == nodeID {
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			delete(g.bySource, srcNode)
		} else {
			g.bySource[srcNode] = kept
		}
	}
	// Also scrub any surviving node's InputPort-level source pointers.
	for _, n := range g.nodes {
		for i := range n.inputs {
			in := &n.inputs[i]
			if ref, ok := in.Source(); ok && ref.SourceNode == nodeID {
				in.disconnectSingle()
			}
			for _, ref := range in.MultiSourceList() {
				if ref.SourceNode == nodeID {
					in.removeMultiSource(ref)
				}
			}
		}
	}

	for key, conns := range g.triggerBySource {
		if key.node == nodeID {
			delete(g.triggerBySource, key)
			continue
		}
		kept := conns[:0]
		for _, c := range conns {
			if c.TargetNode == nodeID {
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			delete(g.triggerBySource, key)
		} else {
			g.triggerBySource[key] = kept
		}
	}

	g.evictCacheForNode(nodeID)
	delete(g.nodes, nodeID)
	for i, v := range g.insertionOrder {
		if v == nodeID {
			g.insertionOrder = append(g.insertionOrder[:i], g.insertionOrder[i+1:]...)
			break
		}
	}
	g.orderDirty = true
	g.generation++

	return nil
}

// Connect links (src, srcOut) -> (dst, dstIn), validating existence, port
// index ranges, type-compatibility-is-permissive, duplicate/multi-input
// rules, and value-graph acyclicity (§4.3 connect).
func (g *Graph) Connect(src id.Id, srcOut int, dst id.Id, dstIn int) (port.Connection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcNode, ok := g.nodes[src]
	if !ok {
		return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: source node %s not found", src)
	}
	dstNode, ok := g.nodes[dst]
	if !ok {
		return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: target node %s not found", dst)
	}
	if srcOut < 0 || srcOut >= len(srcNode.outputs) {
		return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: source output index %d out of range", srcOut)
	}
	if dstIn < 0 || dstIn >= len(dstNode.inputs) {
		return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: target input index %d out of range", dstIn)
	}

	in := &dstNode.inputs[dstIn]
	ref := port.InputRef{SourceNode: src, SourceIndex: srcOut}

	if in.Multi {
		if in.hasMultiSource(ref) {
			return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: duplicate source on multi-input %s.%d", dst, dstIn)
		}
	} else if in.Connected() {
		return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: target input %s.%d already connected", dst, dstIn)
	}

	// Value-graph acyclicity: adding src->dst must not let dst already
	// reach src via existing connections (§4.3, §4.4 tie-break note).
	if g.reaches(dst, src) {
		return port.Connection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect: %s -> %s would create a cycle", src, dst)
	}

	// Permissive type check: log, never reject (§4.3 "will coerce at runtime").
	outType := srcNode.outputs[srcOut].Type
	if outType != in.Type {
		g.cfg.Logger.Debugw("connection will coerce at runtime",
			"source", src.String(), "sourceOutput", srcOut,
			"target", dst.String(), "targetInput", dstIn,
			"sourceType", outType.String(), "targetType", in.Type.String())
	}

	if in.Multi {
		in.addMultiSource(ref)
	} else {
		in.connectSingle(ref)
	}

	conn := port.Connection{SourceNode: src, SourceOutput: srcOut, TargetNode: dst, TargetInput: dstIn}
	g.byTarget[dst] = ensureInputMap(g.byTarget[dst])
	g.byTarget[dst][dstIn] = append(g.byTarget[dst][dstIn], conn)
	g.bySource[src] = append(g.bySource[src], conn)

	g.invalidateLocked(dst)
	g.orderDirty = true
	g.generation++

	return conn, nil
}

func ensureInputMap(m map[int][]port.Connection) map[int][]port.Connection {
	if m == nil {
		return make(map[int][]port.Connection)
	}
	return m
}

// Disconnect removes the connection (src, srcOut) -> (dst, dstIn), the
// mirror of Connect (§4.3 disconnect).
func (g *Graph) Disconnect(src id.Id, srcOut int, dst id.Id, dstIn int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	dstNode, ok := g.nodes[dst]
	if !ok {
		return fluxerr.Wrap(fluxerr.ErrNodeNotFound, "disconnect: target node %s", dst)
	}
	if dstIn < 0 || dstIn >= len(dstNode.inputs) {
		return fluxerr.Wrap(fluxerr.ErrStructuralViolation, "disconnect: target input index %d out of range", dstIn)
	}

	in := &dstNode.inputs[dstIn]
	ref := port.InputRef{SourceNode: src, SourceIndex: srcOut}
	if in.Multi {
		in.removeMultiSource(ref)
	} else {
		if got, ok := in.Source(); !ok || got != ref {
			return nil // no-op: nothing to disconnect
		}
		in.disconnectSingle()
	}

	if byInput, ok := g.byTarget[dst]; ok {
		conns := byInput[dstIn]
		kept := conns[:0]
		for _, c := range conns {
			if c.SourceNode == src && c.SourceOutput == srcOut {
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			delete(byInput, dstIn)
		} else {
			byInput[dstIn] = kept
		}
	}
	if conns, ok := g.bySource[src]; ok {
		kept := conns[:0]
		for _, c := range conns {
			if c.TargetNode == dst && c.TargetInput == dstIn {
				continue
			}
			kept = append(kept, c)
		}
		g.bySource[src] = kept
	}

	g.invalidateLocked(dst)
	g.orderDirty = true
	g.generation++

	return nil
}

// SetInputDefault stores value as input port's default. It only affects
// evaluation while the input is disconnected, but is always stored so a
// later disconnect restores the caller's intent (§4.3
// set_input_default).
func (g *Graph) SetInputDefault(nodeID id.Id, inputIdx int, v value.Value) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[nodeID]
	if !ok {
		return fluxerr.Wrap(fluxerr.ErrNodeNotFound, "set_input_default: node %s", nodeID)
	}
	if inputIdx < 0 || inputIdx >= len(n.inputs) {
		return fluxerr.Wrap(fluxerr.ErrStructuralViolation, "set_input_default: input index %d out of range", inputIdx)
	}
	n.inputs[inputIdx].Default = v
	g.invalidateLocked(nodeID)
	// A CompiledGraph captures disconnected inputs' defaults at compile
	// time, so a default change makes it stale.
	g.generation++
	// Changing only a default does not affect connection topology, so the
	// cached topological order stays valid (§4.4).

	return nil
}

// SetBypass toggles nodeID's bypass flag, invalidating its cache.
func (g *Graph) SetBypass(nodeID id.Id, bypass bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[nodeID]
	if !ok {
		return fluxerr.Wrap(fluxerr.ErrNodeNotFound, "set_bypass: node %s", nodeID)
	}
	n.Bypass = bypass
	g.invalidateLocked(nodeID)

	return nil
}

// ConnectTrigger links a trigger output to a trigger input. The trigger
// graph permits cycles (§4.6), so no acyclicity check runs here.
func (g *Graph) ConnectTrigger(src id.Id, srcOut int, dst id.Id, dstIn int) (port.TriggerConnection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcNode, ok := g.nodes[src]
	if !ok {
		return port.TriggerConnection{}, fluxerr.Wrap(fluxerr.ErrNodeNotFound, "connect_trigger: source node %s", src)
	}
	dstNode, ok := g.nodes[dst]
	if !ok {
		return port.TriggerConnection{}, fluxerr.Wrap(fluxerr.ErrNodeNotFound, "connect_trigger: target node %s", dst)
	}
	if srcOut < 0 || srcOut >= len(srcNode.triggerOuts) {
		return port.TriggerConnection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect_trigger: source trigger index %d out of range", srcOut)
	}
	if dstIn < 0 || dstIn >= len(dstNode.triggerIns) {
		return port.TriggerConnection{}, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "connect_trigger: target trigger index %d out of range", dstIn)
	}

	conn := port.TriggerConnection{SourceNode: src, SourceTrigger: srcOut, TargetNode: dst, TargetTrigger: dstIn}
	key := triggerSourceKey{node: src, out: srcOut}
	for _, existing := range g.triggerBySource[key] {
		if existing == conn {
			return conn, nil // exact duplicate is a no-op
		}
	}
	g.triggerBySource[key] = append(g.triggerBySource[key], conn)

	return conn, nil
}

// invalidateLocked evicts the cache for nodeID and cascades to every
// value-reachable descendant (§4.3 Cascade policy, §8 property 4). Callers
// must already hold g.mu.
func (g *Graph) invalidateLocked(nodeID id.Id) {
	visited := make(map[id.Id]struct{})
	queue := []id.Id{nodeID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		g.evictCacheForNode(cur)
		if n, ok := g.nodes[cur]; ok {
			n.markAllOutputsDirty()
		}

		for _, c := range g.bySource[cur] {
			queue = append(queue, c.TargetNode)
		}
	}
}

// invalidateDescendantsLocked evicts the cache and marks dirty every
// value-reachable descendant of nodeID, excluding nodeID itself — used
// after a trigger handler freshly writes nodeID's own outputs so that
// descendants are recomputed on the next pull Evaluate without discarding
// the value just published for nodeID (§4.6 interplay with §4.3 cascade).
func (g *Graph) invalidateDescendantsLocked(nodeID id.Id) {
	visited := map[id.Id]struct{}{nodeID: {}}
	queue := make([]id.Id, 0, len(g.bySource[nodeID]))
	for _, c := range g.bySource[nodeID] {
		queue = append(queue, c.TargetNode)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		g.evictCacheForNode(cur)
		if n, ok := g.nodes[cur]; ok {
			n.markAllOutputsDirty()
		}
		for _, c := range g.bySource[cur] {
			queue = append(queue, c.TargetNode)
		}
	}
}

func (g *Graph) evictCacheForNode(nodeID id.Id) {
	for _, key := range g.cache.Keys() {
		if key.node == nodeID {
			g.cache.Remove(key)
		}
	}
}

// reaches reports whether there is a value-graph path from -> to using the
// existing connection index (forward, via bySource). Callers must already
// hold g.mu. Used by Connect's cycle check: reaches(dst, src) true means
// adding src->dst would close a cycle.
func (g *Graph) reaches(from, to id.Id) bool {
	if from == to {
		return true
	}
	visited := map[id.Id]struct{}{from: {}}
	stack := []id.Id{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.bySource[cur] {
			if c.TargetNode == to {
				return true
			}
			if _, seen := visited[c.TargetNode]; seen {
				continue
			}
			visited[c.TargetNode] = struct{}{}
			stack = append(stack, c.TargetNode)
		}
	}
	return false
}
