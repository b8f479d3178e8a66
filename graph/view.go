package graph

import "github.com/fluxgraph/flux/id"

// FilterNodes returns a new Graph induced by keep: only nodes whose Id is
// true in keep survive, along with every value and trigger connection
// whose endpoints are both kept. g itself is never mutated. The result
// starts with an empty cache — cached
// values are a pull-evaluation artifact of the source graph, not part of
// its durable structure.
//
// A common use is extracting exactly the required ancestor subset a
// Compile call would visit, for offline inspection or debugging, without
// going through the compiled command-list representation.
func (g *Graph) FilterNodes(keep map[id.Id]bool) *Graph {
	g.mu.RLock()
	order := append([]id.Id(nil), g.insertionOrder...)
	nodesSnapshot := make(map[id.Id]*Node, len(g.nodes))
	for k, v := range g.nodes {
		nodesSnapshot[k] = v
	}
	byTargetSnapshot := g.byTarget
	triggerSnapshot := g.triggerBySource
	cfg := g.cfg
	g.mu.RUnlock()

	out := New(withEngineConfig(cfg))
	idMap := make(map[id.Id]id.Id, len(order))
	for _, nodeID := range order {
		if !keep[nodeID] {
			continue
		}
		n := nodesSnapshot[nodeID]
		newID := out.Add(cloneOperator(n.Op))
		idMap[nodeID] = newID
		cn := out.nodes[newID]
		cn.Position = n.Position
		cn.Bypass = n.Bypass
		for i := range n.inputs {
			cn.inputs[i].Default = n.inputs[i].Default
		}
	}

	for _, byInput := range byTargetSnapshot {
		for _, conns := range byInput {
			for _, c := range conns {
				srcID, srcOK := idMap[c.SourceNode]
				dstID, dstOK := idMap[c.TargetNode]
				if !srcOK || !dstOK {
					continue
				}
				_, _ = out.Connect(srcID, c.SourceOutput, dstID, c.TargetInput)
			}
		}
	}
	for _, conns := range triggerSnapshot {
		for _, c := range conns {
			srcID, srcOK := idMap[c.SourceNode]
			dstID, dstOK := idMap[c.TargetNode]
			if !srcOK || !dstOK {
				continue
			}
			_, _ = out.ConnectTrigger(srcID, c.SourceTrigger, dstID, c.TargetTrigger)
		}
	}

	return out
}

// RequiredSubsetIDs returns the Ids of nodeID's reverse-reachable ancestor
// subset (including nodeID itself) — the same set Evaluate and Compile
// restrict their work to (§4.5) — for debugging and FilterNodes callers
// that want "just what a Compile(nodeID, ...) would touch".
func (g *Graph) RequiredSubsetIDs(nodeID id.Id) []id.Id {
	g.mu.RLock()
	defer g.mu.RUnlock()
	required := g.requiredSubsetLocked(nodeID)
	out := make([]id.Id, 0, len(required))
	for _, n := range g.insertionOrder {
		if _, ok := required[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
