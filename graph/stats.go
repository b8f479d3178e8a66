package graph

import (
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/config"
	"github.com/fluxgraph/flux/operator"
)

// cloneOperator returns an independent operator instance for op: if op
// implements operator.Cloner, its CloneOperator is used; otherwise op
// itself is reused as-is, which is only safe for operators with no
// mutable state beyond their construction-time configuration (operator.Cloner).
func cloneOperator(op operator.Operator) operator.Operator {
	if c, ok := op.(operator.Cloner); ok {
		return c.CloneOperator()
	}
	return op
}

// Stats summarizes a Graph's current size and cache occupancy: node and
// connection counts alongside the value cache's current occupancy.
type Stats struct {
	NodeCount              int
	ValueConnectionCount   int
	TriggerConnectionCount int
	CacheEntryCount        int
}

// Stats reports Graph's current size (§9 "Observability without metrics").
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	valueConns := 0
	for _, byInput := range g.byTarget {
		for _, conns := range byInput {
			valueConns += len(conns)
		}
	}
	triggerConns := 0
	for _, conns := range g.triggerBySource {
		triggerConns += len(conns)
	}

	return Stats{
		NodeCount:              len(g.nodes),
		ValueConnectionCount:   valueConns,
		TriggerConnectionCount: triggerConns,
		CacheEntryCount:        g.cache.Len(),
	}
}

// CloneEmpty returns a new Graph with the same configuration and the same
// nodes, each holding its own independent operator instance (operator.Cloner
// for stateful operators, the same instance otherwise — see cloneOperator),
// but no connections and an empty cache.
func (g *Graph) CloneEmpty() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := New(
		withEngineConfig(g.cfg),
	)
	for _, nodeID := range g.insertionOrder {
		n := g.nodes[nodeID]
		newID := clone.Add(cloneOperator(n.Op))
		cn := clone.nodes[newID]
		cn.Position = n.Position
		cn.Bypass = n.Bypass
		for i := range n.inputs {
			cn.inputs[i].Default = n.inputs[i].Default
		}
	}
	return clone
}

// Clone returns a deep-enough copy of Graph: same nodes (in the
// CloneEmpty sense) plus every value and trigger connection re-dialed
// against the clone's own fresh node Ids. The clone starts with an empty
// cache — cached values are a pull-evaluation artifact, not part of the
// graph's durable structure.
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	idMap := make(map[id.Id]id.Id, len(g.nodes))
	order := append([]id.Id(nil), g.insertionOrder...)
	nodesSnapshot := make(map[id.Id]*Node, len(g.nodes))
	for k, v := range g.nodes {
		nodesSnapshot[k] = v
	}
	byTargetSnapshot := g.byTarget
	triggerSnapshot := g.triggerBySource
	cfg := g.cfg
	g.mu.RUnlock()

	clone := New(withEngineConfig(cfg))
	for _, nodeID := range order {
		n := nodesSnapshot[nodeID]
		newID := clone.Add(cloneOperator(n.Op))
		idMap[nodeID] = newID
		cn := clone.nodes[newID]
		cn.Position = n.Position
		cn.Bypass = n.Bypass
		for i := range n.inputs {
			cn.inputs[i].Default = n.inputs[i].Default
		}
	}
	for _, byInput := range byTargetSnapshot {
		for _, conns := range byInput {
			for _, c := range conns {
				_, _ = clone.Connect(idMap[c.SourceNode], c.SourceOutput, idMap[c.TargetNode], c.TargetInput)
			}
		}
	}
	for _, conns := range triggerSnapshot {
		for _, c := range conns {
			_, _ = clone.ConnectTrigger(idMap[c.SourceNode], c.SourceTrigger, idMap[c.TargetNode], c.TargetTrigger)
		}
	}
	return clone
}

// withEngineConfig is an internal EngineOption that copies an existing
// EngineConfig wholesale, used by Clone/CloneEmpty to carry the source
// graph's cache capacity, trigger depth limit, logger, and metrics
// collector onto the new instance without re-deriving them field by field.
func withEngineConfig(cfg config.EngineConfig) config.EngineOption {
	return func(c *config.EngineConfig) { *c = cfg }
}
