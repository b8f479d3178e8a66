package graph

import (
	"container/heap"

	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/fluxerr"
)

// indexHeap is a min-heap of node Ids ordered by insertion index, giving
// Kahn's algorithm its deterministic tie-break among simultaneously
// zero-in-degree nodes (§4.4).
type indexHeap struct {
	ids     []id.Id
	indexOf map[id.Id]int
}

func (h *indexHeap) Len() int { return len(h.ids) }
func (h *indexHeap) Less(i, j int) bool {
	return h.indexOf[h.ids[i]] < h.indexOf[h.ids[j]]
}
func (h *indexHeap) Swap(i, j int) { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }
func (h *indexHeap) Push(x interface{}) {
	h.ids = append(h.ids, x.(id.Id))
}
func (h *indexHeap) Pop() interface{} {
	old := h.ids
	n := len(old)
	last := old[n-1]
	h.ids = old[:n-1]
	return last
}

// recomputeOrderLocked rebuilds g.topoOrder via Kahn's algorithm over the
// value graph, breaking ties by insertion order (§4.4). Callers must
// already hold g.mu. It is a defensive error (ErrCycleDetected) for any
// node to remain undequeued — Connect's cycle check is supposed to make
// this unreachable, but the engine still detects and reports it rather
// than silently truncating the order (§4.4, §7).
func (g *Graph) recomputeOrderLocked() error {
	inDegree := make(map[id.Id]int, len(g.nodes))
	for nodeID := range g.nodes {
		inDegree[nodeID] = 0
	}
	for _, byInput := range g.byTarget {
		for _, conns := range byInput {
			for _, c := range conns {
				inDegree[c.TargetNode]++
			}
		}
	}

	insertionIndex := make(map[id.Id]int, len(g.nodes))
	for _, n := range g.nodes {
		insertionIndex[n.ID] = n.insertionIndex
	}

	h := &indexHeap{indexOf: insertionIndex}
	for nodeID, deg := range inDegree {
		if deg == 0 {
			h.ids = append(h.ids, nodeID)
		}
	}
	heap.Init(h)

	order := make([]id.Id, 0, len(g.nodes))
	for h.Len() > 0 {
		cur := heap.Pop(h).(id.Id)
		order = append(order, cur)

		// Collect (targetNode, ...) by emitting in a stable order: iterate
		// this node's outgoing connections via bySource, decrementing each
		// target's in-degree exactly once per connection.
		for _, c := range g.bySource[cur] {
			inDegree[c.TargetNode]--
			if inDegree[c.TargetNode] == 0 {
				heap.Push(h, c.TargetNode)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return fluxerr.ErrCycleDetected
	}

	g.topoOrder = order
	g.orderDirty = false

	return nil
}

// ensureOrderLocked recomputes the topological order only if it is
// currently marked dirty. Callers must already hold g.mu (write lock,
// since it may mutate g.topoOrder/g.orderDirty).
func (g *Graph) ensureOrderLocked() error {
	if !g.orderDirty {
		return nil
	}
	return g.recomputeOrderLocked()
}
