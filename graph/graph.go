// Package graph implements Flux's graph container and mutation protocol
// (§3, §4.3), the Kahn topological order (§4.4), the pull-based evaluator
// (§4.5), the push-based trigger subsystem (§4.6), and the compiled runtime
// (§4.7).
package graph

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/config"
	"github.com/fluxgraph/flux/internal/diag"
	"github.com/fluxgraph/flux/internal/metrics"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// cacheKey is the value cache's lookup key (§3 CacheKey): a node plus the
// call context it was evaluated under.
type cacheKey struct {
	node        id.Id
	callContext evalctx.CallContext
}

// cacheEntry memoizes one node's outputs for one cacheKey, plus the
// (time, frame) at which they were produced (§3 Graph value cache).
type cacheEntry struct {
	outputs []value.Value
	time    float64
	frame   uint64
}

// Graph is Flux's mutable DAG of operator nodes and the value/trigger
// connections between them (§3 Graph).
//
// Graph is guarded by a single sync.RWMutex: the engine's concurrency model
// (§5) is cooperative single-threaded evaluation with exclusive mutation,
// and this lock exists to turn an accidental concurrent call into a
// well-defined block rather than a data race — it is not a parallel-
// evaluation feature.
type Graph struct {
	mu sync.RWMutex

	cfg config.EngineConfig

	nodes          map[id.Id]*Node
	insertionOrder []id.Id
	nextInsertion  int

	// byTarget[target][targetInput] lists the Connections feeding that
	// input slot (len 1 unless the input is multi-input).
	byTarget map[id.Id]map[int][]port.Connection
	// bySource[source] lists every Connection whose source is that node,
	// used for forward cascade-invalidation traversal (§4.3).
	bySource map[id.Id][]port.Connection

	// triggerBySource[(node, triggerOutIdx)] lists trigger targets for
	// fire_trigger lookup (§4.6).
	triggerBySource map[triggerSourceKey][]port.TriggerConnection

	orderDirty bool
	topoOrder  []id.Id

	cache *lru.Cache[cacheKey, *cacheEntry]

	// generation increments on every structural mutation; a CompiledGraph
	// captures the generation at compile time and rejects Execute once it
	// no longer matches (§4.7, §9 "Compiled runtime liveness").
	generation uint64
}

type triggerSourceKey struct {
	node id.Id
	out  int
}

// New constructs an empty Graph.
func New(opts ...config.EngineOption) *Graph {
	cfg := config.New(opts...)
	cache, err := lru.New[cacheKey, *cacheEntry](cfg.CacheCapacity)
	if err != nil {
		// Only invalid (<=0) capacity reaches here, and config.New starts
		// from a positive default and ignores non-positive overrides.
		panic("graph: invalid cache capacity: " + err.Error())
	}
	return &Graph{
		cfg:             cfg,
		nodes:           make(map[id.Id]*Node),
		byTarget:        make(map[id.Id]map[int][]port.Connection),
		bySource:        make(map[id.Id][]port.Connection),
		triggerBySource: make(map[triggerSourceKey][]port.TriggerConnection),
		cache:           cache,
		orderDirty:      true,
	}
}

// Add places a fresh node wrapping op into the graph and returns its newly
// allocated Id (§4.3 add).
func (g *Graph) Add(op operator.Operator) id.Id {
	g.mu.Lock()
	defer g.mu.Unlock()

	nodeID := id.New()
	n := newNode(nodeID, op, g.nextInsertion)
	g.nextInsertion++
	g.nodes[nodeID] = n
	g.insertionOrder = append(g.insertionOrder, nodeID)
	g.orderDirty = true
	g.generation++

	return nodeID
}

func (g *Graph) nodeLocked(nodeID id.Id) (*Node, bool) {
	n, ok := g.nodes[nodeID]
	return n, ok
}

// HasNode reports whether nodeID is present in the graph.
func (g *Graph) HasNode(nodeID id.Id) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[nodeID]
	return ok
}

// NodeIDs returns every node Id in insertion order (§9 "Deterministic
// iteration").
func (g *Graph) NodeIDs() []id.Id {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]id.Id, len(g.insertionOrder))
	copy(out, g.insertionOrder)
	return out
}

// NodeCount returns the number of nodes currently in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Logger exposes the configured diagnostics sink for collaborators (e.g.
// operators) that want to log through the same seam the core uses.
func (g *Graph) Logger() diag.Logger { return g.cfg.Logger }

// Metrics exposes the configured metrics collector.
func (g *Graph) Metrics() metrics.Collector { return g.cfg.Metrics }
