// Package evalctx implements Flux's EvalContext (§3, §6.3): the read-only
// time/frame/variable bag threaded through every evaluate and trigger call,
// plus the call-context derivation used to isolate cache entries for nodes
// evaluated inside a nested/looped sub-evaluation (§4.5, §9).
package evalctx

import (
	"github.com/dgryski/go-wyhash"

	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/value"
)

// CallContext is the opaque 64-bit cache namespace derived by mixing a
// parent call context with a child node Id (§3 EvalContext.call_context).
// The zero CallContext is the root namespace every top-level Evaluate call
// starts from.
type CallContext uint64

// seed is a fixed mixing constant for the root CallContext so that
// Derive(id.Nil) from the root and a genuine first derivation never collide
// by construction (both still run through the same wyhash mix).
const seed uint64 = 0x9e3779b97f4a7c15

// Derive computes the child call context for childID nested inside cc.
//
// The derivation is deterministic (same parent + same child Id always
// yields the same result, §3 invariant) and pure — it reads no external
// state. It uses go-wyhash's 64-bit mix over the parent context and the
// child Id's 128 bits, which gives collision resistance far beyond what a
// hand-rolled XOR/shift mix could offer for the cache-isolation role this
// value plays (§9 "Call-context derivation").
func (cc CallContext) Derive(childID id.Id) CallContext {
	buf := make([]byte, 24)
	for i := 0; i < 8; i++ {
		buf[i] = byte(uint64(cc) >> (8 * i))
	}
	raw := [16]byte(childID)
	copy(buf[8:], raw[:])
	return CallContext(wyhash.Hash(buf, seed))
}

// EvalContext is the read-only evaluation environment passed to every
// compute/on_triggered call (§6.3).
type EvalContext struct {
	Time        float64
	DeltaTime   float64
	Frame       uint64
	Variables   map[string]value.Value
	CallContext CallContext
}

// Option configures an EvalContext at construction, mirroring the
// teacher's functional-options idiom used throughout the graph package.
type Option func(*EvalContext)

// WithTime sets Time and DeltaTime together, since most callers advance
// both in lockstep.
func WithTime(t, dt float64) Option {
	return func(c *EvalContext) {
		c.Time = t
		c.DeltaTime = dt
	}
}

// WithFrame sets the monotonically non-decreasing frame counter.
func WithFrame(f uint64) Option {
	return func(c *EvalContext) { c.Frame = f }
}

// WithVariable sets a single named variable in the context's variable bag.
func WithVariable(name string, v value.Value) Option {
	return func(c *EvalContext) {
		if c.Variables == nil {
			c.Variables = make(map[string]value.Value)
		}
		c.Variables[name] = v
	}
}

// New builds an EvalContext at the root call context (CallContext 0),
// applying opts left to right.
func New(opts ...Option) EvalContext {
	c := EvalContext{Variables: make(map[string]value.Value)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithCallContext returns a copy of ctx re-scoped to a child call context
// derived from childID (§6.3, §9). Time, Frame, and Variables are carried
// through unchanged — only the cache namespace changes.
func (c EvalContext) WithCallContext(childID id.Id) EvalContext {
	out := c
	out.CallContext = c.CallContext.Derive(childID)
	return out
}

// Variable looks up a variable by name, returning value.Default(value.Float)
// and false if absent.
func (c EvalContext) Variable(name string) (value.Value, bool) {
	v, ok := c.Variables[name]
	return v, ok
}
