// Package metrics wires Prometheus client collectors for the engine's
// hot-path counters: node compute invocations, cache hit/miss, trigger
// cascade depth, and evaluate latency. A graph.Graph with no registry
// configured uses Nop(), so importing the core never pulls in a global
// Prometheus registry unless a host opts in (cmd/fluxctl serve does).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector is the surface graph/evaluate.go and graph/trigger.go call
// into.
type Collector interface {
	ComputeInvoked(nodeKind string)
	CacheHit()
	CacheMiss()
	TriggerCascadeDepth(depth int)
	EvaluateDuration(seconds float64)
}

type nop struct{}

func (nop) ComputeInvoked(string)     {}
func (nop) CacheHit()                 {}
func (nop) CacheMiss()                {}
func (nop) TriggerCascadeDepth(int)   {}
func (nop) EvaluateDuration(float64)  {}

// Nop returns a Collector that records nothing.
func Nop() Collector { return nop{} }

// Prometheus implements Collector backed by real client_golang collectors,
// registered against reg.
type Prometheus struct {
	computeTotal   *prometheus.CounterVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cascadeDepth   prometheus.Histogram
	evaluateSecond prometheus.Histogram
}

// NewPrometheus constructs and registers the engine's collectors against
// reg (typically prometheus.NewRegistry() owned by cmd/fluxctl serve).
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		computeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flux",
			Name:      "node_compute_total",
			Help:      "Number of times an operator's Compute was invoked, by operator kind.",
		}, []string{"operator"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flux",
			Name:      "value_cache_hits_total",
			Help:      "Number of value-cache lookups that found a usable cached output.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flux",
			Name:      "value_cache_misses_total",
			Help:      "Number of value-cache lookups that required a recompute.",
		}),
		cascadeDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flux",
			Name:      "trigger_cascade_depth",
			Help:      "Depth reached by a single trigger fire cascade.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
		}),
		evaluateSecond: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flux",
			Name:      "evaluate_duration_seconds",
			Help:      "Wall time of a single Graph.Evaluate call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(p.computeTotal, p.cacheHits, p.cacheMisses, p.cascadeDepth, p.evaluateSecond)
	return p
}

func (p *Prometheus) ComputeInvoked(operator string) { p.computeTotal.WithLabelValues(operator).Inc() }
func (p *Prometheus) CacheHit()                      { p.cacheHits.Inc() }
func (p *Prometheus) CacheMiss()                     { p.cacheMisses.Inc() }
func (p *Prometheus) TriggerCascadeDepth(depth int)  { p.cascadeDepth.Observe(float64(depth)) }
func (p *Prometheus) EvaluateDuration(seconds float64) { p.evaluateSecond.Observe(seconds) }
