// Package config defines the engine's process-argument-scoped
// configuration: there is no persistence format, so everything here is
// either a functional EngineOption consumed at graph.New time, or an
// AppConfig populated from cmd/fluxctl's cobra/pflag flags.
package config

import (
	"github.com/fluxgraph/flux/internal/diag"
	"github.com/fluxgraph/flux/internal/metrics"
)

// Defaults: a 1024-deep trigger recursion guard (§4.6) and an LRU cache
// capacity generous enough that a typical editor-sized graph (hundreds of
// nodes, a handful of call contexts each) never evicts a live entry in
// normal use.
const (
	DefaultTriggerDepthLimit = 1024
	DefaultCacheCapacity     = 4096
)

// EngineConfig holds the options graph.New accepts.
type EngineConfig struct {
	TriggerDepthLimit int
	CacheCapacity     int
	Logger            diag.Logger
	Metrics           metrics.Collector
}

// EngineOption configures an EngineConfig using the same functional-options
// convention as the rest of the module.
type EngineOption func(*EngineConfig)

// WithTriggerDepthLimit overrides the trigger-cascade recursion guard
// (§4.6). Values <= 0 are ignored (the default is kept).
func WithTriggerDepthLimit(n int) EngineOption {
	return func(c *EngineConfig) {
		if n > 0 {
			c.TriggerDepthLimit = n
		}
	}
}

// WithCacheCapacity overrides the value cache's LRU capacity. Values <= 0
// are ignored.
func WithCacheCapacity(n int) EngineOption {
	return func(c *EngineConfig) {
		if n > 0 {
			c.CacheCapacity = n
		}
	}
}

// WithLogger installs a diag.Logger for coercion/mutation/trigger
// diagnostics.
func WithLogger(l diag.Logger) EngineOption {
	return func(c *EngineConfig) { c.Logger = l }
}

// WithMetrics installs a metrics.Collector.
func WithMetrics(m metrics.Collector) EngineOption {
	return func(c *EngineConfig) { c.Metrics = m }
}

// New builds an EngineConfig from defaults, applying opts left to right in
// a deterministic order.
func New(opts ...EngineOption) EngineConfig {
	c := EngineConfig{
		TriggerDepthLimit: DefaultTriggerDepthLimit,
		CacheCapacity:     DefaultCacheCapacity,
		Logger:            diag.Nop(),
		Metrics:           metrics.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// AppConfig is cmd/fluxctl's process configuration, bound to cobra/pflag
// flags in cmd/fluxctl/root.go (MetricsAddr in cmd/fluxctl/serve.go).
type AppConfig struct {
	LogLevel      string
	MetricsAddr   string
	CacheCapacity int
	TriggerDepth  int
}
