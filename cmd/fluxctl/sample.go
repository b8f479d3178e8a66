package main

import (
	"go.uber.org/zap"

	"github.com/fluxgraph/flux/evalctx"
	fluxgraph "github.com/fluxgraph/flux/graph"
	"github.com/fluxgraph/flux/id"
	"github.com/fluxgraph/flux/internal/config"
	"github.com/fluxgraph/flux/internal/diag"
	"github.com/fluxgraph/flux/internal/metrics"
	"github.com/fluxgraph/flux/operators"
	"github.com/fluxgraph/flux/value"
)

// buildSampleGraph wires SineWave(t) * Constant(amplitude) -> Add(bias) into
// a small demo dataflow: a time-varying source, a pure combinator, and a
// constant feeding a two-input sum.
func buildSampleGraph(cfg config.EngineConfig) (*fluxgraph.Graph, id.Id) {
	g := fluxgraph.New(
		config.WithCacheCapacity(cfg.CacheCapacity),
		config.WithTriggerDepthLimit(cfg.TriggerDepth),
		config.WithLogger(cfg.Logger),
		config.WithMetrics(cfg.Metrics),
	)

	sine := g.Add(operators.NewSineWave())
	amplitude := g.Add(operators.NewConstant(value.NewFloat(4)))
	scale := g.Add(operators.NewMultiply())
	bias := g.Add(operators.NewConstant(value.NewFloat(1)))
	sum := g.Add(operators.NewAdd())

	mustConnect(g, sine, 0, scale, 0)
	mustConnect(g, amplitude, 0, scale, 1)
	mustConnect(g, scale, 0, sum, 0)
	mustConnect(g, bias, 0, sum, 1)

	return g, sum
}

func mustConnect(g *fluxgraph.Graph, src id.Id, srcOut int, dst id.Id, dstIn int) {
	if _, err := g.Connect(src, srcOut, dst, dstIn); err != nil {
		panic(err)
	}
}

func buildEngineConfig(appCfg config.AppConfig, metricsCollector metrics.Collector) config.EngineConfig {
	logger, err := zapLoggerFor(appCfg.LogLevel)
	if err != nil {
		panic(err)
	}
	return config.New(
		config.WithCacheCapacity(appCfg.CacheCapacity),
		config.WithTriggerDepthLimit(appCfg.TriggerDepth),
		config.WithLogger(diag.New(logger)),
		config.WithMetrics(metricsCollector),
	)
}

func zapLoggerFor(level string) (*zap.Logger, error) {
	var zcfg zap.Config
	switch level {
	case "debug":
		zcfg = zap.NewDevelopmentConfig()
	default:
		zcfg = zap.NewProductionConfig()
	}
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zcfg.Build()
}

// evalctxAt returns an EvalContext at the given (time, frame) coordinates
// with a zero DeltaTime. The caller picks the coordinates: run and compile
// step a fixed 30-frames-per-second timeline, while serve passes the
// wall-clock time elapsed since it started.
func evalctxAt(t float64, frame uint64) evalctx.EvalContext {
	return evalctx.New(evalctx.WithTime(t, 0), evalctx.WithFrame(frame))
}
