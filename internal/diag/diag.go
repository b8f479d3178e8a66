// Package diag provides the core's structured-diagnostics seam: a thin
// interface over go.uber.org/zap's SugaredLogger so that importing flux's
// graph package never forces a logging backend on a caller that doesn't
// want one (the default is Nop), while a host that does want diagnostics —
// connections that will coerce at runtime (§4.1) and trigger overflow
// (§4.6) — gets real structured output.
package diag

import "go.uber.org/zap"

// Logger is the minimal surface the core calls into. It intentionally
// mirrors zap.SugaredLogger's Debugw/Warnw/Errorw shape so New's adapter is
// a one-line wrapper.
type Logger interface {
	Debugw(msg string, kv ...interface{})
	Warnw(msg string, kv ...interface{})
	Errorw(msg string, kv ...interface{})
}

type nop struct{}

func (nop) Debugw(string, ...interface{}) {}
func (nop) Warnw(string, ...interface{})  {}
func (nop) Errorw(string, ...interface{}) {}

// Nop returns a Logger that discards everything — the package-level
// default so a bare graph.New() never touches zap's global state.
func Nop() Logger { return nop{} }

type zapLogger struct {
	s *zap.SugaredLogger
}

func (z zapLogger) Debugw(msg string, kv ...interface{}) { z.s.Debugw(msg, kv...) }
func (z zapLogger) Warnw(msg string, kv ...interface{})  { z.s.Warnw(msg, kv...) }
func (z zapLogger) Errorw(msg string, kv ...interface{}) { z.s.Errorw(msg, kv...) }

// New wraps an existing zap.Logger (e.g. zap.NewProduction() from
// cmd/fluxctl) as a diag.Logger.
func New(l *zap.Logger) Logger {
	return zapLogger{s: l.Sugar()}
}
