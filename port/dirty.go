package port

import "github.com/fluxgraph/flux/evalctx"

// DirtyPolicy governs when an OutputPort's dirty flag transitions from
// clean to dirty absent any explicit graph invalidation (§3 OutputPort,
// §4.2 Ports & Dirty Flags).
type DirtyPolicy uint8

const (
	// None means the port is dirty only when the graph's invalidator
	// explicitly targets the owning node (manual only).
	None DirtyPolicy = iota
	// Always means the port is dirty on every check.
	Always
	// Animated means the port is dirty when its local version counter has
	// advanced since the last successful compute.
	Animated
	// TimeChanged means the port is dirty when ctx.Time differs from the
	// time at which it was last computed.
	TimeChanged
	// FrameChanged means the port is dirty when ctx.Frame differs from the
	// frame at which it was last computed.
	FrameChanged
)

// evaluate reports whether policy judges the port dirty given the current
// context and the bookkeeping captured at the port's last successful
// compute (lastTime, lastFrame, lastVersion vs. the live version counter).
func (p DirtyPolicy) evaluate(ctx evalctx.EvalContext, manualDirty bool, lastTime float64, lastFrame uint64, version, lastVersion uint64) bool {
	switch p {
	case Always:
		return true
	case TimeChanged:
		return ctx.Time != lastTime
	case FrameChanged:
		return ctx.Frame != lastFrame
	case Animated:
		return version != lastVersion
	case None:
		return manualDirty
	default:
		return manualDirty
	}
}
