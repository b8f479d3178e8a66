// Package fluxerr defines the typed error kinds the core surfaces (§6.4,
// §7): sentinel errors compared with errors.Is/errors.As by callers, wrapped
// with github.com/pkg/errors at the mutation/evaluation boundary so
// internal/diag can log a stack alongside the sentinel.
//
// TypeMismatch is deliberately absent: §7 is explicit that coercion
// failures are never raised as errors, only absorbed into default-value
// substitution.
package fluxerr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors, one per §7 error kind.
var (
	// ErrStructuralViolation is returned from Connect: invalid node id,
	// out-of-range port index, cycle, or duplicate connection on a
	// non-multi input.
	ErrStructuralViolation = errors.New("flux: structural violation")

	// ErrNodeNotFound is returned from Evaluate, Remove, Disconnect, and
	// similar when the referenced Id is not present.
	ErrNodeNotFound = errors.New("flux: node not found")

	// ErrTriggerOverflow is returned from a trigger entry point when the
	// cascade exceeds the configured depth limit.
	ErrTriggerOverflow = errors.New("flux: trigger cascade exceeded depth limit")

	// ErrCycleDetected is returned from topological-order computation if a
	// cycle is detected defensively — this should be unreachable given the
	// connect-time cycle check, and indicates an earlier invariant
	// violation.
	ErrCycleDetected = errors.New("flux: cycle detected in value graph")

	// ErrStale is returned by a CompiledGraph whose source graph has
	// mutated since compilation (§4.7 Invalidation).
	ErrStale = errors.New("flux: compiled graph is stale")
)

// Wrap attaches positional/diagnostic context to a sentinel error with
// github.com/pkg/errors, preserving errors.Is/errors.As compatibility with
// the sentinel while giving internal/diag a stack trace to log.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return pkgerrors.Wrap(sentinel, fmt.Sprintf(format, args...))
}

// Cause unwraps a fluxerr-wrapped error back to its pkg/errors cause,
// exposed for diagnostics that want the original sentinel without string
// matching.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}
