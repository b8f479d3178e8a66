// Package id provides the opaque 128-bit node identifier used throughout
// Flux's graph, port, and evaluation-context types.
//
// An Id is never reused within a process, is comparable (usable as a map
// key), and carries no ordering guarantees — code that needs deterministic
// iteration (§ Graph container) sorts by insertion index or string form,
// never by Id value.
package id

import "github.com/google/uuid"

// Id is an opaque 128-bit identifier for a graph Node.
//
// Id wraps uuid.UUID rather than re-deriving a random-identifier scheme:
// uuid.New() already gives collision resistance far beyond anything a
// hand-rolled counter or hash could offer for a process-lifetime identifier.
type Id uuid.UUID

// Nil is the zero Id. It never identifies a real node; callers use it as a
// sentinel for "no source" / "not yet assigned".
var Nil = Id(uuid.Nil)

// New allocates a fresh, process-unique Id.
func New() Id {
	return Id(uuid.New())
}

// String renders the Id in canonical UUID form, for logs and error messages.
func (i Id) String() string {
	return uuid.UUID(i).String()
}

// IsNil reports whether i is the zero value.
func (i Id) IsNil() bool {
	return i == Nil
}
