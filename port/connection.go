package port

import "github.com/fluxgraph/flux/id"

// Connection is a directed link from one output port to one input port
// (§3 Connection). A given (TargetNode, TargetInput) pair is unique unless
// the target input is multi-input, in which case duplicate sources are
// disallowed but multiple distinct sources are permitted — graph.Connect
// enforces this, Connection itself is a plain record.
type Connection struct {
	SourceNode   id.Id
	SourceOutput int
	TargetNode   id.Id
	TargetInput  int
}

// TriggerConnection is a directed link in the parallel trigger graph (§3
// TriggerInput/TriggerOutput). Unlike value Connections, the trigger graph
// permits cycles (§4.6) so TriggerConnection carries no uniqueness
// constraint beyond "not an exact duplicate".
type TriggerConnection struct {
	SourceNode    id.Id
	SourceTrigger int
	TargetNode    id.Id
	TargetTrigger int
}
