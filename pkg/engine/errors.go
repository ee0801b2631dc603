// Error taxonomy for workflow execution. Structural and policy errors
// terminate the execution into Failed with the error recorded as its final
// log entry; they are never silently swallowed.
package engine

import (
	"errors"
	"fmt"

	"github.com/strataflow/strataflow/pkg/persistence"
)

var (
	// ErrDefinitionNotFound is returned by Start when no definition is
	// registered under the given ID.
	ErrDefinitionNotFound = persistence.ErrDefinitionNotFound

	// ErrNotAwaitingApproval is returned by ResolveApproval when the
	// execution is not paused at an approval gate.
	ErrNotAwaitingApproval = errors.New("execution is not awaiting approval")
)

// MalformedGraphError reports a structural defect discovered while walking
// a definition: no unique start node, a dangling connection, an unknown
// node type, a cycle. Graphs are validated lazily, so this surfaces on
// first execution rather than at store time.
type MalformedGraphError struct {
	NodeID string
	Reason string
}

func (e *MalformedGraphError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("malformed graph at node %s: %s", e.NodeID, e.Reason)
	}

	return "malformed graph: " + e.Reason
}

// UnmatchedBranchError reports a branch outcome with no matching labeled
// connection to follow.
type UnmatchedBranchError struct {
	NodeID string
	Branch string
}

func (e *UnmatchedBranchError) Error() string {
	return fmt.Sprintf("no connection from node %s matches branch %q", e.NodeID, e.Branch)
}
