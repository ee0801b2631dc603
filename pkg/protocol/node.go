// Package protocol defines the interfaces and contracts between the
// workflow engine, its node handlers, and the external collaborators they
// depend on (booking gateway, notification delivery, external actions).
package protocol

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
)

// NodeOutcome is what a node handler reports back to the engine loop.
type NodeOutcome struct {
	// Action is the short verb phrase recorded in the execution log.
	Action string
	// Details is free text for the log entry; the notification projection
	// parses recipient/status fragments out of it.
	Details string
	// Branch names the labeled outgoing connection to follow. Empty means
	// sequential flow: the node's single successor.
	Branch string
	// Pause blocks the execution at this node awaiting an approval
	// decision. The log entry is still appended.
	Pause bool
	// Complete marks the execution completed. Only end nodes set this.
	Complete bool
}

// NodeHandler executes one node type against an execution and its booking.
// Handlers mutate nothing on the execution itself; they report an outcome
// and the engine applies it. Errors returned here fail the execution with
// the error recorded as its final log entry.
type NodeHandler interface {
	Type() models.NodeType
	Execute(ctx context.Context, node *models.WorkflowNode, execution *models.WorkflowExecution, booking *models.Booking) (NodeOutcome, error)
}

// HandlerRegistry resolves the handler for a node type.
type HandlerRegistry interface {
	HandlerFor(nodeType models.NodeType) (NodeHandler, bool)
}
