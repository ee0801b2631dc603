// Package start provides the entry node handler. Start nodes have no side
// effect; they mark the beginning of an execution in the log.
package start

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/protocol"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Type() models.NodeType {
	return models.NodeTypeStart
}

func (h *Handler) Execute(_ context.Context, node *models.WorkflowNode, _ *models.WorkflowExecution, _ *models.Booking) (protocol.NodeOutcome, error) {
	return protocol.NodeOutcome{
		Action:  "Workflow Started",
		Details: node.Label,
	}, nil
}
