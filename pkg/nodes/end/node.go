// Package end provides the terminal node handler.
package end

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
	return models.NodeTypeEnd
}

func (h *Handler) Execute(_ context.Context, node *models.WorkflowNode, _ *models.WorkflowExecution, _ *models.Booking) (protocol.NodeOutcome, error) {
	return protocol.NodeOutcome{
		Action:   "Workflow Completed",
		Details:  node.Label,
		Complete: true,
	}, nil
}
