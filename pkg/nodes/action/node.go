// Package action provides the node handler for configured external side
// effects (field updates, task creation, webhooks).
package action

import (
	"context"
	"fmt"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/protocol"
)

type Handler struct {
	performer protocol.ActionPerformer
}

func NewHandler(performer protocol.ActionPerformer) *Handler {
	return &Handler{performer: performer}
}

func (h *Handler) Type() models.NodeType {
	return models.NodeTypeAction
}

// Execute hands the configured action to the external performer. Performer
// errors are wrapped as an ActionError and fail the execution at this node;
// they never propagate raw and never roll back prior nodes.
func (h *Handler) Execute(ctx context.Context, node *models.WorkflowNode, _ *models.WorkflowExecution, booking *models.Booking) (protocol.NodeOutcome, error) {
	actionType, err := node.ActionType()
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	if err := h.performer.Perform(ctx, actionType, node.ActionConfig(), booking); err != nil {
		return protocol.NodeOutcome{}, &protocol.ActionError{ActionType: actionType, Err: err}
	}

	return protocol.NodeOutcome{
		Action:  "Action Performed",
		Details: fmt.Sprintf("Performed %s", actionType),
	}, nil
}
