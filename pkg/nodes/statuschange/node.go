// Package statuschange provides the node handler that moves a booking to
// its configured target status through the permission-checked gateway.
package statuschange

import (
	"context"
	"fmt"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/protocol"
)

type Handler struct {
	bookings protocol.BookingGateway
}

func NewHandler(bookings protocol.BookingGateway) *Handler {
	return &Handler{bookings: bookings}
}

func (h *Handler) Type() models.NodeType {
	return models.NodeTypeStatusChange
}

// Execute applies the target status to the execution's booking. The
// transition is system-initiated, so the fixed service actor is used
// rather than an end-user role. A policy denial from the gateway fails
// the execution.
func (h *Handler) Execute(ctx context.Context, node *models.WorkflowNode, execution *models.WorkflowExecution, booking *models.Booking) (protocol.NodeOutcome, error) {
	target, err := node.TargetStatus()
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	reason := "workflow " + execution.WorkflowID
	if node.Label != "" {
		reason = node.Label
	}

	err = h.bookings.SetStatus(ctx, booking.ID, target, models.ServiceActor, reason)
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	booking.Status = target

	return protocol.NodeOutcome{
		Action:  "Status Changed",
		Details: fmt.Sprintf("Changed status to %s", target),
	}, nil
}
