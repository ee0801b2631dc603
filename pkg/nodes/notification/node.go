// Package notification provides the node handler that resolves recipient
// tokens and hands the notification to the external delivery interface.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/protocol"
)

type Handler struct {
	resolver protocol.RecipientResolver
	notifier protocol.Notifier
}

func NewHandler(resolver protocol.RecipientResolver, notifier protocol.Notifier) *Handler {
	return &Handler{resolver: resolver, notifier: notifier}
}

func (h *Handler) Type() models.NodeType {
	return models.NodeTypeNotification
}

// Execute resolves the node's recipient tokens against the booking and
// invokes the delivery interface. Delivery failures are surfaced as a
// DeliveryError, which fails the execution without rolling back anything
// already applied.
func (h *Handler) Execute(ctx context.Context, node *models.WorkflowNode, _ *models.WorkflowExecution, booking *models.Booking) (protocol.NodeOutcome, error) {
	tokens, err := node.Recipients()
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	template, err := node.Template()
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	var recipients []string

	for _, token := range tokens {
		resolved, err := h.resolver.Resolve(token, booking)
		if err != nil {
			return protocol.NodeOutcome{}, &protocol.DeliveryError{Recipients: []string{token}, Err: err}
		}

		recipients = append(recipients, resolved...)
	}

	if err := h.notifier.Send(ctx, recipients, template, booking); err != nil {
		return protocol.NodeOutcome{}, &protocol.DeliveryError{Recipients: recipients, Err: err}
	}

	return protocol.NodeOutcome{
		Action:  "Notification Sent",
		Details: fmt.Sprintf("Notification sent to %s", strings.Join(recipients, ", ")),
	}, nil
}
