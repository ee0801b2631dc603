// Package approval provides the human-gated node handler. Reaching the
// node with no outstanding request opens one and pauses the execution;
// subsequent advances route by the recorded decision outcome.
package approval

import (
	"context"
	"errors"
	"time"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
	"github.com/strataflow/strataflow/pkg/protocol"
)

// Branch outcomes matched against connection labels.
const (
	BranchApproved = "Approved"
	BranchRejected = "Rejected"
)

type Handler struct {
	tracker protocol.ApprovalTracker
}

func NewHandler(tracker protocol.ApprovalTracker) *Handler {
	return &Handler{tracker: tracker}
}

func (h *Handler) Type() models.NodeType {
	return models.NodeTypeApproval
}

func (h *Handler) Execute(ctx context.Context, node *models.WorkflowNode, execution *models.WorkflowExecution, _ *models.Booking) (protocol.NodeOutcome, error) {
	level, err := node.ApprovalLevel()
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	request, err := h.tracker.Latest(ctx, execution.ID, node.ID)
	if err != nil {
		if !errors.Is(err, persistence.ErrApprovalNotFound) {
			return protocol.NodeOutcome{}, err
		}

		// First arrival at the gate: open a request and block.
		if _, err := h.tracker.Create(ctx, execution.ID, node.ID, level, node.RequiredApprovers()); err != nil {
			return protocol.NodeOutcome{}, err
		}

		return protocol.NodeOutcome{
			Action:  "Approval Requested",
			Details: "Awaiting " + level + " approval",
			Pause:   true,
		}, nil
	}

	if request.Status == models.ApprovalStatusPending && request.IsExpired(time.Now()) {
		now := time.Now()
		request.Status = models.ApprovalStatusExpired
		request.ResolvedAt = &now

		if err := h.tracker.Save(ctx, request); err != nil {
			return protocol.NodeOutcome{}, err
		}
	}

	switch request.Status {
	case models.ApprovalStatusApproved:
		return protocol.NodeOutcome{
			Action:  "Approval Granted",
			Details: level + " approval granted",
			Branch:  BranchApproved,
		}, nil
	case models.ApprovalStatusRejected:
		return protocol.NodeOutcome{
			Action:  "Approval Rejected",
			Details: level + " approval rejected",
			Branch:  BranchRejected,
		}, nil
	case models.ApprovalStatusExpired:
		// An expired gate behaves exactly like an unresolved rejection.
		return protocol.NodeOutcome{
			Action:  "Approval Expired",
			Details: level + " approval expired without a decision",
			Branch:  BranchRejected,
		}, nil
	default:
		// Still unresolved: stay paused without duplicating the log entry.
		return protocol.NodeOutcome{Pause: true}, nil
	}
}
