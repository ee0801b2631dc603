package protocol

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
)

// ApprovalTracker manages outstanding approval gates. The approval node
// handler creates requests when an execution first reaches the gate and
// reads back the recorded decisions on every subsequent advance.
type ApprovalTracker interface {
	// Create opens a pending request for an execution paused at a node.
	Create(ctx context.Context, executionID, nodeID, requiredLevel string, requiredApprovers int) (*models.ApprovalRequest, error)
	// FindPending returns the unresolved request for an execution's node,
	// or persistence.ErrApprovalNotFound.
	FindPending(ctx context.Context, executionID, nodeID string) (*models.ApprovalRequest, error)
	// Latest returns the most recent request for an execution's node
	// regardless of resolution state, or persistence.ErrApprovalNotFound.
	Latest(ctx context.Context, executionID, nodeID string) (*models.ApprovalRequest, error)
	// Save persists decision or expiry updates on a request.
	Save(ctx context.Context, request *models.ApprovalRequest) error
}
