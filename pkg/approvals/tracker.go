// Package approvals tracks outstanding approval gates: pending requests
// awaiting a decision quorum, with expiry handled both lazily by the
// engine and eagerly by the background sweeper.
package approvals

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/strataflow/strataflow/pkg/eventbus"
	"github.com/strataflow/strataflow/pkg/events"
	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

// Tracker implements protocol.ApprovalTracker over the approval repository.
type Tracker struct {
	repo   persistence.ApprovalRepository
	ttl    time.Duration
	bus    eventbus.EventPublisher
	logger *slog.Logger
}

// NewTracker creates a tracker. Requests created with ttl > 0 carry an
// expiry deadline; ttl == 0 means requests never expire.
func NewTracker(repo persistence.ApprovalRepository, ttl time.Duration, bus eventbus.EventPublisher, logger *slog.Logger) *Tracker {
	return &Tracker{repo: repo, ttl: ttl, bus: bus, logger: logger}
}

// Create opens a pending request for an execution blocked at a node.
func (t *Tracker) Create(ctx context.Context, executionID, nodeID, requiredLevel string, requiredApprovers int) (*models.ApprovalRequest, error) {
	now := time.Now()

	request := &models.ApprovalRequest{
		ID:                uuid.New().String(),
		ExecutionID:       executionID,
		NodeID:            nodeID,
		RequiredLevel:     requiredLevel,
		RequiredApprovers: requiredApprovers,
		Status:            models.ApprovalStatusPending,
		CreatedAt:         now,
	}

	if t.ttl > 0 {
		expiresAt := now.Add(t.ttl)
		request.ExpiresAt = &expiresAt
	}

	if err := t.repo.Save(ctx, request); err != nil {
		return nil, err
	}

	t.logger.Info("Approval request created",
		"request_id", request.ID, "execution_id", executionID, "node_id", nodeID, "level", requiredLevel)

	t.publish(ctx, executionID, events.ApprovalRequested{
		BaseEvent: events.BaseEvent{
			ID:          uuid.New().String(),
			Type:        events.ApprovalRequestedEvent,
			Timestamp:   now,
			ExecutionID: executionID,
		},
		ApprovalRequestID: request.ID,
		NodeID:            nodeID,
		RequiredLevel:     requiredLevel,
		ExpiresAt:         request.ExpiresAt,
	})

	return request, nil
}

// FindPending returns the unresolved request for an execution's node.
func (t *Tracker) FindPending(ctx context.Context, executionID, nodeID string) (*models.ApprovalRequest, error) {
	return t.repo.FindPending(ctx, executionID, nodeID)
}

// ListByExecution returns every request raised for an execution, resolved
// or not.
func (t *Tracker) ListByExecution(ctx context.Context, executionID string) ([]*models.ApprovalRequest, error) {
	return t.repo.ListByExecution(ctx, executionID)
}

// Latest returns the most recently created request for an execution's
// node, regardless of resolution state.
func (t *Tracker) Latest(ctx context.Context, executionID, nodeID string) (*models.ApprovalRequest, error) {
	requests, err := t.repo.ListByExecution(ctx, executionID)
	if err != nil {
		return nil, err
	}

	var latest *models.ApprovalRequest

	for _, request := range requests {
		if request.NodeID != nodeID {
			continue
		}

		if latest == nil || request.CreatedAt.After(latest.CreatedAt) {
			latest = request
		}
	}

	if latest == nil {
		return nil, persistence.NewStoreError("Latest", executionID, persistence.ErrApprovalNotFound)
	}

	return latest, nil
}

// Save persists decision or expiry updates on a request.
func (t *Tracker) Save(ctx context.Context, request *models.ApprovalRequest) error {
	return t.repo.Save(ctx, request)
}

func (t *Tracker) publish(ctx context.Context, key string, event eventbus.Event) {
	if t.bus == nil {
		return
	}

	if err := t.bus.Publish(ctx, key, event); err != nil {
		t.logger.Error("Failed to publish approval event", "event_type", event.GetType(), "error", err)
	}
}
