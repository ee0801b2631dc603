// Package persistence provides the data storage abstraction for bookings,
// workflow definitions, executions and approval requests.
package persistence

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
)

// Persistence groups the repositories a storage backend must provide.
type Persistence interface {
	Definitions() DefinitionRepository
	Executions() ExecutionRepository
	Approvals() ApprovalRepository
	Bookings() BookingRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// DefinitionRepository stores workflow definitions.
type DefinitionRepository interface {
	GetByID(ctx context.Context, id string) (*models.WorkflowDefinition, error)
	GetAll(ctx context.Context) ([]*models.WorkflowDefinition, error)
	Save(ctx context.Context, definition *models.WorkflowDefinition) error
	Delete(ctx context.Context, id string) error
}

// ExecutionRepository stores workflow executions.
type ExecutionRepository interface {
	GetByID(ctx context.Context, id string) (*models.WorkflowExecution, error)
	GetAll(ctx context.Context) ([]*models.WorkflowExecution, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*models.WorkflowExecution, error)
	Save(ctx context.Context, execution *models.WorkflowExecution) error
}

// ApprovalRepository stores approval requests.
type ApprovalRepository interface {
	GetByID(ctx context.Context, id string) (*models.ApprovalRequest, error)
	// FindPending returns the unresolved request for an execution's node,
	// or ErrApprovalNotFound.
	FindPending(ctx context.Context, executionID, nodeID string) (*models.ApprovalRequest, error)
	ListPending(ctx context.Context) ([]*models.ApprovalRequest, error)
	ListByExecution(ctx context.Context, executionID string) ([]*models.ApprovalRequest, error)
	Save(ctx context.Context, request *models.ApprovalRequest) error
}

// BookingRepository stores bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetAll(ctx context.Context) ([]*models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id string) error
}
