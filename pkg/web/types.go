// Package web provides the HTTP handlers and request/response types for
// the booking workflow API.
package web

import "github.com/strataflow/strataflow/pkg/models"

// CreateBookingRequest is the request body for creating a booking.
type CreateBookingRequest struct {
	FacilityID    string `json:"facility_id"    validate:"required"`
	FacilityName  string `json:"facility_name"`
	UserID        string `json:"user_id"        validate:"required"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"     validate:"required,email"`
	Date          string `json:"date"           validate:"required"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DepositAmount any    `json:"deposit_amount,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateBookingStatusRequest is the request body for a manual status
// change. The acting user comes from the request headers.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// CreateWorkflowRequest is the request body for creating a workflow
// definition.
type CreateWorkflowRequest struct {
	Name        string                `json:"name"        validate:"required,min=3"`
	Description string                `json:"description"`
	Category    string                `json:"category"    validate:"required,oneof=booking move_request maintenance"`
	Nodes       []*models.WorkflowNode `json:"nodes"       validate:"required,min=1"`
	Connections []*models.Connection   `json:"connections"`
	CreatedBy   string                `json:"created_by"  validate:"required"`
}

// UpdateWorkflowRequest is the request body for updating a definition.
// Nodes and connections are replaced wholesale; omitted scalar fields are
// left unchanged.
type UpdateWorkflowRequest struct {
	Name        *string                `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string                `json:"description,omitempty"`
	IsActive    *bool                  `json:"is_active,omitempty"`
	Nodes       []*models.WorkflowNode `json:"nodes,omitempty"`
	Connections []*models.Connection   `json:"connections,omitempty"`
}

// ExecuteWorkflowRequest names the booking a workflow execution runs
// against.
type ExecuteWorkflowRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

// ResolveApprovalRequest is one approver's decision on a paused
// execution.
type ResolveApprovalRequest struct {
	ApproverID string `json:"approver_id" validate:"required"`
	Approve    *bool  `json:"approve"     validate:"required"`
	Comment    string `json:"comment,omitempty"`
}

// InstantiateTemplateRequest names the catalog template to copy into an
// owned definition.
type InstantiateTemplateRequest struct {
	Template  string `json:"template"   validate:"required"`
	CreatedBy string `json:"created_by" validate:"required"`
}
