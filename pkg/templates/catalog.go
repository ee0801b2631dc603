// Package templates holds the read-only catalog of built-in workflow
// definitions used to seed the definition store.
package templates

import "github.com/strataflow/strataflow/pkg/models"

// Catalog is the set of named workflow templates. Templates are never
// executed directly; the definition service deep-copies them into owned
// definitions.
type Catalog struct {
	templates []*models.WorkflowDefinition
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		templates: []*models.WorkflowDefinition{
			simpleBookingApproval(),
			moveRequestMultiLevel(),
			maintenanceDepositReview(),
		},
	}
}

// Names returns the template names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for _, template := range c.templates {
		names = append(names, template.Name)
	}

	return names
}

// ByName returns the template with the given name.
func (c *Catalog) ByName(name string) (*models.WorkflowDefinition, bool) {
	for _, template := range c.templates {
		if template.Name == name {
			return template, true
		}
	}

	return nil, false
}

// simpleBookingApproval is the default booking flow: one manager approval
// gate, then confirmation and a resident notification. A rejection moves
// the booking to rejected instead.
func simpleBookingApproval() *models.WorkflowDefinition {
	return &models.WorkflowDefinition{
		Name:        "Simple Booking Approval",
		Description: "Manager approval followed by confirmation and resident notification",
		Category:    models.CategoryBooking,
		Nodes: []*models.WorkflowNode{
			{ID: "start", Type: models.NodeTypeStart, Label: "Booking Submitted", PositionX: 60, PositionY: 200},
			{ID: "manager-approval", Type: models.NodeTypeApproval, Label: "Manager Approval", PositionX: 240, PositionY: 200, Config: map[string]any{
				"approvalLevel":     "manager-tier",
				"requiredApprovers": 1,
			}},
			{ID: "confirm", Type: models.NodeTypeStatusChange, Label: "Confirm Booking", PositionX: 420, PositionY: 120, Config: map[string]any{
				"targetStatus": "confirmed",
			}},
			{ID: "notify-confirmed", Type: models.NodeTypeNotification, Label: "Notify Resident", PositionX: 600, PositionY: 120, Config: map[string]any{
				"recipients": []any{"user"},
				"template":   "booking_confirmed",
			}},
			{ID: "reject", Type: models.NodeTypeStatusChange, Label: "Reject Booking", PositionX: 420, PositionY: 280, Config: map[string]any{
				"targetStatus": "rejected",
			}},
			{ID: "notify-rejected", Type: models.NodeTypeNotification, Label: "Notify Rejection", PositionX: 600, PositionY: 280, Config: map[string]any{
				"recipients": []any{"user"},
				"template":   "booking_rejected",
			}},
			{ID: "end", Type: models.NodeTypeEnd, Label: "Done", PositionX: 780, PositionY: 200},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourceID: "start", TargetID: "manager-approval"},
			{ID: "c2", SourceID: "manager-approval", TargetID: "confirm", Label: "Approved"},
			{ID: "c3", SourceID: "manager-approval", TargetID: "reject", Label: "Rejected"},
			{ID: "c4", SourceID: "confirm", TargetID: "notify-confirmed"},
			{ID: "c5", SourceID: "notify-confirmed", TargetID: "end"},
			{ID: "c6", SourceID: "reject", TargetID: "notify-rejected"},
			{ID: "c7", SourceID: "notify-rejected", TargetID: "end"},
		},
	}
}

// moveRequestMultiLevel gates move requests behind two approval tiers
// before the move is scheduled.
func moveRequestMultiLevel() *models.WorkflowDefinition {
	return &models.WorkflowDefinition{
		Name:        "Move Request with Multi-Level Approval",
		Description: "Manager then committee approval before the move is scheduled",
		Category:    models.CategoryMoveRequest,
		Nodes: []*models.WorkflowNode{
			{ID: "start", Type: models.NodeTypeStart, Label: "Move Request Submitted", PositionX: 60, PositionY: 200},
			{ID: "manager-approval", Type: models.NodeTypeApproval, Label: "Manager Approval", PositionX: 240, PositionY: 200, Config: map[string]any{
				"approvalLevel":     "manager-tier",
				"requiredApprovers": 1,
			}},
			{ID: "committee-approval", Type: models.NodeTypeApproval, Label: "Committee Approval", PositionX: 420, PositionY: 140, Config: map[string]any{
				"approvalLevel":     "super-admin",
				"requiredApprovers": 1,
			}},
			{ID: "schedule", Type: models.NodeTypeStatusChange, Label: "Schedule Move", PositionX: 600, PositionY: 100, Config: map[string]any{
				"targetStatus": "in-progress",
			}},
			{ID: "notify-scheduled", Type: models.NodeTypeNotification, Label: "Notify Building Manager", PositionX: 780, PositionY: 100, Config: map[string]any{
				"recipients": []any{"user", "admin"},
				"template":   "move_scheduled",
			}},
			{ID: "reject", Type: models.NodeTypeStatusChange, Label: "Reject Move Request", PositionX: 600, PositionY: 300, Config: map[string]any{
				"targetStatus": "rejected",
			}},
			{ID: "notify-rejected", Type: models.NodeTypeNotification, Label: "Notify Rejection", PositionX: 780, PositionY: 300, Config: map[string]any{
				"recipients": []any{"user"},
				"template":   "move_rejected",
			}},
			{ID: "end", Type: models.NodeTypeEnd, Label: "Done", PositionX: 960, PositionY: 200},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourceID: "start", TargetID: "manager-approval"},
			{ID: "c2", SourceID: "manager-approval", TargetID: "committee-approval", Label: "Approved"},
			{ID: "c3", SourceID: "manager-approval", TargetID: "reject", Label: "Rejected"},
			{ID: "c4", SourceID: "committee-approval", TargetID: "schedule", Label: "Approved"},
			{ID: "c5", SourceID: "committee-approval", TargetID: "reject", Label: "Rejected"},
			{ID: "c6", SourceID: "schedule", TargetID: "notify-scheduled"},
			{ID: "c7", SourceID: "notify-scheduled", TargetID: "end"},
			{ID: "c8", SourceID: "reject", TargetID: "notify-rejected"},
			{ID: "c9", SourceID: "notify-rejected", TargetID: "end"},
		},
	}
}

// maintenanceDepositReview routes high-deposit bookings through a manager
// review and files a follow-up task; low deposits are auto-confirmed.
func maintenanceDepositReview() *models.WorkflowDefinition {
	return &models.WorkflowDefinition{
		Name:        "Maintenance Deposit Review",
		Description: "Deposits over $500 need manager review and a follow-up inspection task",
		Category:    models.CategoryMaintenance,
		Nodes: []*models.WorkflowNode{
			{ID: "start", Type: models.NodeTypeStart, Label: "Maintenance Booking Submitted", PositionX: 60, PositionY: 200},
			{ID: "deposit-check", Type: models.NodeTypeCondition, Label: "Deposit Check", PositionX: 240, PositionY: 200, Config: map[string]any{
				"condition": map[string]any{
					"field":    "depositAmount",
					"operator": "greater_than",
					"value":    500,
				},
			}},
			{ID: "manager-review", Type: models.NodeTypeApproval, Label: "Manager Review", PositionX: 420, PositionY: 120, Config: map[string]any{
				"approvalLevel":     "manager-tier",
				"requiredApprovers": 1,
			}},
			{ID: "file-inspection", Type: models.NodeTypeAction, Label: "File Inspection Task", PositionX: 600, PositionY: 80, Config: map[string]any{
				"actionType": "create_task",
				"actionConfig": map[string]any{
					"task": "post-maintenance inspection",
				},
			}},
			{ID: "confirm-reviewed", Type: models.NodeTypeStatusChange, Label: "Confirm Booking", PositionX: 780, PositionY: 80, Config: map[string]any{
				"targetStatus": "confirmed",
			}},
			{ID: "auto-confirm", Type: models.NodeTypeStatusChange, Label: "Auto-Confirm", PositionX: 420, PositionY: 300, Config: map[string]any{
				"targetStatus": "confirmed",
			}},
			{ID: "notify", Type: models.NodeTypeNotification, Label: "Notify Resident", PositionX: 780, PositionY: 240, Config: map[string]any{
				"recipients": []any{"user"},
				"template":   "maintenance_confirmed",
			}},
			{ID: "reject", Type: models.NodeTypeStatusChange, Label: "Reject Booking", PositionX: 600, PositionY: 380, Config: map[string]any{
				"targetStatus": "rejected",
			}},
			{ID: "end", Type: models.NodeTypeEnd, Label: "Done", PositionX: 960, PositionY: 200},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourceID: "start", TargetID: "deposit-check"},
			{ID: "c2", SourceID: "deposit-check", TargetID: "manager-review", Label: "> $500", Condition: "true"},
			{ID: "c3", SourceID: "deposit-check", TargetID: "auto-confirm", Label: "<= $500", Condition: "false"},
			{ID: "c4", SourceID: "manager-review", TargetID: "file-inspection", Label: "Approved"},
			{ID: "c5", SourceID: "manager-review", TargetID: "reject", Label: "Rejected"},
			{ID: "c6", SourceID: "file-inspection", TargetID: "confirm-reviewed"},
			{ID: "c7", SourceID: "confirm-reviewed", TargetID: "end"},
			{ID: "c8", SourceID: "auto-confirm", TargetID: "notify"},
			{ID: "c9", SourceID: "notify", TargetID: "end"},
			{ID: "c10", SourceID: "reject", TargetID: "end"},
		},
	}
}
