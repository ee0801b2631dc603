// Package projection derives the presentation records behind UI toasts
// and the notification feed from execution log entries. It is a read-side
// view only and never feeds back into control flow.
package projection

import (
	"strings"

	"github.com/strataflow/strataflow/pkg/models"
)

// Categories group records for icon selection in the UI.
const (
	CategoryWorkflow     = "workflow"
	CategoryStatus       = "status"
	CategoryApproval     = "approval"
	CategoryNotification = "notification"
	CategoryCondition    = "condition"
	CategoryAction       = "action"
	CategoryInfo         = "info"
)

// Record is the rendered form of one execution log entry.
type Record struct {
	Category string `json:"category"`
	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}

// Render converts a log entry to its presentation record. Entries whose
// details do not match the expected textual patterns fall back to a
// generic rendering; the projection must never reject an entry.
func Render(entry models.ExecutionLogEntry) Record {
	switch entry.NodeType {
	case models.NodeTypeStart:
		return Record{Category: CategoryWorkflow, Headline: "Workflow started", Detail: entry.Details}
	case models.NodeTypeEnd:
		return Record{Category: CategoryWorkflow, Headline: "Workflow completed", Detail: entry.Details}
	case models.NodeTypeStatusChange:
		return renderStatusChange(entry)
	case models.NodeTypeNotification:
		return renderNotification(entry)
	case models.NodeTypeApproval:
		return Record{Category: CategoryApproval, Headline: entry.Action, Detail: entry.Details}
	case models.NodeTypeCondition:
		return Record{Category: CategoryCondition, Headline: "Condition evaluated", Detail: entry.Details}
	case models.NodeTypeAction:
		return Record{Category: CategoryAction, Headline: entry.Action, Detail: entry.Details}
	default:
		return fallback(entry)
	}
}

func renderStatusChange(entry models.ExecutionLogEntry) Record {
	const marker = "Changed status to "

	if status, ok := strings.CutPrefix(entry.Details, marker); ok {
		return Record{
			Category: CategoryStatus,
			Headline: "Booking status updated",
			Detail:   "Status is now " + strings.TrimSpace(status),
		}
	}

	return fallback(entry)
}

func renderNotification(entry models.ExecutionLogEntry) Record {
	const marker = "sent to "

	if idx := strings.Index(entry.Details, marker); idx >= 0 {
		recipients := strings.TrimSpace(entry.Details[idx+len(marker):])

		return Record{
			Category: CategoryNotification,
			Headline: "Notification sent",
			Detail:   "Delivered to " + recipients,
		}
	}

	return fallback(entry)
}

func fallback(entry models.ExecutionLogEntry) Record {
	headline := entry.Action
	if headline == "" {
		headline = "Workflow update"
	}

	return Record{Category: CategoryInfo, Headline: headline, Detail: entry.Details}
}
