package protocol

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
)

// ActionPerformer runs the configured side effect of an action node (field
// update, task creation, webhook). Errors are caught at the node boundary
// and surfaced as the node's failure, never propagated raw.
type ActionPerformer interface {
	Perform(ctx context.Context, actionType string, config map[string]any, booking *models.Booking) error
}
