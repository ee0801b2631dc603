// Default node handler registration.
package registry

import (
	"github.com/strataflow/strataflow/pkg/nodes/action"
	"github.com/strataflow/strataflow/pkg/nodes/approval"
	"github.com/strataflow/strataflow/pkg/nodes/condition"
	"github.com/strataflow/strataflow/pkg/nodes/end"
	"github.com/strataflow/strataflow/pkg/nodes/notification"
	"github.com/strataflow/strataflow/pkg/nodes/start"
	"github.com/strataflow/strataflow/pkg/nodes/statuschange"
	"github.com/strataflow/strataflow/pkg/protocol"
)

// Dependencies carries the external collaborators the built-in handlers
// need.
type Dependencies struct {
	Bookings  protocol.BookingGateway
	Approvals protocol.ApprovalTracker
	Resolver  protocol.RecipientResolver
	Notifier  protocol.Notifier
	Performer protocol.ActionPerformer
}

// RegisterDefaultHandlers installs one handler per node type.
func (r *Registry) RegisterDefaultHandlers(deps Dependencies) {
	r.RegisterHandler(start.NewHandler())
	r.RegisterHandler(statuschange.NewHandler(deps.Bookings))
	r.RegisterHandler(approval.NewHandler(deps.Approvals))
	r.RegisterHandler(notification.NewHandler(deps.Resolver, deps.Notifier))
	r.RegisterHandler(condition.NewHandler())
	r.RegisterHandler(action.NewHandler(deps.Performer))
	r.RegisterHandler(end.NewHandler())
}
