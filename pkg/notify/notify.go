// Package notify provides the default recipient resolution and delivery
// implementations behind the notification node. Delivery here is a
// structured-log sink; real transports plug in behind the same
// interfaces.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/strataflow/strataflow/pkg/models"
)

// Recipient tokens understood by the resolver.
const (
	TokenUser  = "user"
	TokenAdmin = "admin"
)

// Resolver maps recipient tokens to concrete email addresses. Admin
// addresses are injected from configuration.
type Resolver struct {
	adminEmails []string
}

func NewResolver(adminEmails []string) *Resolver {
	return &Resolver{adminEmails: adminEmails}
}

// Resolve expands token for the given booking. Literal addresses pass
// through unchanged.
func (r *Resolver) Resolve(token string, booking *models.Booking) ([]string, error) {
	switch token {
	case TokenUser:
		if booking.UserEmail == "" {
			return nil, fmt.Errorf("booking %s has no user email", booking.ID)
		}

		return []string{booking.UserEmail}, nil
	case TokenAdmin:
		if len(r.adminEmails) == 0 {
			return nil, fmt.Errorf("no admin recipients configured")
		}

		return append([]string(nil), r.adminEmails...), nil
	default:
		if strings.Contains(token, "@") {
			return []string{token}, nil
		}

		return nil, fmt.Errorf("unknown recipient token %q", token)
	}
}

// LogNotifier records each delivery through the structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, recipients []string, template string, booking *models.Booking) error {
	n.logger.Info("Notification sent",
		"template", template,
		"recipients", strings.Join(recipients, ", "),
		"booking_id", booking.ID,
		"booking_status", booking.Status)

	return nil
}
