package protocol

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
)

// RecipientResolver maps a notification recipient token ("user", "admin",
// "custom", or a literal address) to concrete addresses for a booking.
// The mapping is injected; the engine never guesses a fixed scheme.
type RecipientResolver interface {
	Resolve(token string, booking *models.Booking) ([]string, error)
}

// Notifier delivers a rendered notification. Actual transport is external
// to the engine; the core only resolves recipients and logs intent.
type Notifier interface {
	Send(ctx context.Context, recipients []string, template string, booking *models.Booking) error
}
