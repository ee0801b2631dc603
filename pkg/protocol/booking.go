package protocol

import (
	"context"

	"github.com/strataflow/strataflow/pkg/models"
)

// BookingGateway is the only surface through which workflow executions read
// or mutate a booking. The engine never owns booking lifetime; everything is
// an ID-based lookup. SetStatus is permission-checked against the actor's
// role and serialized per booking, so at most one status mutation is in
// flight for a given booking at any time.
type BookingGateway interface {
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	GetStatus(ctx context.Context, bookingID string) (models.BookingStatus, error)
	SetStatus(ctx context.Context, bookingID string, target models.BookingStatus, actor models.Actor, reason string) error
	AppendHistory(ctx context.Context, bookingID string, entry models.StatusHistoryEntry) error
}
