package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strataflow/strataflow/pkg/eventbus"
	"github.com/strataflow/strataflow/pkg/events"
	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

// Booking is the gateway every status mutation goes through, whether it
// originates from an end user or from a workflow execution. Transitions
// are checked against the role policy, appended to the booking's status
// history, and serialized per booking: a mutex scoped to the booking ID
// guarantees at most one in-flight status mutation per booking, so
// concurrent executions targeting the same booking cannot interleave
// lost updates.
type Booking struct {
	repo   persistence.BookingRepository
	bus    eventbus.EventPublisher
	logger *slog.Logger
	locks  sync.Map // booking ID -> *sync.Mutex
}

// NewBooking creates the booking service. The bus may be nil in tests.
func NewBooking(repo persistence.BookingRepository, bus eventbus.EventPublisher, logger *slog.Logger) *Booking {
	return &Booking{repo: repo, bus: bus, logger: logger}
}

func (s *Booking) lock(bookingID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(bookingID, &sync.Mutex{})

	return mu.(*sync.Mutex)
}

// Create stores a new booking in pending state.
func (s *Booking) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	now := time.Now()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// Get returns a booking by ID.
func (s *Booking) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

// List returns all bookings.
func (s *Booking) List(ctx context.Context) ([]*models.Booking, error) {
	return s.repo.GetAll(ctx)
}

// GetStatus returns a booking's current status.
func (s *Booking) GetStatus(ctx context.Context, bookingID string) (models.BookingStatus, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}

	return booking.Status, nil
}

// SetStatus moves a booking to target on behalf of actor. The transition
// is rejected with a PermissionDeniedError when the actor's role policy
// does not allow it; on success the transition is appended to the status
// history and announced on the bus.
func (s *Booking) SetStatus(ctx context.Context, bookingID string, target models.BookingStatus, actor models.Actor, reason string) error {
	if !models.IsValidBookingStatus(target) {
		return ErrInvalidStatus
	}

	mu := s.lock(bookingID)
	mu.Lock()
	defer mu.Unlock()

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	current := booking.Status

	if !models.CanChangeStatus(actor.Role, current, target) {
		return &PermissionDeniedError{Role: actor.Role, Current: current, Target: target}
	}

	now := time.Now()
	booking.Status = target
	booking.UpdatedAt = now
	booking.StatusHistory = append(booking.StatusHistory, models.StatusHistoryEntry{
		From:      current,
		To:        target,
		ActorID:   actor.ID,
		Reason:    reason,
		Timestamp: now,
	})

	if err := s.repo.Save(ctx, booking); err != nil {
		return err
	}

	s.logger.Info("Booking status changed",
		"booking_id", bookingID, "from", current, "to", target, "actor", actor.ID)

	s.publish(ctx, bookingID, events.BookingStatusChanged{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.BookingStatusChangedEvent,
			Timestamp: now,
			BookingID: bookingID,
		},
		From:    current,
		To:      target,
		ActorID: actor.ID,
	})

	return nil
}

// AppendHistory appends an externally produced history entry without a
// status mutation.
func (s *Booking) AppendHistory(ctx context.Context, bookingID string, entry models.StatusHistoryEntry) error {
	mu := s.lock(bookingID)
	mu.Lock()
	defer mu.Unlock()

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	booking.StatusHistory = append(booking.StatusHistory, entry)
	booking.UpdatedAt = time.Now()

	return s.repo.Save(ctx, booking)
}

func (s *Booking) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.bus == nil {
		return
	}

	if err := s.bus.Publish(ctx, key, event); err != nil {
		s.logger.Error("Failed to publish booking event", "event_type", event.GetType(), "error", err)
	}
}
