package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

const bookingsFile = "bookings.json"

// BookingRepository stores every booking in a single flat JSON file that is
// read and rewritten wholesale on each operation. The file is the system of
// record the original web app keeps; workflow executions only touch it
// through the booking gateway in pkg/services.
type BookingRepository struct {
	root string
	mu   sync.RWMutex
}

// NewBookingRepository creates a booking repository.
func NewBookingRepository(root string) *BookingRepository {
	return &BookingRepository{root: root}
}

// GetByID retrieves a booking, or persistence.ErrBookingNotFound.
func (r *BookingRepository) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings, err := r.load()
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", id, err)
	}

	for _, booking := range bookings {
		if booking.ID == id {
			return booking, nil
		}
	}

	return nil, persistence.NewStoreError("GetByID", id, persistence.ErrBookingNotFound)
}

// GetAll returns every booking, ordered by creation time.
func (r *BookingRepository) GetAll(_ context.Context) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings, err := r.load()
	if err != nil {
		return nil, persistence.NewStoreError("GetAll", "", err)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})

	return bookings, nil
}

// Save inserts or replaces a booking and rewrites the whole file.
func (r *BookingRepository) Save(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()
	if err != nil {
		return persistence.NewStoreError("Save", booking.ID, err)
	}

	replaced := false

	for i, existing := range bookings {
		if existing.ID == booking.ID {
			bookings[i] = booking
			replaced = true

			break
		}
	}

	if !replaced {
		bookings = append(bookings, booking)
	}

	if err := r.store(bookings); err != nil {
		return persistence.NewStoreError("Save", booking.ID, err)
	}

	return nil
}

// Delete removes a booking. Deleting a missing booking is a no-op.
func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()
	if err != nil {
		return persistence.NewStoreError("Delete", id, err)
	}

	for i, booking := range bookings {
		if booking.ID == id {
			bookings = append(bookings[:i], bookings[i+1:]...)

			if err := r.store(bookings); err != nil {
				return persistence.NewStoreError("Delete", id, err)
			}

			return nil
		}
	}

	return nil
}

func (r *BookingRepository) load() ([]*models.Booking, error) {
	filePath := filepath.Clean(path.Join(r.root, bookingsFile))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read bookings file: %w", err)
	}

	var bookings []*models.Booking

	if err := json.Unmarshal(body, &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookings file: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepository) store(bookings []*models.Booking) error {
	if err := os.MkdirAll(r.root, 0750); err != nil {
		return fmt.Errorf("failed to create storage root: %w", err)
	}

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookings: %w", err)
	}

	return os.WriteFile(path.Join(r.root, bookingsFile), data, 0600)
}
