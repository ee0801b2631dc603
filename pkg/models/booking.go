package models

import "time"

// BookingStatus is the lifecycle state of a facility booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// AllBookingStatuses lists every valid booking status.
var AllBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusRejected,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// IsValidBookingStatus reports whether status is one of the known
// booking statuses.
func IsValidBookingStatus(status BookingStatus) bool {
	for _, s := range AllBookingStatuses {
		if s == status {
			return true
		}
	}

	return false
}

// StatusHistoryEntry records one status transition on a booking.
type StatusHistoryEntry struct {
	From      BookingStatus `json:"from"`
	To        BookingStatus `json:"to"`
	ActorID   string        `json:"actor_id"`
	Reason    string        `json:"reason,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Booking is a facility reservation. Workflows reference bookings but
// never own them; all status mutations go through the permission-checked
// booking gateway. DepositAmount is deliberately untyped: bookings come
// from external input and condition nodes must be able to flag a
// non-numeric deposit instead of silently coercing it.
type Booking struct {
	ID            string               `json:"id"`
	FacilityID    string               `json:"facility_id"`
	FacilityName  string               `json:"facility_name,omitempty"`
	UserID        string               `json:"user_id"`
	UserName      string               `json:"user_name,omitempty"`
	UserEmail     string               `json:"user_email"`
	Date          string               `json:"date"`
	StartTime     string               `json:"start_time,omitempty"`
	EndTime       string               `json:"end_time,omitempty"`
	DepositAmount any                  `json:"deposit_amount,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Status        BookingStatus        `json:"status"`
	StatusHistory []StatusHistoryEntry `json:"status_history,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// Field looks up a booking attribute by the camelCase name condition
// predicates use. The second return is false for unknown names.
func (b *Booking) Field(name string) (any, bool) {
	switch name {
	case "status":
		return string(b.Status), true
	case "facilityId":
		return b.FacilityID, true
	case "facilityName":
		return b.FacilityName, true
	case "userId":
		return b.UserID, true
	case "userName":
		return b.UserName, true
	case "userEmail":
		return b.UserEmail, true
	case "date":
		return b.Date, true
	case "startTime":
		return b.StartTime, true
	case "endTime":
		return b.EndTime, true
	case "depositAmount":
		return b.DepositAmount, true
	case "notes":
		return b.Notes, true
	default:
		return nil, false
	}
}
