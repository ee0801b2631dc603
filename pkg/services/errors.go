// Package services provides the application services over persistence: the
// permission-checked booking gateway and the workflow definition store.
package services

import (
	"errors"
	"fmt"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

var (
	// ErrBookingNotFound is returned when a booking is not found.
	ErrBookingNotFound = persistence.ErrBookingNotFound

	// ErrDefinitionNotFound is returned when a definition is not found.
	ErrDefinitionNotFound = persistence.ErrDefinitionNotFound

	// ErrTemplateNotFound is returned when no catalog template carries the
	// requested name.
	ErrTemplateNotFound = errors.New("workflow template not found")

	// ErrInvalidStatus is returned for statuses outside the known six.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// PermissionDeniedError reports a status transition rejected by the role
// policy.
type PermissionDeniedError struct {
	Role    models.Role
	Current models.BookingStatus
	Target  models.BookingStatus
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: role %q may not change status from %q to %q", e.Role, e.Current, e.Target)
}

// IsPermissionDenied reports whether err is a policy rejection.
func IsPermissionDenied(err error) bool {
	var denied *PermissionDeniedError

	return errors.As(err, &denied)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, persistence.ErrBookingNotFound) ||
		errors.Is(err, persistence.ErrDefinitionNotFound) ||
		errors.Is(err, persistence.ErrExecutionNotFound) ||
		errors.Is(err, persistence.ErrApprovalNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}
