package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The policy is two sets intersected, not a transition table: any
// (source, target) pair satisfying both memberships must be allowed, even
// pairs nobody would enumerate by hand. These tables restate the policy
// independently and the test sweeps the full 6x6 grid per role.
var expectedSources = map[Role][]BookingStatus{
	RoleStandard:    {BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress},
	RoleManagerTier: {BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress},
	RoleSuperAdmin:  AllBookingStatuses,
}

var expectedTargets = map[Role][]BookingStatus{
	RoleStandard: {BookingStatusCancelled},
	RoleManagerTier: {
		BookingStatusConfirmed,
		BookingStatusRejected,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
	},
	RoleSuperAdmin: AllBookingStatuses,
}

func inSet(set []BookingStatus, status BookingStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}

	return false
}

func TestCanChangeStatusFullGrid(t *testing.T) {
	for role, sources := range expectedSources {
		targets := expectedTargets[role]

		for _, from := range AllBookingStatuses {
			for _, to := range AllBookingStatuses {
				expected := inSet(sources, from) && inSet(targets, to)

				assert.Equal(t, expected, CanChangeStatus(role, from, to),
					"role=%s from=%s to=%s", role, from, to)
			}
		}
	}
}

func TestCanChangeStatusSetSemantics(t *testing.T) {
	// manager-tier never enumerated confirmed->confirmed anywhere, but
	// both memberships hold, so it is allowed.
	assert.True(t, CanChangeStatus(RoleManagerTier, BookingStatusConfirmed, BookingStatusConfirmed))

	// standard users can cancel their own in-progress booking but can
	// never confirm anything.
	assert.True(t, CanChangeStatus(RoleStandard, BookingStatusInProgress, BookingStatusCancelled))
	assert.False(t, CanChangeStatus(RoleStandard, BookingStatusPending, BookingStatusConfirmed))

	// completed is outside manager-tier's source set.
	assert.False(t, CanChangeStatus(RoleManagerTier, BookingStatusCompleted, BookingStatusCancelled))
}

func TestCanChangeStatusUnknownRole(t *testing.T) {
	assert.False(t, CanChangeStatus(Role("visitor"), BookingStatusPending, BookingStatusCancelled))
}

func TestServiceActorHasFullMatrix(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, ServiceActor.Role)

	for _, from := range AllBookingStatuses {
		for _, to := range AllBookingStatuses {
			assert.True(t, CanChangeStatus(ServiceActor.Role, from, to))
		}
	}
}

func TestIsValidBookingStatus(t *testing.T) {
	for _, status := range AllBookingStatuses {
		assert.True(t, IsValidBookingStatus(status))
	}

	assert.False(t, IsValidBookingStatus(BookingStatus("archived")))
	assert.False(t, IsValidBookingStatus(BookingStatus("")))
}
