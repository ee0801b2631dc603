package models

// Role identifies the permission tier of an actor mutating bookings.
type Role string

const (
	RoleStandard    Role = "standard"
	RoleManagerTier Role = "manager-tier"
	RoleSuperAdmin  Role = "super-admin"
)

// statusPolicy is a coarse two-set policy: a transition is allowed iff
// the current status is in sources and the target status is in targets.
// Any pair satisfying both memberships is allowed; this is not a
// transition table.
type statusPolicy struct {
	sources []BookingStatus
	targets []BookingStatus
}

var rolePolicies = map[Role]statusPolicy{
	RoleStandard: {
		sources: []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress},
		targets: []BookingStatus{BookingStatusCancelled},
	},
	RoleManagerTier: {
		sources: []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress},
		targets: []BookingStatus{
			BookingStatusConfirmed,
			BookingStatusRejected,
			BookingStatusInProgress,
			BookingStatusCompleted,
			BookingStatusCancelled,
		},
	},
	RoleSuperAdmin: {
		sources: AllBookingStatuses,
		targets: AllBookingStatuses,
	},
}

// CanChangeStatus reports whether role may move a booking from current
// to target.
func CanChangeStatus(role Role, current, target BookingStatus) bool {
	policy, ok := rolePolicies[role]
	if !ok {
		return false
	}

	return containsStatus(policy.sources, current) && containsStatus(policy.targets, target)
}

func containsStatus(statuses []BookingStatus, status BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}

	return false
}

// Actor is the identity a status mutation is attributed to.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// ServiceActor is the fixed identity used for workflow-initiated status
// changes. It carries elevated rights so engine transitions are never
// blocked by an end-user role policy.
var ServiceActor = Actor{ID: "workflow-engine", Role: RoleSuperAdmin}
