package models

import "time"

// ApprovalStatus represents the resolution state of an approval request.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
	ApprovalStatusExpired  ApprovalStatus = "expired"
)

// ApprovalDecision is the verdict recorded by a single approver.
type ApprovalDecision string

const (
	DecisionApproved ApprovalDecision = "approved"
	DecisionRejected ApprovalDecision = "rejected"
)

// ApprovalAction is one approver's recorded decision on a request.
type ApprovalAction struct {
	ApproverID string           `json:"approver_id"`
	Action     ApprovalDecision `json:"action"`
	Comment    string           `json:"comment,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// ApprovalRequest represents an outstanding approval gate: an execution
// paused at an approval node, waiting for quorum. Created when the engine
// reaches the node; resolved through the engine's ResolveApproval; expired
// by the sweeper (or lazily on the next advance) once past ExpiresAt.
type ApprovalRequest struct {
	ID                string           `json:"id"`
	ExecutionID       string           `json:"execution_id"`
	NodeID            string           `json:"node_id"`
	RequiredLevel     string           `json:"required_level"`
	RequiredApprovers int              `json:"required_approvers"`
	Status            ApprovalStatus   `json:"status"`
	Actions           []ApprovalAction `json:"actions"`
	CreatedAt         time.Time        `json:"created_at"`
	ExpiresAt         *time.Time       `json:"expires_at,omitempty"`
	ResolvedAt        *time.Time       `json:"resolved_at,omitempty"`
}

// ApprovalCount returns how many recorded actions are approvals.
func (r *ApprovalRequest) ApprovalCount() int {
	count := 0

	for _, action := range r.Actions {
		if action.Action == DecisionApproved {
			count++
		}
	}

	return count
}

// HasRejection reports whether any approver rejected the request.
func (r *ApprovalRequest) HasRejection() bool {
	for _, action := range r.Actions {
		if action.Action == DecisionRejected {
			return true
		}
	}

	return false
}

// QuorumMet reports whether enough approvals have been recorded.
func (r *ApprovalRequest) QuorumMet() bool {
	required := r.RequiredApprovers
	if required <= 0 {
		required = 1
	}

	return r.ApprovalCount() >= required
}

// IsExpired reports whether the request is unresolved and past its expiry.
func (r *ApprovalRequest) IsExpired(now time.Time) bool {
	return r.Status == ApprovalStatusPending && r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
