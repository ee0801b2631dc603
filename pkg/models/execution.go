package models

import "time"

// ExecutionStatus represents the lifecycle state of a workflow execution.
// Completed and Failed are terminal; Paused executions resume when the
// blocking approval is resolved.
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusPaused    ExecutionStatus = "paused"
)

// ExecutionLogEntry records one node-level step of an execution. Entries
// are append-only and their insertion order is the causal order.
type ExecutionLogEntry struct {
	NodeID    string    `json:"node_id"`
	NodeType  NodeType  `json:"node_type"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkflowExecution is one run of a definition against a specific booking.
// The booking reference is weak: executions never own the booking, they
// only read and write its status through the booking gateway. An execution
// is mutated only by the engine and becomes immutable once its status
// leaves running/paused.
type WorkflowExecution struct {
	ID            string              `json:"id"`
	WorkflowID    string              `json:"workflow_id"`
	BookingID     string              `json:"booking_id"`
	Status        ExecutionStatus     `json:"status"`
	CurrentNodeID string              `json:"current_node_id"`
	Log           []ExecutionLogEntry `json:"log"`
	StartedAt     time.Time           `json:"started_at"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
}

// IsTerminal reports whether the execution can no longer advance.
func (e *WorkflowExecution) IsTerminal() bool {
	return e.Status == ExecutionStatusCompleted || e.Status == ExecutionStatusFailed
}

// AppendLog appends an entry stamped with the current time.
func (e *WorkflowExecution) AppendLog(nodeID string, nodeType NodeType, action, details string) {
	e.Log = append(e.Log, ExecutionLogEntry{
		NodeID:    nodeID,
		NodeType:  nodeType,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
