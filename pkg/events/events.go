// Package events defines the event types published over the execution
// event bus. The notification projection and the UI toast feed are driven
// entirely from these events; they are never a source of control flow.
package events

import (
	"time"

	"github.com/strataflow/strataflow/pkg/models"
)

// EventType identifies the kind of event on the bus.
type EventType string

// Topic carries every execution lifecycle event.
const Topic = "strataflow.executions"

const EventKeyMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ExecutionStartedEvent   EventType = "execution.started"
	NodeExecutedEvent       EventType = "execution.node.executed"
	ExecutionPausedEvent    EventType = "execution.paused"
	ExecutionResumedEvent   EventType = "execution.resumed"
	ExecutionCompletedEvent EventType = "execution.completed"
	ExecutionFailedEvent    EventType = "execution.failed"

	ApprovalRequestedEvent EventType = "approval.requested"
	ApprovalResolvedEvent  EventType = "approval.resolved"
	ApprovalExpiredEvent   EventType = "approval.expired"

	BookingStatusChangedEvent EventType = "booking.status.changed"
)

// BaseEvent carries the fields every event shares.
type BaseEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	WorkflowID  string    `json:"workflow_id,omitempty"`
	ExecutionID string    `json:"execution_id,omitempty"`
	BookingID   string    `json:"booking_id,omitempty"`
}

type ExecutionStarted struct {
	BaseEvent

	WorkflowName string `json:"workflow_name,omitempty"`
}

func (e ExecutionStarted) GetType() EventType { return ExecutionStartedEvent }

// NodeExecuted mirrors one execution log entry onto the bus.
type NodeExecuted struct {
	BaseEvent

	Entry models.ExecutionLogEntry `json:"entry"`
}

func (e NodeExecuted) GetType() EventType { return NodeExecutedEvent }

type ExecutionPaused struct {
	BaseEvent

	NodeID            string `json:"node_id"`
	ApprovalRequestID string `json:"approval_request_id"`
}

func (e ExecutionPaused) GetType() EventType { return ExecutionPausedEvent }

type ExecutionResumed struct {
	BaseEvent

	NodeID string `json:"node_id"`
}

func (e ExecutionResumed) GetType() EventType { return ExecutionResumedEvent }

type ExecutionCompleted struct {
	BaseEvent

	Duration time.Duration `json:"duration"`
}

func (e ExecutionCompleted) GetType() EventType { return ExecutionCompletedEvent }

type ExecutionFailed struct {
	BaseEvent

	NodeID string `json:"node_id,omitempty"`
	Error  string `json:"error"`
}

func (e ExecutionFailed) GetType() EventType { return ExecutionFailedEvent }

type ApprovalRequested struct {
	BaseEvent

	ApprovalRequestID string     `json:"approval_request_id"`
	NodeID            string     `json:"node_id"`
	RequiredLevel     string     `json:"required_level"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

func (e ApprovalRequested) GetType() EventType { return ApprovalRequestedEvent }

type ApprovalResolved struct {
	BaseEvent

	ApprovalRequestID string                `json:"approval_request_id"`
	Status            models.ApprovalStatus `json:"status"`
	ApproverID        string                `json:"approver_id"`
}

func (e ApprovalResolved) GetType() EventType { return ApprovalResolvedEvent }

type ApprovalExpired struct {
	BaseEvent

	ApprovalRequestID string `json:"approval_request_id"`
	NodeID            string `json:"node_id"`
}

func (e ApprovalExpired) GetType() EventType { return ApprovalExpiredEvent }

type BookingStatusChanged struct {
	BaseEvent

	From    models.BookingStatus `json:"from"`
	To      models.BookingStatus `json:"to"`
	ActorID string               `json:"actor_id"`
}

func (e BookingStatusChanged) GetType() EventType { return BookingStatusChangedEvent }
