// Package engine implements the workflow interpreter: an eager trampoline
// that walks a definition's graph node by node against one booking,
// applying side effects through the injected collaborators and appending
// to the execution's log as it goes. It runs every node it can without
// external input and blocks only at human-gated approval nodes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/strataflow/strataflow/pkg/eventbus"
	"github.com/strataflow/strataflow/pkg/events"
	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/otelhelper"
	"github.com/strataflow/strataflow/pkg/persistence"
	"github.com/strataflow/strataflow/pkg/protocol"
)

// Engine interprets workflow definitions. All operations return the
// updated execution so callers can render terminal status and log inline;
// errors are reserved for lookups that leave no execution to return.
type Engine struct {
	definitions persistence.DefinitionRepository
	executions  persistence.ExecutionRepository
	bookings    protocol.BookingGateway
	approvals   protocol.ApprovalTracker
	registry    protocol.HandlerRegistry
	bus         eventbus.EventPublisher
	tracer      trace.Tracer
	logger      *slog.Logger
}

// New creates an engine. The bus and tracer may be nil in tests.
func New(
	definitions persistence.DefinitionRepository,
	executions persistence.ExecutionRepository,
	bookings protocol.BookingGateway,
	approvals protocol.ApprovalTracker,
	registry protocol.HandlerRegistry,
	bus eventbus.EventPublisher,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		definitions: definitions,
		executions:  executions,
		bookings:    bookings,
		approvals:   approvals,
		registry:    registry,
		bus:         bus,
		tracer:      tracer,
		logger:      logger,
	}
}

// ApprovalDecision is one approver's verdict submitted through the API.
type ApprovalDecision struct {
	ApproverID string `json:"approver_id" validate:"required"`
	Approve    bool   `json:"approve"`
	Comment    string `json:"comment,omitempty"`
}

// Start creates an execution of the given definition against a booking and
// eagerly advances it. Returns ErrDefinitionNotFound or the booking lookup
// error when there is nothing to execute; structural problems in the graph
// fail the returned execution instead.
func (e *Engine) Start(ctx context.Context, definitionID, bookingID string) (*models.WorkflowExecution, error) {
	ctx, span := e.startSpan(ctx, "engine.start",
		attribute.String(otelhelper.WorkflowIDKey, definitionID),
		attribute.String(otelhelper.BookingIDKey, bookingID),
	)
	defer span.End()

	definition, err := e.definitions.GetByID(ctx, definitionID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	span.SetAttributes(attribute.String(otelhelper.WorkflowNameKey, definition.Name))

	if _, err := e.bookings.Get(ctx, bookingID); err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	execution := &models.WorkflowExecution{
		ID:         "exec-" + uuid.New().String()[:8],
		WorkflowID: definition.ID,
		BookingID:  bookingID,
		Status:     models.ExecutionStatusRunning,
		StartedAt:  time.Now(),
	}

	logger := e.logger.With("execution_id", execution.ID, "workflow_id", definition.ID, "booking_id", bookingID)
	logger.Info("Starting workflow execution")

	startNode, ok := definition.StartNode()
	if !ok {
		return e.fail(ctx, execution, "", "", &MalformedGraphError{Reason: "definition has no unique start node"}), nil
	}

	execution.CurrentNodeID = startNode.ID

	if err := e.executions.Save(ctx, execution); err != nil {
		return nil, err
	}

	e.publish(ctx, execution.BookingID, events.ExecutionStarted{
		BaseEvent:    e.baseEvent(events.ExecutionStartedEvent, execution),
		WorkflowName: definition.Name,
	})

	return e.Advance(ctx, execution)
}

// Advance runs the execution forward until it completes, fails, or blocks
// at an unresolved approval gate. Calling Advance on a terminal execution
// is a no-op returning it unchanged.
func (e *Engine) Advance(ctx context.Context, execution *models.WorkflowExecution) (*models.WorkflowExecution, error) {
	if execution.IsTerminal() {
		return execution, nil
	}

	ctx, span := e.startSpan(ctx, "engine.advance",
		attribute.String(otelhelper.ExecutionIDKey, execution.ID),
		attribute.String(otelhelper.WorkflowIDKey, execution.WorkflowID),
	)
	defer span.End()

	definition, err := e.definitions.GetByID(ctx, execution.WorkflowID)
	if err != nil {
		return e.fail(ctx, execution, "", "", err), nil
	}

	resumed := execution.Status == models.ExecutionStatusPaused
	execution.Status = models.ExecutionStatusRunning

	// An acyclic walk visits each node at most once per advance, so
	// exceeding the node count means the graph loops back on itself.
	for steps := 0; ; steps++ {
		if steps >= len(definition.Nodes) {
			return e.fail(ctx, execution, execution.CurrentNodeID, "",
				&MalformedGraphError{NodeID: execution.CurrentNodeID, Reason: "walk revisits nodes, definition contains a cycle"}), nil
		}

		node := definition.Node(execution.CurrentNodeID)
		if node == nil {
			return e.fail(ctx, execution, execution.CurrentNodeID, "",
				&MalformedGraphError{NodeID: execution.CurrentNodeID, Reason: "connection targets a node that does not exist"}), nil
		}

		handler, ok := e.registry.HandlerFor(node.Type)
		if !ok {
			return e.fail(ctx, execution, node.ID, node.Type,
				&MalformedGraphError{NodeID: node.ID, Reason: fmt.Sprintf("no handler for node type %q", node.Type)}), nil
		}

		booking, err := e.bookings.Get(ctx, execution.BookingID)
		if err != nil {
			return e.fail(ctx, execution, node.ID, node.Type, err), nil
		}

		nodeCtx, nodeSpan := e.startSpan(ctx, "engine.node",
			attribute.String(otelhelper.NodeIDKey, node.ID),
			attribute.String(otelhelper.NodeTypeKey, string(node.Type)),
		)

		outcome, err := handler.Execute(nodeCtx, node, execution, booking)
		if err != nil {
			otelhelper.SetError(nodeSpan, err)
			nodeSpan.End()

			return e.fail(ctx, execution, node.ID, node.Type, err), nil
		}

		nodeSpan.End()

		if outcome.Action != "" {
			execution.AppendLog(node.ID, node.Type, outcome.Action, outcome.Details)
			e.publish(ctx, execution.BookingID, events.NodeExecuted{
				BaseEvent: e.baseEvent(events.NodeExecutedEvent, execution),
				Entry:     execution.Log[len(execution.Log)-1],
			})
		}

		if resumed {
			resumed = false

			e.publish(ctx, execution.BookingID, events.ExecutionResumed{
				BaseEvent: e.baseEvent(events.ExecutionResumedEvent, execution),
				NodeID:    node.ID,
			})
		}

		if outcome.Complete {
			return e.complete(ctx, execution)
		}

		if outcome.Pause {
			return e.pause(ctx, execution, node)
		}

		next, err := e.nextConnection(definition, node, outcome.Branch)
		if err != nil {
			return e.fail(ctx, execution, node.ID, node.Type, err), nil
		}

		execution.CurrentNodeID = next.TargetID
	}
}

// ResolveApproval records one decision on the pending approval gate of a
// paused execution and, once the gate is resolved (quorum of approvals, or
// any rejection), re-advances from the same node.
func (e *Engine) ResolveApproval(ctx context.Context, executionID string, decision ApprovalDecision) (*models.WorkflowExecution, error) {
	ctx, span := e.startSpan(ctx, "engine.resolve_approval",
		attribute.String(otelhelper.ExecutionIDKey, executionID),
	)
	defer span.End()

	execution, err := e.executions.GetByID(ctx, executionID)
	if err != nil {
		return nil, err
	}

	if execution.Status != models.ExecutionStatusPaused {
		return execution, ErrNotAwaitingApproval
	}

	request, err := e.approvals.FindPending(ctx, execution.ID, execution.CurrentNodeID)
	if err != nil {
		if errors.Is(err, persistence.ErrApprovalNotFound) {
			// The sweeper may already have expired the gate. The
			// execution is still paused, so route it through the
			// same unresolved-rejection advance a lazy expiry takes.
			return e.resumeExpired(ctx, execution, err)
		}

		return execution, err
	}

	span.SetAttributes(attribute.String(otelhelper.ApprovalIDKey, request.ID))

	now := time.Now()

	if request.IsExpired(now) {
		// Too late: the gate expired. The next advance routes it as an
		// unresolved rejection.
		request.Status = models.ApprovalStatusExpired
		request.ResolvedAt = &now

		if err := e.approvals.Save(ctx, request); err != nil {
			return execution, err
		}

		return e.Advance(ctx, execution)
	}

	action := models.ApprovalAction{
		ApproverID: decision.ApproverID,
		Action:     models.DecisionApproved,
		Comment:    decision.Comment,
		Timestamp:  now,
	}
	if !decision.Approve {
		action.Action = models.DecisionRejected
	}

	request.Actions = append(request.Actions, action)

	switch {
	case !decision.Approve:
		request.Status = models.ApprovalStatusRejected
		request.ResolvedAt = &now
	case request.QuorumMet():
		request.Status = models.ApprovalStatusApproved
		request.ResolvedAt = &now
	}

	if err := e.approvals.Save(ctx, request); err != nil {
		return execution, err
	}

	e.publish(ctx, execution.BookingID, events.ApprovalResolved{
		BaseEvent:         e.baseEvent(events.ApprovalResolvedEvent, execution),
		ApprovalRequestID: request.ID,
		Status:            request.Status,
		ApproverID:        decision.ApproverID,
	})

	if request.Status == models.ApprovalStatusPending {
		// Quorum not yet met; the execution stays paused.
		return execution, nil
	}

	return e.Advance(ctx, execution)
}

// resumeExpired re-advances a paused execution whose gate was expired out
// from under it, so it follows the rejection branch instead of stranding.
// findErr is returned unchanged when the gate is in any other state.
func (e *Engine) resumeExpired(ctx context.Context, execution *models.WorkflowExecution, findErr error) (*models.WorkflowExecution, error) {
	latest, err := e.approvals.Latest(ctx, execution.ID, execution.CurrentNodeID)
	if err != nil {
		return execution, findErr
	}

	if latest.Status != models.ApprovalStatusExpired {
		return execution, findErr
	}

	return e.Advance(ctx, execution)
}

// nextConnection selects the outgoing connection to follow. An empty
// branch means sequential flow: the node's single successor. A named
// branch must match a connection's condition or label.
func (e *Engine) nextConnection(definition *models.WorkflowDefinition, node *models.WorkflowNode, branch string) (*models.Connection, error) {
	connections := definition.ConnectionsFrom(node.ID)

	if branch == "" {
		if len(connections) == 0 {
			return nil, &MalformedGraphError{NodeID: node.ID, Reason: "node has no outgoing connection"}
		}

		return connections[0], nil
	}

	for _, conn := range connections {
		if conn.MatchesBranch(branch) {
			return conn, nil
		}
	}

	return nil, &UnmatchedBranchError{NodeID: node.ID, Branch: branch}
}

func (e *Engine) complete(ctx context.Context, execution *models.WorkflowExecution) (*models.WorkflowExecution, error) {
	now := time.Now()
	execution.Status = models.ExecutionStatusCompleted
	execution.CompletedAt = &now

	if err := e.executions.Save(ctx, execution); err != nil {
		return execution, err
	}

	e.logger.Info("Workflow execution completed", "execution_id", execution.ID)

	e.publish(ctx, execution.BookingID, events.ExecutionCompleted{
		BaseEvent: e.baseEvent(events.ExecutionCompletedEvent, execution),
		Duration:  now.Sub(execution.StartedAt),
	})

	return execution, nil
}

func (e *Engine) pause(ctx context.Context, execution *models.WorkflowExecution, node *models.WorkflowNode) (*models.WorkflowExecution, error) {
	execution.Status = models.ExecutionStatusPaused

	if err := e.executions.Save(ctx, execution); err != nil {
		return execution, err
	}

	requestID := ""
	if request, err := e.approvals.FindPending(ctx, execution.ID, node.ID); err == nil {
		requestID = request.ID
	}

	e.logger.Info("Workflow execution paused awaiting approval",
		"execution_id", execution.ID, "node_id", node.ID)

	e.publish(ctx, execution.BookingID, events.ExecutionPaused{
		BaseEvent:         e.baseEvent(events.ExecutionPausedEvent, execution),
		NodeID:            node.ID,
		ApprovalRequestID: requestID,
	})

	return execution, nil
}

// fail terminates the execution with the error recorded as its final log
// entry. Failure is forward-only: nothing already logged or applied is
// rolled back.
func (e *Engine) fail(ctx context.Context, execution *models.WorkflowExecution, nodeID string, nodeType models.NodeType, cause error) *models.WorkflowExecution {
	execution.AppendLog(nodeID, nodeType, "Failed", cause.Error())
	execution.Status = models.ExecutionStatusFailed

	if err := e.executions.Save(ctx, execution); err != nil {
		e.logger.Error("Failed to persist failed execution", "execution_id", execution.ID, "error", err)
	}

	e.logger.Warn("Workflow execution failed",
		"execution_id", execution.ID, "node_id", nodeID, "error", cause)

	e.publish(ctx, execution.BookingID, events.ExecutionFailed{
		BaseEvent: e.baseEvent(events.ExecutionFailedEvent, execution),
		NodeID:    nodeID,
		Error:     cause.Error(),
	})

	return execution
}

func (e *Engine) baseEvent(eventType events.EventType, execution *models.WorkflowExecution) events.BaseEvent {
	return events.BaseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Timestamp:   time.Now(),
		WorkflowID:  execution.WorkflowID,
		ExecutionID: execution.ID,
		BookingID:   execution.BookingID,
	}
}

func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.bus == nil {
		return
	}

	if err := e.bus.Publish(ctx, key, event); err != nil {
		e.logger.Error("Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}

func (e *Engine) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if e.tracer == nil {
		return noop.NewTracerProvider().Tracer("engine").Start(ctx, name)
	}

	return otelhelper.StartSpan(ctx, e.tracer, name, attrs...)
}
