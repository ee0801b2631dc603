package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/strataflow/strataflow/pkg/approvals"
	"github.com/strataflow/strataflow/pkg/engine"
	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
	"github.com/strataflow/strataflow/pkg/projection"
	"github.com/strataflow/strataflow/pkg/services"
)

// Headers identifying the acting user on booking status changes. Auth is
// out of scope; the role-gated dashboard supplies both.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type APIHandlers struct {
	bookingService    *services.Booking
	definitionService *services.Definitions
	engine            *engine.Engine
	executions        persistence.ExecutionRepository
	approvals         *approvals.Tracker
	projector         *projection.Projector
	store             persistence.Persistence
	validator         *validator.Validate
}

func NewAPIHandlers(
	bookingService *services.Booking,
	definitionService *services.Definitions,
	eng *engine.Engine,
	executions persistence.ExecutionRepository,
	tracker *approvals.Tracker,
	projector *projection.Projector,
	store persistence.Persistence,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		bookingService:    bookingService,
		definitionService: definitionService,
		engine:            eng,
		executions:        executions,
		approvals:         tracker,
		projector:         projector,
		store:             store,
		validator:         validate,
	}
}

func (h *APIHandlers) actor(c fiber.Ctx) models.Actor {
	role := models.Role(c.Get(HeaderUserRole))
	if role == "" {
		role = models.RoleStandard
	}

	id := c.Get(HeaderUserID)
	if id == "" {
		id = "anonymous"
	}

	return models.Actor{ID: id, Role: role}
}

func (h *APIHandlers) GetBookings(c fiber.Ctx) error {
	bookings, err := h.bookingService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(bookings)
}

func (h *APIHandlers) CreateBooking(c fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	booking := &models.Booking{
		FacilityID:    req.FacilityID,
		FacilityName:  req.FacilityName,
		UserID:        req.UserID,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DepositAmount: req.DepositAmount,
		Notes:         req.Notes,
	}

	created, err := h.bookingService.Create(c.Context(), booking)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetBooking(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Booking ID is required")
	}

	booking, err := h.bookingService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(booking)
}

// UpdateBookingStatus applies a manual status change on behalf of the
// user identified by the request headers.
func (h *APIHandlers) UpdateBookingStatus(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Booking ID is required")
	}

	var req UpdateBookingStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.bookingService.SetStatus(c.Context(), id, models.BookingStatus(req.Status), h.actor(c), req.Reason)
	if err != nil {
		return handleServiceError(c, err)
	}

	booking, err := h.bookingService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(booking)
}

func (h *APIHandlers) GetBookingExecutions(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Booking ID is required")
	}

	executions, err := h.executions.ListByBooking(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(executions)
}

func (h *APIHandlers) GetBookingNotifications(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Booking ID is required")
	}

	return c.JSON(h.projector.Feed(id))
}

func (h *APIHandlers) GetNotifications(c fiber.Ctx) error {
	return c.JSON(h.projector.All())
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	definitions, err := h.definitionService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(definitions)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	definition := &models.WorkflowDefinition{
		Name:        req.Name,
		Description: req.Description,
		Category:    models.WorkflowCategory(req.Category),
		IsActive:    true,
		Nodes:       req.Nodes,
		Connections: req.Connections,
		CreatedBy:   req.CreatedBy,
	}

	created, err := h.definitionService.Create(c.Context(), definition)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	definition, err := h.definitionService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(definition)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	existing, err := h.definitionService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}

	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if req.Nodes != nil {
		existing.Nodes = req.Nodes
	}

	if req.Connections != nil {
		existing.Connections = req.Connections
	}

	updated, err := h.definitionService.Update(c.Context(), existing)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.definitionService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ExecuteWorkflow starts an execution of the definition against the
// booking named in the body. The response carries the execution in
// whatever state the eager advance left it: completed, paused at an
// approval gate, or failed.
func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ExecuteWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	execution, err := h.engine.Start(c.Context(), id, req.BookingID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(execution)
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": h.definitionService.TemplateNames()})
}

func (h *APIHandlers) InstantiateTemplate(c fiber.Ctx) error {
	var req InstantiateTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	definition, err := h.definitionService.InstantiateTemplate(c.Context(), req.Template, req.CreatedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(definition)
}

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Execution ID is required")
	}

	execution, err := h.executions.GetByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) GetExecutionApprovals(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Execution ID is required")
	}

	requests, err := h.approvals.ListByExecution(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(requests)
}

// ResolveApproval records one approver's decision on a paused execution
// and returns the execution after any resulting advance.
func (h *APIHandlers) ResolveApproval(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Execution ID is required")
	}

	var req ResolveApprovalRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	execution, err := h.engine.ResolveApproval(c.Context(), id, engine.ApprovalDecision{
		ApproverID: req.ApproverID,
		Approve:    *req.Approve,
		Comment:    req.Comment,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Strataflow API is healthy"
	httpStatus := http.StatusOK

	if err := h.store.HealthCheck(c.Context()); err != nil {
		status = "unhealthy"
		message = "Strataflow API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}
