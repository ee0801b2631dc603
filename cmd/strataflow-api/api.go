// Package main provides the Strataflow API server implementation.
package main

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"

	"github.com/strataflow/strataflow/pkg/actions"
	"github.com/strataflow/strataflow/pkg/approvals"
	"github.com/strataflow/strataflow/pkg/engine"
	"github.com/strataflow/strataflow/pkg/eventbus"
	"github.com/strataflow/strataflow/pkg/notify"
	"github.com/strataflow/strataflow/pkg/persistence"
	"github.com/strataflow/strataflow/pkg/projection"
	"github.com/strataflow/strataflow/pkg/registry"
	"github.com/strataflow/strataflow/pkg/services"
	"github.com/strataflow/strataflow/pkg/templates"
	"github.com/strataflow/strataflow/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	validate    *validator.Validate

	adminEmails []string
	approvalTTL time.Duration
	sweeper     *approvals.Sweeper
	projector   *projection.Projector
	definitions *services.Definitions
}

func NewAPI(
	logger *slog.Logger,
	store persistence.Persistence,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
	adminEmails []string,
	approvalTTL time.Duration,
) *API {
	return &API{
		logger:      logger,
		persistence: store,
		eventBus:    eventBus,
		tracer:      tracer,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		adminEmails: adminEmails,
		approvalTTL: approvalTTL,
	}
}

func (a *API) App() *fiber.App {
	bookingService := services.NewBooking(a.persistence.Bookings(), a.eventBus, a.logger)
	tracker := approvals.NewTracker(a.persistence.Approvals(), a.approvalTTL, a.eventBus, a.logger)

	reg := registry.NewRegistry(a.logger)
	reg.RegisterDefaultHandlers(registry.Dependencies{
		Bookings:  bookingService,
		Approvals: tracker,
		Resolver:  notify.NewResolver(a.adminEmails),
		Notifier:  notify.NewLogNotifier(a.logger),
		Performer: actions.NewPerformer(a.persistence.Bookings(), a.logger),
	})

	definitionService := services.NewDefinitions(a.persistence.Definitions(), reg, templates.NewCatalog())
	a.definitions = definitionService

	eng := engine.New(
		a.persistence.Definitions(),
		a.persistence.Executions(),
		bookingService,
		tracker,
		reg,
		a.eventBus,
		a.tracer,
		a.logger,
	)

	a.projector = projection.NewProjector(a.logger)
	a.sweeper = approvals.NewSweeper(tracker, "@every 1m", a.logger)

	handlers := web.NewAPIHandlers(
		bookingService,
		definitionService,
		eng,
		a.persistence.Executions(),
		tracker,
		a.projector,
		a.persistence,
		a.validate,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Strataflow API")
	})

	b := app.Group("/bookings")
	b.Get("/", handlers.GetBookings)
	b.Post("/", handlers.CreateBooking)
	b.Get("/:id", handlers.GetBooking)
	b.Patch("/:id/status", handlers.UpdateBookingStatus)
	b.Get("/:id/executions", handlers.GetBookingExecutions)
	b.Get("/:id/notifications", handlers.GetBookingNotifications)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/templates", handlers.GetTemplates)
	w.Post("/templates/instantiate", handlers.InstantiateTemplate)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/execute", handlers.ExecuteWorkflow)

	e := app.Group("/executions")
	e.Get("/:id", handlers.GetExecution)
	e.Get("/:id/approvals", handlers.GetExecutionApprovals)
	e.Post("/:id/approval", handlers.ResolveApproval)

	app.Get("/notifications", handlers.GetNotifications)
	app.Get("/health", handlers.HealthCheck)

	return app
}

// Start wires the application, seeds the built-in templates on an empty
// store, starts the projector and expiry sweeper, and serves HTTP.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	if err := a.definitions.SeedTemplates(ctx, "system"); err != nil {
		return err
	}

	if err := a.projector.Register(a.eventBus); err != nil {
		return err
	}

	if err := a.eventBus.Subscribe(ctx); err != nil {
		return err
	}

	if err := a.sweeper.Start(); err != nil {
		return err
	}
	defer a.sweeper.Stop()

	return app.Listen(":" + strconv.Itoa(port))
}
