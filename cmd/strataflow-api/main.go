package main

import (
	"context"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/strataflow/strataflow/pkg/eventbus"
	"github.com/strataflow/strataflow/pkg/log"
	"github.com/strataflow/strataflow/pkg/otelhelper"
	"github.com/strataflow/strataflow/pkg/persistence/file"
)

const (
	defaultPort        = 9080
	defaultApprovalTTL = 72 * time.Hour
)

func main() {
	logger := log.WithModule("api")

	cmd := &cli.Command{
		Name:                  "strataflow-api",
		Usage:                 "Run the booking workflow API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory holding the JSON data files",
				Value:   "./data",
				Sources: cli.EnvVars("DATA_DIR"),
			},
			&cli.StringSliceFlag{
				Name:    "admin-emails",
				Usage:   "Addresses behind the 'admin' notification recipient token",
				Sources: cli.EnvVars("ADMIN_EMAILS"),
			},
			&cli.DurationFlag{
				Name:    "approval-ttl",
				Usage:   "How long an approval request stays open before it expires",
				Value:   defaultApprovalTTL,
				Sources: cli.EnvVars("APPROVAL_TTL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export engine traces via OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Strataflow API")

			store := file.NewPersistence(command.String("data-dir"))
			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := eventbus.NewGoChannelEventBus(watermill.NewSlogLogger(logger))
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			var tracer trace.Tracer = noop.NewTracerProvider().Tracer("strataflow")

			if command.Bool("tracing") {
				t, err := otelhelper.NewTracer(ctx, "strataflow-api")
				if err != nil {
					return err
				}

				tracer = t
			}

			api := NewAPI(
				logger,
				store,
				eventBus,
				tracer,
				command.StringSlice("admin-emails"),
				command.Duration("approval-ttl"),
			)

			if err := api.Start(ctx, command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)

				return err
			}

			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
