// Package actions implements the side effects an action node can run.
package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

// Action types understood by the performer.
const (
	ActionFieldUpdate = "field_update"
	ActionCreateTask  = "create_task"
	ActionWebhook     = "webhook"
)

const webhookTimeout = 10 * time.Second

// Performer executes action node side effects: booking field updates,
// task creation, and outbound webhooks.
type Performer struct {
	bookings persistence.BookingRepository
	client   *http.Client
	logger   *slog.Logger
}

func NewPerformer(bookings persistence.BookingRepository, logger *slog.Logger) *Performer {
	return &Performer{
		bookings: bookings,
		client:   &http.Client{Timeout: webhookTimeout},
		logger:   logger,
	}
}

func (p *Performer) Perform(ctx context.Context, actionType string, config map[string]any, booking *models.Booking) error {
	switch actionType {
	case ActionFieldUpdate:
		return p.fieldUpdate(ctx, config, booking)
	case ActionCreateTask:
		return p.createTask(config, booking)
	case ActionWebhook:
		return p.webhook(ctx, config, booking)
	default:
		return fmt.Errorf("unknown action type %q", actionType)
	}
}

func (p *Performer) fieldUpdate(ctx context.Context, config map[string]any, booking *models.Booking) error {
	field, _ := config["field"].(string)
	value := config["value"]

	switch field {
	case "notes":
		booking.Notes = fmt.Sprintf("%v", value)
	case "depositAmount":
		booking.DepositAmount = value
	default:
		return fmt.Errorf("field %q is not updatable", field)
	}

	booking.UpdatedAt = time.Now()

	return p.bookings.Save(ctx, booking)
}

func (p *Performer) createTask(config map[string]any, booking *models.Booking) error {
	task, _ := config["task"].(string)
	if task == "" {
		return fmt.Errorf("create_task requires a task name")
	}

	p.logger.Info("Task created", "task", task, "booking_id", booking.ID)

	return nil
}

func (p *Performer) webhook(ctx context.Context, config map[string]any, booking *models.Booking) error {
	url, _ := config["url"].(string)
	if url == "" {
		return fmt.Errorf("webhook requires a url")
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id": booking.ID,
		"status":     booking.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("failed to drain webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
