package approvals

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/strataflow/strataflow/pkg/events"
	"github.com/strataflow/strataflow/pkg/models"
)

// Sweeper periodically marks unresolved requests past their expiry as
// expired. The engine treats an expired request as an unresolved rejection
// on the next advance; the sweeper only flips state and announces it.
type Sweeper struct {
	tracker  *Tracker
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewSweeper creates a sweeper running on the given cron schedule
// (e.g. "@every 1m").
func NewSweeper(tracker *Tracker, schedule string, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		tracker:  tracker,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger,
	}
}

// Start schedules the sweep and begins running it.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop halts the sweep schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx := context.Background()
	now := time.Now()

	pending, err := s.tracker.repo.ListPending(ctx)
	if err != nil {
		s.logger.Error("Approval sweep failed to list pending requests", "error", err)

		return
	}

	for _, request := range pending {
		if !request.IsExpired(now) {
			continue
		}

		request.Status = models.ApprovalStatusExpired
		request.ResolvedAt = &now

		if err := s.tracker.Save(ctx, request); err != nil {
			s.logger.Error("Approval sweep failed to save expired request",
				"request_id", request.ID, "error", err)

			continue
		}

		s.logger.Info("Approval request expired",
			"request_id", request.ID, "execution_id", request.ExecutionID)

		s.tracker.publish(ctx, request.ExecutionID, events.ApprovalExpired{
			BaseEvent: events.BaseEvent{
				ID:          uuid.New().String(),
				Type:        events.ApprovalExpiredEvent,
				Timestamp:   now,
				ExecutionID: request.ExecutionID,
			},
			ApprovalRequestID: request.ID,
			NodeID:            request.NodeID,
		})
	}
}
