package approvals

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
	"github.com/strataflow/strataflow/pkg/persistence/file"
)

func newTestTracker(t *testing.T, ttl time.Duration) *Tracker {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewTracker(file.NewApprovalRepository(t.TempDir()), ttl, nil, logger)
}

func TestCreateAndFindPending(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, time.Hour)

	created, err := tracker.Create(ctx, "exec-1", "gate", "manager-tier", 1)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, created.Status)
	require.NotNil(t, created.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *created.ExpiresAt, time.Minute)

	found, err := tracker.FindPending(ctx, "exec-1", "gate")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCreateWithoutTTLNeverExpires(t *testing.T) {
	tracker := newTestTracker(t, 0)

	created, err := tracker.Create(context.Background(), "exec-1", "gate", "manager-tier", 1)
	require.NoError(t, err)
	assert.Nil(t, created.ExpiresAt)
	assert.False(t, created.IsExpired(time.Now().Add(24*time.Hour)))
}

func TestLatestPrefersNewestForNode(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, time.Hour)

	first, err := tracker.Create(ctx, "exec-1", "gate", "manager-tier", 1)
	require.NoError(t, err)

	// resolve the first, then open a fresh one on the same node
	now := time.Now()
	first.Status = models.ApprovalStatusRejected
	first.ResolvedAt = &now
	first.CreatedAt = now.Add(-time.Minute)
	require.NoError(t, tracker.Save(ctx, first))

	second, err := tracker.Create(ctx, "exec-1", "gate", "manager-tier", 1)
	require.NoError(t, err)

	latest, err := tracker.Latest(ctx, "exec-1", "gate")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestLatestNotFound(t *testing.T) {
	tracker := newTestTracker(t, time.Hour)

	_, err := tracker.Latest(context.Background(), "exec-1", "gate")
	assert.ErrorIs(t, err, persistence.ErrApprovalNotFound)
}

func TestSweepExpiresOverdueRequests(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := file.NewApprovalRepository(t.TempDir())
	tracker := NewTracker(repo, time.Millisecond, nil, logger)
	sweeper := NewSweeper(tracker, "@every 1h", logger)

	overdue, err := tracker.Create(ctx, "exec-1", "gate", "manager-tier", 1)
	require.NoError(t, err)

	fresh := &models.ApprovalRequest{
		ID:          "ap-fresh",
		ExecutionID: "exec-2",
		NodeID:      "gate",
		Status:      models.ApprovalStatusPending,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Save(ctx, fresh))

	time.Sleep(5 * time.Millisecond)

	sweeper.sweep()

	expired, err := repo.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusExpired, expired.Status)
	require.NotNil(t, expired.ResolvedAt)

	untouched, err := repo.GetByID(ctx, "ap-fresh")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPending, untouched.Status)
}

func TestSweeperStartStop(t *testing.T) {
	tracker := newTestTracker(t, time.Hour)
	sweeper := NewSweeper(tracker, "@every 1m", slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, sweeper.Start())
	sweeper.Stop()
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	tracker := newTestTracker(t, time.Hour)
	sweeper := NewSweeper(tracker, "not a schedule", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Error(t, sweeper.Start())
}
