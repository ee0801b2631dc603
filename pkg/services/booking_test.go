package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence/file"
)

func newBookingService(t *testing.T) *Booking {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewBooking(file.NewBookingRepository(t.TempDir()), nil, logger)
}

func TestCreateBookingDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newBookingService(t)

	created, err := svc.Create(ctx, &models.Booking{
		FacilityID: "pool",
		UserEmail:  "resident@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestSetStatusAppliesPolicy(t *testing.T) {
	ctx := context.Background()
	svc := newBookingService(t)

	booking, err := svc.Create(ctx, &models.Booking{FacilityID: "gym", UserEmail: "r@example.com"})
	require.NoError(t, err)

	manager := models.Actor{ID: "mgr-1", Role: models.RoleManagerTier}
	require.NoError(t, svc.SetStatus(ctx, booking.ID, models.BookingStatusConfirmed, manager, "looks fine"))

	status, err := svc.GetStatus(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, status)

	// standard residents can only cancel
	resident := models.Actor{ID: "user-1", Role: models.RoleStandard}
	err = svc.SetStatus(ctx, booking.ID, models.BookingStatusCompleted, resident, "")
	assert.True(t, IsPermissionDenied(err))

	require.NoError(t, svc.SetStatus(ctx, booking.ID, models.BookingStatusCancelled, resident, "plans changed"))
}

func TestSetStatusRecordsHistory(t *testing.T) {
	ctx := context.Background()
	svc := newBookingService(t)

	booking, err := svc.Create(ctx, &models.Booking{FacilityID: "bbq", UserEmail: "r@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, booking.ID, models.BookingStatusConfirmed, models.ServiceActor, "auto"))

	loaded, err := svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, loaded.StatusHistory, 1)

	entry := loaded.StatusHistory[0]
	assert.Equal(t, models.BookingStatusPending, entry.From)
	assert.Equal(t, models.BookingStatusConfirmed, entry.To)
	assert.Equal(t, "workflow-engine", entry.ActorID)
	assert.Equal(t, "auto", entry.Reason)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc := newBookingService(t)

	booking, err := svc.Create(ctx, &models.Booking{FacilityID: "pool", UserEmail: "r@example.com"})
	require.NoError(t, err)

	err = svc.SetStatus(ctx, booking.ID, models.BookingStatus("archived"), models.ServiceActor, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusUnknownBooking(t *testing.T) {
	svc := newBookingService(t)

	err := svc.SetStatus(context.Background(), "missing", models.BookingStatusConfirmed, models.ServiceActor, "")
	assert.True(t, IsNotFound(err))
}

func TestAppendHistory(t *testing.T) {
	ctx := context.Background()
	svc := newBookingService(t)

	booking, err := svc.Create(ctx, &models.Booking{FacilityID: "pool", UserEmail: "r@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.AppendHistory(ctx, booking.ID, models.StatusHistoryEntry{
		From:    models.BookingStatusPending,
		To:      models.BookingStatusPending,
		ActorID: "auditor",
		Reason:  "reviewed without change",
	}))

	loaded, err := svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, loaded.StatusHistory, 1)
	assert.Equal(t, "auditor", loaded.StatusHistory[0].ActorID)
}
