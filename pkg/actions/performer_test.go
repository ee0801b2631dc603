package actions

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence/file"
)

func newTestPerformer(t *testing.T) (*Performer, *file.BookingRepository) {
	t.Helper()

	repo := file.NewBookingRepository(t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPerformer(repo, logger), repo
}

func TestPerformUnknownAction(t *testing.T) {
	performer, _ := newTestPerformer(t)

	err := performer.Perform(context.Background(), "teleport", nil, &models.Booking{ID: "b-1"})
	assert.Error(t, err)
}

func TestPerformFieldUpdate(t *testing.T) {
	ctx := context.Background()
	performer, repo := newTestPerformer(t)

	booking := &models.Booking{ID: "b-1", Status: models.BookingStatusPending}
	require.NoError(t, repo.Save(ctx, booking))

	err := performer.Perform(ctx, ActionFieldUpdate, map[string]any{
		"field": "notes",
		"value": "inspection scheduled",
	}, booking)
	require.NoError(t, err)

	saved, err := repo.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "inspection scheduled", saved.Notes)
}

func TestPerformFieldUpdateRejectsUnknownField(t *testing.T) {
	performer, _ := newTestPerformer(t)

	err := performer.Perform(context.Background(), ActionFieldUpdate, map[string]any{
		"field": "status",
		"value": "confirmed",
	}, &models.Booking{ID: "b-1"})
	assert.Error(t, err)
}

func TestPerformCreateTask(t *testing.T) {
	performer, _ := newTestPerformer(t)

	err := performer.Perform(context.Background(), ActionCreateTask, map[string]any{
		"task": "post-maintenance inspection",
	}, &models.Booking{ID: "b-1"})
	assert.NoError(t, err)

	err = performer.Perform(context.Background(), ActionCreateTask, map[string]any{}, &models.Booking{ID: "b-1"})
	assert.Error(t, err)
}

func TestPerformWebhook(t *testing.T) {
	var received bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = true

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	performer, _ := newTestPerformer(t)

	err := performer.Perform(context.Background(), ActionWebhook, map[string]any{
		"url": server.URL,
	}, &models.Booking{ID: "b-1", Status: models.BookingStatusConfirmed})
	require.NoError(t, err)
	assert.True(t, received)
}

func TestPerformWebhookNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	performer, _ := newTestPerformer(t)

	err := performer.Perform(context.Background(), ActionWebhook, map[string]any{"url": server.URL}, &models.Booking{ID: "b-1"})
	assert.Error(t, err)
}

func TestPerformWebhookRequiresURL(t *testing.T) {
	performer, _ := newTestPerformer(t)

	err := performer.Perform(context.Background(), ActionWebhook, map[string]any{}, &models.Booking{ID: "b-1"})
	assert.Error(t, err)
}
