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
	"github.com/strataflow/strataflow/pkg/registry"
	"github.com/strataflow/strataflow/pkg/templates"
)

func newDefinitionService(t *testing.T) *Definitions {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewDefinitions(
		file.NewDefinitionRepository(t.TempDir()),
		registry.NewRegistry(logger),
		templates.NewCatalog(),
	)
}

func validDefinition() *models.WorkflowDefinition {
	return &models.WorkflowDefinition{
		Name:     "Custom Flow",
		Category: models.CategoryBooking,
		Nodes: []*models.WorkflowNode{
			{ID: "start", Type: models.NodeTypeStart},
			{ID: "confirm", Type: models.NodeTypeStatusChange, Config: map[string]any{"targetStatus": "confirmed"}},
			{ID: "end", Type: models.NodeTypeEnd},
		},
		Connections: []*models.Connection{
			{ID: "c1", SourceID: "start", TargetID: "confirm"},
			{ID: "c2", SourceID: "confirm", TargetID: "end"},
		},
		CreatedBy: "mgr-1",
	}
}

func TestCreateStartsAtVersionOne(t *testing.T) {
	ctx := context.Background()
	svc := newDefinitionService(t)

	created, err := svc.Create(ctx, validDefinition())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)
}

func TestCreateRejectsInvalidNodeConfig(t *testing.T) {
	ctx := context.Background()
	svc := newDefinitionService(t)

	definition := validDefinition()
	definition.Nodes[1].Config = map[string]any{} // status_change without targetStatus

	_, err := svc.Create(ctx, definition)
	assert.Error(t, err)
}

func TestUpdateBumpsVersionAndKeepsProvenance(t *testing.T) {
	ctx := context.Background()
	svc := newDefinitionService(t)

	created, err := svc.Create(ctx, validDefinition())
	require.NoError(t, err)

	created.Name = "Custom Flow v2"

	updated, err := svc.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "mgr-1", updated.CreatedBy)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	again, err := svc.Update(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Version)
}

func TestInstantiateTemplate(t *testing.T) {
	ctx := context.Background()
	svc := newDefinitionService(t)

	definition, err := svc.InstantiateTemplate(ctx, "Simple Booking Approval", "mgr-1")
	require.NoError(t, err)

	assert.NotEmpty(t, definition.ID)
	assert.Equal(t, 1, definition.Version)
	assert.True(t, definition.IsActive)
	assert.Equal(t, "mgr-1", definition.CreatedBy)

	// instantiated copy is independent of the catalog
	definition.Nodes[0].Config = map[string]any{"mutated": true}

	template, ok := templates.NewCatalog().ByName("Simple Booking Approval")
	require.True(t, ok)
	assert.Empty(t, template.Nodes[0].Config)
}

func TestInstantiateUnknownTemplate(t *testing.T) {
	svc := newDefinitionService(t)

	_, err := svc.InstantiateTemplate(context.Background(), "Does Not Exist", "mgr-1")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSeedTemplatesOnEmptyStoreOnly(t *testing.T) {
	ctx := context.Background()
	svc := newDefinitionService(t)

	require.NoError(t, svc.SeedTemplates(ctx, "system"))

	definitions, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, definitions, len(svc.TemplateNames()))

	// second seed is a no-op
	require.NoError(t, svc.SeedTemplates(ctx, "system"))

	definitions, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, definitions, len(svc.TemplateNames()))
}

func TestDeleteDefinition(t *testing.T) {
	ctx := context.Background()
	svc := newDefinitionService(t)

	created, err := svc.Create(ctx, validDefinition())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}
