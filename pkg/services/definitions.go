package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
	"github.com/strataflow/strataflow/pkg/registry"
	"github.com/strataflow/strataflow/pkg/templates"
)

// Definitions is the workflow definition store: named, versioned graphs
// plus instantiation from the built-in template catalog. Node configs are
// validated against their type schemas at save time; graph structure is
// validated lazily by the engine on first execution.
type Definitions struct {
	repo     persistence.DefinitionRepository
	registry *registry.Registry
	catalog  *templates.Catalog
}

// NewDefinitions creates the definition service.
func NewDefinitions(repo persistence.DefinitionRepository, reg *registry.Registry, catalog *templates.Catalog) *Definitions {
	return &Definitions{repo: repo, registry: reg, catalog: catalog}
}

// Create registers a new definition at version 1.
func (s *Definitions) Create(ctx context.Context, definition *models.WorkflowDefinition) (*models.WorkflowDefinition, error) {
	if err := s.validateNodeConfigs(definition); err != nil {
		return nil, err
	}

	now := time.Now()

	if definition.ID == "" {
		definition.ID = uuid.New().String()
	}

	definition.Version = 1
	definition.CreatedAt = now
	definition.UpdatedAt = now

	if err := s.repo.Save(ctx, definition); err != nil {
		return nil, err
	}

	return definition, nil
}

// Update replaces a definition's content, bumping its version.
func (s *Definitions) Update(ctx context.Context, definition *models.WorkflowDefinition) (*models.WorkflowDefinition, error) {
	existing, err := s.repo.GetByID(ctx, definition.ID)
	if err != nil {
		return nil, err
	}

	if err := s.validateNodeConfigs(definition); err != nil {
		return nil, err
	}

	definition.Version = existing.Version + 1
	definition.CreatedAt = existing.CreatedAt
	definition.CreatedBy = existing.CreatedBy
	definition.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, definition); err != nil {
		return nil, err
	}

	return definition, nil
}

// Get returns a definition by ID.
func (s *Definitions) Get(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all registered definitions.
func (s *Definitions) List(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	return s.repo.GetAll(ctx)
}

// Delete removes a definition.
func (s *Definitions) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// InstantiateTemplate deep-copies a catalog template into a new active
// definition owned by createdBy.
func (s *Definitions) InstantiateTemplate(ctx context.Context, templateName, createdBy string) (*models.WorkflowDefinition, error) {
	template, ok := s.catalog.ByName(templateName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, templateName)
	}

	now := time.Now()

	definition := template.Clone()
	definition.ID = uuid.New().String()
	definition.Version = 1
	definition.IsActive = true
	definition.CreatedBy = createdBy
	definition.CreatedAt = now
	definition.UpdatedAt = now

	if err := s.repo.Save(ctx, definition); err != nil {
		return nil, err
	}

	return definition, nil
}

// TemplateNames lists the built-in templates available for instantiation.
func (s *Definitions) TemplateNames() []string {
	if s.catalog == nil {
		return nil
	}

	return s.catalog.Names()
}

// SeedTemplates registers every catalog template as a definition when the
// store is empty. Used on first boot so the dashboard has workflows to
// offer.
func (s *Definitions) SeedTemplates(ctx context.Context, createdBy string) error {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		return nil
	}

	for _, name := range s.catalog.Names() {
		if _, err := s.InstantiateTemplate(ctx, name, createdBy); err != nil {
			return err
		}
	}

	return nil
}

func (s *Definitions) validateNodeConfigs(definition *models.WorkflowDefinition) error {
	if s.registry == nil {
		return nil
	}

	for _, node := range definition.Nodes {
		if err := s.registry.ValidateNodeConfig(node); err != nil {
			return err
		}
	}

	return nil
}
