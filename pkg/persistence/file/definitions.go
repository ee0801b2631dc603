package file

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

const definitionsCollection = "definitions"

// DefinitionRepository stores workflow definitions as one JSON document per
// definition under <root>/definitions.
type DefinitionRepository struct {
	root string
	mu   sync.RWMutex
}

// NewDefinitionRepository creates a definition repository.
func NewDefinitionRepository(root string) *DefinitionRepository {
	return &DefinitionRepository{root: root}
}

// GetByID retrieves a definition, or persistence.ErrDefinitionNotFound.
func (r *DefinitionRepository) GetByID(_ context.Context, id string) (*models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var definition models.WorkflowDefinition

	err := readDocument(r.root, definitionsCollection, id, &definition)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewStoreError("GetByID", id, persistence.ErrDefinitionNotFound)
		}

		return nil, persistence.NewStoreError("GetByID", id, err)
	}

	return &definition, nil
}

// GetAll returns every registered definition, ordered by creation time.
func (r *DefinitionRepository) GetAll(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	r.mu.RLock()
	ids, err := listDocumentIDs(r.root, definitionsCollection)
	r.mu.RUnlock()

	if err != nil {
		return nil, persistence.NewStoreError("GetAll", "", err)
	}

	definitions := make([]*models.WorkflowDefinition, 0, len(ids))

	for _, id := range ids {
		definition, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		definitions = append(definitions, definition)
	}

	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].CreatedAt.Before(definitions[j].CreatedAt)
	})

	return definitions, nil
}

// Save persists a definition.
func (r *DefinitionRepository) Save(_ context.Context, definition *models.WorkflowDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeDocument(r.root, definitionsCollection, definition.ID, definition); err != nil {
		return persistence.NewStoreError("Save", definition.ID, err)
	}

	return nil
}

// Delete removes a definition. Deleting a missing definition is a no-op.
func (r *DefinitionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := removeDocument(r.root, definitionsCollection, id); err != nil {
		return persistence.NewStoreError("Delete", id, err)
	}

	return nil
}
