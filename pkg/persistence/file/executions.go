package file

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

const executionsCollection = "executions"

// ExecutionRepository stores workflow executions as one JSON document per
// execution under <root>/executions.
type ExecutionRepository struct {
	root string
	mu   sync.RWMutex
}

// NewExecutionRepository creates an execution repository.
func NewExecutionRepository(root string) *ExecutionRepository {
	return &ExecutionRepository{root: root}
}

// GetByID retrieves an execution, or persistence.ErrExecutionNotFound.
func (r *ExecutionRepository) GetByID(_ context.Context, id string) (*models.WorkflowExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var execution models.WorkflowExecution

	err := readDocument(r.root, executionsCollection, id, &execution)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewStoreError("GetByID", id, persistence.ErrExecutionNotFound)
		}

		return nil, persistence.NewStoreError("GetByID", id, err)
	}

	return &execution, nil
}

// GetAll returns every stored execution, ordered by start time.
func (r *ExecutionRepository) GetAll(ctx context.Context) ([]*models.WorkflowExecution, error) {
	r.mu.RLock()
	ids, err := listDocumentIDs(r.root, executionsCollection)
	r.mu.RUnlock()

	if err != nil {
		return nil, persistence.NewStoreError("GetAll", "", err)
	}

	executions := make([]*models.WorkflowExecution, 0, len(ids))

	for _, id := range ids {
		execution, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		executions = append(executions, execution)
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[i].StartedAt.Before(executions[j].StartedAt)
	})

	return executions, nil
}

// ListByBooking returns the executions referencing a booking, ordered by
// start time.
func (r *ExecutionRepository) ListByBooking(ctx context.Context, bookingID string) ([]*models.WorkflowExecution, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.WorkflowExecution

	for _, execution := range all {
		if execution.BookingID == bookingID {
			matches = append(matches, execution)
		}
	}

	return matches, nil
}

// Save persists an execution.
func (r *ExecutionRepository) Save(_ context.Context, execution *models.WorkflowExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeDocument(r.root, executionsCollection, execution.ID, execution); err != nil {
		return persistence.NewStoreError("Save", execution.ID, err)
	}

	return nil
}
