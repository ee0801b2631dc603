package file

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/persistence"
)

const approvalsCollection = "approvals"

// ApprovalRepository stores approval requests as one JSON document per
// request under <root>/approvals.
type ApprovalRepository struct {
	root string
	mu   sync.RWMutex
}

// NewApprovalRepository creates an approval repository.
func NewApprovalRepository(root string) *ApprovalRepository {
	return &ApprovalRepository{root: root}
}

// GetByID retrieves a request, or persistence.ErrApprovalNotFound.
func (r *ApprovalRepository) GetByID(_ context.Context, id string) (*models.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var request models.ApprovalRequest

	err := readDocument(r.root, approvalsCollection, id, &request)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewStoreError("GetByID", id, persistence.ErrApprovalNotFound)
		}

		return nil, persistence.NewStoreError("GetByID", id, err)
	}

	return &request, nil
}

// FindPending returns the unresolved request for an execution's node, or
// persistence.ErrApprovalNotFound.
func (r *ApprovalRepository) FindPending(ctx context.Context, executionID, nodeID string) (*models.ApprovalRequest, error) {
	all, err := r.getAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, request := range all {
		if request.ExecutionID == executionID && request.NodeID == nodeID &&
			request.Status == models.ApprovalStatusPending {
			return request, nil
		}
	}

	return nil, persistence.NewStoreError("FindPending", executionID, persistence.ErrApprovalNotFound)
}

// ListPending returns every unresolved request, ordered by creation time.
func (r *ApprovalRepository) ListPending(ctx context.Context) ([]*models.ApprovalRequest, error) {
	all, err := r.getAll(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*models.ApprovalRequest

	for _, request := range all {
		if request.Status == models.ApprovalStatusPending {
			pending = append(pending, request)
		}
	}

	return pending, nil
}

// ListByExecution returns every request created for an execution, ordered
// by creation time.
func (r *ApprovalRepository) ListByExecution(ctx context.Context, executionID string) ([]*models.ApprovalRequest, error) {
	all, err := r.getAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.ApprovalRequest

	for _, request := range all {
		if request.ExecutionID == executionID {
			matches = append(matches, request)
		}
	}

	return matches, nil
}

// Save persists a request.
func (r *ApprovalRepository) Save(_ context.Context, request *models.ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeDocument(r.root, approvalsCollection, request.ID, request); err != nil {
		return persistence.NewStoreError("Save", request.ID, err)
	}

	return nil
}

func (r *ApprovalRepository) getAll(ctx context.Context) ([]*models.ApprovalRequest, error) {
	r.mu.RLock()
	ids, err := listDocumentIDs(r.root, approvalsCollection)
	r.mu.RUnlock()

	if err != nil {
		return nil, persistence.NewStoreError("ListPending", "", err)
	}

	requests := make([]*models.ApprovalRequest, 0, len(ids))

	for _, id := range ids {
		request, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})

	return requests, nil
}
