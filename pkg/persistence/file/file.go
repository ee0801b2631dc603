// Package file provides flat JSON file persistence for bookings, workflow
// definitions, executions and approval requests. Records are read and
// written wholesale on each operation; there is no caching layer.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/strataflow/strataflow/pkg/persistence"
)

// Persistence implements persistence.Persistence on top of a directory of
// JSON documents.
type Persistence struct {
	root        string
	definitions *DefinitionRepository
	executions  *ExecutionRepository
	approvals   *ApprovalRepository
	bookings    *BookingRepository
}

// NewPersistence creates file persistence rooted at the given directory.
// A "file://" prefix on root is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:        cleanRoot,
		definitions: NewDefinitionRepository(cleanRoot),
		executions:  NewExecutionRepository(cleanRoot),
		approvals:   NewApprovalRepository(cleanRoot),
		bookings:    NewBookingRepository(cleanRoot),
	}
}

// Definitions returns the workflow definition repository.
func (fp *Persistence) Definitions() persistence.DefinitionRepository {
	return fp.definitions
}

// Executions returns the workflow execution repository.
func (fp *Persistence) Executions() persistence.ExecutionRepository {
	return fp.executions
}

// Approvals returns the approval request repository.
func (fp *Persistence) Approvals() persistence.ApprovalRepository {
	return fp.approvals
}

// Bookings returns the booking repository.
func (fp *Persistence) Bookings() persistence.BookingRepository {
	return fp.bookings
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup. For file persistence there is
// nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}
