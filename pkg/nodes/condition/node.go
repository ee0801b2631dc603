// Package condition provides the branching node handler. It evaluates the
// node's single {field, operator, value} predicate against the booking's
// current attributes and routes down the matching labeled connection.
package condition

import (
	"context"
	"errors"
	"fmt"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/protocol"
)

// Branch outcomes matched against connection conditions/labels.
const (
	BranchTrue  = "true"
	BranchFalse = "false"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Type() models.NodeType {
	return models.NodeTypeCondition
}

func (h *Handler) Execute(_ context.Context, node *models.WorkflowNode, _ *models.WorkflowExecution, booking *models.Booking) (protocol.NodeOutcome, error) {
	predicate, err := node.Predicate()
	if err != nil {
		return protocol.NodeOutcome{}, err
	}

	fieldValue, ok := booking.Field(predicate.Field)
	if !ok {
		return protocol.NodeOutcome{}, fmt.Errorf("condition references unknown booking field %q", predicate.Field)
	}

	result, err := predicate.Evaluate(fieldValue)
	if err != nil {
		if errors.Is(err, models.ErrNonNumericValue) {
			return protocol.NodeOutcome{}, &protocol.ConditionTypeError{
				Field: predicate.Field,
				Value: fieldValue,
				Err:   err,
			}
		}

		return protocol.NodeOutcome{}, err
	}

	branch := BranchFalse
	if result {
		branch = BranchTrue
	}

	return protocol.NodeOutcome{
		Action:  "Condition Evaluated",
		Details: fmt.Sprintf("%s %s %v is %s", predicate.Field, predicate.Operator, predicate.Value, branch),
		Branch:  branch,
	}, nil
}
