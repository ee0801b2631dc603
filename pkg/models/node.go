package models

import (
	"errors"
	"fmt"
)

// NodeType enumerates the typed steps a workflow graph is built from.
type NodeType string

const (
	NodeTypeStart        NodeType = "start"
	NodeTypeStatusChange NodeType = "status_change"
	NodeTypeApproval     NodeType = "approval"
	NodeTypeNotification NodeType = "notification"
	NodeTypeCondition    NodeType = "condition"
	NodeTypeAction       NodeType = "action"
	NodeTypeEnd          NodeType = "end"
)

// AllNodeTypes lists every node type the engine dispatches on.
var AllNodeTypes = []NodeType{
	NodeTypeStart,
	NodeTypeStatusChange,
	NodeTypeApproval,
	NodeTypeNotification,
	NodeTypeCondition,
	NodeTypeAction,
	NodeTypeEnd,
}

// WorkflowNode represents one typed step in a workflow definition. Config
// holds the type-specific fields (see the accessors below); PositionX and
// PositionY are presentational only and never consulted by the engine.
type WorkflowNode struct {
	ID        string         `json:"id"    validate:"required"`
	Type      NodeType       `json:"type"  validate:"required"`
	Label     string         `json:"label" validate:"required"`
	Config    map[string]any `json:"config,omitempty"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
}

// Clone returns a deep copy of the node, including its config map.
func (n *WorkflowNode) Clone() *WorkflowNode {
	clone := *n

	if n.Config != nil {
		clone.Config = make(map[string]any, len(n.Config))
		for k, v := range n.Config {
			clone.Config[k] = v
		}
	}

	return &clone
}

func (n *WorkflowNode) configString(key string) (string, error) {
	raw, ok := n.Config[key]
	if !ok {
		return "", fmt.Errorf("node %s: missing required config field %q", n.ID, key)
	}

	s, ok := raw.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("node %s: config field %q must be a non-empty string", n.ID, key)
	}

	return s, nil
}

// TargetStatus returns the status a status_change node moves the booking to.
func (n *WorkflowNode) TargetStatus() (BookingStatus, error) {
	s, err := n.configString("targetStatus")
	if err != nil {
		return "", err
	}

	status := BookingStatus(s)
	if !IsValidBookingStatus(status) {
		return "", fmt.Errorf("node %s: unknown target status %q", n.ID, s)
	}

	return status, nil
}

// ApprovalLevel returns the approver tier an approval node requires.
func (n *WorkflowNode) ApprovalLevel() (string, error) {
	return n.configString("approvalLevel")
}

// RequiredApprovers returns the approval quorum, defaulting to 1.
func (n *WorkflowNode) RequiredApprovers() int {
	raw, ok := n.Config["requiredApprovers"]
	if !ok {
		return 1
	}

	switch v := raw.(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64: // JSON numbers decode as float64
		if v > 0 {
			return int(v)
		}
	}

	return 1
}

// Recipients returns the recipient tokens of a notification node.
func (n *WorkflowNode) Recipients() ([]string, error) {
	raw, ok := n.Config["recipients"]
	if !ok {
		return nil, fmt.Errorf("node %s: missing required config field %q", n.ID, "recipients")
	}

	switch v := raw.(type) {
	case []string:
		if len(v) > 0 {
			return v, nil
		}
	case []any:
		tokens := make([]string, 0, len(v))

		for _, item := range v {
			token, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("node %s: recipients must be strings", n.ID)
			}

			tokens = append(tokens, token)
		}

		if len(tokens) > 0 {
			return tokens, nil
		}
	case string:
		if v != "" {
			return []string{v}, nil
		}
	}

	return nil, fmt.Errorf("node %s: recipients must not be empty", n.ID)
}

// Template returns the notification template name.
func (n *WorkflowNode) Template() (string, error) {
	return n.configString("template")
}

// ActionType returns the external action type of an action node.
func (n *WorkflowNode) ActionType() (string, error) {
	return n.configString("actionType")
}

// ActionConfig returns the opaque configuration handed to the external
// action performer. May be nil.
func (n *WorkflowNode) ActionConfig() map[string]any {
	raw, ok := n.Config["actionConfig"]
	if !ok {
		return nil
	}

	cfg, _ := raw.(map[string]any)

	return cfg
}

// ErrMissingPredicate is returned when a condition node lacks its predicate.
var ErrMissingPredicate = errors.New("condition node requires a {field, operator, value} predicate")

// Predicate returns the {field, operator, value} predicate of a condition
// node. The predicate may be nested under a "condition" key or laid out
// flat on the node config.
func (n *WorkflowNode) Predicate() (*ConditionPredicate, error) {
	cfg := n.Config
	if nested, ok := n.Config["condition"].(map[string]any); ok {
		cfg = nested
	}

	field, _ := cfg["field"].(string)
	operator, _ := cfg["operator"].(string)
	value, hasValue := cfg["value"]

	if field == "" || operator == "" || !hasValue {
		return nil, fmt.Errorf("node %s: %w", n.ID, ErrMissingPredicate)
	}

	return &ConditionPredicate{
		Field:    field,
		Operator: ConditionOperator(operator),
		Value:    value,
	}, nil
}
