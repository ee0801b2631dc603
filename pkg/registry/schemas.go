package registry

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/strataflow/strataflow/pkg/models"
)

// nodeConfigSchemas holds the JSON schema each node type's config must
// satisfy. Start and end nodes carry no config.
var nodeConfigSchemas = map[models.NodeType]map[string]any{
	models.NodeTypeStatusChange: {
		"type":     "object",
		"required": []any{"targetStatus"},
		"properties": map[string]any{
			"targetStatus": map[string]any{
				"type": "string",
				"enum": []any{"pending", "confirmed", "rejected", "in-progress", "completed", "cancelled"},
			},
		},
	},
	models.NodeTypeApproval: {
		"type":     "object",
		"required": []any{"approvalLevel"},
		"properties": map[string]any{
			"approvalLevel":     map[string]any{"type": "string", "minLength": 1},
			"requiredApprovers": map[string]any{"type": "integer", "minimum": 1},
		},
	},
	models.NodeTypeNotification: {
		"type":     "object",
		"required": []any{"recipients", "template"},
		"properties": map[string]any{
			"recipients": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"template": map[string]any{"type": "string", "minLength": 1},
		},
	},
	models.NodeTypeCondition: {
		"type":     "object",
		"required": []any{"condition"},
		"properties": map[string]any{
			"condition": map[string]any{
				"type":     "object",
				"required": []any{"field", "operator", "value"},
				"properties": map[string]any{
					"field": map[string]any{"type": "string", "minLength": 1},
					"operator": map[string]any{
						"type": "string",
						"enum": []any{"equals", "not_equals", "greater_than", "less_than", "contains"},
					},
				},
			},
		},
	},
	models.NodeTypeAction: {
		"type":     "object",
		"required": []any{"actionType"},
		"properties": map[string]any{
			"actionType":   map[string]any{"type": "string", "minLength": 1},
			"actionConfig": map[string]any{"type": "object"},
		},
	},
}

// ValidateNodeConfig checks a node's config against its type schema. Node
// types without a schema always pass.
func (r *Registry) ValidateNodeConfig(node *models.WorkflowNode) error {
	schema, ok := nodeConfigSchemas[node.Type]
	if !ok {
		return nil
	}

	config := node.Config
	if config == nil {
		config = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	dataLoader := gojsonschema.NewGoLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("node %s: schema validation failed: %w", node.ID, err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}

		return fmt.Errorf("node %s config invalid: %s", node.ID, strings.Join(problems, "; "))
	}

	return nil
}
