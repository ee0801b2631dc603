// Package registry maps node types to their handlers and holds the JSON
// schemas node configs are validated against when definitions are saved.
package registry

import (
	"log/slog"

	"github.com/strataflow/strataflow/pkg/models"
	"github.com/strataflow/strataflow/pkg/protocol"
)

type Registry struct {
	logger   *slog.Logger
	handlers map[models.NodeType]protocol.NodeHandler
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger,
		handlers: make(map[models.NodeType]protocol.NodeHandler),
	}
}

// RegisterHandler installs a handler for its node type, replacing any
// previous registration.
func (r *Registry) RegisterHandler(handler protocol.NodeHandler) {
	r.handlers[handler.Type()] = handler
}

// HandlerFor resolves the handler for a node type.
func (r *Registry) HandlerFor(nodeType models.NodeType) (protocol.NodeHandler, bool) {
	handler, ok := r.handlers[nodeType]

	return handler, ok
}

// RegisteredTypes returns the node types with an installed handler.
func (r *Registry) RegisteredTypes() []models.NodeType {
	types := make([]models.NodeType, 0, len(r.handlers))
	for nodeType := range r.handlers {
		types = append(types, nodeType)
	}

	return types
}
