package models

import "time"

// WorkflowCategory classifies what kind of entity a workflow operates on.
type WorkflowCategory string

const (
	CategoryBooking     WorkflowCategory = "booking"
	CategoryMoveRequest WorkflowCategory = "move_request"
	CategoryMaintenance WorkflowCategory = "maintenance"
)

// WorkflowDefinition is the static graph describing a workflow: a set of
// typed nodes joined by directed, optionally labeled connections. Exactly
// one node has no incoming connection (the start node) and the graph
// reachable from it contains at least one end node. Structural problems are
// surfaced lazily, the first time the engine walks the graph.
type WorkflowDefinition struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"        validate:"required,min=3"`
	Description string           `json:"description"`
	Category    WorkflowCategory `json:"category"    validate:"required,oneof=booking move_request maintenance"`
	Version     int              `json:"version"`
	IsActive    bool             `json:"is_active"`
	Nodes       []*WorkflowNode  `json:"nodes"`
	Connections []*Connection    `json:"connections"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Node returns the node with the given ID, or nil.
func (d *WorkflowDefinition) Node(id string) *WorkflowNode {
	for _, node := range d.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// StartNode returns the unique node with no incoming connection. The second
// return value is false when no such node exists or more than one does.
func (d *WorkflowDefinition) StartNode() (*WorkflowNode, bool) {
	incoming := make(map[string]int, len(d.Nodes))
	for _, conn := range d.Connections {
		incoming[conn.TargetID]++
	}

	var start *WorkflowNode

	for _, node := range d.Nodes {
		if incoming[node.ID] == 0 {
			if start != nil {
				return nil, false
			}

			start = node
		}
	}

	return start, start != nil
}

// ConnectionsFrom returns all connections leaving the given node, in
// definition order.
func (d *WorkflowDefinition) ConnectionsFrom(nodeID string) []*Connection {
	var out []*Connection

	for _, conn := range d.Connections {
		if conn.SourceID == nodeID {
			out = append(out, conn)
		}
	}

	return out
}

// Clone deep-copies the definition's graph. Used by template instantiation
// so edits to the copy never leak back into the catalog.
func (d *WorkflowDefinition) Clone() *WorkflowDefinition {
	clone := *d

	clone.Nodes = make([]*WorkflowNode, 0, len(d.Nodes))
	for _, node := range d.Nodes {
		clone.Nodes = append(clone.Nodes, node.Clone())
	}

	clone.Connections = make([]*Connection, 0, len(d.Connections))
	for _, conn := range d.Connections {
		connCopy := *conn
		clone.Connections = append(clone.Connections, &connCopy)
	}

	return &clone
}
