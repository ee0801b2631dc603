package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearDefinition() *WorkflowDefinition {
	return &WorkflowDefinition{
		ID:   "wf-1",
		Name: "Linear",
		Nodes: []*WorkflowNode{
			{ID: "a", Type: NodeTypeStart},
			{ID: "b", Type: NodeTypeStatusChange, Config: map[string]any{"targetStatus": "confirmed"}},
			{ID: "c", Type: NodeTypeEnd},
		},
		Connections: []*Connection{
			{ID: "c1", SourceID: "a", TargetID: "b"},
			{ID: "c2", SourceID: "b", TargetID: "c"},
		},
	}
}

func TestStartNode(t *testing.T) {
	def := linearDefinition()

	start, ok := def.StartNode()
	require.True(t, ok)
	assert.Equal(t, "a", start.ID)
}

func TestStartNodeAmbiguous(t *testing.T) {
	def := linearDefinition()
	// second node with no incoming connection
	def.Nodes = append(def.Nodes, &WorkflowNode{ID: "orphan", Type: NodeTypeStart})

	_, ok := def.StartNode()
	assert.False(t, ok)
}

func TestStartNodeMissing(t *testing.T) {
	def := linearDefinition()
	// close the graph into a cycle, leaving no entry point
	def.Connections = append(def.Connections, &Connection{ID: "c3", SourceID: "c", TargetID: "a"})

	_, ok := def.StartNode()
	assert.False(t, ok)
}

func TestConnectionsFromPreservesOrder(t *testing.T) {
	def := &WorkflowDefinition{
		Connections: []*Connection{
			{ID: "c1", SourceID: "gate", TargetID: "x", Label: "Approved"},
			{ID: "c2", SourceID: "gate", TargetID: "y", Label: "Rejected"},
			{ID: "c3", SourceID: "other", TargetID: "z"},
		},
	}

	conns := def.ConnectionsFrom("gate")
	require.Len(t, conns, 2)
	assert.Equal(t, "c1", conns[0].ID)
	assert.Equal(t, "c2", conns[1].ID)
}

func TestCloneIsDeep(t *testing.T) {
	def := linearDefinition()
	clone := def.Clone()

	clone.Nodes[1].Config["targetStatus"] = "rejected"
	clone.Connections[0].TargetID = "elsewhere"

	assert.Equal(t, "confirmed", def.Nodes[1].Config["targetStatus"])
	assert.Equal(t, "b", def.Connections[0].TargetID)
}

func TestMatchesBranch(t *testing.T) {
	labeled := &Connection{Label: "Approved"}
	assert.True(t, labeled.MatchesBranch("Approved"))
	assert.True(t, labeled.MatchesBranch("approved"))
	assert.False(t, labeled.MatchesBranch("Rejected"))

	conditional := &Connection{Label: "> $500", Condition: "true"}
	assert.True(t, conditional.MatchesBranch("true"))
	assert.False(t, conditional.MatchesBranch("false"))

	unlabeled := &Connection{}
	assert.False(t, unlabeled.MatchesBranch("Approved"))
	assert.False(t, unlabeled.MatchesBranch(""))
}
