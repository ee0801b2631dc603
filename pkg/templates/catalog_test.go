package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataflow/strataflow/pkg/models"
)

func TestCatalogNames(t *testing.T) {
	catalog := NewCatalog()

	assert.Equal(t, []string{
		"Simple Booking Approval",
		"Move Request with Multi-Level Approval",
		"Maintenance Deposit Review",
	}, catalog.Names())
}

func TestCatalogByName(t *testing.T) {
	catalog := NewCatalog()

	template, ok := catalog.ByName("Simple Booking Approval")
	require.True(t, ok)
	assert.Equal(t, models.CategoryBooking, template.Category)

	_, ok = catalog.ByName("Nonexistent")
	assert.False(t, ok)
}

func TestTemplatesAreWellFormed(t *testing.T) {
	catalog := NewCatalog()

	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			template, ok := catalog.ByName(name)
			require.True(t, ok)

			start, ok := template.StartNode()
			require.True(t, ok, "template needs a unique start node")
			assert.Equal(t, models.NodeTypeStart, start.Type)

			hasEnd := false

			for _, node := range template.Nodes {
				if node.Type == models.NodeTypeEnd {
					hasEnd = true
				}

				// every non-end node must have a way forward
				if node.Type != models.NodeTypeEnd {
					assert.NotEmpty(t, template.ConnectionsFrom(node.ID),
						"node %s has no outgoing connection", node.ID)
				}

				// connections must reference existing nodes
				for _, conn := range template.ConnectionsFrom(node.ID) {
					assert.NotNil(t, template.Node(conn.TargetID),
						"connection %s targets unknown node %s", conn.ID, conn.TargetID)
				}
			}

			assert.True(t, hasEnd, "template needs an end node")
		})
	}
}

func TestApprovalGatesCarryBothBranches(t *testing.T) {
	catalog := NewCatalog()

	for _, name := range catalog.Names() {
		template, _ := catalog.ByName(name)

		for _, node := range template.Nodes {
			if node.Type != models.NodeTypeApproval {
				continue
			}

			conns := template.ConnectionsFrom(node.ID)

			approved, rejected := false, false

			for _, conn := range conns {
				if conn.MatchesBranch("Approved") {
					approved = true
				}

				if conn.MatchesBranch("Rejected") {
					rejected = true
				}
			}

			assert.True(t, approved, "%s: approval node %s has no Approved branch", name, node.ID)
			assert.True(t, rejected, "%s: approval node %s has no Rejected branch", name, node.ID)
		}
	}
}

func TestMaintenanceDepositPredicate(t *testing.T) {
	catalog := NewCatalog()

	template, ok := catalog.ByName("Maintenance Deposit Review")
	require.True(t, ok)

	condition := template.Node("deposit-check")
	require.NotNil(t, condition)

	predicate, err := condition.Predicate()
	require.NoError(t, err)
	assert.Equal(t, "depositAmount", predicate.Field)
	assert.Equal(t, models.OperatorGreaterThan, predicate.Operator)

	conns := template.ConnectionsFrom("deposit-check")
	require.Len(t, conns, 2)
	assert.True(t, conns[0].MatchesBranch("true"))
	assert.Equal(t, "> $500", conns[0].Label)
	assert.True(t, conns[1].MatchesBranch("false"))
}
