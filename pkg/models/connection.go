package models

import "strings"

// Connection is a directed edge between two nodes. Label is the branch name
// shown in the designer (e.g. "Approved", "> $500"); Condition carries the
// machine-matched branch outcome for condition nodes ("true"/"false").
type Connection struct {
	ID        string `json:"id"`
	SourceID  string `json:"source"           validate:"required"`
	TargetID  string `json:"target"           validate:"required"`
	Label     string `json:"label,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// MatchesBranch reports whether this connection carries the given branch
// outcome. The condition expression is compared exactly, the label
// case-insensitively.
func (c *Connection) MatchesBranch(branch string) bool {
	if c.Condition != "" && c.Condition == branch {
		return true
	}

	return c.Label != "" && strings.EqualFold(c.Label, branch)
}
