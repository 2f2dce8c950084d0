package engine

import "github.com/plotkit-org/plotkit/schema"

// ============================================================================
// ENGINE TYPES — Roles, chart type specs, bindings, verdicts
// ============================================================================

// Role names a slot a chart type requires, with its required column type
// and whether the matcher may leave it unbound.
type Role struct {
	Name     string            `json:"name"` // "x", "y", "group"
	Type     schema.ColumnType `json:"type"`
	Optional bool              `json:"optional,omitempty"`
}

// Role slot names shared by every chart type.
const (
	RoleX     = "x"
	RoleY     = "y"
	RoleGroup = "group"
)

// ChartTypeSpec describes one supported chart type: its id, a display
// label, and the ordered roles it requires. Immutable for the process
// lifetime; exposed verbatim to callers via ChartTypes.
type ChartTypeSpec struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Roles []Role `json:"roles"`
}

// Binding assigns dataset columns to a chart type's roles.
// Empty string means unbound. X may be IndexColumn for implicit row order.
//
// A Binding is only valid against the dataset snapshot it was suggested
// for; after the dataset changes it must be re-validated, not reused.
type Binding struct {
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Group string `json:"group,omitempty"`
}

// IndexColumn is the X binding for implicit row-order (line/area charts
// without an explicit x column).
const IndexColumn = "index"

func (b Binding) roleColumn(role string) string {
	switch role {
	case RoleX:
		return b.X
	case RoleY:
		return b.Y
	case RoleGroup:
		return b.Group
	}
	return ""
}

func (b *Binding) setRole(role, column string) {
	switch role {
	case RoleX:
		b.X = column
	case RoleY:
		b.Y = column
	case RoleGroup:
		b.Group = column
	}
}

// CompatibilityResult is the matcher's verdict for one
// (columns, chart type) evaluation. Transient — never persisted.
type CompatibilityResult struct {
	Compatible bool    `json:"compatible"`
	Reason     string  `json:"reason"`
	Suggested  Binding `json:"suggestedBinding"`
}
