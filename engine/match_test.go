package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// MATCHER TESTS
// ============================================================================

func cat(name string) schema.Column {
	return schema.Column{Name: name, Type: schema.Categorical}
}

func num(name string) schema.Column {
	return schema.Column{Name: name, Type: schema.Numeric}
}

func TestMatchBarChart(t *testing.T) {
	result := Match("bar", []schema.Column{cat("Region"), num("Sales")})

	require.True(t, result.Compatible)
	assert.Equal(t, "matched 1 categorical column and 1 numeric column", result.Reason)
	assert.Equal(t, Binding{X: "Region", Y: "Sales"}, result.Suggested)
}

func TestMatchScatterNeedsTwoNumerics(t *testing.T) {
	result := Match("scatter", []schema.Column{cat("Region"), num("Sales")})

	require.False(t, result.Compatible)
	assert.Equal(t, "requires 2 numeric columns, found 1", result.Reason)
	// Partial suggestion still fills what it can.
	assert.Equal(t, "Sales", result.Suggested.X)
	assert.Empty(t, result.Suggested.Y)
}

func TestMatchHeatmapBinding(t *testing.T) {
	columns := []schema.Column{cat("Region"), cat("Segment"), num("Sales")}
	result := Match("heatmap", columns)

	require.True(t, result.Compatible)
	assert.Equal(t, Binding{X: "Region", Y: "Segment", Group: "Sales"}, result.Suggested)
}

func TestMatchUnknownChartType(t *testing.T) {
	result := Match("spider", []schema.Column{num("Sales")})

	require.False(t, result.Compatible)
	assert.Equal(t, "unknown chart type", result.Reason)
	assert.Equal(t, Binding{}, result.Suggested)
}

func TestMatchNoColumnReuse(t *testing.T) {
	// Two numeric roles must consume two distinct columns.
	result := Match("scatter", []schema.Column{num("Height"), num("Weight")})

	require.True(t, result.Compatible)
	assert.Equal(t, "Height", result.Suggested.X)
	assert.Equal(t, "Weight", result.Suggested.Y)
}

func TestMatchFirstAvailableWins(t *testing.T) {
	// Dataset order decides between equally eligible columns.
	result := Match("bar", []schema.Column{num("Cost"), cat("City"), cat("Country"), num("Revenue")})

	require.True(t, result.Compatible)
	assert.Equal(t, Binding{X: "City", Y: "Cost"}, result.Suggested)
}

func TestMatchOptionalRoleLeftUnbound(t *testing.T) {
	result := Match("boxplot", []schema.Column{num("Duration")})

	require.True(t, result.Compatible)
	assert.Equal(t, "matched 1 numeric column", result.Reason)
	assert.Equal(t, Binding{Y: "Duration"}, result.Suggested)
}

func TestMatchOptionalRoleFilledFromSpares(t *testing.T) {
	result := Match("boxplot", []schema.Column{cat("Team"), num("Duration")})

	require.True(t, result.Compatible)
	assert.Equal(t, Binding{Y: "Duration", Group: "Team"}, result.Suggested)
}

func TestMatchRequiredBeatsOptional(t *testing.T) {
	// stacked_bar needs two categoricals required; the single spare
	// categorical must not be stolen by any optional role elsewhere.
	result := Match("stacked_bar", []schema.Column{cat("Quarter"), cat("Product"), num("Units")})

	require.True(t, result.Compatible)
	assert.Equal(t, Binding{X: "Quarter", Group: "Product", Y: "Units"}, result.Suggested)
}

func TestMatchMultipleShortfalls(t *testing.T) {
	result := Match("heatmap", []schema.Column{num("OnlyNumber")})

	require.False(t, result.Compatible)
	assert.Equal(t, "requires 2 categorical columns, found 0", result.Reason)
}

func TestMatchDeterministic(t *testing.T) {
	columns := []schema.Column{cat("A"), cat("B"), num("C"), num("D")}
	first := Match("heatmap", columns)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Match("heatmap", columns))
	}
}

func TestMatchMonotonicInColumnSupply(t *testing.T) {
	// Adding columns never breaks an existing compatibility.
	base := []schema.Column{cat("Region"), num("Sales")}
	extended := append(append([]schema.Column{}, base...), num("Cost"), cat("Segment"), num("Units"))

	for _, spec := range ChartTypes() {
		if !Match(spec.ID, base).Compatible {
			continue
		}
		assert.True(t, Match(spec.ID, extended).Compatible,
			"%s lost compatibility after adding columns", spec.ID)
	}
}

func TestMatchSuggestedBindingNamesRealColumns(t *testing.T) {
	columns := []schema.Column{cat("Region"), cat("Segment"), num("Sales"), num("Cost")}
	byName := map[string]schema.ColumnType{}
	for _, c := range columns {
		byName[c.Name] = c.Type
	}

	for _, spec := range ChartTypes() {
		result := Match(spec.ID, columns)
		if !result.Compatible {
			continue
		}
		for _, role := range spec.Roles {
			bound := result.Suggested
			var col string
			switch role.Name {
			case RoleX:
				col = bound.X
			case RoleY:
				col = bound.Y
			case RoleGroup:
				col = bound.Group
			}
			if col == "" {
				assert.True(t, role.Optional, "%s left required role %s unbound", spec.ID, role.Name)
				continue
			}
			require.Contains(t, byName, col, "%s bound unknown column %q", spec.ID, col)
			assert.Equal(t, role.Type, byName[col], "%s bound %q to a wrong-typed role", spec.ID, col)
		}
	}
}

func TestMatchEmptyColumns(t *testing.T) {
	result := Match("bar", nil)

	require.False(t, result.Compatible)
	assert.Equal(t, "requires 1 categorical column, found 0; requires 1 numeric column, found 0", result.Reason)
}
