package engine

import "github.com/plotkit-org/plotkit/schema"

// ============================================================================
// CHART TYPE REGISTRY — Static catalog of supported chart types
// ============================================================================
// One descriptor per chart type: the required roles plus the draw
// strategy. Dispatch is by lookup — adding a chart type means registering
// a descriptor here, not editing branch chains elsewhere.
//
// The catalog is read-only at run time. Registration order is the order
// ChartTypes exposes to callers and the order suggestion endpoints
// evaluate.
// ============================================================================

// descriptor pairs a chart type's public spec with its draw strategy.
// The strategy receives extracted role data and a drawing surface config;
// aggregation (where the chart type implies one) happens inside the
// strategy via the aggregate helpers.
type descriptor struct {
	spec ChartTypeSpec
	draw drawFunc
}

type drawFunc func(rc *renderContext) ([]byte, error)

var registry = []descriptor{
	{
		spec: ChartTypeSpec{ID: "bar", Label: "Bar Chart", Roles: []Role{
			{Name: RoleX, Type: schema.Categorical},
			{Name: RoleY, Type: schema.Numeric},
		}},
		draw: drawBar,
	},
	{
		spec: ChartTypeSpec{ID: "line", Label: "Line Chart", Roles: []Role{
			{Name: RoleY, Type: schema.Numeric},
			{Name: RoleX, Type: schema.Categorical, Optional: true},
		}},
		draw: drawLine,
	},
	{
		spec: ChartTypeSpec{ID: "scatter", Label: "Scatter Plot", Roles: []Role{
			{Name: RoleX, Type: schema.Numeric},
			{Name: RoleY, Type: schema.Numeric},
		}},
		draw: drawScatter,
	},
	{
		spec: ChartTypeSpec{ID: "histogram", Label: "Histogram", Roles: []Role{
			{Name: RoleX, Type: schema.Numeric},
		}},
		draw: drawHistogram,
	},
	{
		spec: ChartTypeSpec{ID: "boxplot", Label: "Box Plot", Roles: []Role{
			{Name: RoleY, Type: schema.Numeric},
			{Name: RoleGroup, Type: schema.Categorical, Optional: true},
		}},
		draw: drawBoxPlot,
	},
	{
		spec: ChartTypeSpec{ID: "heatmap", Label: "Heatmap", Roles: []Role{
			{Name: RoleX, Type: schema.Categorical},
			{Name: RoleY, Type: schema.Categorical},
			{Name: RoleGroup, Type: schema.Numeric}, // aggregated cell value
		}},
		draw: drawHeatmap,
	},
	{
		spec: ChartTypeSpec{ID: "pie", Label: "Pie Chart", Roles: []Role{
			{Name: RoleX, Type: schema.Categorical},
			{Name: RoleY, Type: schema.Numeric},
		}},
		draw: drawPie,
	},
	{
		spec: ChartTypeSpec{ID: "violin", Label: "Violin Plot", Roles: []Role{
			{Name: RoleY, Type: schema.Numeric},
			{Name: RoleGroup, Type: schema.Categorical, Optional: true},
		}},
		draw: drawViolin,
	},
	{
		spec: ChartTypeSpec{ID: "area", Label: "Area Chart", Roles: []Role{
			{Name: RoleY, Type: schema.Numeric},
			{Name: RoleX, Type: schema.Categorical, Optional: true},
		}},
		draw: drawArea,
	},
	{
		spec: ChartTypeSpec{ID: "stacked_bar", Label: "Stacked Bar Chart", Roles: []Role{
			{Name: RoleX, Type: schema.Categorical},
			{Name: RoleGroup, Type: schema.Categorical},
			{Name: RoleY, Type: schema.Numeric},
		}},
		draw: drawStackedBar,
	},
}

// ChartTypes returns the full catalog in registration order.
func ChartTypes() []ChartTypeSpec {
	specs := make([]ChartTypeSpec, len(registry))
	for i, d := range registry {
		specs[i] = d.spec
	}
	return specs
}

// lookup finds a descriptor by chart type id.
func lookup(id string) (*descriptor, bool) {
	for i := range registry {
		if registry[i].spec.ID == id {
			return &registry[i], true
		}
	}
	return nil, false
}
