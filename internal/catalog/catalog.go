// Package catalog provides the static, process-constant chart-type registry
// and its read-only discovery queries. The registry is built once at package
// initialization and never mutated afterward — no lock is required because
// there is no shared mutable state, only a shared immutable one (§5).
package catalog

import "github.com/slidegrove/analytics-engine/internal/model"

// entries is the immutable catalog, keyed by chart type id. Built once in
// init(); never written to again.
var entries map[model.ChartType]model.ChartTypeSpec

// order preserves catalog-declaration order for deterministic listings.
var order []model.ChartType

func register(spec model.ChartTypeSpec) {
	entries[spec.ID] = spec
	order = append(order, spec.ID)
}

func init() {
	entries = make(map[model.ChartType]model.ChartTypeSpec, 20)
	order = make([]model.ChartType, 0, 20)

	register(model.ChartTypeSpec{
		ID: model.ChartLine, Name: "Line Chart",
		Description:             "Trend of a single series across ordered categories.",
		Library:                 model.LibraryChartJS,
		SupportedLayouts:        []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints:               2, MaxPoints: 50,
		OptimalRangeDescription: "4-12 points for clearest trend reading",
		UseCases:                []string{"revenue_over_time", "time series trends"},
		DataRequirements:        model.DataRequirements{Fields: []string{"label", "value"}, ValidationRules: []string{"values must be finite", "labels unique"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartArea, Name: "Area Chart",
		Description: "Line chart with the area beneath the curve filled.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "4-12 points",
		UseCases:         []string{"cumulative trends"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartAreaStacked, Name: "Stacked Area Chart",
		Description: "Multiple series stacked atop one another over ordered categories.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "2-6 series, 4-12 points each",
		UseCases:         []string{"multi_metric_comparison"},
		DataRequirements: model.DataRequirements{Fields: []string{"labels", "datasets"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartBarVertical, Name: "Vertical Bar Chart",
		Description: "Categorical comparison of a single series.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "3-10 categories",
		UseCases:         []string{"quarterly_comparison", "yoy_growth"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartBarHorizontal, Name: "Horizontal Bar Chart",
		Description: "Categorical comparison, best for long category labels.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "3-15 categories",
		UseCases:         []string{"category_ranking"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartBarGrouped, Name: "Grouped Bar Chart",
		Description: "Multiple series as side-by-side bars per category.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "2-5 series",
		UseCases:         []string{"multi_metric_comparison"},
		DataRequirements: model.DataRequirements{Fields: []string{"labels", "datasets"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartBarStacked, Name: "Stacked Bar Chart",
		Description: "Multiple series stacked per category.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "2-5 series",
		UseCases:         []string{"multi_metric_comparison"},
		DataRequirements: model.DataRequirements{Fields: []string{"labels", "datasets"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartPie, Name: "Pie Chart",
		Description: "Proportional share of a whole.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 12, OptimalRangeDescription: "3-6 slices",
		UseCases:         []string{"market_share"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartDoughnut, Name: "Doughnut Chart",
		Description: "Pie chart variant with a hollow center, suited for a headline metric.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 12, OptimalRangeDescription: "3-6 slices",
		UseCases:         []string{"kpi_metrics"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartScatter, Name: "Scatter Plot",
		Description: "Unconnected x/y points revealing correlation.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "5-30 points",
		UseCases:         []string{"correlation_analysis"},
		DataRequirements: model.DataRequirements{Fields: []string{"x", "y", "label"}, ValidationRules: []string{"labels preserved verbatim on each point"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartBubble, Name: "Bubble Chart",
		Description: "Scatter plot with a third dimension encoded as point radius.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "4-20 points",
		UseCases:         []string{"multidimensional_analysis"},
		DataRequirements: model.DataRequirements{Fields: []string{"x", "y", "r", "label"}, ValidationRules: []string{"radius scaled into [8,40]"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartRadar, Name: "Radar Chart",
		Description: "Multi-metric comparison on radial axes.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03},
		MinPoints: 3, MaxPoints: 12, OptimalRangeDescription: "3-8 metrics",
		UseCases:         []string{"multi_metric_comparison"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}, ValidationRules: []string{"re-keyed into a single non-empty dataset"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartPolarArea, Name: "Polar Area Chart",
		Description: "Pie-like chart with equal angles and radius encoding value.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 3, MaxPoints: 10, OptimalRangeDescription: "3-8 categories",
		UseCases:         []string{"category_ranking"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartWaterfall, Name: "Waterfall Chart",
		Description: "Sequential cumulative increments/decrements.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 30, OptimalRangeDescription: "4-10 steps",
		UseCases:         []string{"yoy_growth"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartMixed, Name: "Mixed Chart",
		Description: "Bar and line series combined on one chart.",
		Library:     model.LibraryChartJS, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "2-4 series",
		UseCases:         []string{"multi_metric_comparison"},
		DataRequirements: model.DataRequirements{Fields: []string{"labels", "datasets"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartTreemap, Name: "Treemap",
		Description: "Nested rectangles sized by value.",
		Library:     model.LibraryApexCharts, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "5-30 segments",
		UseCases:         []string{"category_ranking"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "value"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartHeatmap, Name: "Heatmap",
		Description: "Color-encoded value grid over two categorical axes.",
		Library:     model.LibraryApexCharts, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "up to 10x10 grid",
		UseCases:         []string{"correlation_analysis", "multidimensional_analysis"},
		DataRequirements: model.DataRequirements{Fields: []string{"x_labels", "y_labels", "values"}, ValidationRules: []string{"row lengths equal |x_labels|", "row count equals |y_labels|"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartBoxplot, Name: "Box Plot",
		Description: "Five-number-summary distribution comparison.",
		Library:     model.LibraryApexCharts, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 20, OptimalRangeDescription: "2-10 groups",
		UseCases:         []string{"category_ranking"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "min", "q1", "median", "q3", "max"}, ValidationRules: []string{"min <= q1 <= median <= q3 <= max"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartCandlestick, Name: "Candlestick Chart",
		Description: "Financial open/high/low/close series.",
		Library:     model.LibraryApexCharts, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "10-30 bars",
		UseCases:         []string{"revenue_over_time"},
		DataRequirements: model.DataRequirements{Fields: []string{"label", "o", "h", "l", "c"}, ValidationRules: []string{"l <= min(o,c) <= max(o,c) <= h"}},
	})
	register(model.ChartTypeSpec{
		ID: model.ChartSankey, Name: "Sankey Diagram",
		Description: "Weighted flow between named nodes.",
		Library:     model.LibraryApexCharts, SupportedLayouts: []model.Layout{model.LayoutL02, model.LayoutL03},
		MinPoints: 2, MaxPoints: 50, OptimalRangeDescription: "3-15 links",
		UseCases:         []string{"multidimensional_analysis"},
		DataRequirements: model.DataRequirements{Fields: []string{"nodes", "links"}, ValidationRules: []string{"links reference declared node ids"}},
	})
}

// All returns every catalog entry in declaration order. Pure projection; no I/O.
func All() []model.ChartTypeSpec {
	out := make([]model.ChartTypeSpec, 0, len(order))
	for _, id := range order {
		out = append(out, entries[id])
	}
	return out
}

// ByID returns the catalog entry for id, or (zero, false) if id is not
// registered.
func ByID(id model.ChartType) (model.ChartTypeSpec, bool) {
	spec, ok := entries[id]
	return spec, ok
}

// ByLibrary returns every catalog entry backed by the given library, in
// declaration order.
func ByLibrary(lib model.ChartLibrary) []model.ChartTypeSpec {
	out := make([]model.ChartTypeSpec, 0, len(order))
	for _, id := range order {
		if entries[id].Library == lib {
			out = append(out, entries[id])
		}
	}
	return out
}

// ByLayout returns every catalog entry that supports the given layout, in
// declaration order.
func ByLayout(l model.Layout) []model.ChartTypeSpec {
	out := make([]model.ChartTypeSpec, 0, len(order))
	for _, id := range order {
		if entries[id].SupportsLayout(l) {
			out = append(out, entries[id])
		}
	}
	return out
}

// Summary returns aggregate catalog counts: total entries and entries per
// library, used by the GET /api/v1/chart-types `summary` field.
func Summary() map[string]int {
	out := map[string]int{"total": len(order)}
	for _, id := range order {
		out[string(entries[id].Library)]++
	}
	return out
}
