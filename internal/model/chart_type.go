package model

// ChartType is the visual form the answer to an analytics question takes.
// It is a closed set of at least twenty ids, split between chart-library
// native types and plugin-backed types.
type ChartType string

const (
	ChartLine         ChartType = "line"
	ChartArea         ChartType = "area"
	ChartAreaStacked  ChartType = "area_stacked"
	ChartBarVertical  ChartType = "bar_vertical"
	ChartBarHorizontal ChartType = "bar_horizontal"
	ChartBarGrouped   ChartType = "bar_grouped"
	ChartBarStacked   ChartType = "bar_stacked"
	ChartPie          ChartType = "pie"
	ChartDoughnut     ChartType = "doughnut"
	ChartScatter      ChartType = "scatter"
	ChartBubble       ChartType = "bubble"
	ChartRadar        ChartType = "radar"
	ChartPolarArea    ChartType = "polar_area"
	ChartWaterfall    ChartType = "waterfall"
	ChartMixed        ChartType = "mixed"

	// Plugin-backed types requiring an extra script load in the fragment (G7).
	ChartTreemap     ChartType = "treemap"
	ChartHeatmap     ChartType = "heatmap"
	ChartBoxplot     ChartType = "boxplot"
	ChartCandlestick ChartType = "candlestick"
	ChartSankey      ChartType = "sankey"
)

// ChartLibrary identifies which JS charting library renders a ChartType.
type ChartLibrary string

const (
	LibraryChartJS    ChartLibrary = "chartjs"
	LibraryApexCharts ChartLibrary = "apexcharts"
)

// ObjectDataChartTypes are the chart types whose shaped data points are
// structured objects ({x,y[,r],label}) rather than bare numbers. Datalabels
// are forcibly disabled for these (G5/I7); value-label rendering elsewhere
// is forcibly enabled.
var ObjectDataChartTypes = map[ChartType]bool{
	ChartScatter: true,
	ChartBubble:  true,
}

// IsObjectData reports whether ct's shaped data points are structured
// objects rather than bare numeric primitives.
func (ct ChartType) IsObjectData() bool {
	return ObjectDataChartTypes[ct]
}

// PluginBackedChartTypes are the chart types that require one or more extra
// plugin script loads in the emitted fragment (G7).
var PluginBackedChartTypes = map[ChartType]bool{
	ChartTreemap:     true,
	ChartHeatmap:     true,
	ChartBoxplot:     true,
	ChartCandlestick: true,
	ChartSankey:      true,
}

// IsPluginBacked reports whether ct requires a plugin loader in its fragment.
func (ct ChartType) IsPluginBacked() bool {
	return PluginBackedChartTypes[ct]
}
