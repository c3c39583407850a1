// Package shape transforms a validated AnalyticsRequest's data payload into
// the ShapedChartData variant the resolved ChartType's family requires. Each
// function is a pure transform: same input, same output, no I/O — the
// per-chart-family payload shapes are defined in internal/model/shaped.go
// and mirrored exactly from spec §4.2.
package shape

import (
	"fmt"

	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"

	"github.com/slidegrove/analytics-engine/internal/model"
)

const (
	minBubbleRadius = 8.0
	maxBubbleRadius = 40.0
)

// Shape transforms req.Data into the ShapedChartData variant appropriate for
// chartType. formatHint is read from req.Context when present and otherwise
// defaults to FormatNumber. seriesLabel is the caller-derived label (the
// slide's title, per spec.md's single-dataset scenario) used to key the lone
// dataset single-series-payload chart families emit — it is ignored by chart
// families that don't group data into a labeled dataset.
func Shape(data model.RequestData, chartType model.ChartType, formatHint model.FormatHint, seriesLabel string) (model.ShapedChartData, *apperrors.AppError) {
	if formatHint == "" {
		formatHint = model.FormatNumber
	}

	switch chartType {
	case model.ChartLine, model.ChartArea, model.ChartBarVertical, model.ChartBarHorizontal,
		model.ChartPie, model.ChartDoughnut, model.ChartPolarArea, model.ChartWaterfall, model.ChartTreemap:
		return shapeSingleSeries(data, formatHint)

	case model.ChartRadar:
		return shapeRadar(data, formatHint, seriesLabel)

	case model.ChartAreaStacked, model.ChartBarGrouped, model.ChartBarStacked, model.ChartMixed:
		return shapeMultiDataset(data, formatHint, seriesLabel)

	case model.ChartScatter:
		return shapePointSeries(data, false)

	case model.ChartBubble:
		return shapePointSeries(data, true)

	case model.ChartHeatmap:
		return shapeMatrix(data)

	case model.ChartBoxplot:
		return shapeBoxplot(data)

	case model.ChartCandlestick:
		return shapeOHLC(data)

	case model.ChartSankey:
		return shapeFlow(data)

	default:
		return model.ShapedChartData{}, apperrors.ProcessingError(apperrors.CodeChartGenerationFailed,
			fmt.Sprintf("no shaper registered for chart type %q", chartType))
	}
}

func shapeSingleSeries(data model.RequestData, hint model.FormatHint) (model.ShapedChartData, *apperrors.AppError) {
	if len(data.Points) == 0 {
		return model.ShapedChartData{}, shapeFailure("single-series shaper requires label/value points")
	}
	labels := make([]string, len(data.Points))
	values := make([]float64, len(data.Points))
	for i, p := range data.Points {
		labels[i] = p.Label
		values[i] = p.Value
	}
	return model.ShapedChartData{
		Kind:         model.ShapeSingleSeries,
		SingleSeries: &model.SingleSeries{Labels: labels, Values: values, FormatHint: hint},
	}, nil
}

// shapeRadar re-keys caller-provided [{label,value}] points into a single
// non-empty dataset labeled with the slide's title (spec.md's
// multi_metric_comparison scenario: `datasets=[{label:<slide_title>,...}]`).
// The historical bug this guards against emitted an empty `datasets` slice
// when the re-keying step was skipped; Datasets here is always exactly one
// element long when Points is non-empty.
func shapeRadar(data model.RequestData, hint model.FormatHint, seriesLabel string) (model.ShapedChartData, *apperrors.AppError) {
	if len(data.Points) == 0 {
		return model.ShapedChartData{}, shapeFailure("radar shaper requires label/value points")
	}
	labels := make([]string, len(data.Points))
	values := make([]float64, len(data.Points))
	for i, p := range data.Points {
		labels[i] = p.Label
		values[i] = p.Value
	}
	return model.ShapedChartData{
		Kind: model.ShapeMultiDataset,
		MultiDataset: &model.MultiDataset{
			Labels:     labels,
			Datasets:   []model.Dataset{{Label: seriesLabel, Data: values}},
			FormatHint: hint,
		},
	}, nil
}

// shapeMultiDataset handles the chart families whose request payload is still
// a flat []ChartDataPoint but whose shaped form groups everything into one
// dataset, labeled with the caller-derived seriesLabel (today's request
// schema carries a single series for these types; a future multi-series
// request extension would populate additional datasets here without
// changing downstream emitters).
func shapeMultiDataset(data model.RequestData, hint model.FormatHint, seriesLabel string) (model.ShapedChartData, *apperrors.AppError) {
	if len(data.Points) == 0 {
		return model.ShapedChartData{}, shapeFailure("multi-dataset shaper requires label/value points")
	}
	labels := make([]string, len(data.Points))
	values := make([]float64, len(data.Points))
	for i, p := range data.Points {
		labels[i] = p.Label
		values[i] = p.Value
	}
	return model.ShapedChartData{
		Kind: model.ShapeMultiDataset,
		MultiDataset: &model.MultiDataset{
			Labels:     labels,
			Datasets:   []model.Dataset{{Label: seriesLabel, Data: values}},
			FormatHint: hint,
		},
	}, nil
}

// shapePointSeries produces scatter (bubble=false) or bubble (bubble=true)
// point data. Every point's Label field is the caller's original label,
// preserved verbatim (I5); X is the point's ordinal position.
func shapePointSeries(data model.RequestData, bubble bool) (model.ShapedChartData, *apperrors.AppError) {
	if len(data.Points) == 0 {
		return model.ShapedChartData{}, shapeFailure("point-series shaper requires label/value points")
	}

	if !bubble {
		points := make([]model.Point2D, len(data.Points))
		for i, p := range data.Points {
			points[i] = model.Point2D{X: float64(i), Y: p.Value, Label: p.Label}
		}
		return model.ShapedChartData{
			Kind: model.ShapePointSeries,
			PointSeries: &model.PointSeries{
				Datasets: []model.PointDataset{{Label: "Series 1", Data: points}},
			},
		}, nil
	}

	radii := scaleBubbleRadii(data.Points)
	points := make([]model.Point3D, len(data.Points))
	for i, p := range data.Points {
		points[i] = model.Point3D{X: float64(i), Y: p.Value, R: radii[i], Label: p.Label}
	}
	return model.ShapedChartData{
		Kind: model.ShapePointSeries,
		PointSeries: &model.PointSeries{
			Datasets: []model.PointDataset{{Label: "Series 1", Data: points}},
		},
	}, nil
}

// scaleBubbleRadii linearly scales values into [minBubbleRadius,
// maxBubbleRadius]. When every value is equal, every radius is
// minBubbleRadius (I6).
func scaleBubbleRadii(points []model.ChartDataPoint) []float64 {
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}

	radii := make([]float64, len(points))
	if hi == lo {
		for i := range radii {
			radii[i] = minBubbleRadius
		}
		return radii
	}
	for i, p := range points {
		frac := (p.Value - lo) / (hi - lo)
		radii[i] = minBubbleRadius + frac*(maxBubbleRadius-minBubbleRadius)
	}
	return radii
}

func shapeMatrix(data model.RequestData) (model.ShapedChartData, *apperrors.AppError) {
	if data.Matrix == nil {
		return model.ShapedChartData{}, shapeFailure("matrix shaper requires a matrix payload")
	}
	return model.ShapedChartData{
		Kind: model.ShapeMatrix,
		Matrix: &model.Matrix{
			XLabels: data.Matrix.XLabels,
			YLabels: data.Matrix.YLabels,
			Values:  data.Matrix.Values,
		},
	}, nil
}

func shapeBoxplot(data model.RequestData) (model.ShapedChartData, *apperrors.AppError) {
	if len(data.Boxplot) == 0 {
		return model.ShapedChartData{}, shapeFailure("boxplot shaper requires five-number summary rows")
	}
	labels := make([]string, len(data.Boxplot))
	rows := make([]model.BoxplotFive, len(data.Boxplot))
	for i, r := range data.Boxplot {
		labels[i] = r.Label
		rows[i] = model.BoxplotFive{r.Min, r.Q1, r.Median, r.Q3, r.Max}
	}
	return model.ShapedChartData{
		Kind: model.ShapeBoxplot,
		Boxplot: &model.Boxplot{
			Labels:   labels,
			Datasets: []model.Dataset{{Label: "Distribution", Data: rows}},
		},
	}, nil
}

func shapeOHLC(data model.RequestData) (model.ShapedChartData, *apperrors.AppError) {
	if len(data.OHLC) == 0 {
		return model.ShapedChartData{}, shapeFailure("OHLC shaper requires open/high/low/close rows")
	}
	labels := make([]string, len(data.OHLC))
	bars := make([]model.OHLCBar, len(data.OHLC))
	for i, r := range data.OHLC {
		labels[i] = r.Label
		bars[i] = model.OHLCBar{Open: r.Open, High: r.High, Low: r.Low, Close: r.Close}
	}
	return model.ShapedChartData{
		Kind: model.ShapeOHLC,
		OHLC: &model.OHLC{
			Labels:   labels,
			Datasets: []model.Dataset{{Label: "Price", Data: bars}},
		},
	}, nil
}

func shapeFlow(data model.RequestData) (model.ShapedChartData, *apperrors.AppError) {
	if data.Flow == nil {
		return model.ShapedChartData{}, shapeFailure("sankey shaper requires a flow payload")
	}
	nodes := make([]model.FlowNode, len(data.Flow.Nodes))
	copy(nodes, data.Flow.Nodes)

	links := make([]model.FlowLink, len(data.Flow.Links))
	copy(links, data.Flow.Links)

	return model.ShapedChartData{
		Kind: model.ShapeFlow,
		Flow: &model.Flow{Nodes: nodes, Links: links},
	}, nil
}

func shapeFailure(message string) *apperrors.AppError {
	return apperrors.ProcessingError(apperrors.CodeChartGenerationFailed, message)
}
