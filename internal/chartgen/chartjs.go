package chartgen

import (
	"html/template"
	"strings"

	"github.com/slidegrove/analytics-engine/internal/model"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// chartJSTypeNames maps a model.ChartType to the string Chart.js expects as
// `config.type`. Waterfall has no native Chart.js type; it is synthesized as
// a floating bar chart (each bar's data is a [start, end] pair) — still a
// "native" chart.js type per spec's classification, just with transformed
// data rather than a plugin.
var chartJSTypeNames = map[model.ChartType]string{
	model.ChartLine:         "line",
	model.ChartArea:         "line",
	model.ChartAreaStacked:  "line",
	model.ChartBarVertical:  "bar",
	model.ChartBarHorizontal: "bar",
	model.ChartBarGrouped:   "bar",
	model.ChartBarStacked:   "bar",
	model.ChartPie:          "pie",
	model.ChartDoughnut:     "doughnut",
	model.ChartScatter:      "scatter",
	model.ChartBubble:       "bubble",
	model.ChartRadar:        "radar",
	model.ChartPolarArea:    "polarArea",
	model.ChartWaterfall:    "bar",
	model.ChartMixed:        "bar",
}

var chartJSTemplate = template.Must(template.New("chartjs").Parse(`<div style="width:{{.Width}}px;height:{{.Height}}px;background:white;padding:20px;box-sizing:border-box;position:relative;">
<canvas id="{{.ChartID}}"></canvas>
{{.EditorHTML}}
</div>
<script>
(function(){
  window.__chartInstances = window.__chartInstances || {};
  var el = document.getElementById("{{.ChartID}}");
  var config = {{.ConfigJSON}};
  var instance = new Chart(el.getContext("2d"), config);
  window.__chartInstances["{{.ChartID}}"] = instance;
  {{.EditorScript}}
})();
</script>
`))

type chartJSView struct {
	ChartID      string
	Width        int
	Height       int
	ConfigJSON   template.JS
	EditorHTML   template.HTML
	EditorScript template.JS
}

func renderChartJS(req Request, pal palette) (string, *apperrors.AppError) {
	typeName, ok := chartJSTypeNames[req.ChartType]
	if !ok {
		return "", chartFailure("chart type " + string(req.ChartType) + " has no chart.js mapping")
	}

	config, err := buildChartJSConfig(req, pal, typeName)
	if err != nil {
		return "", err
	}
	configJSON, jsonErr := toJSON(config)
	if jsonErr != nil {
		return "", jsonErr
	}

	editorHTML, editorScript, err := buildEditorOverlay(req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	view := chartJSView{
		ChartID:      req.ChartID,
		Width:        req.Dimensions.Width,
		Height:       req.Dimensions.Height,
		ConfigJSON:   template.JS(configJSON),
		EditorHTML:   editorHTML,
		EditorScript: editorScript,
	}
	if tmplErr := chartJSTemplate.Execute(&sb, view); tmplErr != nil {
		return "", chartFailure("template execution failed: " + tmplErr.Error())
	}
	return sb.String(), nil
}

// buildChartJSConfig builds the Chart.js configuration object for req, then
// applies the enforcement pass (G4-G6) as the final step so no earlier
// construction step can be silently undone by caller-influenced merging.
func buildChartJSConfig(req Request, pal palette, typeName string) (map[string]interface{}, *apperrors.AppError) {
	datasets, labels, isObjectData, err := chartJSData(req, pal)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{"datasets": datasets}
	if labels != nil {
		data["labels"] = labels
	}

	options := baseOptions(pal)
	applyAxisTitles(options, req, typeName)
	applyIndexAxis(options, req.ChartType)
	applyStacking(options, req.ChartType)

	config := map[string]interface{}{
		"type":    typeName,
		"data":    data,
		"options": options,
	}

	enforceInvariants(config, req.ChartType, isObjectData)
	return config, nil
}

func chartJSData(req Request, pal palette) (datasets []map[string]interface{}, labels []string, isObjectData bool, err *apperrors.AppError) {
	switch req.Shaped.Kind {
	case model.ShapeSingleSeries:
		ss := req.Shaped.SingleSeries
		labels = ss.Labels
		ds := map[string]interface{}{
			"label":           "Series 1",
			"data":            singleSeriesData(req.ChartType, ss.Values),
			"backgroundColor": colorsFor(req.ChartType, pal, len(ss.Values)),
			"borderColor":     pal.Colors[0],
		}
		if req.ChartType == model.ChartArea || req.ChartType == model.ChartLine {
			ds["fill"] = req.ChartType == model.ChartArea
			ds["tension"] = 0.3
		}
		datasets = append(datasets, ds)
		return datasets, labels, false, nil

	case model.ShapeMultiDataset:
		md := req.Shaped.MultiDataset
		labels = md.Labels
		for i, d := range md.Datasets {
			datasets = append(datasets, map[string]interface{}{
				"label":           d.Label,
				"data":            d.Data,
				"backgroundColor": pal.Colors[i%len(pal.Colors)],
				"borderColor":     pal.Colors[i%len(pal.Colors)],
			})
		}
		return datasets, labels, false, nil

	case model.ShapePointSeries:
		for i, d := range req.Shaped.PointSeries.Datasets {
			datasets = append(datasets, map[string]interface{}{
				"label":           d.Label,
				"data":            d.Data,
				"backgroundColor": withOpacity(pal.Colors[i%len(pal.Colors)], objectDataOpacity(req.ChartType)),
				"pointRadius":     objectDataPointRadius(req.ChartType, d.Data),
			})
		}
		return datasets, nil, true, nil

	default:
		return nil, nil, false, chartFailure("shaped data kind " + string(req.Shaped.Kind) + " is not chart.js-compatible")
	}
}

// singleSeriesData transforms plain values into waterfall's [start,end]
// floating-bar pairs when the chart type is waterfall; otherwise returns the
// values unchanged.
func singleSeriesData(ct model.ChartType, values []float64) interface{} {
	if ct != model.ChartWaterfall {
		return values
	}
	pairs := make([][2]float64, len(values))
	running := 0.0
	for i, v := range values {
		pairs[i] = [2]float64{running, running + v}
		running += v
	}
	return pairs
}

func colorsFor(ct model.ChartType, pal palette, n int) interface{} {
	switch ct {
	case model.ChartPie, model.ChartDoughnut, model.ChartPolarArea:
		out := make([]string, n)
		for i := range out {
			out[i] = pal.Colors[i%len(pal.Colors)]
		}
		return out
	default:
		return pal.Colors[0]
	}
}

func objectDataOpacity(ct model.ChartType) float64 {
	if ct == model.ChartBubble {
		return 0.7
	}
	return 1.0
}

// objectDataPointRadius returns either a fixed minimum (scatter, G6) or the
// per-point radii already scaled by internal/shape (bubble).
func objectDataPointRadius(ct model.ChartType, data interface{}) interface{} {
	if ct == model.ChartBubble {
		points, ok := data.([]model.Point3D)
		if !ok {
			return 10
		}
		radii := make([]float64, len(points))
		for i, p := range points {
			radii[i] = p.R
		}
		return radii
	}
	return 10
}

// withOpacity converts a "#rrggbb" palette color into an "rgba(r,g,b,a)"
// string so object-data charts (G6: bubble opacity 0.7) can set transparency
// without the caller-supplied options layer overriding it after the fact.
func withOpacity(hexColor string, opacity float64) string {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) != 6 {
		return hexColor
	}
	r := hexByte(hexColor[0:2])
	g := hexByte(hexColor[2:4])
	b := hexByte(hexColor[4:6])
	return "rgba(" + itoa(r) + "," + itoa(g) + "," + itoa(b) + "," + ftoa(opacity) + ")"
}

func hexByte(s string) int {
	n := 0
	for _, c := range s {
		n *= 16
		switch {
		case c >= '0' && c <= '9':
			n += int(c - '0')
		case c >= 'a' && c <= 'f':
			n += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n += int(c-'A') + 10
		}
	}
	return n
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func ftoa(v float64) string {
	if v >= 1.0 {
		return "1"
	}
	if v <= 0 {
		return "0"
	}
	tenths := int(v*10 + 0.5)
	return "0." + itoa(tenths)
}

func baseOptions(pal palette) map[string]interface{} {
	return map[string]interface{}{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]interface{}{
			"legend": map[string]interface{}{
				"display": true,
				"labels":  map[string]interface{}{"color": pal.TextColor, "font": map[string]interface{}{"family": pal.FontFamily}},
			},
			"tooltip": map[string]interface{}{"enabled": true},
		},
		"scales": map[string]interface{}{},
	}
}

func applyAxisTitles(options map[string]interface{}, req Request, typeName string) {
	if typeName != "bar" && typeName != "line" && typeName != "scatter" && typeName != "bubble" {
		return
	}
	unitLabel := unitLabelFor(formatHintFor(req.Shaped))
	scales := options["scales"].(map[string]interface{})
	scales["x"] = map[string]interface{}{
		"display": true,
		"title":   map[string]interface{}{"display": true, "text": "Category"},
		"grid":    map[string]interface{}{"display": true},
	}
	scales["y"] = map[string]interface{}{
		"display": true,
		"title":   map[string]interface{}{"display": true, "text": unitLabel},
		"grid":    map[string]interface{}{"display": true},
	}
}

func formatHintFor(shaped model.ShapedChartData) model.FormatHint {
	if shaped.SingleSeries != nil {
		return shaped.SingleSeries.FormatHint
	}
	if shaped.MultiDataset != nil {
		return shaped.MultiDataset.FormatHint
	}
	return model.FormatNumber
}

func unitLabelFor(hint model.FormatHint) string {
	switch hint {
	case model.FormatCurrency:
		return "Amount"
	case model.FormatPercentage:
		return "Percentage"
	default:
		return "Value"
	}
}

func applyIndexAxis(options map[string]interface{}, ct model.ChartType) {
	if ct == model.ChartBarHorizontal {
		options["indexAxis"] = "y"
	}
}

func applyStacking(options map[string]interface{}, ct model.ChartType) {
	switch ct {
	case model.ChartBarStacked, model.ChartAreaStacked:
		scales, _ := options["scales"].(map[string]interface{})
		if scales == nil {
			scales = map[string]interface{}{}
			options["scales"] = scales
		}
		x, _ := scales["x"].(map[string]interface{})
		if x == nil {
			x = map[string]interface{}{}
		}
		x["stacked"] = true
		scales["x"] = x
		y, _ := scales["y"].(map[string]interface{})
		if y == nil {
			y = map[string]interface{}{}
		}
		y["stacked"] = true
		scales["y"] = y
	}
}

// enforceInvariants is the final pass applied after every other construction
// step: it re-enables legend/tooltip/axes/gridlines regardless of what any
// earlier step set, and forces datalabels on/off per G5. This ordering means
// a caller-influenced options merge earlier in the pipeline can never
// silently disable an invariant (§9's "mutation after merging" redesign).
func enforceInvariants(config map[string]interface{}, ct model.ChartType, isObjectData bool) {
	options, _ := config["options"].(map[string]interface{})
	if options == nil {
		options = map[string]interface{}{}
		config["options"] = options
	}
	plugins, _ := options["plugins"].(map[string]interface{})
	if plugins == nil {
		plugins = map[string]interface{}{}
		options["plugins"] = plugins
	}
	legend, _ := plugins["legend"].(map[string]interface{})
	if legend == nil {
		legend = map[string]interface{}{}
	}
	legend["display"] = true
	plugins["legend"] = legend

	tooltip, _ := plugins["tooltip"].(map[string]interface{})
	if tooltip == nil {
		tooltip = map[string]interface{}{}
	}
	tooltip["enabled"] = true
	plugins["tooltip"] = tooltip

	datalabels, _ := plugins["datalabels"].(map[string]interface{})
	if datalabels == nil {
		datalabels = map[string]interface{}{}
	}
	// G5: value-label rendering forced on for primitive-data charts, forced
	// off for object-data charts (scatter, bubble) to avoid rendering
	// "[object Object]".
	datalabels["display"] = !isObjectData && !ct.IsObjectData()
	plugins["datalabels"] = datalabels

	if scales, ok := options["scales"].(map[string]interface{}); ok {
		for _, axisName := range []string{"x", "y"} {
			axis, _ := scales[axisName].(map[string]interface{})
			if axis == nil {
				continue
			}
			axis["display"] = true
			grid, _ := axis["grid"].(map[string]interface{})
			if grid == nil {
				grid = map[string]interface{}{}
			}
			grid["display"] = true
			axis["grid"] = grid
			scales[axisName] = axis
		}
	}
}
