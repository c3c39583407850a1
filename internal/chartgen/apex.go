package chartgen

import (
	"html/template"
	"strings"

	"github.com/slidegrove/analytics-engine/internal/model"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// apexChartTypeNames maps a model.ChartType to the ApexCharts `chart.type`
// string.
var apexChartTypeNames = map[model.ChartType]string{
	model.ChartTreemap:     "treemap",
	model.ChartHeatmap:     "heatmap",
	model.ChartBoxplot:     "boxPlot",
	model.ChartCandlestick: "candlestick",
	model.ChartSankey:      "rangeBar", // sankey nodes/links are rendered as a weighted rangeBar flow; ApexCharts has no native sankey type
}

// pluginLoaderFor returns the script tag(s) a plugin-backed chart type's
// fragment must include exactly once (G7). Every type in this package uses
// the same ApexCharts bundle; a future per-type plugin (e.g. a dedicated
// sankey renderer) would add an entry here without touching the emitters.
func pluginLoaderFor(ct model.ChartType) []string {
	if model.PluginBackedChartTypes[ct] {
		return []string{`<script src="https://cdn.jsdelivr.net/npm/apexcharts@3"></script>`}
	}
	return nil
}

var apexTemplate = template.Must(template.New("apex").Parse(`{{range .PluginScripts}}{{.}}
{{end}}<div style="width:{{.Width}}px;height:{{.Height}}px;background:white;padding:20px;box-sizing:border-box;position:relative;">
<div id="{{.ChartID}}"></div>
{{.EditorHTML}}
</div>
<script>
(function(){
  window.__chartInstances = window.__chartInstances || {};
  var options = {{.ConfigJSON}};
  var instance = new ApexCharts(document.getElementById("{{.ChartID}}"), options);
  instance.render();
  window.__chartInstances["{{.ChartID}}"] = instance;
  {{.EditorScript}}
})();
</script>
`))

type apexView struct {
	ChartID       string
	Width         int
	Height        int
	ConfigJSON    template.JS
	PluginScripts []template.HTML
	EditorHTML    template.HTML
	EditorScript  template.JS
}

func renderApexCharts(req Request, pal palette) (string, *apperrors.AppError) {
	typeName, ok := apexChartTypeNames[req.ChartType]
	if !ok {
		return "", chartFailure("chart type " + string(req.ChartType) + " has no apexcharts mapping")
	}

	config, err := buildApexConfig(req, pal, typeName)
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

	scripts := pluginLoaderFor(req.ChartType)
	htmlScripts := make([]template.HTML, len(scripts))
	for i, s := range scripts {
		htmlScripts[i] = template.HTML(s)
	}

	var sb strings.Builder
	view := apexView{
		ChartID:       req.ChartID,
		Width:         req.Dimensions.Width,
		Height:        req.Dimensions.Height,
		ConfigJSON:    template.JS(configJSON),
		PluginScripts: htmlScripts,
		EditorHTML:    editorHTML,
		EditorScript:  editorScript,
	}
	if tmplErr := apexTemplate.Execute(&sb, view); tmplErr != nil {
		return "", chartFailure("template execution failed: " + tmplErr.Error())
	}
	return sb.String(), nil
}

func buildApexConfig(req Request, pal palette, typeName string) (map[string]interface{}, *apperrors.AppError) {
	series, categories, err := apexSeries(req)
	if err != nil {
		return nil, err
	}

	config := map[string]interface{}{
		"chart": map[string]interface{}{
			"type":   typeName,
			"height": req.Dimensions.Height,
			"toolbar": map[string]interface{}{"show": false},
		},
		"series": series,
		"colors": pal.Colors,
		"legend": map[string]interface{}{"show": true},
		"tooltip": map[string]interface{}{"enabled": true},
		"dataLabels": map[string]interface{}{"enabled": true},
		"grid":       map[string]interface{}{"show": true},
	}
	if categories != nil {
		config["xaxis"] = map[string]interface{}{"categories": categories}
	}
	return config, nil
}

func apexSeries(req Request) (interface{}, []string, *apperrors.AppError) {
	switch req.Shaped.Kind {
	case model.ShapeSingleSeries: // treemap
		ss := req.Shaped.SingleSeries
		data := make([]map[string]interface{}, len(ss.Labels))
		for i, l := range ss.Labels {
			data[i] = map[string]interface{}{"x": l, "y": ss.Values[i]}
		}
		return []map[string]interface{}{{"data": data}}, nil, nil

	case model.ShapeMatrix: // heatmap
		m := req.Shaped.Matrix
		series := make([]map[string]interface{}, len(m.YLabels))
		for y, yLabel := range m.YLabels {
			data := make([]map[string]interface{}, len(m.XLabels))
			for x, xLabel := range m.XLabels {
				data[x] = map[string]interface{}{"x": xLabel, "y": m.Values[y][x]}
			}
			series[y] = map[string]interface{}{"name": yLabel, "data": data}
		}
		return series, nil, nil

	case model.ShapeBoxplot:
		bp := req.Shaped.Boxplot
		rows := bp.Datasets[0].Data.([]model.BoxplotFive)
		data := make([]map[string]interface{}, len(bp.Labels))
		for i, label := range bp.Labels {
			r := rows[i]
			data[i] = map[string]interface{}{"x": label, "y": []float64{r[0], r[1], r[2], r[3], r[4]}}
		}
		return []map[string]interface{}{{"data": data}}, nil, nil

	case model.ShapeOHLC:
		oh := req.Shaped.OHLC
		bars := oh.Datasets[0].Data.([]model.OHLCBar)
		data := make([]map[string]interface{}, len(oh.Labels))
		for i, label := range oh.Labels {
			b := bars[i]
			data[i] = map[string]interface{}{"x": label, "y": []float64{b.Open, b.High, b.Low, b.Close}}
		}
		return []map[string]interface{}{{"data": data}}, nil, nil

	case model.ShapeFlow:
		flow := req.Shaped.Flow
		data := make([]map[string]interface{}, len(flow.Links))
		for i, l := range flow.Links {
			data[i] = map[string]interface{}{"x": l.Source + " -> " + l.Target, "y": l.Value}
		}
		return []map[string]interface{}{{"data": data}}, nil, nil

	default:
		return nil, nil, chartFailure("shaped data kind " + string(req.Shaped.Kind) + " is not apexcharts-compatible")
	}
}
