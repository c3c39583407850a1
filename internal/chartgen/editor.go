package chartgen

import (
	"html/template"
	"strings"

	"github.com/slidegrove/analytics-engine/internal/model"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// editorColumns returns the table column headers for the given chart type's
// editor overlay (§4.3.1, P12). Misrouting a family's columns is a
// correctness bug, not a cosmetic one: a Label/Value editor over scatter
// data silently drops the Y value the caller actually edited.
func editorColumns(ct model.ChartType) []string {
	switch ct {
	case model.ChartScatter:
		return []string{"X", "Y"}
	case model.ChartBubble:
		return []string{"X", "Y", "Radius"}
	default:
		return []string{"Label", "Value"}
	}
}

var editorHTMLTemplate = template.Must(template.New("editor").Parse(`<button type="button" style="position:absolute;top:12px;right:12px;z-index:10;" data-editor-trigger="{{.ChartID}}">Edit</button>
<div data-editor-modal="{{.ChartID}}" style="display:none;position:absolute;top:0;left:0;width:100%;height:100%;background:rgba(255,255,255,0.98);z-index:20;">
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}<th></th></tr></thead>
<tbody data-editor-rows="{{.ChartID}}"></tbody>
</table>
<button type="button" data-editor-add-row="{{.ChartID}}">Add row</button>
<button type="button" data-editor-save="{{.ChartID}}">Save</button>
</div>
`))

type editorView struct {
	ChartID string
	Columns []string
}

// buildEditorOverlay returns the HTML markup and the initialization script
// for the editor overlay, or ("", "", nil) when the editor is disabled.
func buildEditorOverlay(req Request) (template.HTML, template.JS, *apperrors.AppError) {
	if !req.Editor.Enabled {
		return "", "", nil
	}

	var htmlBuf strings.Builder
	view := editorView{ChartID: req.ChartID, Columns: editorColumns(req.ChartType)}
	if err := editorHTMLTemplate.Execute(&htmlBuf, view); err != nil {
		return "", "", apperrors.ProcessingError(apperrors.CodeChartGenerationFailed, "editor template execution failed: "+err.Error())
	}

	configJSON, jsonErr := toJSON(map[string]interface{}{
		"chartId":              req.ChartID,
		"presentationId":       req.Editor.PresentationID,
		"chartDataStoreBaseURL": req.Editor.ChartDataStoreBaseURL,
		"columns":              view.Columns,
	})
	if jsonErr != nil {
		return "", "", jsonErr
	}

	script := `var editorConfig = ` + configJSON + `;
  function readEditorRows(chartId, columns){
    var body = document.querySelector('[data-editor-rows="' + chartId + '"]');
    var rows = body ? body.querySelectorAll("tr") : [];
    var out = [];
    for (var i = 0; i < rows.length; i++) {
      var cells = rows[i].querySelectorAll("input");
      var row = {};
      for (var c = 0; c < columns.length; c++) {
        row[columns[c].toLowerCase()] = cells[c] ? parseFloat(cells[c].value) || cells[c].value : null;
      }
      out.push(row);
    }
    return out;
  }
  function rebuildChartData(columns, payload, existingData){
    if (columns.length === 2 && columns[0] === "Label") {
      return {
        labels: payload.map(function(r){ return r.label; }),
        datasets: [{ label: existingData.datasets[0].label, data: payload.map(function(r){ return r.value; }) }]
      };
    }
    var points = payload.map(function(r){
      var p = { x: r.x, y: r.y, label: r.label };
      if (columns.length === 3) { p.r = r.radius; }
      return p;
    });
    return { datasets: [{ label: existingData.datasets[0].label, data: points }] };
  }
  (function initEditor(cfg, chart){
    var trigger = document.querySelector('[data-editor-trigger="' + cfg.chartId + '"]');
    var modal = document.querySelector('[data-editor-modal="' + cfg.chartId + '"]');
    if (!trigger || !modal) { return; }
    trigger.addEventListener("click", function(){ modal.style.display = modal.style.display === "none" ? "block" : "none"; });

    var saveBtn = document.querySelector('[data-editor-save="' + cfg.chartId + '"]');
    saveBtn.addEventListener("click", function(){
      var payload = readEditorRows(cfg.chartId, cfg.columns);
      chart.data = rebuildChartData(cfg.columns, payload, chart.data);
      chart.update();
      fetch(cfg.chartDataStoreBaseURL + "/chart-data", {
        method: "POST",
        headers: {"Content-Type": "application/json"},
        body: JSON.stringify({chart_id: cfg.chartId, presentation_id: cfg.presentationId, payload: payload})
      });
    });

    fetch(cfg.chartDataStoreBaseURL + "/chart-data?presentation_id=" + encodeURIComponent(cfg.presentationId) + "&chart_id=" + encodeURIComponent(cfg.chartId))
      .then(function(res){ return res.ok ? res.json() : null; })
      .then(function(saved){
        if (saved && saved.payload) {
          chart.data = rebuildChartData(cfg.columns, saved.payload, chart.data);
          chart.update();
        }
      })
      .catch(function(){});
  })(editorConfig, instance);`

	return template.HTML(htmlBuf.String()), template.JS(script), nil
}
