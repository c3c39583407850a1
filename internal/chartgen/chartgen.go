// Package chartgen emits the self-contained HTML fragment for a single
// chart: a fixed-size container, a Chart.js canvas or ApexCharts mount
// element, an IIFE-wrapped initializer that registers the chart instance in
// a browser-global registry keyed by chart_id, and — when requested — an
// editor overlay. Every emitter guarantee (G1-G9, spec §4.3) is enforced
// here, never left to the caller.
package chartgen

import (
	"encoding/json"
	"fmt"

	"github.com/slidegrove/analytics-engine/internal/model"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// EditorConfig controls whether the fragment embeds the interactive editor
// overlay described in spec §4.3.1, and where its save handler posts to.
type EditorConfig struct {
	Enabled               bool
	PresentationID        string
	ChartDataStoreBaseURL string
}

// Request bundles every input a single-fragment generation call needs.
type Request struct {
	Shaped     model.ShapedChartData
	ChartType  model.ChartType
	Spec       model.ChartTypeSpec
	Dimensions model.Dimensions
	Theme      model.Theme
	ChartID    string
	Editor     EditorConfig
}

// Generate produces the ChartArtifact for req. It never falls through to a
// different chart type on failure — the sole documented exception (an
// unresolved chart_type string defaulting to bar_vertical) happens upstream
// in internal/resolve, not here.
func Generate(req Request) (model.ChartArtifact, *apperrors.AppError) {
	if req.ChartID == "" {
		return model.ChartArtifact{}, chartFailure("chart_id is required")
	}
	if req.Shaped.Kind == "" {
		return model.ChartArtifact{}, chartFailure("shaped chart data is required")
	}

	palette := paletteFor(req.Theme)

	var fragment string
	var err *apperrors.AppError
	switch req.Spec.Library {
	case model.LibraryChartJS:
		fragment, err = renderChartJS(req, palette)
	case model.LibraryApexCharts:
		fragment, err = renderApexCharts(req, palette)
	default:
		return model.ChartArtifact{}, chartFailure(fmt.Sprintf("unsupported chart library %q", req.Spec.Library))
	}
	if err != nil {
		return model.ChartArtifact{}, err
	}

	return model.ChartArtifact{
		ChartID:      req.ChartID,
		HTMLFragment: fragment,
		Library:      req.Spec.Library,
		ChartType:    req.ChartType,
		Dimensions:   req.Dimensions,
	}, nil
}

func chartFailure(message string) *apperrors.AppError {
	return apperrors.ProcessingError(apperrors.CodeChartGenerationFailed, message)
}

// toJSON marshals v for embedding directly in a <script> body. Centralizing
// this here means every dynamic value the generator writes into JavaScript
// goes through encoding/json rather than ad hoc string concatenation (G9).
func toJSON(v interface{}) (string, *apperrors.AppError) {
	b, jsonErr := json.Marshal(v)
	if jsonErr != nil {
		return "", apperrors.ProcessingError(apperrors.CodeChartGenerationFailed, "failed to marshal chart data: "+jsonErr.Error())
	}
	return string(b), nil
}
