package httpapi

import (
	"encoding/json"

	"github.com/slidegrove/analytics-engine/internal/catalog"
	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/model"
	"github.com/slidegrove/analytics-engine/internal/resolve"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// wireRequest is the JSON wire shape POSTed to
// /api/v1/analytics/{layout}/{analytics_type}. Data is kept as a raw message
// because its shape depends on the resolved chart type's data family —
// model.RequestData is a tagged union the wire format has no single
// representation for (its own Data field is `json:"-"` for exactly this
// reason).
type wireRequest struct {
	PresentationID string                 `json:"presentation_id"`
	SlideID        string                 `json:"slide_id"`
	SlideNumber    int                    `json:"slide_number"`
	Narrative      string                 `json:"narrative"`
	ChartType      model.ChartType        `json:"chart_type,omitempty"`
	Context        *model.RequestContext  `json:"context,omitempty"`
	Constraints    map[string]interface{} `json:"constraints,omitempty"`
	Data           json.RawMessage        `json:"data"`
}

// decodeAnalyticsRequest parses body into an AnalyticsRequest, binding
// analyticsType and layout from the URL path per spec §6's
// `POST /api/v1/analytics/{layout}/{analytics_type}` route, then decoding
// the `data` payload into the RequestData variant the resolved chart type's
// family requires.
func decodeAnalyticsRequest(body []byte, layout model.Layout, analyticsType model.AnalyticsType, log logging.Logger) (*model.AnalyticsRequest, *apperrors.AppError) {
	var wire wireRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, apperrors.ValidationError(apperrors.CodeInvalidValues, "data",
			"request body is not valid JSON: "+err.Error(), "submit a well-formed JSON body")
	}

	req := &model.AnalyticsRequest{
		PresentationID: wire.PresentationID,
		SlideID:        wire.SlideID,
		SlideNumber:    wire.SlideNumber,
		Narrative:      wire.Narrative,
		ChartType:      wire.ChartType,
		Context:        wire.Context,
		Constraints:    wire.Constraints,
		AnalyticsType:  analyticsType,
		Layout:         layout,
	}

	resolved, rerr := resolve.Resolve(req, log)
	if rerr != nil {
		return nil, rerr
	}

	data, derr := decodeRequestData(wire.Data, resolved.ChartType)
	if derr != nil {
		return nil, derr
	}
	req.Data = data
	return req, nil
}

// dataFamily groups chart types by the shape their request-side `data`
// payload takes, mirroring internal/shape.Shape's own grouping.
type dataFamily int

const (
	familyPoints dataFamily = iota
	familyMatrix
	familyBoxplot
	familyOHLC
	familyFlow
)

func familyFor(chartType model.ChartType) dataFamily {
	switch chartType {
	case model.ChartHeatmap:
		return familyMatrix
	case model.ChartBoxplot:
		return familyBoxplot
	case model.ChartCandlestick:
		return familyOHLC
	case model.ChartSankey:
		return familyFlow
	default:
		return familyPoints
	}
}

func decodeRequestData(raw json.RawMessage, chartType model.ChartType) (model.RequestData, *apperrors.AppError) {
	if len(raw) == 0 {
		return model.RequestData{}, apperrors.ValidationError(apperrors.CodeInvalidDataPoints, "data",
			"data is required", "supply the data payload matching the resolved chart type's family")
	}

	switch familyFor(chartType) {
	case familyMatrix:
		var payload model.MatrixPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return model.RequestData{}, dataUnmarshalError(chartType, err)
		}
		return model.RequestData{Matrix: &payload}, nil

	case familyBoxplot:
		var rows []model.BoxplotRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return model.RequestData{}, dataUnmarshalError(chartType, err)
		}
		return model.RequestData{Boxplot: rows}, nil

	case familyOHLC:
		var rows []model.OHLCRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return model.RequestData{}, dataUnmarshalError(chartType, err)
		}
		return model.RequestData{OHLC: rows}, nil

	case familyFlow:
		var payload model.FlowPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return model.RequestData{}, dataUnmarshalError(chartType, err)
		}
		return model.RequestData{Flow: &payload}, nil

	default:
		var points []model.ChartDataPoint
		if err := json.Unmarshal(raw, &points); err != nil {
			return model.RequestData{}, dataUnmarshalError(chartType, err)
		}
		return model.RequestData{Points: points}, nil
	}
}

func dataUnmarshalError(chartType model.ChartType, err error) *apperrors.AppError {
	spec, _ := catalog.ByID(chartType)
	return apperrors.ValidationError(apperrors.CodeInvalidDataPoints, "data",
		"data does not match the expected shape for chart type "+string(chartType)+": "+err.Error(),
		"expected fields: "+joinFields(spec.DataRequirements.Fields))
}

func joinFields(fields []string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ", "
		}
		out += f
	}
	return out
}
