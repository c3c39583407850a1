// Package validate implements the strongly-typed request validator: it
// accepts an AnalyticsRequest and produces either a normalized request (with
// string fields trimmed) or a structured validation AppError. No generator
// downstream of this package ever runs against an unvalidated request.
package validate

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"

	"github.com/slidegrove/analytics-engine/internal/model"
)

const (
	maxLabelLength    = 100
	maxNarrativeLength = 2000
	minDataPoints     = 2
	maxDataPoints     = 50
)

// Validate normalizes a shallow copy of req (trimming string fields) and
// checks every rule in the request validator's contract. It returns the
// normalized copy on success, or the first AppError encountered on failure — the
// validator fails fast rather than accumulating every violation, matching
// the single-error ErrorEnvelope the API contract returns.
func Validate(req *model.AnalyticsRequest) (*model.AnalyticsRequest, *apperrors.AppError) {
	if req == nil {
		return nil, apperrors.ValidationError(apperrors.CodeEmptyField, "", "request body is required",
			"send a JSON body matching the AnalyticsRequest schema")
	}

	normalized := *req
	if err := validateRequiredFields(&normalized); err != nil {
		return nil, err
	}
	if err := validateLayout(normalized.Layout); err != nil {
		return nil, err
	}
	if err := validateAnalyticsType(normalized.AnalyticsType); err != nil {
		return nil, err
	}
	if err := validateData(&normalized); err != nil {
		return nil, err
	}

	return &normalized, nil
}

func validateRequiredFields(req *model.AnalyticsRequest) *apperrors.AppError {
	req.PresentationID = strings.TrimSpace(req.PresentationID)
	if req.PresentationID == "" {
		return emptyField("presentation_id")
	}

	req.SlideID = strings.TrimSpace(req.SlideID)
	if req.SlideID == "" {
		return emptyField("slide_id")
	}

	if req.SlideNumber < 1 {
		return apperrors.ValidationError(apperrors.CodeEmptyField, "slide_number",
			"slide_number must be >= 1", "set slide_number to a positive integer")
	}

	req.Narrative = strings.TrimSpace(req.Narrative)
	if req.Narrative == "" {
		return emptyField("narrative")
	}
	if len(req.Narrative) > maxNarrativeLength {
		return apperrors.ValidationError(apperrors.CodeInvalidLabels, "narrative",
			fmt.Sprintf("narrative exceeds %d characters", maxNarrativeLength),
			fmt.Sprintf("shorten narrative to at most %d characters", maxNarrativeLength))
	}

	if req.Context != nil {
		req.Context.SlideTitle = strings.TrimSpace(req.Context.SlideTitle)
		req.Context.Subtitle = strings.TrimSpace(req.Context.Subtitle)
		req.Context.Audience = strings.TrimSpace(req.Context.Audience)
		req.Context.PresentationName = strings.TrimSpace(req.Context.PresentationName)
	}

	return nil
}

func emptyField(field string) *apperrors.AppError {
	return apperrors.ValidationError(apperrors.CodeEmptyField, field,
		fmt.Sprintf("%s must not be empty", field),
		fmt.Sprintf("provide a non-empty value for %s", field))
}

func validateLayout(l model.Layout) *apperrors.AppError {
	if !l.Valid() {
		return apperrors.ValidationError(apperrors.CodeInvalidLayout, "layout",
			fmt.Sprintf("layout %q is not one of L01, L02, L03", l),
			"set layout to one of L01, L02, L03").
			WithDetail("allowed", []model.Layout{model.LayoutL01, model.LayoutL02, model.LayoutL03})
	}
	return nil
}

func validateAnalyticsType(at model.AnalyticsType) *apperrors.AppError {
	if !at.Valid() {
		return apperrors.ValidationError(apperrors.CodeInvalidAnalyticsType, "analytics_type",
			fmt.Sprintf("analytics_type %q is not a recognized value", at),
			"set analytics_type to one of the allowed values").
			WithDetail("allowed", model.AllAnalyticsTypes)
	}
	return nil
}

// validateData dispatches to the schema-specific validator matching whichever
// RequestData variant is populated, after the shared range/finiteness checks.
func validateData(req *model.AnalyticsRequest) *apperrors.AppError {
	data := req.Data

	n := data.Len()
	if n < minDataPoints || n > maxDataPoints {
		return apperrors.ValidationError(apperrors.CodeDataRangeError, "data",
			fmt.Sprintf("data must contain between %d and %d points, got %d", minDataPoints, maxDataPoints, n),
			fmt.Sprintf("supply between %d and %d data points", minDataPoints, maxDataPoints))
	}

	switch {
	case len(data.Points) > 0:
		return validatePoints(data.Points)
	case len(data.Boxplot) > 0:
		return validateBoxplot(data.Boxplot)
	case len(data.OHLC) > 0:
		return validateOHLC(data.OHLC)
	case data.Matrix != nil:
		return validateMatrix(data.Matrix)
	case data.Flow != nil:
		return validateFlow(data.Flow)
	default:
		return apperrors.ValidationError(apperrors.CodeEmptyField, "data",
			"data must not be empty", "supply a data payload matching one of the documented shapes")
	}
}

func validateLabel(label string) *apperrors.AppError {
	if strings.TrimSpace(label) == "" {
		return apperrors.ValidationError(apperrors.CodeInvalidLabels, "data",
			"label must not be blank or whitespace-only", "give every data point a non-blank label")
	}
	if len(label) > maxLabelLength {
		return apperrors.ValidationError(apperrors.CodeInvalidLabels, "data",
			fmt.Sprintf("label %q exceeds %d characters", label, maxLabelLength),
			fmt.Sprintf("shorten labels to at most %d characters", maxLabelLength))
	}
	return nil
}

func validateFinite(field string, v float64) *apperrors.AppError {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.ValidationError(apperrors.CodeInvalidValues, field,
			fmt.Sprintf("%s must be a finite number, got %v", field, v),
			"remove NaN/Infinity values from the data payload")
	}
	return nil
}

func validatePoints(points []model.ChartDataPoint) *apperrors.AppError {
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		if err := validateLabel(p.Label); err != nil {
			return err
		}
		if err := validateFinite("value", p.Value); err != nil {
			return err
		}
		if seen[p.Label] {
			return apperrors.ValidationError(apperrors.CodeDuplicateLabels, "data",
				fmt.Sprintf("duplicate label %q", p.Label),
				"ensure every label within a request is unique")
		}
		seen[p.Label] = true
	}
	return nil
}

func validateBoxplot(rows []model.BoxplotRow) *apperrors.AppError {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if err := validateLabel(r.Label); err != nil {
			return err
		}
		if seen[r.Label] {
			return apperrors.ValidationError(apperrors.CodeDuplicateLabels, "data",
				fmt.Sprintf("duplicate label %q", r.Label), "ensure every label within a request is unique")
		}
		seen[r.Label] = true

		for _, v := range []float64{r.Min, r.Q1, r.Median, r.Q3, r.Max} {
			if err := validateFinite("data", v); err != nil {
				return err
			}
		}
		if !(r.Min <= r.Q1 && r.Q1 <= r.Median && r.Median <= r.Q3 && r.Q3 <= r.Max) {
			return apperrors.ValidationError(apperrors.CodeInvalidValues, "data",
				fmt.Sprintf("boxplot row %q must satisfy min <= q1 <= median <= q3 <= max", r.Label),
				"order the five-number summary as min, q1, median, q3, max")
		}
	}
	return nil
}

func validateOHLC(rows []model.OHLCRow) *apperrors.AppError {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if err := validateLabel(r.Label); err != nil {
			return err
		}
		if seen[r.Label] {
			return apperrors.ValidationError(apperrors.CodeDuplicateLabels, "data",
				fmt.Sprintf("duplicate label %q", r.Label), "ensure every label within a request is unique")
		}
		seen[r.Label] = true

		for _, v := range []float64{r.Open, r.High, r.Low, r.Close} {
			if err := validateFinite("data", v); err != nil {
				return err
			}
		}
		lo, hi := math.Min(r.Open, r.Close), math.Max(r.Open, r.Close)
		if !(r.Low <= lo && lo <= hi && hi <= r.High) {
			return apperrors.ValidationError(apperrors.CodeInvalidValues, "data",
				fmt.Sprintf("OHLC row %q must satisfy l <= min(o,c) <= max(o,c) <= h", r.Label),
				"check the open/high/low/close ordering for each bar")
		}
	}
	return nil
}

func validateMatrix(m *model.MatrixPayload) *apperrors.AppError {
	if len(m.Values) != len(m.YLabels) {
		return apperrors.ValidationError(apperrors.CodeMismatchedLengths, "data",
			fmt.Sprintf("matrix has %d rows but %d y_labels", len(m.Values), len(m.YLabels)),
			"ensure the row count equals len(y_labels)")
	}
	for i, row := range m.Values {
		if len(row) != len(m.XLabels) {
			return apperrors.ValidationError(apperrors.CodeMismatchedLengths, "data",
				fmt.Sprintf("matrix row %d has %d values but %d x_labels", i, len(row), len(m.XLabels)),
				"ensure every row length equals len(x_labels)")
		}
		for _, v := range row {
			if err := validateFinite("data", v); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFlow(f *model.FlowPayload) *apperrors.AppError {
	nodeIDs := make(map[string]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return apperrors.ValidationError(apperrors.CodeEmptyField, "data",
				"flow node id must not be empty", "give every node a non-empty id")
		}
		nodeIDs[n.ID] = true
	}
	for _, l := range f.Links {
		if !nodeIDs[l.Source] || !nodeIDs[l.Target] {
			return apperrors.ValidationError(apperrors.CodeInvalidValues, "data",
				fmt.Sprintf("link %s -> %s references an undeclared node", l.Source, l.Target),
				"ensure every link's source and target reference a declared node id")
		}
		if err := validateFinite("value", l.Value); err != nil {
			return err
		}
	}
	return nil
}
