// Package resolve maps a validated request's AnalyticsType (and optional
// explicit ChartType override) to a concrete ChartType. Resolution fails only
// for an explicit chart_type that is unregistered or unusable with the
// request's layout (INVALID_CHART_TYPE); otherwise an unresolvable case
// degrades to bar_vertical and emits a warning
// log rather than leaving the caller without a chart, since silent
// if/elif-ladder defaults to bar charts are exactly the bug class the
// original implementation suffered from and the spec requires dispatch to
// be exhaustive and logged, never silent (§9).
package resolve

import (
	"strings"

	"github.com/slidegrove/analytics-engine/internal/catalog"
	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/model"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// canonicalTable is the authoritative AnalyticsType -> ChartType mapping from
// §4.2. Implementers must reproduce it exactly; it is covered by a test that
// walks AllAnalyticsTypes and asserts no entry is missing.
var canonicalTable = map[model.AnalyticsType]model.ChartType{
	model.AnalyticsRevenueOverTime:          model.ChartLine,
	model.AnalyticsQuarterlyComparison:      model.ChartBarVertical,
	model.AnalyticsMarketShare:              model.ChartPie,
	model.AnalyticsYoYGrowth:                model.ChartBarVertical,
	model.AnalyticsKPIMetrics:               model.ChartDoughnut,
	model.AnalyticsCategoryRanking:          model.ChartBarHorizontal,
	model.AnalyticsCorrelationAnalysis:      model.ChartScatter,
	model.AnalyticsMultidimensionalAnalysis: model.ChartBubble,
	model.AnalyticsMultiMetricComparison:    model.ChartRadar,
}

// keywordTable is consulted only when both chart_type and analytics_type
// fail to name a usable chart type directly (never reached in practice
// today, since analytics_type is required and closed — kept for future
// narrative-only entry points per §4.2's "infer from narrative keywords"
// clause, and exercised directly by its own tests).
var keywordTable = []struct {
	keyword string
	chart   model.ChartType
}{
	{"trend", model.ChartLine},
	{"over time", model.ChartLine},
	{"growth", model.ChartBarVertical},
	{"share", model.ChartPie},
	{"proportion", model.ChartDoughnut},
	{"rank", model.ChartBarHorizontal},
	{"correlat", model.ChartScatter},
	{"multidimensional", model.ChartBubble},
	{"compare metrics", model.ChartRadar},
}

// defaultChartType is the last-resort fallback, always accompanied by a
// logged warning (never silent).
const defaultChartType = model.ChartBarVertical

// Result is the outcome of resolving a request to a concrete chart type.
type Result struct {
	ChartType model.ChartType
	Spec      model.ChartTypeSpec
}

// Resolve determines the ChartType for req. Precedence: (1) an explicit,
// catalog-valid chart_type override wins outright; (2) the canonical
// analytics_type table; (3) narrative keyword inference; (4) defaultChartType
// with a logged warning. log may be nil, in which case warnings are dropped
// — callers that care about the fallback path should always pass a Logger.
func Resolve(req *model.AnalyticsRequest, log logging.Logger) (Result, *apperrors.AppError) {
	if req.ChartType != "" {
		spec, ok := catalog.ByID(req.ChartType)
		if !ok {
			compatible := catalog.ByLayout(req.Layout)
			ids := make([]model.ChartType, 0, len(compatible))
			for _, s := range compatible {
				ids = append(ids, s.ID)
			}
			return Result{}, apperrors.ValidationError(apperrors.CodeInvalidChartType, "chart_type",
				"chart_type \""+string(req.ChartType)+"\" is not registered or not usable with layout "+string(req.Layout),
				"choose one of the chart types compatible with the requested layout").
				WithDetail("compatible", ids)
		}
		if !spec.SupportsLayout(req.Layout) {
			return Result{}, apperrors.ValidationError(apperrors.CodeInvalidChartType, "chart_type",
				"chart_type \""+string(req.ChartType)+"\" does not support layout "+string(req.Layout),
				"choose a chart type compatible with the requested layout")
		}
		return Result{ChartType: spec.ID, Spec: spec}, nil
	}

	if ct, ok := canonicalTable[req.AnalyticsType]; ok {
		spec, specOK := catalog.ByID(ct)
		if specOK {
			return Result{ChartType: ct, Spec: spec}, nil
		}
	}

	if ct, ok := inferFromNarrative(req.Narrative); ok {
		if spec, specOK := catalog.ByID(ct); specOK {
			logWarn(log, "resolved chart type from narrative keyword inference", req)
			return Result{ChartType: ct, Spec: spec}, nil
		}
	}

	spec, _ := catalog.ByID(defaultChartType)
	logWarn(log, "no analytics_type/chart_type match; defaulting to bar_vertical", req)
	return Result{ChartType: defaultChartType, Spec: spec}, nil
}

func inferFromNarrative(narrative string) (model.ChartType, bool) {
	lower := strings.ToLower(narrative)
	for _, entry := range keywordTable {
		if strings.Contains(lower, entry.keyword) {
			return entry.chart, true
		}
	}
	return "", false
}

func logWarn(log logging.Logger, msg string, req *model.AnalyticsRequest) {
	if log == nil {
		return
	}
	log.Warn(msg,
		logging.String("presentation_id", req.PresentationID),
		logging.String("slide_id", req.SlideID),
		logging.String("analytics_type", string(req.AnalyticsType)),
	)
}
