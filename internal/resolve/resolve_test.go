package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/model"
	"github.com/slidegrove/analytics-engine/internal/resolve"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

var canonical = map[model.AnalyticsType]model.ChartType{
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

func TestResolve_CanonicalTable_MatchesSpecExactly(t *testing.T) {
	t.Parallel()

	require.Len(t, model.AllAnalyticsTypes, len(canonical), "every analytics type must have a canonical mapping")

	for _, at := range model.AllAnalyticsTypes {
		want, ok := canonical[at]
		require.True(t, ok, "%s missing from test's canonical table", at)

		req := &model.AnalyticsRequest{AnalyticsType: at, Layout: model.LayoutL02}
		result, err := resolve.Resolve(req, logging.NewNopLogger())
		require.Nil(t, err)
		assert.Equal(t, want, result.ChartType, "analytics_type %s", at)
	}
}

func TestResolve_ExplicitChartTypeOverridesAnalyticsType(t *testing.T) {
	t.Parallel()

	req := &model.AnalyticsRequest{
		AnalyticsType: model.AnalyticsRevenueOverTime, // canonically "line"
		ChartType:     model.ChartBarHorizontal,
		Layout:        model.LayoutL02,
	}
	result, err := resolve.Resolve(req, logging.NewNopLogger())
	require.Nil(t, err)
	assert.Equal(t, model.ChartBarHorizontal, result.ChartType)
}

func TestResolve_ExplicitChartType_UnknownFailsWithCompatibleList(t *testing.T) {
	t.Parallel()

	req := &model.AnalyticsRequest{
		AnalyticsType: model.AnalyticsRevenueOverTime,
		ChartType:     model.ChartType("not_a_real_chart"),
		Layout:        model.LayoutL02,
	}
	_, err := resolve.Resolve(req, logging.NewNopLogger())
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidChartType, err.Code)
	assert.Contains(t, err.Details, "compatible")
}

func TestResolve_ExplicitChartType_IncompatibleWithLayoutFails(t *testing.T) {
	t.Parallel()

	req := &model.AnalyticsRequest{
		AnalyticsType: model.AnalyticsQuarterlyComparison,
		ChartType:     model.ChartWaterfall, // not supported on L01
		Layout:        model.LayoutL01,
	}
	_, err := resolve.Resolve(req, logging.NewNopLogger())
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidChartType, err.Code)
}

func TestResolve_NarrativeKeywordInference(t *testing.T) {
	t.Parallel()

	req := &model.AnalyticsRequest{
		AnalyticsType: model.AnalyticsType(""), // not in canonical table
		Narrative:     "Here is the market share proportion across regions",
		Layout:        model.LayoutL02,
	}
	result, err := resolve.Resolve(req, logging.NewNopLogger())
	require.Nil(t, err)
	assert.Equal(t, model.ChartPie, result.ChartType)
}

func TestResolve_DefaultsToBarVerticalWhenNothingMatches(t *testing.T) {
	t.Parallel()

	req := &model.AnalyticsRequest{
		AnalyticsType: model.AnalyticsType(""),
		Narrative:     "nothing recognizable here",
		Layout:        model.LayoutL02,
	}
	result, err := resolve.Resolve(req, logging.NewNopLogger())
	require.Nil(t, err)
	assert.Equal(t, model.ChartBarVertical, result.ChartType)
}

func TestResolve_NilLoggerDoesNotPanic(t *testing.T) {
	t.Parallel()

	req := &model.AnalyticsRequest{AnalyticsType: model.AnalyticsType(""), Layout: model.LayoutL02}
	assert.NotPanics(t, func() {
		_, _ = resolve.Resolve(req, nil)
	})
}
