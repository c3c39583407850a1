package orchestrator_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidegrove/analytics-engine/internal/model"
)

// These six tests exercise the literal end-to-end scenarios from spec.md §8
// verbatim, each against a fresh Orchestrator built the same way every other
// test in this package builds one.

func TestPipeline_Scenario1_RevenueOverTime(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-revenue",
		SlideNumber:    1,
		Narrative:      "Revenue grew steadily across the year.",
		AnalyticsType:  model.AnalyticsRevenueOverTime,
		Layout:         model.LayoutL02,
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "Q1", Value: 125000},
			{Label: "Q2", Value: 145000},
			{Label: "Q3", Value: 195000},
			{Label: "Q4", Value: 220000},
		}},
	}

	resp, err := o.Run(context.Background(), req)
	require.Nil(t, err)

	assert.Equal(t, model.ChartLine, resp.Metadata.ChartType)
	assert.Contains(t, resp.Content.Element3, `"type":"line"`)
	assert.Contains(t, resp.Content.Element3, "Amount")
	assert.NotEmpty(t, resp.Content.Element2)
	// The ≈500-char observations budget is enforced on the raw insight text
	// (internal/insight.insight_test.go covers it directly); Element2 wraps
	// that text in the L02 observations-panel markup, so only non-emptiness
	// is re-checked here.
}

func TestPipeline_Scenario2_MarketShare(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-share",
		SlideNumber:    1,
		Narrative:      "North America leads market share.",
		AnalyticsType:  model.AnalyticsMarketShare,
		Layout:         model.LayoutL02,
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "NA", Value: 45},
			{Label: "EU", Value: 30},
			{Label: "APAC", Value: 20},
			{Label: "Other", Value: 5},
		}},
	}

	resp, err := o.Run(context.Background(), req)
	require.Nil(t, err)

	assert.Equal(t, model.ChartPie, resp.Metadata.ChartType)
	assert.Contains(t, resp.Content.Element3, `"type":"pie"`)
	assert.Contains(t, resp.Content.Element3, `"labels":["NA","EU","APAC","Other"]`)
	assert.NotContains(t, resp.Content.Element3, "[object Object]")
}

func TestPipeline_Scenario3_CorrelationAnalysis(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-correlation",
		SlideNumber:    1,
		Narrative:      "Spend correlates with signups.",
		AnalyticsType:  model.AnalyticsCorrelationAnalysis,
		Layout:         model.LayoutL02,
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "Jan - $20K", Value: 95},
			{Label: "Feb - $28K", Value: 124},
			{Label: "Mar - $35K", Value: 150},
		}},
	}

	resp, err := o.Run(context.Background(), req)
	require.Nil(t, err)

	assert.Equal(t, model.ChartScatter, resp.Metadata.ChartType)
	assert.Contains(t, resp.Content.Element3, `"type":"scatter"`)
	assert.Contains(t, resp.Content.Element3, `Jan - $20K`)
	assert.Contains(t, resp.Content.Element3, `Feb - $28K`)
	assert.Contains(t, resp.Content.Element3, `Mar - $35K`)
	assert.Contains(t, resp.Content.Element3, `"pointRadius":10`)
}

func TestPipeline_Scenario4_MultidimensionalAnalysis(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-bubble",
		SlideNumber:    1,
		Narrative:      "NA leads on every dimension measured.",
		AnalyticsType:  model.AnalyticsMultidimensionalAnalysis,
		Layout:         model.LayoutL02,
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "NA", Value: 180},
			{Label: "EU", Value: 145},
			{Label: "APAC", Value: 95},
			{Label: "LATAM", Value: 62},
		}},
	}

	resp, err := o.Run(context.Background(), req)
	require.Nil(t, err)

	assert.Equal(t, model.ChartBubble, resp.Metadata.ChartType)
	assert.Contains(t, resp.Content.Element3, `"type":"bubble"`)
}

func TestPipeline_Scenario5_MultiMetricComparison(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-radar",
		SlideNumber:    1,
		Narrative:      "Performance is balanced across metrics.",
		AnalyticsType:  model.AnalyticsMultiMetricComparison,
		Layout:         model.LayoutL02,
		Context:        &model.RequestContext{SlideTitle: "Quarterly Scorecard"},
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "Revenue", Value: 90},
			{Label: "Share", Value: 82},
			{Label: "Satisfaction", Value: 85},
		}},
	}

	resp, err := o.Run(context.Background(), req)
	require.Nil(t, err)

	assert.Equal(t, model.ChartRadar, resp.Metadata.ChartType)
	assert.Contains(t, resp.Content.Element3, `"type":"radar"`)
	assert.Contains(t, resp.Content.Element3, `"label":"Quarterly Scorecard"`)
	assert.Contains(t, resp.Content.Element3, `"data":[90,82,85]`)
}

func TestPipeline_Scenario6_BatchOfFive(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	requests := []*model.AnalyticsRequest{
		{
			PresentationID: "pres-batch", SlideID: "s1", SlideNumber: 1,
			Narrative: "Revenue grew steadily.", AnalyticsType: model.AnalyticsRevenueOverTime, Layout: model.LayoutL02,
			Data: model.RequestData{Points: []model.ChartDataPoint{{Label: "Q1", Value: 125000}, {Label: "Q2", Value: 145000}, {Label: "Q3", Value: 195000}, {Label: "Q4", Value: 220000}}},
		},
		{
			PresentationID: "pres-batch", SlideID: "s2", SlideNumber: 2,
			Narrative: "NA leads market share.", AnalyticsType: model.AnalyticsMarketShare, Layout: model.LayoutL02,
			Data: model.RequestData{Points: []model.ChartDataPoint{{Label: "NA", Value: 45}, {Label: "EU", Value: 30}, {Label: "APAC", Value: 20}, {Label: "Other", Value: 5}}},
		},
		{
			PresentationID: "pres-batch", SlideID: "s3", SlideNumber: 3,
			Narrative: "Spend correlates with signups.", AnalyticsType: model.AnalyticsCorrelationAnalysis, Layout: model.LayoutL02,
			Data: model.RequestData{Points: []model.ChartDataPoint{{Label: "Jan - $20K", Value: 95}, {Label: "Feb - $28K", Value: 124}, {Label: "Mar - $35K", Value: 150}}},
		},
		{
			PresentationID: "pres-batch", SlideID: "s4", SlideNumber: 4,
			Narrative: "NA leads every dimension.", AnalyticsType: model.AnalyticsMultidimensionalAnalysis, Layout: model.LayoutL02,
			Data: model.RequestData{Points: []model.ChartDataPoint{{Label: "NA", Value: 180}, {Label: "EU", Value: 145}, {Label: "APAC", Value: 95}, {Label: "LATAM", Value: 62}}},
		},
		{
			PresentationID: "pres-batch", SlideID: "s5", SlideNumber: 5,
			Narrative: "Performance is balanced.", AnalyticsType: model.AnalyticsMultiMetricComparison, Layout: model.LayoutL02,
			Context: &model.RequestContext{SlideTitle: "Quarterly Scorecard"},
			Data:    model.RequestData{Points: []model.ChartDataPoint{{Label: "Revenue", Value: 90}, {Label: "Share", Value: 82}, {Label: "Satisfaction", Value: 85}}},
		},
	}

	var mu sync.Mutex
	chartIDs := make(map[string]string, len(requests))
	successCount := 0

	var wg sync.WaitGroup
	for _, req := range requests {
		wg.Add(1)
		go func(req *model.AnalyticsRequest) {
			defer wg.Done()
			resp, rerr := o.Run(context.Background(), req)
			if rerr != nil {
				return
			}
			id := extractChartID(resp.Content.Element3)
			mu.Lock()
			defer mu.Unlock()
			successCount++
			chartIDs[req.SlideID] = id
		}(req)
	}
	wg.Wait()

	require.Equal(t, 5, successCount)
	require.Len(t, chartIDs, 5)

	seen := make(map[string]bool, len(chartIDs))
	for slideID, id := range chartIDs {
		require.NotEmpty(t, id)
		assert.Contains(t, id, slideID)
		assert.False(t, seen[id], "chart_id %q collided across slides", id)
		seen[id] = true
	}
}
