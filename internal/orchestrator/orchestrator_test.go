package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidegrove/analytics-engine/internal/config"
	"github.com/slidegrove/analytics-engine/internal/insight"
	"github.com/slidegrove/analytics-engine/internal/llmclient"
	"github.com/slidegrove/analytics-engine/internal/model"
	"github.com/slidegrove/analytics-engine/internal/orchestrator"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

func newOrchestrator() *orchestrator.Orchestrator {
	cfg := config.LLMConfig{SoftTimeout: 20 * time.Millisecond, HardTimeout: 50 * time.Millisecond}
	gen := insight.NewGenerator(llmclient.NopProvider{}, cfg, nil)
	return orchestrator.New(gen, nil, orchestrator.EditorConfig{})
}

func baseRequest(layout model.Layout) *model.AnalyticsRequest {
	return &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-1",
		SlideNumber:    1,
		Narrative:      "Revenue grew steadily through the year.",
		AnalyticsType:  model.AnalyticsRevenueOverTime,
		Layout:         layout,
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "Q1", Value: 100},
			{Label: "Q2", Value: 120},
			{Label: "Q3", Value: 90},
			{Label: "Q4", Value: 200},
		}},
	}
}

func TestRun_L02_ProducesCompleteSlideResponse(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	resp, err := o.Run(context.Background(), baseRequest(model.LayoutL02))
	require.Nil(t, err)

	assert.NotEmpty(t, resp.Content.Element2)
	assert.NotEmpty(t, resp.Content.Element3)
	assert.Empty(t, resp.Content.Element4)
	assert.Equal(t, model.ChartLine, resp.Metadata.ChartType)
	assert.Equal(t, model.LayoutL02, resp.Metadata.Layout)
	assert.Equal(t, 4, resp.Metadata.DataPoints)
	assert.Equal(t, model.InsightSourceFallback, resp.Metadata.InsightSource)
	assert.NotEmpty(t, resp.Metadata.GeneratedAt)
	assert.Contains(t, resp.Content.Element3, "chart")
}

func TestRun_L01_ChartInElement4InsightInElement3(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	resp, err := o.Run(context.Background(), baseRequest(model.LayoutL01))
	require.Nil(t, err)

	assert.NotEmpty(t, resp.Content.Element4)
	assert.NotEmpty(t, resp.Content.Element3)
	assert.Empty(t, resp.Content.Element2)
}

func TestRun_L03_SingleRequestPopulatesOnlyLeftSlot(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	resp, err := o.Run(context.Background(), baseRequest(model.LayoutL03))
	require.Nil(t, err)

	assert.NotEmpty(t, resp.Content.Element4)
	assert.NotEmpty(t, resp.Content.Element3)
	assert.Empty(t, resp.Content.Element2)
	assert.Empty(t, resp.Content.Element5)
}

func TestRun_ValidationFailure_ReturnsZeroResponseAndError(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := baseRequest(model.LayoutL02)
	req.Data = model.RequestData{Points: []model.ChartDataPoint{{Label: "only one", Value: 1}}}

	resp, err := o.Run(context.Background(), req)
	require.NotNil(t, err)
	assert.Equal(t, model.SlideResponse{}, resp)
}

func TestRun_InvalidAnalyticsType_ReturnsError(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := baseRequest(model.LayoutL02)
	req.AnalyticsType = "not_a_real_type"

	_, err := o.Run(context.Background(), req)
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidAnalyticsType, err.Code)
}

func TestRun_ChartIDIsDeterministicAcrossRetries(t *testing.T) {
	t.Parallel()

	o := newOrchestrator()
	req := baseRequest(model.LayoutL02)

	r1, err1 := o.Run(context.Background(), req)
	require.Nil(t, err1)
	r2, err2 := o.Run(context.Background(), req)
	require.Nil(t, err2)

	id1 := extractChartID(r1.Content.Element3)
	id2 := extractChartID(r2.Content.Element3)
	assert.Equal(t, id1, id2)
	assert.Contains(t, id1, "slide-1")
}

func extractChartID(html string) string {
	const marker = `id="`
	idx := strings.Index(html, marker)
	if idx == -1 {
		return ""
	}
	rest := html[idx+len(marker):]
	end := strings.Index(rest, `"`)
	if end == -1 {
		return ""
	}
	return rest[:end]
}
