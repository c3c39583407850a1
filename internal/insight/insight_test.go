package insight_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidegrove/analytics-engine/internal/config"
	"github.com/slidegrove/analytics-engine/internal/insight"
	"github.com/slidegrove/analytics-engine/internal/llmclient"
	"github.com/slidegrove/analytics-engine/internal/model"
)

type fakeProvider struct {
	delay time.Duration
	text  string
	err   error
}

func (f *fakeProvider) Complete(ctx context.Context, _ llmclient.CompletionRequest) (llmclient.CompletionResponse, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return llmclient.CompletionResponse{}, ctx.Err()
	}
	if f.err != nil {
		return llmclient.CompletionResponse{}, f.err
	}
	return llmclient.CompletionResponse{Text: f.text}, nil
}

func revenueRequest() *model.AnalyticsRequest {
	return &model.AnalyticsRequest{
		PresentationID: "pres-1",
		SlideID:        "slide-1",
		SlideNumber:    1,
		Narrative:      "Revenue grew steadily across the year.",
		AnalyticsType:  model.AnalyticsRevenueOverTime,
		Layout:         model.LayoutL02,
		Data: model.RequestData{Points: []model.ChartDataPoint{
			{Label: "Q1", Value: 100},
			{Label: "Q2", Value: 120},
			{Label: "Q3", Value: 90},
			{Label: "Q4", Value: 200},
		}},
	}
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{SoftTimeout: 50 * time.Millisecond, HardTimeout: 200 * time.Millisecond}
}

func TestGenerate_SuccessfulLLMCall_ReturnsLLMSource(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{text: "Revenue peaked in Q4 at 200, up sharply from the Q3 dip."}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	result := gen.Generate(context.Background(), revenueRequest())
	assert.Equal(t, model.InsightSourceLLM, result.Source)
	assert.Equal(t, "Revenue peaked in Q4 at 200, up sharply from the Q3 dip.", result.Text)
}

func TestGenerate_ProviderError_FallsBack(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: assert.AnError}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	result := gen.Generate(context.Background(), revenueRequest())
	assert.Equal(t, model.InsightSourceFallback, result.Source)
	assert.NotEmpty(t, result.Text)
}

func TestGenerate_SoftTimeoutExceeded_FallsBackWithoutWaitingForHardTimeout(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{delay: 500 * time.Millisecond, text: "too slow"}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	start := time.Now()
	result := gen.Generate(context.Background(), revenueRequest())
	elapsed := time.Since(start)

	assert.Equal(t, model.InsightSourceFallback, result.Source)
	assert.Less(t, elapsed, 200*time.Millisecond, "must fall back around the soft timeout, not wait for the provider")
}

func TestGenerate_Fallback_NeverEmpty_EvenWithNoDataPoints(t *testing.T) {
	t.Parallel()

	req := revenueRequest()
	req.Data = model.RequestData{}

	provider := &fakeProvider{err: assert.AnError}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	result := gen.Generate(context.Background(), req)
	assert.Equal(t, model.InsightSourceFallback, result.Source)
	assert.NotEmpty(t, result.Text)
}

func TestGenerate_Idempotent_SameInputSameOutput(t *testing.T) {
	t.Parallel()

	req := revenueRequest()
	provider := &fakeProvider{err: assert.AnError}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	r1 := gen.Generate(context.Background(), req)
	r2 := gen.Generate(context.Background(), req)
	assert.Equal(t, r1, r2)
}

func TestGenerate_TruncatesToLayoutBudget(t *testing.T) {
	t.Parallel()

	longText := ""
	for i := 0; i < 100; i++ {
		longText += "word "
	}
	provider := &fakeProvider{text: longText}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	l02Req := revenueRequest()
	l02Req.Layout = model.LayoutL02
	l02Result := gen.Generate(context.Background(), l02Req)
	assert.LessOrEqual(t, len([]rune(l02Result.Text)), 500)

	l01Req := revenueRequest()
	l01Req.Layout = model.LayoutL01
	l01Result := gen.Generate(context.Background(), l01Req)
	assert.LessOrEqual(t, len([]rune(l01Result.Text)), 250)
}

func TestGenerate_AllAnalyticsTypes_ProduceNonEmptyFallback(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: assert.AnError}
	gen := insight.NewGenerator(provider, testLLMConfig(), nil)

	for _, at := range model.AllAnalyticsTypes {
		req := revenueRequest()
		req.AnalyticsType = at
		result := gen.Generate(context.Background(), req)
		require.NotEmpty(t, result.Text, "analytics type %s produced empty fallback", at)
	}
}

func TestNewGenerator_NilLoggerDoesNotPanic(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{text: "ok"}
	assert.NotPanics(t, func() {
		gen := insight.NewGenerator(provider, testLLMConfig(), nil)
		gen.Generate(context.Background(), revenueRequest())
	})
}
