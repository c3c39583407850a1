package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegrove/analytics-engine/internal/model"
)

func TestSummarize_Points(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{Points: []model.ChartDataPoint{
		{Label: "Q1", Value: 10},
		{Label: "Q2", Value: 30},
		{Label: "Q3", Value: 5},
	}})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 5.0, s.Min)
	assert.Equal(t, "Q3", s.MinLabel)
	assert.Equal(t, 30.0, s.Max)
	assert.Equal(t, "Q2", s.MaxLabel)
	assert.InDelta(t, 15.0, s.Mean, 0.001)
	assert.Equal(t, "Q1", s.FirstLabel)
	assert.Equal(t, "Q3", s.LastLabel)
}

func TestSummarize_Boxplot_UsesMedian(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{Boxplot: []model.BoxplotRow{
		{Label: "A", Min: 1, Q1: 2, Median: 5, Q3: 8, Max: 10},
		{Label: "B", Min: 0, Q1: 1, Median: 2, Q3: 3, Max: 4},
	}})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
}

func TestSummarize_OHLC_UsesClose(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{OHLC: []model.OHLCRow{
		{Label: "Day1", Open: 10, High: 12, Low: 9, Close: 11},
		{Label: "Day2", Open: 11, High: 15, Low: 10, Close: 14},
	}})
	assert.Equal(t, 11.0, s.Min)
	assert.Equal(t, 14.0, s.Max)
}

func TestSummarize_Matrix_UsesRowSums(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{Matrix: &model.MatrixPayload{
		XLabels: []string{"Mon", "Tue"},
		YLabels: []string{"AM", "PM"},
		Values:  [][]float64{{1, 2}, {10, 20}},
	}})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 3.0, s.Min)
	assert.Equal(t, 30.0, s.Max)
}

func TestSummarize_Flow_UsesLinkValues(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{Flow: &model.FlowPayload{
		Nodes: []model.FlowNode{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Links: []model.FlowLink{{Source: "a", Target: "b", Value: 5}, {Source: "b", Target: "c", Value: 9}},
	}})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "a -> b", s.FirstLabel)
	assert.Equal(t, 9.0, s.Max)
}

func TestSummarize_Empty_ReturnsZeroValue(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{})
	assert.Equal(t, 0, s.Count)
}

func TestSummarize_LargestDelta_PicksBiggestJump(t *testing.T) {
	t.Parallel()

	s := summarize(model.RequestData{Points: []model.ChartDataPoint{
		{Label: "A", Value: 10},
		{Label: "B", Value: 12},
		{Label: "C", Value: 50},
		{Label: "D", Value: 48},
	}})
	assert.Equal(t, "C", s.LargestDeltaLabel)
	assert.InDelta(t, 38.0, s.LargestDelta, 0.001)
}
