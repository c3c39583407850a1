package insight

import "github.com/slidegrove/analytics-engine/internal/model"

// dataSummary is the "small textual features" projection spec §4.4 requires
// before either prompting the LLM or building the deterministic fallback:
// min/max/mean, count, largest delta, top label.
type dataSummary struct {
	Count int

	MinLabel, MaxLabel string
	Min, Max           float64
	Mean               float64

	FirstLabel, LastLabel string
	FirstValue, LastValue float64

	LargestDeltaLabel string
	LargestDelta      float64
}

// seriesOf flattens any RequestData variant into a single (label, value)
// series suitable for summarization. The mapping is intentionally loose
// outside the primitive-series case (boxplot uses the median, OHLC the
// close, matrix the row sums, flow the link weights) — the insight text is
// an observational aid, not a precise re-derivation of the shaped chart.
func seriesOf(data model.RequestData) []model.ChartDataPoint {
	switch {
	case len(data.Points) > 0:
		return data.Points

	case len(data.Boxplot) > 0:
		out := make([]model.ChartDataPoint, len(data.Boxplot))
		for i, row := range data.Boxplot {
			out[i] = model.ChartDataPoint{Label: row.Label, Value: row.Median}
		}
		return out

	case len(data.OHLC) > 0:
		out := make([]model.ChartDataPoint, len(data.OHLC))
		for i, row := range data.OHLC {
			out[i] = model.ChartDataPoint{Label: row.Label, Value: row.Close}
		}
		return out

	case data.Matrix != nil:
		out := make([]model.ChartDataPoint, len(data.Matrix.YLabels))
		for y, label := range data.Matrix.YLabels {
			sum := 0.0
			for _, v := range data.Matrix.Values[y] {
				sum += v
			}
			out[y] = model.ChartDataPoint{Label: label, Value: sum}
		}
		return out

	case data.Flow != nil:
		out := make([]model.ChartDataPoint, len(data.Flow.Links))
		for i, link := range data.Flow.Links {
			out[i] = model.ChartDataPoint{Label: link.Source + " -> " + link.Target, Value: link.Value}
		}
		return out

	default:
		return nil
	}
}

// summarize builds a dataSummary from a normalized request's data. Pure and
// deterministic: identical input always yields an identical summary, which
// is what makes Generate idempotent (§4.4).
func summarize(data model.RequestData) dataSummary {
	series := seriesOf(data)
	if len(series) == 0 {
		return dataSummary{}
	}

	s := dataSummary{
		Count:      len(series),
		Min:        series[0].Value,
		Max:        series[0].Value,
		MinLabel:   series[0].Label,
		MaxLabel:   series[0].Label,
		FirstLabel: series[0].Label,
		FirstValue: series[0].Value,
		LastLabel:  series[len(series)-1].Label,
		LastValue:  series[len(series)-1].Value,
	}

	total := 0.0
	for i, p := range series {
		total += p.Value
		if p.Value < s.Min {
			s.Min, s.MinLabel = p.Value, p.Label
		}
		if p.Value > s.Max {
			s.Max, s.MaxLabel = p.Value, p.Label
		}
		if i > 0 {
			delta := p.Value - series[i-1].Value
			if abs(delta) > abs(s.LargestDelta) {
				s.LargestDelta = delta
				s.LargestDeltaLabel = p.Label
			}
		}
	}
	s.Mean = total / float64(len(series))
	return s
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
