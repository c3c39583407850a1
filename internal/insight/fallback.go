package insight

import (
	"fmt"

	"github.com/slidegrove/analytics-engine/internal/model"
)

// fallbackText builds the deterministic, rule-based observation spec §4.4
// requires whenever the LLM call fails or times out. INSIGHT_GENERATION_FAILED
// is never surfaced to the client — this function always returns a usable
// string from the data summary alone, even for a zero-point summary.
func fallbackText(req *model.AnalyticsRequest, s dataSummary) string {
	if s.Count == 0 {
		return fmt.Sprintf("%s shows no summarizable data points for this slide.", string(req.AnalyticsType))
	}

	switch req.AnalyticsType {
	case model.AnalyticsRevenueOverTime, model.AnalyticsYoYGrowth:
		growthPct := 0.0
		if s.FirstValue != 0 {
			growthPct = (s.LastValue - s.FirstValue) / abs(s.FirstValue) * 100
		}
		return fmt.Sprintf(
			"Across %d periods, the value moved from %.2f at %s to %.2f at %s, a %.1f%% change. %s posted the strongest single-period swing at %.2f.",
			s.Count, s.FirstValue, s.FirstLabel, s.LastValue, s.LastLabel, growthPct, s.LargestDeltaLabel, s.LargestDelta,
		)

	case model.AnalyticsQuarterlyComparison:
		return fmt.Sprintf(
			"%s led the %d compared periods at %.2f, while %s was lowest at %.2f. The average across all periods was %.2f.",
			s.MaxLabel, s.Count, s.Max, s.MinLabel, s.Min, s.Mean,
		)

	case model.AnalyticsMarketShare, model.AnalyticsKPIMetrics:
		share := 0.0
		if s.Mean != 0 {
			share = s.Max / (s.Mean * float64(s.Count)) * 100
		}
		return fmt.Sprintf(
			"%s holds the largest share at %.2f (%.1f%% of the %d-way total), compared to %s at %.2f.",
			s.MaxLabel, s.Max, share, s.Count, s.MinLabel, s.Min,
		)

	case model.AnalyticsCategoryRanking:
		return fmt.Sprintf(
			"%s ranks first among %d categories at %.2f; %s ranks last at %.2f.",
			s.MaxLabel, s.Count, s.Max, s.MinLabel, s.Min,
		)

	case model.AnalyticsCorrelationAnalysis, model.AnalyticsMultidimensionalAnalysis:
		return fmt.Sprintf(
			"Across %d observations, values ranged from %.2f (%s) to %.2f (%s), averaging %.2f — consistent with a relationship worth investigating further.",
			s.Count, s.Min, s.MinLabel, s.Max, s.MaxLabel, s.Mean,
		)

	default:
		return fmt.Sprintf(
			"%s shows %d data points ranging from %.2f (%s) to %.2f (%s), averaging %.2f.",
			string(req.AnalyticsType), s.Count, s.Min, s.MinLabel, s.Max, s.MaxLabel, s.Mean,
		)
	}
}
