package insight

import (
	"fmt"

	"github.com/slidegrove/analytics-engine/internal/model"
)

// charBudgetFor returns the layout-specific truncation budget (§4.5): L02's
// single observations panel gets the full ≈500 chars, L01/L03 share the
// tighter ≈250-char per-panel budget.
func charBudgetFor(layout model.Layout) int {
	if layout == model.LayoutL02 {
		return 500
	}
	return 250
}

// buildPrompt renders a deterministic, layout-aware prompt template from the
// request and its data summary. Determinism here is what makes Generate
// idempotent over identical input (§4.4) on the prompt side; the HTTP
// provider itself is the only non-deterministic hop, and its output is never
// required to repeat, only attempted.
func buildPrompt(req *model.AnalyticsRequest, s dataSummary) string {
	audience := "a general business audience"
	theme := ""
	if req.Context != nil {
		if req.Context.Audience != "" {
			audience = req.Context.Audience
		}
		theme = string(req.Context.Theme)
	}

	sentenceBudget := "2-3 sentences"
	if req.Layout != model.LayoutL02 {
		sentenceBudget = "1-2 short sentences"
	}

	return fmt.Sprintf(
		"You are writing a presentation slide insight for %s, themed %q. "+
			"Slide narrative: %q. Analytics type: %s. "+
			"Data summary: %d points, min %.2f at %q, max %.2f at %q, mean %.2f, largest period-over-period change %.2f at %q. "+
			"Write %s of concrete, specific observations about this data. Do not restate these instructions or mention that you are an AI.",
		audience, theme, req.Narrative, string(req.AnalyticsType),
		s.Count, s.Min, s.MinLabel, s.Max, s.MaxLabel, s.Mean, s.LargestDelta, s.LargestDeltaLabel,
		sentenceBudget,
	)
}

// truncate cuts text to at most budget runes, trimming a trailing partial
// word so the fallback/LLM text never ends mid-token.
func truncate(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	cut := runes[:budget]
	for i := len(cut) - 1; i >= 0 && i > budget-40; i-- {
		if cut[i] == ' ' {
			return string(cut[:i])
		}
	}
	return string(cut)
}
