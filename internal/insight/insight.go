// Package insight builds the observational text accompanying a generated
// chart (§4.4). It never fails the request: any LLM error or timeout
// degrades to a deterministic, rule-based summary so
// INSIGHT_GENERATION_FAILED is never surfaced to the client.
package insight

import (
	"context"
	"time"

	"github.com/slidegrove/analytics-engine/internal/config"
	"github.com/slidegrove/analytics-engine/internal/llmclient"
	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/model"
)

// Generator produces an Insight for a normalized AnalyticsRequest.
type Generator struct {
	provider llmclient.Provider
	cfg      config.LLMConfig
	log      logging.Logger
}

// NewGenerator constructs a Generator. log may be nil, in which case a
// no-op logger is used.
func NewGenerator(provider llmclient.Provider, cfg config.LLMConfig, log logging.Logger) *Generator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Generator{provider: provider, cfg: cfg, log: log}
}

// Generate builds the insight for req at the given layout. It always
// returns a populated Insight; it returns no error because, per §4.4, there
// is no failure mode that propagates to the caller.
func (g *Generator) Generate(ctx context.Context, req *model.AnalyticsRequest) model.Insight {
	summary := summarize(req.Data)
	budget := charBudgetFor(req.Layout)

	text, ok := g.callWithTimeouts(ctx, buildPrompt(req, summary))
	if !ok {
		return model.Insight{Text: truncate(fallbackText(req, summary), budget), Source: model.InsightSourceFallback}
	}
	return model.Insight{Text: truncate(text, budget), Source: model.InsightSourceLLM}
}

type llmResult struct {
	text string
	err  error
}

// callWithTimeouts races the provider call against the configured soft
// timeout: if the provider hasn't answered within SoftTimeout, the caller
// gives up and falls back immediately rather than waiting out the full
// HardTimeout on the request path. The underlying call runs under a context
// bounded by HardTimeout that is cancelled as soon as this function returns,
// so an abandoned call is cancelled rather than left running; the buffered
// result channel lets its goroutine exit without a reader.
func (g *Generator) callWithTimeouts(ctx context.Context, prompt string) (string, bool) {
	hardCtx, cancel := context.WithTimeout(ctx, g.cfg.HardTimeout)
	defer cancel()

	resultCh := make(chan llmResult, 1)
	go func() {
		resp, err := g.provider.Complete(hardCtx, llmclient.CompletionRequest{
			Prompt:      prompt,
			MaxTokens:   512,
			Temperature: 0.4,
		})
		resultCh <- llmResult{text: resp.Text, err: err}
	}()

	softTimer := time.NewTimer(g.cfg.SoftTimeout)
	defer softTimer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			g.log.Warn("insight: llm call failed, using fallback", logging.Err(res.err))
			return "", false
		}
		return res.text, true
	case <-softTimer.C:
		g.log.Warn("insight: llm call exceeded soft timeout, using fallback",
			logging.Duration("soft_timeout", g.cfg.SoftTimeout))
		return "", false
	case <-ctx.Done():
		g.log.Warn("insight: request context cancelled before llm call completed")
		return "", false
	}
}
