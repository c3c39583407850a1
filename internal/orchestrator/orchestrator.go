// Package orchestrator implements the single pipeline entry point spec §4.6
// describes: validate → resolve → shape → (chart ∥ insight) → assemble →
// return. It is the only component that wires the other packages together;
// every other package stays ignorant of its siblings.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slidegrove/analytics-engine/internal/assemble"
	"github.com/slidegrove/analytics-engine/internal/chartgen"
	"github.com/slidegrove/analytics-engine/internal/insight"
	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/model"
	"github.com/slidegrove/analytics-engine/internal/resolve"
	"github.com/slidegrove/analytics-engine/internal/shape"
	"github.com/slidegrove/analytics-engine/internal/validate"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

const (
	serviceName    = "analytics-engine"
	serviceVersion = "1.0.0"
)

// dimensionsFor returns the chart container's fixed pixel size for a layout.
// L02's chart container is bit-exact per spec §9 (1260x720, the observations
// panel takes the rest of the slide). L01 has no side panel so its single
// chart gets the same full-bleed size. L03 splits its width between two
// charts and their description panels; spec leaves the exact split as an
// Open Question (see DESIGN.md) — this halves L02's width minus a gutter.
func dimensionsFor(layout model.Layout) model.Dimensions {
	switch layout {
	case model.LayoutL03:
		return model.Dimensions{Width: 610, Height: 720}
	default:
		return model.Dimensions{Width: 1260, Height: 720}
	}
}

// EditorConfig is forwarded unchanged into every chartgen.Request this
// orchestrator builds.
type EditorConfig = chartgen.EditorConfig

// Orchestrator wires the pipeline's stateless stages together with the two
// stateful collaborators (insight's LLM-backed generator and a logger).
type Orchestrator struct {
	insightGen *insight.Generator
	log        logging.Logger
	editor     EditorConfig
}

// New constructs an Orchestrator. log may be nil, in which case a no-op
// logger is used.
func New(insightGen *insight.Generator, log logging.Logger, editor EditorConfig) *Orchestrator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Orchestrator{insightGen: insightGen, log: log, editor: editor}
}

// Run executes one request end to end. It never returns both a non-nil
// SlideResponse and a non-nil error (I1): on any AppError the response is
// the zero value and must be discarded.
func (o *Orchestrator) Run(ctx context.Context, raw *model.AnalyticsRequest) (model.SlideResponse, *apperrors.AppError) {
	start := time.Now()

	req, verr := validate.Validate(raw)
	if verr != nil {
		return model.SlideResponse{}, verr
	}

	resolved, rerr := resolve.Resolve(req, o.log)
	if rerr != nil {
		return model.SlideResponse{}, rerr
	}

	slideTitle := titleFor(req)

	shaped, serr := shape.Shape(req.Data, resolved.ChartType, formatHintFor(req), slideTitle)
	if serr != nil {
		return model.SlideResponse{}, serr
	}

	theme := model.ThemeProfessional
	if req.Context != nil && req.Context.Theme != "" {
		theme = req.Context.Theme
	}
	dims := dimensionsFor(req.Layout)
	chartID := fmt.Sprintf("%s-0", req.SlideID)

	var artifact model.ChartArtifact
	var slideInsight model.Insight

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a, cerr := chartgen.Generate(chartgen.Request{
			Shaped:     shaped,
			ChartType:  resolved.ChartType,
			Spec:       resolved.Spec,
			Dimensions: dims,
			Theme:      theme,
			ChartID:    chartID,
			Editor:     o.editor,
		})
		if cerr != nil {
			return cerr
		}
		artifact = a
		return nil
	})
	group.Go(func() error {
		// Insight generation is never fatal (§4.6): it ignores cancellation
		// of its own subtask slot by design — Generate folds any timeout or
		// error into the deterministic fallback internally — but it still
		// honours groupCtx so a chart-task failure cancels the LLM call
		// promptly instead of leaving it running past the response.
		slideInsight = o.insightGen.Generate(groupCtx, req)
		return nil
	})

	if err := group.Wait(); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return model.SlideResponse{}, appErr
		}
		return model.SlideResponse{}, apperrors.ProcessingError(apperrors.CodeChartGenerationFailed, err.Error())
	}

	content := assemble.Assemble(assemble.Input{
		Layout:           req.Layout,
		SlideTitle:       slideTitle,
		Subtitle:         subtitleFor(req),
		PresentationName: presentationNameFor(req),
		Chart1:           artifact,
		Insight1:         slideInsight,
	})

	meta := model.ResponseMetadata{
		Service:          serviceName,
		Version:          serviceVersion,
		Library:          artifact.Library,
		Layout:           req.Layout,
		ChartType:        resolved.ChartType,
		DataPoints:       req.Data.Len(),
		GenerationTimeMS: time.Since(start).Milliseconds(),
		Theme:            theme,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
		AnalyticsType:    req.AnalyticsType,
		InsightSource:    slideInsight.Source,
	}

	return model.SlideResponse{Content: content, Metadata: meta}, nil
}

// formatHintFor infers the axis/value formatting from analytics_type, since
// AnalyticsRequest carries no explicit format field (§3).
func formatHintFor(req *model.AnalyticsRequest) model.FormatHint {
	switch req.AnalyticsType {
	case model.AnalyticsRevenueOverTime, model.AnalyticsQuarterlyComparison:
		return model.FormatCurrency
	case model.AnalyticsMarketShare, model.AnalyticsKPIMetrics, model.AnalyticsYoYGrowth:
		return model.FormatPercentage
	default:
		return model.FormatNumber
	}
}

func titleFor(req *model.AnalyticsRequest) string {
	if req.Context != nil && req.Context.SlideTitle != "" {
		return req.Context.SlideTitle
	}
	return string(req.AnalyticsType)
}

func subtitleFor(req *model.AnalyticsRequest) string {
	if req.Context != nil {
		return req.Context.Subtitle
	}
	return ""
}

func presentationNameFor(req *model.AnalyticsRequest) string {
	if req.Context != nil {
		return req.Context.PresentationName
	}
	return ""
}
