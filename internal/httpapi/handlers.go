package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/slidegrove/analytics-engine/internal/catalog"
	"github.com/slidegrove/analytics-engine/internal/model"
	"github.com/slidegrove/analytics-engine/internal/orchestrator"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

const maxBatchSlides = 50
const batchConcurrency = 8

// handlers bundles the orchestrator and stats collector every route handler
// needs. It has no other state: rate limiting, CORS, and request logging are
// separate middleware, not handler concerns (grounded on the teacher's
// handlers/*.go, each of which is a thin struct wrapping its application-
// layer collaborator and nothing else).
type handlers struct {
	run       *orchestrator.Orchestrator
	stats     *statsCollector
	startedAt time.Time
}

func newHandlers(run *orchestrator.Orchestrator, stats *statsCollector) *handlers {
	return &handlers{run: run, stats: stats, startedAt: time.Now()}
}

// postAnalytics handles POST /api/v1/analytics/{layout}/{analytics_type}.
func (h *handlers) postAnalytics(c *gin.Context) {
	layout := model.Layout(c.Param("layout"))
	analyticsType := model.AnalyticsType(c.Param("analytics_type"))

	if !layout.Valid() {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidLayout, "layout",
			"layout \""+string(layout)+"\" is not one of L01, L02, L03", "use one of L01, L02, L03"))
		return
	}
	if !analyticsType.Valid() {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidAnalyticsType, "analytics_type",
			"analytics_type \""+string(analyticsType)+"\" is not recognized", "use one of the documented analytics_type values").
			WithDetail("allowed", model.AllAnalyticsTypes))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidValues, "body", "could not read request body", ""))
		return
	}

	req, derr := decodeAnalyticsRequest(body, layout, analyticsType, nil)
	if derr != nil {
		h.stats.recordFailure()
		writeError(c, derr)
		return
	}

	resp, rerr := h.run.Run(c.Request.Context(), req)
	if rerr != nil {
		h.stats.recordFailure()
		writeError(c, rerr)
		return
	}

	h.stats.recordSuccess()
	c.JSON(http.StatusOK, resp)
}

// batchSlideRequest is one element of POST /api/v1/analytics/batch's
// `slides` array: the same per-slide fields as the single-slide endpoint,
// with analytics_type/layout carried in the body instead of the URL.
type batchSlideRequest struct {
	SlideID        string                 `json:"slide_id"`
	SlideNumber    int                    `json:"slide_number"`
	Narrative      string                 `json:"narrative"`
	AnalyticsType  model.AnalyticsType    `json:"analytics_type"`
	Layout         model.Layout           `json:"layout"`
	ChartType      model.ChartType        `json:"chart_type,omitempty"`
	Context        *model.RequestContext  `json:"context,omitempty"`
	Constraints    map[string]interface{} `json:"constraints,omitempty"`
	Data           interface{}            `json:"data"`
}

type batchRequest struct {
	PresentationID string              `json:"presentation_id"`
	Slides         []batchSlideRequest `json:"slides"`
}

type batchSlideResult struct {
	Success  bool                     `json:"success"`
	SlideID  string                   `json:"slide_id"`
	Content  *model.SlideContent      `json:"content,omitempty"`
	Metadata *model.ResponseMetadata  `json:"metadata,omitempty"`
	Error    *apperrors.ErrorEnvelope `json:"error,omitempty"`
}

type batchResponse struct {
	PresentationID string             `json:"presentation_id"`
	Slides         []batchSlideResult `json:"slides"`
	Total          int                `json:"total"`
	Successful     int                `json:"successful"`
}

// postAnalyticsBatch handles POST /api/v1/analytics/batch. Slides are
// processed with bounded concurrency (errgroup.SetLimit, grounded on the
// teacher's own ResolveBatch pattern in intelligence/chem_extractor); a
// failure on one slide is recorded in its own result and never fails the
// batch or cancels sibling slides (spec §6).
func (h *handlers) postAnalyticsBatch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidValues, "body", "could not read request body", ""))
		return
	}

	var batch batchRequest
	if jerr := json.Unmarshal(body, &batch); jerr != nil {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidValues, "body",
			"request body is not valid JSON: "+jerr.Error(), "submit a well-formed batch request"))
		return
	}
	if len(batch.Slides) == 0 {
		writeError(c, apperrors.ValidationError(apperrors.CodeEmptyField, "slides", "slides must not be empty", ""))
		return
	}
	if len(batch.Slides) > maxBatchSlides {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidValues, "slides",
			"batch exceeds the maximum of 50 slides", "split the batch into multiple requests"))
		return
	}

	results := make([]batchSlideResult, len(batch.Slides))

	group, ctx := errgroup.WithContext(c.Request.Context())
	group.SetLimit(batchConcurrency)

	for i, slide := range batch.Slides {
		i, slide := i, slide
		group.Go(func() error {
			results[i] = h.runBatchSlide(ctx, batch.PresentationID, slide)
			return nil
		})
	}
	_ = group.Wait()

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	h.stats.recordBatch(len(results), successful)

	c.JSON(http.StatusOK, batchResponse{
		PresentationID: batch.PresentationID,
		Slides:         results,
		Total:          len(results),
		Successful:     successful,
	})
}

func (h *handlers) runBatchSlide(ctx context.Context, presentationID string, slide batchSlideRequest) batchSlideResult {
	rawData, merr := json.Marshal(map[string]interface{}{
		"chart_type": slide.ChartType,
		"narrative":  slide.Narrative,
		"data":       slide.Data,
	})
	if merr != nil {
		env := apperrors.ValidationError(apperrors.CodeInvalidDataPoints, "data", "data could not be re-encoded: "+merr.Error(), "").Envelope()
		return batchSlideResult{Success: false, SlideID: slide.SlideID, Error: &env}
	}

	if !slide.Layout.Valid() {
		env := apperrors.ValidationError(apperrors.CodeInvalidLayout, "layout", "layout \""+string(slide.Layout)+"\" is invalid", "").Envelope()
		return batchSlideResult{Success: false, SlideID: slide.SlideID, Error: &env}
	}
	if !slide.AnalyticsType.Valid() {
		env := apperrors.ValidationError(apperrors.CodeInvalidAnalyticsType, "analytics_type",
			"analytics_type \""+string(slide.AnalyticsType)+"\" is invalid", "").Envelope()
		return batchSlideResult{Success: false, SlideID: slide.SlideID, Error: &env}
	}

	req, derr := decodeAnalyticsRequest(rawData, slide.Layout, slide.AnalyticsType, nil)
	if derr != nil {
		env := derr.Envelope()
		return batchSlideResult{Success: false, SlideID: slide.SlideID, Error: &env}
	}
	req.PresentationID = presentationID
	req.SlideID = slide.SlideID
	req.SlideNumber = slide.SlideNumber
	req.Narrative = slide.Narrative
	req.ChartType = slide.ChartType
	req.Context = slide.Context
	req.Constraints = slide.Constraints

	resp, rerr := h.run.Run(ctx, req)
	if rerr != nil {
		env := rerr.Envelope()
		return batchSlideResult{Success: false, SlideID: slide.SlideID, Error: &env}
	}

	return batchSlideResult{Success: true, SlideID: slide.SlideID, Content: &resp.Content, Metadata: &resp.Metadata}
}

// getChartTypes handles GET /api/v1/chart-types and the library-filtered
// GET /api/v1/chart-types/{chartjs|apexcharts} variant.
func (h *handlers) getChartTypes(c *gin.Context) {
	filter := c.Param("filter")
	var specs []model.ChartTypeSpec

	switch filter {
	case "", "/":
		specs = catalog.All()
	case "chartjs":
		specs = catalog.ByLibrary(model.LibraryChartJS)
	case "apexcharts":
		specs = catalog.ByLibrary(model.LibraryApexCharts)
	default:
		// Not a recognized library filter: treat it as a chart_id lookup
		// per spec's single-spec-by-id route sharing this path shape.
		h.getChartTypeByID(c, model.ChartType(filter))
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": catalog.Summary(), "chart_types": specs})
}

func (h *handlers) getChartTypeByID(c *gin.Context, chartID model.ChartType) {
	spec, ok := catalog.ByID(chartID)
	if !ok {
		writeError(c, apperrors.ResourceError(apperrors.CodeChartNotFound,
			"chart type \""+string(chartID)+"\" is not registered"))
		return
	}
	c.JSON(http.StatusOK, spec)
}

// getLayoutChartTypes handles GET /api/v1/layouts/{layout}/chart-types.
func (h *handlers) getLayoutChartTypes(c *gin.Context) {
	layout := model.Layout(c.Param("layout"))
	if !layout.Valid() {
		writeError(c, apperrors.ValidationError(apperrors.CodeInvalidLayout, "layout",
			"layout \""+string(layout)+"\" is not one of L01, L02, L03", "use one of L01, L02, L03"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": layout, "chart_types": catalog.ByLayout(layout)})
}

// getHealth handles GET /health: liveness only, no dependency checks, since
// the core holds no DB connection of its own (spec §5).
func (h *handlers) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// getStats handles GET /stats: non-authoritative in-process counters, reset
// on restart (spec §6 explicitly calls these "non-authoritative").
func (h *handlers) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.snapshot())
}
