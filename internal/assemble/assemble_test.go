package assemble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegrove/analytics-engine/internal/assemble"
	"github.com/slidegrove/analytics-engine/internal/model"
)

func TestAssemble_L02_PopulatesElement2And3Only(t *testing.T) {
	t.Parallel()

	out := assemble.Assemble(assemble.Input{
		Layout:     model.LayoutL02,
		SlideTitle: "Q4 Revenue",
		Subtitle:   "Fiscal Year Review",
		Chart1:     model.ChartArtifact{HTMLFragment: "<div>chart</div>"},
		Insight1:   model.Insight{Text: "Revenue grew 15%.", Source: model.InsightSourceLLM},
	})

	assert.Equal(t, "Q4 Revenue", out.SlideTitle)
	assert.Equal(t, "Fiscal Year Review", out.Element1)
	assert.Contains(t, out.Element2, "Revenue grew 15%.")
	assert.Contains(t, out.Element2, "width:540px")
	assert.Contains(t, out.Element2, "height:720px")
	assert.Contains(t, out.Element2, "padding:40px 32px")
	assert.Contains(t, out.Element2, "background:#f8f9fa")
	assert.Contains(t, out.Element2, "border-radius:8px")
	assert.Contains(t, out.Element2, "overflow-y:auto")
	assert.Contains(t, out.Element2, "box-sizing:border-box")
	assert.Equal(t, "<div>chart</div>", out.Element3)
	assert.Empty(t, out.Element4)
	assert.Empty(t, out.Element5)
}

func TestAssemble_L02_HeadingAndParagraphTypography(t *testing.T) {
	t.Parallel()

	out := assemble.Assemble(assemble.Input{
		Layout:   model.LayoutL02,
		Chart1:   model.ChartArtifact{HTMLFragment: "<div></div>"},
		Insight1: model.Insight{Text: "First insight.\n\nSecond insight."},
	})

	assert.Contains(t, out.Element2, "font-size:20px;font-weight:600;color:#1f2937")
	assert.Contains(t, out.Element2, "margin:0 0 16px 0;line-height:1.3")
	assert.Contains(t, out.Element2, "font-size:16px;line-height:1.6;color:#374151;margin:0 0 12px 0;")
	assert.Contains(t, out.Element2, "font-size:16px;line-height:1.6;color:#374151;margin:0;")
	assert.Contains(t, out.Element2, "First insight.")
	assert.Contains(t, out.Element2, "Second insight.")
}

func TestAssemble_L02_ParagraphSplitFallbackChain(t *testing.T) {
	t.Parallel()

	blankLineSplit := assemble.Assemble(assemble.Input{
		Layout: model.LayoutL02, Chart1: model.ChartArtifact{},
		Insight1: model.Insight{Text: "Para one.\n\nPara two.\n\nPara three."},
	})
	assert.Equal(t, 3, countParagraphs(blankLineSplit.Element2))

	newlineSplit := assemble.Assemble(assemble.Input{
		Layout: model.LayoutL02, Chart1: model.ChartArtifact{},
		Insight1: model.Insight{Text: "Line one.\nLine two."},
	})
	assert.Equal(t, 2, countParagraphs(newlineSplit.Element2))

	singleParagraph := assemble.Assemble(assemble.Input{
		Layout: model.LayoutL02, Chart1: model.ChartArtifact{},
		Insight1: model.Insight{Text: "Just one sentence with no breaks."},
	})
	assert.Equal(t, 1, countParagraphs(singleParagraph.Element2))
}

func countParagraphs(html string) int {
	count := 0
	for i := 0; i+3 <= len(html); i++ {
		if html[i:i+3] == "<p " {
			count++
		}
	}
	return count
}

func TestAssemble_L01_InsightInElement3ChartInElement4(t *testing.T) {
	t.Parallel()

	out := assemble.Assemble(assemble.Input{
		Layout:   model.LayoutL01,
		Chart1:   model.ChartArtifact{HTMLFragment: "<canvas></canvas>"},
		Insight1: model.Insight{Text: "Observation text."},
	})

	assert.Equal(t, "Observation text.", out.Element3)
	assert.Equal(t, "<canvas></canvas>", out.Element4)
	assert.Empty(t, out.Element2)
	assert.Empty(t, out.Element5)
}

func TestAssemble_L03_BothChartsAndDescriptions(t *testing.T) {
	t.Parallel()

	chart2 := model.ChartArtifact{HTMLFragment: "<canvas id=right></canvas>"}
	insight2 := model.Insight{Text: "Right-side observation."}

	out := assemble.Assemble(assemble.Input{
		Layout:   model.LayoutL03,
		Chart1:   model.ChartArtifact{HTMLFragment: "<canvas id=left></canvas>"},
		Insight1: model.Insight{Text: "Left-side observation."},
		Chart2:   &chart2,
		Insight2: &insight2,
	})

	assert.Equal(t, "<canvas id=left></canvas>", out.Element4)
	assert.Equal(t, "Left-side observation.", out.Element3)
	assert.Equal(t, "<canvas id=right></canvas>", out.Element2)
	assert.Equal(t, "Right-side observation.", out.Element5)
}

func TestAssemble_EscapesUserSuppliedText(t *testing.T) {
	t.Parallel()

	out := assemble.Assemble(assemble.Input{
		Layout:     model.LayoutL01,
		SlideTitle: `<script>alert(1)</script>`,
		Subtitle:   `"quoted" & <b>bold</b>`,
		Chart1:     model.ChartArtifact{},
		Insight1:   model.Insight{Text: "<img onerror=alert(1)>"},
	})

	assert.NotContains(t, out.SlideTitle, "<script>")
	assert.Contains(t, out.SlideTitle, "&lt;script&gt;")
	assert.NotContains(t, out.Element1, "<b>")
	assert.NotContains(t, out.Element3, "<img")
}

func TestAssemble_L03_NilSecondChartOmitsElement2And5(t *testing.T) {
	t.Parallel()

	out := assemble.Assemble(assemble.Input{
		Layout:   model.LayoutL03,
		Chart1:   model.ChartArtifact{HTMLFragment: "<canvas></canvas>"},
		Insight1: model.Insight{Text: "Only one side populated."},
	})

	assert.Empty(t, out.Element2)
	assert.Empty(t, out.Element5)
}
