// Package assemble composes a ChartArtifact and an Insight into the
// per-layout SlideContent response body (§4.5). It is the last pure-HTML
// boundary before a response leaves the service: every textual field that
// originated from caller input (titles, insight text, labels) is
// HTML-escaped here, mirroring the escaping discipline the teacher's HTTP
// handlers apply at their own response boundary
// (internal/interfaces/http/handlers/common.go's writeJSON/writeError).
package assemble

import (
	"html"
	"strings"

	"github.com/slidegrove/analytics-engine/internal/model"
)

const (
	observationsPanelWidth  = 540
	observationsPanelHeight = 720
)

// Input bundles everything the assembler needs for one slide. Exactly the
// fields required by in.Layout are read; callers building the other
// layout's fields is harmless since assemble only consumes what its own
// layout branch needs.
type Input struct {
	Layout model.Layout

	SlideTitle       string
	Subtitle         string
	PresentationName string
	CompanyLogo      string

	// Chart1/Insight1 are required for every layout. Chart2/Insight2 are
	// only read for L03 (the second chart + its companion description).
	Chart1   model.ChartArtifact
	Insight1 model.Insight
	Chart2   *model.ChartArtifact
	Insight2 *model.Insight
}

// Assemble builds the SlideContent for in.Layout. Fields not populated by
// a given layout are left at their zero value so the `omitempty` JSON tags
// on model.SlideContent omit them entirely (spec: "Extra keys absent per
// layout are not emitted").
func Assemble(in Input) model.SlideContent {
	content := model.SlideContent{
		SlideTitle:       escape(in.SlideTitle),
		PresentationName: escape(in.PresentationName),
		CompanyLogo:      escape(in.CompanyLogo),
	}

	switch in.Layout {
	case model.LayoutL02:
		content.Element1 = escape(in.Subtitle)
		content.Element2 = observationsPanel(in.Insight1.Text)
		content.Element3 = in.Chart1.HTMLFragment

	case model.LayoutL01:
		content.Element1 = escape(in.Subtitle)
		content.Element3 = escape(in.Insight1.Text)
		content.Element4 = in.Chart1.HTMLFragment

	case model.LayoutL03:
		content.Element1 = escape(in.Subtitle)
		content.Element4 = in.Chart1.HTMLFragment
		content.Element3 = escape(in.Insight1.Text)
		if in.Chart2 != nil {
			content.Element2 = in.Chart2.HTMLFragment
		}
		if in.Insight2 != nil {
			content.Element5 = escape(in.Insight2.Text)
		}
	}

	return content
}

func escape(s string) string {
	return html.EscapeString(s)
}

// observationsPanel renders the L02 observations panel per spec §4.5's
// exact pixel/typography contract. The insight text is split on blank
// lines first, then single newlines, then treated as one paragraph — in
// that priority order — before being escaped and wrapped in <p> tags.
func observationsPanel(insightText string) string {
	paragraphs := splitParagraphs(insightText)

	var body strings.Builder
	body.WriteString(`<h3 style="font-family:'Inter',sans-serif;font-size:20px;font-weight:600;color:#1f2937;margin:0 0 16px 0;line-height:1.3;">Key Observations</h3>`)
	for i, p := range paragraphs {
		margin := "margin:0 0 12px 0;"
		if i == len(paragraphs)-1 {
			margin = "margin:0;"
		}
		body.WriteString(`<p style="font-size:16px;line-height:1.6;color:#374151;` + margin + `">`)
		body.WriteString(escape(p))
		body.WriteString(`</p>`)
	}

	return `<div style="width:` + itoa(observationsPanelWidth) + `px;height:` + itoa(observationsPanelHeight) + `px;padding:40px 32px;background:#f8f9fa;border-radius:8px;overflow-y:auto;box-sizing:border-box;">` + body.String() + `</div>`
}

// splitParagraphs implements the fallback chain spec §4.5 requires: blank
// lines first, then single newlines, then the whole string as one
// paragraph. Empty segments produced by either split are dropped.
func splitParagraphs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	if blocks := splitNonEmpty(text, "\n\n"); len(blocks) > 1 {
		return blocks
	}
	if lines := splitNonEmpty(text, "\n"); len(lines) > 1 {
		return lines
	}
	return []string{text}
}

func splitNonEmpty(text, sep string) []string {
	raw := strings.Split(text, sep)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
